package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"inmobiliaria/internal/transport/http/dto"
	"inmobiliaria/internal/transport/http/dto/response"
)

// ListPublishedPosts godoc
// @Summary Entradas publicadas del blog
// @Description Publica primero las entradas programadas cuya fecha ya pasó.
// @Tags blog
// @Produce json
// @Param page query int false "Página" default(1)
// @Param per_page query int false "Entradas por página" default(10)
// @Success 200 {object} response.Response{data=dto.BlogPostListResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/blog [get]
func (r *Routers) ListPublishedPosts(c echo.Context) error {
	const op = "http.routers.ListPublishedPosts"
	log := r.log.With(slog.String("op", op))

	posts, err := r.BlogService.ListPublishedPosts(c.Request().Context(), queryInt(c, "page", 1), queryInt(c, "per_page", 10))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(posts))
}

// GetPublishedPost godoc
// @Summary Entrada publicada por slug
// @Tags blog
// @Produce json
// @Param slug path string true "Slug de la entrada"
// @Success 200 {object} response.Response{data=dto.BlogPostResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/blog/{slug} [get]
func (r *Routers) GetPublishedPost(c echo.Context) error {
	const op = "http.routers.GetPublishedPost"
	log := r.log.With(slog.String("op", op))

	post, err := r.BlogService.GetPublishedPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// CreatePost godoc
// @Summary Crear entrada
// @Description Sin slug se genera uno a partir del título.
// @Tags admin-blog
// @Accept json
// @Produce json
// @Param request body dto.CreateBlogPostRequest true "Entrada"
// @Success 201 {object} response.Response{data=dto.BlogPostResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog [post]
func (r *Routers) CreatePost(c echo.Context) error {
	const op = "http.routers.CreatePost"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateBlogPostRequest
	if resp := bind(c, &req); resp != nil {
		log.Warn("invalid post request", slog.String("details", resp.Details))
		return c.JSON(http.StatusBadRequest, resp)
	}

	post, err := r.BlogService.CreatePost(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(post))
}

// GetPost godoc
// @Summary Entrada por ID
// @Tags admin-blog
// @Produce json
// @Param id path string true "UUID de la entrada" format(uuid)
// @Success 200 {object} response.Response{data=dto.BlogPostResponse}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog/{id} [get]
func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"
	log := r.log.With(slog.String("op", op))

	postID, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	post, err := r.BlogService.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// UpdatePost godoc
// @Summary Actualizar entrada
// @Tags admin-blog
// @Accept json
// @Produce json
// @Param id path string true "UUID de la entrada" format(uuid)
// @Param request body dto.UpdateBlogPostRequest true "Campos a cambiar"
// @Success 200 {object} response.Response{data=dto.BlogPostResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog/{id} [put]
func (r *Routers) UpdatePost(c echo.Context) error {
	const op = "http.routers.UpdatePost"
	log := r.log.With(slog.String("op", op))

	postID, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	var req dto.UpdateBlogPostRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	post, err := r.BlogService.UpdatePost(c.Request().Context(), postID, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// DeletePost godoc
// @Summary Eliminar entrada
// @Tags admin-blog
// @Param id path string true "UUID de la entrada" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog/{id} [delete]
func (r *Routers) DeletePost(c echo.Context) error {
	const op = "http.routers.DeletePost"
	log := r.log.With(slog.String("op", op))

	postID, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.BlogService.DeletePost(c.Request().Context(), postID); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PublishPost godoc
// @Summary Publicar entrada ahora
// @Tags admin-blog
// @Produce json
// @Param id path string true "UUID de la entrada" format(uuid)
// @Success 200 {object} response.Response{data=dto.BlogPostResponse}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog/{id}/publish [patch]
func (r *Routers) PublishPost(c echo.Context) error {
	const op = "http.routers.PublishPost"
	log := r.log.With(slog.String("op", op))

	postID, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	post, err := r.BlogService.PublishPost(c.Request().Context(), postID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// SchedulePost godoc
// @Summary Programar publicación
// @Tags admin-blog
// @Accept json
// @Produce json
// @Param id path string true "UUID de la entrada" format(uuid)
// @Param request body dto.SchedulePostRequest true "Fecha futura de publicación"
// @Success 200 {object} response.Response{data=dto.BlogPostResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog/{id}/schedule [patch]
func (r *Routers) SchedulePost(c echo.Context) error {
	const op = "http.routers.SchedulePost"
	log := r.log.With(slog.String("op", op))

	postID, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	var req dto.SchedulePostRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	post, err := r.BlogService.SchedulePost(c.Request().Context(), postID, req.PublishAt)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// ArchivePost godoc
// @Summary Archivar entrada
// @Tags admin-blog
// @Produce json
// @Param id path string true "UUID de la entrada" format(uuid)
// @Success 200 {object} response.Response{data=dto.BlogPostResponse}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog/{id}/archive [patch]
func (r *Routers) ArchivePost(c echo.Context) error {
	const op = "http.routers.ArchivePost"
	log := r.log.With(slog.String("op", op))

	postID, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	post, err := r.BlogService.ArchivePost(c.Request().Context(), postID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// ListPosts godoc
// @Summary Todas las entradas
// @Tags admin-blog
// @Produce json
// @Param status query string false "draft, scheduled, published, archived o all"
// @Param page query int false "Página" default(1)
// @Param per_page query int false "Entradas por página" default(10)
// @Success 200 {object} response.Response{data=dto.BlogPostListResponse}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog [get]
func (r *Routers) ListPosts(c echo.Context) error {
	const op = "http.routers.ListPosts"
	log := r.log.With(slog.String("op", op))

	posts, err := r.BlogService.ListPosts(c.Request().Context(), c.QueryParam("status"), queryInt(c, "page", 1), queryInt(c, "per_page", 10))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(posts))
}

// PromoteDuePosts godoc
// @Summary Publicar entradas programadas vencidas
// @Tags admin-blog
// @Produce json
// @Success 200 {object} response.Response{data=dto.PromoteResponse}
// @Security ApiKeyAuth
// @Router /api/v1/admin/blog/promote [post]
func (r *Routers) PromoteDuePosts(c echo.Context) error {
	const op = "http.routers.PromoteDuePosts"
	log := r.log.With(slog.String("op", op))

	n, err := r.BlogService.PromoteDuePosts(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.PromoteResponse{Promoted: n}))
}
