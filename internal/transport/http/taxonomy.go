package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/transport/http/dto"
	"inmobiliaria/internal/transport/http/dto/response"
)

// ListTags godoc
// @Summary Etiquetas
// @Tags taxonomía
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Tag}
// @Router /api/v1/tags [get]
func (r *Routers) ListTags(c echo.Context) error {
	const op = "http.routers.ListTags"
	log := r.log.With(slog.String("op", op))

	tags, err := r.TaxonomyService.ListTags(c.Request().Context())
	if err != nil {
		log.Error("tags unavailable, rendering empty state", slog.String("error", err.Error()))
		return c.JSON(http.StatusOK, response.EmptyList[models.Tag]())
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(tags))
}

// ListBarrios godoc
// @Summary Barrios con su número de inmuebles disponibles
// @Tags taxonomía
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Barrio}
// @Router /api/v1/barrios [get]
func (r *Routers) ListBarrios(c echo.Context) error {
	const op = "http.routers.ListBarrios"
	log := r.log.With(slog.String("op", op))

	barrios, err := r.TaxonomyService.ListBarrios(c.Request().Context())
	if err != nil {
		log.Error("barrios unavailable, rendering empty state", slog.String("error", err.Error()))
		return c.JSON(http.StatusOK, response.EmptyList[models.Barrio]())
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(barrios))
}

// CreateTag godoc
// @Summary Crear etiqueta
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "Etiqueta"
// @Success 201 {object} response.Response{data=models.Tag}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/tags [post]
func (r *Routers) CreateTag(c echo.Context) error {
	const op = "http.routers.CreateTag"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateTagRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	tag, err := r.TaxonomyService.CreateTag(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(tag))
}

// CreateBarrio godoc
// @Summary Crear barrio
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateBarrioRequest true "Barrio"
// @Success 201 {object} response.Response{data=models.Barrio}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/barrios [post]
func (r *Routers) CreateBarrio(c echo.Context) error {
	const op = "http.routers.CreateBarrio"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateBarrioRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	barrio, err := r.TaxonomyService.CreateBarrio(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(barrio))
}
