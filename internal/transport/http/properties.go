package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/storage"
	"inmobiliaria/internal/transport/http/dto"
	"inmobiliaria/internal/transport/http/dto/response"

	listingsvc "inmobiliaria/internal/services/listing_service"
)

// ListProperties godoc
// @Summary Listado de inmuebles
// @Description Inmuebles disponibles con filtros, orden y paginación de 12 por página. Si la consulta falla se devuelve una lista vacía.
// @Tags inmuebles
// @Produce json
// @Param operacion query string false "venta o arriendo"
// @Param habitaciones query int false "Mínimo de habitaciones"
// @Param orden query string false "recientes, precio-asc o precio-desc"
// @Param page query int false "Página" default(1)
// @Success 200 {object} response.Response{data=models.PropertyPage}
// @Router /api/v1/properties [get]
func (r *Routers) ListProperties(c echo.Context) error {
	return r.renderListing(c, "http.routers.ListProperties", listingsvc.Filters{})
}

// ListPropertiesByTag godoc
// @Summary Inmuebles por etiqueta
// @Tags inmuebles
// @Produce json
// @Param tag path string true "Slug de la etiqueta"
// @Param operacion query string false "venta o arriendo"
// @Param habitaciones query int false "Mínimo de habitaciones"
// @Param orden query string false "recientes, precio-asc o precio-desc"
// @Param page query int false "Página" default(1)
// @Success 200 {object} response.Response{data=models.PropertyPage}
// @Router /api/v1/properties/tag/{tag} [get]
func (r *Routers) ListPropertiesByTag(c echo.Context) error {
	return r.renderListing(c, "http.routers.ListPropertiesByTag", listingsvc.Filters{TagSlug: c.Param("tag")})
}

// ListPropertiesByBarrio godoc
// @Summary Inmuebles por barrio
// @Tags inmuebles
// @Produce json
// @Param barrio path string true "Slug del barrio"
// @Param operacion query string false "venta o arriendo"
// @Param habitaciones query int false "Mínimo de habitaciones"
// @Param orden query string false "recientes, precio-asc o precio-desc"
// @Param page query int false "Página" default(1)
// @Success 200 {object} response.Response{data=models.PropertyPage}
// @Router /api/v1/properties/barrio/{barrio} [get]
func (r *Routers) ListPropertiesByBarrio(c echo.Context) error {
	return r.renderListing(c, "http.routers.ListPropertiesByBarrio", listingsvc.Filters{BarrioSlug: c.Param("barrio")})
}

// ListPropertiesByCity godoc
// @Summary Inmuebles por ciudad
// @Tags inmuebles
// @Produce json
// @Param ciudad path string true "Slug de la ciudad"
// @Param operacion query string false "venta o arriendo"
// @Param habitaciones query int false "Mínimo de habitaciones"
// @Param orden query string false "recientes, precio-asc o precio-desc"
// @Param page query int false "Página" default(1)
// @Success 200 {object} response.Response{data=models.PropertyPage}
// @Router /api/v1/properties/ciudad/{ciudad} [get]
func (r *Routers) ListPropertiesByCity(c echo.Context) error {
	return r.renderListing(c, "http.routers.ListPropertiesByCity", listingsvc.Filters{CitySlug: c.Param("ciudad")})
}

// renderListing answers with an empty page when the listing cannot be built.
func (r *Routers) renderListing(c echo.Context, op string, filters listingsvc.Filters) error {
	log := r.log.With(slog.String("op", op))

	var q dto.ListPropertiesQuery
	if err := c.Bind(&q); err != nil {
		log.Debug("ignoring malformed query", slog.String("query", c.QueryString()))
	}

	page := parsePage(q.Page)
	filters.Operation = q.Operacion
	filters.MinBedrooms, _ = strconv.Atoi(q.Habitaciones)

	result, err := r.ListingService.ListProperties(c.Request().Context(), filters, models.ParseSortOrder(q.Orden), page)
	if err != nil {
		log.Error("listing failed, rendering empty state", slog.String("error", err.Error()))
		return c.JSON(http.StatusOK, response.EmptyListing(page, listingsvc.DefaultPageSize))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(result))
}

// parsePage treats absent, non-numeric and non-positive values as page 1.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ListFeaturedProperties godoc
// @Summary Inmuebles destacados
// @Tags inmuebles
// @Produce json
// @Param limit query int false "Cantidad máxima" default(12)
// @Success 200 {object} response.Response{data=[]models.Property}
// @Router /api/v1/properties/featured [get]
func (r *Routers) ListFeaturedProperties(c echo.Context) error {
	const op = "http.routers.ListFeaturedProperties"
	log := r.log.With(slog.String("op", op))

	items, err := r.ListingService.ListFeatured(c.Request().Context(), queryInt(c, "limit", 0))
	if err != nil {
		log.Error("featured listing failed, rendering empty state", slog.String("error", err.Error()))
		return c.JSON(http.StatusOK, response.EmptyList[models.Property]())
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

// GetProperty godoc
// @Summary Detalle de un inmueble
// @Tags inmuebles
// @Produce json
// @Param slug path string true "Slug del inmueble"
// @Success 200 {object} response.Response{data=models.Property}
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/properties/{slug} [get]
func (r *Routers) GetProperty(c echo.Context) error {
	const op = "http.routers.GetProperty"
	log := r.log.With(slog.String("op", op))

	p, err := r.ListingService.GetProperty(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(p))
}

// AdminListProperties godoc
// @Summary Listado administrativo de inmuebles
// @Description Igual que el listado público pero incluye reservados y vendidos.
// @Tags admin
// @Produce json
// @Param operacion query string false "venta o arriendo"
// @Param habitaciones query int false "Mínimo de habitaciones"
// @Param orden query string false "recientes, precio-asc o precio-desc"
// @Param page query int false "Página" default(1)
// @Success 200 {object} response.Response{data=models.PropertyPage}
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/properties [get]
func (r *Routers) AdminListProperties(c echo.Context) error {
	const op = "http.routers.AdminListProperties"
	log := r.log.With(slog.String("op", op))

	var q dto.ListPropertiesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	filters := listingsvc.Filters{
		Operation: q.Operacion,
		Admin:     true,
	}
	filters.MinBedrooms, _ = strconv.Atoi(q.Habitaciones)

	result, err := r.ListingService.ListProperties(c.Request().Context(), filters, models.ParseSortOrder(q.Orden), parsePage(q.Page))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(result))
}

// UpdatePropertyStatus godoc
// @Summary Cambiar el estado de un inmueble
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "UUID del inmueble" format(uuid)
// @Param request body dto.UpdatePropertyStatusRequest true "Nuevo estado"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/properties/{id}/status [patch]
func (r *Routers) UpdatePropertyStatus(c echo.Context) error {
	const op = "http.routers.UpdatePropertyStatus"
	log := r.log.With(slog.String("op", op))

	id, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	var req dto.UpdatePropertyStatusRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	if err := r.ListingService.UpdateStatus(c.Request().Context(), id, models.Availability(req.Estado)); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetPropertyFeatured godoc
// @Summary Marcar o desmarcar un inmueble como destacado
// @Tags admin
// @Accept json
// @Param id path string true "UUID del inmueble" format(uuid)
// @Param request body dto.SetFeaturedRequest true "Destacado"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/properties/{id}/featured [patch]
func (r *Routers) SetPropertyFeatured(c echo.Context) error {
	const op = "http.routers.SetPropertyFeatured"
	log := r.log.With(slog.String("op", op))

	id, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	var req dto.SetFeaturedRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	if err := r.ListingService.SetFeatured(c.Request().Context(), id, *req.Featured); err != nil {
		if errors.Is(err, storage.ErrPropertyNotFound) {
			log.Warn("property not found", slog.String("property_id", id.String()))
		}
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
