package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"inmobiliaria/internal/transport/http/dto"
	"inmobiliaria/internal/transport/http/dto/response"
)

// CreateLead godoc
// @Summary Registrar un contacto
// @Description Solicitud de contacto o asesoría, opcionalmente sobre un inmueble.
// @Tags contactos
// @Accept json
// @Produce json
// @Param request body dto.CreateLeadRequest true "Datos de contacto"
// @Success 201 {object} response.Response{data=dto.LeadResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Inmueble inexistente"
// @Router /api/v1/leads [post]
func (r *Routers) CreateLead(c echo.Context) error {
	const op = "http.routers.CreateLead"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateLeadRequest
	if resp := bind(c, &req); resp != nil {
		log.Warn("invalid lead request", slog.String("details", resp.Details))
		return c.JSON(http.StatusBadRequest, resp)
	}

	lead, err := r.LeadService.CreateLead(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(lead))
}

// ListLeads godoc
// @Summary Contactos recibidos
// @Tags admin
// @Produce json
// @Param status query string false "pendiente, contactado, cerrado"
// @Param page query int false "Página" default(1)
// @Param per_page query int false "Contactos por página" default(20)
// @Success 200 {object} response.Response{data=dto.LeadListResponse}
// @Security ApiKeyAuth
// @Router /api/v1/admin/leads [get]
func (r *Routers) ListLeads(c echo.Context) error {
	const op = "http.routers.ListLeads"
	log := r.log.With(slog.String("op", op))

	leads, err := r.LeadService.ListLeads(c.Request().Context(), c.QueryParam("status"), queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(leads))
}

// UpdateLeadStatus godoc
// @Summary Cambiar el estado de un contacto
// @Tags admin
// @Accept json
// @Param id path string true "UUID del contacto" format(uuid)
// @Param request body dto.UpdateLeadStatusRequest true "Estado"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/leads/{id}/status [patch]
func (r *Routers) UpdateLeadStatus(c echo.Context) error {
	const op = "http.routers.UpdateLeadStatus"
	log := r.log.With(slog.String("op", op))

	id, err := paramUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	var req dto.UpdateLeadStatusRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	if err := r.LeadService.UpdateLeadStatus(c.Request().Context(), id, req.Status); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
