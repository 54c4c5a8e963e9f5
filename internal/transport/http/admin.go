package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"inmobiliaria/internal/importer"
	"inmobiliaria/internal/lib/logger/sl"
	"inmobiliaria/internal/services/auth"
	"inmobiliaria/internal/storage"
	"inmobiliaria/internal/transport/http/dto/request"
	"inmobiliaria/internal/transport/http/dto/response"

	importsvc "inmobiliaria/internal/services/import_service"
)

const (
	SessionName     = "session"
	SessionAdminKey = "admin"

	importsSubPath = "imports"
)

// AdminLogin godoc
// @Summary Ingreso del administrador
// @Description Devuelve un JWT y deja una cookie de sesión.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.AdminLoginRequest true "Contraseña"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/admin/login [post]
func (r *Routers) AdminLogin(c echo.Context) error {
	const op = "http.routers.AdminLogin"
	log := r.log.With(slog.String("op", op))

	var req request.AdminLoginRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	token, err := r.AuthService.Login(c.Request().Context(), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrLoginDisabled) {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}
		log.Error("login failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	sess, err := session.Get(SessionName, c)
	if err == nil {
		sess.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   12 * 60 * 60,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		sess.Values[SessionAdminKey] = true
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			log.Warn("failed to save session", sl.Err(err))
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{"access_token": token}))
}

// AdminLogout godoc
// @Summary Cerrar la sesión del administrador
// @Tags admin
// @Success 204
// @Router /api/v1/admin/logout [post]
func (r *Routers) AdminLogout(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err == nil {
		sess.Options = &sessions.Options{Path: "/", MaxAge: -1}
		delete(sess.Values, SessionAdminKey)
		_ = sess.Save(c.Request(), c.Response())
	}

	return c.NoContent(http.StatusNoContent)
}

// ImportProperties godoc
// @Summary Importar inmuebles
// @Description Recibe una exportación CSV o JSON (WordPress o formato propio) y devuelve el reporte de importación.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Archivo .csv o .json"
// @Param dry_run formData bool false "Solo normalizar, sin escribir"
// @Success 200 {object} response.Response{data=models.ImportReport}
// @Failure 400 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/import [post]
func (r *Routers) ImportProperties(c echo.Context) error {
	const op = "http.routers.ImportProperties"
	log := r.log.With(slog.String("op", op))

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	format, err := importsvc.FormatFromFilename(file.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	dryRun, _ := strconv.ParseBool(c.FormValue("dry_run"))

	ctx := c.Request().Context()

	path, size, err := r.Files.Save(ctx, file, importsSubPath)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("file_too_large", err.Error()))
		case errors.Is(err, storage.ErrInvalidFileType):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_file_type", err.Error()))
		}
		log.Error("failed to store upload", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
	log.Info("import file stored", slog.String("path", path), slog.Int64("size", size))

	f, err := r.Files.Open(path)
	if err != nil {
		log.Error("failed to open stored upload", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
	defer f.Close()

	summary, err := r.ImportService.Import(ctx, f, format, dryRun)
	if err != nil {
		if errors.Is(err, importer.ErrUnknownSchema) ||
			errors.Is(err, importer.ErrEmptyInput) ||
			errors.Is(err, importer.ErrInvalidJSON) {
			return c.JSON(http.StatusUnprocessableEntity, response.ErrorResponseWithDetails("invalid_import", err.Error()))
		}
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(summary))
}
