package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"inmobiliaria/internal/lib/logger/sl"
	"inmobiliaria/internal/lib/slug"
	appmiddleware "inmobiliaria/internal/middleware"
	httprouters "inmobiliaria/internal/transport/http"
	"inmobiliaria/internal/transport/http/dto/response"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator registers the "slug" tag next to the stock validations.
func NewValidator() *CustomValidator {
	validate := validator.New()
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})

	return &CustomValidator{validator: validate}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// HealthChecker is a dependency probed by /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
	checks  map[string]HealthChecker
}

func New(log *slog.Logger, host, port, sessionSecret string, routers *httprouters.Routers, checks map[string]HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, sl.Err(v.Error))
				log.LogAttrs(context.Background(), slog.LevelError, "request", attrs...)
				return nil
			}

			log.LogAttrs(context.Background(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		host:    host,
		port:    port,
		checks:  checks,
	}
}

// ServeHTTP lets tests drive the fully wired router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info("starting http server", slog.String("op", op), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.host, s.port)
}

// adminOnlyMiddleware accepts a bearer token or an admin session cookie.
func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
			}
			if err := s.routers.AuthService.ValidateToken(strings.TrimSpace(token)); err != nil {
				s.log.Debug("rejected admin token", sl.Err(err))
				return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
			}
			return next(c)
		}

		sess, err := session.Get(httprouters.SessionName, c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		if isAdmin, _ := sess.Values[httprouters.SessionAdminKey].(bool); !isAdmin {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		return next(c)
	}
}

func (s *Server) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(s.checks))
	healthy := true
	for name, check := range s.checks {
		if err := check.HealthCheck(ctx); err != nil {
			s.log.Warn("health check failed", slog.String("dependency", name), sl.Err(err))
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, response.Unhealthy(status))
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(status))
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.e.Group("/api/v1")
	{
		properties := api.Group("/properties")
		{
			properties.GET("", s.routers.ListProperties)
			properties.GET("/featured", s.routers.ListFeaturedProperties)
			properties.GET("/tag/:tag", s.routers.ListPropertiesByTag)
			properties.GET("/barrio/:barrio", s.routers.ListPropertiesByBarrio)
			properties.GET("/ciudad/:ciudad", s.routers.ListPropertiesByCity)
			properties.GET("/:slug", s.routers.GetProperty)
		}

		api.GET("/blog", s.routers.ListPublishedPosts)
		api.GET("/blog/:slug", s.routers.GetPublishedPost)

		api.POST("/leads", s.routers.CreateLead)

		api.GET("/tags", s.routers.ListTags)
		api.GET("/barrios", s.routers.ListBarrios)

		api.POST("/admin/login", s.routers.AdminLogin)
		api.POST("/admin/logout", s.routers.AdminLogout)

		admin := api.Group("/admin", s.adminOnlyMiddleware)
		{
			admin.GET("/properties", s.routers.AdminListProperties)
			admin.PATCH("/properties/:id/status", s.routers.UpdatePropertyStatus)
			admin.PATCH("/properties/:id/featured", s.routers.SetPropertyFeatured)
			admin.POST("/import", s.routers.ImportProperties)

			admin.GET("/blog", s.routers.ListPosts)
			admin.POST("/blog", s.routers.CreatePost)
			admin.POST("/blog/promote", s.routers.PromoteDuePosts)
			admin.GET("/blog/:id", s.routers.GetPost)
			admin.PUT("/blog/:id", s.routers.UpdatePost)
			admin.DELETE("/blog/:id", s.routers.DeletePost)
			admin.PATCH("/blog/:id/publish", s.routers.PublishPost)
			admin.PATCH("/blog/:id/schedule", s.routers.SchedulePost)
			admin.PATCH("/blog/:id/archive", s.routers.ArchivePost)

			admin.GET("/leads", s.routers.ListLeads)
			admin.PATCH("/leads/:id/status", s.routers.UpdateLeadStatus)

			admin.POST("/tags", s.routers.CreateTag)
			admin.POST("/barrios", s.routers.CreateBarrio)
		}
	}
}
