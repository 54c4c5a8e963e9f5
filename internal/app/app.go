package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "inmobiliaria/internal/app/http"
	"inmobiliaria/internal/config"
	"inmobiliaria/internal/importer"
	"inmobiliaria/internal/repository"
	"inmobiliaria/internal/services/auth"
	filestorage "inmobiliaria/internal/storage/filestorage"
	"inmobiliaria/internal/storage/postgresql"
	redisapp "inmobiliaria/internal/storage/redis"
	httprouters "inmobiliaria/internal/transport/http"

	blogsvc "inmobiliaria/internal/services/blog_service"
	importsvc "inmobiliaria/internal/services/import_service"
	leadsvc "inmobiliaria/internal/services/lead_service"
	listingsvc "inmobiliaria/internal/services/listing_service"
	taxonomysvc "inmobiliaria/internal/services/taxonomy_service"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	Listing    *listingsvc.ListingService
	Import     *importsvc.ImportService
	Blog       *blogsvc.BlogService

	storage *postgresql.Storage
	redis   *redisapp.Client
}

// New connects the stores, migrates the schema and wires every service.
// Without a Redis address the listing cache lives in process.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{log: log, storage: storage}
	checks := map[string]httpapp.HealthChecker{"postgres": storage}

	var cache repository.ListingCache
	if cfg.Redis.RedisAddr != "" {
		a.redis = redisapp.NewClient(cfg.Redis)
		if err := a.redis.HealthCheck(ctx); err != nil {
			log.Warn("redis unreachable, listing cache will retry per request", slog.String("addr", cfg.Redis.RedisAddr), slog.String("error", err.Error()))
		}
		cache = repository.NewRedisCache(a.redis)
		checks["redis"] = a.redis
	} else {
		cache = repository.NewMemoryCache(cfg.Cache.TTL)
	}

	repo := repository.NewRepository(storage.Pool())

	a.Listing = listingsvc.NewListingService(log, repo.Property, repo.Image, repo.Taxonomy, cache, listingsvc.Options{
		PageSize:    cfg.Listing.PageSize,
		CacheTTL:    cfg.Cache.TTL,
		KnownCities: cfg.Import.KnownCities,
	})

	normalizer := importer.NewNormalizer(importer.Options{
		FallbackCity:      cfg.Import.FallbackCity,
		KnownCities:       cfg.Import.KnownCities,
		MinPlausiblePrice: cfg.Import.MinPlausiblePrice,
	})
	a.Import = importsvc.NewImportService(log, normalizer, repo, a.Listing)
	a.Blog = blogsvc.NewBlogService(log, repo.Blog)

	files, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		a.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	routers := httprouters.NewRouter(
		log,
		a.Listing,
		a.Import,
		a.Blog,
		leadsvc.NewLeadService(log, repo.Lead, repo.Property),
		taxonomysvc.NewTaxonomyService(log, repo.Taxonomy),
		NewAuth(log, cfg),
		files,
	)

	sessionSecret := cfg.Admin.SessionSecret
	if sessionSecret == "" {
		sessionSecret = cfg.Admin.TokenSecret
	}

	a.HTTPServer = httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, sessionSecret, routers, checks)
	a.HTTPServer.BuildRouters()

	return a, nil
}

func NewAuth(log *slog.Logger, cfg *config.Config) *auth.Auth {
	return auth.New(log, cfg.Admin.PasswordHash, cfg.Admin.TokenSecret, cfg.Admin.TokenTTL)
}

// Stop closes the stores. The HTTP server is stopped by its owner.
func (a *App) Stop() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis", slog.String("error", err.Error()))
		}
	}
	a.storage.Stop()
}
