package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/tunebox/tunebox/internal/auth"
	"github.com/tunebox/tunebox/internal/config"
	"github.com/tunebox/tunebox/internal/identity"
	"github.com/tunebox/tunebox/internal/media"
	"github.com/tunebox/tunebox/internal/middleware"
	"github.com/tunebox/tunebox/internal/notification"
	"github.com/tunebox/tunebox/internal/song"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Uploader media.Uploader
	Logger   *slog.Logger
	// Registry receives the HTTP collectors and backs /metrics. A nil
	// Registry gets a fresh one.
	Registry *prometheus.Registry
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Uploader == nil {
			return fmt.Errorf("object storage is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	codec, err := auth.NewCodec([]byte(d.Cfg.AuthSecret), d.Cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token codec: %w", err)
	}
	hasher := auth.NewHasher(d.Cfg.BcryptCost)
	metrics := middleware.NewMetrics(d.Registry, "tunebox")

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(metrics.Handler())
	app.Use(middleware.Audit(d.Logger))

	// Health and metrics
	RegisterHealthRoutes(app, d)
	app.Get("/metrics", middleware.MetricsEndpoint(d.Registry))

	// Services and handlers
	var songRepo song.Repository
	var identityRepo identity.Repository
	if d.DB != nil {
		songRepo = song.NewPostgresRepository(d.DB)
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		songRepo = song.NewMemoryRepository()
		identityRepo = identity.NewMemoryRepository()
	}
	uploader := d.Uploader
	if uploader == nil {
		uploader = media.NewMemoryUploader()
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	identitySvc := identity.NewService(identityRepo, hasher, codec, favoritesOf{repo: songRepo}, notifier, d.Logger)
	songSvc := song.NewService(songRepo, uploader, notifier, d.Logger)

	gate := middleware.AuthGate(codec, d.Logger, metrics)
	var idempotency fiber.Handler
	if d.Cache != nil {
		idempotency = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}

	RegisterAuthRoutes(app, identity.NewHandler(identitySvc), gate)
	RegisterSongRoutes(app, song.NewHandler(songSvc), gate, idempotency)

	return nil
}
