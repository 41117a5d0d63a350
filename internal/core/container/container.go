package container

import (
	"context"
	"errors"
	"fmt"

	"assetdesk/internal/config"
	"assetdesk/internal/dashboard"
	"assetdesk/internal/database"
	"assetdesk/internal/inventory/assets"
	"assetdesk/internal/inventory/stocks"
	"assetdesk/internal/mailer"
	"assetdesk/internal/middleware"
	"assetdesk/internal/oauth"
	"assetdesk/internal/rate_limiter"
	"assetdesk/internal/repository"
	"assetdesk/internal/storage"
	"assetdesk/internal/store"
	"assetdesk/internal/users"
	"assetdesk/pkg/auditlog"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const Version = "1.0.0"

type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	Store            *store.Store
	AuditLog         *auditlog.Auditlog
	TokenIssuer      *security.TokenIssuer
	RateLimiter      *rate_limiter.RateLimiter
	Metrics          *middleware.Metrics
	Health           *middleware.Health
	AuthHandler      *security.AuthHandler
	AssetHandler     *assets.AssetHandler
	StockHandler     *stocks.StockHandler
	DashboardHandler *dashboard.Handler
	UserHandler      *users.UsersHandler

	closers []func() error
}

func NewAppContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	blobs, check, err := c.newBlobStore()
	if err != nil {
		c.Close()
		return nil, err
	}

	tokens, err := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Store = store.New(
		storage.NewAdapter(blobs, logger),
		newMailer(cfg.Mail, logger),
		logger,
		store.WithResetTokenTTL(cfg.Auth.ResetTokenTTL),
		store.WithFirstUserRole(roles.Admin),
	)
	c.AuditLog = auditlog.NewAuditLog(logger)
	c.TokenIssuer = tokens
	c.RateLimiter = rate_limiter.NewRateLimiter(cfg.RateLimit.Attempts, cfg.RateLimit.Window)
	c.closers = append(c.closers, func() error {
		c.RateLimiter.Stop()
		return nil
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c.Metrics = middleware.NewMetrics(reg)
	c.Health = middleware.NewHealth(Version, check)

	oauthService := oauth.NewService(cfg.Auth)
	logger.Info("OAuth providers configured", zap.Strings("providers", oauthService.Providers()))

	c.AuthHandler = security.NewAuthHandler(c.Store, oauthService, tokens, c.RateLimiter, cfg.Server.Origin)
	c.AssetHandler = assets.NewAssetHandler(c.Store, c.AuditLog)
	c.StockHandler = stocks.NewStockHandler(c.Store, c.AuditLog)
	c.DashboardHandler = dashboard.NewHandler(c.Store)
	c.UserHandler = users.NewHandler(c.Store)

	return c, nil
}

// newBlobStore opens the configured backend and returns the probe used by /health.
func (c *Container) newBlobStore() (storage.BlobStore, func(ctx context.Context) error, error) {
	cfg := c.Config.Storage

	switch cfg.Driver {
	case "postgres":
		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir, c.Logger); err != nil {
				return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		db, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		c.closers = append(c.closers, db.Close)
		c.Logger.Info("Connected to the database", zap.String("driver", cfg.Driver))

		return storage.NewPostgresStore(repository.NewRepository(db)), db.PingContext, nil
	case "redis":
		client, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		c.closers = append(c.closers, client.Close)
		c.Logger.Info("Connected to redis", zap.String("addr", cfg.Redis.Addr))

		check := func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		return storage.NewRedisStore(client, cfg.Redis.Prefix), check, nil
	default:
		c.Logger.Info("Using in-memory storage; data is lost on restart")
		return storage.NewMemoryStore(), nil, nil
	}
}

func newMailer(cfg config.MailConfig, logger *zap.Logger) mailer.Mailer {
	if cfg.Driver == "http" {
		return mailer.NewHTTPMailer(cfg.Endpoint, cfg.APIKey, cfg.From)
	}
	return mailer.NewLogMailer(logger)
}

// Close releases backend connections in reverse order of opening.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
