// Command storefront runs the storefront console: a session-aware HTTP
// front end for the e-commerce REST API.
//
//	@title			Storefront Console API
//	@version		1.0
//	@description	Session-aware console in front of the e-commerce REST API.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/api"
	"github.com/99minutos/storefront-console/internal/core/ports"
	"github.com/99minutos/storefront-console/internal/core/service"
	"github.com/99minutos/storefront-console/internal/infrastructure/config"
	"github.com/99minutos/storefront-console/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/storefront-console/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/storefront-console/internal/infrastructure/db/redis"
	"github.com/99minutos/storefront-console/internal/infrastructure/storefront"
	"github.com/99minutos/storefront-console/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envNote := loadLocalEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty()})
	if envNote != "" {
		log.Debug().Msg(envNote)
	}

	storage, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("init client storage")
	}
	defer closeStorage()

	session := service.NewSessionStore(storage, log.With().Str("component", "session").Logger())
	session.Restore(ctx)

	client, err := storefront.New(cfg.API.BaseURL, cfg.API.Timeout,
		log.With().Str("component", "storefront").Logger(),
		storefront.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
		storefront.WithUnauthorizedHandler(func(ctx context.Context, credential string) {
			session.Invalidate(ctx, credential, "unauthorized")
		}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init storefront client")
	}

	svcLog := log.With().Str("component", "service").Logger()
	e := api.NewRouter(api.Dependencies{
		Session:  session,
		Auth:     service.NewAuthService(client, session, svcLog),
		Catalog:  service.NewCatalogService(client, session, svcLog),
		Cart:     service.NewCartService(client, session, svcLog),
		Checkout: service.NewCheckoutService(client, session, svcLog),
		Admin:    service.NewAdminService(client, session, svcLog),
		Storage:  storage,
	}, log)

	watcher := service.NewExpiryWatcher(session, cfg.Session.CheckInterval, log.With().Str("component", "watcher").Logger())
	go watcher.Run(ctx)

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("api", cfg.API.BaseURL).Msg("storefront console listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

// openStorage builds the client storage selected by STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.ClientStorage, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		s, err := redisstore.Open(ctx, redisstore.Config{
			Addr:   cfg.Redis.Addr,
			DB:     cfg.Redis.DB,
			Prefix: cfg.Storage.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("client storage: redis")
		return s, func() { _ = s.Close() }, nil

	case config.DriverMongo:
		s, err := mongostore.Open(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Prefix:   cfg.Storage.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("client storage: mongo")
		return s, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.Close(dctx)
		}, nil
	}

	log.Warn().Msg("client storage: memory, sessions will not survive restarts")
	return memory.NewStorage(), func() {}, nil
}

// loadLocalEnv reads .env when present. The logger does not exist yet, so
// the outcome is returned for logging later.
func loadLocalEnv() string {
	if err := godotenv.Load(); err != nil {
		return "no .env file found; relying on existing environment"
	}
	return ""
}
