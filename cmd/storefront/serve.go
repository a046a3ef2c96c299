package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vitrine/storefront/internal/api"
	"github.com/vitrine/storefront/internal/api/handler"
	"github.com/vitrine/storefront/internal/core/ports"
	"github.com/vitrine/storefront/internal/core/service"
	"github.com/vitrine/storefront/internal/infrastructure/catalogstore"
	"github.com/vitrine/storefront/internal/infrastructure/config"
	mongostore "github.com/vitrine/storefront/internal/infrastructure/db/mongo"
	"github.com/vitrine/storefront/internal/infrastructure/db/postgres"
	redisstore "github.com/vitrine/storefront/internal/infrastructure/db/redis"
	"github.com/vitrine/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})

	if cfg.Postgres.MigrationsAuto {
		if err := postgres.MigrateUp(cfg.Postgres.URL); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	store, err := catalogstore.New(catalogstore.Config{
		URL:    cfg.Supabase.URL,
		Key:    cfg.Supabase.Key,
		Schema: cfg.Supabase.Schema,
	}, logger.Component("catalogstore"))
	if err != nil {
		return err
	}

	accounts := postgres.NewAccountRepository(pool)
	sessions := redisstore.NewSessionStore(rdb, cfg.Session.TTL)
	catalog := service.NewCatalogService(store, logger.Component("catalog"))

	checks := []handler.DependencyCheck{
		{Name: "postgres", Check: accounts.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		{Name: "catalog_store", Optional: true, Check: func(ctx context.Context) error {
			if res := catalog.Ping(ctx, ""); !res.Connected {
				return errors.New(res.Message)
			}
			return nil
		}},
	}

	// The mirror journal is optional: without Mongo, mirror failures are only
	// logged and counted.
	var journal ports.MirrorJournal
	mongoClient, mdb, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Warn().Err(err).Msg("mongo unavailable, mirror journal disabled")
	} else {
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		j := mongostore.NewMirrorJournal(mdb)
		if err := j.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("mirror journal indexes")
		}
		journal = j
		checks = append(checks, handler.DependencyCheck{Name: "mongo", Optional: true, Check: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		}})
	}

	mirror := service.NewMirrorService(store, journal, logger.Component("mirror"))
	auth := service.NewAuthService(accounts, mirror, cfg.RedirectTargets(), logger.Component("auth"))

	e, err := api.NewRouter(api.Deps{
		Config:   cfg,
		Log:      log,
		Accounts: accounts,
		Sessions: sessions,
		Store:    store,
		Auth:     auth,
		Catalog:  catalog,
		Mirror:   mirror,
		Checks:   checks,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
