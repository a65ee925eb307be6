package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/legit-games/catalog-service/migrate"
	"github.com/legit-games/catalog-service/seed"
	"github.com/legit-games/catalog-service/server"
	"github.com/legit-games/catalog-service/store"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := server.LoadConfig(server.LoadOptions{LoadFiles: true})
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := server.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("catalog service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *server.AppConfig, logger *slog.Logger) error {
	gdb, err := store.Open(cfg.Database.Driver, cfg.Database.DSN, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := prepareDatabase(cfg.Database, gdb); err != nil {
		return err
	}

	cache, err := store.NewCache(cfg.Cache.Driver, cfg.Cache.Addr, cfg.Cache.Prefix)
	if err != nil {
		return err
	}
	defer cache.Close()

	srv := server.NewServer(server.Options{
		Config: cfg,
		DB:     gdb,
		Cache:  cache,
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      server.NewGinEngine(srv),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog service listening", slog.String("addr", cfg.HTTP.Addr), slog.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// prepareDatabase creates the schema and then loads the seed data. Goose owns the
// schema when migrations run on start; otherwise sqlite gets it from the entities.
// Seeding always comes last so its inserts find their tables.
func prepareDatabase(db server.DatabaseConfig, gdb *gorm.DB) error {
	switch {
	case db.MigrateOnStart:
		if err := migrate.Run(migrate.Options{
			Driver: db.Driver,
			DSN:    db.DSN,
			Logger: log.New(os.Stdout, "[migrate] ", log.LstdFlags),
		}); err != nil {
			return err
		}
	case db.Driver == "sqlite":
		if err := store.AutoMigrate(gdb); err != nil {
			return err
		}
	}
	if db.SeedOnStart {
		return seed.Run(seed.Options{
			Driver: db.Driver,
			DSN:    db.DSN,
			Logger: log.New(os.Stdout, "[seed] ", log.LstdFlags),
		})
	}
	return nil
}
