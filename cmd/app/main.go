package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/LoadoutBot_Go/internal/catalog"
	"github.com/osse101/LoadoutBot_Go/internal/config"
	"github.com/osse101/LoadoutBot_Go/internal/domain"
	"github.com/osse101/LoadoutBot_Go/internal/event"
	"github.com/osse101/LoadoutBot_Go/internal/loadout"
	"github.com/osse101/LoadoutBot_Go/internal/metrics"
	"github.com/osse101/LoadoutBot_Go/internal/preference"
	"github.com/osse101/LoadoutBot_Go/internal/server"
	"github.com/osse101/LoadoutBot_Go/internal/weapon"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	log := slog.Default()

	ctx := context.Background()

	// Load the weapon catalog
	loader := catalog.NewLoader()
	catalogConfig, err := loader.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("Failed to load weapon catalog", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}
	cat, err := loader.Build(ctx, catalogConfig)
	if err != nil {
		log.Error("Failed to build weapon catalog", "error", err)
		os.Exit(1)
	}

	// Event bus with metrics collection
	eventBus := event.NewMemoryBus()
	metrics.NewEventMetricsCollector().Register(eventBus)

	// Ownership derivation rules. The default rule logs the transfer; hosts
	// embedding this service register richer rules per kind.
	derivations := weapon.NewDerivationRegistry()
	for _, kind := range cat.Kinds() {
		derivations.Register(kind, func(oldOwner, newOwner string, snap domain.Snapshot) error {
			log.Info("Ownership derived", "from", oldOwner, "to", newOwner, "kind", snap.Kind, "code", snap.Code)
			return nil
		})
	}

	prefs := preference.NewStore(cat)
	loadoutService := loadout.NewService(cat, prefs, derivations, eventBus, loadout.CacheConfig{
		Size: cfg.LoadoutCacheSize,
		TTL:  cfg.LoadoutCacheTTL,
	})

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, cat, loadoutService)

	// Run the server until interrupted
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		log.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
