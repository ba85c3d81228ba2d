package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/eventrest/internal/config"
	"github.com/geocoder89/eventrest/internal/db"
	httpx "github.com/geocoder89/eventrest/internal/http"
	"github.com/geocoder89/eventrest/internal/observability"
	"github.com/geocoder89/eventrest/internal/repo/memory"
	"github.com/geocoder89/eventrest/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title        Event REST API
// @version      1.0
// @description  Hypermedia (HAL) API for creating, querying and updating events.
// @BasePath     /
func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(observability.LoggerConfig{
		Env:     cfg.Env,
		Service: cfg.OTelServiceName,
		Level:   cfg.LogLevel,
	})
	slog.SetDefault(log)

	if cfg.OTelEnabled {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: cfg.OTelServiceName,
			Endpoint:    cfg.OTelEndpoint,
			Env:         cfg.Env,
		})
		cancel()

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	deps, closeStore, err := buildStore(cfg, log, prom)
	if err != nil {
		log.Error("store init failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	deps.Prom = prom

	// set up routers with the log
	router := httpx.NewRouter(log, cfg, deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")
	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func buildStore(cfg config.Config, log *slog.Logger, prom *observability.Prom) (httpx.Deps, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("using in-memory event store; data is lost on restart")
		return httpx.Deps{Store: memory.NewEventsRepo()}, func() {}, nil

	case config.StoreDriverPostgres:
		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		pool, err := db.NewPool(ctx, cfg.DBURL, int32(cfg.DBMaxConns))
		if err != nil {
			return httpx.Deps{}, nil, err
		}

		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool); err != nil {
				pool.Close()
				return httpx.Deps{}, nil, fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrations applied")
		}

		ping := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return pool.Ping(ctx)
		}

		return httpx.Deps{Store: postgres.NewEventsRepo(pool, prom), Ping: ping}, pool.Close, nil

	default:
		return httpx.Deps{}, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
