package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "greenhouse_sim/docs"
	"greenhouse_sim/internal/cache"
	"greenhouse_sim/internal/catalog"
	"greenhouse_sim/internal/config"
	"greenhouse_sim/internal/handlers"
	"greenhouse_sim/internal/logger"
	"greenhouse_sim/internal/repository"
	"greenhouse_sim/internal/repository/db"
	"greenhouse_sim/internal/server"
	"greenhouse_sim/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title           Greenhouse Simulator API
// @version         1.0
// @description     Annual greenhouse microclimate, yield and economics simulation with design sweeps.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	set, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalw("failed to load catalog", "path", cfg.CatalogPath, "err", err)
	}
	log.Infow("catalog_loaded",
		"crops", set.Crops.Len(),
		"materials", set.Materials.Len(),
		"climates", set.Climates.Len(),
	)

	sqlDB, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Deps{
		Catalog:    set,
		Cache:      buildCache(cfg, repos, log),
		Policy:     cfg.Policy,
		Workers:    cfg.SweepWorkers,
		MaxPoints:  cfg.SweepMaxPoints,
		SigningKey: signingKey(cfg, log),
		TokenTTL:   cfg.TokenTTL,
		Log:        log,
	})
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// buildCache returns nil when memoization is disabled, so the simulation
// service runs the engine on every request.
func buildCache(cfg *config.Config, repos *repository.Repository, log *logger.Logger) cache.Cache {
	if !cfg.CacheEnabled {
		return nil
	}
	mem := cache.NewMemory(cfg.CacheMaxEntries)
	if !cfg.CachePersistent {
		return mem
	}
	return cache.NewLayered(mem, repos.SimulationCache, log.Named("cache"))
}

// signingKey falls back to a per-process random key; tokens then die with the process.
func signingKey(cfg *config.Config, log *logger.Logger) string {
	if cfg.SigningKey != "" {
		return cfg.SigningKey
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalw("failed to generate signing key", "err", err)
	}
	log.Warnw("auth.signing_key not set; using an ephemeral key")
	return hex.EncodeToString(buf)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listen", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests and sweeps to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
