// Package main provides the layout service binary: a WebSocket server that
// generates dungeon layouts on request and broadcasts them to watchers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dungeondredge/layoutd/internal/config"
	"github.com/dungeondredge/layoutd/internal/dungeon/rank"
	"github.com/dungeondredge/layoutd/internal/layoutserver"
	"github.com/dungeondredge/layoutd/internal/observability"
	"github.com/dungeondredge/layoutd/internal/server"
	"github.com/dungeondredge/layoutd/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	ranksDir := flag.String("ranks", "", "path to rank preset YAML directory; overrides config")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *ranksDir != "" {
		cfg.Generator.RanksDir = *ranksDir
	}

	logger, err := observability.NewLogger(cfg.Logging, "layoutd")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting layout service",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("default_rank", cfg.Generator.DefaultRank),
	)

	// Load rank presets
	rankStart := time.Now()
	registry, err := rank.LoadRegistryFromDir(cfg.Generator.RanksDir)
	if err != nil {
		logger.Fatal("loading rank presets", zap.Error(err))
	}
	logger.Info("rank presets loaded",
		zap.Int("count", registry.Count()),
		zap.String("dir", cfg.Generator.RanksDir),
		zap.Duration("elapsed", time.Since(rankStart)),
	)

	// Connect to PostgreSQL for layout persistence
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	var store layoutserver.LayoutStore
	if cfg.Generator.Persist {
		store = postgres.NewLayoutRepository(pool.DB())
	} else {
		logger.Info("layout persistence disabled")
	}

	svc, err := layoutserver.NewService(registry, cfg.Generator.DefaultRank, store, pool, logger)
	if err != nil {
		logger.Fatal("creating layout service", zap.Error(err))
	}

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("http", &server.FuncService{
		StartFn: func() error {
			lis, err := net.Listen("tcp", cfg.Server.Addr())
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Server.Addr(), err)
			}
			logger.Info("websocket server listening",
				zap.String("addr", lis.Addr().String()),
			)
			if err := httpServer.Serve(lis); err != http.ErrServerClosed {
				return err
			}
			return nil
		},
		StopFn: func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownGrace)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("http shutdown", zap.Error(err))
			}
		},
	})

	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func() error {
			for {
				time.Sleep(30 * time.Second)
				if err := pool.Health(ctx, 5*time.Second); err != nil {
					logger.Warn("database health check failed", zap.Error(err))
				}
			}
		},
		StopFn: func() {
			pool.Close()
		},
	})

	logger.Info("layout service initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
