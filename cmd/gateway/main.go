package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/GateFilters/pkg/config"
	"github.com/NeuralTrust/GateFilters/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/GateFilters/pkg/infra/logger"
	"github.com/NeuralTrust/GateFilters/pkg/infra/prometheus"
	"github.com/NeuralTrust/GateFilters/pkg/server"
	"github.com/NeuralTrust/GateFilters/pkg/server/router"
	"github.com/NeuralTrust/GateFilters/pkg/version"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger, closeLogger := infraLogger.NewLogger("proxy")
	defer closeLogger()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()
	logger.WithFields(version.GetInfo().Fields()).Info("starting gateway")

	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency:         cfg.Metrics.EnableLatency,
		EnableUpstreamLatency: cfg.Metrics.EnableUpstream,
		EnableFilters:         cfg.Metrics.EnableFilters,
	})

	container, err := dependency_container.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize gateway: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.WithError(err).Error("failed to close dependencies")
		}
	}()

	servers := []server.Server{
		server.NewProxyServer(server.ProxyServerDI{
			Config: cfg,
			Logger: logger,
			Routers: []router.ServerRouter{
				router.NewProxyRouter(container.MiddlewareTransport, container.HandlerTransport),
			},
		}),
	}
	if cfg.Metrics.Enabled {
		servers = append(servers, server.NewMetricsServer(cfg, logger))
	} else {
		logger.Info("prometheus metrics are disabled by configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(srv.Run)
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")
		var shutdownErr error
		for _, srv := range servers {
			shutdownErr = errors.Join(shutdownErr, srv.Shutdown())
		}
		return shutdownErr
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("gateway stopped with error")
		return
	}
	logger.Info("server gracefully stopped")
}
