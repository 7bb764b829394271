package server

import (
	"fmt"

	"github.com/NeuralTrust/GateFilters/pkg/config"
	"github.com/NeuralTrust/GateFilters/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const MetricsPath = "/metrics"

// MetricsServer exposes the Prometheus registry on its own port so scrapes
// never go through the filter pipeline.
type MetricsServer struct {
	config *config.Config
	logger *logrus.Logger
	app    *fiber.App
}

func NewMetricsServer(cfg *config.Config, logger *logrus.Logger) *MetricsServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	handler := fasthttpadaptor.NewFastHTTPHandler(prometheus.Handler())
	app.Get(MetricsPath, func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})

	return &MetricsServer{
		config: cfg,
		logger: logger,
		app:    app,
	}
}

func (s *MetricsServer) Run() error {
	s.logger.WithField("addr", s.config.Server.MetricsPort).Info("Starting metrics server")
	return s.app.Listen(fmt.Sprintf(":%d", s.config.Server.MetricsPort))
}

func (s *MetricsServer) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app, mostly for tests.
func (s *MetricsServer) App() *fiber.App {
	return s.app
}
