package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated registry so tests and multiple apps in one
// process do not collide on the default registerer.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	}, []string{"method", "route", "status_code"})
	registry.MustRegister(requests)

	return &Metrics{registry: registry, requests: requests}
}

// Middleware counts every request by method, matched route pattern and status.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		m.requests.WithLabelValues(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(responseStatus(c, err)),
		).Inc()

		return err
	}
}

func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
