package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name. Cache errors are
	// swallowed on the request path, so this counter is the only place
	// they stay visible.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rolodex_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// UserCacheLookups counts user cache lookups by result (hit or miss).
	UserCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rolodex_user_cache_lookups_total",
		Help: "Total number of user cache lookups by result",
	}, []string{"result"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
