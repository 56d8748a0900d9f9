package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medlaunch/onboard-api/internal/handler"
	authHandler "github.com/medlaunch/onboard-api/internal/handler/auth"
	submissionHandler "github.com/medlaunch/onboard-api/internal/handler/submission"
	uploadHandler "github.com/medlaunch/onboard-api/internal/handler/upload"
	"github.com/medlaunch/onboard-api/internal/middleware"
)

type Config struct {
	Production bool
	RateLimit  float64
	RateBurst  int
	CORS       middleware.CORSConfig
}

type Router struct {
	engine      *gin.Engine
	auth        *middleware.AuthMiddleware
	authH       *authHandler.Handler
	submissionH *submissionHandler.Handler
	uploadH     *uploadHandler.Handler
	healthH     *handler.HealthHandler
	metrics     *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	submissionH *submissionHandler.Handler,
	uploadH *uploadHandler.Handler,
	healthH *handler.HealthHandler,
	config Config,
) *Router {
	if config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:      engine,
		auth:        auth,
		authH:       authH,
		submissionH: submissionH,
		uploadH:     uploadH,
		healthH:     healthH,
		metrics:     newRouterMetrics(),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig()),
		middleware.CORS(config.CORS),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api")

	r.healthH.RegisterRoutes(api)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public: the onboarding form submits and uploads without a session.
	r.authH.RegisterRoutes(api)
	r.submissionH.RegisterPublicRoutes(api)
	r.uploadH.RegisterPublicRoutes(api)

	// Dashboard routes require a server-issued session token.
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.submissionH.RegisterAdminRoutes(protected)
	r.uploadH.RegisterAdminRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "onboard_api_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "onboard_api_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	prometheus.MustRegister(r.metrics.requestDuration, r.metrics.requestTotal)

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := fmt.Sprintf("%d", c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
