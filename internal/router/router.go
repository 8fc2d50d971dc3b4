package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Handlers groups everything the router mounts. Admin login and the ops
// handlers (health, metrics) are never rate limited.
type Handlers struct {
	Auth        Handler
	Appointment Handler
	Dashboard   Handler
	Doctor      Handler
	Health      Handler
	Metrics     Handler
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        middleware.RateLimiterConfig
	AllowedOrigins   []string
	MaxBodySize      int64
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
	config   RouterConfig
}

func NewRouter(log *logger.Logger, m *metrics.Metrics, handlers Handlers, config RouterConfig) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Metrics(m),
		middleware.CORS(config.AllowedOrigins),
	)

	return &Router{
		engine:   engine,
		handlers: handlers,
		config:   config,
	}
}

func (r *Router) Setup() *Router {
	root := &r.engine.RouterGroup

	r.setupOps(root)

	api := root.Group("", middleware.SizeLimit(r.config.MaxBodySize))
	r.handlers.Auth.RegisterRoutes(api)

	limited := api.Group("")
	if r.config.RateLimitEnabled {
		limited.Use(middleware.NewRateLimiter(r.config.RateLimit).RateLimit())
	}
	r.setupAPI(limited)

	return r
}

func (r *Router) setupOps(rg *gin.RouterGroup) {
	for _, h := range []Handler{r.handlers.Health, r.handlers.Metrics} {
		if h != nil {
			h.RegisterRoutes(rg)
		}
	}
}

func (r *Router) setupAPI(rg *gin.RouterGroup) {
	r.handlers.Dashboard.RegisterRoutes(rg)
	r.handlers.Appointment.RegisterRoutes(rg)
	r.handlers.Doctor.RegisterRoutes(rg)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
