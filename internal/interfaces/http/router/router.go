// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"story-engine/internal/config"
	"story-engine/internal/interfaces/http/handler"
	"story-engine/internal/interfaces/http/middleware"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Story     *handler.StoryHandler
	Chapter   *handler.ChapterHandler
	Character *handler.CharacterHandler
	Plot      *handler.PlotHandler
	Outline   *handler.OutlineHandler
	Workspace *handler.WorkspaceHandler
}

// Router HTTP 路由器
type Router struct {
	engine        *gin.Engine
	cfg           *config.Config
	handlers      *Handlers
	authenticator middleware.Authenticator
}

// New 创建新的路由器
func New(cfg *config.Config, handlers *Handlers, authenticator middleware.Authenticator) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:        gin.New(),
		cfg:           cfg,
		handlers:      handlers,
		authenticator: authenticator,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CORS(r.cfg.Security.CORS))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.Use(middleware.Audit(middleware.DefaultAuditSkipPaths...))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		path := r.cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	RegisterV1Routes(r.engine.Group("/v1"), r.handlers, middleware.Auth(r.authenticator))
}
