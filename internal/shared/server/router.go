package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/shared/config"
	"careergenie-backend/internal/shared/metrics"
	"careergenie-backend/internal/shared/server/middleware"
	"careergenie-backend/internal/shared/server/respond"
)

// RouteRegistrar is a feature handler mounted behind auth.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// LimitedRegistrar is a feature handler with AI rate-limited routes.
type LimitedRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, aiLimit gin.HandlerFunc)
}

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Config         config.Config
	Verifier       middleware.TokenVerifier
	Limiter        *middleware.RateLimiter
	ResumesHandler LimitedRegistrar
	CareerHandler  LimitedRegistrar
	ProfileHandler RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	cfg := deps.Config
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"success": true,
			"status":  "ok",
			"ai": gin.H{
				"provider": cfg.LLMProvider,
				"enabled":  cfg.LLMProvider != "none",
				"strict":   cfg.StrictAI(),
			},
		})
	})

	authed := api.Group("")
	authed.Use(middleware.Auth(middleware.AuthConfig{
		Verifier:  deps.Verifier,
		DevBypass: cfg.AuthDevBypass && cfg.Env != "production",
	}))

	aiLimit := middleware.AIRateLimit(deps.Limiter, middleware.RateLimitRule{
		Window: time.Duration(cfg.AIRateWindowMS) * time.Millisecond,
		Max:    cfg.AIRateMax,
	})

	registerVerifyRoute(authed)

	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(authed)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(authed, aiLimit)
	}
	if deps.CareerHandler != nil {
		deps.CareerHandler.RegisterRoutes(authed, aiLimit)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
