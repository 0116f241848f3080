package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"github.com/shop/backend/internal/interfaces/http/admin"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Dependencies is everything the HTTP surface is built from
type Dependencies struct {
	Logger      *zap.Logger
	HTTP        config.HTTPConfig
	ServiceName string
	// MeterProvider may be nil or disabled; HTTP metrics are then no-ops
	MeterProvider *telemetry.MeterProvider

	System     *handler.SystemHandler
	About      *handler.AboutHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Auth       *handler.AuthHandler
	Admin      *admin.Site

	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
}

// New builds the gin engine with the middleware chain and every route.
// ctx bounds background work such as the login limiter's cleanup.
func New(ctx context.Context, deps Dependencies) (*gin.Engine, error) {
	engine := gin.New()
	if len(deps.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(deps.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	}

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Tracing(deps.ServiceName))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(middleware.HTTPMetrics(deps.MeterProvider))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(deps.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = deps.HTTP.CORSAllowOrigins
	}
	if len(deps.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = deps.HTTP.CORSAllowMethods
	}
	if len(deps.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = deps.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if deps.HTTP.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(deps.HTTP.MaxBodyBytes))
	}

	engine.GET("/health", deps.System.Health)
	engine.GET("/about/", deps.About.About)

	r := NewRouter(engine, WithAPIVersion("v1"))

	catalogRoutes := NewDomainGroup("catalog", "")
	catalogRoutes.Group("products", "/products").
		GET("", deps.Products.List).
		GET("/:slug", deps.Products.GetBySlug).
		GET("/:slug/tags", deps.Products.Tags)
	catalogRoutes.Group("categories", "/categories").
		GET("", deps.Categories.Tree).
		GET("/*path", deps.Categories.GetByPath)
	r.Register(catalogRoutes)

	sessionRoutes := NewDomainGroup("session", "")
	if deps.HTTP.LoginRateLimit > 0 {
		limiter := middleware.NewRateLimiter(ctx, deps.HTTP.LoginRateLimit, deps.HTTP.LoginRateWindow)
		sessionRoutes.POST("/login", middleware.RateLimit(limiter), deps.Auth.Login)
	} else {
		sessionRoutes.POST("/login", deps.Auth.Login)
	}
	r.RegisterAt("/admin", sessionRoutes)

	requireAdmin := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWT,
		TokenBlacklist: deps.Blacklist,
		Logger:         deps.Logger,
	})
	r.RegisterAt("/admin", NewDomainGroup("logout", "").POST("/logout", deps.Auth.Logout), requireAdmin)
	r.RegisterAt("/admin", deps.Admin, requireAdmin)

	r.Setup()
	return engine, nil
}
