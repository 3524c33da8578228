package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mkarlsen/tenant-auth-api/internal/config"
	"github.com/mkarlsen/tenant-auth-api/internal/middleware"
	"github.com/mkarlsen/tenant-auth-api/pkg/logger"
)

type Server struct {
	auth      *AuthHandler
	health    *HealthHandler
	authMW    *middleware.AuthMiddleware
	rateLimit *middleware.RateLimitMiddleware
	config    *config.Config
}

func NewServer(
	authService AuthService,
	tokens TokenIssuer,
	authMW *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	config *config.Config,
	logger *logger.Logger,
) *Server {
	return &Server{
		auth:      NewAuthHandler(authService, tokens, logger),
		health:    NewHealthHandler(),
		authMW:    authMW,
		rateLimit: rateLimit,
		config:    config,
	}
}

func (s *Server) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestID())

	router.GET("/health-check", s.health.HealthCheck)

	api := router.Group("/api/v1")
	api.Use(s.rateLimit.GlobalRateLimit(s.config.GlobalRateLimit))

	auth := api.Group("/authentication")
	{
		auth.POST("/token", s.rateLimit.LoginRateLimit(), s.auth.Login)
		auth.POST("/refresh", s.auth.Refresh)

		authenticated := auth.Group("", s.authMW.RequireUser())
		{
			authenticated.GET("/ping", s.auth.Ping)

			// Routes below run inside a session routed to the caller's tenant
			// schema; business route groups hang off the same chain.
			scoped := authenticated.Group("", s.authMW.TenantSession())
			scoped.GET("/users/me", s.auth.Me)
		}
	}
}
