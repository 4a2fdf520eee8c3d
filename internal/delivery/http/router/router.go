// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"housing/internal/delivery/http/middleware"
	"housing/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	EmailHandler   *handler.EmailHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	emailHandler   *handler.EmailHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		emailHandler:   params.EmailHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)

		// Federated login; the provider segment is checked against the
		// allow-list before any redirect happens.
		authGroup.GET("/:provider", r.authHandler.OAuthRedirect)
		authGroup.GET("/:provider/callback", r.authHandler.OAuthCallback)
	}

	userGroup := api.Group("/users")
	{
		userGroup.POST("", r.userHandler.Signup)
		userGroup.POST("/email/code", r.emailHandler.SendCode)
		userGroup.POST("/email/verification", r.emailHandler.VerifyCode)
		userGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	}
}
