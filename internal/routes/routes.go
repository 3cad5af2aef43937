package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CsnCaio/SROA-challenge/internal/authz"
	"github.com/CsnCaio/SROA-challenge/internal/handlers"
	"github.com/CsnCaio/SROA-challenge/internal/middleware"
	"github.com/CsnCaio/SROA-challenge/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tokens services.TokenService,
) *gin.Engine {

	// ---- public
	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.POST("/register", authHandler.Register)
		api.POST("/forgot-password", authHandler.ForgotPassword)
		api.POST("/reset-password", authHandler.ResetPassword)
		api.POST("/validate-token", authHandler.ValidateToken)
	}

	// ---- protected
	r.Use(middleware.AuthMiddleware(tokens))

	users := r.Group("/api/users", middleware.RequireRoles(authz.RoleAdmin))
	{
		users.GET("/", userHandler.ListUsers)
		users.GET("/count", userHandler.GetUserCount)
		users.GET("/:id", userHandler.GetUserByID)
	}

	return r
}
