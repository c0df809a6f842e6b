package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tejas4149/EstateHub-backend/internal/handlers"
	"github.com/tejas4149/EstateHub-backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		// Protected (specific paths before the :id wildcard)
		users.GET("", middleware.AuthMiddleware(), handlers.GetUsers)
		users.GET("/saved-properties", middleware.AuthMiddleware(), handlers.GetSavedProperties)
		users.POST("/save-property/:propertyId", middleware.AuthMiddleware(), handlers.SaveProperty)

		// Public profile, with optional identity for request logs
		users.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetUser)

		users.PUT("/:id", middleware.AuthMiddleware(), handlers.UpdateUser)
		users.DELETE("/:id", middleware.AuthMiddleware(), handlers.DeleteUser)
	}
}
