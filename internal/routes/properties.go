package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tejas4149/EstateHub-backend/internal/handlers"
	"github.com/tejas4149/EstateHub-backend/internal/middleware"
)

func RegisterPropertyRoutes(r gin.IRouter) {
	properties := r.Group("/properties")
	{
		// Public, with optional identity so request logs carry user_id
		// for authenticated browsing (specific paths before the :id wildcard)
		properties.GET("", middleware.OptionalAuthMiddleware(), handlers.GetProperties)
		properties.GET("/featured", middleware.OptionalAuthMiddleware(), handlers.GetFeaturedProperties)
		properties.GET("/user/:userId", middleware.OptionalAuthMiddleware(), handlers.GetUserProperties)
		properties.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetProperty)

		// Protected
		properties.POST("", middleware.AuthMiddleware(), handlers.CreateProperty)
		properties.PUT("/:id", middleware.AuthMiddleware(), handlers.UpdateProperty)
		properties.DELETE("/:id", middleware.AuthMiddleware(), handlers.DeleteProperty)
		properties.POST("/:id/images", middleware.AuthMiddleware(), middleware.UploadRateLimit(), handlers.UploadPropertyImages)
	}
}
