package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tejas4149/EstateHub-backend/internal/handlers"
	"github.com/tejas4149/EstateHub-backend/internal/middleware"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.POST("", middleware.MessageRateLimit(), handlers.SendMessage)
		messages.GET("", handlers.GetMessages)
		messages.GET("/conversation/:userId/:propertyId", handlers.GetConversation)
	}
}
