package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tejas4149/EstateHub-backend/internal/handlers"
	"github.com/tejas4149/EstateHub-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.GET("/me", middleware.AuthMiddleware(), handlers.GetMe)
	r.GET("/logout", middleware.AuthMiddleware(), handlers.Logout)
	r.PUT("/updatepassword", middleware.AuthMiddleware(), handlers.UpdatePassword)
}
