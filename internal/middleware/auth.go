package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"github.com/tejas4149/EstateHub-backend/pkg/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Check if token is blacklisted (revoked via logout)
		if database.IsTokenBlacklisted(claims.GetJTI()) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token has been revoked"})
			c.Abort()
			return
		}

		// Verify user exists and is active (not soft-deleted)
		var user models.User
		if err := database.DB.Select("id", "role").First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not found or inactive"})
			c.Abort()
			return
		}

		c.Set("userId", user.ID)
		c.Set("userRole", user.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// OptionalAuthMiddleware attempts to validate the token if present, but does NOT
// abort if missing or invalid. It sets "userId" only when validation succeeds.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			// Malformed header, treat as anonymous
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil || database.IsTokenBlacklisted(claims.GetJTI()) {
			c.Next()
			return
		}

		var user models.User
		if err := database.DB.Select("id", "role").First(&user, "id = ?", claims.UserID).Error; err == nil {
			c.Set("userId", user.ID)
			c.Set("userRole", user.Role)
		}
		c.Next()
	}
}
