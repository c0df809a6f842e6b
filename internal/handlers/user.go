package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"github.com/tejas4149/EstateHub-backend/internal/policy"
	apperrors "github.com/tejas4149/EstateHub-backend/pkg/errors"
	"github.com/tejas4149/EstateHub-backend/pkg/logger"
)

// GetUsers lists all users (admin only)
func GetUsers(c *gin.Context) {
	actor := currentActor(c)
	if decision := policy.CanAct(actor, policy.ActionListUsers, nil); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": decision.Reason})
		return
	}

	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "data": users})
}

type userProfileResponse struct {
	models.User
	ListingsCount int               `json:"listingsCount"`
	Listings      []models.Property `json:"listings"`
}

// GetUser returns a public profile with the user's available listings
func GetUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	var listings []models.Property
	err := database.DB.
		Where("seller_id = ? AND status = ?", user.ID, models.StatusAvailable).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": userProfileResponse{
			User:          user,
			ListingsCount: len(listings),
			Listings:      listings,
		},
	})
}

type UpdateUserInput struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Phone  *string `json:"phone"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

// UpdateUser patches a profile. Only name, email, phone, bio and avatar are mutable.
func UpdateUser(c *gin.Context) {
	var target models.User
	if err := database.DB.First(&target, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	actor := currentActor(c)
	if decision := policy.CanAct(actor, policy.ActionUpdateUser, &target); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not authorized to update this user"})
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&target).Updates(updates).Error; err != nil {
			var existing models.User
			if input.Email != nil && database.DB.Where("email = ?", *input.Email).First(&existing).Error == nil && existing.ID != target.ID {
				conflict := apperrors.Conflict("An account with this email already exists")
				c.JSON(conflict.Code, gin.H{"success": false, "error": conflict.Message})
				return
			}
			logger.Error().Err(err).Str("user_id", target.ID).Msg("Failed to update user")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update user"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": target})
}

// DeleteUser removes a user and cascades to their properties (admin only).
// The cascade is sequential and not transactional: a failure between the two
// deletes surfaces as a 500 rather than rolling back.
func DeleteUser(c *gin.Context) {
	var target models.User
	if err := database.DB.First(&target, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	actor := currentActor(c)
	if decision := policy.CanAct(actor, policy.ActionDeleteUser, &target); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": decision.Reason})
		return
	}

	if err := database.DB.Where("seller_id = ?", target.ID).Delete(&models.Property{}).Error; err != nil {
		logger.Error().Err(err).Str("user_id", target.ID).Msg("Failed to delete user's properties")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete user's properties"})
		return
	}

	if err := database.DB.Delete(&target).Error; err != nil {
		logger.Error().Err(err).Str("user_id", target.ID).Msg("Failed to delete user after property cascade")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete user"})
		return
	}

	database.CacheInvalidate(featuredCacheKey)

	logger.Info().Str("user_id", target.ID).Str("actor_id", actor.ID).Msg("User deleted")
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

// SaveProperty toggles a property in the caller's saved set
func SaveProperty(c *gin.Context) {
	actor := currentActor(c)
	if decision := policy.CanAct(actor, policy.ActionSaveProperty, nil); !decision.Allowed {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": decision.Reason})
		return
	}

	propertyId := c.Param("propertyId")

	var property models.Property
	if err := database.DB.Select("id").First(&property, "id = ?", propertyId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Property not found"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", actor.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	user.ToggleSaved(propertyId)

	if err := database.DB.Model(&user).Update("saved_properties", user.SavedProperties).Error; err != nil {
		logger.Error().Err(err).Str("user_id", actor.ID).Msg("Failed to update saved properties")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update saved properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "savedProperties": user.SavedProperties})
}

// GetSavedProperties returns the caller's saved listings that are still available.
// Sold, rented or removed listings are excluded without touching the saved set.
func GetSavedProperties(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	properties := make([]models.Property, 0)
	if len(user.SavedProperties) > 0 {
		err := database.DB.
			Where("id IN ? AND status = ?", []string(user.SavedProperties), models.StatusAvailable).
			Order("created_at DESC").
			Find(&properties).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch saved properties"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(properties), "data": properties})
}
