package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"github.com/tejas4149/EstateHub-backend/internal/policy"
	"github.com/tejas4149/EstateHub-backend/pkg/logger"
	"github.com/tejas4149/EstateHub-backend/pkg/utils"
)

type SendMessageInput struct {
	PropertyID string `json:"propertyId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// SendMessage sends a message about a property to its seller.
// The receiver is always the property's current seller.
func SendMessage(c *gin.Context) {
	actor := currentActor(c)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var property models.Property
	if err := database.DB.First(&property, "id = ?", input.PropertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Property not found"})
		return
	}

	if decision := policy.CanAct(actor, policy.ActionSendMessage, &property); !decision.Allowed {
		// Self-messaging is a 400 per the API contract, not a 403
		status := http.StatusBadRequest
		if actor.Anonymous() {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"success": false, "error": decision.Reason})
		return
	}

	message := models.Message{
		ID:         utils.GenerateID(),
		PropertyID: property.ID,
		SenderID:   actor.ID,
		ReceiverID: property.SellerID,
		Content:    input.Content,
		CreatedAt:  time.Now(),
	}

	if err := database.DB.Create(&message).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to send message")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send message"})
		return
	}

	database.DB.Preload("Sender").Preload("Receiver").Preload("Property").First(&message, "id = ?", message.ID)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": message})
}

// GetMessages returns the caller's messages partitioned into sent and received.
// Side effect: every unread received message is marked read. The returned
// unreadCount is the number that were unread at call time, so a second call
// reports zero.
func GetMessages(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var messages []models.Message
	err := database.DB.
		Where("sender_id = ? OR receiver_id = ?", userId, userId).
		Preload("Sender").
		Preload("Receiver").
		Preload("Property").
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch messages"})
		return
	}

	sent := make([]models.Message, 0)
	received := make([]models.Message, 0)
	unreadCount := 0
	for _, msg := range messages {
		if msg.SenderID == userId {
			sent = append(sent, msg)
		}
		if msg.ReceiverID == userId {
			received = append(received, msg)
			if !msg.Read {
				unreadCount++
			}
		}
	}

	if unreadCount > 0 {
		err := database.DB.Model(&models.Message{}).
			Where("receiver_id = ? AND read = ?", userId, false).
			Update("read", true).Error
		if err != nil {
			logger.Warn().Err(err).Str("user_id", userId).Msg("Failed to mark messages read")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sent":        sent,
			"received":    received,
			"unreadCount": unreadCount,
		},
	})
}

// GetConversation returns the thread with one counterpart about one property,
// oldest first, and marks the caller's unread messages in that thread as read
func GetConversation(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	otherUserId := c.Param("userId")
	propertyId := c.Param("propertyId")

	var messages []models.Message
	err := database.DB.
		Where("property_id = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			propertyId, userId, otherUserId, otherUserId, userId).
		Preload("Sender").
		Preload("Receiver").
		Preload("Property").
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch conversation"})
		return
	}

	err = database.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND property_id = ? AND read = ?", userId, otherUserId, propertyId, false).
		Update("read", true).Error
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userId).Msg("Failed to mark conversation read")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": messages})
}
