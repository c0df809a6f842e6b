package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"github.com/tejas4149/EstateHub-backend/internal/policy"
)

// currentActor builds the policy actor from the identity the auth middleware
// stored in the context. Returns an anonymous actor when no identity is set.
func currentActor(c *gin.Context) policy.Actor {
	userId, exists := c.Get("userId")
	if !exists {
		return policy.Actor{}
	}

	actor := policy.Actor{ID: userId.(string)}
	if role, ok := c.Get("userRole"); ok {
		actor.Role = role.(models.Role)
	}
	return actor
}
