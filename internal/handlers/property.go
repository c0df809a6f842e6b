package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"github.com/tejas4149/EstateHub-backend/internal/policy"
	"github.com/tejas4149/EstateHub-backend/pkg/logger"
	"github.com/tejas4149/EstateHub-backend/pkg/utils"
	"gorm.io/gorm"
)

const featuredCacheKey = "properties:featured"

// Whitelisted sort keys -> ORDER BY clauses. Anything else falls back to newest-first.
var propertySortColumns = map[string]string{
	"createdAt":  "created_at ASC",
	"-createdAt": "created_at DESC",
	"price":      "price ASC",
	"-price":     "price DESC",
	"views":      "views ASC",
	"-views":     "views DESC",
	"area":       "area ASC",
	"-area":      "area DESC",
}

func propertyFilterQuery(c *gin.Context) *gorm.DB {
	query := database.DB.Model(&models.Property{})

	status := c.DefaultQuery("status", string(models.StatusAvailable))
	query = query.Where("status = ?", status)

	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if pt := c.Query("propertyType"); pt != "" {
		query = query.Where("property_type = ?", pt)
	}
	if bedrooms := c.Query("bedrooms"); bedrooms != "" {
		if n, err := strconv.Atoi(bedrooms); err == nil {
			query = query.Where("bedrooms >= ?", n)
		}
	}
	if bathrooms := c.Query("bathrooms"); bathrooms != "" {
		if n, err := strconv.Atoi(bathrooms); err == nil {
			query = query.Where("bathrooms >= ?", n)
		}
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if n, err := strconv.ParseInt(minPrice, 10, 64); err == nil {
			query = query.Where("price >= ?", n)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if n, err := strconv.ParseInt(maxPrice, 10, 64); err == nil {
			query = query.Where("price <= ?", n)
		}
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("LOWER(location_city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	return query
}

// GetProperties lists properties with filtering, sorting and pagination
func GetProperties(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := propertyFilterQuery(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch properties"})
		return
	}

	order, ok := propertySortColumns[c.DefaultQuery("sort", "-createdAt")]
	if !ok {
		order = "created_at DESC"
	}

	var properties []models.Property
	err := query.
		Preload("Seller").
		Order(order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&properties).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(properties),
		"total":   total,
		"page":    page,
		"pages":   int(math.Ceil(float64(total) / float64(limit))),
		"data":    properties,
	})
}

// GetProperty returns a single property and bumps its view counter.
// The increment is best-effort: a failed bump never fails the read.
func GetProperty(c *gin.Context) {
	var property models.Property
	if err := database.DB.Preload("Seller").First(&property, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Property not found"})
		return
	}

	if err := database.DB.Model(&models.Property{}).
		Where("id = ?", property.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		logger.Warn().Err(err).Str("property_id", property.ID).Msg("Failed to increment views")
	} else {
		property.Views++
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": property})
}

// GetFeaturedProperties returns up to 6 featured available listings, cached briefly
func GetFeaturedProperties(c *gin.Context) {
	var properties []models.Property
	if err := database.CacheGet(featuredCacheKey, &properties); err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(properties), "data": properties})
		return
	}

	err := database.DB.
		Where("featured = ? AND status = ?", true, models.StatusAvailable).
		Preload("Seller").
		Order("created_at DESC").
		Limit(6).
		Find(&properties).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch featured properties"})
		return
	}

	if err := database.CacheSet(featuredCacheKey, properties, 60*time.Second); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache featured properties")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(properties), "data": properties})
}

// GetUserProperties returns a seller's listings, excluding deleted ones
func GetUserProperties(c *gin.Context) {
	var properties []models.Property
	err := database.DB.
		Where("seller_id = ? AND status <> ?", c.Param("userId"), models.StatusDeleted).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(properties), "data": properties})
}

type LocationInput struct {
	City    string  `json:"city"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type CreatePropertyInput struct {
	Title        string        `json:"title" binding:"required"`
	Description  string        `json:"description" binding:"required"`
	Price        int64         `json:"price" binding:"required,gt=0"`
	Type         string        `json:"type" binding:"required,oneof=sale rent"`
	PropertyType string        `json:"propertyType" binding:"required,oneof=house apartment condo land"`
	Bedrooms     int           `json:"bedrooms" binding:"min=0"`
	Bathrooms    int           `json:"bathrooms" binding:"min=0"`
	Area         float64       `json:"area" binding:"required,gt=0"`
	Location     LocationInput `json:"location"`
	Images       []string      `json:"images"`
	Amenities    []string      `json:"amenities"`
}

// CreateProperty creates a listing owned by the caller
func CreateProperty(c *gin.Context) {
	actor := currentActor(c)
	if decision := policy.CanAct(actor, policy.ActionCreateProperty, nil); !decision.Allowed {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": decision.Reason})
		return
	}

	var input CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	property := models.Property{
		ID:           utils.GenerateID(),
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Type:         models.ListingType(input.Type),
		PropertyType: models.PropertyType(input.PropertyType),
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         input.Area,
		Location: models.Location{
			City:    input.Location.City,
			Address: input.Location.Address,
			Lat:     input.Location.Lat,
			Lng:     input.Location.Lng,
		},
		Images:    input.Images,
		Amenities: input.Amenities,
		Status:    models.StatusAvailable,
		// Seller is always the caller, never trusted from the payload
		SellerID: actor.ID,
	}

	if err := database.DB.Create(&property).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create property")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create property"})
		return
	}

	database.CacheInvalidate(featuredCacheKey)

	logger.Info().Str("property_id", property.ID).Str("seller_id", actor.ID).Msg("Property created")
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": property})
}

type UpdatePropertyInput struct {
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	Price        *int64         `json:"price" binding:"omitempty,gt=0"`
	Type         *string        `json:"type" binding:"omitempty,oneof=sale rent"`
	PropertyType *string        `json:"propertyType" binding:"omitempty,oneof=house apartment condo land"`
	Bedrooms     *int           `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms    *int           `json:"bathrooms" binding:"omitempty,min=0"`
	Area         *float64       `json:"area" binding:"omitempty,gt=0"`
	Location     *LocationInput `json:"location"`
	Images       []string       `json:"images"`
	Amenities    []string       `json:"amenities"`
	Status       *string        `json:"status" binding:"omitempty,oneof=available sold rented deleted"`
	Featured     *bool          `json:"featured"`
}

// UpdateProperty patches a listing. Seller and views are never updatable.
func UpdateProperty(c *gin.Context) {
	var property models.Property
	if err := database.DB.First(&property, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Property not found"})
		return
	}

	actor := currentActor(c)
	if decision := policy.CanAct(actor, policy.ActionUpdateProperty, &property); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not authorized to update this property"})
		return
	}

	var input UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.PropertyType != nil {
		updates["property_type"] = *input.PropertyType
	}
	if input.Bedrooms != nil {
		updates["bedrooms"] = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		updates["bathrooms"] = *input.Bathrooms
	}
	if input.Area != nil {
		updates["area"] = *input.Area
	}
	if input.Location != nil {
		updates["location_city"] = input.Location.City
		updates["location_address"] = input.Location.Address
		updates["location_lat"] = input.Location.Lat
		updates["location_lng"] = input.Location.Lng
	}
	if input.Images != nil {
		updates["images"] = pq.StringArray(input.Images)
	}
	if input.Amenities != nil {
		updates["amenities"] = pq.StringArray(input.Amenities)
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Featured != nil {
		updates["featured"] = *input.Featured
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&property).Updates(updates).Error; err != nil {
			logger.Error().Err(err).Str("property_id", property.ID).Msg("Failed to update property")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update property"})
			return
		}
		database.CacheInvalidate(featuredCacheKey)
	}

	if err := database.DB.Preload("Seller").First(&property, "id = ?", property.ID).Error; err != nil {
		logger.Error().Err(err).Str("property_id", property.ID).Msg("Failed to reload property after update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": property})
}

// DeleteProperty removes a listing entirely
func DeleteProperty(c *gin.Context) {
	var property models.Property
	if err := database.DB.First(&property, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Property not found"})
		return
	}

	actor := currentActor(c)
	if decision := policy.CanAct(actor, policy.ActionDeleteProperty, &property); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not authorized to delete this property"})
		return
	}

	if err := database.DB.Delete(&property).Error; err != nil {
		logger.Error().Err(err).Str("property_id", property.ID).Msg("Failed to delete property")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete property"})
		return
	}

	database.CacheInvalidate(featuredCacheKey)

	logger.Info().Str("property_id", property.ID).Str("actor_id", actor.ID).Msg("Property deleted")
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
