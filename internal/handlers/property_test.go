package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
)

func TestCreateProperty_SellerForcedToCaller(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "creator1", Email: "creator1@example.com", Role: models.RoleUser})

	body, _ := json.Marshal(map[string]interface{}{
		"title":        "Test Listing",
		"description":  "A test listing",
		"price":        100,
		"type":         "sale",
		"propertyType": "house",
		"bedrooms":     3,
		"bathrooms":    2,
		"area":         1500.0,
		"sellerId":     "someone-else", // must be ignored
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/properties", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", "creator1")
	c.Set("userRole", models.RoleUser)

	CreateProperty(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var stored models.Property
	database.DB.Where("title = ?", "Test Listing").First(&stored)
	assert.Equal(t, "creator1", stored.SellerID)
}

func TestCreateProperty_AnonymousRejected(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/properties", bytes.NewBufferString(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateProperty(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProperty_OwnershipMatrix(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "owner_a", Email: "owner_a@example.com", Role: models.RoleUser})
	database.DB.Create(&models.User{ID: "other_b", Email: "other_b@example.com", Role: models.RoleUser})
	database.DB.Create(&models.User{ID: "admin_m", Email: "admin_m@example.com", Role: models.RoleAdmin})
	database.DB.Create(&models.Property{ID: "p_matrix", Title: "Old", SellerID: "owner_a", Status: models.StatusAvailable})

	update := func(userId string, role models.Role) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest("PUT", "/uri", bytes.NewBufferString(`{"title":"New Title"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "p_matrix"}}
		c.Set("userId", userId)
		c.Set("userRole", role)
		UpdateProperty(c)
		return w
	}

	// Another plain user is rejected
	w := update("other_b", models.RoleUser)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Property
	database.DB.First(&stored, "id = ?", "p_matrix")
	assert.Equal(t, "Old", stored.Title)

	// Owner succeeds
	w = update("owner_a", models.RoleUser)
	assert.Equal(t, http.StatusOK, w.Code)

	// Admin succeeds regardless of ownership
	w = update("admin_m", models.RoleAdmin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateProperty_SellerImmutable(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "owner_imm", Email: "owner_imm@example.com", Role: models.RoleUser})
	database.DB.Create(&models.Property{ID: "p_imm", Title: "Mine", SellerID: "owner_imm", Status: models.StatusAvailable})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/uri", bytes.NewBufferString(`{"sellerId":"hijacker","title":"Still Mine"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "p_imm"}}
	c.Set("userId", "owner_imm")
	c.Set("userRole", models.RoleUser)

	UpdateProperty(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Property
	database.DB.First(&stored, "id = ?", "p_imm")
	assert.Equal(t, "owner_imm", stored.SellerID)
	assert.Equal(t, "Still Mine", stored.Title)
}

func TestUpdateProperty_ResponseReflectsStoredRow(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "reload_seller", Name: "Reload Seller", Email: "reload_seller@example.com", Role: models.RoleSeller})
	database.DB.Create(&models.Property{ID: "reload_p1", Title: "Before", SellerID: "reload_seller", Status: models.StatusAvailable})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/uri", bytes.NewBufferString(`{"title":"After"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "reload_p1"}}
	c.Set("userId", "reload_seller")
	c.Set("userRole", models.RoleSeller)

	UpdateProperty(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data models.Property `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	// The body is the reloaded row, seller joined in
	assert.Equal(t, "After", response.Data.Title)
	assert.Equal(t, "Reload Seller", response.Data.Seller.Name)
}

func TestDeleteProperty_NonOwnerForbidden(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.Property{ID: "p_del", Title: "Keep", SellerID: "owner_del", Status: models.StatusAvailable})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/uri", nil)
	c.Params = gin.Params{{Key: "id", Value: "p_del"}}
	c.Set("userId", "stranger")
	c.Set("userRole", models.RoleSeller)

	DeleteProperty(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	database.DB.Model(&models.Property{}).Where("id = ?", "p_del").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetProperty_IncrementsViews(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "seller_v", Email: "seller_v@example.com", Role: models.RoleSeller})
	database.DB.Create(&models.Property{ID: "p_views", Title: "Viewed", SellerID: "seller_v", Status: models.StatusAvailable, Views: 5})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/uri", nil)
	c.Params = gin.Params{{Key: "id", Value: "p_views"}}

	GetProperty(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Property
	database.DB.First(&stored, "id = ?", "p_views")
	assert.Equal(t, int64(6), stored.Views)
}

func TestGetProperties_FilterExample(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	seed := []models.Property{
		{ID: "f1", Title: "Match Old", Price: 150000, Bedrooms: 2, Status: models.StatusAvailable, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: "f2", Title: "Match New", Price: 200000, Bedrooms: 3, Status: models.StatusAvailable, CreatedAt: time.Now().Add(-1 * time.Hour)},
		{ID: "f3", Title: "Too Cheap", Price: 50000, Bedrooms: 2, Status: models.StatusAvailable, CreatedAt: time.Now()},
		{ID: "f4", Title: "Too Few Beds", Price: 150000, Bedrooms: 1, Status: models.StatusAvailable, CreatedAt: time.Now()},
		{ID: "f5", Title: "Sold Match", Price: 150000, Bedrooms: 2, Status: models.StatusSold, CreatedAt: time.Now()},
	}
	for i := range seed {
		database.DB.Create(&seed[i])
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/properties?minPrice=100000&maxPrice=300000&bedrooms=2", nil)

	GetProperties(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int               `json:"count"`
		Total int64             `json:"total"`
		Data  []models.Property `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Equal(t, 2, response.Count)
	assert.Equal(t, int64(2), response.Total)
	// Newest-first by default
	if assert.Len(t, response.Data, 2) {
		assert.Equal(t, "f2", response.Data[0].ID)
		assert.Equal(t, "f1", response.Data[1].ID)
	}
}

func TestGetProperties_Pagination(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	for i := 0; i < 5; i++ {
		database.DB.Create(&models.Property{
			ID:        "pg_" + string(rune('a'+i)),
			Title:     "Paged",
			Price:     999999999, // keep out of other tests' ranges
			Bedrooms:  99,
			Status:    models.StatusAvailable,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/properties?bedrooms=99&page=2&limit=2", nil)

	GetProperties(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int   `json:"count"`
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Pages int   `json:"pages"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Equal(t, 2, response.Count)
	assert.Equal(t, int64(5), response.Total)
	assert.Equal(t, 2, response.Page)
	assert.Equal(t, 3, response.Pages)
}

func TestGetFeaturedProperties_LimitAndStatus(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	for i := 0; i < 8; i++ {
		database.DB.Create(&models.Property{
			ID:        "feat_" + string(rune('a'+i)),
			Title:     "Featured",
			Featured:  true,
			Status:    models.StatusAvailable,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
	}
	database.DB.Create(&models.Property{ID: "feat_sold", Title: "Featured Sold", Featured: true, Status: models.StatusSold})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/properties/featured", nil)

	GetFeaturedProperties(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.Property `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.LessOrEqual(t, len(response.Data), 6)
	for _, p := range response.Data {
		assert.True(t, p.Featured)
		assert.Equal(t, models.StatusAvailable, p.Status)
	}
}

func TestGetUserProperties_ExcludesDeleted(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.Property{ID: "up1", Title: "Live", SellerID: "lister1", Status: models.StatusAvailable})
	database.DB.Create(&models.Property{ID: "up2", Title: "Gone", SellerID: "lister1", Status: models.StatusDeleted})
	database.DB.Create(&models.Property{ID: "up3", Title: "Sold", SellerID: "lister1", Status: models.StatusSold})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/uri", nil)
	c.Params = gin.Params{{Key: "userId", Value: "lister1"}}

	GetUserProperties(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.Property `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Len(t, response.Data, 2)
	for _, p := range response.Data {
		assert.NotEqual(t, models.StatusDeleted, p.Status)
	}
}
