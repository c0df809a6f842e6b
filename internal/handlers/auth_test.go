package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_CreatesUserWithDefaultRole(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	body, _ := json.Marshal(map[string]string{
		"name":     "New User",
		"email":    "new_user@example.com",
		"password": "secret123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	var stored models.User
	database.DB.Where("email = ?", "new_user@example.com").First(&stored)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.NotEqual(t, "secret123", stored.Password) // hashed
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "dup_u1", Email: "dup@example.com", Role: models.RoleUser})

	body, _ := json.Marshal(map[string]string{
		"name":     "Dup",
		"email":    "dup@example.com",
		"password": "secret123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	body, _ := json.Marshal(map[string]string{
		"name":     "Weak",
		"email":    "weak@example.com",
		"password": "123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	body, _ := json.Marshal(map[string]string{
		"name":     "Wannabe",
		"email":    "wannabe@example.com",
		"password": "secret123",
		"role":     "admin",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_RoundTrip(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	database.DB.Create(&models.User{ID: "login_u1", Email: "login_u1@example.com", Password: string(hash), Role: models.RoleUser})

	login := func(password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{
			"email":    "login_u1@example.com",
			"password": password,
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		c.Request.Header.Set("Content-Type", "application/json")
		Login(c)
		return w
	}

	w := login("wrong-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = login("secret123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestUpdatePassword_RequiresCurrent(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpass1"), bcrypt.DefaultCost)
	database.DB.Create(&models.User{ID: "pw_u1", Email: "pw_u1@example.com", Password: string(hash), Role: models.RoleUser})

	attempt := func(current string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{
			"currentPassword": current,
			"newPassword":     "newpass1",
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest("PUT", "/api/auth/updatepassword", bytes.NewBuffer(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("userId", "pw_u1")
		UpdatePassword(c)
		return w
	}

	w := attempt("not-the-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = attempt("oldpass1")
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	database.DB.First(&stored, "id = ?", "pw_u1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpass1")))
}
