package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/printdesk/printdesk/controllers"
	"github.com/printdesk/printdesk/middlewares"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/utils"
)

func setupUserTestDB(t *testing.T, dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+dsn+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	auth := router.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/profile", userCtrl.Profile)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest(method, path, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	return doJSON(t, router, "POST", path, payload, token)
}

func patchJSON(t *testing.T, router *gin.Engine, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	return doJSON(t, router, "PATCH", path, payload, token)
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t, "usertest1")
	router := setupUserRouter(db)

	rr := postJSON(t, router, "/register", map[string]string{
		"name":     "Shop Owner",
		"email":    "owner@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var regResp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &regResp))
	assert.True(t, regResp.Status)
	// First account is always admin.
	data := regResp.Data.(map[string]interface{})
	assert.Equal(t, "admin", data["role"])

	rr = postJSON(t, router, "/login", map[string]string{
		"email":    "owner@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	token := loginResp.Data.(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)

	// Token opens the authenticated area.
	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t, "usertest2")
	router := setupUserRouter(db)

	rr := postJSON(t, router, "/register", map[string]string{
		"name":     "Shop Owner",
		"email":    "owner2@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(t, router, "/login", map[string]string{
		"email":    "owner2@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t, "usertest3")
	router := setupUserRouter(db)

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSecondAccountDefaultsToStaff(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t, "usertest4")
	router := setupUserRouter(db)

	rr := postJSON(t, router, "/register", map[string]string{
		"name": "Owner", "email": "a@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(t, router, "/register", map[string]string{
		"name": "Helper", "email": "b@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "staff", resp.Data.(map[string]interface{})["role"])
}
