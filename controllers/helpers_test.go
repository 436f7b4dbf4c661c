package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/darshanik-apparels/b2b-api/config"
	"github.com/darshanik-apparels/b2b-api/middleware"
	"github.com/darshanik-apparels/b2b-api/models"
	"github.com/darshanik-apparels/b2b-api/services"
)

// setupControllerTestDB wires an in-memory database into the global config
// and service instances the controllers resolve at request time.
func setupControllerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Sample{},
		&models.Order{},
		&models.OrderCounter{},
		&models.Design{},
		&models.Message{},
		&models.Activity{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	services.InitOrderService(db)
	return db
}

// mockAuthMiddleware injects the context values the real JWT middleware
// would set for a token with the given subject and scope.
func mockAuthMiddleware(auth0ID, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: auth0ID},
			CustomClaims:     &middleware.CustomClaims{Scope: scope},
		})
		c.Next()
	}
}

func setupTestRouter(auth0ID, scope string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mockAuthMiddleware(auth0ID, scope))
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response body %q: %v", w.Body.String(), err)
	}
	return response
}

func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}

func createTestUser(t *testing.T, db *gorm.DB, auth0ID string) models.User {
	user := models.User{
		Auth0ID:      auth0ID,
		BusinessName: "Fashionista Exports",
		Email:        auth0ID + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB) models.Product {
	category := models.Category{Name: "T-Shirts", Description: "Various t-shirt styles"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	product := models.Product{
		Name:       "Premium Cotton T-Shirt",
		CategoryID: category.ID,
		MOQ:        100,
		PriceMin:   3.50,
		PriceMax:   4.20,
		Unit:       "pieces",
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}
