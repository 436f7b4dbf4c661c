package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/darshanik-apparels/b2b-api/middleware"
	"github.com/darshanik-apparels/b2b-api/models"
)

func TestCreateSample(t *testing.T) {
	db := setupControllerTestDB(t)
	user := createTestUser(t, db, "auth0|client")
	product := createTestProduct(t, db)

	router := setupTestRouter("auth0|client", "")
	router.POST("/samples", CreateSample)

	w := performRequest(router, "POST", "/samples", gin.H{
		"product_id":       product.ID,
		"shipping_address": "123 Fashion Avenue",
		"contact_name":     "John Smith",
		"contact_phone":    "+1 (555) 123-4567",
		"sample_fee":       15.00,
		"shipping_fee":     5.00,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])

	var activities []models.Activity
	assert.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, models.ActivitySampleRequest).Find(&activities).Error)
	assert.Len(t, activities, 1)
	assert.Equal(t, "Sample Request Submitted", activities[0].Title)
}

func TestCreateSampleUnknownProduct(t *testing.T) {
	db := setupControllerTestDB(t)
	createTestUser(t, db, "auth0|client")

	router := setupTestRouter("auth0|client", "")
	router.POST("/samples", CreateSample)

	w := performRequest(router, "POST", "/samples", gin.H{
		"product_id":       999,
		"shipping_address": "123 Fashion Avenue",
		"contact_name":     "John Smith",
		"contact_phone":    "+1 (555) 123-4567",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(parseResponse(t, w)))
}

func TestListSamples(t *testing.T) {
	db := setupControllerTestDB(t)
	user := createTestUser(t, db, "auth0|client")
	other := createTestUser(t, db, "auth0|other")
	product := createTestProduct(t, db)

	for _, owner := range []models.User{user, other} {
		sample := models.Sample{
			UserID:          owner.ID,
			ProductID:       product.ID,
			Status:          models.SamplePending,
			ShippingAddress: "123 Fashion Avenue",
			ContactName:     "John Smith",
			ContactPhone:    "+1 (555) 123-4567",
		}
		assert.NoError(t, db.Create(&sample).Error)
	}

	router := setupTestRouter("auth0|client", "")
	router.GET("/samples", ListSamples)

	w := performRequest(router, "GET", "/samples", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1, "only the caller's own samples are listed")
}

func TestUpdateSampleStatus(t *testing.T) {
	db := setupControllerTestDB(t)
	user := createTestUser(t, db, "auth0|staff")
	product := createTestProduct(t, db)
	sample := models.Sample{
		UserID:          user.ID,
		ProductID:       product.ID,
		Status:          models.SamplePending,
		ShippingAddress: "123 Fashion Avenue",
		ContactName:     "John Smith",
		ContactPhone:    "+1 (555) 123-4567",
	}
	assert.NoError(t, db.Create(&sample).Error)

	router := setupTestRouter("auth0|staff", "update:samples")
	router.PATCH("/samples/:id/status", middleware.RequireScope("update:samples"), UpdateSampleStatus)

	w := performRequest(router, "PATCH", fmt.Sprintf("/samples/%d/status", sample.ID), gin.H{
		"status": "shipped",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var reloaded models.Sample
	assert.NoError(t, db.First(&reloaded, sample.ID).Error)
	assert.Equal(t, models.SampleShipped, reloaded.Status)
}

func TestUpdateSampleStatusRejectsUnknown(t *testing.T) {
	db := setupControllerTestDB(t)
	user := createTestUser(t, db, "auth0|staff")
	product := createTestProduct(t, db)
	sample := models.Sample{
		UserID:          user.ID,
		ProductID:       product.ID,
		Status:          models.SamplePending,
		ShippingAddress: "123 Fashion Avenue",
		ContactName:     "John Smith",
		ContactPhone:    "+1 (555) 123-4567",
	}
	assert.NoError(t, db.Create(&sample).Error)

	router := setupTestRouter("auth0|staff", "update:samples")
	router.PATCH("/samples/:id/status", middleware.RequireScope("update:samples"), UpdateSampleStatus)

	w := performRequest(router, "PATCH", fmt.Sprintf("/samples/%d/status", sample.ID), gin.H{
		"status": "vaporized",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", errorCode(parseResponse(t, w)))
}

func TestUpdateSampleStatusNotFound(t *testing.T) {
	setupControllerTestDB(t)

	router := setupTestRouter("auth0|staff", "update:samples")
	router.PATCH("/samples/:id/status", middleware.RequireScope("update:samples"), UpdateSampleStatus)

	w := performRequest(router, "PATCH", "/samples/999/status", gin.H{
		"status": "shipped",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SAMPLE_NOT_FOUND", errorCode(parseResponse(t, w)))
}
