package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshanik-apparels/b2b-api/config"
	"github.com/darshanik-apparels/b2b-api/models"
	"github.com/darshanik-apparels/b2b-api/services"
)

// CreateSampleRequest represents the request body for requesting a fabric sample
type CreateSampleRequest struct {
	ProductID           uint    `json:"product_id" binding:"required"`
	ShippingAddress     string  `json:"shipping_address" binding:"required"`
	ContactName         string  `json:"contact_name" binding:"required"`
	ContactPhone        string  `json:"contact_phone" binding:"required"`
	SpecialInstructions string  `json:"special_instructions"`
	SampleFee           float64 `json:"sample_fee" binding:"omitempty,gte=0"`
	ShippingFee         float64 `json:"shipping_fee" binding:"omitempty,gte=0"`
	Tax                 float64 `json:"tax" binding:"omitempty,gte=0"`
	TotalFee            float64 `json:"total_fee" binding:"omitempty,gte=0"`
}

// UpdateSampleStatusRequest represents the request body for moving a sample
// through its status set
type UpdateSampleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListSamples handles GET /api/v1/samples - lists the client's sample requests
func ListSamples(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var samples []models.Sample
	if err := db.Where("user_id = ?", user.ID).
		Preload("Product").
		Order("created_at DESC").
		Find(&samples).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch samples",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    samples,
	})
}

// CreateSample handles POST /api/v1/samples - requests a fabric sample
func CreateSample(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req CreateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	sample := models.Sample{
		UserID:              user.ID,
		ProductID:           product.ID,
		Status:              models.SamplePending,
		ShippingAddress:     req.ShippingAddress,
		ContactName:         req.ContactName,
		ContactPhone:        req.ContactPhone,
		SpecialInstructions: req.SpecialInstructions,
		SampleFee:           req.SampleFee,
		ShippingFee:         req.ShippingFee,
		Tax:                 req.Tax,
		TotalFee:            req.TotalFee,
	}

	if err := db.Create(&sample).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create sample request",
			},
		})
		return
	}

	// Best-effort feed entry; never fails the sample request
	services.RecordActivity(db, user.ID, models.ActivitySampleRequest, sample.ID,
		"Sample Request Submitted",
		"Your sample request has been submitted and is pending approval")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    sample,
	})
}

// UpdateSampleStatus handles PATCH /api/v1/samples/:id/status - moves a
// sample request through its status set (staff only, guarded by scope)
func UpdateSampleStatus(c *gin.Context) {
	var req UpdateSampleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	status := models.SampleStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown sample status",
			},
		})
		return
	}

	db := config.GetDB()
	var sample models.Sample
	if err := db.First(&sample, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SAMPLE_NOT_FOUND",
				"message": "Sample not found",
			},
		})
		return
	}

	sample.Status = status
	if err := db.Save(&sample).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update sample status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sample,
	})
}
