package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshanik-apparels/b2b-api/config"
	"github.com/darshanik-apparels/b2b-api/models"
	"github.com/darshanik-apparels/b2b-api/services"
	"github.com/darshanik-apparels/b2b-api/utils"
)

// CreateDesignRequest represents the request body for submitting a design
type CreateDesignRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"` // Logo, Full Print, Pattern, Embroidery
	OrderID *uint  `json:"order_id"`
	Notes   string `json:"notes"`
}

// UpdateDesignStatusRequest represents the request body for moving a design
// through its review states
type UpdateDesignStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListDesigns handles GET /api/v1/designs - lists the client's design submissions
func ListDesigns(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var designs []models.Design
	if err := db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&designs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch designs",
			},
		})
		return
	}

	for i := range designs {
		services.AttachDesignFileURLs(&designs[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    designs,
	})
}

// CreateDesign handles POST /api/v1/designs - submits a new design
func CreateDesign(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req CreateDesignRequest
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

	if !models.ValidDesignType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DESIGN_TYPE",
				"message": "Design type must be one of: Logo, Full Print, Pattern, Embroidery",
			},
		})
		return
	}

	db := config.GetDB()

	// A design may optionally be tied to one of the client's own orders
	if req.OrderID != nil {
		order, err := services.GetOrderService().GetOrder(*req.OrderID)
		if err != nil {
			if errors.Is(err, services.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "ORDER_NOT_FOUND",
						"message": "Order not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to fetch order",
				},
			})
			return
		}
		if order.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You do not have permission to access this order",
				},
			})
			return
		}
	}

	design := models.Design{
		UserID:  user.ID,
		Name:    req.Name,
		Type:    req.Type,
		OrderID: req.OrderID,
		Notes:   req.Notes,
		Status:  models.DesignSubmitted,
	}

	if err := db.Create(&design).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create design",
			},
		})
		return
	}

	// Best-effort feed entry; never fails the submission
	services.RecordActivity(db, user.ID, models.ActivityDesignUploaded, design.ID,
		"Design Uploaded",
		"Your design \""+design.Name+"\" has been uploaded successfully")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    design,
	})
}

// UploadDesignFile handles POST /api/v1/designs/:id/files - uploads an
// artwork file to S3 and attaches its key to the design
func UploadDesignFile(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var design models.Design
	if err := db.First(&design, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DESIGN_NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	if design.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to modify this design",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A file is required",
			},
		})
		return
	}

	if err := utils.ValidateDesignFile(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		code := "INVALID_FILE"
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_UNAVAILABLE",
				"message": "Design file uploads are not available",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload design file",
			},
		})
		return
	}

	design.FileKeys = append(design.FileKeys, s3Key)
	if err := db.Save(&design).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save design",
			},
		})
		return
	}

	services.AttachDesignFileURLs(&design)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    design,
	})
}

// UpdateDesignStatus handles PATCH /api/v1/designs/:id/status - moves a
// design through its review states (staff only, guarded by scope)
func UpdateDesignStatus(c *gin.Context) {
	var req UpdateDesignStatusRequest
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

	status := models.DesignStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown design status",
			},
		})
		return
	}

	db := config.GetDB()
	var design models.Design
	if err := db.First(&design, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DESIGN_NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	design.Status = status
	if err := db.Save(&design).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update design status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    design,
	})
}
