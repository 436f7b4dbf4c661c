package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/darshanik-apparels/b2b-api/config"
	"github.com/darshanik-apparels/b2b-api/models"
	"github.com/darshanik-apparels/b2b-api/services"
)

// CreateMessageRequest represents the request body for sending a message
type CreateMessageRequest struct {
	Content  string `json:"content" binding:"required"`
	OrderID  *uint  `json:"order_id"`
	SampleID *uint  `json:"sample_id"`
	DesignID *uint  `json:"design_id"`
}

// ListMessages handles GET /api/v1/messages - lists the client's messages
func ListMessages(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var messages []models.Message
	if err := db.Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// CreateMessage handles POST /api/v1/messages - sends a message from the client
func CreateMessage(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req CreateMessageRequest
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

	// When tied to an order, the order must belong to the sender
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

	// Same for sample and design associations
	if req.SampleID != nil {
		var sample models.Sample
		if err := db.First(&sample, *req.SampleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "SAMPLE_NOT_FOUND",
						"message": "Sample not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to fetch sample",
				},
			})
			return
		}
		if sample.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You do not have permission to access this sample",
				},
			})
			return
		}
	}

	if req.DesignID != nil {
		var design models.Design
		if err := db.First(&design, *req.DesignID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "DESIGN_NOT_FOUND",
						"message": "Design not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to fetch design",
				},
			})
			return
		}
		if design.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You do not have permission to access this design",
				},
			})
			return
		}
	}

	message := models.Message{
		UserID:     user.ID,
		OrderID:    req.OrderID,
		SampleID:   req.SampleID,
		DesignID:   req.DesignID,
		Content:    req.Content,
		IsFromUser: true,
	}

	if err := db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create message",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// MarkMessageRead handles PUT /api/v1/messages/:id/read - marks one of the
// client's messages as read
func MarkMessageRead(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var message models.Message
	if err := db.First(&message, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MESSAGE_NOT_FOUND",
				"message": "Message not found",
			},
		})
		return
	}

	if message.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to access this message",
			},
		})
		return
	}

	message.Read = true
	if err := db.Save(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to mark message as read",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    message,
	})
}
