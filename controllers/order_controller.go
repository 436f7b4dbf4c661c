package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/darshanik-apparels/b2b-api/config"
	"github.com/darshanik-apparels/b2b-api/models"
	"github.com/darshanik-apparels/b2b-api/services"
)

// CreateOrderRequest represents the request body for placing a bulk order
type CreateOrderRequest struct {
	ProductID        uint                   `json:"product_id" binding:"required"`
	Quantity         int                    `json:"quantity" binding:"required,gt=0"`
	SizeBreakdown    map[string]int         `json:"size_breakdown"`
	Colors           map[string]int         `json:"colors"`
	Customization    map[string]interface{} `json:"customization"`
	DeliveryDate     *time.Time             `json:"delivery_date"`
	Subtotal         float64                `json:"subtotal" binding:"required,gt=0"`
	CustomizationFee float64                `json:"customization_fee" binding:"omitempty,gte=0"`
	ShippingFee      float64                `json:"shipping_fee" binding:"omitempty,gte=0"`
	Tax              float64                `json:"tax" binding:"omitempty,gte=0"`
	TotalAmount      float64                `json:"total_amount" binding:"required,gt=0"`
	ShippingAddress  string                 `json:"shipping_address" binding:"required"`
	ContactName      string                 `json:"contact_name" binding:"required"`
	ContactPhone     string                 `json:"contact_phone" binding:"required"`
	Notes            string                 `json:"notes"`
}

// UpdateOrderStatusRequest represents the request body for advancing an
// order through its fulfillment states
type UpdateOrderStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Progress *int   `json:"progress" binding:"omitempty,min=0,max=100"`
}

// CreateOrder handles POST /api/v1/orders - places a new bulk order
func CreateOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
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

	if req.Quantity < product.MOQ {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BELOW_MOQ",
				"message": fmt.Sprintf("Quantity is below the minimum order quantity of %d %s", product.MOQ, product.Unit),
			},
		})
		return
	}

	order, err := services.GetOrderService().CreateOrder(services.CreateOrderInput{
		UserID:           user.ID,
		ProductID:        product.ID,
		Quantity:         req.Quantity,
		SizeBreakdown:    req.SizeBreakdown,
		Colors:           req.Colors,
		Customization:    req.Customization,
		DeliveryDate:     req.DeliveryDate,
		Subtotal:         req.Subtotal,
		CustomizationFee: req.CustomizationFee,
		ShippingFee:      req.ShippingFee,
		Tax:              req.Tax,
		TotalAmount:      req.TotalAmount,
		ShippingAddress:  req.ShippingAddress,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
		Notes:            req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrSizeBreakdownMismatch) || errors.Is(err, services.ErrTotalMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Best-effort feed entry; never fails the order
	services.RecordActivity(db, user.ID, models.ActivityOrderCreated, order.ID,
		"Order Placed",
		fmt.Sprintf("Your order #%s has been placed successfully", order.OrderNumber))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists the authenticated client's orders
func ListOrders(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	orders, err := services.GetOrderService().GetUserOrders(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches one of the client's orders
func GetOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	order, ok := fetchOwnedOrder(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderTimeline handles GET /api/v1/orders/:id/timeline - returns the
// order's tracking view: every canonical state marked completed, current or
// future
func GetOrderTimeline(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	order, ok := fetchOwnedOrder(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"progress":     order.ProgressPercentage,
			"timeline":     order.TimelineView(),
		},
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - advances an
// order through its fulfillment states (staff only, guarded by scope)
func UpdateOrderStatus(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
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

	order, err := services.GetOrderService().AdvanceStatus(id, models.OrderStatus(req.Status), req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": fmt.Sprintf("%q is not a known order status", req.Status),
				},
			})
		case errors.Is(err, services.ErrInvalidProgress):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_PROGRESS",
					"message": "Progress percentage must be between 0 and 100",
				},
			})
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update order status",
				},
			})
		}
		return
	}

	// Best-effort feed entry; never fails the status update
	services.RecordActivity(config.GetDB(), order.UserID, models.ActivityOrderStatusChange, order.ID,
		"Order Status Updated",
		fmt.Sprintf("Order #%s is now %s", order.OrderNumber, order.Status))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// fetchOwnedOrder loads the order from the URL parameter and enforces
// ownership. On failure it writes the error response and returns false.
func fetchOwnedOrder(c *gin.Context, user *models.User) (*models.Order, bool) {
	id, ok := parseOrderID(c)
	if !ok {
		return nil, false
	}

	order, err := services.GetOrderService().GetOrder(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch order",
			},
		})
		return nil, false
	}

	if order.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to access this order",
			},
		})
		return nil, false
	}

	return order, true
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be a number",
			},
		})
		return 0, false
	}
	return uint(id), true
}
