package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/darshanik-apparels/b2b-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger errors surfaced to callers. Not-found is a distinct outcome so the
// HTTP layer can map it to a 404 instead of a generic failure.
var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrInvalidProgress       = errors.New("progress percentage must be between 0 and 100")
	ErrSizeBreakdownMismatch = errors.New("size breakdown does not sum to order quantity")
	ErrTotalMismatch         = errors.New("total amount does not equal subtotal plus fees and tax")
)

// OrderService owns order records: number assignment, creation, and the
// status timeline. Status updates for the same order are serialized with a
// per-order mutex so two concurrent timeline appends cannot clobber each
// other's snapshot.
type OrderService struct {
	db    *gorm.DB
	locks sync.Map // order ID -> *sync.Mutex
}

var orderServiceInstance *OrderService

// InitOrderService initializes the order service backed by db
func InitOrderService(db *gorm.DB) *OrderService {
	orderServiceInstance = NewOrderService(db)
	return orderServiceInstance
}

// GetOrderService returns the initialized order service instance
func GetOrderService() *OrderService {
	return orderServiceInstance
}

// NewOrderService creates an order service backed by db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrderInput carries the validated payload for placing an order.
// The caller has already authenticated the owner and resolved the product.
type CreateOrderInput struct {
	UserID           uint
	ProductID        uint
	Quantity         int
	SizeBreakdown    models.QuantityMap
	Colors           models.QuantityMap
	Customization    models.JSONMap
	DeliveryDate     *time.Time
	Subtotal         float64
	CustomizationFee float64
	ShippingFee      float64
	Tax              float64
	TotalAmount      float64
	ShippingAddress  string
	ContactName      string
	ContactPhone     string
	Notes            string
}

// CreateOrder validates the order invariants, assigns the next order number
// and inserts the order, all inside one transaction. New orders start as
// pending with a single seeded timeline entry and progress 0.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if len(input.SizeBreakdown) > 0 && input.SizeBreakdown.Total() != input.Quantity {
		return nil, ErrSizeBreakdownMismatch
	}
	expectedTotal := input.Subtotal + input.CustomizationFee + input.ShippingFee + input.Tax
	if !amountsEqual(input.TotalAmount, expectedTotal) {
		return nil, ErrTotalMismatch
	}

	now := time.Now()
	order := &models.Order{
		UserID:           input.UserID,
		ProductID:        input.ProductID,
		Quantity:         input.Quantity,
		SizeBreakdown:    input.SizeBreakdown,
		Colors:           input.Colors,
		Customization:    input.Customization,
		DeliveryDate:     input.DeliveryDate,
		Status:           models.StatusPending,
		StatusTimeline: models.StatusTimeline{{
			Status:    models.StatusPending,
			Timestamp: now,
			Note:      "Order received and awaiting confirmation",
		}},
		Subtotal:           input.Subtotal,
		CustomizationFee:   input.CustomizationFee,
		ShippingFee:        input.ShippingFee,
		Tax:                input.Tax,
		TotalAmount:        input.TotalAmount,
		ShippingAddress:    input.ShippingAddress,
		ContactName:        input.ContactName,
		ContactPhone:       input.ContactPhone,
		Notes:              input.Notes,
		ProgressPercentage: 0,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx, now)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// nextOrderNumber increments the per-year counter and formats the order
// number. The increment and the subsequent insert share tx, so two orders
// created concurrently can never receive the same number: the row lock on
// the counter holds until the transaction commits.
func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	year := now.Year()

	// Make sure the counter row for this year exists
	counter := models.OrderCounter{Year: year}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
		return "", err
	}

	// Single atomic increment; never derived from a row count
	if err := tx.Model(&models.OrderCounter{}).
		Where("year = ?", year).
		Update("value", gorm.Expr("value + ?", 1)).Error; err != nil {
		return "", err
	}

	if err := tx.Where("year = ?", year).First(&counter).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("DAS-%d-%04d", year, counter.Value), nil
}

// GetOrder fetches a single order by its numeric id
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &order, nil
}

// GetOrderByNumber fetches a single order by its human-readable number
func (s *OrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Product").Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &order, nil
}

// GetUserOrders lists the orders owned by userID, most recent first
func (s *OrderService) GetUserOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// AdvanceStatus moves the order to newStatus, appends a timeline event, and
// overwrites the progress percentage only when one is supplied. Re-applying
// the current status appends a second event with a fresh timestamp; the
// timeline is an audit log and never no-ops.
func (s *OrderService) AdvanceStatus(id uint, newStatus models.OrderStatus, progress *int) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}
	if progress != nil && (*progress < 0 || *progress > 100) {
		return nil, ErrInvalidProgress
	}

	// Serialize status updates per order; the read-modify-write below would
	// otherwise lose timeline entries under concurrent updates.
	lock := s.orderLock(id)
	lock.Lock()
	defer lock.Unlock()

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}

		order.Status = newStatus
		order.StatusTimeline = append(order.StatusTimeline, models.StatusEvent{
			Status:    newStatus,
			Timestamp: time.Now(),
			Note:      fmt.Sprintf("Order status updated to %s", newStatus),
		})
		if progress != nil {
			order.ProgressPercentage = *progress
		}

		return tx.Save(&order).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &order, nil
}

func (s *OrderService) orderLock(id uint) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// amountsEqual compares money values with a cent of tolerance to absorb
// float rounding in submitted payloads.
func amountsEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.01
}
