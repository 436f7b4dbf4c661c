package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/darshanik-apparels/b2b-api/models"
)

func setupOrderServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// In-memory sqlite needs a single connection: every pooled connection
	// would otherwise see its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderCounter{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedOrderTestData(t *testing.T, db *gorm.DB) (models.User, models.Product) {
	user := models.User{
		Auth0ID:      "auth0|client123",
		BusinessName: "Fashionista Exports",
		Email:        "info@fashionista.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

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
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return user, product
}

func validOrderInput(user models.User, product models.Product) CreateOrderInput {
	return CreateOrderInput{
		UserID:           user.ID,
		ProductID:        product.ID,
		Quantity:         500,
		SizeBreakdown:    models.QuantityMap{"S": 100, "M": 150, "L": 150, "XL": 75, "XXL": 25},
		Colors:           models.QuantityMap{"Black": 250, "White": 250},
		Subtotal:         2000.00,
		CustomizationFee: 500.00,
		ShippingFee:      100.00,
		Tax:              260.00,
		TotalAmount:      2860.00,
		ShippingAddress:  "123 Fashion Avenue, New York, NY 10001",
		ContactName:      "John Smith",
		ContactPhone:     "+1 (555) 123-4567",
	}
}

func TestCreateOrder_AssignsNumberAndDefaults(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	before := time.Now()
	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("DAS-%d-0001", year), order.OrderNumber)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 0, order.ProgressPercentage)
	assert.Equal(t, 500, order.Quantity)
	assert.Equal(t, order.Quantity, order.SizeBreakdown.Total(), "size values must sum to quantity")

	// Timeline is seeded with the pending entry
	assert.Len(t, order.StatusTimeline, 1)
	assert.Equal(t, models.StatusPending, order.StatusTimeline[0].Status)
	assert.False(t, order.StatusTimeline[0].Timestamp.Before(before))
}

func TestCreateOrder_NumbersShareYearPrefix(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	first, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)
	second, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	prefix := fmt.Sprintf("DAS-%d-", time.Now().Year())
	assert.Equal(t, prefix+"0001", first.OrderNumber)
	assert.Equal(t, prefix+"0002", second.OrderNumber)
}

func TestCreateOrder_UniqueNumbersUnderConcurrency(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	const n = 20
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := service.CreateOrder(validOrderInput(user, product))
			if assert.NoError(t, err) {
				numbers <- order.OrderNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for number := range numbers {
		assert.False(t, seen[number], "order number %s assigned twice", number)
		seen[number] = true
	}
	assert.Len(t, seen, n)
}

func TestCreateOrder_SizeBreakdownMismatch(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	input := validOrderInput(user, product)
	input.SizeBreakdown = models.QuantityMap{"S": 100, "M": 100}

	_, err := service.CreateOrder(input)
	assert.ErrorIs(t, err, ErrSizeBreakdownMismatch)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count, "rejected order must not be persisted")
}

func TestCreateOrder_EmptyBreakdownAllowed(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	input := validOrderInput(user, product)
	input.SizeBreakdown = nil

	order, err := service.CreateOrder(input)
	assert.NoError(t, err)
	assert.Equal(t, 500, order.Quantity)
}

func TestCreateOrder_TotalMismatch(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	input := validOrderInput(user, product)
	input.TotalAmount = 9999.99

	_, err := service.CreateOrder(input)
	assert.ErrorIs(t, err, ErrTotalMismatch)
}

func TestAdvanceStatus_AppendsTimelineEntry(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	updated, err := service.AdvanceStatus(order.ID, models.StatusConfirmed, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Len(t, updated.StatusTimeline, 2)

	last := updated.StatusTimeline[len(updated.StatusTimeline)-1]
	assert.Equal(t, models.StatusConfirmed, last.Status)
	assert.False(t, last.Timestamp.Before(order.CreatedAt), "timeline timestamp must not precede creation")
}

func TestAdvanceStatus_TimelineNeverShrinks(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	updated, err := service.AdvanceStatus(order.ID, models.StatusConfirmed, nil)
	assert.NoError(t, err)
	assert.Len(t, updated.StatusTimeline, 2)

	updated, err = service.AdvanceStatus(order.ID, models.StatusPaymentReceived, nil)
	assert.NoError(t, err)
	assert.Len(t, updated.StatusTimeline, 3)
	assert.True(t, updated.StatusTimeline.Contains(models.StatusConfirmed))
	assert.True(t, updated.StatusTimeline.Contains(models.StatusPaymentReceived))
}

func TestAdvanceStatus_RepeatedStatusAppendsAgain(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	_, err = service.AdvanceStatus(order.ID, models.StatusConfirmed, nil)
	assert.NoError(t, err)
	updated, err := service.AdvanceStatus(order.ID, models.StatusConfirmed, nil)
	assert.NoError(t, err)

	// Audit log: a second confirmed entry, not a no-op
	assert.Len(t, updated.StatusTimeline, 3)
	assert.Equal(t, models.StatusConfirmed, updated.StatusTimeline[1].Status)
	assert.Equal(t, models.StatusConfirmed, updated.StatusTimeline[2].Status)
}

func TestAdvanceStatus_ProgressOnlyWhenSupplied(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	progress := 30
	updated, err := service.AdvanceStatus(order.ID, models.StatusConfirmed, &progress)
	assert.NoError(t, err)
	assert.Equal(t, 30, updated.ProgressPercentage)

	// No progress argument leaves the previous value untouched
	updated, err = service.AdvanceStatus(order.ID, models.StatusPaymentReceived, nil)
	assert.NoError(t, err)
	assert.Equal(t, 30, updated.ProgressPercentage)

	updated, err = service.AdvanceStatus(order.ID, models.StatusInProduction, nil)
	assert.NoError(t, err)
	assert.Equal(t, 30, updated.ProgressPercentage)
}

func TestAdvanceStatus_FullScenario(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	_, err = service.AdvanceStatus(order.ID, models.StatusConfirmed, nil)
	assert.NoError(t, err)

	progress := 45
	updated, err := service.AdvanceStatus(order.ID, models.StatusInProduction, &progress)
	assert.NoError(t, err)

	assert.Equal(t, models.StatusInProduction, updated.Status)
	assert.Equal(t, 45, updated.ProgressPercentage)
	assert.Len(t, updated.StatusTimeline, 3)
	assert.Equal(t, models.StatusPending, updated.StatusTimeline[0].Status)
	assert.Equal(t, models.StatusConfirmed, updated.StatusTimeline[1].Status)
	assert.Equal(t, models.StatusInProduction, updated.StatusTimeline[2].Status)
}

func TestAdvanceStatus_NotFound(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	_, err = service.AdvanceStatus(99999, models.StatusConfirmed, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Nothing else was mutated
	reloaded, err := service.GetOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, reloaded.Status)
	assert.Len(t, reloaded.StatusTimeline, 1)
}

func TestAdvanceStatus_RejectsUnknownStatus(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	_, err = service.AdvanceStatus(order.ID, models.OrderStatus("made_up_state"), nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	reloaded, err := service.GetOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, reloaded.Status)
}

func TestAdvanceStatus_RejectsBadProgress(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	bad := 150
	_, err = service.AdvanceStatus(order.ID, models.StatusConfirmed, &bad)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	negative := -1
	_, err = service.AdvanceStatus(order.ID, models.StatusConfirmed, &negative)
	assert.ErrorIs(t, err, ErrInvalidProgress)
}

func TestAdvanceStatus_ConcurrentUpdatesLoseNothing(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	statuses := []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusPaymentReceived,
		models.StatusProductionStarted,
		models.StatusInProduction,
		models.StatusShipped,
	}

	var wg sync.WaitGroup
	for _, status := range statuses {
		wg.Add(1)
		go func(s models.OrderStatus) {
			defer wg.Done()
			_, err := service.AdvanceStatus(order.ID, s, nil)
			assert.NoError(t, err)
		}(status)
	}
	wg.Wait()

	reloaded, err := service.GetOrder(order.ID)
	assert.NoError(t, err)
	// Seed entry plus one per concurrent update; none clobbered
	assert.Len(t, reloaded.StatusTimeline, len(statuses)+1)
	for _, status := range statuses {
		assert.True(t, reloaded.StatusTimeline.Contains(status), "timeline lost entry for %s", status)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	service := NewOrderService(db)

	_, err := service.GetOrder(42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderByNumber(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	order, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)

	found, err := service.GetOrderByNumber(order.OrderNumber)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = service.GetOrderByNumber("DAS-1999-0001")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetUserOrders_OnlyOwn(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	user, product := seedOrderTestData(t, db)
	service := NewOrderService(db)

	other := models.User{
		Auth0ID:      "auth0|other",
		BusinessName: "Other Exports",
		Email:        "other@example.com",
	}
	assert.NoError(t, db.Create(&other).Error)

	_, err := service.CreateOrder(validOrderInput(user, product))
	assert.NoError(t, err)
	otherInput := validOrderInput(other, product)
	_, err = service.CreateOrder(otherInput)
	assert.NoError(t, err)

	orders, err := service.GetUserOrders(user.ID)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, user.ID, orders[0].UserID)
}
