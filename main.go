package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/darshanik-apparels/b2b-api/config"
	"github.com/darshanik-apparels/b2b-api/controllers"
	"github.com/darshanik-apparels/b2b-api/middleware"
	"github.com/darshanik-apparels/b2b-api/models"
	"github.com/darshanik-apparels/b2b-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Darshanik B2B API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
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
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	services.InitOrderService(db)
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, design file uploads disabled")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public catalog routes
		v1.GET("/categories", controllers.ListCategories)
		v1.GET("/categories/:id", controllers.GetCategory)
		v1.GET("/categories/:id/products", controllers.ListCategoryProducts)
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)
	}

	// Authenticated client routes
	authed := v1.Group("")
	authed.Use(middleware.EnsureValidToken(cfg))
	{
		authed.POST("/users", controllers.CreateUser)
		authed.GET("/users/me", controllers.GetCurrentUser)

		authed.GET("/samples", controllers.ListSamples)
		authed.POST("/samples", controllers.CreateSample)

		authed.GET("/orders", controllers.ListOrders)
		authed.POST("/orders", controllers.CreateOrder)
		authed.GET("/orders/:id", controllers.GetOrder)
		authed.GET("/orders/:id/timeline", controllers.GetOrderTimeline)

		authed.GET("/designs", controllers.ListDesigns)
		authed.POST("/designs", controllers.CreateDesign)
		authed.POST("/designs/:id/files", controllers.UploadDesignFile)

		authed.GET("/messages", controllers.ListMessages)
		authed.POST("/messages", controllers.CreateMessage)
		authed.PUT("/messages/:id/read", controllers.MarkMessageRead)

		authed.GET("/activities", controllers.ListActivities)

		// Staff routes guarded by token scope
		authed.PATCH("/orders/:id/status", middleware.RequireScope("update:orders"), controllers.UpdateOrderStatus)
		authed.PATCH("/samples/:id/status", middleware.RequireScope("update:samples"), controllers.UpdateSampleStatus)
		authed.PATCH("/designs/:id/status", middleware.RequireScope("update:designs"), controllers.UpdateDesignStatus)
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Darshanik B2B API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
