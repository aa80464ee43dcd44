package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/fleetpay/fleetpay-backend/database"
	"github.com/fleetpay/fleetpay-backend/internal/cache"
	"github.com/fleetpay/fleetpay-backend/internal/config"
	"github.com/fleetpay/fleetpay-backend/internal/jobs"
	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/routes"
	"github.com/fleetpay/fleetpay-backend/internal/services"
	"github.com/fleetpay/fleetpay-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	cfg := config.Load()

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if cfg.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.Driver{},
			&models.Route{},
			&models.Trip{},
			&models.Settlement{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		// Use database store
		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Initialize SMS service (optional - payouts still work without it)
	smsService, err := services.NewSMSService()
	if err != nil {
		log.Printf("⚠️  SMS disabled: %v", err)
		smsService = nil
	} else {
		log.Println("✅ SMS service initialized")
	}

	// Set global instances
	storage.SetStore(store)

	// Initialize services
	tripService := services.NewTripService(store)
	settlementService := services.NewSettlementService(store, smsService)
	summaryCache := cache.NewSummaryCache(cfg.RedisAddr)
	if cfg.RedisAddr != "" {
		log.Printf("✅ Summary cache enabled (redis: %s)", cfg.RedisAddr)
	}

	// Initialize and start the weekly reminder job
	reminderJob := jobs.NewReminderJob(store, smsService)
	reminderJob.Start()

	log.Println("✅ All services initialized and scheduled jobs started")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "FleetPay Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-API-Key",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// Root endpoint with database status
	app.Get("/", func(c *fiber.Ctx) error {
		response := fiber.Map{
			"service":     "FleetPay Backend API",
			"version":     "1.0.0",
			"status":      "healthy",
			"environment": getEnvironment(),
			"storage":     getStorageType(cfg),
			"sms": fiber.Map{
				"configured": smsService != nil,
			},
		}

		// Add database status if using database
		if !cfg.UseMemoryStore && database.DB != nil {
			sqlDB, err := database.DB.DB()
			dbStatus := "connected"
			if err != nil {
				dbStatus = "error: " + err.Error()
			} else if err := sqlDB.Ping(); err != nil {
				dbStatus = "error: " + err.Error()
			}

			// Get counts
			var driverCount, routeCount, tripCount, settlementCount int64
			database.DB.Model(&models.Driver{}).Count(&driverCount)
			database.DB.Model(&models.Route{}).Count(&routeCount)
			database.DB.Model(&models.Trip{}).Count(&tripCount)
			database.DB.Model(&models.Settlement{}).Count(&settlementCount)

			response["database"] = fiber.Map{
				"status":      dbStatus,
				"drivers":     driverCount,
				"routes":      routeCount,
				"trips":       tripCount,
				"settlements": settlementCount,
			}
		}

		return c.JSON(response)
	})

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		// Check database if using it
		if !cfg.UseMemoryStore && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"sms":      smsService != nil,
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app, store, tripService, settlementService, summaryCache)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping reminder job...")
		reminderJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 FleetPay Backend starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", getStorageType(cfg))
	log.Printf("🌍 Environment: %s", getEnvironment())
	log.Printf("📱 SMS: %s", getSMSStatus(smsService))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func getEnvironment() string {
	if os.Getenv("INSTANCE_CONNECTION_NAME") != "" {
		return "Production (Cloud Run)"
	}
	return "Development (Local)"
}

func getStorageType(cfg config.Config) string {
	if cfg.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func getSMSStatus(sms *services.SMSService) string {
	if sms == nil {
		return "Not configured"
	}
	return "Configured"
}
