package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetpay/fleetpay-backend/internal/cache"
	"github.com/fleetpay/fleetpay-backend/internal/handlers"
	"github.com/fleetpay/fleetpay-backend/internal/middleware"
	"github.com/fleetpay/fleetpay-backend/internal/services"
	"github.com/fleetpay/fleetpay-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, trips *services.TripService, settlements *services.SettlementService, summaries *cache.SummaryCache) {

	driverHandler := handlers.NewDriverHandler(store)
	routeHandler := handlers.NewRouteHandler(store)
	tripHandler := handlers.NewTripHandler(trips)
	settlementHandler := handlers.NewSettlementHandler(settlements)
	earningsHandler := handlers.NewEarningsHandler(settlements, summaries)

	// API routes
	api := app.Group("/api", middleware.RequireAPIKey())

	// Driver routes
	drivers := api.Group("/drivers")
	drivers.Post("/", driverHandler.Register)
	drivers.Get("/", driverHandler.GetDrivers)
	drivers.Get("/:id", driverHandler.GetDriver)
	drivers.Put("/:id", driverHandler.UpdateDriver)
	drivers.Delete("/:id", driverHandler.DeleteDriver)

	// Route (rate card) routes
	busRoutes := api.Group("/routes")
	busRoutes.Post("/", routeHandler.CreateRoute)
	busRoutes.Get("/", routeHandler.GetRoutes)
	busRoutes.Get("/:id", routeHandler.GetRoute)
	busRoutes.Put("/:id", routeHandler.UpdateRoute)
	busRoutes.Delete("/:id", routeHandler.DeleteRoute)

	// Trip routes
	tripGroup := api.Group("/trips")
	tripGroup.Post("/", tripHandler.CreateTrip)
	tripGroup.Get("/", tripHandler.GetTrips)
	tripGroup.Get("/:id", tripHandler.GetTrip)
	tripGroup.Delete("/:id", tripHandler.DeleteTrip)

	// Settlement routes
	settlementGroup := api.Group("/settlements")
	settlementGroup.Post("/", settlementHandler.CreateSettlement)
	settlementGroup.Get("/", settlementHandler.GetSettlements)
	settlementGroup.Get("/:id", settlementHandler.GetSettlement)
	settlementGroup.Patch("/:id", settlementHandler.MarkPaid)
	settlementGroup.Put("/:id", settlementHandler.UpdateSettlement)
	settlementGroup.Delete("/:id", settlementHandler.DeleteSettlement)

	// Earnings summary
	api.Get("/earnings", earningsHandler.GetSummary)
}
