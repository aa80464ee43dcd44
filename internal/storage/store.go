package storage

import (
	"github.com/fleetpay/fleetpay-backend/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// Driver operations
	CreateDriver(reg *models.DriverRegistration) (*models.Driver, error)
	GetDriver(id string) (*models.Driver, error)
	GetAllDrivers() ([]*models.Driver, error)
	UpdateDriver(driver *models.Driver) error
	DeleteDriver(id string) error

	// Route operations
	CreateRoute(reg *models.RouteRegistration) (*models.Route, error)
	GetRoute(id string) (*models.Route, error)
	GetAllRoutes() ([]*models.Route, error)
	UpdateRoute(route *models.Route) error
	DeleteRoute(id string) error

	// Trip operations
	CreateTrip(trip *models.Trip) (*models.Trip, error)
	GetTrip(id string) (*models.Trip, error)
	ListTrips(filter *models.TripFilter) ([]*models.Trip, error)
	DeleteTrip(id string) error

	// Settlement operations
	CreateSettlement(settlement *models.Settlement) (*models.Settlement, error)
	GetSettlement(id string) (*models.Settlement, error)
	ListSettlements(filter *models.SettlementFilter) ([]*models.Settlement, error)
	// MarkSettlementPaid transitions pending -> paid atomically and stamps
	// SettledAt. The bool result is false when the settlement was already
	// paid (repeat calls are a no-op).
	MarkSettlementPaid(id string) (*models.Settlement, bool, error)
	UpdateSettlement(settlement *models.Settlement) error
	DeleteSettlement(id string) error
}
