package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
	"github.com/fleetpay/fleetpay-backend/internal/models"
)

// MemoryStore holds all data in memory, used for tests and local runs
type MemoryStore struct {
	drivers     map[string]*models.Driver
	routes      map[string]*models.Route
	trips       map[string]*models.Trip
	settlements map[string]*models.Settlement

	// Mutexes for thread safety
	driverMu     sync.RWMutex
	routeMu      sync.RWMutex
	tripMu       sync.RWMutex
	settlementMu sync.RWMutex

	// Counters for ID generation
	driverCounter     int
	routeCounter      int
	tripCounter       int
	settlementCounter int
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drivers:     make(map[string]*models.Driver),
		routes:      make(map[string]*models.Route),
		trips:       make(map[string]*models.Trip),
		settlements: make(map[string]*models.Settlement),
	}
}

// Driver operations

func (m *MemoryStore) CreateDriver(reg *models.DriverRegistration) (*models.Driver, error) {
	m.driverMu.Lock()
	defer m.driverMu.Unlock()

	preference := reg.PaymentPreference
	if preference == "" {
		preference = models.PaymentPreferenceSplit
	}

	m.driverCounter++
	now := time.Now()
	driver := &models.Driver{
		DriverID:          fmt.Sprintf("DR%05d", m.driverCounter),
		Name:              reg.Name,
		Phone:             reg.Phone,
		VehicleNo:         strings.ToUpper(strings.ReplaceAll(reg.VehicleNo, " ", "")),
		PaymentPreference: preference,
	}
	driver.CreatedAt = now
	driver.UpdatedAt = now

	m.drivers[driver.DriverID] = driver
	return driver, nil
}

func (m *MemoryStore) GetDriver(id string) (*models.Driver, error) {
	m.driverMu.RLock()
	defer m.driverMu.RUnlock()

	driver, exists := m.drivers[id]
	if !exists {
		return nil, apperrors.NewNotFound("driver", id)
	}
	return driver, nil
}

func (m *MemoryStore) GetAllDrivers() ([]*models.Driver, error) {
	m.driverMu.RLock()
	defer m.driverMu.RUnlock()

	drivers := make([]*models.Driver, 0, len(m.drivers))
	for _, driver := range m.drivers {
		drivers = append(drivers, driver)
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].DriverID < drivers[j].DriverID })
	return drivers, nil
}

func (m *MemoryStore) UpdateDriver(driver *models.Driver) error {
	m.driverMu.Lock()
	defer m.driverMu.Unlock()

	if _, exists := m.drivers[driver.DriverID]; !exists {
		return apperrors.NewNotFound("driver", driver.DriverID)
	}
	driver.UpdatedAt = time.Now()
	m.drivers[driver.DriverID] = driver
	return nil
}

func (m *MemoryStore) DeleteDriver(id string) error {
	m.driverMu.Lock()
	defer m.driverMu.Unlock()

	if _, exists := m.drivers[id]; !exists {
		return apperrors.NewNotFound("driver", id)
	}
	delete(m.drivers, id)
	return nil
}

// Route operations

func (m *MemoryStore) CreateRoute(reg *models.RouteRegistration) (*models.Route, error) {
	m.routeMu.Lock()
	defer m.routeMu.Unlock()

	m.routeCounter++
	now := time.Now()
	route := &models.Route{
		RouteID:       fmt.Sprintf("RT%05d", m.routeCounter),
		Name:          reg.Name,
		Origin:        reg.Origin,
		Destination:   reg.Destination,
		BattaPerTrip:  reg.BattaPerTrip,
		SalaryPerTrip: reg.SalaryPerTrip,
	}
	route.CreatedAt = now
	route.UpdatedAt = now

	m.routes[route.RouteID] = route
	return route, nil
}

func (m *MemoryStore) GetRoute(id string) (*models.Route, error) {
	m.routeMu.RLock()
	defer m.routeMu.RUnlock()

	route, exists := m.routes[id]
	if !exists {
		return nil, apperrors.NewNotFound("route", id)
	}
	return route, nil
}

func (m *MemoryStore) GetAllRoutes() ([]*models.Route, error) {
	m.routeMu.RLock()
	defer m.routeMu.RUnlock()

	routes := make([]*models.Route, 0, len(m.routes))
	for _, route := range m.routes {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].RouteID < routes[j].RouteID })
	return routes, nil
}

func (m *MemoryStore) UpdateRoute(route *models.Route) error {
	m.routeMu.Lock()
	defer m.routeMu.Unlock()

	if _, exists := m.routes[route.RouteID]; !exists {
		return apperrors.NewNotFound("route", route.RouteID)
	}
	route.UpdatedAt = time.Now()
	m.routes[route.RouteID] = route
	return nil
}

func (m *MemoryStore) DeleteRoute(id string) error {
	m.routeMu.Lock()
	defer m.routeMu.Unlock()

	if _, exists := m.routes[id]; !exists {
		return apperrors.NewNotFound("route", id)
	}
	delete(m.routes, id)
	return nil
}

// Trip operations

func (m *MemoryStore) CreateTrip(trip *models.Trip) (*models.Trip, error) {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	m.tripCounter++
	now := time.Now()
	trip.TripID = fmt.Sprintf("TP%05d", m.tripCounter)
	if trip.TripCount == 0 {
		trip.TripCount = 1
	}
	trip.CreatedAt = now
	trip.UpdatedAt = now

	m.trips[trip.TripID] = trip
	return trip, nil
}

func (m *MemoryStore) GetTrip(id string) (*models.Trip, error) {
	m.tripMu.RLock()
	defer m.tripMu.RUnlock()

	trip, exists := m.trips[id]
	if !exists {
		return nil, apperrors.NewNotFound("trip", id)
	}
	return trip, nil
}

func (m *MemoryStore) ListTrips(filter *models.TripFilter) ([]*models.Trip, error) {
	m.tripMu.RLock()
	defer m.tripMu.RUnlock()

	var results []*models.Trip
	for _, trip := range m.trips {
		if filter != nil {
			if filter.DriverID != "" && trip.DriverID != filter.DriverID {
				continue
			}
			// Inclusive bounds, YYYY-MM-DD strings order lexicographically
			if filter.StartDate != "" && trip.TripDate < filter.StartDate {
				continue
			}
			if filter.EndDate != "" && trip.TripDate > filter.EndDate {
				continue
			}
		}
		results = append(results, trip)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].TripDate == results[j].TripDate {
			return results[i].TripID < results[j].TripID
		}
		return results[i].TripDate > results[j].TripDate
	})
	return results, nil
}

func (m *MemoryStore) DeleteTrip(id string) error {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	if _, exists := m.trips[id]; !exists {
		return apperrors.NewNotFound("trip", id)
	}
	delete(m.trips, id)
	return nil
}

// Settlement operations

func (m *MemoryStore) CreateSettlement(settlement *models.Settlement) (*models.Settlement, error) {
	m.settlementMu.Lock()
	defer m.settlementMu.Unlock()

	m.settlementCounter++
	now := time.Now()
	settlement.SettlementID = fmt.Sprintf("ST%05d", m.settlementCounter)
	if settlement.Reference == "" {
		settlement.Reference = uuid.NewString()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementStatusPending
	}
	settlement.CreatedAt = now
	settlement.UpdatedAt = now

	m.settlements[settlement.SettlementID] = settlement
	return settlement, nil
}

func (m *MemoryStore) GetSettlement(id string) (*models.Settlement, error) {
	m.settlementMu.RLock()
	defer m.settlementMu.RUnlock()

	settlement, exists := m.settlements[id]
	if !exists {
		return nil, apperrors.NewNotFound("settlement", id)
	}
	return settlement, nil
}

func (m *MemoryStore) ListSettlements(filter *models.SettlementFilter) ([]*models.Settlement, error) {
	m.settlementMu.RLock()
	defer m.settlementMu.RUnlock()

	var results []*models.Settlement
	for _, settlement := range m.settlements {
		if filter != nil {
			if filter.DriverID != "" && settlement.DriverID != filter.DriverID {
				continue
			}
			if filter.Type != "" && settlement.SettlementType != filter.Type {
				continue
			}
			if filter.Status != "" && settlement.Status != filter.Status {
				continue
			}
		}
		results = append(results, settlement)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].SettlementID > results[j].SettlementID })
	return results, nil
}

func (m *MemoryStore) MarkSettlementPaid(id string) (*models.Settlement, bool, error) {
	m.settlementMu.Lock()
	defer m.settlementMu.Unlock()

	settlement, exists := m.settlements[id]
	if !exists {
		return nil, false, apperrors.NewNotFound("settlement", id)
	}
	if settlement.Status == models.SettlementStatusPaid {
		return settlement, false, nil
	}

	now := time.Now()
	settlement.Status = models.SettlementStatusPaid
	settlement.SettledAt = &now
	settlement.UpdatedAt = now
	return settlement, true, nil
}

func (m *MemoryStore) UpdateSettlement(settlement *models.Settlement) error {
	m.settlementMu.Lock()
	defer m.settlementMu.Unlock()

	if _, exists := m.settlements[settlement.SettlementID]; !exists {
		return apperrors.NewNotFound("settlement", settlement.SettlementID)
	}
	settlement.UpdatedAt = time.Now()
	m.settlements[settlement.SettlementID] = settlement
	return nil
}

func (m *MemoryStore) DeleteSettlement(id string) error {
	m.settlementMu.Lock()
	defer m.settlementMu.Unlock()

	if _, exists := m.settlements[id]; !exists {
		return apperrors.NewNotFound("settlement", id)
	}
	delete(m.settlements, id)
	return nil
}
