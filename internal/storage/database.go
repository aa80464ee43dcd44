package storage

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
	"github.com/fleetpay/fleetpay-backend/internal/models"
)

// DatabaseStore implements Store on top of PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Driver operations

func (d *DatabaseStore) CreateDriver(reg *models.DriverRegistration) (*models.Driver, error) {
	driver := &models.Driver{
		Name:              reg.Name,
		Phone:             reg.Phone,
		VehicleNo:         reg.VehicleNo,
		PaymentPreference: reg.PaymentPreference,
	}
	if err := d.db.Create(driver).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create driver")
	}
	return driver, nil
}

func (d *DatabaseStore) GetDriver(id string) (*models.Driver, error) {
	var driver models.Driver
	if err := d.db.Where("driver_id = ?", id).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("driver", id)
		}
		return nil, pkgerrors.Wrap(err, "get driver")
	}
	return &driver, nil
}

func (d *DatabaseStore) GetAllDrivers() ([]*models.Driver, error) {
	var drivers []*models.Driver
	if err := d.db.Order("driver_id").Find(&drivers).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list drivers")
	}
	return drivers, nil
}

func (d *DatabaseStore) UpdateDriver(driver *models.Driver) error {
	result := d.db.Model(&models.Driver{}).Where("driver_id = ?", driver.DriverID).
		Updates(map[string]interface{}{
			"name":               driver.Name,
			"phone":              driver.Phone,
			"vehicle_no":         driver.VehicleNo,
			"payment_preference": driver.PaymentPreference,
		})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "update driver")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("driver", driver.DriverID)
	}
	return nil
}

func (d *DatabaseStore) DeleteDriver(id string) error {
	result := d.db.Where("driver_id = ?", id).Delete(&models.Driver{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "delete driver")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("driver", id)
	}
	return nil
}

// Route operations

func (d *DatabaseStore) CreateRoute(reg *models.RouteRegistration) (*models.Route, error) {
	route := &models.Route{
		Name:          reg.Name,
		Origin:        reg.Origin,
		Destination:   reg.Destination,
		BattaPerTrip:  reg.BattaPerTrip,
		SalaryPerTrip: reg.SalaryPerTrip,
	}
	if err := d.db.Create(route).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create route")
	}
	return route, nil
}

func (d *DatabaseStore) GetRoute(id string) (*models.Route, error) {
	var route models.Route
	if err := d.db.Where("route_id = ?", id).First(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("route", id)
		}
		return nil, pkgerrors.Wrap(err, "get route")
	}
	return &route, nil
}

func (d *DatabaseStore) GetAllRoutes() ([]*models.Route, error) {
	var routes []*models.Route
	if err := d.db.Order("route_id").Find(&routes).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list routes")
	}
	return routes, nil
}

func (d *DatabaseStore) UpdateRoute(route *models.Route) error {
	result := d.db.Model(&models.Route{}).Where("route_id = ?", route.RouteID).
		Updates(map[string]interface{}{
			"name":            route.Name,
			"origin":          route.Origin,
			"destination":     route.Destination,
			"batta_per_trip":  route.BattaPerTrip,
			"salary_per_trip": route.SalaryPerTrip,
		})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "update route")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("route", route.RouteID)
	}
	return nil
}

func (d *DatabaseStore) DeleteRoute(id string) error {
	result := d.db.Where("route_id = ?", id).Delete(&models.Route{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "delete route")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("route", id)
	}
	return nil
}

// Trip operations

func (d *DatabaseStore) CreateTrip(trip *models.Trip) (*models.Trip, error) {
	if err := d.db.Create(trip).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create trip")
	}
	return trip, nil
}

func (d *DatabaseStore) GetTrip(id string) (*models.Trip, error) {
	var trip models.Trip
	if err := d.db.Where("trip_id = ?", id).First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("trip", id)
		}
		return nil, pkgerrors.Wrap(err, "get trip")
	}
	return &trip, nil
}

func (d *DatabaseStore) ListTrips(filter *models.TripFilter) ([]*models.Trip, error) {
	query := d.db.Model(&models.Trip{}).Order("trip_date DESC, trip_id")
	if filter != nil {
		if filter.DriverID != "" {
			query = query.Where("driver_id = ?", filter.DriverID)
		}
		if filter.StartDate != "" {
			query = query.Where("trip_date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			query = query.Where("trip_date <= ?", filter.EndDate)
		}
	}

	var trips []*models.Trip
	if err := query.Find(&trips).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list trips")
	}
	return trips, nil
}

func (d *DatabaseStore) DeleteTrip(id string) error {
	result := d.db.Where("trip_id = ?", id).Delete(&models.Trip{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "delete trip")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("trip", id)
	}
	return nil
}

// Settlement operations

func (d *DatabaseStore) CreateSettlement(settlement *models.Settlement) (*models.Settlement, error) {
	if err := d.db.Create(settlement).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create settlement")
	}
	return settlement, nil
}

func (d *DatabaseStore) GetSettlement(id string) (*models.Settlement, error) {
	var settlement models.Settlement
	if err := d.db.Where("settlement_id = ?", id).First(&settlement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("settlement", id)
		}
		return nil, pkgerrors.Wrap(err, "get settlement")
	}
	return &settlement, nil
}

func (d *DatabaseStore) ListSettlements(filter *models.SettlementFilter) ([]*models.Settlement, error) {
	query := d.db.Model(&models.Settlement{}).Order("created_at DESC")
	if filter != nil {
		if filter.DriverID != "" {
			query = query.Where("driver_id = ?", filter.DriverID)
		}
		if filter.Type != "" {
			query = query.Where("settlement_type = ?", filter.Type)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	var settlements []*models.Settlement
	if err := query.Find(&settlements).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list settlements")
	}
	return settlements, nil
}

func (d *DatabaseStore) MarkSettlementPaid(id string) (*models.Settlement, bool, error) {
	now := time.Now()

	// Conditional update so two concurrent mark-paid calls cannot both
	// stamp settled_at
	result := d.db.Model(&models.Settlement{}).
		Where("settlement_id = ? AND status = ?", id, models.SettlementStatusPending).
		Updates(map[string]interface{}{
			"status":     models.SettlementStatusPaid,
			"settled_at": now,
		})
	if result.Error != nil {
		return nil, false, pkgerrors.Wrap(result.Error, "mark settlement paid")
	}

	settlement, err := d.GetSettlement(id)
	if err != nil {
		return nil, false, err
	}
	return settlement, result.RowsAffected > 0, nil
}

func (d *DatabaseStore) UpdateSettlement(settlement *models.Settlement) error {
	result := d.db.Model(&models.Settlement{}).Where("settlement_id = ?", settlement.SettlementID).
		Updates(map[string]interface{}{
			"status":     settlement.Status,
			"settled_at": settlement.SettledAt,
			"notes":      settlement.Notes,
		})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "update settlement")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("settlement", settlement.SettlementID)
	}
	return nil
}

func (d *DatabaseStore) DeleteSettlement(id string) error {
	result := d.db.Where("settlement_id = ?", id).Delete(&models.Settlement{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "delete settlement")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("settlement", id)
	}
	return nil
}
