package services

import (
	"log"

	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
	"github.com/fleetpay/fleetpay-backend/internal/earnings"
	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/storage"
	"github.com/fleetpay/fleetpay-backend/internal/utils"
)

// TripService records trips with their earnings frozen at creation time
type TripService struct {
	store storage.Store
}

// NewTripService creates a new trip service
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTrip validates the request, looks up the driver and route,
// computes the batta/salary split and persists the trip. The earned
// amounts are stored on the trip and never recomputed afterwards.
func (s *TripService) CreateTrip(req *models.TripRequest) (*models.Trip, error) {
	if req.DriverID == "" || req.RouteID == "" || req.VehicleNo == "" || req.TripDate == "" {
		return nil, apperrors.NewValidation("driver, route, vehicle number, and trip date are required")
	}
	if !utils.ValidDate(req.TripDate) {
		return nil, apperrors.NewValidation("trip date must be a YYYY-MM-DD calendar date")
	}

	tripCount := req.TripCount
	if tripCount <= 0 {
		tripCount = 1
	}

	driver, err := s.store.GetDriver(req.DriverID)
	if err != nil {
		return nil, err
	}
	route, err := s.store.GetRoute(req.RouteID)
	if err != nil {
		return nil, err
	}

	result, err := earnings.Calculate(route, driver, tripCount)
	if err != nil {
		// Driver validation upstream should make this unreachable; a hit
		// means corrupt stored data
		log.Printf("FATAL: earnings calculation failed for driver %s: %v", driver.DriverID, err)
		return nil, err
	}

	trip := &models.Trip{
		DriverID:     driver.DriverID,
		RouteID:      route.RouteID,
		VehicleNo:    req.VehicleNo,
		TripDate:     req.TripDate,
		TripCount:    tripCount,
		BattaEarned:  result.Batta,
		SalaryEarned: result.Salary,
	}
	return s.store.CreateTrip(trip)
}

// GetTrip retrieves a single trip
func (s *TripService) GetTrip(id string) (*models.Trip, error) {
	return s.store.GetTrip(id)
}

// ListTrips returns trips matching the filter
func (s *TripService) ListTrips(filter *models.TripFilter) ([]*models.Trip, error) {
	if filter != nil {
		if filter.StartDate != "" && !utils.ValidDate(filter.StartDate) {
			return nil, apperrors.NewValidation("start date must be a YYYY-MM-DD calendar date")
		}
		if filter.EndDate != "" && !utils.ValidDate(filter.EndDate) {
			return nil, apperrors.NewValidation("end date must be a YYYY-MM-DD calendar date")
		}
	}
	return s.store.ListTrips(filter)
}

// DeleteTrip removes a trip. Settlements already computed from it are
// left untouched: there is no trip-to-settlement link to adjust.
func (s *TripService) DeleteTrip(id string) error {
	return s.store.DeleteTrip(id)
}
