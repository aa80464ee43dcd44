package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Trip is a driver's logged work on a route for one calendar date.
// BattaEarned and SalaryEarned are computed once when the trip is created
// and never recomputed, so later route edits don't touch history.
type Trip struct {
	gorm.Model

	TripID    string `json:"trip_id" gorm:"uniqueIndex"`
	DriverID  string `json:"driver_id" gorm:"index"`
	RouteID   string `json:"route_id" gorm:"index"`
	VehicleNo string `json:"vehicle_no"`

	// Calendar date in YYYY-MM-DD form, no time component
	TripDate string `json:"trip_date" gorm:"index"`

	// TripCount lets several trips on the same route/date be logged as one entry
	TripCount int `json:"trip_count" gorm:"default:1"`

	BattaEarned  float64 `json:"batta_earned"`
	SalaryEarned float64 `json:"salary_earned"`
}

// BeforeCreate hook to auto-generate TripID and normalize data
func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.TripID == "" {
		t.TripID = fmt.Sprintf("TP%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}

	t.VehicleNo = strings.ToUpper(strings.ReplaceAll(t.VehicleNo, " ", ""))

	if t.TripCount == 0 {
		t.TripCount = 1
	}

	return nil
}

// TripRequest is the create-trip input
type TripRequest struct {
	DriverID  string `json:"driver_id" validate:"required"`
	RouteID   string `json:"route_id" validate:"required"`
	VehicleNo string `json:"vehicle_no" validate:"required"`
	TripDate  string `json:"trip_date" validate:"required"`
	TripCount int    `json:"trip_count"`
}

// TripFilter parameters for listing trips. Dates are inclusive bounds
// in YYYY-MM-DD form; empty fields are ignored.
type TripFilter struct {
	DriverID  string `json:"driver_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
