package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Route is the rate card a trip's earnings are computed from.
// Editing a route never changes already-recorded trips: trips persist
// their own earned amounts at creation time.
type Route struct {
	gorm.Model

	RouteID       string  `json:"route_id" gorm:"uniqueIndex"`
	Name          string  `json:"name"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	BattaPerTrip  float64 `json:"batta_per_trip"`
	SalaryPerTrip float64 `json:"salary_per_trip"`
}

// BeforeCreate hook to auto-generate RouteID
func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.RouteID == "" {
		r.RouteID = fmt.Sprintf("RT%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}
	return nil
}

// RouteRegistration is used for creating a new route
type RouteRegistration struct {
	Name          string  `json:"name" validate:"required"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	BattaPerTrip  float64 `json:"batta_per_trip"`
	SalaryPerTrip float64 `json:"salary_per_trip"`
}
