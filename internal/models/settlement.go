package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettlementType constants - exactly one bucket per settlement
const (
	SettlementTypeBatta  = "batta"
	SettlementTypeSalary = "salary"
)

// SettlementStatus constants
const (
	SettlementStatusPending = "pending"
	SettlementStatusPaid    = "paid"
)

// Settlement is a payout record for one driver and one bucket over an
// inclusive date range. Amount is a snapshot of the trips summed at
// creation time, not a live query. Once paid, a settlement is immutable
// and cannot be deleted.
type Settlement struct {
	gorm.Model

	SettlementID string `json:"settlement_id" gorm:"uniqueIndex"`
	Reference    string `json:"reference" gorm:"uniqueIndex"` // operator-facing receipt reference
	DriverID     string `json:"driver_id" gorm:"index"`

	SettlementType string `json:"settlement_type"` // "batta" or "salary"

	// Inclusive calendar-date range in YYYY-MM-DD form
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	Amount float64 `json:"amount"`

	Status    string     `json:"status" gorm:"default:pending"` // "pending" or "paid"
	SettledAt *time.Time `json:"settled_at"`

	Notes string `json:"notes"`
}

// BeforeCreate hook to auto-generate SettlementID and the receipt reference
func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.SettlementID == "" {
		s.SettlementID = fmt.Sprintf("ST%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}
	if s.Reference == "" {
		s.Reference = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = SettlementStatusPending
	}
	return nil
}

// SettlementRequest is the create-settlement input
type SettlementRequest struct {
	DriverID       string `json:"driver_id" validate:"required"`
	SettlementType string `json:"settlement_type" validate:"required"`
	PeriodStart    string `json:"period_start" validate:"required"`
	PeriodEnd      string `json:"period_end" validate:"required"`
	Notes          string `json:"notes"`
}

// SettlementFilter parameters for listing settlements
type SettlementFilter struct {
	DriverID string `json:"driver_id"`
	Type     string `json:"type"`
	Status   string `json:"status"`
}

// SettlementTripLine is one trip's contribution shown alongside a settlement
type SettlementTripLine struct {
	Date   string  `json:"date"`
	Route  string  `json:"route"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// SettlementWithTrips is the list-view shape: the settlement plus the
// trips of its driver that fall inside its period.
type SettlementWithTrips struct {
	Settlement
	Trips []SettlementTripLine `json:"trips"`
}
