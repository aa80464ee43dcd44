package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// PaymentPreference decides how a trip's money is routed between the
// batta and salary buckets.
type PaymentPreference string

const (
	PaymentPreferenceBattaOnly  PaymentPreference = "batta_only"
	PaymentPreferenceSalaryOnly PaymentPreference = "salary_only"
	PaymentPreferenceSplit      PaymentPreference = "split"
)

// Valid reports whether p is one of the three known preferences.
func (p PaymentPreference) Valid() bool {
	switch p {
	case PaymentPreferenceBattaOnly, PaymentPreferenceSalaryOnly, PaymentPreferenceSplit:
		return true
	}
	return false
}

// Driver represents a bus driver on the operator's payroll
type Driver struct {
	// Using gorm.Model gives us ID (uint), CreatedAt, UpdatedAt, DeletedAt automatically
	gorm.Model

	DriverID          string            `json:"driver_id" gorm:"uniqueIndex"`
	Name              string            `json:"name"`
	Phone             string            `json:"phone"`
	VehicleNo         string            `json:"vehicle_no"`
	PaymentPreference PaymentPreference `json:"payment_preference" gorm:"default:split"`
}

// BeforeCreate hook to auto-generate DriverID and normalize data
func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.DriverID == "" {
		d.DriverID = fmt.Sprintf("DR%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}

	// Normalize vehicle number (remove spaces, convert to uppercase)
	d.VehicleNo = strings.ToUpper(strings.ReplaceAll(d.VehicleNo, " ", ""))

	// Normalize phone number (ensure it starts with +91 if not already)
	if d.Phone != "" && !strings.HasPrefix(d.Phone, "+") {
		d.Phone = "+91" + strings.TrimPrefix(d.Phone, "91")
	}

	if d.PaymentPreference == "" {
		d.PaymentPreference = PaymentPreferenceSplit
	}

	return nil
}

// DriverRegistration is used for registering a new driver
type DriverRegistration struct {
	Name              string            `json:"name" validate:"required"`
	Phone             string            `json:"phone"`
	VehicleNo         string            `json:"vehicle_no"`
	PaymentPreference PaymentPreference `json:"payment_preference"`
}
