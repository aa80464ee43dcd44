// Package earnings computes how trip money splits between the batta and
// salary buckets. It is pure: no storage, no clock, same output for the
// same input.
package earnings

import (
	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
	"github.com/fleetpay/fleetpay-backend/internal/models"
)

// Result is the per-bucket outcome of routing a trip's money.
type Result struct {
	Batta  float64 `json:"batta"`
	Salary float64 `json:"salary"`
}

// Calculate splits the value of tripCount trips on a route between the
// batta and salary buckets according to the driver's payment preference.
// A non-positive tripCount defaults to 1. For any preference the two
// buckets always sum to (batta_per_trip + salary_per_trip) * tripCount.
func Calculate(route *models.Route, driver *models.Driver, tripCount int) (Result, error) {
	if tripCount <= 0 {
		tripCount = 1
	}

	totalPerTrip := route.BattaPerTrip + route.SalaryPerTrip
	n := float64(tripCount)

	switch driver.PaymentPreference {
	case models.PaymentPreferenceBattaOnly:
		// The route's salary component is reclassified into batta
		return Result{Batta: totalPerTrip * n, Salary: 0}, nil

	case models.PaymentPreferenceSalaryOnly:
		// The route's batta component is reclassified into salary
		return Result{Batta: 0, Salary: totalPerTrip * n}, nil

	case models.PaymentPreferenceSplit:
		// Route's own split is honored
		return Result{Batta: route.BattaPerTrip * n, Salary: route.SalaryPerTrip * n}, nil

	default:
		return Result{}, &apperrors.UnknownPaymentPreferenceError{Preference: string(driver.PaymentPreference)}
	}
}

// Total sums the stored earned amounts across trips. Used for reporting;
// settlement amounts are re-derived from per-trip fields in the
// settlement service, not here.
func Total(trips []*models.Trip) Result {
	var total Result
	for _, trip := range trips {
		total.Batta += trip.BattaEarned
		total.Salary += trip.SalaryEarned
	}
	return total
}
