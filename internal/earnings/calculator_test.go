package earnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
	"github.com/fleetpay/fleetpay-backend/internal/models"
)

func testRoute() *models.Route {
	return &models.Route{
		RouteID:       "RT00001",
		Name:          "Chennai - Madurai",
		BattaPerTrip:  500,
		SalaryPerTrip: 300,
	}
}

func driverWith(pref models.PaymentPreference) *models.Driver {
	return &models.Driver{
		DriverID:          "DR00001",
		Name:              "Kumar",
		PaymentPreference: pref,
	}
}

func TestCalculate(t *testing.T) {
	route := testRoute()

	tests := []struct {
		name       string
		preference models.PaymentPreference
		tripCount  int
		wantBatta  float64
		wantSalary float64
	}{
		{
			name:       "split honours the route's own rates",
			preference: models.PaymentPreferenceSplit,
			tripCount:  1,
			wantBatta:  500,
			wantSalary: 300,
		},
		{
			name:       "batta_only reclassifies salary into batta",
			preference: models.PaymentPreferenceBattaOnly,
			tripCount:  1,
			wantBatta:  800,
			wantSalary: 0,
		},
		{
			name:       "salary_only reclassifies batta into salary",
			preference: models.PaymentPreferenceSalaryOnly,
			tripCount:  1,
			wantBatta:  0,
			wantSalary: 800,
		},
		{
			name:       "trip count multiplies both buckets",
			preference: models.PaymentPreferenceSplit,
			tripCount:  3,
			wantBatta:  1500,
			wantSalary: 900,
		},
		{
			name:       "trip count multiplies a reclassified bucket",
			preference: models.PaymentPreferenceBattaOnly,
			tripCount:  2,
			wantBatta:  1600,
			wantSalary: 0,
		},
		{
			name:       "zero trip count defaults to one",
			preference: models.PaymentPreferenceSplit,
			tripCount:  0,
			wantBatta:  500,
			wantSalary: 300,
		},
		{
			name:       "negative trip count defaults to one",
			preference: models.PaymentPreferenceSalaryOnly,
			tripCount:  -4,
			wantBatta:  0,
			wantSalary: 800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Calculate(route, driverWith(tt.preference), tt.tripCount)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBatta, result.Batta)
			assert.Equal(t, tt.wantSalary, result.Salary)
		})
	}
}

// Money is never created or destroyed by routing: for every preference
// the two buckets sum to the route total times the trip count.
func TestCalculateConservesTotal(t *testing.T) {
	route := testRoute()
	total := route.BattaPerTrip + route.SalaryPerTrip

	preferences := []models.PaymentPreference{
		models.PaymentPreferenceBattaOnly,
		models.PaymentPreferenceSalaryOnly,
		models.PaymentPreferenceSplit,
	}

	for _, pref := range preferences {
		for _, count := range []int{1, 2, 7} {
			result, err := Calculate(route, driverWith(pref), count)
			require.NoError(t, err)
			assert.Equal(t, total*float64(count), result.Batta+result.Salary,
				"preference %s, count %d", pref, count)
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	route := testRoute()
	driver := driverWith(models.PaymentPreferenceSplit)

	first, err := Calculate(route, driver, 2)
	require.NoError(t, err)
	second, err := Calculate(route, driver, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateUnknownPreference(t *testing.T) {
	route := testRoute()
	driver := driverWith(models.PaymentPreference("cash_in_hand"))

	result, err := Calculate(route, driver, 1)
	require.Error(t, err)
	assert.Equal(t, Result{}, result)

	var prefErr *apperrors.UnknownPaymentPreferenceError
	require.ErrorAs(t, err, &prefErr)
	assert.Equal(t, "cash_in_hand", prefErr.Preference)
}

func TestTotal(t *testing.T) {
	trips := []*models.Trip{
		{BattaEarned: 500, SalaryEarned: 300},
		{BattaEarned: 800, SalaryEarned: 0},
		{BattaEarned: 0, SalaryEarned: 1600},
	}

	total := Total(trips)
	assert.Equal(t, 1300.0, total.Batta)
	assert.Equal(t, 1900.0, total.Salary)

	assert.Equal(t, Result{}, Total(nil))
}
