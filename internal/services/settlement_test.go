package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/storage"
)

func newSettlementFixture(t *testing.T) (*storage.MemoryStore, *TripService, *SettlementService, *models.Driver, *models.Route) {
	t.Helper()
	store, driver, route := newTestStore(t)
	return store, NewTripService(store), NewSettlementService(store, nil), driver, route
}

func logTrip(t *testing.T, trips *TripService, driverID, routeID, date string, count int) *models.Trip {
	t.Helper()
	trip, err := trips.CreateTrip(&models.TripRequest{
		DriverID:  driverID,
		RouteID:   routeID,
		VehicleNo: "TN01AB1234",
		TripDate:  date,
		TripCount: count,
	})
	require.NoError(t, err)
	return trip
}

func TestCreateSettlementSnapshotsTripTotals(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-09", 1)
	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-11", 2)
	// Outside the period, must not count
	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-20", 1)

	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, settlement.Amount, "500 + 2*500 batta inside the period")
	assert.Equal(t, models.SettlementStatusPending, settlement.Status)
	assert.NotEmpty(t, settlement.Reference)
	assert.Nil(t, settlement.SettledAt)
}

// The settlement amount is frozen at creation: trips logged afterwards
// inside the same period do not change it.
func TestSettlementAmountIsSnapshot(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 1)

	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, settlement.Amount)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-12", 1)

	got, err := settlements.GetSettlement(settlement.SettlementID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Amount)
}

func TestCreateSettlementValidation(t *testing.T) {
	_, _, settlements, driver, _ := newSettlementFixture(t)

	_, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
	})
	assert.True(t, apperrors.IsValidation(err), "missing period end")

	_, err = settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: "bonus",
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	assert.True(t, apperrors.IsValidation(err), "unknown settlement type")

	_, err = settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "09-06-2025",
		PeriodEnd:      "2025-06-15",
	})
	assert.True(t, apperrors.IsValidation(err), "malformed period date")

	_, err = settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       "DR99999",
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	assert.True(t, apperrors.IsNotFound(err), "unknown driver")
}

func TestCreateSettlementZeroAmountNoTrips(t *testing.T) {
	_, _, settlements, driver, _ := newSettlementFixture(t)

	_, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))
	assert.Contains(t, err.Error(), "no trips found")
}

// Trips exist but the requested bucket carries no value: a salary_only
// driver has zero batta, so a batta settlement must fail with the
// diagnostic message rather than create a zero payout.
func TestCreateSettlementZeroAmountWrongBucket(t *testing.T) {
	store, trips, settlements, driver, route := newSettlementFixture(t)

	driver.PaymentPreference = models.PaymentPreferenceSalaryOnly
	require.NoError(t, store.UpdateDriver(driver))

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 2)

	_, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))
	assert.Contains(t, err.Error(), "found 1 trips")
	assert.Contains(t, err.Error(), "payment preference")
}

// Nothing stops two settlements from covering the same trips: periods
// are not checked against prior settlements.
func TestOverlappingSettlementsDoubleCount(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 1)

	first, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)

	second, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-08",
		PeriodEnd:      "2025-06-14",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Amount, second.Amount, "both settlements sum the same trip")
}

func TestMarkPaid(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 1)
	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)

	paid, err := settlements.MarkPaid(settlement.SettlementID)
	require.NoError(t, err)
	assert.Equal(t, models.SettlementStatusPaid, paid.Status)
	require.NotNil(t, paid.SettledAt)

	// Marking an already-paid settlement succeeds and changes nothing
	again, err := settlements.MarkPaid(settlement.SettlementID)
	require.NoError(t, err)
	assert.Equal(t, models.SettlementStatusPaid, again.Status)
	assert.Equal(t, *paid.SettledAt, *again.SettledAt)

	_, err = settlements.MarkPaid("ST99999")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateSettlement(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 1)
	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)

	notes := "paid by UPI"
	updated, err := settlements.UpdateSettlement(settlement.SettlementID, &SettlementUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "paid by UPI", updated.Notes)
	assert.Equal(t, models.SettlementStatusPending, updated.Status)

	paidStatus := models.SettlementStatusPaid
	updated, err = settlements.UpdateSettlement(settlement.SettlementID, &SettlementUpdate{Status: &paidStatus})
	require.NoError(t, err)
	assert.Equal(t, models.SettlementStatusPaid, updated.Status)
	assert.NotNil(t, updated.SettledAt)

	// Paid is permanent
	pendingStatus := models.SettlementStatusPending
	_, err = settlements.UpdateSettlement(settlement.SettlementID, &SettlementUpdate{Status: &pendingStatus})
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))
	assert.Contains(t, err.Error(), "cannot be reverted")

	badStatus := "cancelled"
	_, err = settlements.UpdateSettlement(settlement.SettlementID, &SettlementUpdate{Status: &badStatus})
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeleteSettlement(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 1)
	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)

	_, err = settlements.MarkPaid(settlement.SettlementID)
	require.NoError(t, err)

	err = settlements.DeleteSettlement(settlement.SettlementID)
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))

	// A pending one deletes cleanly
	pending, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeSalary,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)
	require.NoError(t, settlements.DeleteSettlement(pending.SettlementID))
	_, err = settlements.GetSettlement(pending.SettlementID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListSettlementsEnrichesWithTrips(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 2)
	_, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)

	list, err := settlements.ListSettlements(&models.SettlementFilter{DriverID: driver.DriverID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Trips, 1)

	line := list[0].Trips[0]
	assert.Equal(t, "2025-06-10", line.Date)
	assert.Equal(t, route.Name, line.Route)
	assert.Equal(t, 2, line.Count)
	assert.Equal(t, 1000.0, line.Amount)
}

func TestListSettlementsValidatesFilters(t *testing.T) {
	_, _, settlements, _, _ := newSettlementFixture(t)

	_, err := settlements.ListSettlements(&models.SettlementFilter{Type: "bonus"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = settlements.ListSettlements(&models.SettlementFilter{Status: "cancelled"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestEarningsSummary(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	// Wednesday 2025-06-11; the weekly window is [2025-06-09, 2025-06-11]
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-09", 1)
	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 2)
	// Before the window, ignored by the weekly summary
	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-05", 1)

	summary, err := settlements.EarningsSummary("weekly", driver.DriverID, now)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-09", summary.PeriodStart)
	assert.Equal(t, "2025-06-11", summary.PeriodEnd)
	assert.Equal(t, 1500.0, summary.TotalBatta)
	assert.Equal(t, 900.0, summary.TotalSalary)
	assert.Equal(t, 3, summary.TripCount)
	assert.Equal(t, 1500.0, summary.UnsettledBatta, "nothing paid yet")
	assert.Equal(t, 900.0, summary.UnsettledSalary)
}

func TestEarningsSummarySubtractsPaidSettlements(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-09", 1)
	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 2)

	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-10",
	})
	require.NoError(t, err)

	// Pending settlements do not reduce the unsettled figure
	summary, err := settlements.EarningsSummary("weekly", driver.DriverID, now)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, summary.UnsettledBatta)

	_, err = settlements.MarkPaid(settlement.SettlementID)
	require.NoError(t, err)

	summary, err = settlements.EarningsSummary("weekly", driver.DriverID, now)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.UnsettledBatta)
	assert.Equal(t, 900.0, summary.UnsettledSalary, "salary bucket untouched by a batta payout")
}

// A paid settlement whose period reaches outside the reporting window
// can exceed the window's trip total; the unsettled figure clamps at
// zero instead of going negative.
func TestEarningsSummaryClampsAtZero(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-05", 3)
	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 1)

	// Covers both trips; overlaps the weekly window through 06-10
	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-01",
		PeriodEnd:      "2025-06-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, settlement.Amount)

	_, err = settlements.MarkPaid(settlement.SettlementID)
	require.NoError(t, err)

	summary, err := settlements.EarningsSummary("weekly", driver.DriverID, now)
	require.NoError(t, err)
	assert.Equal(t, 500.0, summary.TotalBatta, "only the in-window trip counts")
	assert.Equal(t, 0.0, summary.UnsettledBatta, "clamped, not -1500")
}

func TestEarningsSummaryIgnoresNonOverlappingPaidSettlements(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-02", 1)
	logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 1)

	// Entirely before the weekly window
	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-01",
		PeriodEnd:      "2025-06-07",
	})
	require.NoError(t, err)
	_, err = settlements.MarkPaid(settlement.SettlementID)
	require.NoError(t, err)

	summary, err := settlements.EarningsSummary("weekly", driver.DriverID, now)
	require.NoError(t, err)
	assert.Equal(t, 500.0, summary.UnsettledBatta, "out-of-window payout is not subtracted")
}

func TestEarningsSummaryRejectsUnknownPeriod(t *testing.T) {
	_, _, settlements, driver, _ := newSettlementFixture(t)

	_, err := settlements.EarningsSummary("quarterly", driver.DriverID, time.Now())
	assert.True(t, apperrors.IsValidation(err))
}

// Deleting a trip after a settlement snapshotted it leaves the
// settlement amount untouched.
func TestTripDeletionDoesNotAdjustSettlements(t *testing.T) {
	_, trips, settlements, driver, route := newSettlementFixture(t)

	trip := logTrip(t, trips, driver.DriverID, route.RouteID, "2025-06-10", 1)
	settlement, err := settlements.CreateSettlement(&models.SettlementRequest{
		DriverID:       driver.DriverID,
		SettlementType: models.SettlementTypeBatta,
		PeriodStart:    "2025-06-09",
		PeriodEnd:      "2025-06-15",
	})
	require.NoError(t, err)

	require.NoError(t, trips.DeleteTrip(trip.TripID))

	got, err := settlements.GetSettlement(settlement.SettlementID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Amount)
}
