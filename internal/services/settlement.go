package services

import (
	"log"
	"math"
	"time"

	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/storage"
	"github.com/fleetpay/fleetpay-backend/internal/utils"
)

// SettlementService turns a driver + bucket + date range into payout
// records and manages the pending -> paid lifecycle
type SettlementService struct {
	store storage.Store
	sms   *SMSService // nil when SMS notifications are disabled
}

// NewSettlementService creates a new settlement service
func NewSettlementService(store storage.Store, sms *SMSService) *SettlementService {
	return &SettlementService{
		store: store,
		sms:   sms,
	}
}

// CreateSettlement computes the settlement amount as a snapshot over the
// driver's trips in [period_start, period_end] and persists it as
// pending. A computed amount of zero fails: either no trips exist in the
// range, or the trips carry no value in the requested bucket.
//
// Prior settlements of the same driver/bucket are NOT checked for
// overlapping periods, so two settlements can sum the same trips.
func (s *SettlementService) CreateSettlement(req *models.SettlementRequest) (*models.Settlement, error) {
	if req.DriverID == "" || req.SettlementType == "" || req.PeriodStart == "" || req.PeriodEnd == "" {
		return nil, apperrors.NewValidation("driver, settlement type, and period dates are required")
	}
	if req.SettlementType != models.SettlementTypeBatta && req.SettlementType != models.SettlementTypeSalary {
		return nil, apperrors.NewValidation(`settlement type must be "batta" or "salary"`)
	}
	if !utils.ValidDate(req.PeriodStart) || !utils.ValidDate(req.PeriodEnd) {
		return nil, apperrors.NewValidation("period dates must be YYYY-MM-DD calendar dates")
	}

	if _, err := s.store.GetDriver(req.DriverID); err != nil {
		return nil, err
	}

	amount, tripsFound, err := s.settlementAmount(req.DriverID, req.SettlementType, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	if amount == 0 {
		if tripsFound == 0 {
			return nil, apperrors.NewBusinessRule("cannot create settlement: no trips found in this date range")
		}
		return nil, apperrors.NewBusinessRule(
			"cannot create settlement: found %d trips, but their calculated %s value is 0; check if the driver's payment preference supports %s",
			tripsFound, req.SettlementType, req.SettlementType)
	}

	settlement := &models.Settlement{
		DriverID:       req.DriverID,
		SettlementType: req.SettlementType,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
		Amount:         amount,
		Status:         models.SettlementStatusPending,
		Notes:          req.Notes,
	}
	return s.store.CreateSettlement(settlement)
}

// settlementAmount is the single aggregation point for settlement money:
// the sum of the requested bucket's stored per-trip earnings over the
// driver's trips inside the inclusive range. Trips carry no link to the
// settlements that consumed them, so overlapping periods double-count;
// a stricter scheme only needs to replace this method.
func (s *SettlementService) settlementAmount(driverID, settlementType, periodStart, periodEnd string) (float64, int, error) {
	trips, err := s.store.ListTrips(&models.TripFilter{
		DriverID:  driverID,
		StartDate: periodStart,
		EndDate:   periodEnd,
	})
	if err != nil {
		return 0, 0, err
	}

	var amount float64
	for _, trip := range trips {
		if settlementType == models.SettlementTypeBatta {
			amount += trip.BattaEarned
		} else {
			amount += trip.SalaryEarned
		}
	}
	return amount, len(trips), nil
}

// GetSettlement retrieves a single settlement
func (s *SettlementService) GetSettlement(id string) (*models.Settlement, error) {
	return s.store.GetSettlement(id)
}

// ListSettlements returns settlements matching the filter, each enriched
// with the trips of its driver that fall inside its period.
func (s *SettlementService) ListSettlements(filter *models.SettlementFilter) ([]*models.SettlementWithTrips, error) {
	if filter != nil {
		if filter.Type != "" && filter.Type != models.SettlementTypeBatta && filter.Type != models.SettlementTypeSalary {
			return nil, apperrors.NewValidation(`settlement type filter must be "batta" or "salary"`)
		}
		if filter.Status != "" && filter.Status != models.SettlementStatusPending && filter.Status != models.SettlementStatusPaid {
			return nil, apperrors.NewValidation(`status filter must be "pending" or "paid"`)
		}
	}

	settlements, err := s.store.ListSettlements(filter)
	if err != nil {
		return nil, err
	}

	routeNames := make(map[string]string)
	results := make([]*models.SettlementWithTrips, 0, len(settlements))
	for _, settlement := range settlements {
		trips, err := s.store.ListTrips(&models.TripFilter{
			DriverID:  settlement.DriverID,
			StartDate: settlement.PeriodStart,
			EndDate:   settlement.PeriodEnd,
		})
		if err != nil {
			return nil, err
		}

		lines := make([]models.SettlementTripLine, 0, len(trips))
		for _, trip := range trips {
			name, ok := routeNames[trip.RouteID]
			if !ok {
				if route, err := s.store.GetRoute(trip.RouteID); err == nil {
					name = route.Name
				} else {
					name = "Unknown Route"
				}
				routeNames[trip.RouteID] = name
			}

			amount := trip.SalaryEarned
			if settlement.SettlementType == models.SettlementTypeBatta {
				amount = trip.BattaEarned
			}
			lines = append(lines, models.SettlementTripLine{
				Date:   trip.TripDate,
				Route:  name,
				Count:  trip.TripCount,
				Amount: amount,
			})
		}

		results = append(results, &models.SettlementWithTrips{
			Settlement: *settlement,
			Trips:      lines,
		})
	}
	return results, nil
}

// MarkPaid transitions a settlement from pending to paid and stamps
// settled_at. Calling it on an already-paid settlement is a no-op that
// still succeeds; the transition is one-directional.
func (s *SettlementService) MarkPaid(id string) (*models.Settlement, error) {
	settlement, transitioned, err := s.store.MarkSettlementPaid(id)
	if err != nil {
		return nil, err
	}

	if transitioned && s.sms != nil {
		if driver, err := s.store.GetDriver(settlement.DriverID); err == nil {
			s.sms.NotifySettlementPaid(driver, settlement)
		} else {
			log.Printf("settlement %s paid but driver lookup failed: %v", settlement.SettlementID, err)
		}
	}
	return settlement, nil
}

// SettlementUpdate carries the mutable settlement fields. Nil means
// "leave unchanged".
type SettlementUpdate struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateSettlement changes status and/or notes. Setting status to paid
// goes through the same transition as MarkPaid (stamps settled_at);
// a paid settlement can never go back to pending.
func (s *SettlementService) UpdateSettlement(id string, update *SettlementUpdate) (*models.Settlement, error) {
	if update.Status != nil {
		status := *update.Status
		if status != models.SettlementStatusPending && status != models.SettlementStatusPaid {
			return nil, apperrors.NewValidation(`status must be "pending" or "paid"`)
		}
	}

	settlement, err := s.store.GetSettlement(id)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		if *update.Status == models.SettlementStatusPaid {
			settlement, err = s.MarkPaid(id)
			if err != nil {
				return nil, err
			}
		} else if settlement.Status == models.SettlementStatusPaid {
			return nil, apperrors.NewBusinessRule("a paid settlement cannot be reverted to pending")
		}
	}

	if update.Notes != nil {
		settlement.Notes = *update.Notes
		if err := s.store.UpdateSettlement(settlement); err != nil {
			return nil, err
		}
	}
	return settlement, nil
}

// DeleteSettlement removes a pending settlement. Paid settlements are
// the audit trail of actual payouts and cannot be deleted.
func (s *SettlementService) DeleteSettlement(id string) error {
	settlement, err := s.store.GetSettlement(id)
	if err != nil {
		return err
	}
	if settlement.Status == models.SettlementStatusPaid {
		return apperrors.NewBusinessRule("cannot delete a paid settlement")
	}
	return s.store.DeleteSettlement(id)
}

// EarningsSummary is the live dashboard aggregation: trip totals for the
// reporting period minus paid settlements whose period overlaps it,
// clamped at zero. This is a separate computation from settlement
// amounts and is always re-derived, never snapshotted.
func (s *SettlementService) EarningsSummary(period, driverID string, now time.Time) (*models.EarningsSummary, error) {
	periodStart, periodEnd, err := utils.PeriodRange(period, now)
	if err != nil {
		return nil, err
	}

	trips, err := s.store.ListTrips(&models.TripFilter{
		DriverID:  driverID,
		StartDate: periodStart,
		EndDate:   periodEnd,
	})
	if err != nil {
		return nil, err
	}

	summary := &models.EarningsSummary{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Period:      period,
	}
	for _, trip := range trips {
		summary.TotalBatta += trip.BattaEarned
		summary.TotalSalary += trip.SalaryEarned
		summary.TripCount += trip.TripCount
	}

	settlements, err := s.store.ListSettlements(&models.SettlementFilter{
		DriverID: driverID,
		Status:   models.SettlementStatusPaid,
	})
	if err != nil {
		return nil, err
	}

	var settledBatta, settledSalary float64
	for _, settlement := range settlements {
		if !utils.RangesOverlap(settlement.PeriodStart, settlement.PeriodEnd, periodStart, periodEnd) {
			continue
		}
		if settlement.SettlementType == models.SettlementTypeBatta {
			settledBatta += settlement.Amount
		} else {
			settledSalary += settlement.Amount
		}
	}

	summary.UnsettledBatta = math.Max(0, summary.TotalBatta-settledBatta)
	summary.UnsettledSalary = math.Max(0, summary.TotalSalary-settledSalary)
	return summary, nil
}
