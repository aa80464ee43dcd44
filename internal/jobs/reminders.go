package jobs

import (
	"log"
	"time"

	"github.com/fleetpay/fleetpay-backend/internal/models"
	"github.com/fleetpay/fleetpay-backend/internal/services"
	"github.com/fleetpay/fleetpay-backend/internal/storage"
)

// ReminderJob nudges drivers and the operator about settlements that
// are still pending payout
type ReminderJob struct {
	store     storage.Store
	sms       *services.SMSService // nil when SMS is disabled
	isRunning bool
}

// NewReminderJob creates a new reminder job scheduler
func NewReminderJob(store storage.Store, sms *services.SMSService) *ReminderJob {
	return &ReminderJob{
		store:     store,
		sms:       sms,
		isRunning: false,
	}
}

// Start begins the scheduled reminder job
func (r *ReminderJob) Start() {
	if r.isRunning {
		log.Println("Reminder job already running")
		return
	}

	r.isRunning = true
	log.Println("Starting settlement reminder job...")

	go r.schedulePendingSettlementReminders()
}

// Stop halts the scheduled job
func (r *ReminderJob) Stop() {
	r.isRunning = false
	log.Println("Stopping settlement reminder job...")
}

// Runs every Monday at 9 AM
func (r *ReminderJob) schedulePendingSettlementReminders() {
	for r.isRunning {
		now := time.Now()

		// Calculate next Monday 9 AM
		daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
		next := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location()).
			AddDate(0, 0, daysUntilMonday)
		if !next.After(now) {
			next = next.AddDate(0, 0, 7)
		}

		time.Sleep(time.Until(next))
		if !r.isRunning {
			return
		}

		r.sendPendingReminders()
	}
}

func (r *ReminderJob) sendPendingReminders() {
	settlements, err := r.store.ListSettlements(&models.SettlementFilter{
		Status: models.SettlementStatusPending,
	})
	if err != nil {
		log.Printf("Reminder job: failed to list pending settlements: %v", err)
		return
	}

	if len(settlements) == 0 {
		log.Println("Reminder job: no pending settlements")
		return
	}

	var total float64
	for _, settlement := range settlements {
		total += settlement.Amount

		if r.sms == nil {
			continue
		}
		driver, err := r.store.GetDriver(settlement.DriverID)
		if err != nil {
			log.Printf("Reminder job: driver %s not found for settlement %s", settlement.DriverID, settlement.SettlementID)
			continue
		}
		r.sms.NotifySettlementPending(driver, settlement)
	}

	log.Printf("Reminder job: %d pending settlements totalling %.2f", len(settlements), total)
}
