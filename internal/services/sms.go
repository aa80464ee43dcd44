package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/fleetpay/fleetpay-backend/internal/models"
)

// SMSService sends payout notifications to drivers via Twilio
type SMSService struct {
	client *twilio.RestClient
	from   string
}

// NewSMSService creates a new SMS service instance
func NewSMSService() (*SMSService, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_SMS_FROM")

	if accountSid == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &SMSService{
		client: client,
		from:   from,
	}, nil
}

// SendSMS sends a plain text message via Twilio
func (s *SMSService) SendSMS(to string, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send SMS: %v", err)
		return err
	}

	log.Printf("✅ SMS sent! SID: %s", *resp.Sid)
	return nil
}

// NotifySettlementPaid tells the driver a payout went through.
// Best effort: failures are logged, never propagated into the payout.
func (s *SMSService) NotifySettlementPaid(driver *models.Driver, settlement *models.Settlement) {
	if driver.Phone == "" {
		return
	}

	message := fmt.Sprintf(
		"Hi %s, your %s settlement of ₹%.2f for %s to %s has been paid. Ref: %s",
		driver.Name,
		settlement.SettlementType,
		settlement.Amount,
		settlement.PeriodStart,
		settlement.PeriodEnd,
		settlement.Reference,
	)

	if err := s.SendSMS(driver.Phone, message); err != nil {
		log.Printf("payout notification to %s failed: %v", driver.DriverID, err)
	}
}

// NotifySettlementPending reminds the driver a payout is waiting for
// operator confirmation. Used by the weekly reminder job.
func (s *SMSService) NotifySettlementPending(driver *models.Driver, settlement *models.Settlement) {
	if driver.Phone == "" {
		return
	}

	message := fmt.Sprintf(
		"Hi %s, your %s settlement of ₹%.2f (%s to %s) is pending payout.",
		driver.Name,
		settlement.SettlementType,
		settlement.Amount,
		settlement.PeriodStart,
		settlement.PeriodEnd,
	)

	if err := s.SendSMS(driver.Phone, message); err != nil {
		log.Printf("pending reminder to %s failed: %v", driver.DriverID, err)
	}
}
