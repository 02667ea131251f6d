package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/events"
	"storefront-backend-go/internal/mailer"
	"storefront-backend-go/internal/models"
)

// leadIDPrefix precedes the financial-year segment in every lead ID.
const leadIDPrefix = "P-LEAD M/"

// maxDupAttempts bounds the uniqueness-suffix loop before falling back to
// an epoch suffix.
const maxDupAttempts = 100

// leadService implements the LeadService interface.
type leadService struct {
	leadRepo  db.LeadRepository
	mail      *mailer.Mailer // may be nil
	mailFrom  string
	mailTo    string
	publisher events.Publisher // may be nil
	logger    *zap.Logger
	now       func() time.Time
}

// NewLeadService creates a new LeadService instance.
func NewLeadService(lr db.LeadRepository, m *mailer.Mailer, mailFrom, mailTo string, pub events.Publisher, logger *zap.Logger) LeadService {
	return &leadService{
		leadRepo:  lr,
		mail:      m,
		mailFrom:  mailFrom,
		mailTo:    mailTo,
		publisher: pub,
		logger:    logger,
		now:       time.Now,
	}
}

// FinancialYearKey returns the Indian financial-year key for t, formatted
// as two two-digit years. April starts the year, so March 2026 falls in
// "25-26" and April 2026 in "26-27".
func FinancialYearKey(t time.Time) string {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%02d-%02d", year%100, (year+1)%100)
}

// FormatLeadID builds the display identifier for a financial year and
// sequence number.
func FormatLeadID(fyKey string, seq int64) string {
	return fmt.Sprintf("%s%s/%04d", leadIDPrefix, fyKey, seq)
}

// CreateLead captures an enquiry. The identifier comes from the
// per-financial-year counter; if the counter transaction fails, a
// timestamp-based identifier keeps the enquiry from being lost. A counter
// identifier that is somehow already taken gets a uniqueness suffix.
func (s *leadService) CreateLead(ctx context.Context, req models.CreateLeadRequest) (*models.Lead, error) {
	fyKey := FinancialYearKey(s.now())

	leadID := s.allocateLeadID(ctx, fyKey)

	lead := &models.Lead{
		LeadID:      leadID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Message:     req.Message,
		Source:      req.Source,
	}
	if _, err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}

	s.notify(lead)
	s.publishLeadCreated(lead)
	return lead, nil
}

// allocateLeadID runs the identifier ladder: counter transaction first,
// then uniqueness suffixes, then a timestamp fallback. It never fails.
func (s *leadService) allocateLeadID(ctx context.Context, fyKey string) string {
	seq, err := s.leadRepo.NextSequence(ctx, fyKey)
	if err != nil {
		s.logger.Error("lead counter unavailable, using timestamp identifier", zap.String("fy", fyKey), zap.Error(err))
		return fmt.Sprintf("%s%s/T%d", leadIDPrefix, fyKey, s.now().Unix())
	}

	leadID := FormatLeadID(fyKey, seq)
	candidate := leadID
	for attempt := 1; attempt <= maxDupAttempts; attempt++ {
		exists, err := s.leadRepo.ExistsByLeadID(ctx, candidate)
		if err != nil {
			s.logger.Warn("lead uniqueness check failed", zap.String("leadId", candidate), zap.Error(err))
			return candidate
		}
		if !exists {
			return candidate
		}
		if attempt == 1 {
			candidate = leadID + "-dup"
		} else {
			candidate = fmt.Sprintf("%s-dup%d", leadID, attempt)
		}
	}
	return fmt.Sprintf("%s-%d", leadID, s.now().Unix())
}

// notify emails the sales inbox about the new enquiry, best effort.
func (s *leadService) notify(lead *models.Lead) {
	if s.mail == nil || s.mailTo == "" {
		return
	}
	subject := fmt.Sprintf("New enquiry %s from %s", lead.LeadID, lead.Name)
	body := fmt.Sprintf(
		"<html><body><p>Lead: %s</p><p>Name: %s</p><p>Phone: %s</p><p>Email: %s</p><p>Product: %s</p><p>Message: %s</p><p>Source: %s</p></body></html>",
		lead.LeadID, lead.Name, lead.Phone, lead.Email, lead.ProductName, lead.Message, lead.Source,
	)
	if err := s.mail.Send(s.mailTo, s.mailFrom, subject, body); err != nil {
		s.logger.Warn("failed to send lead notification", zap.String("leadId", lead.LeadID), zap.Error(err))
	}
}

func (s *leadService) publishLeadCreated(lead *models.Lead) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"leadId":    lead.LeadID,
		"phone":     lead.Phone,
		"productId": lead.ProductID,
		"source":    lead.Source,
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(events.TopicLeadCreated, body); err != nil {
		s.logger.Warn("failed to publish lead event", zap.String("leadId", lead.LeadID), zap.Error(err))
	}
}
