package services

import (
	"fmt"
	"log"
	"time"

	"mboaconnect/internal/mailer"
	"mboaconnect/internal/models"
	"mboaconnect/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest is a client request for a security-system quote.
type CreateQuoteRequest struct {
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email"`
	ClientPhone   string     `json:"client_phone"`
	ServiceType   string     `json:"service_type"`
	Description   string     `json:"description"`
	PreferredDate *time.Time `json:"preferred_date"`
}

// UpdateQuoteRequest carries the fields an admin may set while reviewing a
// quote. Nil fields are left untouched.
type UpdateQuoteRequest struct {
	Status        *models.QuoteStatus `json:"status"`
	AdminNotes    *string             `json:"admin_notes"`
	EstimatedCost *decimal.Decimal    `json:"estimated_cost"`
}

// QuoteService handles security-service quote requests.
type QuoteService struct {
	repo       repositories.QuoteRepository
	mailer     mailer.Sender
	adminEmail string
}

// NewQuoteService creates a new QuoteService. mailSender may be nil, and
// adminEmail may be empty; the new-quote alert is then skipped.
func NewQuoteService(repo repositories.QuoteRepository, mailSender mailer.Sender, adminEmail string) *QuoteService {
	return &QuoteService{
		repo:       repo,
		mailer:     mailSender,
		adminEmail: adminEmail,
	}
}

// CreateQuote records a new pending quote request. userID is empty for
// anonymous submissions. The admin inbox is alerted best-effort.
func (s *QuoteService) CreateQuote(userID string, req CreateQuoteRequest) (*models.Quote, error) {
	if req.ClientName == "" || req.ClientEmail == "" || req.ServiceType == "" {
		return nil, NewValidationError("client name, client email and service type are required")
	}

	quote := &models.Quote{
		ID:            uuid.New().String(),
		UserID:        userID,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		PreferredDate: req.PreferredDate,
		Status:        models.QuoteStatusPending,
	}

	if err := s.repo.Create(quote); err != nil {
		return nil, fmt.Errorf("failed to record quote request: %w", err)
	}

	if s.mailer != nil && s.adminEmail != "" {
		msg := mailer.Message{
			To:      s.adminEmail,
			ReplyTo: quote.ClientEmail,
			Subject: fmt.Sprintf("New quote request from %s (%s)", quote.ClientName, quote.ServiceType),
			HTML: fmt.Sprintf(
				"<p>New quote request <strong>#%s</strong>.</p>"+
					"<p>Client: %s (%s, %s)</p><p>Service: %s</p><p>%s</p>",
				quote.ID, quote.ClientName, quote.ClientEmail, quote.ClientPhone,
				quote.ServiceType, quote.Description),
			Text: fmt.Sprintf("New quote request #%s from %s for %s.",
				quote.ID, quote.ClientName, quote.ServiceType),
		}
		if err := s.mailer.Send(msg); err != nil {
			log.Printf("Warning: failed to send quote alert for quote %s: %v", quote.ID, err)
		}
	}

	return quote, nil
}

// GetAllQuotes retrieves every quote request.
func (s *QuoteService) GetAllQuotes() ([]models.Quote, error) {
	return s.repo.GetAll()
}

// GetMyQuotes retrieves the quote requests submitted by a user.
func (s *QuoteService) GetMyQuotes(userID string) ([]models.Quote, error) {
	return s.repo.GetByUser(userID)
}

// UpdateQuote applies an admin review to a quote and emails the client when
// the status changes, best-effort.
func (s *QuoteService) UpdateQuote(id string, req UpdateQuoteRequest) (*models.Quote, error) {
	quote, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, NewValidationError("invalid quote status: %s", *req.Status)
		}
		statusChanged = quote.Status != *req.Status
		quote.Status = *req.Status
	}
	if req.AdminNotes != nil {
		quote.AdminNotes = *req.AdminNotes
	}
	if req.EstimatedCost != nil {
		quote.EstimatedCost = decimal.NewNullDecimal(req.EstimatedCost.Round(2))
	}

	if err := s.repo.Save(quote); err != nil {
		return nil, fmt.Errorf("failed to update quote %s: %w", id, err)
	}

	if statusChanged && s.mailer != nil {
		body := fmt.Sprintf("<p>Hello %s,</p><p>Your quote request for <strong>%s</strong> is now <strong>%s</strong>.</p>",
			quote.ClientName, quote.ServiceType, quote.Status)
		if quote.EstimatedCost.Valid {
			body += fmt.Sprintf("<p>Estimated cost: %s XAF</p>", quote.EstimatedCost.Decimal.StringFixed(2))
		}
		msg := mailer.Message{
			To:      quote.ClientEmail,
			Subject: fmt.Sprintf("Your quote request is %s", quote.Status),
			HTML:    body,
			Text:    fmt.Sprintf("Your quote request for %s is now %s.", quote.ServiceType, quote.Status),
		}
		if mailErr := s.mailer.Send(msg); mailErr != nil {
			log.Printf("Warning: failed to send quote status email for quote %s: %v", quote.ID, mailErr)
		}
	}

	return quote, nil
}
