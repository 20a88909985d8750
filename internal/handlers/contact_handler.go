package handlers

import (
	"fmt"
	"log"

	"mboaconnect/internal/mailer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler relays contact-form submissions to the admin inbox.
type ContactHandler struct {
	mailer     mailer.Sender
	adminEmail string
	validate   *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(mailSender mailer.Sender, adminEmail string) *ContactHandler {
	return &ContactHandler{
		mailer:     mailSender,
		adminEmail: adminEmail,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the contact route with the Fiber app.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/contact", h.HandleContact)
}

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// HandleContact forwards the message to the admin inbox with the sender set
// as Reply-To.
func (h *ContactHandler) HandleContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if h.mailer == nil || h.adminEmail == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Contact form is not available",
		})
	}

	msg := mailer.Message{
		To:      h.adminEmail,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("Contact form: %s", req.Subject),
		HTML: fmt.Sprintf("<p>From: %s (%s)</p><p>%s</p>",
			req.Name, req.Email, req.Message),
		Text: fmt.Sprintf("From: %s (%s)\n\n%s", req.Name, req.Email, req.Message),
	}
	if err := h.mailer.Send(msg); err != nil {
		log.Printf("Error relaying contact message from %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not send message",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Message sent successfully",
	})
}
