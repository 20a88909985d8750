package handlers

import (
	"log"

	"mboaconnect/internal/services"

	"github.com/gofiber/fiber/v2"
)

// QuoteHandler handles HTTP requests for security-service quote requests.
type QuoteHandler struct {
	service *services.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(service *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// RegisterRoutes registers the quote routes with the Fiber app. Submission
// is open to anonymous clients; a valid token attributes the quote to the
// account.
func (h *QuoteHandler) RegisterRoutes(router fiber.Router, optionalAuth, authRequired, adminRequired fiber.Handler) {
	quoteRoutes := router.Group("/quotes")
	quoteRoutes.Post("/", optionalAuth, h.HandleCreateQuote)
	quoteRoutes.Get("/my", authRequired, h.HandleGetMyQuotes)
	quoteRoutes.Get("/", authRequired, adminRequired, h.HandleGetQuotes)
	quoteRoutes.Patch("/:id", authRequired, adminRequired, h.HandleUpdateQuote)
}

// HandleCreateQuote submits a new quote request.
func (h *QuoteHandler) HandleCreateQuote(c *fiber.Ctx) error {
	var req services.CreateQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quote request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	quote, err := h.service.CreateQuote(currentUserID(c), req)
	if err != nil {
		log.Printf("Error creating quote: %v", err)
		return respondError(c, err, "Could not submit quote request")
	}

	return c.Status(fiber.StatusCreated).JSON(quote)
}

// HandleGetQuotes retrieves every quote request (admin only).
func (h *QuoteHandler) HandleGetQuotes(c *fiber.Ctx) error {
	quotes, err := h.service.GetAllQuotes()
	if err != nil {
		log.Printf("Error getting all quotes: %v", err)
		return respondError(c, err, "Could not retrieve quotes")
	}
	return c.JSON(quotes)
}

// HandleGetMyQuotes retrieves the authenticated user's quote requests.
func (h *QuoteHandler) HandleGetMyQuotes(c *fiber.Ctx) error {
	quotes, err := h.service.GetMyQuotes(currentUserID(c))
	if err != nil {
		log.Printf("Error getting quotes for user %s: %v", currentUserID(c), err)
		return respondError(c, err, "Could not retrieve quotes")
	}
	return c.JSON(quotes)
}

// HandleUpdateQuote applies an admin review to a quote request.
func (h *QuoteHandler) HandleUpdateQuote(c *fiber.Ctx) error {
	quoteID := c.Params("id")
	var req services.UpdateQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	quote, err := h.service.UpdateQuote(quoteID, req)
	if err != nil {
		log.Printf("Error updating quote %s: %v", quoteID, err)
		return respondError(c, err, "Could not update quote")
	}
	return c.JSON(quote)
}
