package handlers

import (
	"log"

	"mboaconnect/internal/models"
	"mboaconnect/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler handles HTTP requests for the money transfer simulation.
type TransferHandler struct {
	service     *services.TransferService
	userService *services.UserService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(service *services.TransferService, userService *services.UserService) *TransferHandler {
	return &TransferHandler{
		service:     service,
		userService: userService,
	}
}

// RegisterRoutes registers the transfer routes with the Fiber app.
func (h *TransferHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	transferRoutes := router.Group("/transfers", authRequired)
	transferRoutes.Post("/", h.HandleSendMoney)
	transferRoutes.Get("/", h.HandleGetTransactions)
	transferRoutes.Get("/:ref", h.HandleGetTransactionByRef)
	transferRoutes.Patch("/:id/status", adminRequired, h.HandleUpdateStatus)
}

// HandleSendMoney initiates a transfer.
func (h *TransferHandler) HandleSendMoney(c *fiber.Ctx) error {
	var req services.SendMoneyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing transfer request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	tx, err := h.service.SendMoney(req)
	if err != nil {
		log.Printf("Error initiating transfer: %v", err)
		return respondError(c, err, "Could not initiate transfer")
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

// HandleGetTransactions lists transfers. Admins see all of them; other users
// only see transfers they sent or received.
func (h *TransferHandler) HandleGetTransactions(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(currentUserID(c))
	if err != nil {
		log.Printf("Error loading user %s for transfer listing: %v", currentUserID(c), err)
		return respondError(c, err, "Could not retrieve transfers")
	}

	transactions, err := h.service.GetTransactions(user)
	if err != nil {
		log.Printf("Error getting transfers: %v", err)
		return respondError(c, err, "Could not retrieve transfers")
	}
	return c.JSON(transactions)
}

// HandleGetTransactionByRef retrieves a transfer by its public reference.
func (h *TransferHandler) HandleGetTransactionByRef(c *fiber.Ctx) error {
	ref := c.Params("ref")
	tx, err := h.service.GetTransactionByRef(ref)
	if err != nil {
		log.Printf("Error getting transfer %s: %v", ref, err)
		return respondError(c, err, "Could not retrieve transfer")
	}
	return c.JSON(tx)
}

// HandleUpdateStatus transitions a transfer (admin only).
func (h *TransferHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	transferID := c.Params("id")
	var updateData struct {
		Status models.TransferStatus `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	tx, err := h.service.UpdateTransactionStatus(transferID, updateData.Status)
	if err != nil {
		log.Printf("Error updating transfer %s: %v", transferID, err)
		return respondError(c, err, "Could not update transfer")
	}
	return c.JSON(tx)
}
