package handlers

import (
	"log"

	"mboaconnect/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the admin dashboard statistics.
type AdminHandler struct {
	service *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	adminRoutes := router.Group("/admin", authRequired, adminRequired)
	adminRoutes.Get("/stats", h.HandleStats)
}

// HandleStats returns the dashboard overview.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Overview()
	if err != nil {
		log.Printf("Error computing dashboard stats: %v", err)
		return respondError(c, err, "Could not compute statistics")
	}
	return c.JSON(stats)
}
