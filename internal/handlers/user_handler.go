package handlers

import (
	"log"

	"mboaconnect/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles and admin user
// management.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	userRoutes := router.Group("/users", authRequired)
	userRoutes.Get("/me", h.HandleGetProfile)
	userRoutes.Put("/me", h.HandleUpdateProfile)
	userRoutes.Get("/", adminRequired, h.HandleGetUsers)
	userRoutes.Get("/:id", adminRequired, h.HandleGetUserByID)
	userRoutes.Patch("/:id/admin", adminRequired, h.HandleSetAdmin)
	userRoutes.Delete("/:id", adminRequired, h.HandleDeleteUser)
}

// HandleGetProfile returns the authenticated user's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(currentUserID(c))
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", currentUserID(c), err)
		return respondError(c, err, "Could not retrieve profile")
	}
	return c.JSON(user)
}

// HandleUpdateProfile updates the authenticated user's profile.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.service.UpdateProfile(currentUserID(c), req)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", currentUserID(c), err)
		return respondError(c, err, "Could not update profile")
	}
	return c.JSON(user)
}

// HandleGetUsers retrieves all users (admin only).
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return respondError(c, err, "Could not retrieve users")
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single user (admin only).
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	userID := c.Params("id")
	user, err := h.service.GetUserByID(userID)
	if err != nil {
		log.Printf("Error getting user %s: %v", userID, err)
		return respondError(c, err, "Could not retrieve user")
	}
	return c.JSON(user)
}

// HandleSetAdmin grants or revokes administrator rights (admin only).
func (h *UserHandler) HandleSetAdmin(c *fiber.Ctx) error {
	userID := c.Params("id")
	var updateData struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.service.SetAdmin(userID, updateData.IsAdmin)
	if err != nil {
		log.Printf("Error updating admin flag for user %s: %v", userID, err)
		return respondError(c, err, "Could not update user")
	}
	return c.JSON(user)
}

// HandleDeleteUser removes a user account (admin only).
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	if err := h.service.DeleteUser(userID); err != nil {
		log.Printf("Error deleting user %s: %v", userID, err)
		return respondError(c, err, "Could not delete user")
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
