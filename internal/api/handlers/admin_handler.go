package handlers

import (
	"errors"

	"estate-hub/internal/dto"
	"estate-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminService *service.AdminService
	emailService *service.EmailService
	logger       *zap.Logger
}

func NewAdminHandler(adminService *service.AdminService, emailService *service.EmailService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		emailService: emailService,
		logger:       logger,
	}
}

// Stats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.AdminStatsResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.Context())
	if err != nil {
		h.logger.Error("Failed to collect stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(stats)
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.UserResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers(c.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(fiber.Map{"users": users})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Remove a user account; admins cannot delete themselves
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.adminService.DeleteUser(c.Context(), adminID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You cannot delete your own account"})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		h.logger.Error("Failed to delete user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// TestEmail godoc
// @Summary Send a test email
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.TestEmailRequest true "Test email"
// @Success 200 {object} map[string]string
// @Router /email/test-email [post]
func (h *AdminHandler) TestEmail(c *fiber.Ctx) error {
	var req dto.TestEmailRequest
	if err := c.BodyParser(&req); err != nil || req.To == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Recipient is required"})
	}

	if err := h.emailService.SendTest(c.Context(), req.To, req.Subject, req.Text, req.HTML); err != nil {
		h.logger.Error("Failed to send test email", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error sending email"})
	}

	return c.JSON(fiber.Map{"message": "Test email sent"})
}
