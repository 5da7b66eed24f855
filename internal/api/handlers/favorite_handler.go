package handlers

import (
	"errors"

	"estate-hub/internal/dto"
	"estate-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
	logger          *zap.Logger
}

func NewFavoriteHandler(favoriteService *service.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger,
	}
}

// Toggle godoc
// @Summary Toggle a favorite
// @Description Add the property to favorites, or remove it if already present
// @Tags favorites
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ToggleFavoriteRequest true "Property to toggle"
// @Success 200 {object} dto.FavoritesResponse
// @Failure 404 {object} map[string]string
// @Router /favorites [put]
func (h *FavoriteHandler) Toggle(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req dto.ToggleFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property ID"})
	}

	resp, err := h.favoriteService.Toggle(c.Context(), userID, propertyID)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
		}
		h.logger.Error("Failed to toggle favorite", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.JSON(resp)
}

// List godoc
// @Summary List favorite property IDs
// @Tags favorites
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.FavoritesResponse
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	resp, err := h.favoriteService.List(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list favorites", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.JSON(resp)
}
