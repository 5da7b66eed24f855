package handlers

import (
	"estate-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recommendationService *service.RecommendationService
	logger                *zap.Logger
}

func NewRecommendationHandler(recommendationService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// Recommendations godoc
// @Summary Personalized property recommendations
// @Description Score all listings against the user's favorites and return the best matches
// @Tags recommendations
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.RecommendationsResponse
// @Router /recommendations [get]
func (h *RecommendationHandler) Recommendations(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	resp, err := h.recommendationService.ForUser(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build recommendations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build recommendations",
		})
	}

	return c.JSON(resp)
}
