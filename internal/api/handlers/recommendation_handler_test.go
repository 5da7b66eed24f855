package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"estate-hub/internal/dto"
	"estate-hub/internal/models"
	"estate-hub/internal/recommend"
	"estate-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProperties struct {
	properties []models.Property
}

func (s *stubProperties) ListAll(ctx context.Context) ([]models.Property, error) {
	return s.properties, nil
}

type stubFavorites struct {
	ids []uuid.UUID
}

func (s *stubFavorites) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.ids, nil
}

func newTestApp(t *testing.T, userID uuid.UUID, properties []models.Property, favoriteIDs []uuid.UUID) *fiber.App {
	t.Helper()

	svc := service.NewRecommendationService(
		recommend.NewEngine(recommend.DefaultWeights()),
		&stubProperties{properties: properties},
		&stubFavorites{ids: favoriteIDs},
		zap.NewNop(),
	)
	handler := NewRecommendationHandler(svc, zap.NewNop())

	app := fiber.New()
	app.Get("/api/recommendations", func(c *fiber.Ctx) error {
		c.Locals("userID", userID.String())
		return c.Next()
	}, handler.Recommendations)

	return app
}

func TestRecommendations_ReturnsScoredMatches(t *testing.T) {
	favID := uuid.New()
	properties := []models.Property{
		{
			ID:          favID,
			Title:       "Favorited Apartment",
			Price:       200000,
			Location:    "Springfield, Main St",
			Bedrooms:    2,
			Bathrooms:   1,
			Area:        80,
			Type:        models.PropertyTypeApartment,
			ListingType: models.ListingTypeSell,
		},
		{
			ID:          uuid.New(),
			Title:       "Similar Apartment",
			Price:       210000,
			Location:    "Springfield, Oak Ave",
			Bedrooms:    2,
			Bathrooms:   1,
			Area:        85,
			Type:        models.PropertyTypeApartment,
			ListingType: models.ListingTypeSell,
		},
	}

	app := newTestApp(t, uuid.New(), properties, []uuid.UUID{favID})

	req := httptest.NewRequest("GET", "/api/recommendations", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.RecommendationsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Recommendations, 1)
	assert.Equal(t, "Similar Apartment", body.Recommendations[0].Property.Title)
	assert.Greater(t, body.Recommendations[0].Score, 0)
	assert.NotEmpty(t, body.Recommendations[0].Reasons)
	assert.Equal(t, 1, body.FavoriteCount)
	assert.Equal(t, "Based on your 1 favorite properties, we found 1 perfect matches", body.Summary)
}

func TestRecommendations_NoFavorites(t *testing.T) {
	app := newTestApp(t, uuid.New(), []models.Property{{ID: uuid.New(), Title: "Listing"}}, nil)

	req := httptest.NewRequest("GET", "/api/recommendations", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.RecommendationsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Empty(t, body.Recommendations)
	assert.Equal(t, 0, body.FavoriteCount)
	assert.Equal(t, "No recommendations yet", body.Summary)
}

func TestRecommendations_MissingUser(t *testing.T) {
	svc := service.NewRecommendationService(
		recommend.NewEngine(recommend.DefaultWeights()),
		&stubProperties{},
		&stubFavorites{},
		zap.NewNop(),
	)
	handler := NewRecommendationHandler(svc, zap.NewNop())

	app := fiber.New()
	app.Get("/api/recommendations", handler.Recommendations)

	req := httptest.NewRequest("GET", "/api/recommendations", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
