package service

import (
	"context"
	"testing"

	"estate-hub/internal/models"
	"estate-hub/internal/recommend"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePropertySnapshot struct {
	properties []models.Property
}

func (f *fakePropertySnapshot) ListAll(context.Context) ([]models.Property, error) {
	return f.properties, nil
}

type fakeFavoriteIDs struct {
	ids map[uuid.UUID][]uuid.UUID
}

func (f *fakeFavoriteIDs) ListIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return f.ids[userID], nil
}

func villa(city string, price float64) models.Property {
	return models.Property{
		ID:          uuid.New(),
		Type:        models.PropertyTypeVilla,
		ListingType: models.ListingTypeSell,
		Price:       price,
		Bedrooms:    3,
		Bathrooms:   2,
		Area:        2000,
		Location:    city,
		Features:    []string{"pool"},
	}
}

func newRecommendationService(props []models.Property, favs map[uuid.UUID][]uuid.UUID) *RecommendationService {
	return NewRecommendationService(
		recommend.NewEngine(recommend.DefaultWeights()),
		&fakePropertySnapshot{properties: props},
		&fakeFavoriteIDs{ids: favs},
		zap.NewNop(),
	)
}

func TestRecommendationService_AbsentUser(t *testing.T) {
	svc := newRecommendationService([]models.Property{villa("Austin, TX", 500_000)}, nil)

	resp, err := svc.ForUser(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations)
	assert.Zero(t, resp.FavoriteCount)
	assert.Equal(t, "No recommendations yet", resp.Summary)
}

func TestRecommendationService_NoFavorites(t *testing.T) {
	userID := uuid.New()
	svc := newRecommendationService([]models.Property{villa("Austin, TX", 500_000)}, map[uuid.UUID][]uuid.UUID{})

	resp, err := svc.ForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations)
}

func TestRecommendationService_SummaryCounts(t *testing.T) {
	fav := villa("Austin, TX", 500_000)
	candidateA := villa("Austin, TX", 510_000)
	candidateB := villa("Austin, TX", 520_000)

	userID := uuid.New()
	svc := newRecommendationService(
		[]models.Property{fav, candidateA, candidateB},
		map[uuid.UUID][]uuid.UUID{userID: {fav.ID}},
	)

	resp, err := svc.ForUser(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.FavoriteCount)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Based on your 1 favorite properties, we found 2 perfect matches", resp.Summary)

	// Favorited listings never come back as recommendations.
	for _, rec := range resp.Recommendations {
		assert.NotEqual(t, fav.ID.String(), rec.Property.ID)
	}
}

func TestRecommendationService_NoPositiveScores(t *testing.T) {
	fav := villa("Austin, TX", 500_000)
	unrelated := models.Property{
		ID:          uuid.New(),
		Type:        models.PropertyTypeCommercial,
		ListingType: models.ListingTypeRent,
		Price:       50_000_000,
		Bedrooms:    40,
		Bathrooms:   30,
		Area:        900_000,
		Location:    "Fargo, ND",
	}

	userID := uuid.New()
	svc := newRecommendationService(
		[]models.Property{fav, unrelated},
		map[uuid.UUID][]uuid.UUID{userID: {fav.ID}},
	)

	resp, err := svc.ForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations)
	assert.Equal(t, 1, resp.FavoriteCount)
	assert.Equal(t, "No recommendations yet", resp.Summary)
}
