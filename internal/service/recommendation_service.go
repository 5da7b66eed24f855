package service

import (
	"context"
	"fmt"

	"estate-hub/internal/dto"
	"estate-hub/internal/models"
	"estate-hub/internal/recommend"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type propertySnapshot interface {
	ListAll(ctx context.Context) ([]models.Property, error)
}

type favoriteIDSource interface {
	ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// RecommendationService runs the scoring engine over a fresh snapshot of the
// property repository on every request. There is no cache and no state
// carried between invocations.
type RecommendationService struct {
	engine     *recommend.Engine
	properties propertySnapshot
	favorites  favoriteIDSource
	logger     *zap.Logger
}

func NewRecommendationService(
	engine *recommend.Engine,
	properties propertySnapshot,
	favorites favoriteIDSource,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		engine:     engine,
		properties: properties,
		favorites:  favorites,
		logger:     logger,
	}
}

// ForUser computes recommendations for the given user. An absent user or an
// empty favorites set yields an empty list; neither is an error.
func (s *RecommendationService) ForUser(ctx context.Context, userID uuid.UUID) (*dto.RecommendationsResponse, error) {
	if userID == uuid.Nil {
		return emptyRecommendations(0), nil
	}

	favoriteIDs, err := s.favorites.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(favoriteIDs) == 0 {
		return emptyRecommendations(0), nil
	}

	properties, err := s.properties.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	recs := s.engine.Recommend(properties, favoriteIDs)
	if len(recs) == 0 {
		return emptyRecommendations(len(favoriteIDs)), nil
	}

	resp := &dto.RecommendationsResponse{
		Recommendations: make([]dto.RecommendationResponse, 0, len(recs)),
		FavoriteCount:   len(favoriteIDs),
		Summary: fmt.Sprintf("Based on your %d favorite properties, we found %d perfect matches",
			len(favoriteIDs), len(recs)),
	}

	for i := range recs {
		resp.Recommendations = append(resp.Recommendations, dto.RecommendationResponse{
			Property: toPropertyResponse(&recs[i].Property, nil),
			Score:    recs[i].Score,
			Reasons:  recs[i].Reasons,
		})
	}

	s.logger.Debug("Recommendations computed",
		zap.String("user_id", userID.String()),
		zap.Int("favorites", len(favoriteIDs)),
		zap.Int("results", len(recs)),
	)

	return resp, nil
}

func emptyRecommendations(favoriteCount int) *dto.RecommendationsResponse {
	return &dto.RecommendationsResponse{
		Recommendations: []dto.RecommendationResponse{},
		FavoriteCount:   favoriteCount,
		Summary:         "No recommendations yet",
	}
}
