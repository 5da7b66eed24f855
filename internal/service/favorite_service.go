package service

import (
	"context"

	"estate-hub/internal/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type favoriteStore interface {
	Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type FavoriteService struct {
	favorites  favoriteStore
	properties propertyStore
	logger     *zap.Logger
}

func NewFavoriteService(favorites favoriteStore, properties propertyStore, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{
		favorites:  favorites,
		properties: properties,
		logger:     logger,
	}
}

// Toggle flips the favorite mark for a property and returns the user's
// favorite id list afterwards.
func (s *FavoriteService) Toggle(ctx context.Context, userID, propertyID uuid.UUID) (*dto.FavoritesResponse, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		return nil, ErrPropertyNotFound
	}

	added, err := s.favorites.Toggle(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Favorite toggled",
		zap.String("user_id", userID.String()),
		zap.String("property_id", propertyID.String()),
		zap.Bool("favorited", added),
	)

	return s.List(ctx, userID)
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) (*dto.FavoritesResponse, error) {
	ids, err := s.favorites.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return &dto.FavoritesResponse{Favorites: out}, nil
}
