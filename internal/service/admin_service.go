package service

import (
	"context"

	"estate-hub/internal/dto"
	"estate-hub/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type adminUserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type propertyCounter interface {
	Count(ctx context.Context) (int64, error)
}

type AdminService struct {
	users      adminUserStore
	properties propertyCounter
	logger     *zap.Logger
}

func NewAdminService(users adminUserStore, properties propertyCounter, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:      users,
		properties: properties,
		logger:     logger,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	propertyCount, err := s.properties.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{
		Users:      userCount,
		Properties: propertyCount,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

// DeleteUser removes an account. Admins cannot remove themselves.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return ErrForbidden
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return ErrUserNotFound
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("User deleted by admin",
		zap.String("admin_id", adminID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}
