package repository

import (
	"context"
	"time"

	"estate-hub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FavoriteRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFavoriteRepository(db *pgxpool.Pool, logger *zap.Logger) *FavoriteRepository {
	return &FavoriteRepository{
		db:     db,
		logger: logger,
	}
}

// Toggle removes the favorite if present, inserts it otherwise, and reports
// whether the property is favorited afterwards.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	del := squirrel.Delete("favorites").
		Where(squirrel.Eq{"user_id": userID, "property_id": propertyID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := del.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	favorite := models.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}

	ins := squirrel.Insert("favorites").
		Columns("user_id", "property_id", "created_at").
		Values(favorite.UserID, favorite.PropertyID, favorite.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = ins.ToSql()
	if err != nil {
		return false, err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return false, err
	}

	return true, nil
}

// ListIDs returns the user's favorited property ids in the order they were
// marked.
func (r *FavoriteRepository) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := squirrel.Select("property_id").
		From("favorites").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
