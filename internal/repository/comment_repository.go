package repository

import (
	"context"

	"estate-hub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CommentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCommentRepository(db *pgxpool.Pool, logger *zap.Logger) *CommentRepository {
	return &CommentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	query := squirrel.Insert("comments").
		Columns("id", "property_id", "user_id", "text", "rating", "created_at").
		Values(c.ID, c.PropertyID, c.UserID, c.Text, c.Rating, c.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := squirrel.Select("id", "property_id", "user_id", "text", "rating", "created_at").
		From("comments").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c models.Comment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.PropertyID, &c.UserID, &c.Text, &c.Rating, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *CommentRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Comment, error) {
	query := squirrel.Select("c.id", "c.property_id", "c.user_id", "c.text", "c.rating", "c.created_at",
		"u.name", "u.email").
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.property_id": propertyID}).
		OrderBy("c.created_at ASC").
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

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PropertyID, &c.UserID, &c.Text, &c.Rating, &c.CreatedAt,
			&c.UserName, &c.UserEmail,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("comments").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
