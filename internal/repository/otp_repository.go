package repository

import (
	"context"
	"time"

	"estate-hub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type OTPRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewOTPRepository(db *pgxpool.Pool, logger *zap.Logger) *OTPRepository {
	return &OTPRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores a fresh code for the email, resetting the attempt counter.
func (r *OTPRepository) Upsert(ctx context.Context, email, code string) error {
	query := squirrel.Insert("otps").
		Columns("email", "code", "attempts", "created_at").
		Values(email, code, 0, time.Now()).
		Suffix("ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, attempts = 0, created_at = EXCLUDED.created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *OTPRepository) Get(ctx context.Context, email string) (*models.OTP, error) {
	query := squirrel.Select("email", "code", "attempts", "created_at").
		From("otps").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var otp models.OTP
	err = r.db.QueryRow(ctx, sql, args...).Scan(&otp.Email, &otp.Code, &otp.Attempts, &otp.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &otp, nil
}

func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	query := squirrel.Delete("otps").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *OTPRepository) IncrementAttempts(ctx context.Context, email string) error {
	query := squirrel.Update("otps").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
