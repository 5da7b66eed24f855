package repository

import (
	"context"

	"estate-hub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PropertyFilter mirrors the listing query parameters; zero values mean
// "no constraint".
type PropertyFilter struct {
	Type         string
	ListingType  string
	MinPrice     float64
	MaxPrice     float64
	MinBedrooms  int
	MinBathrooms int
	MinArea      float64
	Location     string
}

var propertyColumns = []string{
	"p.id", "p.title", "p.description", "p.price", "p.location",
	"p.bedrooms", "p.bathrooms", "p.area", "p.type", "p.listing_type",
	"p.features", "p.images", "p.owner_id", "p.created_at",
	"u.name", "u.email",
}

type PropertyRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPropertyRepository(db *pgxpool.Pool, logger *zap.Logger) *PropertyRepository {
	return &PropertyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) error {
	query := squirrel.Insert("properties").
		Columns("id", "title", "description", "price", "location",
			"bedrooms", "bathrooms", "area", "type", "listing_type",
			"features", "images", "owner_id", "created_at").
		Values(p.ID, p.Title, p.Description, p.Price, p.Location,
			p.Bedrooms, p.Bathrooms, p.Area, p.Type, p.ListingType,
			p.Features, p.Images, p.OwnerID, p.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	query := r.selectJoined().
		Where(squirrel.Eq{"p.id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Property
	if err := r.scanRow(r.db.QueryRow(ctx, sql, args...), &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// List returns properties matching the filter, oldest first so repeated
// listings keep a deterministic order.
func (r *PropertyRepository) List(ctx context.Context, filter PropertyFilter) ([]models.Property, error) {
	query := r.selectJoined()

	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"p.type": filter.Type})
	}
	if filter.ListingType != "" {
		query = query.Where(squirrel.Eq{"p.listing_type": filter.ListingType})
	}
	if filter.MinPrice > 0 {
		query = query.Where(squirrel.GtOrEq{"p.price": filter.MinPrice})
	}
	if filter.MaxPrice > 0 {
		query = query.Where(squirrel.LtOrEq{"p.price": filter.MaxPrice})
	}
	if filter.MinBedrooms > 0 {
		query = query.Where(squirrel.GtOrEq{"p.bedrooms": filter.MinBedrooms})
	}
	if filter.MinBathrooms > 0 {
		query = query.Where(squirrel.GtOrEq{"p.bathrooms": filter.MinBathrooms})
	}
	if filter.MinArea > 0 {
		query = query.Where(squirrel.GtOrEq{"p.area": filter.MinArea})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"p.location": "%" + filter.Location + "%"})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		if err := r.scanRow(rows, &p); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

// ListAll returns the full repository snapshot for the recommendation
// engine, in insertion order.
func (r *PropertyRepository) ListAll(ctx context.Context) ([]models.Property, error) {
	return r.List(ctx, PropertyFilter{})
}

func (r *PropertyRepository) Update(ctx context.Context, p *models.Property) error {
	query := squirrel.Update("properties").
		Set("title", p.Title).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("location", p.Location).
		Set("bedrooms", p.Bedrooms).
		Set("bathrooms", p.Bathrooms).
		Set("area", p.Area).
		Set("type", p.Type).
		Set("listing_type", p.ListingType).
		Set("features", p.Features).
		Set("images", p.Images).
		Where(squirrel.Eq{"id": p.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("properties").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM properties").Scan(&count)
	return count, err
}

func (r *PropertyRepository) selectJoined() squirrel.SelectBuilder {
	return squirrel.Select(propertyColumns...).
		From("properties p").
		Join("users u ON u.id = p.owner_id").
		OrderBy("p.created_at ASC", "p.id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PropertyRepository) scanRow(row rowScanner, p *models.Property) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Location,
		&p.Bedrooms, &p.Bathrooms, &p.Area, &p.Type, &p.ListingType,
		&p.Features, &p.Images, &p.OwnerID, &p.CreatedAt,
		&p.OwnerName, &p.OwnerEmail,
	)
}
