package main

import (
	"context"
	"log"
	"os"
	"time"

	"estate-hub/internal/models"
	"estate-hub/internal/repository"
	"estate-hub/pkg/auth"
	"estate-hub/pkg/config"
	"estate-hub/pkg/logger"
	"estate-hub/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if err := applySchema(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	propertyRepo := repository.NewPropertyRepository(db, appLogger)

	admin, err := seedUser(ctx, userRepo, "Admin", "admin@estatehub.dev", "admin123", models.UserRoleAdmin, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to seed admin", zap.Error(err))
	}

	demo, err := seedUser(ctx, userRepo, "Demo User", "demo@estatehub.dev", "demo123", models.UserRoleUser, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	if err := seedProperties(ctx, propertyRepo, admin.ID, demo.ID, appLogger); err != nil {
		appLogger.Fatal("Failed to seed properties", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

func applySchema(ctx context.Context, db *pgxpool.Pool, appLogger *zap.Logger) error {
	schema, err := os.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, string(schema)); err != nil {
		return err
	}
	appLogger.Info("Schema applied")
	return nil
}

func seedUser(
	ctx context.Context,
	users *repository.UserRepository,
	name, email, password string,
	role models.UserRole,
	appLogger *zap.Logger,
) (*models.User, error) {
	if existing, err := users.GetByEmail(ctx, email); err == nil {
		appLogger.Info("User already seeded", zap.String("email", email))
		return existing, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	appLogger.Info("Seeded user", zap.String("email", email), zap.String("role", string(role)))
	return user, nil
}

func seedProperties(
	ctx context.Context,
	properties *repository.PropertyRepository,
	adminID, demoID uuid.UUID,
	appLogger *zap.Logger,
) error {
	existing, err := properties.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		appLogger.Info("Properties already seeded", zap.Int("count", len(existing)))
		return nil
	}

	samples := []models.Property{
		{
			Title:       "Sunny Downtown Apartment",
			Description: "Bright two-bedroom apartment close to everything.",
			Price:       250000,
			Location:    "Springfield, Main St 12",
			Bedrooms:    2,
			Bathrooms:   1,
			Area:        78,
			Type:        models.PropertyTypeApartment,
			ListingType: models.ListingTypeSell,
			Features:    []string{"Balcony", "Parking", "Elevator"},
			OwnerID:     adminID,
		},
		{
			Title:       "Family House with Garden",
			Description: "Spacious four-bedroom house with a large garden.",
			Price:       480000,
			Location:    "Springfield, Oak Ave 3",
			Bedrooms:    4,
			Bathrooms:   2,
			Area:        190,
			Type:        models.PropertyTypeHouse,
			ListingType: models.ListingTypeSell,
			Features:    []string{"Garden", "Garage", "Fireplace"},
			OwnerID:     adminID,
		},
		{
			Title:       "Modern Studio for Rent",
			Description: "Compact studio, fully furnished, ready to move in.",
			Price:       900,
			Location:    "Shelbyville, River Rd 45",
			Bedrooms:    1,
			Bathrooms:   1,
			Area:        36,
			Type:        models.PropertyTypeApartment,
			ListingType: models.ListingTypeRent,
			Features:    []string{"Furnished", "Elevator"},
			OwnerID:     demoID,
		},
		{
			Title:       "Lakeside Villa",
			Description: "Premium villa with private lake access.",
			Price:       1250000,
			Location:    "Shelbyville, Lake Dr 1",
			Bedrooms:    5,
			Bathrooms:   4,
			Area:        320,
			Type:        models.PropertyTypeVilla,
			ListingType: models.ListingTypeSell,
			Features:    []string{"Pool", "Garden", "Garage", "Lake View"},
			OwnerID:     demoID,
		},
	}

	for i := range samples {
		samples[i].ID = uuid.New()
		samples[i].CreatedAt = time.Now()
		if err := properties.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}

	appLogger.Info("Seeded properties", zap.Int("count", len(samples)))
	return nil
}
