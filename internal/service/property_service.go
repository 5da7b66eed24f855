package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"estate-hub/internal/dto"
	"estate-hub/internal/models"
	"estate-hub/internal/repository"
	"estate-hub/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type propertyStore interface {
	Create(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, filter repository.PropertyFilter) ([]models.Property, error)
	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentStore interface {
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PropertyInput carries the multipart form fields of a create or update
// request. Features arrive as one comma-separated string.
type PropertyInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
	Bedrooms    int
	Bathrooms   int
	Area        float64
	Type        string
	ListingType string
	Features    string
}

type PropertyService struct {
	properties propertyStore
	comments   commentStore
	uploadCfg  config.UploadConfig
	logger     *zap.Logger
}

func NewPropertyService(
	properties propertyStore,
	comments commentStore,
	uploadCfg config.UploadConfig,
	logger *zap.Logger,
) *PropertyService {
	if err := os.MkdirAll(uploadCfg.Dir, 0o755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &PropertyService{
		properties: properties,
		comments:   comments,
		uploadCfg:  uploadCfg,
		logger:     logger,
	}
}

func (s *PropertyService) List(ctx context.Context, filter repository.PropertyFilter) ([]dto.PropertyResponse, error) {
	properties, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		out = append(out, toPropertyResponse(&properties[i], nil))
	}
	return out, nil
}

func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*dto.PropertyResponse, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPropertyNotFound
	}

	comments, err := s.comments.ListByProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toPropertyResponse(property, comments)
	return &resp, nil
}

func (s *PropertyService) Create(ctx context.Context, ownerID uuid.UUID, in PropertyInput, images []*multipart.FileHeader) (*dto.PropertyResponse, error) {
	if !models.ValidPropertyType(in.Type) {
		return nil, fmt.Errorf("invalid property type %q", in.Type)
	}
	if !models.ValidListingType(in.ListingType) {
		return nil, fmt.Errorf("invalid listing type %q", in.ListingType)
	}

	if err := s.validateImages(images); err != nil {
		return nil, err
	}

	imagePaths, err := s.saveImages(images)
	if err != nil {
		return nil, err
	}

	property := &models.Property{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Type:        models.PropertyType(in.Type),
		ListingType: models.ListingType(in.ListingType),
		Features:    parseFeatures(in.Features),
		Images:      imagePaths,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}

	if err := s.properties.Create(ctx, property); err != nil {
		s.removeImageFiles(imagePaths)
		return nil, err
	}

	return s.Get(ctx, property.ID)
}

// Update applies non-empty fields, keeps the images listed in
// existingImages (a JSON array), appends newly uploaded ones, and removes
// files that were dropped.
func (s *PropertyService) Update(ctx context.Context, userID, propertyID uuid.UUID, in PropertyInput, existingImages string, newImages []*multipart.FileHeader) (*dto.PropertyResponse, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, ErrPropertyNotFound
	}
	if property.OwnerID != userID {
		return nil, ErrForbidden
	}

	if err := s.validateImages(newImages); err != nil {
		return nil, err
	}

	kept := []string{}
	if existingImages != "" {
		if err := json.Unmarshal([]byte(existingImages), &kept); err != nil {
			return nil, fmt.Errorf("parse existing images: %w", err)
		}
	}

	newPaths, err := s.saveImages(newImages)
	if err != nil {
		return nil, err
	}
	finalImages := append(kept, newPaths...)

	keptSet := make(map[string]struct{}, len(finalImages))
	for _, img := range finalImages {
		keptSet[img] = struct{}{}
	}
	var dropped []string
	for _, img := range property.Images {
		if _, ok := keptSet[img]; !ok {
			dropped = append(dropped, img)
		}
	}
	s.removeImageFiles(dropped)

	if in.Title != "" {
		property.Title = in.Title
	}
	if in.Description != "" {
		property.Description = in.Description
	}
	if in.Price > 0 {
		property.Price = in.Price
	}
	if in.Location != "" {
		property.Location = in.Location
	}
	if in.Bedrooms > 0 {
		property.Bedrooms = in.Bedrooms
	}
	if in.Bathrooms > 0 {
		property.Bathrooms = in.Bathrooms
	}
	if in.Area > 0 {
		property.Area = in.Area
	}
	if models.ValidPropertyType(in.Type) {
		property.Type = models.PropertyType(in.Type)
	}
	if models.ValidListingType(in.ListingType) {
		property.ListingType = models.ListingType(in.ListingType)
	}
	if features := parseFeatures(in.Features); features != nil {
		property.Features = features
	}
	property.Images = finalImages

	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	return s.Get(ctx, propertyID)
}

// Delete removes a property; admins may remove any listing, owners only
// their own. Image files go with it.
func (s *PropertyService) Delete(ctx context.Context, userID uuid.UUID, role string, propertyID uuid.UUID) error {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return ErrPropertyNotFound
	}
	if role != string(models.UserRoleAdmin) && property.OwnerID != userID {
		return ErrForbidden
	}

	s.removeImageFiles(property.Images)
	return s.properties.Delete(ctx, propertyID)
}

func (s *PropertyService) AddComment(ctx context.Context, userID, propertyID uuid.UUID, req *dto.CreateCommentRequest) (*dto.PropertyResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}

	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		return nil, ErrPropertyNotFound
	}

	rating := req.Rating
	if rating == 0 {
		rating = 5
	}

	comment := &models.Comment{
		ID:         uuid.New(),
		PropertyID: propertyID,
		UserID:     userID,
		Text:       text,
		Rating:     rating,
		CreatedAt:  time.Now(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.Get(ctx, propertyID)
}

func (s *PropertyService) DeleteComment(ctx context.Context, userID uuid.UUID, role string, propertyID, commentID uuid.UUID) (*dto.PropertyResponse, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil || comment.PropertyID != propertyID {
		return nil, ErrCommentNotFound
	}

	if role != string(models.UserRoleAdmin) && comment.UserID != userID {
		return nil, ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return nil, err
	}

	return s.Get(ctx, propertyID)
}

func (s *PropertyService) validateImages(images []*multipart.FileHeader) error {
	if s.uploadCfg.MaxImages > 0 && len(images) > s.uploadCfg.MaxImages {
		return ErrTooManyImages
	}
	for _, img := range images {
		if s.uploadCfg.MaxFileSize > 0 && img.Size > s.uploadCfg.MaxFileSize {
			return ErrImageTooLarge
		}
		if !allowedImageExt(img.Filename) {
			return ErrUnsupportedFile
		}
	}
	return nil
}

func (s *PropertyService) saveImages(images []*multipart.FileHeader) ([]string, error) {
	var paths []string
	for _, img := range images {
		path, err := s.saveImage(img)
		if err != nil {
			s.removeImageFiles(paths)
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *PropertyService) saveImage(img *multipart.FileHeader) (string, error) {
	src, err := img.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	fileName := uuid.New().String() + strings.ToLower(filepath.Ext(img.Filename))
	filePath := filepath.Join(s.uploadCfg.Dir, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("save file: %w", err)
	}

	return "/uploads/" + fileName, nil
}

func (s *PropertyService) removeImageFiles(paths []string) {
	for _, p := range paths {
		full := filepath.Join(s.uploadCfg.Dir, filepath.Base(p))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove image file", zap.String("path", full), zap.Error(err))
		}
	}
}

func allowedImageExt(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// parseFeatures splits a comma-separated feature list, trimming each entry.
// An empty input yields nil so updates can distinguish "unchanged".
func parseFeatures(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	features := make([]string, 0, len(parts))
	for _, part := range parts {
		if f := strings.TrimSpace(part); f != "" {
			features = append(features, f)
		}
	}
	return features
}

func toPropertyResponse(p *models.Property, comments []models.Comment) dto.PropertyResponse {
	resp := dto.PropertyResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Location:    p.Location,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Type:        string(p.Type),
		ListingType: string(p.ListingType),
		Features:    p.Features,
		Images:      p.Images,
		Owner: dto.OwnerResponse{
			ID:    p.OwnerID.String(),
			Name:  p.OwnerName,
			Email: p.OwnerEmail,
		},
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}

	for i := range comments {
		c := &comments[i]
		resp.Comments = append(resp.Comments, dto.CommentResponse{
			ID:     c.ID.String(),
			Text:   c.Text,
			Rating: c.Rating,
			User: dto.OwnerResponse{
				ID:    c.UserID.String(),
				Name:  c.UserName,
				Email: c.UserEmail,
			},
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}
