package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"estate-hub/internal/models"
	"estate-hub/internal/repository"
	"estate-hub/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePropertyStore struct {
	properties map[uuid.UUID]*models.Property
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: make(map[uuid.UUID]*models.Property)}
}

func (f *fakePropertyStore) Create(_ context.Context, p *models.Property) error {
	cp := *p
	f.properties[p.ID] = &cp
	return nil
}

func (f *fakePropertyStore) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePropertyStore) List(_ context.Context, _ repository.PropertyFilter) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePropertyStore) Update(_ context.Context, p *models.Property) error {
	cp := *p
	f.properties[p.ID] = &cp
	return nil
}

func (f *fakePropertyStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.properties, id)
	return nil
}

type fakeCommentStore struct {
	comments map[uuid.UUID]*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[uuid.UUID]*models.Comment)}
}

func (f *fakeCommentStore) Create(_ context.Context, c *models.Comment) error {
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentStore) ListByProperty(_ context.Context, propertyID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.PropertyID == propertyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

// makeFileHeader builds a real multipart.FileHeader the way Fiber hands it
// to the service.
func makeFileHeader(t *testing.T, fileName, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("newImages", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["newImages"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestPropertyService(t *testing.T) (*PropertyService, *fakePropertyStore, string) {
	t.Helper()

	dir := t.TempDir()
	store := newFakePropertyStore()
	svc := NewPropertyService(store, newFakeCommentStore(), config.UploadConfig{
		Dir:         dir,
		MaxFileSize: 5 * 1024 * 1024,
		MaxImages:   10,
	}, zap.NewNop())
	return svc, store, dir
}

func writeUploadedImage(t *testing.T, dir, name string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old-bytes"), 0o644))
	return "/uploads/" + name
}

func TestUpdate_ImageLifecycle(t *testing.T) {
	svc, store, dir := newTestPropertyService(t)

	ownerID := uuid.New()
	kept := writeUploadedImage(t, dir, "kept.jpg")
	dropped := writeUploadedImage(t, dir, "dropped.jpg")

	property := &models.Property{
		ID:          uuid.New(),
		Title:       "Family House",
		Price:       300000,
		Location:    "Springfield, Oak Ave",
		Type:        models.PropertyTypeHouse,
		ListingType: models.ListingTypeSell,
		Images:      []string{kept, dropped},
		OwnerID:     ownerID,
	}
	require.NoError(t, store.Create(context.Background(), property))

	upload := makeFileHeader(t, "new.jpg", "new-bytes")
	resp, err := svc.Update(context.Background(), ownerID, property.ID,
		PropertyInput{}, `["`+kept+`"]`, []*multipart.FileHeader{upload})
	require.NoError(t, err)

	// Kept image first, freshly uploaded one appended after it.
	require.Len(t, resp.Images, 2)
	assert.Equal(t, kept, resp.Images[0])
	assert.True(t, strings.HasPrefix(resp.Images[1], "/uploads/"))
	assert.True(t, strings.HasSuffix(resp.Images[1], ".jpg"))

	// The new upload landed on disk, the dropped image is gone, the kept
	// one survived.
	newFile := filepath.Join(dir, filepath.Base(resp.Images[1]))
	content, err := os.ReadFile(newFile)
	require.NoError(t, err)
	assert.Equal(t, "new-bytes", string(content))

	_, err = os.Stat(filepath.Join(dir, "dropped.jpg"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "kept.jpg"))
	assert.NoError(t, err)
}

func TestUpdate_OnlyOwnerMayEdit(t *testing.T) {
	svc, store, dir := newTestPropertyService(t)

	image := writeUploadedImage(t, dir, "photo.jpg")
	property := &models.Property{
		ID:          uuid.New(),
		Title:       "Studio",
		Price:       900,
		Location:    "Shelbyville, River Rd",
		Type:        models.PropertyTypeApartment,
		ListingType: models.ListingTypeRent,
		Images:      []string{image},
		OwnerID:     uuid.New(),
	}
	require.NoError(t, store.Create(context.Background(), property))

	_, err := svc.Update(context.Background(), uuid.New(), property.ID,
		PropertyInput{Title: "Hijacked"}, "[]", nil)
	require.ErrorIs(t, err, ErrForbidden)

	// Nothing changed: the listing and its image file are untouched.
	stored, err := store.GetByID(context.Background(), property.ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio", stored.Title)
	_, err = os.Stat(filepath.Join(dir, "photo.jpg"))
	assert.NoError(t, err)
}

func TestUpdate_KeepsFieldsWhenInputEmpty(t *testing.T) {
	svc, store, _ := newTestPropertyService(t)

	ownerID := uuid.New()
	property := &models.Property{
		ID:          uuid.New(),
		Title:       "Lakeside Villa",
		Description: "Private lake access.",
		Price:       1250000,
		Location:    "Shelbyville, Lake Dr",
		Bedrooms:    5,
		Type:        models.PropertyTypeVilla,
		ListingType: models.ListingTypeSell,
		OwnerID:     ownerID,
	}
	require.NoError(t, store.Create(context.Background(), property))

	resp, err := svc.Update(context.Background(), ownerID, property.ID,
		PropertyInput{Price: 1100000}, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Lakeside Villa", resp.Title)
	assert.Equal(t, float64(1100000), resp.Price)
	assert.Equal(t, 5, resp.Bedrooms)
	assert.Empty(t, resp.Images)
}

func TestAllowedImageExt(t *testing.T) {
	cases := map[string]bool{
		"house.jpg":       true,
		"house.JPEG":      true,
		"plan.png":        true,
		"garden.webp":     true,
		"listing.pdf":     false,
		"script.sh":       false,
		"noextension":     false,
		"archive.jpg.exe": false,
	}

	for name, want := range cases {
		assert.Equal(t, want, allowedImageExt(name), name)
	}
}

func TestParseFeatures(t *testing.T) {
	assert.Nil(t, parseFeatures(""))
	assert.Nil(t, parseFeatures("   "))
	assert.Equal(t, []string{"pool", "garage"}, parseFeatures("pool, garage"))
	assert.Equal(t, []string{"pool"}, parseFeatures("pool,,  "))
	// Feature names keep their case; the scorer matches them verbatim.
	assert.Equal(t, []string{"Sea View"}, parseFeatures(" Sea View "))
}
