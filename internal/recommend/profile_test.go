package recommend

import (
	"testing"

	"estate-hub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildProfile_Aggregation(t *testing.T) {
	favorites := []models.Property{
		{
			ID:          uuid.New(),
			Type:        models.PropertyTypeVilla,
			ListingType: models.ListingTypeSell,
			Price:       400_000,
			Bedrooms:    2,
			Bathrooms:   1,
			Area:        1200,
			Location:    "Austin , TX",
			Features:    []string{"pool", "garage"},
		},
		{
			ID:          uuid.New(),
			Type:        models.PropertyTypeVilla,
			ListingType: models.ListingTypeRent,
			Price:       600_000,
			Bedrooms:    4,
			Bathrooms:   3,
			Area:        1800,
			Location:    "Dallas",
			Features:    []string{"pool", "Garden"},
		},
	}

	p := BuildProfile(favorites)

	assert.Equal(t, 2, p.TypeCounts[models.PropertyTypeVilla])
	assert.Equal(t, 1, p.ListingCounts[models.ListingTypeSell])
	assert.Equal(t, 1, p.ListingCounts[models.ListingTypeRent])

	// City is the first comma segment, whitespace-trimmed; a location without
	// a comma is its own city.
	assert.Equal(t, 1, p.CityCounts["Austin"])
	assert.Equal(t, 1, p.CityCounts["Dallas"])

	// Feature keys are case-sensitive.
	assert.Equal(t, 2, p.FeatureCounts["pool"])
	assert.Equal(t, 1, p.FeatureCounts["Garden"])
	assert.Zero(t, p.FeatureCounts["garden"])

	assert.InDelta(t, 500_000, p.AvgPrice, 1e-9)
	assert.InDelta(t, 3, p.AvgBedrooms, 1e-9)
	assert.InDelta(t, 2, p.AvgBathrooms, 1e-9)
	assert.InDelta(t, 1500, p.AvgArea, 1e-9)
}

func TestLoadWeightsFromFile_MissingFileKeepsDefaults(t *testing.T) {
	w, err := LoadWeightsFromFile("does-not-exist.json")
	assert.Error(t, err)
	assert.Equal(t, DefaultWeights(), w)
}
