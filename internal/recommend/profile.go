package recommend

import (
	"estate-hub/internal/models"
)

// Profile holds the aggregate statistics derived from a user's favorited
// properties. It is rebuilt from scratch on every run and never persisted.
type Profile struct {
	TypeCounts    map[models.PropertyType]int
	ListingCounts map[models.ListingType]int
	CityCounts    map[string]int
	FeatureCounts map[string]int

	AvgPrice     float64
	AvgBedrooms  float64
	AvgBathrooms float64
	AvgArea      float64
}

// BuildProfile aggregates preferences over the favorited properties.
// The favorites slice must be non-empty; callers short-circuit to an empty
// recommendation list before building a profile otherwise.
func BuildProfile(favorites []models.Property) Profile {
	p := Profile{
		TypeCounts:    make(map[models.PropertyType]int),
		ListingCounts: make(map[models.ListingType]int),
		CityCounts:    make(map[string]int),
		FeatureCounts: make(map[string]int),
	}

	var sumPrice, sumBedrooms, sumBathrooms, sumArea float64
	for i := range favorites {
		fav := &favorites[i]
		p.TypeCounts[fav.Type]++
		p.ListingCounts[fav.ListingType]++
		p.CityCounts[fav.City()]++
		// Feature keys are matched verbatim, no normalization.
		for _, f := range fav.Features {
			p.FeatureCounts[f]++
		}

		sumPrice += fav.Price
		sumBedrooms += float64(fav.Bedrooms)
		sumBathrooms += float64(fav.Bathrooms)
		sumArea += fav.Area
	}

	n := float64(len(favorites))
	p.AvgPrice = sumPrice / n
	p.AvgBedrooms = sumBedrooms / n
	p.AvgBathrooms = sumBathrooms / n
	p.AvgArea = sumArea / n

	return p
}
