package recommend

import (
	"encoding/json"
	"fmt"
	"os"
)

// Weights defines the contribution of each scoring rule together with the
// proximity tolerances and the result limit.
type Weights struct {
	TypeMatch         float64 `json:"type_match"`
	ListingMatch      float64 `json:"listing_match"`
	PriceProximity    float64 `json:"price_proximity"`
	BedroomProximity  float64 `json:"bedroom_proximity"`
	BathroomProximity float64 `json:"bathroom_proximity"`
	AreaProximity     float64 `json:"area_proximity"`
	CityMatch         float64 `json:"city_match"`
	FeatureOverlap    float64 `json:"feature_overlap"`

	// PriceTolerance and AreaTolerance are relative thresholds: a candidate
	// outside the tolerance band around the profile mean contributes nothing.
	PriceTolerance float64 `json:"price_tolerance"`
	AreaTolerance  float64 `json:"area_tolerance"`

	// Limit caps the number of returned recommendations.
	Limit int `json:"limit"`
}

// DefaultWeights returns the production scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		TypeMatch:         30,
		ListingMatch:      20,
		PriceProximity:    25,
		BedroomProximity:  10,
		BathroomProximity: 10,
		AreaProximity:     15,
		CityMatch:         20,
		FeatureOverlap:    5,
		PriceTolerance:    0.30,
		AreaTolerance:     0.40,
		Limit:             6,
	}
}

// LoadWeightsFromFile loads weights from a JSON file, falling back to defaults
// for fields the file does not set.
func LoadWeightsFromFile(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}
