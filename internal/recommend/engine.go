// Package recommend derives an implicit preference profile from a user's
// favorited properties and scores the remaining listings against it.
// Scoring is pure and deterministic: identical inputs always produce the
// same scores, reasons, and ordering.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"estate-hub/internal/models"

	"github.com/google/uuid"
)

type Engine struct {
	weights Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{weights: w}
}

// Recommendation pairs a candidate property with its score and the
// human-readable reasons for the rules that fired.
type Recommendation struct {
	Property models.Property `json:"property"`
	Score    int             `json:"score"`
	Reasons  []string        `json:"reasons"`
}

// Recommend builds a preference profile from the favorited subset of
// properties and returns the top candidates scored against it. Favorited
// properties are never candidates. Candidates with no fired rule are
// excluded. Ties keep the original property order.
func (e *Engine) Recommend(properties []models.Property, favoriteIDs []uuid.UUID) []Recommendation {
	if len(favoriteIDs) == 0 {
		return nil
	}

	favSet := make(map[uuid.UUID]struct{}, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favSet[id] = struct{}{}
	}

	var favorites []models.Property
	for _, p := range properties {
		if _, ok := favSet[p.ID]; ok {
			favorites = append(favorites, p)
		}
	}
	if len(favorites) == 0 {
		return nil
	}

	profile := BuildProfile(favorites)

	var out []Recommendation
	for _, p := range properties {
		if _, ok := favSet[p.ID]; ok {
			continue
		}
		score, reasons := e.Score(p, profile)
		if score <= 0 {
			continue
		}
		out = append(out, Recommendation{Property: p, Score: score, Reasons: reasons})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	limit := e.weights.Limit
	if limit <= 0 {
		limit = 6
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score evaluates one candidate against the profile. Rules are additive and
// evaluated in a fixed order; each fired rule appends its reason. The score
// is the rounded sum of contributions, never negative.
func (e *Engine) Score(p models.Property, profile Profile) (int, []string) {
	var score float64
	var reasons []string

	if n := profile.TypeCounts[p.Type]; n > 0 {
		score += float64(n) * e.weights.TypeMatch
		reasons = append(reasons, fmt.Sprintf("Matches your preferred property type (%s)", p.Type))
	}

	if n := profile.ListingCounts[p.ListingType]; n > 0 {
		score += float64(n) * e.weights.ListingMatch
		reasons = append(reasons, fmt.Sprintf("Matches your preferred listing type (%s)", p.ListingType))
	}

	if profile.AvgPrice > 0 {
		priceDiff := math.Abs(p.Price-profile.AvgPrice) / profile.AvgPrice
		if priceDiff < e.weights.PriceTolerance {
			score += (1 - priceDiff) * e.weights.PriceProximity
			reasons = append(reasons, "Similar price range to your favorites")
		}
	}

	if bedroomDiff := math.Abs(float64(p.Bedrooms) - profile.AvgBedrooms); bedroomDiff <= 1 {
		score += (2 - bedroomDiff) * e.weights.BedroomProximity
		reasons = append(reasons, "Similar bedroom count to your preferences")
	}

	if bathroomDiff := math.Abs(float64(p.Bathrooms) - profile.AvgBathrooms); bathroomDiff <= 1 {
		score += (2 - bathroomDiff) * e.weights.BathroomProximity
		reasons = append(reasons, "Similar bathroom count to your preferences")
	}

	if profile.AvgArea > 0 {
		areaDiff := math.Abs(p.Area-profile.AvgArea) / profile.AvgArea
		if areaDiff < e.weights.AreaTolerance {
			score += (1 - areaDiff) * e.weights.AreaProximity
			reasons = append(reasons, "Similar size to your favorite properties")
		}
	}

	if n := profile.CityCounts[p.City()]; n > 0 {
		score += float64(n) * e.weights.CityMatch
		reasons = append(reasons, fmt.Sprintf("Located in %s (your preferred area)", p.City()))
	}

	var overlapping []string
	for _, f := range p.Features {
		if profile.FeatureCounts[f] > 0 {
			overlapping = append(overlapping, f)
		}
	}
	if len(overlapping) > 0 {
		score += float64(len(overlapping)) * e.weights.FeatureOverlap
		if len(overlapping) > 2 {
			overlapping = overlapping[:2]
		}
		reasons = append(reasons, "Has features you love: "+strings.Join(overlapping, ", "))
	}

	return int(math.Round(score)), reasons
}
