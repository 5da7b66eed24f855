package dto

type RecommendationResponse struct {
	Property PropertyResponse `json:"property"`
	Score    int              `json:"score"`
	Reasons  []string         `json:"reasons"`
}

type RecommendationsResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
	FavoriteCount   int                      `json:"favoriteCount"`
	Summary         string                   `json:"summary"`
}
