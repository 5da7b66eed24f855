package dto

type OwnerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Rating    int           `json:"rating"`
	User      OwnerResponse `json:"user"`
	CreatedAt string        `json:"createdAt"`
}

type PropertyResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Location    string            `json:"location"`
	Bedrooms    int               `json:"bedrooms"`
	Bathrooms   int               `json:"bathrooms"`
	Area        float64           `json:"area"`
	Type        string            `json:"type"`
	ListingType string            `json:"listingType"`
	Features    []string          `json:"features"`
	Images      []string          `json:"images"`
	Owner       OwnerResponse     `json:"owner"`
	Comments    []CommentResponse `json:"comments,omitempty"`
	CreatedAt   string            `json:"createdAt"`
}

type CreateCommentRequest struct {
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating"`
}

type ToggleFavoriteRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}
