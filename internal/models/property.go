package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PropertyType string

const (
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
)

type ListingType string

const (
	ListingTypeSell ListingType = "sell"
	ListingTypeRent ListingType = "rent"
)

type Property struct {
	ID          uuid.UUID    `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Price       float64      `db:"price"`
	Location    string       `db:"location"`
	Bedrooms    int          `db:"bedrooms"`
	Bathrooms   int          `db:"bathrooms"`
	Area        float64      `db:"area"`
	Type        PropertyType `db:"type"`
	ListingType ListingType  `db:"listing_type"`
	Features    []string     `db:"features"`
	Images      []string     `db:"images"`
	OwnerID     uuid.UUID    `db:"owner_id"`
	CreatedAt   time.Time    `db:"created_at"`

	// Joined from users on read paths.
	OwnerName  string `db:"owner_name"`
	OwnerEmail string `db:"owner_email"`
}

// City returns the segment of the location before the first comma,
// trimmed of surrounding whitespace ("Austin, TX" -> "Austin").
func (p *Property) City() string {
	city, _, _ := strings.Cut(p.Location, ",")
	return strings.TrimSpace(city)
}

func ValidPropertyType(t string) bool {
	switch PropertyType(t) {
	case PropertyTypeVilla, PropertyTypeApartment, PropertyTypeHouse, PropertyTypeLand, PropertyTypeCommercial:
		return true
	}
	return false
}

func ValidListingType(t string) bool {
	switch ListingType(t) {
	case ListingTypeSell, ListingTypeRent:
		return true
	}
	return false
}
