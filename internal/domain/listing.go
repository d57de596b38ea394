package domain

import (
	"strings"
	"time"
)

const (
	DefaultListingCity  = "San Jose"
	DefaultListingState = "CA"

	// LandingPageLimit is how many of the newest listings the landing page shows.
	LandingPageLimit = 6
)

type Listing struct {
	ID            int32      `json:"id"`
	OwnerID       int32      `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	ZipCode       string     `json:"zip_code"`
	PricePerMonth float64    `json:"price_per_month"`
	Bedrooms      int32      `json:"bedrooms"`
	Bathrooms     float64    `json:"bathrooms"`
	SquareFeet    *int32     `json:"square_feet,omitempty"`
	AvailableFrom time.Time  `json:"available_from"`
	AvailableTo   *time.Time `json:"available_to,omitempty"`
	Amenities     string     `json:"amenities"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ListingInput carries the caller-editable fields of a listing.
// Owner and timestamps are never taken from it.
type ListingInput struct {
	Title         string     `json:"title" validate:"required,min=5,max=200"`
	Description   string     `json:"description" validate:"required,min=20,max=2000"`
	Address       string     `json:"address" validate:"required,max=300"`
	City          string     `json:"city" validate:"required,max=100"`
	State         string     `json:"state" validate:"max=2"`
	ZipCode       string     `json:"zip_code" validate:"max=10"`
	PricePerMonth float64    `json:"price_per_month" validate:"gte=0"`
	Bedrooms      int32      `json:"bedrooms" validate:"gte=0,lte=10"`
	Bathrooms     float64    `json:"bathrooms" validate:"gte=0,lte=10"`
	SquareFeet    *int32     `json:"square_feet" validate:"omitempty,gte=0"`
	AvailableFrom time.Time  `json:"available_from" validate:"required"`
	AvailableTo   *time.Time `json:"available_to"`
	Amenities     string     `json:"amenities"`
	IsActive      *bool      `json:"is_active"`
}

// WithDefaults fills the location fields a new listing may omit.
func (in ListingInput) WithDefaults() ListingInput {
	if strings.TrimSpace(in.City) == "" {
		in.City = DefaultListingCity
	}
	if strings.TrimSpace(in.State) == "" {
		in.State = DefaultListingState
	}
	return in
}

// WithStoredLocation keeps l's city and state where an edit leaves them blank.
func (in ListingInput) WithStoredLocation(l *Listing) ListingInput {
	if strings.TrimSpace(in.City) == "" {
		in.City = l.City
	}
	if strings.TrimSpace(in.State) == "" {
		in.State = l.State
	}
	return in.WithDefaults()
}

// Apply copies the input onto l. OwnerID, ID and CreatedAt are left untouched.
func (in ListingInput) Apply(l *Listing) {
	l.Title = in.Title
	l.Description = in.Description
	l.Address = in.Address
	l.City = in.City
	l.State = in.State
	l.ZipCode = in.ZipCode
	l.PricePerMonth = in.PricePerMonth
	l.Bedrooms = in.Bedrooms
	l.Bathrooms = in.Bathrooms
	l.SquareFeet = in.SquareFeet
	l.AvailableFrom = in.AvailableFrom
	l.AvailableTo = in.AvailableTo
	l.Amenities = in.Amenities
	if in.IsActive != nil {
		l.IsActive = *in.IsActive
	}
}

// ListingFilter narrows a search over active listings. Zero values are ignored.
type ListingFilter struct {
	Search      string   `json:"search,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	MinBedrooms *int32   `json:"bedrooms,omitempty"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	Limit       int      `json:"limit,omitempty"`
}
