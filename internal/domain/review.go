package domain

import "time"

const ReviewTypeListing = "listing"

type Review struct {
	ID         int32     `json:"id"`
	ListingID  int32     `json:"listing_id"`
	ReviewerID int32     `json:"reviewer_id"`
	Rating     int32     `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewType string    `json:"review_type"`
	CreatedAt  time.Time `json:"created_at"`

	ReviewerUsername string `json:"reviewer_username,omitempty"`
}

type ReviewInput struct {
	Rating  int32  `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,min=10,max=1000"`
}

// ListingReviews is the review section of a listing page.
type ListingReviews struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
}

// AverageRating returns the arithmetic mean of the ratings, 0 when there are none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int32
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
