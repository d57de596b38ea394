// Package events defines the messages published when listings, bookings and
// reviews change, and a RabbitMQ publisher for them.
package events

import "time"

// Routing keys on the topic exchange
const (
	ListingCreated       = "listing.created"
	ListingUpdated       = "listing.updated"
	ListingDeleted       = "listing.deleted"
	ListingsDeactivated  = "listing.deactivated"
	BookingRequested     = "booking.requested"
	BookingStatusChanged = "booking.status_changed"
	ReviewCreated        = "review.created"
)

type ListingEvent struct {
	ListingID  int32     `json:"listing_id"`
	OwnerID    int32     `json:"owner_id"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ListingsDeactivatedEvent struct {
	ListingIDs []int32   `json:"listing_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BookingEvent struct {
	BookingID  int32     `json:"booking_id"`
	ListingID  int32     `json:"listing_id"`
	TenantID   int32     `json:"tenant_id"`
	OwnerID    int32     `json:"owner_id"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	ChangedBy  int32     `json:"changed_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ReviewEvent struct {
	ReviewID   int32     `json:"review_id"`
	ListingID  int32     `json:"listing_id"`
	ReviewerID int32     `json:"reviewer_id"`
	Rating     int32     `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}
