package service

import (
	"context"

	"campus-housing-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, in domain.Registration) (*domain.User, string, error) // user, access token
	Verify(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
}

type ListingService interface {
	CreateListing(ctx context.Context, ownerID int32, in domain.ListingInput) (*domain.Listing, error)
	UpdateListing(ctx context.Context, listingID, callerID int32, in domain.ListingInput) (*domain.Listing, error)
	DeleteListing(ctx context.Context, listingID, callerID int32) error
	GetListing(ctx context.Context, listingID int32) (*domain.Listing, error)
	SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
}

type BookingService interface {
	RequestBooking(ctx context.Context, listingID, tenantID int32, in domain.BookingRequest) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, callerID int32, status domain.BookingStatus) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID, callerID int32) (*domain.Booking, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, listingID, reviewerID int32, in domain.ReviewInput) (*domain.Review, error)
	ListForListing(ctx context.Context, listingID int32) (*domain.ListingReviews, error)
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID int32) (*domain.Dashboard, error)
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, ownerEmail, ownerName, tenantName, listingTitle string, booking *domain.Booking) error
	SendBookingStatusNotification(ctx context.Context, toEmail, toName, listingTitle string, booking *domain.Booking) error
}

// EventPublisher announces committed changes to other systems
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// ListingCache stores search results. Get returns the key a miss must be
// filled under; Invalidate drops every cached search.
type ListingCache interface {
	Get(ctx context.Context, filter domain.ListingFilter) (listings []domain.Listing, key string, hit bool, err error)
	Set(ctx context.Context, key string, listings []domain.Listing) error
	Invalidate(ctx context.Context) error
}
