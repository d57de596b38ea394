package repository

import (
	"context"
	"time"

	"campus-housing-backend/internal/domain"
)

// Transactor runs fn inside one database transaction. Repository calls made
// with the ctx passed to fn join that transaction; an error from fn rolls it back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int32) (*domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id int32) error
	Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Listing, error)
	DeactivateExpired(ctx context.Context, today time.Time) ([]int32, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus, updatedAt time.Time) error
	ListByTenant(ctx context.Context, tenantID int32) ([]domain.Booking, error)
	ListReceivedByOwner(ctx context.Context, ownerID int32) ([]domain.Booking, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByListing(ctx context.Context, listingID int32) ([]domain.Review, error)
}
