package service

import (
	"context"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/repository"
)

type dashboardService struct {
	listingRepo repository.ListingRepository
	bookingRepo repository.BookingRepository
}

func NewDashboardService(listingRepo repository.ListingRepository, bookingRepo repository.BookingRepository) DashboardService {
	return &dashboardService{listingRepo: listingRepo, bookingRepo: bookingRepo}
}

// GetDashboard collects the caller's own listings, the bookings others made
// on them, and the bookings the caller made as a tenant.
func (s *dashboardService) GetDashboard(ctx context.Context, userID int32) (*domain.Dashboard, error) {
	logger.EnterMethod("dashboardService.GetDashboard", "userID", userID)

	listings, err := s.listingRepo.ListByOwner(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("dashboardService.GetDashboard", err, "userID", userID)
		return nil, err
	}
	received, err := s.bookingRepo.ListReceivedByOwner(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("dashboardService.GetDashboard", err, "userID", userID)
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByTenant(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("dashboardService.GetDashboard", err, "userID", userID)
		return nil, err
	}

	d := &domain.Dashboard{
		Listings:         nonNil(listings),
		ReceivedBookings: nonNil(received),
		Bookings:         nonNil(bookings),
	}
	logger.ExitMethod("dashboardService.GetDashboard", "userID", userID,
		"listings", len(d.Listings), "received", len(d.ReceivedBookings), "bookings", len(d.Bookings))
	return d, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
