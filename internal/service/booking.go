package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/events"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/repository"
	"campus-housing-backend/internal/utils"
	"campus-housing-backend/internal/validation"
)

type bookingService struct {
	tx          repository.Transactor
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	events      EventPublisher
	validate    *validation.Validator
	now         func() time.Time
}

func NewBookingService(
	tx repository.Transactor,
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	events EventPublisher,
) BookingService {
	return &bookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		events:      events,
		validate:    validation.New(),
		now:         time.Now,
	}
}

func (s *bookingService) RequestBooking(ctx context.Context, listingID, tenantID int32, in domain.BookingRequest) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.RequestBooking", "listingID", listingID, "tenantID", tenantID)

	in.Message = strings.TrimSpace(in.Message)
	if !in.StartDate.IsZero() {
		in.StartDate = utils.CalendarDate(in.StartDate)
	}
	if !in.EndDate.IsZero() {
		in.EndDate = utils.CalendarDate(in.EndDate)
	}

	var (
		listing *domain.Listing
		booking *domain.Booking
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		listing, err = s.listingRepo.GetByID(ctx, listingID)
		if err != nil {
			return err
		}
		if err := s.validate.BookingRequest(in); err != nil {
			return err
		}

		total, err := utils.CalculateBookingCost(listing.PricePerMonth, in.StartDate, in.EndDate)
		if err != nil {
			return domain.NewValidationError("end_date", err.Error())
		}

		booking = &domain.Booking{
			ListingID:    listingID,
			TenantID:     tenantID,
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
			TotalPrice:   total,
			Status:       domain.BookingStatusPending,
			Message:      in.Message,
			ListingTitle: listing.Title,
		}
		return s.bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		logger.ExitMethodWithWarning("bookingService.RequestBooking", err, "listingID", listingID, "tenantID", tenantID)
		return nil, err
	}

	s.notifyOwner(ctx, listing, booking)
	publish(ctx, s.events, events.BookingRequested, s.bookingEvent(booking, listing.OwnerID, tenantID))

	logger.ExitMethod("bookingService.RequestBooking", "bookingID", booking.ID, "totalPrice", booking.TotalPrice)
	return booking, nil
}

// UpdateStatus lets the owner confirm a booking and either party cancel it.
// The current status is not consulted.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID, callerID int32, status domain.BookingStatus) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.UpdateStatus", "bookingID", bookingID, "callerID", callerID, "status", status)

	var (
		listing *domain.Listing
		booking *domain.Booking
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		listing, err = s.listingRepo.GetByID(ctx, booking.ListingID)
		if err != nil {
			return err
		}

		switch status {
		case domain.BookingStatusConfirmed:
			if callerID != listing.OwnerID {
				return fmt.Errorf("only the listing owner may confirm a booking: %w", domain.ErrForbidden)
			}
		case domain.BookingStatusCancelled:
			if callerID != listing.OwnerID && callerID != booking.TenantID {
				return fmt.Errorf("only the tenant or the listing owner may cancel a booking: %w", domain.ErrForbidden)
			}
		default:
			return s.validate.BookingStatus(status)
		}

		updatedAt := s.now().UTC()
		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status, updatedAt); err != nil {
			return err
		}
		booking.Status = status
		booking.UpdatedAt = updatedAt
		booking.ListingTitle = listing.Title
		return nil
	})
	if err != nil {
		logger.ExitMethodWithWarning("bookingService.UpdateStatus", err, "bookingID", bookingID, "callerID", callerID)
		return nil, err
	}

	s.notifyCounterparty(ctx, listing, booking, callerID)
	event := s.bookingEvent(booking, listing.OwnerID, booking.TenantID)
	event.ChangedBy = callerID
	publish(ctx, s.events, events.BookingStatusChanged, event)

	logger.ExitMethod("bookingService.UpdateStatus", "bookingID", bookingID, "status", status)
	return booking, nil
}

// GetBooking returns a booking to its tenant or to the owner of its listing.
func (s *bookingService) GetBooking(ctx context.Context, bookingID, callerID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.TenantID == callerID {
		return booking, nil
	}

	listing, err := s.listingRepo.GetByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != callerID {
		return nil, fmt.Errorf("booking belongs to another user: %w", domain.ErrForbidden)
	}
	booking.ListingTitle = listing.Title
	return booking, nil
}

func (s *bookingService) notifyOwner(ctx context.Context, listing *domain.Listing, booking *domain.Booking) {
	if s.emailSvc == nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, listing.OwnerID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping booking request email, owner lookup failed", "ownerID", listing.OwnerID, "error", err)
		return
	}
	tenant, err := s.userRepo.GetByID(ctx, booking.TenantID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping booking request email, tenant lookup failed", "tenantID", booking.TenantID, "error", err)
		return
	}
	if err := s.emailSvc.SendBookingRequestNotification(ctx, owner.Email, owner.FullName, tenant.FullName, listing.Title, booking); err != nil {
		logger.WarnContext(ctx, "Failed to send booking request email", "bookingID", booking.ID, "error", err)
	}
}

// notifyCounterparty tells the party who did not make the change.
func (s *bookingService) notifyCounterparty(ctx context.Context, listing *domain.Listing, booking *domain.Booking, callerID int32) {
	if s.emailSvc == nil {
		return
	}
	recipientID := booking.TenantID
	if callerID == booking.TenantID {
		recipientID = listing.OwnerID
	}
	if recipientID == callerID {
		return
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping booking status email, recipient lookup failed", "userID", recipientID, "error", err)
		return
	}
	if err := s.emailSvc.SendBookingStatusNotification(ctx, recipient.Email, recipient.FullName, listing.Title, booking); err != nil {
		logger.WarnContext(ctx, "Failed to send booking status email", "bookingID", booking.ID, "error", err)
	}
}

func (s *bookingService) bookingEvent(b *domain.Booking, ownerID, tenantID int32) events.BookingEvent {
	return events.BookingEvent{
		BookingID:  b.ID,
		ListingID:  b.ListingID,
		TenantID:   tenantID,
		OwnerID:    ownerID,
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice,
		OccurredAt: s.now().UTC(),
	}
}
