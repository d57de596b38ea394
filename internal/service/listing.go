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
	"campus-housing-backend/internal/validation"
)

type listingService struct {
	tx          repository.Transactor
	listingRepo repository.ListingRepository
	cache       ListingCache
	events      EventPublisher
	validate    *validation.Validator
	now         func() time.Time
}

// NewListingService wires the listing use cases. cache and events may be nil.
func NewListingService(tx repository.Transactor, listingRepo repository.ListingRepository, cache ListingCache, events EventPublisher) ListingService {
	return &listingService{
		tx:          tx,
		listingRepo: listingRepo,
		cache:       cache,
		events:      events,
		validate:    validation.New(),
		now:         time.Now,
	}
}

func (s *listingService) CreateListing(ctx context.Context, ownerID int32, in domain.ListingInput) (*domain.Listing, error) {
	logger.EnterMethod("listingService.CreateListing", "ownerID", ownerID)

	in = trimListingInput(in).WithDefaults()
	if err := s.validate.Listing(in); err != nil {
		logger.ExitMethodWithWarning("listingService.CreateListing", err, "ownerID", ownerID)
		return nil, err
	}

	listing := &domain.Listing{OwnerID: ownerID}
	in.Apply(listing)
	listing.IsActive = true

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		logger.ExitMethodWithError("listingService.CreateListing", err, "ownerID", ownerID)
		return nil, err
	}

	invalidateSearches(ctx, s.cache)
	publish(ctx, s.events, events.ListingCreated, s.listingEvent(listing))

	logger.ExitMethod("listingService.CreateListing", "listingID", listing.ID)
	return listing, nil
}

func (s *listingService) UpdateListing(ctx context.Context, listingID, callerID int32, in domain.ListingInput) (*domain.Listing, error) {
	logger.EnterMethod("listingService.UpdateListing", "listingID", listingID, "callerID", callerID)

	in = trimListingInput(in)
	var listing *domain.Listing
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		listing, err = s.ownedListing(ctx, listingID, callerID, "update")
		if err != nil {
			return err
		}
		in = in.WithStoredLocation(listing)
		if err := s.validate.Listing(in); err != nil {
			return err
		}
		in.Apply(listing)
		return s.listingRepo.Update(ctx, listing)
	})
	if err != nil {
		logger.ExitMethodWithWarning("listingService.UpdateListing", err, "listingID", listingID)
		return nil, err
	}

	invalidateSearches(ctx, s.cache)
	publish(ctx, s.events, events.ListingUpdated, s.listingEvent(listing))

	logger.ExitMethod("listingService.UpdateListing", "listingID", listingID)
	return listing, nil
}

func (s *listingService) DeleteListing(ctx context.Context, listingID, callerID int32) error {
	logger.EnterMethod("listingService.DeleteListing", "listingID", listingID, "callerID", callerID)

	var listing *domain.Listing
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		listing, err = s.ownedListing(ctx, listingID, callerID, "delete")
		if err != nil {
			return err
		}
		return s.listingRepo.Delete(ctx, listingID)
	})
	if err != nil {
		logger.ExitMethodWithWarning("listingService.DeleteListing", err, "listingID", listingID)
		return err
	}

	invalidateSearches(ctx, s.cache)
	publish(ctx, s.events, events.ListingDeleted, s.listingEvent(listing))

	logger.ExitMethod("listingService.DeleteListing", "listingID", listingID)
	return nil
}

func (s *listingService) GetListing(ctx context.Context, listingID int32) (*domain.Listing, error) {
	return s.listingRepo.GetByID(ctx, listingID)
}

// SearchListings reads through the cache when one is configured. Cache
// failures degrade to a direct query.
func (s *listingService) SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.City = strings.TrimSpace(filter.City)
	filter.State = strings.TrimSpace(filter.State)

	// cacheKey stays empty when the cache is off or unreachable
	var cacheKey string
	if s.cache != nil {
		cached, key, ok, err := s.cache.Get(ctx, filter)
		if err != nil {
			logger.WarnContext(ctx, "Listing search cache unavailable", "error", err)
		} else if ok {
			return cached, nil
		}
		cacheKey = key
	}

	listings, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []domain.Listing{}
	}

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, listings); err != nil {
			logger.WarnContext(ctx, "Failed to cache listing search", "error", err)
		}
	}
	return listings, nil
}

func (s *listingService) ownedListing(ctx context.Context, listingID, callerID int32, action string) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != callerID {
		return nil, fmt.Errorf("only the listing owner may %s it: %w", action, domain.ErrForbidden)
	}
	return listing, nil
}

func (s *listingService) listingEvent(l *domain.Listing) events.ListingEvent {
	return events.ListingEvent{
		ListingID:  l.ID,
		OwnerID:    l.OwnerID,
		Title:      l.Title,
		OccurredAt: s.now().UTC(),
	}
}

func trimListingInput(in domain.ListingInput) domain.ListingInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.Amenities = strings.TrimSpace(in.Amenities)
	return in
}
