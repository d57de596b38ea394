package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/events"
	"campus-housing-backend/internal/service"
)

func validListingInput() domain.ListingInput {
	return domain.ListingInput{
		Title:         "Sunny room near campus",
		Description:   "Quiet furnished room, ten minutes walk to the library.",
		Address:       "1 Washington Sq",
		PricePerMonth: 1200,
		Bedrooms:      1,
		Bathrooms:     1,
		AvailableFrom: date("2025-01-01"),
	}
}

func TestListingService_CreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		cache := new(MockListingCache)
		publisher := new(MockPublisher)
		svc := service.NewListingService(&fakeTx{}, listingRepo, cache, publisher)

		listingRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.OwnerID == ownerID && l.IsActive && l.City == "San Jose" && l.State == "CA"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Listing).ID = listingID
		}).Return(nil)
		cache.On("Invalidate", ctx).Return(nil)
		publisher.On("Publish", ctx, events.ListingCreated, mock.MatchedBy(func(e events.ListingEvent) bool {
			return e.ListingID == listingID && e.OwnerID == ownerID
		})).Return(nil)

		l, err := svc.CreateListing(ctx, ownerID, validListingInput())
		require.NoError(t, err)
		assert.Equal(t, listingID, l.ID)
		assert.True(t, l.IsActive)
		listingRepo.AssertExpectations(t)
		cache.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Inactive flag is ignored on create", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := service.NewListingService(&fakeTx{}, listingRepo, nil, nil)
		listingRepo.On("Create", ctx, mock.Anything).Return(nil)

		in := validListingInput()
		inactive := false
		in.IsActive = &inactive

		l, err := svc.CreateListing(ctx, ownerID, in)
		require.NoError(t, err)
		assert.True(t, l.IsActive)
	})

	t.Run("Invalid fields", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := service.NewListingService(&fakeTx{}, listingRepo, nil, nil)

		in := validListingInput()
		in.PricePerMonth = -1
		in.Bedrooms = 11
		before := date("2024-12-01")
		in.AvailableTo = &before

		_, err := svc.CreateListing(ctx, ownerID, in)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "price_per_month")
		assert.Contains(t, verr.Fields, "bedrooms")
		assert.Contains(t, verr.Fields, "available_to")
		listingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Cache failure is not fatal", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		cache := new(MockListingCache)
		svc := service.NewListingService(&fakeTx{}, listingRepo, cache, nil)
		listingRepo.On("Create", ctx, mock.Anything).Return(nil)
		cache.On("Invalidate", ctx).Return(assert.AnError)

		_, err := svc.CreateListing(ctx, ownerID, validListingInput())
		assert.NoError(t, err)
	})
}

func TestListingService_UpdateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner updates", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		tx := &fakeTx{}
		svc := service.NewListingService(tx, listingRepo, nil, nil)

		existing := testListing()
		listingRepo.On("GetByID", ctx, listingID).Return(existing, nil)
		listingRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.OwnerID == ownerID && l.PricePerMonth == 950 && !l.IsActive
		})).Return(nil)

		in := validListingInput()
		in.City = "Santa Clara"
		in.PricePerMonth = 950
		inactive := false
		in.IsActive = &inactive

		l, err := svc.UpdateListing(ctx, listingID, ownerID, in)
		require.NoError(t, err)
		assert.Equal(t, "Santa Clara", l.City)
		assert.Equal(t, 1, tx.calls)
		listingRepo.AssertExpectations(t)
	})

	t.Run("Blank location keeps the stored one", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := service.NewListingService(&fakeTx{}, listingRepo, nil, nil)

		existing := testListing()
		existing.City = "Santa Clara"
		existing.State = "CA"
		listingRepo.On("GetByID", ctx, listingID).Return(existing, nil)
		listingRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.City == "Santa Clara" && l.State == "CA"
		})).Return(nil)

		in := validListingInput()
		in.State = "  "
		l, err := svc.UpdateListing(ctx, listingID, ownerID, in)
		require.NoError(t, err)
		assert.Equal(t, "CA", l.State)
		listingRepo.AssertExpectations(t)
	})

	t.Run("Blank location with nothing stored gets the defaults", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := service.NewListingService(&fakeTx{}, listingRepo, nil, nil)
		listingRepo.On("GetByID", ctx, listingID).Return(testListing(), nil)
		listingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Listing")).Return(nil)

		l, err := svc.UpdateListing(ctx, listingID, ownerID, validListingInput())
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultListingCity, l.City)
		assert.Equal(t, domain.DefaultListingState, l.State)
	})

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := service.NewListingService(&fakeTx{}, listingRepo, nil, nil)
		listingRepo.On("GetByID", ctx, listingID).Return(testListing(), nil)

		in := validListingInput()
		in.City = "Santa Clara"
		_, err := svc.UpdateListing(ctx, listingID, strangerID, in)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		listingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Not found", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := service.NewListingService(&fakeTx{}, listingRepo, nil, nil)
		listingRepo.On("GetByID", ctx, int32(999)).Return(nil, domain.ErrNotFound)

		_, err := svc.UpdateListing(ctx, 999, ownerID, validListingInput())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListingService_DeleteListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner deletes", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		cache := new(MockListingCache)
		publisher := new(MockPublisher)
		svc := service.NewListingService(&fakeTx{}, listingRepo, cache, publisher)

		listingRepo.On("GetByID", ctx, listingID).Return(testListing(), nil)
		listingRepo.On("Delete", ctx, listingID).Return(nil)
		cache.On("Invalidate", ctx).Return(nil)
		publisher.On("Publish", ctx, events.ListingDeleted, mock.Anything).Return(nil)

		require.NoError(t, svc.DeleteListing(ctx, listingID, ownerID))
		listingRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		cache := new(MockListingCache)
		svc := service.NewListingService(&fakeTx{}, listingRepo, cache, nil)
		listingRepo.On("GetByID", ctx, listingID).Return(testListing(), nil)

		err := svc.DeleteListing(ctx, listingID, tenantID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		listingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

func TestListingService_SearchListings(t *testing.T) {
	ctx := context.Background()
	filter := domain.ListingFilter{Search: "room", City: "San Jose"}
	found := []domain.Listing{*testListing()}

	t.Run("Cache miss fills the key it looked up", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		cache := new(MockListingCache)
		svc := service.NewListingService(&fakeTx{}, listingRepo, cache, nil)

		cache.On("Get", ctx, filter).Return(nil, "listings:search:3:room", false, nil)
		listingRepo.On("Search", ctx, filter).Return(found, nil)
		cache.On("Set", ctx, "listings:search:3:room", found).Return(nil)

		res, err := svc.SearchListings(ctx, domain.ListingFilter{Search: " room ", City: "San Jose "})
		require.NoError(t, err)
		assert.Len(t, res, 1)
		cache.AssertExpectations(t)
	})

	t.Run("Failed fill is not fatal", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		cache := new(MockListingCache)
		svc := service.NewListingService(&fakeTx{}, listingRepo, cache, nil)

		cache.On("Get", ctx, filter).Return(nil, "listings:search:3:room", false, nil)
		listingRepo.On("Search", ctx, filter).Return(found, nil)
		cache.On("Set", ctx, "listings:search:3:room", found).Return(assert.AnError)

		res, err := svc.SearchListings(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("Cache hit skips the store", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		cache := new(MockListingCache)
		svc := service.NewListingService(&fakeTx{}, listingRepo, cache, nil)

		cache.On("Get", ctx, filter).Return(found, "listings:search:3:room", true, nil)

		res, err := svc.SearchListings(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, found, res)
		listingRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Cache down falls back to the store", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		cache := new(MockListingCache)
		svc := service.NewListingService(&fakeTx{}, listingRepo, cache, nil)

		cache.On("Get", ctx, filter).Return(nil, "", false, assert.AnError)
		listingRepo.On("Search", ctx, filter).Return(found, nil)

		res, err := svc.SearchListings(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, res, 1)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No cache, empty result", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := service.NewListingService(&fakeTx{}, listingRepo, nil, nil)
		listingRepo.On("Search", ctx, domain.ListingFilter{}).Return(nil, nil)

		res, err := svc.SearchListings(ctx, domain.ListingFilter{})
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})
}
