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

func TestReviewService_CreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		listingRepo := new(MockListingRepo)
		publisher := new(MockPublisher)
		svc := service.NewReviewService(reviewRepo, listingRepo, publisher)

		listingRepo.On("GetByID", ctx, listingID).Return(testListing(), nil)
		reviewRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Review) bool {
			return r.ReviewType == domain.ReviewTypeListing && r.Rating == 5 && r.ReviewerID == tenantID
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Review).ID = 7
		}).Return(nil)
		publisher.On("Publish", ctx, events.ReviewCreated, mock.AnythingOfType("events.ReviewEvent")).Return(nil)

		r, err := svc.CreateReview(ctx, listingID, tenantID, domain.ReviewInput{Rating: 5, Comment: "Great landlord, quiet street."})
		require.NoError(t, err)
		assert.Equal(t, int32(7), r.ID)
		publisher.AssertExpectations(t)
	})

	t.Run("Rating out of range", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		listingRepo := new(MockListingRepo)
		svc := service.NewReviewService(reviewRepo, listingRepo, nil)

		for _, rating := range []int32{0, 6} {
			_, err := svc.CreateReview(ctx, listingID, tenantID, domain.ReviewInput{Rating: rating, Comment: "Long enough comment"})
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "rating")
		}
		listingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Comment too short", func(t *testing.T) {
		svc := service.NewReviewService(new(MockReviewRepo), new(MockListingRepo), nil)

		_, err := svc.CreateReview(ctx, listingID, tenantID, domain.ReviewInput{Rating: 4, Comment: "   ok    "})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "comment")
	})

	t.Run("Listing not found", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		listingRepo := new(MockListingRepo)
		svc := service.NewReviewService(reviewRepo, listingRepo, nil)
		listingRepo.On("GetByID", ctx, int32(999)).Return(nil, domain.ErrNotFound)

		_, err := svc.CreateReview(ctx, 999, tenantID, domain.ReviewInput{Rating: 3, Comment: "Decent for the price."})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReviewService_ListForListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Average of ratings", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		listingRepo := new(MockListingRepo)
		svc := service.NewReviewService(reviewRepo, listingRepo, nil)

		listingRepo.On("GetByID", ctx, listingID).Return(testListing(), nil)
		reviewRepo.On("ListByListing", ctx, listingID).Return([]domain.Review{{ID: 2, Rating: 4}, {ID: 1, Rating: 5}}, nil)

		res, err := svc.ListForListing(ctx, listingID)
		require.NoError(t, err)
		assert.Len(t, res.Reviews, 2)
		assert.InDelta(t, 4.5, res.AverageRating, 0.0001)
	})

	t.Run("No reviews", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		listingRepo := new(MockListingRepo)
		svc := service.NewReviewService(reviewRepo, listingRepo, nil)

		listingRepo.On("GetByID", ctx, listingID).Return(testListing(), nil)
		reviewRepo.On("ListByListing", ctx, listingID).Return(nil, nil)

		res, err := svc.ListForListing(ctx, listingID)
		require.NoError(t, err)
		assert.NotNil(t, res.Reviews)
		assert.Zero(t, res.AverageRating)
	})

	t.Run("Listing not found", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := service.NewReviewService(new(MockReviewRepo), listingRepo, nil)
		listingRepo.On("GetByID", ctx, int32(999)).Return(nil, domain.ErrNotFound)

		_, err := svc.ListForListing(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
