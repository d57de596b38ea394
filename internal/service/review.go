package service

import (
	"context"
	"strings"
	"time"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/events"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/repository"
	"campus-housing-backend/internal/validation"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	listingRepo repository.ListingRepository
	events      EventPublisher
	validate    *validation.Validator
	now         func() time.Time
}

func NewReviewService(reviewRepo repository.ReviewRepository, listingRepo repository.ListingRepository, events EventPublisher) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
		events:      events,
		validate:    validation.New(),
		now:         time.Now,
	}
}

// CreateReview records a listing review. Any signed-in user may review any
// listing, any number of times.
func (s *reviewService) CreateReview(ctx context.Context, listingID, reviewerID int32, in domain.ReviewInput) (*domain.Review, error) {
	logger.EnterMethod("reviewService.CreateReview", "listingID", listingID, "reviewerID", reviewerID)

	in.Comment = strings.TrimSpace(in.Comment)
	if err := s.validate.Review(in); err != nil {
		logger.ExitMethodWithWarning("reviewService.CreateReview", err, "listingID", listingID)
		return nil, err
	}
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		logger.ExitMethodWithWarning("reviewService.CreateReview", err, "listingID", listingID)
		return nil, err
	}

	review := &domain.Review{
		ListingID:  listingID,
		ReviewerID: reviewerID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		ReviewType: domain.ReviewTypeListing,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		logger.ExitMethodWithError("reviewService.CreateReview", err, "listingID", listingID)
		return nil, err
	}

	publish(ctx, s.events, events.ReviewCreated, events.ReviewEvent{
		ReviewID:   review.ID,
		ListingID:  listingID,
		ReviewerID: reviewerID,
		Rating:     review.Rating,
		OccurredAt: s.now().UTC(),
	})

	logger.ExitMethod("reviewService.CreateReview", "reviewID", review.ID)
	return review, nil
}

func (s *reviewService) ListForListing(ctx context.Context, listingID int32) (*domain.ListingReviews, error) {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &domain.ListingReviews{
		Reviews:       reviews,
		AverageRating: domain.AverageRating(reviews),
	}, nil
}
