package postgres

import (
	"context"
	"database/sql"
	"time"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (listing_id, reviewer_id, rating, comment, review_type, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	rv.CreatedAt = time.Now().UTC()
	err := conn(ctx, r.db).QueryRowContext(ctx, query, rv.ListingID, rv.ReviewerID, rv.Rating, rv.Comment, rv.ReviewType, rv.CreatedAt).Scan(&rv.ID)
	return mapError(err, "review")
}

func (r *reviewRepository) ListByListing(ctx context.Context, listingID int32) ([]domain.Review, error) {
	query := `SELECT r.id, r.listing_id, r.reviewer_id, r.rating, r.comment, r.review_type, r.created_at, u.username
	          FROM reviews r JOIN users u ON u.id = r.reviewer_id
	          WHERE r.listing_id = $1
	          ORDER BY r.created_at DESC, r.id DESC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, mapError(err, "review")
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ListingID, &rv.ReviewerID, &rv.Rating, &rv.Comment, &rv.ReviewType, &rv.CreatedAt, &rv.ReviewerUsername); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
