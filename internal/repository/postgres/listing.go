package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/repository"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, owner_id, title, description, address, city, state, zip_code, price_per_month,
	bedrooms, bathrooms, square_feet, available_from, available_to, amenities, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(s rowScanner) (domain.Listing, error) {
	var l domain.Listing
	var squareFeet sql.NullInt32
	var availableTo sql.NullTime
	err := s.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Address, &l.City, &l.State, &l.ZipCode, &l.PricePerMonth,
		&l.Bedrooms, &l.Bathrooms, &squareFeet, &l.AvailableFrom, &availableTo, &l.Amenities, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return l, err
	}
	l.SquareFeet = int32Ptr(squareFeet)
	l.AvailableTo = timePtr(availableTo)
	return l, nil
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (owner_id, title, description, address, city, state, zip_code, price_per_month,
	          bedrooms, bathrooms, square_feet, available_from, available_to, amenities, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		l.OwnerID, l.Title, l.Description, l.Address, l.City, l.State, l.ZipCode, l.PricePerMonth,
		l.Bedrooms, l.Bathrooms, nullInt32(l.SquareFeet), l.AvailableFrom, l.AvailableTo, l.Amenities, l.IsActive, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	return mapError(err, "listing")
}

func (r *listingRepository) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	l, err := scanListing(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "listing")
	}
	return &l, nil
}

// Update writes every editable column. owner_id and created_at are never touched.
func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	query := `UPDATE listings SET title=$1, description=$2, address=$3, city=$4, state=$5, zip_code=$6, price_per_month=$7,
	          bedrooms=$8, bathrooms=$9, square_feet=$10, available_from=$11, available_to=$12, amenities=$13, is_active=$14, updated_at=$15
	          WHERE id=$16`
	l.UpdatedAt = time.Now().UTC()
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		l.Title, l.Description, l.Address, l.City, l.State, l.ZipCode, l.PricePerMonth,
		l.Bedrooms, l.Bathrooms, nullInt32(l.SquareFeet), l.AvailableFrom, l.AvailableTo, l.Amenities, l.IsActive, l.UpdatedAt,
		l.ID,
	)
	if err != nil {
		return mapError(err, "listing")
	}
	return expectAffected(res, "listing")
}

func (r *listingRepository) Delete(ctx context.Context, id int32) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "listing")
	}
	return expectAffected(res, "listing")
}

func (r *listingRepository) Search(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE is_active = TRUE`
	args := []interface{}{}
	argIdx := 1

	if s := strings.TrimSpace(f.Search); s != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+escapeLike(s)+"%")
		argIdx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND price_per_month >= $%d", argIdx)
		args = append(args, *f.MinPrice)
		argIdx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND price_per_month <= $%d", argIdx)
		args = append(args, *f.MaxPrice)
		argIdx++
	}
	if f.MinBedrooms != nil {
		query += fmt.Sprintf(" AND bedrooms >= $%d", argIdx)
		args = append(args, *f.MinBedrooms)
		argIdx++
	}
	if c := strings.TrimSpace(f.City); c != "" {
		query += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", argIdx)
		args = append(args, c)
		argIdx++
	}
	if s := strings.TrimSpace(f.State); s != "" {
		query += fmt.Sprintf(" AND LOWER(state) = LOWER($%d)", argIdx)
		args = append(args, s)
		argIdx++
	}

	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, f.Limit)
	}

	logger.DatabaseCall("listings.search", query, "args", len(args))
	return r.list(ctx, query, args...)
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, ownerID)
}

// DeactivateExpired switches off active listings whose availability ended before today
func (r *listingRepository) DeactivateExpired(ctx context.Context, today time.Time) ([]int32, error) {
	query := `UPDATE listings SET is_active = FALSE, updated_at = NOW()
	          WHERE is_active = TRUE AND available_to IS NOT NULL AND available_to < $1
	          RETURNING id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, today)
	if err != nil {
		return nil, mapError(err, "listing")
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	logger.DatabaseResult("listings.deactivate_expired", int64(len(ids)), rows.Err())
	return ids, rows.Err()
}

func (r *listingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "listing")
	}
	defer rows.Close()

	listings := []domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// escapeLike keeps user input from acting as a LIKE wildcard
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
