package postgres

import (
	"context"
	"database/sql"
	"time"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (listing_id, tenant_id, start_date, end_date, total_price, status, message, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		b.ListingID, b.TenantID, b.StartDate, b.EndDate, b.TotalPrice, string(b.Status), b.Message, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	return mapError(err, "booking")
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT id, listing_id, tenant_id, start_date, end_date, total_price, status, COALESCE(message, ''), created_at, updated_at
	          FROM bookings WHERE id = $1`
	b := &domain.Booking{}
	var status string
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ListingID, &b.TenantID, &b.StartDate, &b.EndDate, &b.TotalPrice, &status, &b.Message, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "booking")
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus, updatedAt time.Time) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`, string(status), updatedAt, id)
	if err != nil {
		return mapError(err, "booking")
	}
	return expectAffected(res, "booking")
}

// ListByTenant returns the bookings a user made, newest first
func (r *bookingRepository) ListByTenant(ctx context.Context, tenantID int32) ([]domain.Booking, error) {
	query := `SELECT b.id, b.listing_id, b.tenant_id, b.start_date, b.end_date, b.total_price, b.status, COALESCE(b.message, ''),
	                 b.created_at, b.updated_at, l.title
	          FROM bookings b JOIN listings l ON l.id = b.listing_id
	          WHERE b.tenant_id = $1
	          ORDER BY b.created_at DESC, b.id DESC`
	return r.list(ctx, query, tenantID)
}

// ListReceivedByOwner returns bookings placed on any listing owned by ownerID, newest first
func (r *bookingRepository) ListReceivedByOwner(ctx context.Context, ownerID int32) ([]domain.Booking, error) {
	query := `SELECT b.id, b.listing_id, b.tenant_id, b.start_date, b.end_date, b.total_price, b.status, COALESCE(b.message, ''),
	                 b.created_at, b.updated_at, l.title
	          FROM bookings b JOIN listings l ON l.id = b.listing_id
	          WHERE l.owner_id = $1
	          ORDER BY b.created_at DESC, b.id DESC`
	return r.list(ctx, query, ownerID)
}

func (r *bookingRepository) list(ctx context.Context, query string, arg any) ([]domain.Booking, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, mapError(err, "booking")
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		var status string
		if err := rows.Scan(&b.ID, &b.ListingID, &b.TenantID, &b.StartDate, &b.EndDate, &b.TotalPrice, &status, &b.Message,
			&b.CreatedAt, &b.UpdatedAt, &b.ListingTitle); err != nil {
			return nil, err
		}
		b.Status = domain.BookingStatus(status)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
