package postgres

import (
	"database/sql"
	"fmt"
	"time"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campus-housing-backend/internal/logger"
)

// Row models below describe the schema only. Queries go through database/sql.

type userRow struct {
	ID           int32     `gorm:"primaryKey"`
	Username     string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_users_username"`
	Email        string    `gorm:"type:varchar(120);not null"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

type listingRow struct {
	ID            int32      `gorm:"primaryKey"`
	OwnerID       int32      `gorm:"not null;index:idx_listings_owner"`
	Owner         *userRow   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Title         string     `gorm:"type:varchar(200);not null"`
	Description   string     `gorm:"type:text;not null"`
	Address       string     `gorm:"type:varchar(300);not null"`
	City          string     `gorm:"type:varchar(100);not null"`
	State         string     `gorm:"type:varchar(2);not null;default:''"`
	ZipCode       string     `gorm:"type:varchar(10);not null;default:''"`
	PricePerMonth float64    `gorm:"type:double precision;not null;check:chk_listings_price,price_per_month >= 0"`
	Bedrooms      int32      `gorm:"not null;check:chk_listings_bedrooms,bedrooms BETWEEN 0 AND 10"`
	Bathrooms     float64    `gorm:"type:double precision;not null;check:chk_listings_bathrooms,bathrooms BETWEEN 0 AND 10"`
	SquareFeet    *int32     `gorm:"check:chk_listings_square_feet,square_feet >= 0"`
	AvailableFrom time.Time  `gorm:"type:date;not null"`
	AvailableTo   *time.Time `gorm:"type:date;check:chk_listings_availability,available_to IS NULL OR available_to > available_from"`
	Amenities     string     `gorm:"type:text;not null;default:''"`
	IsActive      bool       `gorm:"not null;default:true"`
	CreatedAt     time.Time  `gorm:"not null;index:idx_listings_created"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

func (listingRow) TableName() string { return "listings" }

type bookingRow struct {
	ID         int32       `gorm:"primaryKey"`
	ListingID  int32       `gorm:"not null;index:idx_bookings_listing"`
	Listing    *listingRow `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	TenantID   int32       `gorm:"not null;index:idx_bookings_tenant"`
	Tenant     *userRow    `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	StartDate  time.Time   `gorm:"type:date;not null"`
	EndDate    time.Time   `gorm:"type:date;not null;check:chk_bookings_dates,end_date > start_date"`
	TotalPrice float64     `gorm:"type:double precision;not null"`
	Status     string      `gorm:"type:varchar(20);not null;default:'pending';check:chk_bookings_status,status IN ('pending','confirmed','cancelled')"`
	Message    string      `gorm:"type:varchar(500)"`
	CreatedAt  time.Time   `gorm:"not null"`
	UpdatedAt  time.Time   `gorm:"not null"`
}

func (bookingRow) TableName() string { return "bookings" }

type reviewRow struct {
	ID         int32       `gorm:"primaryKey"`
	ListingID  int32       `gorm:"not null;index:idx_reviews_listing"`
	Listing    *listingRow `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	ReviewerID int32       `gorm:"not null"`
	Reviewer   *userRow    `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE"`
	Rating     int32       `gorm:"not null;check:chk_reviews_rating,rating BETWEEN 1 AND 5"`
	Comment    string      `gorm:"type:text;not null"`
	ReviewType string      `gorm:"type:varchar(20);not null;default:'listing'"`
	CreatedAt  time.Time   `gorm:"not null"`
}

func (reviewRow) TableName() string { return "reviews" }

// schemaModels is ordered so that referenced tables come first
var schemaModels = []any{&userRow{}, &listingRow{}, &bookingRow{}, &reviewRow{}}

// extraIndexes are indexes gorm tags cannot express
var extraIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))`,
	`CREATE INDEX IF NOT EXISTS idx_listings_active_created ON listings (created_at DESC) WHERE is_active`,
}

// Migrate brings the schema up to date using the existing connection pool
func Migrate(db *sql.DB) error {
	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open schema migrator: %w", err)
	}

	logger.Info("Running schema migration", "tables", len(schemaModels))
	if err := gdb.AutoMigrate(schemaModels...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	for _, stmt := range extraIndexes {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	logger.Info("Schema migration completed")
	return nil
}
