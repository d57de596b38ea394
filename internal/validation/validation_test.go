package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-housing-backend/internal/domain"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func validListing() domain.ListingInput {
	return domain.ListingInput{
		Title:         "Room near campus",
		Description:   "Sunny private room, five minutes from the library.",
		Address:       "1 Washington Sq",
		City:          "San Jose",
		State:         "CA",
		ZipCode:       "95192",
		PricePerMonth: 1200,
		Bedrooms:      1,
		Bathrooms:     1.5,
		AvailableFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidator_Registration(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		err := v.Registration(domain.Registration{Username: "alice", Email: "alice@example.edu", FullName: "Alice A", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("Every field rejected", func(t *testing.T) {
		err := v.Registration(domain.Registration{Username: "al", Email: "not-an-email", FullName: "A", Password: "123"})
		fields := fieldsOf(t, err)
		assert.Equal(t, "must be at least 3 characters", fields["username"])
		assert.Equal(t, "must be a valid email address", fields["email"])
		assert.Equal(t, "must be at least 2 characters", fields["full_name"])
		assert.Equal(t, "must be at least 6 characters", fields["password"])
	})

	t.Run("Username too long", func(t *testing.T) {
		err := v.Registration(domain.Registration{Username: strings.Repeat("u", 81), Email: "a@b.co", FullName: "Al", Password: "secret1"})
		assert.Contains(t, fieldsOf(t, err), "username")
	})
}

func TestValidator_Listing(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.Listing(validListing()))
	})

	t.Run("Free price is allowed", func(t *testing.T) {
		in := validListing()
		in.PricePerMonth = 0
		assert.NoError(t, v.Listing(in))
	})

	t.Run("Ranges", func(t *testing.T) {
		in := validListing()
		in.Title = "Flat"
		in.Description = "too short"
		in.PricePerMonth = -1
		in.Bedrooms = 11
		in.Bathrooms = 10.5
		in.State = "CAL"
		sq := int32(-5)
		in.SquareFeet = &sq

		fields := fieldsOf(t, v.Listing(in))
		for _, f := range []string{"title", "description", "price_per_month", "bedrooms", "bathrooms", "state", "square_feet"} {
			assert.Contains(t, fields, f)
		}
	})

	t.Run("Missing available_from", func(t *testing.T) {
		in := validListing()
		in.AvailableFrom = time.Time{}
		assert.Equal(t, "is required", fieldsOf(t, v.Listing(in))["available_from"])
	})

	t.Run("available_to must follow available_from", func(t *testing.T) {
		in := validListing()
		same := in.AvailableFrom
		in.AvailableTo = &same
		assert.Equal(t, "must be after available_from", fieldsOf(t, v.Listing(in))["available_to"])

		later := in.AvailableFrom.AddDate(0, 6, 0)
		in.AvailableTo = &later
		assert.NoError(t, v.Listing(in))
	})
}

func TestValidator_BookingRequest(t *testing.T) {
	v := New()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.BookingRequest(domain.BookingRequest{StartDate: start, EndDate: start.AddDate(0, 1, 0)}))
	})

	t.Run("End equal to start", func(t *testing.T) {
		err := v.BookingRequest(domain.BookingRequest{StartDate: start, EndDate: start})
		assert.Equal(t, "must be after start_date", fieldsOf(t, err)["end_date"])
	})

	t.Run("End before start", func(t *testing.T) {
		err := v.BookingRequest(domain.BookingRequest{StartDate: start, EndDate: start.AddDate(0, 0, -3)})
		assert.Contains(t, fieldsOf(t, err), "end_date")
	})

	t.Run("Message too long", func(t *testing.T) {
		err := v.BookingRequest(domain.BookingRequest{StartDate: start, EndDate: start.AddDate(0, 0, 1), Message: strings.Repeat("m", 501)})
		assert.Equal(t, "must be at most 500 characters", fieldsOf(t, err)["message"])
	})
}

func TestValidator_Review(t *testing.T) {
	v := New()

	assert.NoError(t, v.Review(domain.ReviewInput{Rating: 5, Comment: "Great landlord, quiet street."}))

	fields := fieldsOf(t, v.Review(domain.ReviewInput{Rating: 0, Comment: "meh"}))
	assert.Equal(t, "must be at least 1", fields["rating"])
	assert.Equal(t, "must be at least 10 characters", fields["comment"])

	fields = fieldsOf(t, v.Review(domain.ReviewInput{Rating: 6, Comment: strings.Repeat("c", 1001)}))
	assert.Equal(t, "must be at most 5", fields["rating"])
	assert.Equal(t, "must be at most 1000 characters", fields["comment"])
}

func TestValidator_BookingStatus(t *testing.T) {
	v := New()
	assert.NoError(t, v.BookingStatus(domain.BookingStatusConfirmed))
	assert.NoError(t, v.BookingStatus(domain.BookingStatusCancelled))
	assert.True(t, domain.IsValidation(v.BookingStatus(domain.BookingStatusPending)))
	assert.True(t, domain.IsValidation(v.BookingStatus("archived")))
}
