package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/utils"
)

const dateMessage = "must be a date in YYYY-MM-DD format"

// pathID reads a positive int32 route variable. Anything else is reported as
// not found, since no such resource can exist.
func pathID(r *http.Request, name string) (int32, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || v <= 0 {
		return 0, domain.ErrNotFound
	}
	return int32(v), nil
}

// parseDateField converts value into a date, recording a problem on verr.
// An empty value yields the zero time so that required checks report it.
func parseDateField(verr *domain.ValidationError, field, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		verr.Add(field, dateMessage)
	}
	return t
}

func listingFilterFromQuery(r *http.Request) (domain.ListingFilter, error) {
	q := r.URL.Query()
	verr := &domain.ValidationError{}
	f := domain.ListingFilter{
		Search: q.Get("search"),
		City:   q.Get("city"),
		State:  q.Get("state"),
	}

	if v := strings.TrimSpace(q.Get("min_price")); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			verr.Add("min_price", "must be a number")
		} else {
			f.MinPrice = &p
		}
	}
	if v := strings.TrimSpace(q.Get("max_price")); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			verr.Add("max_price", "must be a number")
		} else {
			f.MaxPrice = &p
		}
	}
	if v := strings.TrimSpace(q.Get("bedrooms")); v != "" {
		b, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			verr.Add("bedrooms", "must be a whole number")
		} else {
			beds := int32(b)
			f.MinBedrooms = &beds
		}
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 0 {
			verr.Add("limit", "must be a non-negative whole number")
		} else {
			f.Limit = l
		}
	}
	return f, verr.Err()
}
