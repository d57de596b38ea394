// Package validation checks user input and reports problems per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"campus-housing-backend/internal/domain"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Registration(in domain.Registration) error {
	return v.check(in).Err()
}

func (v *Validator) Listing(in domain.ListingInput) error {
	verr := v.check(in)
	if in.AvailableTo != nil && !in.AvailableFrom.IsZero() && !in.AvailableTo.After(in.AvailableFrom) {
		verr.Add("available_to", "must be after available_from")
	}
	return verr.Err()
}

func (v *Validator) BookingRequest(in domain.BookingRequest) error {
	verr := v.check(in)
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && !in.EndDate.After(in.StartDate) {
		verr.Add("end_date", "must be after start_date")
	}
	return verr.Err()
}

func (v *Validator) Review(in domain.ReviewInput) error {
	return v.check(in).Err()
}

// BookingStatus rejects anything a caller may not request explicitly.
func (v *Validator) BookingStatus(status domain.BookingStatus) error {
	switch status {
	case domain.BookingStatusConfirmed, domain.BookingStatusCancelled:
		return nil
	}
	return domain.NewValidationError("status", fmt.Sprintf("must be %q or %q", domain.BookingStatusConfirmed, domain.BookingStatusCancelled))
}

func (v *Validator) check(in any) *domain.ValidationError {
	verr := &domain.ValidationError{}
	err := v.validate.Struct(in)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("input", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
	return verr
}

func message(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max", "lte":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), unit)
	default:
		return "is invalid"
	}
}
