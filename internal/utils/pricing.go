package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// DaysPerBillingMonth is the fixed month length used for pro-rating.
	DaysPerBillingMonth = 30
	// MinimumBilledMonths is the shortest period a booking is charged for.
	MinimumBilledMonths = 0.5
)

// BookingCostBreakdown explains how a booking total was derived
type BookingCostBreakdown struct {
	Days          int     `json:"days"`
	BilledMonths  float64 `json:"billed_months"`
	PricePerMonth float64 `json:"price_per_month"`
	Total         float64 `json:"total"`
}

// ParseDate converts a yyyy-mm-dd string into a UTC calendar date
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}
	return t, nil
}

// CalendarDate drops the clock part of t, keeping its calendar day in UTC
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from start to end
func DaysBetween(start, end time.Time) int {
	return int(CalendarDate(end).Sub(CalendarDate(start)).Hours() / 24)
}

// BilledMonths converts a stay length into the number of months charged
func BilledMonths(days int) float64 {
	months := float64(days) / DaysPerBillingMonth
	if months < MinimumBilledMonths {
		return MinimumBilledMonths
	}
	return months
}

// CalculateBookingCost returns pricePerMonth times the billed months for the stay
func CalculateBookingCost(pricePerMonth float64, start, end time.Time) (float64, error) {
	b, err := CalculateBookingCostWithBreakdown(pricePerMonth, start, end)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// CalculateBookingCostWithBreakdown provides detailed breakdown of booking cost
func CalculateBookingCostWithBreakdown(pricePerMonth float64, start, end time.Time) (BookingCostBreakdown, error) {
	days := DaysBetween(start, end)
	if days <= 0 {
		return BookingCostBreakdown{}, fmt.Errorf("end date must be after start date")
	}

	months := BilledMonths(days)
	return BookingCostBreakdown{
		Days:          days,
		BilledMonths:  months,
		PricePerMonth: pricePerMonth,
		Total:         pricePerMonth * months,
	}, nil
}
