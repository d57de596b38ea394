package domain

type Dashboard struct {
	Listings         []Listing `json:"listings"`
	ReceivedBookings []Booking `json:"received_bookings"`
	Bookings         []Booking `json:"bookings"`
}
