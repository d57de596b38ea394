package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type bookingRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Message   string `json:"message"`
}

func (req bookingRequest) toDomain() (domain.BookingRequest, error) {
	verr := &domain.ValidationError{}
	in := domain.BookingRequest{
		StartDate: parseDateField(verr, "start_date", req.StartDate),
		EndDate:   parseDateField(verr, "end_date", req.EndDate),
		Message:   req.Message,
	}
	return in, verr.Err()
}

func (h *BookingHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	listingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in, err := req.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookingSvc.RequestBooking(r.Context(), listingID, userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := domain.BookingStatus(strings.ToLower(mux.Vars(r)["status"]))

	booking, err := h.bookingSvc.UpdateStatus(r.Context(), bookingID, userID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookingSvc.GetBooking(r.Context(), bookingID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
