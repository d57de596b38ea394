package http

import (
	"net/http"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/service"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var in domain.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	review, err := h.reviewSvc.CreateReview(r.Context(), listingID, userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	reviews, err := h.reviewSvc.ListForListing(r.Context(), listingID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
