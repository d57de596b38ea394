package http

import (
	"net/http"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/service"
)

type ListingHandler struct {
	listingSvc service.ListingService
	reviewSvc  service.ReviewService
}

func NewListingHandler(listingSvc service.ListingService, reviewSvc service.ReviewService) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc, reviewSvc: reviewSvc}
}

// listingRequest is the wire form of domain.ListingInput with dates as strings.
type listingRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ZipCode       string  `json:"zip_code"`
	PricePerMonth float64 `json:"price_per_month"`
	Bedrooms      int32   `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	SquareFeet    *int32  `json:"square_feet"`
	AvailableFrom string  `json:"available_from"`
	AvailableTo   *string `json:"available_to"`
	Amenities     string  `json:"amenities"`
	IsActive      *bool   `json:"is_active"`
}

func (req listingRequest) toInput() (domain.ListingInput, error) {
	verr := &domain.ValidationError{}
	in := domain.ListingInput{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		PricePerMonth: req.PricePerMonth,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFeet:    req.SquareFeet,
		AvailableFrom: parseDateField(verr, "available_from", req.AvailableFrom),
		Amenities:     req.Amenities,
		IsActive:      req.IsActive,
	}
	if req.AvailableTo != nil {
		if to := parseDateField(verr, "available_to", *req.AvailableTo); !to.IsZero() {
			in.AvailableTo = &to
		}
	}
	return in, verr.Err()
}

type listingDetailResponse struct {
	Listing       *domain.Listing `json:"listing"`
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := listingFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	listings, err := h.listingSvc.SearchListings(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listingSvc.SearchListings(r.Context(), domain.ListingFilter{Limit: domain.LandingPageLimit})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := h.decodeInput(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	listing, err := h.listingSvc.CreateListing(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	listing, err := h.listingSvc.GetListing(r.Context(), listingID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	reviews, err := h.reviewSvc.ListForListing(r.Context(), listingID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listingDetailResponse{
		Listing:       listing,
		Reviews:       reviews.Reviews,
		AverageRating: reviews.AverageRating,
	})
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	in, err := h.decodeInput(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	listing, err := h.listingSvc.UpdateListing(r.Context(), listingID, userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.listingSvc.DeleteListing(r.Context(), listingID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListingHandler) decodeInput(r *http.Request) (domain.ListingInput, error) {
	var req listingRequest
	if err := decodeJSON(r, &req); err != nil {
		return domain.ListingInput{}, err
	}
	return req.toInput()
}
