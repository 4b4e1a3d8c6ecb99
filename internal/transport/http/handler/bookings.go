package handler

import (
	"net/http"

	"github.com/go-restaurant-api/internal/application/booking"
	"github.com/go-restaurant-api/internal/domain"
)

type BookingHandler struct {
	svc booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler { return &BookingHandler{svc: svc} }

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req domain.PartyBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.svc.Book(r.Context(), req); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Message: "🎉 Party booked successfully!"})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bs, err := h.svc.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bs)
}
