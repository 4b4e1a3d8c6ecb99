package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-restaurant-api/internal/application/order"
	"github.com/go-restaurant-api/internal/domain"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler { return &OrderHandler{svc: svc} }

type createOrderResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

// Place is the customer checkout.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := h.svc.Place(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SuccessEnvelope{Success: true, Message: "Order placed", Data: o})
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createOrderResponse{Message: "Order created", Order: o})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *OrderHandler) ListByMobile(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListByMobile(r.Context(), chi.URLParam(r, "mobile"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Message: "Order cancelled"})
}
