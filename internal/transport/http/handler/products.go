package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-restaurant-api/internal/application/product"
	"github.com/go-restaurant-api/internal/domain"
)

type ProductHandler struct {
	svc    product.Service
	images imageStore
}

func NewProductHandler(svc product.Service, images imageStore) *ProductHandler {
	return &ProductHandler{svc: svc, images: images}
}

type rateRequest struct {
	UserID string `json:"userId"`
	Value  int    `json:"value"`
}

type rateResponse struct {
	Success   bool             `json:"success"`
	AvgRating domain.AvgRating `json:"avgRating"`
}

func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "Invalid form body")
		return
	}
	img, err := f.saveImage(r.Context(), h.images)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var price float64
	if p := f.float("price"); p != nil {
		price = *p
	}
	p, err := h.svc.Create(r.Context(), domain.CreateProductInput{
		Name:        f.get("name"),
		Price:       price,
		Description: f.get("description"),
		CategoryID:  f.get("categoryId"),
		Image:       img,
	})
	if err != nil {
		discardImage(r.Context(), h.images, img)
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	avg, err := h.svc.Rate(r.Context(), chi.URLParam(r, "id"), req.UserID, req.Value)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rateResponse{Success: true, AvgRating: avg})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// ListCategoryFirst lists every product with the given category's products first.
func (h *ProductHandler) ListCategoryFirst(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListCategoryFirst(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListByCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "Invalid form body")
		return
	}
	img, err := f.saveImage(r.Context(), h.images)
	if err != nil {
		respondError(w, r, err)
		return
	}
	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), domain.UpdateProductInput{
		Name:        f.str("name"),
		Price:       f.float("price"),
		Description: f.str("description"),
		CategoryID:  f.str("categoryId"),
		Image:       img,
	})
	if err != nil {
		discardImage(r.Context(), h.images, img)
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Product deleted"})
}
