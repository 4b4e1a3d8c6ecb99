package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-restaurant-api/internal/application/category"
	"github.com/go-restaurant-api/internal/domain"
)

type CategoryHandler struct {
	svc    category.Service
	images imageStore
}

func NewCategoryHandler(svc category.Service, images imageStore) *CategoryHandler {
	return &CategoryHandler{svc: svc, images: images}
}

func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.svc.Create(r.Context(), domain.CategoryInput{
		Name:         f.get("name"),
		RestaurantID: f.get("restaurantId"),
		Image:        img,
	})
	if err != nil {
		discardImage(r.Context(), h.images, img)
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) ListByRestaurant(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListByRestaurant(r.Context(), chi.URLParam(r, "restaurantId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), domain.UpdateCategoryInput{
		Name:  f.str("name"),
		Image: img,
	})
	if err != nil {
		discardImage(r.Context(), h.images, img)
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Category deleted"})
}
