package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-restaurant-api/internal/application/banner"
	"github.com/go-restaurant-api/internal/domain"
)

type BannerHandler struct {
	svc    banner.Service
	images imageStore
}

func NewBannerHandler(svc banner.Service, images imageStore) *BannerHandler {
	return &BannerHandler{svc: svc, images: images}
}

func (h *BannerHandler) Add(w http.ResponseWriter, r *http.Request) {
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
	var discount float64
	if d := f.float("discount"); d != nil {
		discount = *d
	}
	if _, err := h.svc.Add(r.Context(), domain.BannerInput{
		Title:    f.get("title"),
		Subtitle: f.get("subtitle"),
		Discount: discount,
		Active:   f.bool("active"),
		Image:    img,
	}); err != nil {
		discardImage(r.Context(), h.images, img)
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Banner Added"})
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	bs, err := h.svc.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bs)
}

func (h *BannerHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	bs, err := h.svc.ListActive(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bs)
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	b, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), domain.UpdateBannerInput{
		Title:    f.str("title"),
		Subtitle: f.str("subtitle"),
		Discount: f.float("discount"),
		Active:   f.bool("active"),
		Image:    img,
	})
	if err != nil {
		discardImage(r.Context(), h.images, img)
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Banner deleted"})
}
