package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	s3infra "github.com/go-restaurant-api/internal/infrastructure/s3"
)

type imageOpener interface {
	Open(ctx context.Context, name string) (*s3infra.Object, error)
}

// ImageHandler streams stored images back under /image/{name}.
type ImageHandler struct {
	images imageOpener
}

func NewImageHandler(images imageOpener) *ImageHandler { return &ImageHandler{images: images} }

func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	obj, err := h.images.Open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer obj.Body.Close()
	w.Header().Set("Content-Type", obj.ContentType)
	if obj.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = io.Copy(w, obj.Body)
}
