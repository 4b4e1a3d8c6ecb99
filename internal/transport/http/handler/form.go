package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-restaurant-api/internal/application/image"
)

// maxUploadBytes bounds a multipart request, image included.
const maxUploadBytes = 10 << 20

// imageStore is the part of the image service the catalog handlers use.
type imageStore interface {
	Save(ctx context.Context, input image.UploadInput) (string, error)
	Delete(ctx context.Context, name string) error
}

// form is a request body that may arrive either as multipart/form-data
// with an optional "image" file or as a JSON object.
type form struct {
	values map[string]string
	file   multipart.File
	header *multipart.FileHeader
}

var errBadForm = errors.New("invalid form body")

func parseForm(r *http.Request) (*form, error) {
	f := &form{values: map[string]string{}}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, errBadForm
		}
		for k, vs := range r.MultipartForm.Value {
			if len(vs) > 0 {
				f.values[k] = vs[0]
			}
		}
		file, header, err := r.FormFile("image")
		if err == nil {
			f.file, f.header = file, header
		} else if !errors.Is(err, http.ErrMissingFile) {
			return nil, errBadForm
		}
	case "application/json":
		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, errBadForm
		}
		for k, v := range raw {
			switch t := v.(type) {
			case nil:
			case string:
				f.values[k] = t
			case float64:
				f.values[k] = strconv.FormatFloat(t, 'f', -1, 64)
			default:
				f.values[k] = fmt.Sprint(t)
			}
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, errBadForm
		}
		for k, vs := range r.PostForm {
			if len(vs) > 0 {
				f.values[k] = vs[0]
			}
		}
	}
	return f, nil
}

func (f *form) get(key string) string { return strings.TrimSpace(f.values[key]) }

func (f *form) str(key string) *string {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

// float returns nil when key is absent and 0 when it does not parse.
func (f *form) float(key string) *float64 {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		n = 0
	}
	return &n
}

func (f *form) bool(key string) *bool {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return &b
}

// saveImage stores the uploaded image, if any, and returns its name.
func (f *form) saveImage(ctx context.Context, images imageStore) (*string, error) {
	if f.file == nil {
		return nil, nil
	}
	defer f.file.Close()
	name, err := images.Save(ctx, image.UploadInput{
		Reader:      f.file,
		Filename:    f.header.Filename,
		ContentType: f.header.Header.Get("Content-Type"),
	})
	if err != nil {
		return nil, err
	}
	return &name, nil
}

// discardImage removes an image stored for a request that then failed.
func discardImage(ctx context.Context, images imageStore, name *string) {
	if name == nil {
		return
	}
	if err := images.Delete(context.WithoutCancel(ctx), *name); err != nil {
		slog.Warn("orphaned image not removed", "image", *name, "err", err)
	}
}
