package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-restaurant-api/internal/application/order"
	"github.com/go-restaurant-api/internal/config"
	"github.com/go-restaurant-api/internal/domain"
	jwtinfra "github.com/go-restaurant-api/internal/infrastructure/jwt"
	"github.com/go-restaurant-api/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrders implements only the calls the router tests make.
type stubOrders struct {
	order.Service
}

func (stubOrders) ListAll(context.Context) ([]domain.OrderView, error) {
	return []domain.OrderView{}, nil
}

func newTestRouter(t *testing.T, adminEmails []string) (http.Handler, *jwtinfra.Provider) {
	t.Helper()
	p, err := jwtinfra.NewProvider("s3cret", time.Hour)
	require.NoError(t, err)
	cfg := &config.Config{AllowedOrigins: []string{"*"}, AdminEmails: adminEmails}
	return NewRouter(cfg, &Services{Order: stubOrders{}}, p, metrics.New()), p
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_AdminRoutesOpenWithoutAdminList(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_AdminRoutesGuarded(t *testing.T) {
	r, p := newTestRouter(t, []string{"boss@b.com"})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	guest, err := p.Sign("u2", "guest@b.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+guest)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	boss, err := p.Sign("u1", "boss@b.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+boss)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_ProfileRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_MetricsExposeRoutePattern(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",route="/api/orders",status="200"} 1`), body)
}

func TestRouter_NilMetrics(t *testing.T) {
	p, err := jwtinfra.NewProvider("s3cret", time.Hour)
	require.NoError(t, err)
	r := NewRouter(&config.Config{AllowedOrigins: []string{"*"}}, &Services{Order: stubOrders{}}, p, nil)

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_WarnsOnOpenAdminRoutes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	p, err := jwtinfra.NewProvider("s3cret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		cfg    *config.Config
		warned bool
	}{
		{"production without admins", &config.Config{AppEnv: "production"}, true},
		{"production with admins", &config.Config{AppEnv: "production", AdminEmails: []string{"boss@b.com"}}, false},
		{"development without admins", &config.Config{AppEnv: "development"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			NewRouter(tt.cfg, &Services{}, p, nil)
			assert.Equal(t, tt.warned, strings.Contains(buf.String(), "admin routes are unprotected"))
		})
	}
}
