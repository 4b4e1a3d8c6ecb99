package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-restaurant-api/internal/application/auth"
	"github.com/go-restaurant-api/internal/application/banner"
	"github.com/go-restaurant-api/internal/application/booking"
	"github.com/go-restaurant-api/internal/application/category"
	"github.com/go-restaurant-api/internal/application/image"
	"github.com/go-restaurant-api/internal/application/order"
	"github.com/go-restaurant-api/internal/application/product"
	"github.com/go-restaurant-api/internal/application/session"
	"github.com/go-restaurant-api/internal/config"
	jwtinfra "github.com/go-restaurant-api/internal/infrastructure/jwt"
	"github.com/go-restaurant-api/internal/metrics"
	"github.com/go-restaurant-api/internal/transport/http/handler"
	appmiddleware "github.com/go-restaurant-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Services holds the application services the router exposes.
type Services struct {
	Auth     auth.Service
	Session  session.Service
	Category category.Service
	Product  product.Service
	Order    order.Service
	Banner   banner.Service
	Booking  booking.Service
	Image    image.Service
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, svc *Services, jwtProvider *jwtinfra.Provider, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.RequestLogging(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(jwtProvider)
	adminMw := appmiddleware.RequireAdmin(cfg.AdminEmails)
	if len(cfg.AdminEmails) == 0 && !cfg.IsDev() {
		slog.Warn("admin routes are unprotected: ADMIN_EMAILS is empty", "env", cfg.AppEnv)
	}
	admin := func(r chi.Router) chi.Router {
		if len(cfg.AdminEmails) == 0 {
			return r
		}
		return r.With(authMw, adminMw)
	}

	// 5 requests/second, burst of 10, on endpoints that send mail or check passwords.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(svc.Auth, svc.Session)
	categoryH := handler.NewCategoryHandler(svc.Category, svc.Image)
	productH := handler.NewProductHandler(svc.Product, svc.Image)
	orderH := handler.NewOrderHandler(svc.Order)
	bannerH := handler.NewBannerHandler(svc.Banner, svc.Image)
	bookingH := handler.NewBookingHandler(svc.Booking)
	imageH := handler.NewImageHandler(svc.Image)

	r.Get("/health", healthH.Check)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}
	r.Get("/image/{name}", imageH.Serve)

	// ── Accounts ─────────────────────────────────────────────────────────────
	r.With(sensitiveRL.Limit).Post("/send-otp", authH.SendOTP)
	r.Post("/verify-otp", authH.VerifyOTP)
	r.With(sensitiveRL.Limit).Post("/login", authH.Login)
	r.With(sensitiveRL.Limit).Post("/forgot-password/send-otp", authH.ForgotPasswordSendOTP)
	r.Post("/forgot-password/verify-otp", authH.ForgotPasswordVerifyOTP)
	r.With(authMw).Get("/profile", authH.Profile)

	// ── Customer orders ──────────────────────────────────────────────────────
	r.Post("/myorder", orderH.Place)
	r.Get("/myorder/{mobile}", orderH.ListByMobile)
	r.Delete("/order/{id}", orderH.Cancel)

	r.Route("/api", func(r chi.Router) {
		r.Get("/category/{restaurantId}", categoryH.ListByRestaurant)
		admin(r).Post("/category/add", categoryH.Add)
		admin(r).Put("/category/{id}", categoryH.Update)
		admin(r).Delete("/category/{id}", categoryH.Delete)

		r.Get("/product", productH.List)
		r.Get("/product/single/{id}", productH.Get)
		r.Get("/product/by-category/{categoryId}", productH.ListByCategory)
		r.Get("/categoryproduct/{id}", productH.ListCategoryFirst)
		r.Post("/product/rate/{id}", productH.Rate)
		admin(r).Post("/product/add", productH.Add)
		admin(r).Put("/product/{id}", productH.Update)
		admin(r).Delete("/product/{id}", productH.Delete)

		admin(r).Post("/orders", orderH.Create)
		admin(r).Get("/orders", orderH.List)

		r.Get("/banner", bannerH.List)
		r.Get("/banner/active", bannerH.ListActive)
		admin(r).Post("/banner/add", bannerH.Add)
		admin(r).Put("/banner/{id}", bannerH.Update)
		admin(r).Delete("/banner/{id}", bannerH.Delete)

		r.Post("/party/book-party", bookingH.Book)
		admin(r).Get("/party/all-bookings", bookingH.List)
	})

	return r
}
