package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-restaurant-api/internal/application/auth"
	"github.com/go-restaurant-api/internal/application/banner"
	"github.com/go-restaurant-api/internal/application/booking"
	"github.com/go-restaurant-api/internal/application/category"
	"github.com/go-restaurant-api/internal/application/image"
	"github.com/go-restaurant-api/internal/application/order"
	"github.com/go-restaurant-api/internal/application/product"
	"github.com/go-restaurant-api/internal/application/session"
	"github.com/go-restaurant-api/internal/config"
	"github.com/go-restaurant-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-restaurant-api/internal/infrastructure/jwt"
	"github.com/go-restaurant-api/internal/infrastructure/mail"
	s3infra "github.com/go-restaurant-api/internal/infrastructure/s3"
	"github.com/go-restaurant-api/internal/infrastructure/sns"
	"github.com/go-restaurant-api/internal/logger"
	"github.com/go-restaurant-api/internal/metrics"
	transporthttp "github.com/go-restaurant-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log, flush := logger.New(os.Stdout, cfg.IsDev(), cfg.SentryDSN)
	defer flush()
	if envErr != nil {
		log.Info("no .env file found, reading from environment")
	}

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "err", err)
		flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return fmt.Errorf("jwt provider: %w", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("dynamodb client: %w", err)
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	s3Client, err := s3infra.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("s3 client: %w", err)
	}
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SNS order confirmations are optional.
	var smsSender sns.SMSSender
	if cfg.SMSEnabled {
		if sender, err := sns.NewSender(ctx, cfg); err == nil {
			smsSender = sender
		} else {
			log.Warn("SNS sender not available", "err", err)
		}
	}

	m := metrics.New()
	accounts := dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Accounts)
	categories := dynamo.NewCategoryRepo(dynamoClient, cfg.DynamoTables.Categories)
	products := dynamo.NewProductRepo(dynamoClient, cfg.DynamoTables.Products)

	orderDeps := order.ServiceDeps{
		OrderRepo:   dynamo.NewOrderRepo(dynamoClient, cfg.DynamoTables.Orders),
		ProductRepo: products,
	}
	if smsSender != nil {
		orderDeps.SMSSender = smsSender
	}

	services := &transporthttp.Services{
		Auth: auth.NewService(auth.ServiceDeps{
			AccountRepo: accounts,
			Mailer:      mail.New(cfg),
			Recorder:    m,
			OTPTTL:      cfg.OTPTTL,
		}),
		Session: session.NewService(session.ServiceDeps{
			AccountRepo: accounts,
			JWTProvider: jwtProvider,
		}),
		Category: category.NewService(categories),
		Product: product.NewService(product.ServiceDeps{
			ProductRepo:  products,
			CategoryRepo: categories,
			Recorder:     m,
		}),
		Order:   order.NewService(orderDeps),
		Banner:  banner.NewService(dynamo.NewBannerRepo(dynamoClient, cfg.DynamoTables.Banners)),
		Booking: booking.NewService(dynamo.NewBookingRepo(dynamoClient, cfg.DynamoTables.PartyBookings)),
		Image:   image.NewService(s3Store),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, services, jwtProvider, m),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
