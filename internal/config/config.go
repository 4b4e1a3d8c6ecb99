package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once at startup and never mutated afterwards.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTSecret string
	JWTExpiry time.Duration
	OTPTTL    time.Duration

	MailProvider string // "smtp" | "resend"
	MailFrom     string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	ResendAPIKey string

	// Consecutive delivery failures before the mail breaker opens, and how
	// long it stays open.
	MailBreakerMaxFailures uint32
	MailBreakerTimeout     time.Duration

	SNSRegion  string
	SMSEnabled bool

	AllowedOrigins []string // CORS allowed origins
	AdminEmails    []string // empty = admin routes are open
	SentryDSN      string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts      string
	Categories    string
	Products      string
	Orders        string
	Banners       string
	PartyBookings string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts:      getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			Categories:    getEnv("DYNAMO_TABLE_CATEGORIES", "categories"),
			Products:      getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Orders:        getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			Banners:       getEnv("DYNAMO_TABLE_BANNERS", "banners"),
			PartyBookings: getEnv("DYNAMO_TABLE_PARTY_BOOKINGS", "party_bookings"),
		},
		S3BucketName:           getEnv("S3_BUCKET_NAME", "restaurant-images"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTExpiry:              time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		OTPTTL:                 time.Duration(getEnvInt("OTP_TTL_MINUTES", 5)) * time.Minute,
		MailProvider:           strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
		MailFrom:               getEnv("MAIL_FROM", "noreply@example.com"),
		SMTPHost:               getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:               getEnv("SMTP_PORT", "587"),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		ResendAPIKey:           getEnv("RESEND_API_KEY", ""),
		MailBreakerMaxFailures: uint32(getEnvInt("MAIL_BREAKER_MAX_FAILURES", 5)),
		MailBreakerTimeout:     time.Duration(getEnvInt("MAIL_BREAKER_TIMEOUT_SECONDS", 30)) * time.Second,
		SNSRegion:              getEnv("SNS_REGION", "us-east-1"),
		SMSEnabled:             getEnv("SMS_ENABLED", "false") == "true",
		AllowedOrigins:         strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AdminEmails:            splitNonEmpty(getEnv("ADMIN_EMAILS", "")),
		SentryDSN:              getEnv("SENTRY_DSN", ""),
	}
}

// IsDev reports whether the service runs in a development environment.
func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
