package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, payment keys), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Payment   PaymentConfig
	Catalog   CatalogConfig
	Events    EventsConfig
	Outbox    OutboxConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Belize"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location,Idempotent-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Belize"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-21600"` // -6*60*60
}

// JWTConfig holds the shared secret of the external identity provider.
// Tokens are only verified here, never issued.
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string `envconfig:"JWT_ISSUER" default:""`
	Audience string `envconfig:"JWT_AUDIENCE" default:"authenticated"`
}

type PaymentMode string

const (
	PaymentModeTest PaymentMode = "test"
	PaymentModeLive PaymentMode = "live"
)

type PaymentConfig struct {
	Mode          PaymentMode `envconfig:"PAYMENT_MODE" default:"test"`
	SecretKey     string      `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
	WebhookSecret string      `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	Currency      string      `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	SuccessURL    string      `envconfig:"PAYMENT_SUCCESS_URL" default:"http://localhost:5173/payment-success?booking={BOOKING_ID}&session_id={CHECKOUT_SESSION_ID}"`
	CancelURL     string      `envconfig:"PAYMENT_CANCEL_URL" default:"http://localhost:5173/booking?canceled=1&booking={BOOKING_ID}"`
	APIBaseURL    string      `envconfig:"PAYMENT_API_BASE_URL" default:""`
	MaxRetries    int64       `envconfig:"PAYMENT_MAX_NETWORK_RETRIES" default:"2"`
}

var (
	ErrUnknownPaymentMode  = fmt.Errorf("unknown payment mode")
	ErrPaymentKeyMismatch  = fmt.Errorf("payment secret key does not match payment mode")
	ErrPaymentKeyMissing   = fmt.Errorf("payment secret key is required")
	ErrPaymentCurrencySize = fmt.Errorf("payment currency must be a 3-letter ISO code")
)

// Validate checks that the secret key belongs to the configured mode, so a
// live key can never be used by a test deployment and vice versa.
func (c PaymentConfig) Validate() error {
	if c.SecretKey == "" {
		return ErrPaymentKeyMissing
	}
	var prefixes []string
	switch c.Mode {
	case PaymentModeTest:
		prefixes = []string{"sk_test_", "rk_test_"}
	case PaymentModeLive:
		prefixes = []string{"sk_live_", "rk_live_"}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPaymentMode, c.Mode)
	}
	matched := false
	for _, p := range prefixes {
		if strings.HasPrefix(c.SecretKey, p) {
			matched = true
			break
		}
	}
	if !matched {
		return fmt.Errorf("%w: mode=%s", ErrPaymentKeyMismatch, c.Mode)
	}
	if len(c.Currency) != 3 {
		return ErrPaymentCurrencySize
	}
	return nil
}

type CatalogConfig struct {
	Currency string `envconfig:"CATALOG_CURRENCY" default:"USD"`
	TimeZone string `envconfig:"CATALOG_TIMEZONE" default:"America/Belize"`
}

// Location falls back to UTC when the zone database lacks the configured zone.
func (c CatalogConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type EventsDriver string

const (
	EventsDriverMemory EventsDriver = "memory"
	EventsDriverRedis  EventsDriver = "redis"
)

type EventsConfig struct {
	Driver    EventsDriver `envconfig:"EVENTS_DRIVER" default:"memory"`
	RedisAddr string       `envconfig:"EVENTS_REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int          `envconfig:"EVENTS_REDIS_DB" default:"0"`
}

type OutboxConfig struct {
	Enabled      bool          `envconfig:"OUTBOX_ENABLED" default:"true"`
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts  int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"5"`
	// KeySweepInterval is how often expired idempotency keys are deleted.
	KeySweepInterval time.Duration `envconfig:"OUTBOX_KEY_SWEEP_INTERVAL" default:"1h"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	Burst             int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Payment.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid payment config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-identity-provider",
			Audience: "authenticated",
		},
		Payment: PaymentConfig{
			Mode:          PaymentModeTest,
			SecretKey:     "sk_test_belizevibes",
			WebhookSecret: "whsec_test_belizevibes",
			Currency:      "usd",
			SuccessURL:    "http://localhost:5173/payment-success?booking={BOOKING_ID}&session_id={CHECKOUT_SESSION_ID}",
			CancelURL:     "http://localhost:5173/booking?canceled=1",
		},
		Catalog: CatalogConfig{
			Currency: "USD",
			TimeZone: "UTC",
		},
		Events: EventsConfig{
			Driver: EventsDriverMemory,
		},
		Outbox: OutboxConfig{
			Enabled:      false,
			PollInterval: 100 * time.Millisecond,
			BatchSize:    10,
			MaxAttempts:  3,

			KeySweepInterval: time.Minute,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	}
}
