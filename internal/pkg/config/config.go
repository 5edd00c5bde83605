package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, POS credentials), security settings
// - default: Values common across all environments (timezone, timeout, TTLs, limits), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	POS         POSConfig
	Cache       CacheConfig
	RateLimit   RateLimitConfig
	Notify      NotifyConfig
	Metrics     MetricsConfig
	Idempotency IdempotencyConfig
	Shop        ShopConfig
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
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tashkent"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After,Idempotent-Replayed,X-Request-ID,X-RateLimit-Limit,X-RateLimit-Remaining"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tashkent"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"18000"` // 5*60*60
}

// JWTConfig describes the client session token issued by the storefront login flow.
type JWTConfig struct {
	Secret     string `envconfig:"CLIENT_SESSION_SECRET" required:"true"`
	Duration   string `envconfig:"CLIENT_SESSION_DURATION" default:"720h"`
	CookieName string `envconfig:"CLIENT_SESSION_COOKIE" default:"client_session"`
}

type POSConfig struct {
	BaseURL     string        `envconfig:"POS_API_BASE_URL" default:"https://joinposter.com/api"`
	Token       string        `envconfig:"POS_API_TOKEN" required:"true"`
	OrderAPIURL string        `envconfig:"POS_ORDER_API_URL" required:"true"`
	Timeout     time.Duration `envconfig:"POS_HTTP_TIMEOUT" default:"15s"`
	// Business timezone for promotion periods and work hours.
	TimeZone string `envconfig:"POS_TIMEZONE" default:"Asia/Tashkent"`
}

type CacheConfig struct {
	PromotionTTL time.Duration `envconfig:"CACHE_PROMOTION_TTL" default:"60s"`
	CatalogTTL   time.Duration `envconfig:"CACHE_CATALOG_TTL" default:"60s"`
	SpotTTL      time.Duration `envconfig:"CACHE_SPOT_TTL" default:"5m"`
}

type RateLimitConfig struct {
	OrderMax    int           `envconfig:"ORDER_RATE_LIMIT_PER_MIN" default:"10"`
	OrderWindow time.Duration `envconfig:"ORDER_RATE_LIMIT_WINDOW" default:"1m"`
}

type NotifyConfig struct {
	TelegramBotToken string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string        `envconfig:"TELEGRAM_ORDER_CHAT_ID"`
	TelegramBaseURL  string        `envconfig:"TELEGRAM_API_BASE_URL" default:"https://api.telegram.org"`
	CurrencyLabel    string        `envconfig:"NOTIFY_CURRENCY_LABEL" default:"sum"`
	Timeout          time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

type IdempotencyConfig struct {
	TTL           time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	PurgeInterval time.Duration `envconfig:"IDEMPOTENCY_PURGE_INTERVAL" default:"1h"`
}

// ShopConfig holds fallbacks used when bot_settings has no row for a key.
type ShopConfig struct {
	DefaultWorkStart string `envconfig:"SHOP_DEFAULT_WORK_START" default:"10:00"`
	DefaultWorkEnd   string `envconfig:"SHOP_DEFAULT_WORK_END" default:"23:00"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *POSConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid POS_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
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
			TimeZone: "Asia/Tashkent",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tashkent",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 18000,
		},
		JWT: JWTConfig{
			Secret:     "test-client-session-secret",
			Duration:   "1h",
			CookieName: "client_session",
		},
		POS: POSConfig{
			BaseURL:     "http://127.0.0.1:0/api",
			Token:       "test-token",
			OrderAPIURL: "http://127.0.0.1:0/orders",
			Timeout:     2 * time.Second,
			TimeZone:    "Asia/Tashkent",
		},
		Cache: CacheConfig{
			PromotionTTL: time.Minute,
			CatalogTTL:   time.Minute,
			SpotTTL:      time.Minute,
		},
		RateLimit: RateLimitConfig{
			OrderMax:    1000,
			OrderWindow: time.Minute,
		},
		Notify: NotifyConfig{
			CurrencyLabel: "sum",
			Timeout:       time.Second,
		},
		Idempotency: IdempotencyConfig{
			TTL:           24 * time.Hour,
			PurgeInterval: time.Hour,
		},
		Shop: ShopConfig{
			DefaultWorkStart: "00:00",
			DefaultWorkEnd:   "00:00",
		},
	}
}
