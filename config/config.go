package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	Studio    StudioConfig
	Firebase  FirebaseConfig
	Store     StoreConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Twilio    TwilioConfig
	Backup    BackupConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// StudioConfig is the business contact information shown on the storefront
// and used to address booking handoffs.
type StudioConfig struct {
	Name           string `json:"studioName"`
	Description    string `json:"description"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	WhatsAppNumber string `json:"whatsappNumber"`
	InstagramURL   string `json:"instagram"`
	FacebookURL    string `json:"facebook"`
	TwitterURL     string `json:"twitter"`
	CurrencySymbol string `json:"currencySymbol"`
	CurrencyCode   string `json:"currencyCode"`
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	WebAPIKey       string
	// Emails that always resolve to the admin role, regardless of profile.
	BootstrapAdmins []string
}

const (
	StoreBackendFirestore = "firestore"
	StoreBackendRedis     = "redis"
)

type StoreConfig struct {
	Backend string
	// Write the default catalog at startup when the services collection is empty.
	SeedOnEmpty bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig is optional; booking requests are only recorded when DSN
// is set.
type DatabaseConfig struct {
	DSN      string
	MaxConns int
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	WhatsAppNumber string
}

func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.WhatsAppNumber != ""
}

type BackupConfig struct {
	Bucket   string
	Prefix   string
	Region   string
	Schedule string
}

func (b BackupConfig) Enabled() bool {
	return b.Bucket != ""
}

type RateLimitConfig struct {
	CheckoutPerMinute int
	CheckoutBurst     int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:5174"}),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Studio: StudioConfig{
			Name:           getEnv("STUDIO_NAME", "Wedding Moments Studio"),
			Description:    getEnv("STUDIO_DESCRIPTION", "Capturing your precious moments with professional photography and videography services."),
			Address:        getEnv("STUDIO_ADDRESS", "123 Photography Lane, Mumbai, Maharashtra 400001"),
			Email:          getEnv("CONTACT_EMAIL", "info@weddingmoments.com"),
			Phone:          getEnv("CONTACT_PHONE", "+91 98765 43210"),
			WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "919876543210"),
			InstagramURL:   getEnv("INSTAGRAM_URL", "https://instagram.com/weddingmoments"),
			FacebookURL:    getEnv("FACEBOOK_URL", "https://facebook.com/weddingmoments"),
			TwitterURL:     getEnv("TWITTER_URL", "https://twitter.com/weddingmoments"),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
			CurrencyCode:   getEnv("CURRENCY_CODE", "INR"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			WebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
			BootstrapAdmins: getEnvAsList("BOOTSTRAP_ADMIN_EMAILS", nil),
		},
		Store: StoreConfig{
			Backend:     getEnv("STORE_BACKEND", StoreBackendFirestore),
			SeedOnEmpty: getEnvAsBool("SEED_CATALOG_ON_EMPTY", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Twilio: TwilioConfig{
			AccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
			WhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
		},
		Backup: BackupConfig{
			Bucket:   getEnv("BACKUP_S3_BUCKET", ""),
			Prefix:   getEnv("BACKUP_S3_PREFIX", "catalog-backups/"),
			Region:   getEnv("AWS_REGION", "ap-south-1"),
			Schedule: getEnv("BACKUP_CRON", "0 0 0 * * *"),
		},
		RateLimit: RateLimitConfig{
			CheckoutPerMinute: getEnvAsInt("CHECKOUT_RATE_PER_MIN", 10),
			CheckoutBurst:     getEnvAsInt("CHECKOUT_BURST", 3),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case StoreBackendFirestore:
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required for the firestore store backend")
		}
	case StoreBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if !isDigits(c.Studio.WhatsAppNumber) {
		return fmt.Errorf("WHATSAPP_NUMBER must contain digits only (country code included)")
	}

	if c.RateLimit.CheckoutPerMinute <= 0 || c.RateLimit.CheckoutBurst <= 0 {
		return fmt.Errorf("checkout rate limit values must be positive")
	}

	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList reads a comma separated list, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
