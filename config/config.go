package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ProductionEnv  = "production"
	DevelopmentEnv = "development"
)

type Config struct {
	AppPort string
	AppEnv  string
	AppMode string

	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	DatabaseURL string

	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessExpiryMin  int
	RefreshExpiry    int

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	TokenDenylist bool
	AuthRateLimit int

	CORSDevOrigin  string
	CORSProdOrigin string

	// TrustedProxies lists proxy IPs/CIDRs whose X-Forwarded-For is honored.
	TrustedProxies []string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:          getEnv("APP_PORT", "3000"),
		AppEnv:           getEnv("APP_ENV", DevelopmentEnv),
		AppMode:          getEnv("APP_MODE", "debug"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "my_chat"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTAccessSecret:  getEnv("JWT_ACCESS_TOKEN", "change-me-access"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_TOKEN", "change-me-refresh"),
		AccessExpiryMin:  getEnvAsInt("ACCESS_EXPIRY_MIN", 15),
		RefreshExpiry:    getEnvAsInt("REFRESH_EXPIRY_DAYS", 7),
		RedisHost:        getEnv("REDIS_HOST", ""),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		TokenDenylist:    getEnvAsBool("TOKEN_DENYLIST", false),
		AuthRateLimit:    getEnvAsInt("AUTH_RATE_LIMIT", 5),
		CORSDevOrigin:    getEnv("CORS_DEV_ORIGIN", "http://localhost:5173"),
		CORSProdOrigin:   getEnv("CORS_PROD_ORIGIN", "https://my-chat-eta-seven.vercel.app"),
		TrustedProxies:   getEnvAsList("TRUSTED_PROXIES"),
	}
}

// IsProduction reports whether cookies must be Secure and the production
// CORS origin applies.
func (c *Config) IsProduction() bool {
	return c.AppEnv == ProductionEnv
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessExpiryMin) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshExpiry) * 24 * time.Hour
}

// AllowedOrigin is the single origin allowed to make credentialed requests.
func (c *Config) AllowedOrigin() string {
	if c.IsProduction() {
		return c.CORSProdOrigin
	}
	return c.CORSDevOrigin
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// DSN returns DatabaseURL when set, otherwise a keyword/value string built
// from the DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma-separated value, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
