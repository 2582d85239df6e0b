// Package config provides configuration for the SmartExplorers client and backend.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Endpoint prefixes for each resource family.
const (
	AuthEndpoint        = "/api/auth"
	ProfilesEndpoint    = "/api/profiles"
	SafetyEndpoint      = "/api/safety"
	SocialEndpoint      = "/api/social"
	MarketplaceEndpoint = "/api/marketplace"
	AdminEndpoint       = "/api/admin"
	UsersEndpoint       = "/api/users"
	ChatEndpoint        = "/api/chat"
	PlannerEndpoint     = "/api/planner"
)

// Config holds the client and backend configuration.
type Config struct {
	// API settings
	BaseURL     string
	OfflineMode bool

	// Timeouts
	RequestTimeout time.Duration
	ChatTimeout    time.Duration
	PlannerTimeout time.Duration

	// Backend settings
	BackendPort        int
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	LoginRatePerMinute int
	LoginBurst         int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first if present; variables
// already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:            strings.TrimSuffix(getEnv("API_BASE_URL", "http://10.0.2.2:8000"), "/"),
		OfflineMode:        getEnvBool("OFFLINE_MODE", false),
		RequestTimeout:     time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 15000)) * time.Millisecond,
		ChatTimeout:        time.Duration(getEnvInt("CHAT_TIMEOUT_MS", 30000)) * time.Millisecond,
		PlannerTimeout:     time.Duration(getEnvInt("PLANNER_TIMEOUT_MS", 60000)) * time.Millisecond,
		BackendPort:        getEnvInt("BACKEND_PORT", 8000),
		DatabaseURL:        getEnv("DATABASE_URL", "file:smartexplorers.db?cache=shared&mode=rwc"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:           time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 30),
		LoginBurst:         getEnvInt("LOGIN_BURST", 5),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// Default returns the configuration used when no environment is available.
func Default() *Config {
	return &Config{
		BaseURL:            "http://10.0.2.2:8000",
		RequestTimeout:     15 * time.Second,
		ChatTimeout:        30 * time.Second,
		PlannerTimeout:     60 * time.Second,
		BackendPort:        8000,
		DatabaseURL:        ":memory:",
		JWTSecret:          "dev-secret-change-me",
		TokenTTL:           24 * time.Hour,
		LoginRatePerMinute: 30,
		LoginBurst:         5,
		LogLevel:           "info",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
