package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const devCookieSecret = "dev-cookie-secret-change-in-production"

type Config struct {
	Port            string
	Env             string
	APIBaseURL      string
	APITimeout      time.Duration
	PageSize        int
	CredentialStore string
	DatabaseDSN     string
	CookieSecret    string
	CookieSecure    bool
	LogLevel        string
	AuthRateRPS     float64
	AuthRateBurst   int
	TrustProxy      bool
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:5000"),
		APITimeout:      getDuration("API_TIMEOUT", 10*time.Second),
		PageSize:        getInt("PAGE_SIZE", 5),
		CredentialStore: getEnv("CREDENTIAL_STORE", "cookie"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "bookshelf.db"),
		CookieSecret:    getEnv("COOKIE_SECRET", devCookieSecret),
		CookieSecure:    getBool("COOKIE_SECURE", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AuthRateRPS:     getFloat("AUTH_RATE_RPS", 5),
		AuthRateBurst:   getInt("AUTH_RATE_BURST", 10),
		TrustProxy:      getBool("TRUST_PROXY", false),
	}

	if cfg.Env == "production" && cfg.CookieSecret == devCookieSecret {
		log.Fatal().Msg("COOKIE_SECRET must be set in production environment")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
