package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	BackendBaseURL string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	DefaultLocale  string

	// RequestTimeout bounds every outgoing call to the prediction backend.
	RequestTimeout time.Duration
	// OTPResendDefault seeds the resend countdown when the backend omits
	// expiresIn from the forgot-password response.
	OTPResendDefault time.Duration
	// ResetRedirectDelay is how long the reset-success toast stays visible
	// before the client is told to navigate to the login page.
	ResetRedirectDelay time.Duration
	// ToastTTL is the auto-dismiss duration for notifications.
	ToastTTL time.Duration

	// AuthRateRPS and AuthRateBurst bound per-IP traffic on auth endpoints.
	AuthRateRPS   float64
	AuthRateBurst int
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		BackendBaseURL:     getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          getEnv("JWT_SECRET", "change-me"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
		RequestTimeout:     getEnvDuration("BACKEND_TIMEOUT", 30*time.Second),
		OTPResendDefault:   getEnvDuration("OTP_RESEND_DEFAULT", 300*time.Second),
		ResetRedirectDelay: getEnvDuration("RESET_REDIRECT_DELAY", 3*time.Second),
		ToastTTL:           getEnvDuration("TOAST_TTL", 5*time.Second),
		AuthRateRPS:        getEnvFloat("AUTH_RATE_RPS", 5),
		AuthRateBurst:      getEnvInt("AUTH_RATE_BURST", 10),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
