package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	Search  SearchConfig
	Tickets TicketConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret string
}

type SearchConfig struct {
	Threshold float64
}

type TicketConfig struct {
	MinQuantity int
	MaxQuantity int
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8080"),
			Timeout: time.Duration(getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		},
		Search: SearchConfig{
			Threshold: getEnvAsFloat("SEARCH_THRESHOLD", 0.4),
		},
		Tickets: TicketConfig{
			MinQuantity: getEnvAsInt("TICKET_MIN_QUANTITY", 0),
			MaxQuantity: getEnvAsInt("TICKET_MAX_QUANTITY", 10),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer with a fallback default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as float with a fallback default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
