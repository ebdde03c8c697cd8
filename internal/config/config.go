package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	JWTSecret      string
	JWTExpiryHours int
	MongoURI       string
	DBName         string
	Environment    string
	AppId          string

	// Bootstrap admin account, created at startup when missing.
	AdminEmail    string
	AdminPassword string

	// Auto clock-out of stale open clock records. Off unless explicitly enabled.
	AutoClockOut         bool
	AutoClockOutSchedule string
	AutoClockOutAfterHrs int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		JWTSecret:            getEnv("JWT_SECRET", "secret"),
		JWTExpiryHours:       getEnvInt("JWT_EXPIRY_HOURS", 72),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:               getEnv("DB_NAME", "go-wfm"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		AppId:                getEnv("APP_ID", "go-wfm"),
		AdminEmail:           getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:        getEnv("ADMIN_PASSWORD", "admin123"),
		AutoClockOut:         getEnv("AUTO_CLOCK_OUT", "false") == "true",
		AutoClockOutSchedule: getEnv("AUTO_CLOCK_OUT_SCHEDULE", "0 * * * *"),
		AutoClockOutAfterHrs: getEnvInt("AUTO_CLOCK_OUT_AFTER_HOURS", 16),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
