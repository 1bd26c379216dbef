// config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config carries every runtime setting the application needs. It is
// resolved once at process start and passed explicitly to the services
// that need it; nothing reads the environment after Load returns.
type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Firebase identity provider. When APIKey is empty the local
	// MongoDB credential store is used instead.
	FirebaseProjectID   string
	FirebaseAPIKey      string
	FirebaseCredsBase64 string
	FirebaseCredsFile   string

	// SMTP notification settings; all optional.
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	AdminEmail string

	AllowedOrigins []string
}

// Load reads the environment once and returns a fully populated Config.
// JWT_SECRET and MONGO_URI are required; everything else has a default
// or is optional.
func Load() (*Config, error) {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}
	if mongoURI == "" {
		return nil, errors.New("MONGO_URI environment variable is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Port:                envOrDefault("PORT", "8080"),
		MongoURI:            mongoURI,
		DBName:              envOrDefault("DB_NAME", "eventnow"),
		JWTSecret:           secret,
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		FirebaseProjectID:   os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseAPIKey:      os.Getenv("FIREBASE_API_KEY"),
		FirebaseCredsBase64: os.Getenv("FIREBASE_CREDENTIALS_BASE64"),
		FirebaseCredsFile:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		FromEmail:           os.Getenv("FROM_EMAIL"),
		AdminEmail:          os.Getenv("ADMIN_NOTIFICATION_EMAIL"),
		AllowedOrigins:      parseList(os.Getenv("ALLOWED_ORIGINS"), []string{"*"}),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.SMTPPort = port
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(raw string, fallback []string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
