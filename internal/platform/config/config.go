package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. It is built once at startup
// and passed by value; nothing mutates it afterwards.
type Server struct {
	Addr string

	MongoURI      string
	MongoDatabase string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration

	// Admin seed account, created at startup when absent.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:          getEnv("PHONEBOOK_ADDR", ":8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB_NAME", "phonebook"),
		JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     getEnv("JWT_ISSUER", "phonebook"),
		JWTAudience:   getEnv("JWT_AUDIENCE", "phonebook-api"),
		TokenTTL:      getDurationMinutes("JWT_TTL_MINUTES", 60*time.Minute),
		AdminUsername: getEnv("ADMIN_USERNAME", "Admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@admin.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationMinutes(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	minutes, err := strconv.Atoi(v)
	if err != nil || minutes <= 0 {
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}
