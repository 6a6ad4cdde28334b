package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiModel          string
	GeminiRequestsPerMin int
	GeminiConcurrentReqs int

	// Assistant content
	KnowledgePath string
	CVPath        string

	// Optional backing stores
	DatabaseURL    string
	MigrationsPath string
	RedisURL       string

	// Rate limiting
	ChatRateLimitPerMin    int
	ContactRateLimitPerMin int

	// EmailJS
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string

	// SMTP
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	OwnerEmail string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "8080"),
		Env:                    getEnvOrDefault("ENV", "development"),
		GeminiModel:            getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiRequestsPerMin:   getEnvAsIntOrDefault("GEMINI_REQUESTS_PER_MINUTE", 60),
		GeminiConcurrentReqs:   getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		KnowledgePath:          getEnvOrDefault("KNOWLEDGE_PATH", ""),
		CVPath:                 getEnvOrDefault("CV_PATH", ""),
		DatabaseURL:            getEnvOrDefault("DATABASE_URL", ""),
		MigrationsPath:         getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
		RedisURL:               getEnvOrDefault("REDIS_URL", ""),
		ChatRateLimitPerMin:    getEnvAsIntOrDefault("CHAT_RATE_LIMIT_PER_MINUTE", 20),
		ContactRateLimitPerMin: getEnvAsIntOrDefault("CONTACT_RATE_LIMIT_PER_MINUTE", 5),
		EmailJSServiceID:       getEnvOrDefault("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID:      getEnvOrDefault("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:       getEnvOrDefault("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey:      getEnvOrDefault("EMAILJS_PRIVATE_KEY", ""),
		SMTPHost:               getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:               getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:               getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:               getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom:               getEnvOrDefault("SMTP_FROM", "noreply@ryradit.dev"),
		OwnerEmail:             getEnvOrDefault("OWNER_EMAIL", ""),
		FrontendURL:            getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

// GeminiKey reads the model credential. It is looked up on every chat request.
func (c *Config) GeminiKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// Validate rejects settings that would make the server misbehave at runtime.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.GeminiConcurrentReqs < 1 {
		return fmt.Errorf("GEMINI_CONCURRENT_REQUESTS must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
