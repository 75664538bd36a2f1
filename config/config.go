// config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds every environment-derived setting. Loaded once at boot
// and passed into the components that need it rather than read ad hoc.
type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string

	// OTP lifecycle
	OTPExpiry time.Duration
	DemoMode  bool

	// Redis-backed rate limiting (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Outbound SMS gateway (optional)
	SMSUsername string
	SMSPassword string
	SMSSenderID string
	SMSAPIPath  string

	// Outcome notification email (optional)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	FrontendURL string
}

// Load reads the configuration from the environment. Missing required
// variables are fatal: a deploy without MONGO_URI or JWT_SECRET should
// fail before it starts accepting traffic.
func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		MongoURI:      os.Getenv("MONGO_URI"),
		DBName:        getEnv("DB_NAME", "voterreg"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		OTPExpiry:     time.Duration(getEnvInt("OTP_EXPIRY_MINUTES", 5)) * time.Minute,
		DemoMode:      os.Getenv("DEMO_MODE") == "true",
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SMSUsername:   os.Getenv("SMS_USERNAME"),
		SMSPassword:   os.Getenv("SMS_PASSWORD"),
		SMSSenderID:   getEnv("SMS_SENDER_ID", "VoterReg"),
		SMSAPIPath:    os.Getenv("SMS_API_PATH"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnvInt("SMTP_PORT", 2525),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		FrontendURL:   os.Getenv("FRONTEND_URL"),
	}

	if cfg.MongoURI == "" {
		// MONGODB_URI is accepted as an alias for hosted providers
		cfg.MongoURI = os.Getenv("MONGODB_URI")
	}

	missing := []string{}
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %v", missing)
	}

	if len(cfg.JWTSecret) < 32 {
		log.Println("Warning: JWT_SECRET should be at least 32 characters long for production")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
