package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every secret and external endpoint the server needs. It is
// built once in main and handed to the components that use it; handlers and
// services never read the environment themselves.
type Config struct {
	Port string

	DBConnectionString string
	RedisURL           string

	AccessTokenSecret  string
	RefreshTokenSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SenderEmail  string
	AdminEmail   string

	WebsiteURL string
}

// Load reads .env in development and assembles the Config. Missing required
// values are fatal at startup rather than surfacing later inside a request.
func Load() *Config {
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	cfg := &Config{
		Port:               getEnv("PORT", "4000"),
		DBConnectionString: os.Getenv("DB_CONNECTION_STRING"),
		RedisURL:           getEnv("REDIS_URL", "localhost:6379"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		RazorpayKeyID:      os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SenderEmail:        os.Getenv("EMAIL"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		WebsiteURL:         getEnv("WEBSITE_URL", "http://localhost:5173"),
	}

	if cfg.DBConnectionString == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		log.Panic("token secrets are required (ACCESS_TOKEN_SECRET, REFRESH_TOKEN_SECRET)")
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
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
