package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	RecognitionURL       string // Base URL of the facial recognition sidecar
	RecognitionThreshold float64
	RecognitionTimeout   int // seconds

	SendGridKey string
	EmailSender string
	FrontendURL string // base URL for emailed password-reset links

	SessionTTLHours int // in-progress sessions older than this are purged

	// Env-credential super admin for bootstrapping a fresh deployment.
	// Login is disabled while the password is empty.
	SuperAdminEmail    string
	SuperAdminPassword string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "goldloan"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		RecognitionURL:       getEnv("RECOGNITION_URL", "http://localhost:8100"),
		RecognitionThreshold: getEnvFloat("RECOGNITION_THRESHOLD", 0.5),
		RecognitionTimeout:   getEnvInt("RECOGNITION_TIMEOUT", 15),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "noreply@goldloan.local"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:8080"),

		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 72),

		SuperAdminEmail:    getEnv("SUPER_ADMIN_EMAIL", ""),
		SuperAdminPassword: getEnv("SUPER_ADMIN_PASSWORD", ""),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Credential emails will be skipped.")
	}
	if AppConfig.SuperAdminPassword == "" {
		log.Println("Warning: SUPER_ADMIN_PASSWORD not set. Super admin login is disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
