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
	JWTKey    string
	SaltRound int

	EmailSender    string
	SMTPPassword   string
	SendgridAPIKey string

	PaymentServerKey string // payment gateway server key
	PaymentBaseURL   string // payment gateway API base URL (status polling)
	CheckoutFinish   string // URL the hosted checkout redirects back to
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
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender:    getEnv("EMAIL_SENDER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		PaymentServerKey: getEnv("PAYMENT_SERVER_KEY", ""),
		PaymentBaseURL:   getEnv("PAYMENT_BASE_URL", "https://api.sandbox.midtrans.com"),
		CheckoutFinish:   getEnv("CHECKOUT_FINISH_URL", "https://app.escudoacademy.com/checkout/finish"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentServerKey == "" {
		log.Println("Warning: PAYMENT_SERVER_KEY not set. Card checkout will fail.")
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
