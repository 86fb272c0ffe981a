package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey string

	AIBaseURL         string
	AIAPIKey          string
	AIModel           string
	AITranscribeModel string
	AIEvalTimeoutSec  int

	AudioBaseURL string // public base URL of the speaking-attempts audio bucket

	SendGridKey string
	EmailSender string
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
		Port: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "ieltsprep"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		AIBaseURL:         getEnv("AI_BASE_URL", ""),
		AIAPIKey:          getEnv("AI_API_KEY", ""),
		AIModel:           getEnv("AI_MODEL", "gpt-4o-mini"),
		AITranscribeModel: getEnv("AI_TRANSCRIBE_MODEL", "whisper-1"),
		AIEvalTimeoutSec:  getEnvInt("AI_EVAL_TIMEOUT_SEC", 60),

		AudioBaseURL: getEnv("AUDIO_BASE_URL", ""),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "noreply@ieltsprep.app"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.AIAPIKey == "" {
		log.Println("Warning: AI_API_KEY is not set. Writing/speaking evaluation will fail.")
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
