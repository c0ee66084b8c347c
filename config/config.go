package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RabbitURL string

	UploadDir            string
	DataRoot             string
	QuestionBankPath     string
	QuestionBankFilename string

	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPass           string
	SMTPSecure         bool
	SMTPFallbackPort   int
	SMTPFallbackSecure bool
	SMTPFrom           string

	AdminEmail    string
	AdminUser     string
	AdminPassword string

	RazorpayKeyID     string
	RazorpayKeySecret string

	MockPaymentDelay time.Duration
}

func Load() *Config {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "interview_coach"),

		RabbitURL: os.Getenv("RABBITMQ_URL"),

		UploadDir:            getEnv("UPLOAD_DIR", "/data/uploads"),
		DataRoot:             getEnv("DATA_ROOT", "/data"),
		QuestionBankPath:     os.Getenv("QUESTION_BANK_PATH"),
		QuestionBankFilename: getEnv("QUESTION_BANK_FILENAME", "HR-Interview-Question-Bank.pdf"),

		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		SMTPSecure:         getEnvBool("SMTP_SECURE", false),
		SMTPFallbackPort:   getEnvInt("SMTP_FALLBACK_PORT", 465),
		SMTPFallbackSecure: getEnvBool("SMTP_FALLBACK_SECURE", true),
		SMTPFrom:           os.Getenv("SMTP_FROM"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		MockPaymentDelay: time.Duration(getEnvInt("MOCK_PAYMENT_DELAY_MS", 2000)) * time.Millisecond,
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// QuestionBankStoragePath is the primary location of the question-bank PDF.
func (c *Config) QuestionBankStoragePath() string {
	if c.QuestionBankPath != "" {
		return c.QuestionBankPath
	}
	return c.DataRoot + "/question-bank.pdf"
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

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
