package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Destination string
	StartDate   string
	EndDate     string

	SearchBaseURL     string
	UserAgent         string
	HTTPTimeoutSec    int
	RateLimitMs       int
	MaxSectionRetries int
	MaxConcurrency    int

	CSVOutputPath  string
	XLSXOutputPath string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Destination: getEnv("DESTINATION", "split-1"),
		StartDate:   getEnv("START_DATE", "2024-05-01"),
		EndDate:     getEnv("END_DATE", "2024-09-30"),

		SearchBaseURL: getEnv("SEARCH_BASE_URL", "https://bt2stag.boataround.com/search"),
		UserAgent: getEnv("USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
				"(KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"),
		// 0 means no timeout: the site is slow and we prefer waiting over
		// failing a long batch run early.
		HTTPTimeoutSec:    getEnvInt("HTTP_TIMEOUT_SEC", 0),
		RateLimitMs:       getEnvInt("RATE_LIMIT_MS", 0),
		MaxSectionRetries: getEnvInt("MAX_SECTION_RETRIES", 5),
		MaxConcurrency:    getEnvInt("MAX_CONCURRENCY", 1),

		CSVOutputPath:  getEnv("CSV_OUTPUT_PATH", "./output/raw_listings.csv"),
		XLSXOutputPath: getEnv("XLSX_OUTPUT_PATH", "./output/boats.xlsx"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "boats_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
