package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	// URL пустой - журнал патчей хранится в памяти
	URL string
}

type RabbitMQConfig struct {
	// URL пустой - события не публикуются
	URL string
}

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

type ListingAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type EditSessionConfig struct {
	TTL             time.Duration
	JanitorInterval time.Duration
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Database     DBconfig
	RabbitMQ     RabbitMQConfig
	Rest         RESTconfig
	ListingAPI   ListingAPIConfig
	EditSessions EditSessionConfig
	Uploads      UploadConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env необязателен, явно указанный путь - обязателен.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	if len(envPath) > 0 {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath[0], err)
		}
	} else if err := godotenv.Load(); err != nil {
		log.Printf("Info: Could not load .env file: %v. Using process environment.\n", err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-admin-service")

	cfg.ListingAPI.BaseURL = strings.TrimRight(os.Getenv("LISTING_API_BASE_URL"), "/")
	if cfg.ListingAPI.BaseURL == "" {
		return nil, fmt.Errorf("LISTING_API_BASE_URL environment variable is required")
	}
	cfg.ListingAPI.Timeout = getEnvAsDuration("UPSTREAM_TIMEOUT", 15*time.Second)

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS")

	cfg.EditSessions.TTL = getEnvAsDuration("SESSION_TTL", 2*time.Hour)
	cfg.EditSessions.JanitorInterval = getEnvAsDuration("SESSION_JANITOR_INTERVAL", time.Minute)

	cfg.Uploads.Dir = os.Getenv("BLOB_DIR")
	cfg.Uploads.MaxBytes = getEnvAsInt64("MAX_UPLOAD_BYTES", 50<<20)

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil || value <= 0 {
		log.Printf("Warning: Environment variable %s (value: %s) is not a positive integer. Using default value: %d\n", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration понимает формат time.ParseDuration ("90s", "2h")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil || d <= 0 {
		log.Printf("Warning: Environment variable %s (value: %s) is not a positive duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList - список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
