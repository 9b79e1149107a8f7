package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	Port         string
	DashboardURL string
	ModelDir     string
	Training     TrainingConfig
	OTel         OTelConfig
}

// TrainingConfig drives corpus loading and the startup/retrain training runs.
type TrainingConfig struct {
	DataDir      string
	SampleSize   int
	TestFraction float64
	OnBoot       bool
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type ServiceType string

const (
	ServiceTypeServer  ServiceType = "server"
	ServiceTypeTrainer ServiceType = "trainer"
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the API server
//   - .env.trainer for the offline training CLI
//
// Falls back to .env if the service-specific file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	env := getEnv("VERDICT_ENV", "development")
	if env == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
		env = getEnv("VERDICT_ENV", "development")
	}

	cfg := Config{
		Env:          env,
		Port:         getEnv("PORT", "8000"),
		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:3000"),
		ModelDir:     getEnv("MODEL_DIR", "saved_models"),
		Training: TrainingConfig{
			DataDir:      getEnv("DATA_DIR", "data"),
			SampleSize:   getEnvInt("TRAIN_SAMPLE_SIZE", 10000),
			TestFraction: getEnvFloat("TRAIN_TEST_FRACTION", 0.2),
			OnBoot:       getEnvBool("TRAIN_ON_BOOT", env == "development"),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "verdict"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
	}

	if cfg.Training.SampleSize < 0 {
		return Config{}, fmt.Errorf("TRAIN_SAMPLE_SIZE must not be negative, got %d", cfg.Training.SampleSize)
	}
	if cfg.Training.TestFraction <= 0 || cfg.Training.TestFraction >= 1 {
		return Config{}, fmt.Errorf("TRAIN_TEST_FRACTION must be between 0 and 1, got %g", cfg.Training.TestFraction)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
