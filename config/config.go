package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	App     AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
	StaticDir   string
}

type StorageConfig struct {
	// Driver selects the durable backend: "firestore", "postgres" or "memory".
	Driver          string
	GCPProject      string
	CredentialsPath string
	DatabaseDSN     string
	RedisAddr       string
	Collection      string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
			StaticDir:   getEnv("STATIC_DIR", "dist"),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", "firestore"),
			GCPProject:      getEnv("GOOGLE_CLOUD_PROJECT", getEnv("GCLOUD_PROJECT", "")),
			CredentialsPath: getEnv("FIRESTORE_CREDENTIALS_PATH", ""),
			DatabaseDSN:     getEnv("DB_DSN", ""),
			RedisAddr:       getEnv("REDIS_ADDR", ""),
			Collection:      getEnv("FIRESTORE_COLLECTION", "wedding_seating_projects"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	// Legacy toggle carried over from the first deployment: USE_FIRESTORE=false
	// forces the in-memory backend regardless of STORAGE_DRIVER.
	if !getEnvAsBool("USE_FIRESTORE", true) && cfg.Storage.Driver == "firestore" {
		cfg.Storage.Driver = "memory"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Storage.Driver {
	case "firestore", "postgres", "memory":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be firestore, postgres or memory, got %q", c.Storage.Driver)
	}

	if c.Storage.Driver == "postgres" && c.Storage.DatabaseDSN == "" {
		return fmt.Errorf("DB_DSN is required when STORAGE_DRIVER=postgres")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
