package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string
	CORSOrigin string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Completion service configuration
	LLMAPIKey  string
	LLMAPIURL  string
	LLMModel   string
	LLMTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

var defaults = map[string]interface{}{
	"SERVER_HOST": "0.0.0.0",
	"SERVER_PORT": "3001",
	"CORS_ORIGIN": "http://localhost:3000",
	"DB_DRIVER":   "sqlite",
	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USER":     "postgres",
	"DB_NAME":     "recettes",
	"DB_SSL_MODE": "disable",
	"SQLITE_PATH": "recettes.db",
	"REDIS_HOST":  "localhost",
	"REDIS_PORT":  "6379",
	"REDIS_DB":    0,
	"LLM_API_URL": "https://api.groq.com/openai/v1/chat/completions",
	"LLM_MODEL":   "llama3-8b-8192",
	"LLM_TIMEOUT": "0s",
	"LOG_LEVEL":   "info",
	"LOG_FORMAT":  "json",
}

// LoadConfig reads configuration from environment variables, falling back to
// Docker secrets for sensitive values, and validates it for the current environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{
		Environment:   GetEnvironment(),
		ServerHost:    v.GetString("SERVER_HOST"),
		ServerPort:    v.GetString("SERVER_PORT"),
		CORSOrigin:    v.GetString("CORS_ORIGIN"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    secretOrEnv(v, "DB_PASSWORD", "db_password"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSL_MODE"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		RedisURL:      v.GetString("REDIS_URL"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: secretOrEnv(v, "REDIS_PASSWORD", "redis_password"),
		RedisDB:       v.GetInt("REDIS_DB"),
		LLMAPIURL:     v.GetString("LLM_API_URL"),
		LLMModel:      v.GetString("LLM_MODEL"),
		LLMTimeout:    v.GetDuration("LLM_TIMEOUT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
	}

	apiKey, err := loadAPIKey(v)
	if err != nil {
		return nil, err
	}
	cfg.LLMAPIKey = apiKey

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadAPIKey resolves the completion service key from LLM_API_KEY, the file
// named by LLM_API_KEY_FILE, or the llm_api_key secret, in that order.
func loadAPIKey(v *viper.Viper) (string, error) {
	if key := strings.TrimSpace(v.GetString("LLM_API_KEY")); key != "" {
		return key, nil
	}

	if keyFile := v.GetString("LLM_API_KEY_FILE"); keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("API key file is empty")
		}
		return key, nil
	}

	return readSecret("llm_api_key"), nil
}

func secretOrEnv(v *viper.Viper, envKey, secretName string) string {
	if value := v.GetString(envKey); value != "" {
		return value
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisOptions builds client options, preferring REDIS_URL over host and port
func (c *Config) RedisOptions() (*redis.Options, error) {
	if c.RedisURL == "" {
		return &redis.Options{
			Addr:     c.RedisHost + ":" + c.RedisPort,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		}, nil
	}
	opts, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return opts, nil
}
