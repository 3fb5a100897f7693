package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "must be a number"})
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "is required for the sqlite driver"})
		}
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "host, name and user are required for the postgres driver"})
		}
		if cfg.DBPassword == "" && cfg.Environment != Development {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "db_password secret is required"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.LLMAPIURL == "" {
		errs = append(errs, ValidationError{Field: "LLM_API_URL", Message: "is required"})
	}
	if cfg.LLMTimeout < 0 {
		errs = append(errs, ValidationError{Field: "LLM_TIMEOUT", Message: "must not be negative"})
	}

	// Without a key every generation degrades to fallback output, which is
	// acceptable locally but not in production.
	if cfg.Environment.IsProduction() && cfg.LLMAPIKey == "" {
		errs = append(errs, ValidationError{Field: "LLM_API_KEY", Message: "llm_api_key secret is required in production"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
