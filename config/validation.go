package config

import (
	"fmt"
	"os"
	"strings"
)

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
	RequiredSecrets []string
}

var (
	// Environment-specific requirements. Development and test run on
	// defaults, so nothing is mandatory there.
	requirements = map[Environment]ConfigRequirements{
		Development: {},
		Test:        {},
		CI: {
			RequiredEnvVars: []string{
				"DB_HOST",
				"DB_PORT",
				"DB_USER",
				"DB_NAME",
				"REDIS_HOST",
				"REDIS_PORT",
				"TEST_DB_PASSWORD",
				"TEST_JWT_SECRET",
			},
		},
		Production: {
			RequiredEnvVars: []string{
				"DB_HOST",
				"DB_NAME",
				"REDIS_HOST",
			},
			RequiredSecrets: []string{
				"db_user",
				"db_password",
				"jwt_secret",
				"redis_password",
			},
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the
// current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []string

	// Validate environment variables
	for _, envVar := range reqs.RequiredEnvVars {
		if value := os.Getenv(envVar); value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", envVar))
		}
	}

	// Validate secrets
	for _, secret := range reqs.RequiredSecrets {
		if value := readSecret(secret); value == "" {
			errors = append(errors, fmt.Sprintf("required secret %s is not set", secret))
		}
	}

	if env == Production {
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required")
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "jwt_secret secret is required")
		}
		// The Gemini clients load their key themselves; fail fast here
		// rather than on the first search request.
		if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GEMINI_API_KEY_FILE") == "" {
			errors = append(errors, "GEMINI_API_KEY or GEMINI_API_KEY_FILE is required")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
