package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the struct tags and the cross-field rules tags cannot express
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, e := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", e.Field(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return err
	}
	if cfg.ContentURL != "" && cfg.ContentFile != "" {
		return errors.New("CONTENT_URL and CONTENT_FILE are mutually exclusive")
	}
	return nil
}

// Warnings reports non-critical issues such as insecure defaults
func Warnings(cfg *Config) []string {
	var warnings []string
	if cfg.Storage == StoragePostgres && cfg.DBPassword == "postgres" {
		warnings = append(warnings, "DB_PASSWORD is the default value - please use a secure password")
	}
	if cfg.APIKey == "" {
		warnings = append(warnings, "API_KEY is not set - the HTTP API accepts unauthenticated requests")
	}
	if cfg.Storage == StorageMemory {
		warnings = append(warnings, "STORAGE=memory - state is lost on restart")
	}
	return warnings
}
