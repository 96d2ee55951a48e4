package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// This function uses go-playground/validator for declarative validation
// via struct tags, with additional custom validation for complex rules
// that cannot be expressed in tags.
//
// Note: Log level normalization is handled in ApplyDefaults, not here.
// Validation accepts both uppercase and lowercase log levels.
//
// Returns an error describing validation failures.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if err := validateCustomRules(cfg); err != nil {
		return err
	}

	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// Tier aliases must be unique; the first alias is rendered as the top tier
	// and duplicates would make tier attribution ambiguous.
	seen := make(map[string]bool)
	for i, alias := range cfg.Tiers {
		if seen[alias] {
			return fmt.Errorf("tiers[%d]: duplicate tier alias %q", i, alias)
		}
		seen[alias] = true
	}

	// The badger section must name a directory when badger is selected.
	if cfg.Metadata.Type == "badger" {
		dir, _ := cfg.Metadata.Badger["dir"].(string)
		inMemory, _ := cfg.Metadata.Badger["in_memory"].(bool)
		if dir == "" && !inMemory {
			return fmt.Errorf("metadata.badger: dir is required when type is badger")
		}
	}

	// The s3 section must name a bucket when s3 is selected.
	if cfg.Content.Type == "s3" {
		if bucket, _ := cfg.Content.S3["bucket"].(string); bucket == "" {
			return fmt.Errorf("content.s3: bucket is required when type is s3")
		}
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		// Return the first validation error with context
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
