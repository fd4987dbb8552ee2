package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateOneOf checks that value is one of the allowed values
func ValidateOneOf(value, fieldName string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return NewValidationError(fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(allowed, ", ")))
}

// ValidateCurrency checks for a 3-character currency code
func ValidateCurrency(value string) error {
	if len(value) != 3 {
		return NewValidationError("Currency must be a 3-character code (e.g., USD, EUR)")
	}
	return nil
}

// ValidateLatitude checks the latitude range
func ValidateLatitude(value float64) error {
	if value < -90 || value > 90 {
		return NewValidationError("Latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude checks the longitude range
func ValidateLongitude(value float64) error {
	if value < -180 || value > 180 {
		return NewValidationError("Longitude must be between -180 and 180")
	}
	return nil
}

// CleanFileName strips characters that are unsafe in download filenames
func CleanFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_",
	)
	return replacer.Replace(name)
}
