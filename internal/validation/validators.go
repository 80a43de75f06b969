package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/volunteernetwork/api/internal/models"
)

// Validate is a shared validator instance
var Validate = validator.New()

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateNotificationStatus validates a NotificationStatus string value
func ValidateNotificationStatus(value string) error {
	status := models.NotificationStatus(value)
	switch status {
	case models.NotificationStatusSent, models.NotificationStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid status: %s (must be 'sent' or 'failed')", value)
	}
}
