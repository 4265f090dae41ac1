package cli

import (
	"fmt"
	"strings"

	"github.com/pods-community/pods-cli/pkg/models"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateLimit checks a --limit flag value
func ValidateLimit(limit int) error {
	if limit < 1 {
		return fmt.Errorf("invalid limit: %d (must be at least 1)", limit)
	}
	return nil
}

// ValidateUsernameArg strips whitespace and a leading @ from a username given
// on the command line and checks it. Case is kept.
func ValidateUsernameArg(name string) (string, error) {
	normalized := strings.TrimPrefix(strings.TrimSpace(name), "@")
	if err := models.ValidateUsername(normalized); err != nil {
		return "", fmt.Errorf("invalid username %q: %w", name, err)
	}
	return normalized, nil
}

// ValidateWidth checks a wrap width flag. 0 disables wrapping.
func ValidateWidth(width int) error {
	if width < 0 {
		return fmt.Errorf("invalid width: %d (must be 0 or more)", width)
	}
	return nil
}
