// Package core provides utility functions for asepscan's reporting framework.
package core

import (
	"regexp"
	"strings"
)

var (
	invalidNameChars = regexp.MustCompile(`[^a-z0-9_-]`)
	repeatUnderscore = regexp.MustCompile(`_+`)
)

// SanitizeName cleans a name for safe use in a file name.
// It removes or replaces characters that could be problematic in file paths.
func SanitizeName(name string) string {
	// Convert to lowercase for consistency
	name = strings.ToLower(name)

	// Replace problematic characters with underscores
	name = invalidNameChars.ReplaceAllString(name, "_")

	// Remove leading/trailing underscores and collapse multiple underscores
	name = strings.Trim(name, "_")
	name = repeatUnderscore.ReplaceAllString(name, "_")

	// Ensure we have something if the name was all invalid characters
	if name == "" {
		name = "unknown"
	}

	return name
}
