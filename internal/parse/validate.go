// Package parse provides parsing, validation, and normalization utilities for the asepscan CLI.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"asepscan/internal/asep"
)

// ParseCategories validates the --types flag: a comma-separated subset of
// the supported ASEP categories. An empty flag selects all categories.
func ParseCategories(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	known := make(map[string]bool, len(asep.AllCategories))
	for _, c := range asep.AllCategories {
		known[c] = true
	}

	var categories []string
	for _, part := range strings.Split(s, ",") {
		category := strings.ToLower(strings.TrimSpace(part))
		if category == "" {
			continue
		}
		if !known[category] {
			return nil, fmt.Errorf("invalid --types: unknown category %q (supported: %s)",
				category, strings.Join(asep.AllCategories, ", "))
		}
		categories = append(categories, category)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("invalid --types: no categories given")
	}
	return categories, nil
}

// ParseHiveOffset validates the --hive-offset flag, accepting decimal or
// 0x-prefixed hex. Returns whether the flag was set.
func ParseHiveOffset(s string) (offset uint64, set bool, err error) {
	if s == "" {
		return 0, false, nil
	}

	numeric := s
	numberBase := 10
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		numeric = s[2:]
		numberBase = 16
	}
	offset, err = strconv.ParseUint(numeric, numberBase, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid --hive-offset: %q is not a decimal or 0x-prefixed hex offset", s)
	}
	return offset, true, nil
}
