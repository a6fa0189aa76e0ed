// Package utils provides utility functions and helpers for common operations
// used throughout the application: request parameter parsing, error mapping,
// logging and the response envelope.
package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseItemID parses a content item id from a URL parameter.
// Only positive base-10 integers are accepted.
//
// Parameters:
//   - raw: the path parameter value
//
// Returns:
//   - the parsed id, or a validation error naming the field
func ParseItemID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewValidationError("item_id", fmt.Sprintf("Item ID must be a positive integer, got %q", raw))
	}
	return id, nil
}

// SortedKeys returns the keys of a mapping in ascending order.
// It is used to log which settings fields a request touched.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TruncateString truncates a string to the given maximum length and adds ellipsis if necessary.
// This is useful for logging purposes where long templates need to be shortened.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
