// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"regexp"
	"strings"
)

// nonAlnum matches runs of characters that are neither lowercase letters
// nor digits, after the name has been lowercased.
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// CleanName converts a raw column name into machine-friendly form:
// lowercase, non-alphanumeric runs collapsed to a single underscore,
// leading and trailing underscores trimmed. The transformation is
// idempotent, so re-cleaning an already clean name is a no-op.
func CleanName(name string) string {
	s := strings.ToLower(name)
	s = nonAlnum.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
