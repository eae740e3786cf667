// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"strings"
)

// ParseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func ParseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 {
		return ""
	}
	if strings.EqualFold(v[0:6], "bearer") && (v[6] == ' ' || v[6] == '\t') {
		return strings.TrimSpace(v[7:])
	}
	return ""
}

// NormalizeToken accepts either a bare token or an Authorization value and
// returns the bare token.
func NormalizeToken(value string) string {
	if t := ParseBearerToken(value); t != "" {
		return t
	}
	return strings.TrimSpace(value)
}

// BearerHeader formats token as an Authorization header value.
func BearerHeader(token string) string {
	return "Bearer " + NormalizeToken(token)
}
