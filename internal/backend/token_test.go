// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "canonical", input: "Bearer abc.def", expected: "abc.def"},
		{name: "lower case", input: "bearer abc", expected: "abc"},
		{name: "padded", input: "  Bearer   abc  ", expected: "abc"},
		{name: "bare token", input: "abcdefgh", expected: ""},
		{name: "prefix without separator", input: "Bearerabc", expected: ""},
		{name: "too short", input: "Bearer", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBearerToken(tt.input))
		})
	}
}

func TestBearerHeader(t *testing.T) {
	assert.Equal(t, "Bearer abc", BearerHeader("abc"))
	assert.Equal(t, "Bearer abc", BearerHeader("Bearer abc"))
	assert.Equal(t, "abc", NormalizeToken(" abc "))
}
