// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"
)

// maxPresentedLen caps displayed error text; decode errors may quote whole
// HTML error pages.
const maxPresentedLen = 200

// PresentError formats an error for user display: secrets are masked, line
// breaks are collapsed and long messages are truncated.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := strings.Join(strings.Fields(Mask(err.Error())), " ")
	if len(msg) > maxPresentedLen {
		msg = msg[:maxPresentedLen] + "..."
	}
	return fmt.Sprintf("%s: %s", context, msg)
}
