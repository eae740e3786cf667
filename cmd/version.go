// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import "fmt"

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
	// Commit is the source revision, set at build time.
	Commit = ""
)

// versionString renders the --version output.
func versionString() string {
	if Commit == "" {
		return fmt.Sprintf("checkauth %s", Version)
	}
	return fmt.Sprintf("checkauth %s (%s)", Version, Commit)
}
