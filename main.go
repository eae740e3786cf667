// Package main is the entry point for the checkauth CLI application.
// It resolves the current user session against a configurable auth endpoint.
package main

import (
	"checkauth/cli/cmd"
)

// main is the entry point for the checkauth CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
