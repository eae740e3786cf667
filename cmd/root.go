// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the checkauth CLI.
// It implements subcommands that resolve the current session against an auth
// endpoint, keep a live view of it, and manage the locally stored token and
// settings. Commands are built with the Cobra CLI framework and render with pterm.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	authURL     string
	method      string
	credentials string
	headers     []string
	verbose     bool
	showVersion bool
}

var flags rootFlags

// errReported marks a failure whose explanation was already printed.
// Execute exits non-zero without printing it again.
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "checkauth",
	Short: "Check who you are signed in as on an auth endpoint",
	Long: `checkauth resolves the current user session by requesting an auth endpoint
and reading the user information it returns. Responses with status 200, 201 or
202 and a JSON body count as an authenticated session; anything else is
reported as an error.

The endpoint and request settings come from the config file, CHECKAUTH_*
environment variables and the flags below, in increasing order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := initRuntime()
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if flags.showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.authURL, "auth-url", "", "Auth endpoint that returns the current user (overrides config)")
	pf.StringVar(&flags.method, "method", "", "HTTP method for the auth request (default GET)")
	pf.StringVar(&flags.credentials, "credentials", "", "Cookie mode: include, same-origin or omit")
	pf.StringArrayVarP(&flags.headers, "header", "H", nil, "Extra request header as \"Key: Value\" (repeatable)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.Flags().BoolVar(&flags.showVersion, "version", false, "Show CLI version information")
}
