// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"checkauth/cli/internal/config"
	apperrors "checkauth/cli/internal/errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	configureShow      bool
	configureLogLevel  string
	configureLogFormat string
	configureNoHeaders bool
)

// configureCmd persists the stored settings updated with the given flags.
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Save the auth endpoint and request settings",
	Long: `The configure command updates the config file so that later commands can
run without flags. Settings given as flags, for example --auth-url, --method,
--credentials and --header, replace the stored ones. CHECKAUTH_* environment
variables are not written to the file.

Use --show to print the effective settings and the config file location
without saving.`,
	Example: `  checkauth configure --auth-url https://api.example.com/v1/user/info
  checkauth configure --credentials omit -H "X-Api-Key: abc123"
  checkauth configure --show`,

	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if configureShow {
			b, err := json.MarshalIndent(redactHeaders(settings), "", "  ")
			if err != nil {
				return err
			}
			box := pterm.DefaultBox.
				WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(path)).
				WithPadding(1).
				Sprint(string(b))
			fmt.Fprintln(out, box)
			return nil
		}

		// environment overrides apply to this run only and are not persisted
		cfg, err := config.ReadFile(path)
		if err != nil {
			return err
		}
		if configureNoHeaders {
			cfg.Headers = map[string]string{}
		}
		if err := applyFlags(&cfg, flags); err != nil {
			return err
		}
		if configureLogLevel != "" {
			cfg.LogLevel = configureLogLevel
		}
		if configureLogFormat != "" {
			cfg.LogFormat = configureLogFormat
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := config.SaveTo(path, cfg); err != nil {
			return apperrors.Wrap(apperrors.StorageFailed, "save config", err)
		}
		fmt.Fprintf(out, "✅ Settings saved to %s\n", path)
		if cfg.AuthURL == "" {
			fmt.Fprintln(out, "   No auth URL set yet. Add one with --auth-url.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().BoolVar(&configureShow, "show", false, "Print the effective settings instead of saving them")
	configureCmd.Flags().StringVar(&configureLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error or off")
	configureCmd.Flags().StringVar(&configureLogFormat, "log-format", "", "Log format: console or json")
	configureCmd.Flags().BoolVar(&configureNoHeaders, "reset-headers", false, "Drop stored headers, keeping only those given with --header")
}

// redactHeaders hides credential-bearing header values for display.
func redactHeaders(cfg config.Config) config.Config {
	out := cfg
	out.Headers = make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		switch http.CanonicalHeaderKey(k) {
		case "Authorization", "Cookie", "X-Api-Key":
			out.Headers[k] = "***"
		default:
			out.Headers[k] = v
		}
	}
	return out
}
