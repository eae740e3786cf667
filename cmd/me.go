// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"

	apperrors "checkauth/cli/internal/errors"
	"checkauth/cli/internal/logger"

	"github.com/spf13/cobra"
)

var (
	meJSON bool
)

// meCmd represents the me command for displaying the current session.
// It runs a single fetch cycle against the auth endpoint and reports the
// settled state.
var meCmd = &cobra.Command{
	Use:     "me",
	Aliases: []string{"whoami"},
	Short:   "Show current authenticated account",
	Long: `The me command requests the configured auth endpoint once and displays the
account it reports. With --json the raw user information is printed instead.

If the endpoint rejects the session, the command explains why and exits with a
non-zero status, which makes it usable in scripts.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		out := cmd.OutOrStdout()
		ctl := newController(settings, log)

		var startErr error
		spinWhile("Checking session", func() {
			startErr = ctl.Start(cmd.Context())
		})
		if startErr != nil {
			if apperrors.Is(startErr, apperrors.PreconditionFailed) {
				fmt.Fprintln(out, "⚠️  No auth endpoint configured.")
				fmt.Fprintln(out, "   Run: checkauth configure --auth-url https://example.com/api/me")
				return errReported
			}
			return startErr
		}

		st := ctl.Store().Read().State
		if st.Error != nil {
			showFailure(out, settings.AuthURL, st.Error)
			return errReported
		}

		if meJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(st.UserInfo)
		}
		fmt.Fprintln(out, getMePhrase(identityOf(st.UserInfo)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
	meCmd.Flags().BoolVar(&meJSON, "json", false, "Print the raw user information as JSON")
}

// getMePhrase returns a friendly phrase with the user's identifier
func getMePhrase(identifier string) string {
	return fmt.Sprintf("👤 Current user: %s", identifier)
}
