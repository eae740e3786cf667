// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"checkauth/cli/internal/backend"
	apperrors "checkauth/cli/internal/errors"
	"checkauth/cli/internal/keychain"
	"checkauth/cli/internal/logger"
	"checkauth/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var (
	loginSkipVerify bool
)

// loginCmd stores a bearer token in the OS keychain and verifies it against
// the configured auth endpoint.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Store a bearer token in the OS keychain",
	Long: `The login command prompts for a bearer token and stores it in the OS keychain.
Every following session check sends it as an Authorization header, unless an
Authorization header is given explicitly with --header.

The token may be entered bare or as "Bearer <token>". When stdin is not a
terminal the token is read from the first input line, so it can be piped in.
If an auth endpoint is configured, the token is verified right away.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		prompt := "Paste your bearer token: "
		raw, err := terminal.ReadSecret(out, os.Stdin, prompt)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		terminal.ClearPreviousLines(out, len(prompt))

		token := backend.NormalizeToken(raw)
		if token == "" {
			return errors.New("token is required")
		}

		km, err := keychain.GetManager()
		if err != nil {
			return apperrors.Wrap(apperrors.StorageFailed, "open keychain", err)
		}
		if err := km.SaveToken(token); err != nil {
			return apperrors.Wrap(apperrors.StorageFailed, "save token", err)
		}

		if loginSkipVerify || settings.AuthURL == "" {
			fmt.Fprintln(out, "✅ Token saved to the OS keychain")
			return nil
		}

		ctl := newController(settings, logger.Get())
		spinWhile("Verifying token", func() {
			_ = ctl.Start(cmd.Context())
		})
		st := ctl.Store().Read().State
		if st.Error != nil {
			fmt.Fprintln(out, "⚠️  Token saved, but the session check failed:")
			showFailure(out, settings.AuthURL, st.Error)
			return errReported
		}
		fmt.Fprintln(out, getRandomLoginGreeting(identityOf(st.UserInfo)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().BoolVar(&loginSkipVerify, "no-verify", false, "Save the token without checking it against the auth endpoint")
}

// getRandomLoginGreeting returns a random greeting phrase with the user's identifier
func getRandomLoginGreeting(identifier string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"💫 Successfully authenticated as %s",
		"🌟 Welcome aboard, %s!",
		"⚡ Logged in as %s - let's go!",
		"✅ Authentication complete! Hi %s!",
		"🎯 You're in, %s!",
		"🔓 Access granted! Welcome %s!",
	}

	idx := rand.Intn(len(greetings))
	return fmt.Sprintf(greetings[idx], identifier)
}
