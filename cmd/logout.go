// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	apperrors "checkauth/cli/internal/errors"
	"checkauth/cli/internal/keychain"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for clearing the stored token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved bearer token",
	Long: `The logout command removes the bearer token from the OS keychain. Settings
written by 'checkauth configure' are kept. Running it without a stored token is
not an error.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return apperrors.Wrap(apperrors.StorageFailed, "open keychain", err)
		}
		if err := km.ClearToken(); err != nil {
			return apperrors.Wrap(apperrors.StorageFailed, "remove token", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Saved token has been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
