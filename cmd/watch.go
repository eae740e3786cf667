// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	apperrors "checkauth/cli/internal/errors"
	"checkauth/cli/internal/logger"
	"checkauth/cli/internal/logging"
	"checkauth/cli/internal/session"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration
)

// watchCmd keeps a live view of the session. Every state the store publishes
// is rendered in place; pressing Enter triggers the published refresh action.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live view of the session and refresh it on demand",
	Long: `The watch command checks the session once and then keeps the result on screen.
Press Enter to check again, or type q and press Enter to quit. With --interval
the session is also checked periodically.

A token saved with 'checkauth login' while watch is running is picked up by the
next check.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ctl := newController(settings, logger.Get())
		store := ctl.Store()

		cursor.Hide()
		area, err := pterm.DefaultArea.Start()
		if err != nil {
			cursor.Show()
			return err
		}

		unsubscribe := store.Subscribe(func(v session.Value) {
			area.Update(renderWatch(settings.AuthURL, v.State))
		})
		defer func() {
			unsubscribe()
			ctl.Wait()
			_ = area.Stop()
			cursor.Show()
		}()

		if err := ctl.Start(ctx); err != nil {
			if apperrors.Is(err, apperrors.PreconditionFailed) {
				area.Update("⚠️  No auth endpoint configured.\n   Run: checkauth configure --auth-url https://example.com/api/me")
				return errReported
			}
			return err
		}

		lines := readLines(ctx, os.Stdin)

		var tick <-chan time.Time
		if watchInterval > 0 {
			ticker := time.NewTicker(watchInterval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok || strings.EqualFold(line, "q") {
					return nil
				}
				store.Read().RefreshAuth()
			case <-tick:
				store.Read().RefreshAuth()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Also refresh the session periodically (e.g. 30s)")
}

// readLines forwards trimmed lines from r until r fails or ctx is done.
// The channel is closed when reading stops.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			select {
			case lines <- strings.TrimSpace(line):
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// renderWatch renders the live view for st.
func renderWatch(authURL string, st session.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", pterm.FgGray.Sprint(logging.Mask(authURL)))
	fmt.Fprintf(&b, "%s\n\n", statusLine(st))
	b.WriteString(pterm.FgGray.Sprint("Enter: refresh   q+Enter: quit"))
	return b.String()
}
