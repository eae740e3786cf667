package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	apperrors "checkauth/cli/internal/errors"
	"checkauth/cli/internal/httperrors"
	"checkauth/cli/internal/logging"
	"checkauth/cli/internal/session"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal. The spinner runs in a separate goroutine and
// can be stopped by calling the returned function, which clears the line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

// spinWhile shows a spinner on stderr while fn runs, when stderr is a terminal.
func spinWhile(text string, fn func()) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		fn()
		return
	}
	stop := startInlineSpinner(os.Stderr, text, spinnerFrames, 120*time.Millisecond)
	defer stop()
	fn()
}

// identityOf picks a human-readable identifier from user info.
// It tries email, username, user_id and id in that order.
func identityOf(userInfo any) string {
	if m, ok := userInfo.(map[string]any); ok {
		for _, key := range []string{"email", "username", "user_id", "id"} {
			switch v := m[key].(type) {
			case string:
				if v != "" {
					return v
				}
			case float64:
				return fmt.Sprintf("%.0f", v)
			}
		}
	}
	b, err := json.Marshal(userInfo)
	if err != nil {
		return fmt.Sprint(userInfo)
	}
	return string(b)
}

// statusLine renders a one-line summary of st.
func statusLine(st session.State) string {
	switch {
	case st.IsLoading:
		return "⏳ Checking session..."
	case st.Error != nil:
		if st.Error.Status != 0 {
			return fmt.Sprintf("❌ %s (HTTP %d): %s", st.Error.Name, st.Error.Status, logging.Mask(st.Error.Message))
		}
		return fmt.Sprintf("❌ %s: %s", st.Error.Name, logging.Mask(st.Error.Message))
	case st.Authenticated():
		return getMePhrase(identityOf(st.UserInfo))
	default:
		return "🔒 Session not checked yet"
	}
}

// showNotLoggedIn prints the hint shown when the endpoint rejects the session.
func showNotLoggedIn(w io.Writer) {
	fmt.Fprintln(w, "🔒 You're not logged in yet!")
	fmt.Fprintln(w, "   Run 'checkauth login' to store a token.")
}

// showFailure explains a settled error to the user.
func showFailure(w io.Writer, authURL string, info *session.ErrorInfo) {
	host := httperrors.ExtractHostFromURL(authURL)
	switch apperrors.Kind(info.Name) {
	case apperrors.TransportFailed:
		err, ok := info.Raw.(error)
		if !ok {
			err = info
		}
		httperrors.ShowNetworkError(w, err, "checking your session", host)
	case apperrors.RejectedStatus:
		if info.Status == 401 || info.Status == 403 {
			showNotLoggedIn(w)
			return
		}
		fmt.Fprint(w, pterm.Error.Sprintf("%s responded with HTTP %d: %s\n", host, info.Status, logging.Mask(info.Message)))
		httperrors.ShowStatusHint(w, info.Status, host)
	default:
		fmt.Fprint(w, pterm.Error.Sprintln(logging.PresentError(fmt.Sprintf("Unexpected response from %s", host), info)))
	}
}
