// Package terminal provides utilities for terminal operations such as clearing
// prompts and reading secrets.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// LinesUsed returns how many terminal rows textLength characters occupy at
// the given width. A non-positive width is treated as 80 columns.
func LinesUsed(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		lines = 1 // At minimum, we have 1 line
	}
	return lines
}

// ClearPreviousLines clears text from the terminal that was previously printed.
// It calculates how many lines were used by the provided text based on the current
// terminal width, then moves up and clears each line. One extra line is cleared
// for the newline produced when the user pressed Enter.
func ClearPreviousLines(w io.Writer, textLength int) {
	width := 0
	if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = cols
	}
	linesToClear := LinesUsed(textLength, width) + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Fprint(w, "\r\x1b[2K") // Move to start and clear entire line
		if i < linesToClear-1 {
			fmt.Fprint(w, "\x1b[1A") // Move up one line (don't move up on last iteration)
		}
	}
}

// ReadSecret prints prompt to w and reads one line from in. Input is not
// echoed when in is a terminal; otherwise a line is read as-is so that
// secrets can be piped in.
func ReadSecret(w io.Writer, in *os.File, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	if term.IsTerminal(int(in.Fd())) {
		b, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return ReadLine(in)
}

// ReadLine reads a single line from r without the trailing newline.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
