package terminal

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesUsed(t *testing.T) {
	assert.Equal(t, 1, LinesUsed(0, 80))
	assert.Equal(t, 1, LinesUsed(80, 80))
	assert.Equal(t, 2, LinesUsed(81, 80))
	assert.Equal(t, 3, LinesUsed(100, 40))
	assert.Equal(t, 2, LinesUsed(100, 0))
}

func TestClearPreviousLines(t *testing.T) {
	var buf bytes.Buffer
	ClearPreviousLines(&buf, 10)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "\x1b[2K"))
	assert.Equal(t, 1, strings.Count(out, "\x1b[1A"))
}

func TestReadLine(t *testing.T) {
	line, err := ReadLine(strings.NewReader("  secret-token \nrest"))
	require.NoError(t, err)
	assert.Equal(t, "secret-token", line)

	line, err = ReadLine(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", line)

	_, err = ReadLine(strings.NewReader(""))
	assert.ErrorIs(t, err, io.EOF)
}
