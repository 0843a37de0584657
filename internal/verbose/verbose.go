// Package verbose writes prefixed diagnostic lines to an optional writer.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

const prefix = "[verbose]"

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

// Style selects how a line is highlighted.
type Style int

const (
	StyleDefault Style = iota
	StyleEvent
	StyleMetrics
	StyleError
)

// Logger serializes verbose lines. A nil Logger discards everything.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	palette palette
}

// New returns a Logger for w, or nil when w is nil.
func New(w io.Writer, noColor bool) *Logger {
	if w == nil {
		return nil
	}
	return &Logger{w: w, palette: paletteFor(w, noColor)}
}

// Logf writes one formatted line.
func (l *Logger) Logf(style Style, format string, args ...any) {
	if l == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s\n", l.palette.prefix(prefix), l.palette.apply(style, line))
}

type palette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) palette {
	if noColor {
		return palette{}
	}
	return palette{enabled: ShouldUseStyling(writer)}
}

// ShouldUseStyling reports whether ANSI styling suits writer.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return IsTerminal(writer)
}

// IsTerminal reports whether writer is a TTY.
func IsTerminal(writer io.Writer) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p palette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p palette) apply(style Style, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case StyleEvent:
		return ansiBold + ansiBlue + text + ansiReset
	case StyleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case StyleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
