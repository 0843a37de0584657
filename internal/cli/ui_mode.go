package cli

import (
	"fmt"
	"io"
	"strings"

	"qm/internal/verbose"
)

// UI modes accepted by play and the config file.
const (
	uiModeAuto  = "auto"
	uiModeLive  = "live"
	uiModePlain = "plain"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = verbose.IsTerminal

// resolveUIMode determines whether to drive the session with the live UI.
// Verbose logging shares the terminal, so it always selects plain output.
func resolveUIMode(mode string, verboseEnabled bool, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = uiModeAuto
	}
	switch normalized {
	case uiModeAuto, uiModeLive, uiModePlain:
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
	if verboseEnabled || normalized == uiModePlain {
		return uiModeDecision{useLive: false}, nil
	}
	tty := isTerminal(stdout)
	if normalized == uiModeLive && !tty {
		return uiModeDecision{
			useLive: false,
			warning: "Live UI requested but stdout is not a TTY; falling back to plain prompts.",
		}, nil
	}
	return uiModeDecision{useLive: tty}, nil
}
