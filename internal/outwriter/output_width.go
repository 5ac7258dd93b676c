package outwriter

import (
	"os"

	"github.com/huangsam/commitstreak/internal/contract"
	"golang.org/x/term"
)

// Progress bar bounds in cells.
const (
	minBarWidth = 10
	maxBarWidth = 50
)

// GetProgressBarWidth calculates the width of the progress bar in text output
// based on terminal width.
func GetProgressBarWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the "Progress" label, brackets and percentage
	available := termWidth - 30
	if available < minBarWidth {
		return minBarWidth
	}
	if available > maxBarWidth {
		return maxBarWidth
	}
	return available
}
