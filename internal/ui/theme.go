package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes. They are blanked when stderr is not a terminal, which is
// the normal case when the launcher runs the action.
var (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[91m"
	ColorGreen  = "\033[92m"
	ColorYellow = "\033[93m"
	ColorBlue   = "\033[94m"
	ColorCyan   = "\033[96m"
)

// Unicode symbols
var (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolInfo    = "ℹ"
	SymbolWarning = "⚠"
)

func init() {
	InitColorPalette(term.IsTerminal(int(os.Stderr.Fd())))
}

// InitColorPalette enables colors for a terminal and disables them otherwise.
// NO_COLOR always disables them.
func InitColorPalette(isTerminal bool) {
	if !isTerminal || os.Getenv("NO_COLOR") != "" {
		ColorReset, ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorCyan = "", "", "", "", "", ""
		return
	}
	if SupportsTruecolor() {
		ColorRed = "\033[1;38;2;224;108;117m"
		ColorGreen = "\033[1;38;2;152;195;121m"
		ColorYellow = "\033[1;38;2;229;192;123m"
		ColorBlue = "\033[1;38;2;143;188;255m"
		ColorCyan = "\033[1;38;2;136;220;255m"
	}
}

// SupportsTruecolor checks if the terminal supports 24-bit color.
func SupportsTruecolor() bool {
	termName := strings.ToLower(os.Getenv("TERM"))
	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	return strings.Contains(colorTerm, "truecolor") ||
		strings.Contains(colorTerm, "24bit") ||
		strings.Contains(termName, "truecolor") ||
		strings.Contains(termName, "24bit")
}
