package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/jmagar/giphy-launchbar/internal/model"
)

// Stderr receives all diagnostics; stdout is reserved for the item list.
var Stderr io.Writer = os.Stderr

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintf(Stderr, "%s%s%s %s\n", ColorGreen, SymbolCheck, ColorReset, msg)
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintf(Stderr, "%s%s%s %s\n", ColorRed, SymbolCross, ColorReset, msg)
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	fmt.Fprintf(Stderr, "%s%s%s %s\n", ColorBlue, SymbolInfo, ColorReset, msg)
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Fprintf(Stderr, "%s%s%s %s\n", ColorYellow, SymbolWarning, ColorReset, msg)
}

// EmitItems writes items as a JSON array. A nil slice is written as [] so
// the launcher always receives a list.
func EmitItems(w io.Writer, items []model.ListItem, pretty bool) error {
	if items == nil {
		items = []model.ListItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	return nil
}

// StdoutIsTerminal reports whether output goes to a person rather than the launcher.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
