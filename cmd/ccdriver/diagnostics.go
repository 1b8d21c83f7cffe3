package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"ccdriver/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.FgHiBlack)
)

// printDiagnostics writes one line per diagnostic in the clang layout:
//
//	ccdriver: warning: argument unused during compilation: '-mtune=generic' [DRV1001]
func printDiagnostics(w io.Writer, items []diag.Diagnostic) {
	for _, d := range items {
		var sev string
		switch d.Severity {
		case diag.SevError:
			sev = errorColor.Sprint("error:")
		case diag.SevWarning:
			sev = warningColor.Sprint("warning:")
		default:
			sev = infoColor.Sprint("note:")
		}
		fmt.Fprintf(w, "ccdriver: %s %s [%s]\n", sev, strings.Join(strings.Fields(d.Message), " "), d.Code.ID())
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", noteColor.Sprint("note:"), n)
		}
	}
}

func resolveColor(mode string, out *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return isTerminal(out), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
