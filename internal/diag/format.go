package diag

import (
	"strings"
)

// FormatShort renders diagnostics one per line:
//
//	warning DRV1001 '-mtune=generic' argument unused during compilation
//
// Multi-line messages are folded onto one line.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.ToLower(d.Severity.String()))
		b.WriteByte(' ')
		b.WriteString(d.Code.ID())
		if d.Arg != "" {
			b.WriteString(" '")
			b.WriteString(d.Arg)
			b.WriteByte('\'')
		}
		b.WriteByte(' ')
		b.WriteString(flatten(d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				b.WriteString("\nnote ")
				b.WriteString(d.Code.ID())
				b.WriteByte(' ')
				b.WriteString(flatten(n))
			}
		}
	}
	return b.String()
}

func flatten(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
