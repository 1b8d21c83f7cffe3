package driver

import "strings"

// ResponseFileSupport tells the runner whether a command may move its
// arguments into an @file.
type ResponseFileSupport uint8

const (
	ResponseNone ResponseFileSupport = iota
	ResponseGCC
)

// Command is one external process invocation queued by a job builder.
type Command struct {
	// Creator names the tool that built the command, e.g. "genode::Linker".
	Creator    string
	Kind       ActionKind
	Executable string
	Arguments  []string
	Inputs     []InputInfo
	Output     InputInfo
	Response   ResponseFileSupport
}

// Argv returns the executable followed by its arguments.
func (c *Command) Argv() []string {
	argv := make([]string, 0, len(c.Arguments)+1)
	argv = append(argv, c.Executable)
	return append(argv, c.Arguments...)
}

// InputFilenames lists file inputs for dependency tracking.
func (c *Command) InputFilenames() []string {
	var out []string
	for _, in := range c.Inputs {
		if in.IsFilename() {
			out = append(out, in.Filename())
		}
	}
	return out
}

// String renders the command as a shell line.
func (c *Command) String() string {
	argv := c.Argv()
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}

// Quote quotes s for a POSIX shell when it contains special characters.
func Quote(s string) string {
	if s == "" {
		return `''`
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$`*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
