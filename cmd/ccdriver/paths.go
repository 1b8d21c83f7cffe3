package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ccdriver/internal/options"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the companion toolchain and the library and program search paths",
	Args:  cobra.NoArgs,
	RunE:  pathsExecution,
}

func init() {
	pathsCmd.Flags().String("format", "text", "output format (text|json)")
}

type pathsPayload struct {
	Target       string            `json:"target"`
	Variant      string            `json:"variant"`
	Candidates   []string          `json:"candidates"`
	Companion    string            `json:"companion,omitempty"`
	LibraryPaths []string          `json:"library_paths"`
	ProgramPaths []string          `json:"program_paths"`
	Tools        map[string]string `json:"tools"`
}

func pathsExecution(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}
	return runWithSession(cmd, func(sess *session) error {
		tc := sess.tc
		p := pathsPayload{
			Target:       tc.TripleString(),
			Variant:      tc.Variant().String(),
			Candidates:   tc.Candidates(),
			LibraryPaths: tc.FilePaths(),
			ProgramPaths: tc.ProgramPaths(),
			Tools: map[string]string{
				"as": tc.GetProgramPath("as"),
				"ld": tc.GetLinkerPath(options.MustParse()),
			},
		}
		if inst := tc.Installation(); inst.IsValid() {
			p.Companion = inst.InstallPath()
		}
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}
		renderPaths(cmd.OutOrStdout(), p)
		return nil
	})
}

func renderPaths(out io.Writer, p pathsPayload) {
	fmt.Fprintf(out, "target:     %s (%s)\n", p.Target, p.Variant)
	fmt.Fprintf(out, "candidates: %s\n", valueOrNone(strings.Join(p.Candidates, ", ")))
	fmt.Fprintf(out, "companion:  %s\n", valueOrNone(p.Companion))
	fmt.Fprintln(out, "library paths:")
	for _, path := range p.LibraryPaths {
		fmt.Fprintf(out, "  %s\n", path)
	}
	fmt.Fprintln(out, "program paths:")
	for _, path := range p.ProgramPaths {
		fmt.Fprintf(out, "  %s\n", path)
	}
	fmt.Fprintln(out, "tools:")
	for _, name := range []string{"as", "ld"} {
		fmt.Fprintf(out, "  %s: %s\n", name, p.Tools[name])
	}
}

func valueOrNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
