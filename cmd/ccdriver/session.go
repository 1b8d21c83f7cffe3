package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ccdriver/internal/diag"
	"ccdriver/internal/driver"
	"ccdriver/internal/gcc"
	"ccdriver/internal/observ"
	"ccdriver/internal/options"
	"ccdriver/internal/toolchain/genode"
	"ccdriver/internal/trace"
	"ccdriver/internal/triple"
)

// session is the driver and descriptor one command works with.
type session struct {
	settings settings
	driver   *driver.Driver
	tc       *genode.Toolchain
	bag      *diag.Bag
	quiet    bool
	// short selects the one-line diagnostic layout.
	short         bool
	fatalWarnings bool
	timer         *observ.Timer
}

// errDiagnostics reports that errors were printed as diagnostics.
var errDiagnostics = errors.New("errors reported")

func newSession(cmd *cobra.Command) (*session, error) {
	timer := observ.NewTimer()
	configured := timer.Start("configure")
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	configured(s.ConfigPath)
	pf := cmd.Root().PersistentFlags()
	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := pf.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	diagFormat, err := pf.GetString("diag-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	if diagFormat != "pretty" && diagFormat != "short" {
		return nil, fmt.Errorf("unsupported --diag-format %q (must be pretty or short)", diagFormat)
	}
	fatalWarnings, err := pf.GetBool("fatal-warnings")
	if err != nil {
		return nil, fmt.Errorf("failed to get fatal-warnings flag: %w", err)
	}

	dir := s.DriverDir
	if dir == "" {
		dir = executableDir()
	}
	bag := diag.NewBag(maxDiagnostics)
	d := driver.New(dir)
	if s.ResourceDir != "" {
		d.ResourceDir = s.ResourceDir
	}
	d.SysRoot = s.SysRoot
	d.Reporter = diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	d.Tracer = trace.FromContext(cmd.Context())

	sess := &session{
		settings:      s,
		driver:        d,
		bag:           bag,
		quiet:         quiet,
		short:         diagFormat == "short",
		fatalWarnings: fatalWarnings,
		timer:         timer,
	}

	target, err := triple.Parse(s.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid --target: %w", err)
	}
	variant, err := genode.ParseVariant(s.Variant)
	if err != nil {
		diag.ReportError(d.Reporter, diag.TcUnsupportedVariant, s.Variant, err.Error())
		sess.flush(cmd)
		return nil, errDiagnostics
	}

	var scanner gcc.Scanner = gcc.NopScanner{}
	if c := s.Companion; c.Root != "" {
		scanner = gcc.ConfiguredScanner{
			FS:            d.FS,
			ParentLibPath: c.Root,
			Triple:        c.Triple,
			Version:       c.Version,
			Multilib: gcc.Multilib{
				GCCSuffix:     c.GCCSuffix,
				OSSuffix:      c.OSSuffix,
				IncludeSuffix: c.IncludeSuffix,
			},
		}
	}

	constructed := timer.Start("toolchain")
	tc, err := genode.New(d, target, genode.Config{
		Variant: variant,
		BuildID: s.BuildID,
		Scanner: scanner,
		Linker:  s.Linker,
	})
	if err != nil {
		return nil, err
	}
	sess.tc = tc
	constructed(target.String())

	if inst := tc.Installation(); !inst.IsValid() && len(tc.Candidates()) > 0 {
		msg := "no companion GCC found for " + target.String() + " (tried " + strings.Join(tc.Candidates(), ", ") + ")"
		if s.Companion.Root != "" {
			msg += " under " + s.Companion.Root
		}
		diag.ReportWarning(d.Reporter, diag.TcNoCompanion, "", msg)
	}
	return sess, nil
}

// parseArgs parses compiler arguments, turning a dangling option into a
// diagnostic.
func (s *session) parseArgs(argv []string) (*options.ArgList, error) {
	args, err := options.Parse(argv)
	if err != nil {
		var missing *options.MissingValueError
		if errors.As(err, &missing) {
			msg := "argument to '" + missing.Option + "' is missing (expected 1 value)"
			if help := missing.Help(); help != "" {
				msg += ": " + help
			}
			diag.ReportError(s.driver.Reporter, diag.DrvMissingArgValue, missing.Option, msg)
			return nil, errDiagnostics
		}
		return nil, err
	}
	return args, nil
}

// flush prints collected diagnostics, errors first, and reports whether
// the invocation must fail.
func (s *session) flush(cmd *cobra.Command) bool {
	s.bag.Sort()
	items := s.bag.Items()
	if s.quiet {
		kept := items[:0:0]
		for _, d := range items {
			if d.Severity == diag.SevError {
				kept = append(kept, d)
			}
		}
		items = kept
	}
	if s.short {
		if len(items) > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShort(items, true))
		}
	} else {
		printDiagnostics(cmd.ErrOrStderr(), items)
	}
	if s.fatalWarnings {
		return s.bag.HasWarnings()
	}
	return s.bag.HasErrors()
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// missingPrograms reports tools of cmds that were not found anywhere.
func (s *session) missingPrograms(cmds []*driver.Command) {
	seen := make(map[string]bool)
	for _, cmd := range cmds {
		exe := cmd.Executable
		if seen[exe] || filepath.IsAbs(exe) {
			continue
		}
		seen[exe] = true
		diag.ReportWarning(s.driver.Reporter, diag.TcMissingProgram, exe,
			"'"+exe+"' was not found in the program paths or PATH")
	}
}
