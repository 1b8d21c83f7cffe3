package driver

import (
	"os"
	"path/filepath"

	"ccdriver/internal/diag"
	"ccdriver/internal/trace"
	"ccdriver/internal/vfs"
)

// Driver carries the host facts a toolchain needs: where the driver is
// installed, which sysroot applies and how to probe the filesystem.
type Driver struct {
	// Dir is the directory holding the driver binary; sibling tools are
	// searched here first.
	Dir string
	// ResourceDir holds compiler-provided headers and runtime libraries.
	ResourceDir string
	SysRoot     string
	FS          *vfs.FS
	// Path is the PATH list used after the toolchain's program paths.
	Path     []string
	Reporter diag.Reporter
	Tracer   trace.Tracer
}

// New returns a Driver for the host, installed in dir.
func New(dir string) *Driver {
	d := &Driver{
		Dir:      dir,
		FS:       vfs.OS(),
		Path:     filepath.SplitList(os.Getenv("PATH")),
		Reporter: diag.NopReporter{},
		Tracer:   trace.Nop,
	}
	if dir != "" {
		d.ResourceDir = filepath.Join(dir, "..", "lib", "clang")
	}
	return d
}

// Report forwards a diagnostic to the configured reporter.
func (d *Driver) Report(code diag.Code, sev diag.Severity, arg, msg string) {
	if d == nil || d.Reporter == nil {
		return
	}
	d.Reporter.Report(code, sev, arg, msg)
}

// Trace returns the configured tracer or trace.Nop.
func (d *Driver) Trace() trace.Tracer {
	if d == nil || d.Tracer == nil {
		return trace.Nop
	}
	return d.Tracer
}
