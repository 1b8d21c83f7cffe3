package gcc

import (
	"ccdriver/internal/triple"
	"ccdriver/internal/vfs"
)

// Scanner locates a companion toolchain for a target. Candidates are the
// companion triples worth probing, most preferred first; an empty list is
// allowed and usually yields an invalid report.
type Scanner interface {
	Scan(target triple.Triple, candidates []string) Installation
}

// ScannerFunc adapts a function to Scanner.
type ScannerFunc func(target triple.Triple, candidates []string) Installation

// Scan calls f.
func (f ScannerFunc) Scan(target triple.Triple, candidates []string) Installation {
	return f(target, candidates)
}

// NopScanner never finds anything.
type NopScanner struct{}

// Scan returns an invalid installation.
func (NopScanner) Scan(triple.Triple, []string) Installation { return Installation{} }

// ConfiguredScanner accepts an installation declared in configuration
// after checking that its version directory exists. It does not search.
type ConfiguredScanner struct {
	FS *vfs.FS
	// ParentLibPath is the declared <prefix>/lib directory.
	ParentLibPath string
	// Triple pins the companion triple; when empty the candidates are tried
	// in order.
	Triple   string
	Version  string
	Multilib Multilib
}

// Scan returns a valid installation for the first triple whose
// <parent-lib>/gcc/<triple>/<version> directory exists.
func (s ConfiguredScanner) Scan(_ triple.Triple, candidates []string) Installation {
	if s.ParentLibPath == "" || s.Version == "" {
		return Installation{}
	}
	triples := candidates
	if s.Triple != "" {
		triples = []string{s.Triple}
	}
	for _, tr := range triples {
		inst := Installation{
			Valid:         true,
			ParentLibPath: s.ParentLibPath,
			Triple:        tr,
			Version:       ParseVersion(s.Version),
			Multilib:      s.Multilib,
		}
		if s.FS.IsDir(inst.InstallPath()) {
			return inst
		}
	}
	return Installation{}
}
