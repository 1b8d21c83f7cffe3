// Package triple parses and classifies target triples of the form
// <arch>-<vendor>-<os>[-<env>].
package triple

import (
	"fmt"
	"strings"
)

// Arch identifies the target architecture.
type Arch uint8

const (
	// UnknownArch is any architecture without dedicated handling.
	UnknownArch Arch = iota
	ARM
	AArch64
	X86
	X86_64
	RISCV64
)

// String returns the canonical architecture name.
func (a Arch) String() string {
	switch a {
	case ARM:
		return "arm"
	case AArch64:
		return "aarch64"
	case X86:
		return "x86"
	case X86_64:
		return "x86_64"
	case RISCV64:
		return "riscv64"
	default:
		return "unknown"
	}
}

// Triple is an immutable target identifier.
type Triple struct {
	raw      string
	arch     Arch
	archName string
	vendor   string
	os       string
	env      string
}

// Parse splits a triple string into its components. Missing trailing
// components are reported as "unknown"; the arch component is mandatory.
func Parse(s string) (Triple, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Triple{}, fmt.Errorf("empty target triple")
	}
	parts := strings.SplitN(s, "-", 4)
	if parts[0] == "" {
		return Triple{}, fmt.Errorf("target triple %q has no architecture", s)
	}
	t := Triple{
		raw:      s,
		archName: parts[0],
		arch:     parseArch(parts[0]),
		vendor:   "unknown",
		os:       "unknown",
	}
	if len(parts) > 1 && parts[1] != "" {
		t.vendor = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		t.os = parts[2]
	}
	if len(parts) > 3 {
		t.env = parts[3]
	}
	return t, nil
}

// MustParse is Parse for literals known to be well formed.
func MustParse(s string) Triple {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseArch(name string) Arch {
	switch strings.ToLower(name) {
	case "i386", "i486", "i586", "i686", "x86":
		return X86
	case "x86_64", "amd64":
		return X86_64
	case "aarch64", "arm64":
		return AArch64
	case "riscv64":
		return RISCV64
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "armv") || strings.HasPrefix(lower, "thumbv") || lower == "arm" || lower == "thumb" {
		// armeb and thumbeb stay unknown
		return ARM
	}
	return UnknownArch
}

// String returns the triple as it was written.
func (t Triple) String() string { return t.raw }

// Arch returns the classified architecture.
func (t Triple) Arch() Arch { return t.arch }

// ArchName returns the architecture component as written.
func (t Triple) ArchName() string { return t.archName }

// Vendor returns the vendor component.
func (t Triple) Vendor() string { return t.vendor }

// OS returns the operating system component.
func (t Triple) OS() string { return t.os }

// Environment returns the environment component, possibly empty.
func (t Triple) Environment() string { return t.env }

// IsZero reports whether t was never parsed.
func (t Triple) IsZero() bool { return t.raw == "" }

// IsX86 reports whether the architecture is x86 or x86_64.
func (t Triple) IsX86() bool {
	return t.arch == X86 || t.arch == X86_64
}

// Is64Bit reports whether pointers are 64 bits wide on the target.
func (t Triple) Is64Bit() bool {
	switch t.arch {
	case AArch64, X86_64, RISCV64:
		return true
	default:
		return false
	}
}

// IsLittleEndian reports whether the target stores words little-endian.
// Big-endian spellings never parse to a known architecture.
func (t Triple) IsLittleEndian() bool { return t.arch != UnknownArch }
