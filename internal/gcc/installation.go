// Package gcc describes a companion GCC cross toolchain the driver borrows
// headers, libraries and binutils from.
package gcc

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Multilib is the ABI variant selected inside an installation.
type Multilib struct {
	// GCCSuffix is appended to GCC-owned library directories, e.g. "/32".
	GCCSuffix string
	// OSSuffix is appended to OS library directories, e.g. "/../lib32".
	OSSuffix string
	// IncludeSuffix is appended to the libstdc++ triple include directory.
	IncludeSuffix string
}

// Version is a GCC version as found on disk.
type Version struct {
	Text     string
	Major    int
	Minor    int
	Patch    int
	MajorStr string
	MinorStr string
}

// ParseVersion interprets a GCC version directory name. Unparseable
// components are left at -1 while Text always keeps the input.
func ParseVersion(text string) Version {
	v := Version{Text: text, Major: -1, Minor: -1, Patch: -1}
	if sv, err := semver.NewVersion(text); err == nil && strings.Count(text, ".") >= 1 {
		v.Major = int(sv.Major())
		v.Minor = int(sv.Minor())
		v.Patch = int(sv.Patch())
	} else {
		parts := strings.SplitN(text, ".", 3)
		for i, p := range parts {
			n, ok := leadingInt(p)
			if !ok {
				break
			}
			switch i {
			case 0:
				v.Major = n
			case 1:
				v.Minor = n
			case 2:
				v.Patch = n
			}
		}
	}
	if v.Major >= 0 {
		v.MajorStr = strconv.Itoa(v.Major)
	}
	if v.Minor >= 0 {
		v.MinorStr = strconv.Itoa(v.Minor)
	}
	return v
}

func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Installation is the report produced by a Scanner. A zero Installation
// means no companion toolchain was found.
type Installation struct {
	Valid bool
	// ParentLibPath is the lib directory that holds gcc/<triple>/<version>.
	ParentLibPath string
	// Triple is the companion toolchain's own triple, e.g. "x86_64-pc-elf".
	Triple   string
	Version  Version
	Multilib Multilib
}

// IsValid reports whether a companion toolchain was detected.
func (i Installation) IsValid() bool { return i.Valid }

// InstallPath returns <parent-lib>/gcc/<triple>/<version>, or "" when the
// installation is invalid.
func (i Installation) InstallPath() string {
	if !i.IsValid() {
		return ""
	}
	return i.ParentLibPath + "/gcc/" + i.Triple + "/" + i.Version.Text
}
