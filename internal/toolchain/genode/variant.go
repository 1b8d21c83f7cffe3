package genode

import (
	"fmt"
	"strings"

	"ccdriver/internal/driver"
	"ccdriver/internal/toolchain"
)

// Variant selects one of the Genode default sets.
type Variant uint8

const (
	// Classic uses the GNU linker and an external assembler.
	Classic Variant = iota + 1
	// LLD uses ld.lld, the integrated assembler and compiler-rt, and adds
	// the system include hook.
	LLD
)

func (v Variant) String() string {
	switch v {
	case Classic:
		return "classic"
	case LLD:
		return "lld"
	default:
		return "unknown"
	}
}

// ParseVariant accepts "classic" and "lld"; "" means Classic.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "", "classic":
		return Classic, nil
	case "lld":
		return LLD, nil
	default:
		return 0, fmt.Errorf("unknown genode variant %q (expected: classic|lld)", s)
	}
}

// family binds a policy to the tool factories of one variant.
type family struct {
	policy       toolchain.Policy
	newAssembler func(*Toolchain) driver.Tool
	newLinker    func(*Toolchain) driver.Tool
}

var families = map[Variant]family{
	Classic: {
		policy: toolchain.Policy{
			Name:                "genode/classic",
			UnwindTablesDefault: true,
			DefaultLinker:       "ld",
			DefaultCXXStdlib:    toolchain.Libstdcxx,
			DefaultRuntimeLib:   toolchain.RuntimeLibgcc,
		},
		newAssembler: newAssembler,
		newLinker:    newLinker,
	},
	LLD: {
		policy: toolchain.Policy{
			Name:                "genode/lld",
			PICDefault:          true,
			IntegratedAssembler: true,
			UnwindTablesDefault: true,
			DefaultLinker:       "ld.lld",
			DefaultCXXStdlib:    toolchain.Libstdcxx,
			DefaultRuntimeLib:   toolchain.RuntimeCompilerRT,
			SystemIncludeHook:   true,
		},
		newAssembler: newAssembler,
		newLinker:    newLinker,
	},
}

// PolicyFor returns the defaults of v.
func PolicyFor(v Variant) (toolchain.Policy, error) {
	f, ok := families[v]
	if !ok {
		return toolchain.Policy{}, fmt.Errorf("unsupported genode variant %d", v)
	}
	return f.policy, nil
}

// Variants lists the known variants in display order.
func Variants() []Variant { return []Variant{Classic, LLD} }
