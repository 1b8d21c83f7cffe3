package toolchain

import "fmt"

// CXXStdlib is a C++ standard library flavour.
type CXXStdlib uint8

const (
	Libstdcxx CXXStdlib = iota + 1
	Libcxx
)

func (s CXXStdlib) String() string {
	switch s {
	case Libstdcxx:
		return "libstdc++"
	case Libcxx:
		return "libc++"
	default:
		return "unknown"
	}
}

// ParseCXXStdlib accepts the -stdlib= spellings.
func ParseCXXStdlib(s string) (CXXStdlib, error) {
	switch s {
	case "libstdc++":
		return Libstdcxx, nil
	case "libc++":
		return Libcxx, nil
	default:
		return 0, fmt.Errorf("invalid C++ standard library %q", s)
	}
}

// RuntimeLib is the compiler support library linked into every image.
type RuntimeLib uint8

const (
	RuntimeLibgcc RuntimeLib = iota + 1
	RuntimeCompilerRT
)

func (r RuntimeLib) String() string {
	switch r {
	case RuntimeLibgcc:
		return "libgcc"
	case RuntimeCompilerRT:
		return "compiler-rt"
	default:
		return "unknown"
	}
}

// Policy is the fixed set of platform defaults a descriptor answers with.
type Policy struct {
	Name                string
	MathErrnoDefault    bool
	NativeLLVMSupport   bool
	PICDefault          bool
	PIEDefault          bool
	PICDefaultForced    bool
	IntegratedAssembler bool
	UnwindTablesDefault bool
	DefaultLinker       string
	DefaultCXXStdlib    CXXStdlib
	DefaultRuntimeLib   RuntimeLib
	SystemIncludeHook   bool
}

// PolicyRow is one printable line of a policy table.
type PolicyRow struct {
	Query string
	Value string
}

// Rows lists the policy answers in a stable order for display.
func (p Policy) Rows() []PolicyRow {
	return []PolicyRow{
		{"math-errno default", fmt.Sprint(p.MathErrnoDefault)},
		{"native LLVM support", fmt.Sprint(p.NativeLLVMSupport)},
		{"PIC default", fmt.Sprint(p.PICDefault)},
		{"PIE default", fmt.Sprint(p.PIEDefault)},
		{"PIC forced", fmt.Sprint(p.PICDefaultForced)},
		{"integrated assembler", fmt.Sprint(p.IntegratedAssembler)},
		{"unwind tables default", fmt.Sprint(p.UnwindTablesDefault)},
		{"default linker", p.DefaultLinker},
		{"default C++ stdlib", p.DefaultCXXStdlib.String()},
		{"default runtime lib", p.DefaultRuntimeLib.String()},
		{"system include hook", fmt.Sprint(p.SystemIncludeHook)},
	}
}
