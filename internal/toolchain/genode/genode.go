// Package genode is the toolchain descriptor for Genode targets. It
// borrows headers, libraries and binutils from a bare-metal GCC cross
// toolchain matched to the target architecture.
package genode

import (
	"fmt"
	"strconv"
	"sync"

	"ccdriver/internal/diag"
	"ccdriver/internal/driver"
	"ccdriver/internal/gcc"
	"ccdriver/internal/options"
	"ccdriver/internal/toolchain"
	"ccdriver/internal/trace"
	"ccdriver/internal/triple"
)

// BuildIDOption is appended to every link when build ids are enabled.
const BuildIDOption = "--build-id"

// Config selects the variant and deployment switches of a descriptor.
type Config struct {
	Variant Variant
	// BuildID embeds a build id note in every linked image.
	BuildID bool
	// Scanner finds the companion GCC; nil means none is installed.
	Scanner gcc.Scanner
	// Linker replaces the variant's default linker name when set.
	Linker string
}

// Toolchain is the Genode descriptor. Everything is computed in New and
// read-only afterwards, so job builders may run concurrently.
type Toolchain struct {
	toolchain.Generic

	variant    Variant
	fam        family
	candidates []string
	extraOpts  []string
	linkerName string

	asOnce    sync.Once
	assembler driver.Tool
	ldOnce    sync.Once
	linker    driver.Tool
}

// CompanionTripleCandidates returns the GCC triple a Genode target on
// arch borrows from, or nil when the architecture has none.
func CompanionTripleCandidates(arch triple.Arch) []string {
	switch arch {
	case triple.ARM:
		return []string{"arm-none-eabi"}
	case triple.AArch64:
		return []string{"aarch64-none-elf"}
	case triple.X86, triple.X86_64:
		return []string{"x86_64-pc-elf"}
	case triple.RISCV64:
		return []string{"riscv64-unknown-elf"}
	default:
		return nil
	}
}

// New builds the descriptor for target.
func New(d *driver.Driver, target triple.Triple, cfg Config) (*Toolchain, error) {
	if cfg.Variant == 0 {
		cfg.Variant = Classic
	}
	fam, ok := families[cfg.Variant]
	if !ok {
		return nil, fmt.Errorf("genode: unsupported variant %s", cfg.Variant)
	}
	scanner := cfg.Scanner
	if scanner == nil {
		scanner = gcc.NopScanner{}
	}

	span := trace.Begin(d.Trace(), trace.ScopeToolchain, "construct", 0)

	tc := &Toolchain{
		Generic: toolchain.NewGeneric(d, target),
		variant:    cfg.Variant,
		fam:        fam,
		linkerName: fam.policy.DefaultLinker,
	}
	if cfg.Linker != "" {
		tc.linkerName = cfg.Linker
	}

	tc.candidates = CompanionTripleCandidates(target.Arch())
	if len(tc.candidates) == 0 {
		d.Report(diag.DrvUnknownTriple, diag.SevWarning, target.String(),
			"no companion toolchain is known for architecture '"+target.ArchName()+"'")
	}

	tc.GCC = scanner.Scan(target, tc.candidates)
	trace.Point(d.Trace(), trace.ScopeToolchain, "companion", tc.GCC.InstallPath(), span.ID())

	multiarch := toolchain.MultiarchTriple(d, target, "")
	var filePaths []string
	if tc.GCC.IsValid() && target.IsX86() {
		multilibPaths := tc.AddMultilibPaths("", "lib", multiarch, nil)
		suffix := tc.GCC.Multilib.GCCSuffix
		for _, path := range multilibPaths {
			filePaths = tc.AddPathIfExists(path+suffix, filePaths)
		}
	} else {
		filePaths = tc.AddMultilibPaths("", "lib", multiarch, filePaths)
	}
	tc.SetFilePaths(filePaths)

	tc.SetProgramPaths(tc.PushPPaths(tc.ProgramPaths()))

	if cfg.BuildID {
		tc.extraOpts = append(tc.extraOpts, BuildIDOption)
	}

	span.WithExtra("file_paths", strconv.Itoa(len(filePaths))).
		WithExtra("variant", cfg.Variant.String()).
		End(target.String())
	return tc, nil
}

// Variant returns the variant the descriptor was built for.
func (tc *Toolchain) Variant() Variant { return tc.variant }

// Policy returns the platform defaults of the variant.
func (tc *Toolchain) Policy() toolchain.Policy { return tc.fam.policy }

// Candidates returns the companion triples that seeded the scan.
func (tc *Toolchain) Candidates() []string { return append([]string(nil), tc.candidates...) }

// Installation returns the companion toolchain report.
func (tc *Toolchain) Installation() gcc.Installation { return tc.GCC }

// ExtraOpts returns the linker options added at construction.
func (tc *Toolchain) ExtraOpts() []string { return append([]string(nil), tc.extraOpts...) }

// AddExtraOpts appends the extra linker options in order.
func (tc *Toolchain) AddExtraOpts(out []string) []string {
	return append(out, tc.extraOpts...)
}

func (tc *Toolchain) IsMathErrnoDefault() bool           { return tc.fam.policy.MathErrnoDefault }
func (tc *Toolchain) HasNativeLLVMSupport() bool         { return tc.fam.policy.NativeLLVMSupport }
func (tc *Toolchain) IsPICDefault() bool                 { return tc.fam.policy.PICDefault }
func (tc *Toolchain) IsPIEDefault() bool                 { return tc.fam.policy.PIEDefault }
func (tc *Toolchain) IsPICDefaultForced() bool           { return tc.fam.policy.PICDefaultForced }
func (tc *Toolchain) IsIntegratedAssemblerDefault() bool { return tc.fam.policy.IntegratedAssembler }
func (tc *Toolchain) DefaultLinker() string              { return tc.linkerName }
func (tc *Toolchain) DefaultRuntimeLib() toolchain.RuntimeLib {
	return tc.fam.policy.DefaultRuntimeLib
}

// IsUnwindTablesDefault is true for every Genode target.
func (tc *Toolchain) IsUnwindTablesDefault(*options.ArgList) bool {
	return tc.fam.policy.UnwindTablesDefault
}

// GetCXXStdlibType honours -stdlib= and falls back to the variant
// default, reporting values it does not know.
func (tc *Toolchain) GetCXXStdlibType(args *options.ArgList) toolchain.CXXStdlib {
	a := args.LastArg(options.OptStdlib)
	if a == nil {
		return tc.fam.policy.DefaultCXXStdlib
	}
	stdlib, err := toolchain.ParseCXXStdlib(a.Value())
	if err != nil {
		tc.D.Report(diag.TcInvalidStdlib, diag.SevError, a.String(),
			"invalid library name in argument '"+a.String()+"'")
		return tc.fam.policy.DefaultCXXStdlib
	}
	return stdlib
}

// GetLinkerPath resolves the linker for this descriptor.
func (tc *Toolchain) GetLinkerPath(args *options.ArgList) string {
	return tc.Generic.GetLinkerPath(args, tc.linkerName)
}

// SelectTool returns the assembler or linker, building each once.
func (tc *Toolchain) SelectTool(kind driver.ActionKind) (driver.Tool, error) {
	switch kind {
	case driver.AssembleJob:
		tc.asOnce.Do(func() { tc.assembler = tc.fam.newAssembler(tc) })
		return tc.assembler, nil
	case driver.LinkJob:
		tc.ldOnce.Do(func() { tc.linker = tc.fam.newLinker(tc) })
		return tc.linker, nil
	default:
		return nil, fmt.Errorf("genode: no tool for %s", kind)
	}
}
