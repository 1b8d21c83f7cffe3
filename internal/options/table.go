// Package options holds the typed argument collection handed to toolchain
// job builders. It recognises the subset of compiler-driver flags the
// toolchains in this module inspect; anything else is kept as an unknown
// argument so it can be reported.
package options

// ID identifies a recognised option or option group.
type ID uint16

const (
	OptUnknown ID = iota
	OptInput

	// groups
	OptTGroup

	OptL
	OptT
	OptTbss
	OptTdata
	OptTtext
	OptE
	OptS
	OptLowerT
	OptZFlag
	OptZ
	OptR
	OptStatic
	OptShared
	OptLowerL
	OptWlComma
	OptXlinker
	OptWaComma
	OptXassembler
	OptI
	OptMCModel
	OptMTune
	OptMArch
	OptMCPU
	OptMABI
	OptMFPU
	OptFuseLd
	OptNoStdInc
	OptNoStdLibInc
	OptNoStdIncxx
	OptNoBuiltinInc
	OptStdlib
	OptO
	OptC
	OptUpperS
	OptX
)

// Kind describes how an option consumes its value.
type Kind uint8

const (
	KindFlag             Kind = iota + 1 // -static
	KindJoined                           // -mtune=generic
	KindSeparate                         // -z defs
	KindJoinedOrSeparate                 // -Lpath, -L path
	KindCommaJoined                      // -Wl,a,b
)

// Flags modify how an option participates in linking and rendering.
type Flags uint8

const (
	// FlagLinkerInput marks options that travel with the linker inputs in
	// command-line order.
	FlagLinkerInput Flags = 1 << iota
	// FlagRenderAsInput renders only the values when used as an input.
	FlagRenderAsInput
	// FlagRenderJoined renders spelling and value as one word.
	FlagRenderJoined
)

// Option is one row of the option table.
type Option struct {
	ID       ID
	Spelling string
	Kind     Kind
	Group    ID
	Flags    Flags
	Help     string
}

// Has reports whether f is set on the option.
func (o *Option) Has(f Flags) bool { return o != nil && o.Flags&f != 0 }

var table = []Option{
	{ID: OptL, Spelling: "-L", Kind: KindJoinedOrSeparate, Flags: FlagRenderJoined, Help: "add directory to library search path"},
	{ID: OptT, Spelling: "-T", Kind: KindJoinedOrSeparate, Group: OptTGroup, Help: "linker script"},
	{ID: OptTbss, Spelling: "-Tbss", Kind: KindJoinedOrSeparate, Group: OptTGroup, Help: "bss section address"},
	{ID: OptTdata, Spelling: "-Tdata", Kind: KindJoinedOrSeparate, Group: OptTGroup, Help: "data section address"},
	{ID: OptTtext, Spelling: "-Ttext", Kind: KindJoinedOrSeparate, Group: OptTGroup, Help: "text section address"},
	{ID: OptE, Spelling: "-e", Kind: KindJoinedOrSeparate, Help: "entry point symbol"},
	{ID: OptS, Spelling: "-s", Kind: KindFlag, Help: "strip all symbols"},
	{ID: OptLowerT, Spelling: "-t", Kind: KindFlag, Help: "trace linker input files"},
	{ID: OptZFlag, Spelling: "-Z", Kind: KindFlag, Help: "linker -Z flag"},
	{ID: OptZ, Spelling: "-z", Kind: KindSeparate, Flags: FlagLinkerInput, Help: "pass -z <arg> to the linker"},
	{ID: OptR, Spelling: "-r", Kind: KindFlag, Help: "produce a relocatable object"},
	{ID: OptStatic, Spelling: "-static", Kind: KindFlag, Help: "link statically"},
	{ID: OptShared, Spelling: "-shared", Kind: KindFlag, Help: "produce a shared object"},
	{ID: OptLowerL, Spelling: "-l", Kind: KindJoinedOrSeparate, Flags: FlagLinkerInput | FlagRenderJoined, Help: "link library"},
	{ID: OptWlComma, Spelling: "-Wl,", Kind: KindCommaJoined, Flags: FlagLinkerInput | FlagRenderAsInput, Help: "pass comma-separated arguments to the linker"},
	{ID: OptXlinker, Spelling: "-Xlinker", Kind: KindSeparate, Flags: FlagLinkerInput | FlagRenderAsInput, Help: "pass argument to the linker"},
	{ID: OptWaComma, Spelling: "-Wa,", Kind: KindCommaJoined, Help: "pass comma-separated arguments to the assembler"},
	{ID: OptXassembler, Spelling: "-Xassembler", Kind: KindSeparate, Help: "pass argument to the assembler"},
	{ID: OptI, Spelling: "-I", Kind: KindJoinedOrSeparate, Flags: FlagRenderJoined, Help: "add include directory"},
	{ID: OptMCModel, Spelling: "-mcmodel=", Kind: KindJoined, Help: "code model"},
	{ID: OptMTune, Spelling: "-mtune=", Kind: KindJoined, Help: "tune for cpu"},
	{ID: OptMArch, Spelling: "-march=", Kind: KindJoined, Help: "target architecture revision"},
	{ID: OptMCPU, Spelling: "-mcpu=", Kind: KindJoined, Help: "target cpu"},
	{ID: OptMABI, Spelling: "-mabi=", Kind: KindJoined, Help: "target abi"},
	{ID: OptMFPU, Spelling: "-mfpu=", Kind: KindJoined, Help: "target fpu"},
	{ID: OptFuseLd, Spelling: "-fuse-ld=", Kind: KindJoined, Help: "linker flavour or path"},
	{ID: OptNoStdInc, Spelling: "-nostdinc", Kind: KindFlag, Help: "no standard include directories"},
	{ID: OptNoStdLibInc, Spelling: "-nostdlibinc", Kind: KindFlag, Help: "no standard library include directories"},
	{ID: OptNoStdIncxx, Spelling: "-nostdinc++", Kind: KindFlag, Help: "no standard C++ include directories"},
	{ID: OptNoBuiltinInc, Spelling: "-nobuiltininc", Kind: KindFlag, Help: "no builtin include directory"},
	{ID: OptStdlib, Spelling: "-stdlib=", Kind: KindJoined, Help: "C++ standard library"},
	{ID: OptO, Spelling: "-o", Kind: KindJoinedOrSeparate, Help: "output file"},
	{ID: OptC, Spelling: "-c", Kind: KindFlag, Help: "compile or assemble only"},
	{ID: OptUpperS, Spelling: "-S", Kind: KindFlag, Help: "compile only"},
	{ID: OptX, Spelling: "-x", Kind: KindJoinedOrSeparate, Help: "input language"},
}

var (
	inputOption   = Option{ID: OptInput, Spelling: "<input>"}
	unknownOption = Option{ID: OptUnknown, Spelling: "<unknown>"}
)

// Lookup returns the table row for id, or nil for groups and unknown IDs.
func Lookup(id ID) *Option {
	for i := range table {
		if table[i].ID == id {
			return &table[i]
		}
	}
	return nil
}

// match finds the option for a command-line word. Exact flag spellings win;
// otherwise the longest value-taking prefix is chosen.
func match(word string) *Option {
	var best *Option
	for i := range table {
		opt := &table[i]
		if opt.Kind == KindFlag {
			if word == opt.Spelling {
				return opt
			}
			continue
		}
		if opt.Kind == KindSeparate {
			if word == opt.Spelling && (best == nil || len(opt.Spelling) > len(best.Spelling)) {
				best = opt
			}
			continue
		}
		if len(word) >= len(opt.Spelling) && word[:len(opt.Spelling)] == opt.Spelling {
			if best == nil || len(opt.Spelling) > len(best.Spelling) {
				best = opt
			}
		}
	}
	return best
}
