package toolchain

import (
	"path/filepath"

	"ccdriver/internal/diag"
	"ccdriver/internal/driver"
	"ccdriver/internal/options"
)

// LinkerInputPolicy is the part of a toolchain AddLinkerInputs consults.
type LinkerInputPolicy interface {
	HasNativeLLVMSupport() bool
	TripleString() string
}

// AddLinkerInputs appends the job inputs in command-line order. Files are
// passed by name; linker-input arguments render in their input form, so
// -Wl,a,b contributes "a" "b" and -lfoo stays "-lfoo".
func AddLinkerInputs(tc LinkerInputPolicy, d *driver.Driver, inputs []driver.InputInfo, args *options.ArgList, out []string) []string {
	for _, in := range inputs {
		if !tc.HasNativeLLVMSupport() && in.Type.IsLLVMIR() {
			d.Report(diag.DrvNoLinkerLLVMSupport, diag.SevError, in.String(),
				"'"+tc.TripleString()+"': unable to pass LLVM bit-code files to linker")
		}
		switch {
		case in.IsFilename():
			out = append(out, in.Filename())
		case in.IsInputArg():
			a := in.InputArg()
			a.Claim()
			out = a.RenderAsInput(out)
		}
	}
	return out
}

// GetLinkerPath resolves the linker: an absolute -fuse-ld= path is used
// when executable, other -fuse-ld= values name ld.<value>, and "ld" or no
// flag selects defaultLinker. Unusable values are reported and fall back
// to defaultLinker.
func (g *Generic) GetLinkerPath(args *options.ArgList, defaultLinker string) string {
	a := args.LastArg(options.OptFuseLd)
	useLinker := ""
	if a != nil {
		useLinker = a.Value()
	}

	switch {
	case filepath.IsAbs(useLinker):
		if g.D.FS.CanExecute(useLinker) {
			return useLinker
		}
	case useLinker == "" || useLinker == "ld":
		return g.GetProgramPath(defaultLinker)
	default:
		if path := g.GetProgramPath("ld." + useLinker); g.D.FS.CanExecute(path) {
			return path
		}
	}

	if a != nil {
		g.D.Report(diag.DrvInvalidLinkerName, diag.SevError, a.String(),
			"invalid linker name in argument '"+a.String()+"'")
	}
	return g.GetProgramPath(defaultLinker)
}
