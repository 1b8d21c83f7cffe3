package genode

import (
	"ccdriver/internal/options"
	"ccdriver/internal/toolchain"
)

// AddLibStdCxxIncludePaths registers the companion libstdc++ headers.
// Generic detection wins; otherwise the headers are expected under
// <lib>/../<triple>/include/c++/<version>. Without a companion toolchain
// nothing is added.
func (tc *Toolchain) AddLibStdCxxIncludePaths(out []string) []string {
	if res, ok := tc.AddGCCLibStdCxxIncludePaths(out); ok {
		return res
	}
	if !tc.GCC.IsValid() {
		return out
	}

	includePath := tc.GCC.ParentLibPath + "/../" + tc.GCC.Triple + "/include/c++/" + tc.GCC.Version.Text
	res, _ := tc.AddLibStdCXXIncludePaths(includePath, "", tc.GCC.Triple, "", "",
		tc.GCC.Multilib.IncludeSuffix, out)
	return res
}

// AddClangCXXStdlibIncludeArgs adds C++ standard library headers for the
// selected -stdlib unless standard includes are disabled.
func (tc *Toolchain) AddClangCXXStdlibIncludeArgs(args *options.ArgList, out []string) []string {
	if args.HasArg(options.OptNoStdInc, options.OptNoStdLibInc, options.OptNoStdIncxx) {
		return out
	}
	switch tc.GetCXXStdlibType(args) {
	case toolchain.Libcxx:
		return tc.AddLibCxxIncludePaths(out)
	default:
		return tc.AddLibStdCxxIncludePaths(out)
	}
}

// AddClangSystemIncludeArgs adds the builtin and C library header
// directories. Only variants with the system include hook add anything.
func (tc *Toolchain) AddClangSystemIncludeArgs(args *options.ArgList, out []string) []string {
	if !tc.fam.policy.SystemIncludeHook || args.HasArg(options.OptNoStdInc) {
		return out
	}
	if !args.HasArg(options.OptNoBuiltinInc) && tc.D.ResourceDir != "" {
		out = toolchain.AddSystemInclude(out, tc.D.ResourceDir+"/include")
	}
	if args.HasArg(options.OptNoStdLibInc) {
		return out
	}
	if tc.GCC.IsValid() {
		if dir := tc.GCC.ParentLibPath + "/../" + tc.GCC.Triple + "/include"; tc.D.FS.Exists(dir) {
			out = toolchain.AddExternCSystemInclude(out, dir)
		}
	}
	if tc.D.SysRoot != "" {
		out = toolchain.AddExternCSystemInclude(out, tc.D.SysRoot+"/include")
	}
	return out
}
