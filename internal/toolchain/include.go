package toolchain

import (
	"strconv"
	"strings"
)

// AddSystemInclude appends an -internal-isystem pair for path.
func AddSystemInclude(out []string, path string) []string {
	return append(out, "-internal-isystem", path)
}

// AddExternCSystemInclude appends an -internal-externc-isystem pair.
func AddExternCSystemInclude(out []string, path string) []string {
	return append(out, "-internal-externc-isystem", path)
}

// AddLibStdCXXIncludePaths registers a libstdc++ header tree rooted at
// base+suffix: the tree itself, its target-specific subdirectory and its
// backward directory. The triple subdirectory of the vanilla GCC layout
// is preferred; otherwise the multiarch spellings are added. It reports
// false and adds nothing when base+suffix does not exist.
func (g *Generic) AddLibStdCXXIncludePaths(base, suffix, gccTriple, gccMultiarchTriple, targetMultiarchTriple, includeSuffix string, out []string) ([]string, bool) {
	if !g.D.FS.Exists(base + suffix) {
		return out, false
	}
	out = AddSystemInclude(out, base+suffix)

	if gccTriple != "" && g.D.FS.Exists(base+suffix+"/"+gccTriple+includeSuffix) {
		out = AddSystemInclude(out, base+suffix+"/"+gccTriple+includeSuffix)
	} else {
		out = AddSystemInclude(out, base+"/"+gccMultiarchTriple+suffix+includeSuffix)
		out = AddSystemInclude(out, base+"/"+targetMultiarchTriple+suffix)
	}

	out = AddSystemInclude(out, base+suffix+"/backward")
	return out, true
}

// AddGCCLibStdCxxIncludePaths runs the generic libstdc++ header detection
// for the companion installation: <lib>/../include/c++/<version> first,
// then the g++-v<version> directories some distributions keep inside the
// GCC install directory.
func (g *Generic) AddGCCLibStdCxxIncludePaths(out []string) ([]string, bool) {
	if !g.GCC.IsValid() {
		return out, false
	}
	libDir := g.GCC.ParentLibPath
	installDir := g.GCC.InstallPath()
	tripleStr := g.GCC.Triple
	ml := g.GCC.Multilib
	version := g.GCC.Version

	// the companion triple is already a plain GCC triple
	gccMultiarch := tripleStr
	targetMultiarch := MultiarchTriple(g.D, g.Triple, g.D.SysRoot)

	if res, ok := g.AddLibStdCXXIncludePaths(libDir+"/../include", "/c++/"+version.Text,
		tripleStr, gccMultiarch, targetMultiarch, ml.IncludeSuffix, out); ok {
		return res, true
	}

	candidates := []string{
		installDir + "/include/g++-v" + version.Text,
		installDir + "/include/g++-v" + version.MajorStr + "." + version.MinorStr,
		installDir + "/include/g++-v" + version.MajorStr,
	}
	for _, path := range candidates {
		if res, ok := g.AddLibStdCXXIncludePaths(path, "", tripleStr, "", "", ml.IncludeSuffix, out); ok {
			return res, true
		}
	}
	return out, false
}

// DetectLibcxxVersion returns the newest "v<N>" directory under
// base/c++, or "" when there is none.
func (g *Generic) DetectLibcxxVersion(base string) string {
	best, bestText := -1, ""
	for _, name := range g.D.FS.ReadDir(base + "/c++") {
		if !strings.HasPrefix(name, "v") {
			continue
		}
		n, err := strconv.Atoi(name[1:])
		if err != nil || n <= best {
			continue
		}
		best, bestText = n, name
	}
	return bestText
}

// AddLibCxxIncludePaths registers libc++ headers installed next to the
// driver or in the sysroot. The per-target directory comes first.
func (g *Generic) AddLibCxxIncludePaths(out []string) []string {
	target := g.Triple.String()
	for _, base := range []string{
		g.D.Dir + "/../include",
		g.D.SysRoot + "/usr/local/include",
		g.D.SysRoot + "/usr/include",
	} {
		version := g.DetectLibcxxVersion(base)
		if version == "" {
			continue
		}
		if dir := base + "/" + target + "/c++/" + version; g.D.FS.Exists(dir) {
			out = AddSystemInclude(out, dir)
		}
		return AddSystemInclude(out, base+"/c++/"+version)
	}
	return out
}
