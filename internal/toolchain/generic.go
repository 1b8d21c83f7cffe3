// Package toolchain holds the target-independent half of a GCC-style
// toolchain: search path construction around a companion GCC
// installation, program lookup, libstdc++ header registration and the
// GNU assembler job builder. Target descriptors embed Generic and
// override only what their platform changes.
package toolchain

import (
	"path/filepath"
	"strings"

	"ccdriver/internal/driver"
	"ccdriver/internal/gcc"
	"ccdriver/internal/trace"
	"ccdriver/internal/triple"
)

// Generic is the shared GCC-style toolchain state. Paths are filled in
// while a descriptor is constructed and only read afterwards.
type Generic struct {
	D      *driver.Driver
	Triple triple.Triple
	GCC    gcc.Installation

	filePaths    []string
	programPaths []string
}

// NewGeneric seeds the program paths with the driver directory.
func NewGeneric(d *driver.Driver, target triple.Triple) Generic {
	g := Generic{D: d, Triple: target}
	if d.Dir != "" {
		g.programPaths = append(g.programPaths, d.Dir)
	}
	return g
}

// TripleString returns the target triple as given.
func (g *Generic) TripleString() string { return g.Triple.String() }

// FilePaths returns the library search paths, highest priority first.
func (g *Generic) FilePaths() []string { return append([]string(nil), g.filePaths...) }

// ProgramPaths returns the directories searched for tools before PATH.
func (g *Generic) ProgramPaths() []string { return append([]string(nil), g.programPaths...) }

// SetFilePaths replaces the library search paths during construction.
func (g *Generic) SetFilePaths(paths []string) { g.filePaths = paths }

// SetProgramPaths replaces the program paths during construction.
func (g *Generic) SetProgramPaths(paths []string) { g.programPaths = paths }

// MultiarchTriple returns the directory name a multiarch layout would use
// for target. Plain GCC layouts have no normalisation, so it is the
// triple itself.
func MultiarchTriple(_ *driver.Driver, target triple.Triple, _ string) string {
	return target.String()
}

// AddPathIfExists appends path to paths when it exists.
func (g *Generic) AddPathIfExists(path string, paths []string) []string {
	if g.D.FS.Exists(path) {
		trace.Point(g.D.Trace(), trace.ScopeArg, "path", path, 0)
		return append(paths, path)
	}
	return paths
}

// AddMultilibPaths appends the library directories of the companion GCC
// installation. Nothing is added when no installation was found.
func (g *Generic) AddMultilibPaths(sysRoot, osLibDir, multiarchTriple string, paths []string) []string {
	if !g.GCC.IsValid() {
		return paths
	}
	libPath := g.GCC.ParentLibPath
	ml := g.GCC.Multilib

	// lib/gcc/<triple>/<version> with the multilib suffix
	paths = g.AddPathIfExists(g.GCC.InstallPath()+ml.GCCSuffix, paths)
	// lib/gcc/<triple>/<libdir> for --enable-version-specific-runtime-libs
	paths = g.AddPathIfExists(g.GCC.InstallPath()+"/../"+osLibDir, paths)
	// cross toolchains keep target libraries in <prefix>/<triple>/lib
	paths = g.AddPathIfExists(libPath+"/../"+g.GCC.Triple+"/lib/../"+osLibDir+ml.OSSuffix, paths)

	if strings.HasPrefix(libPath, sysRoot) {
		paths = g.AddPathIfExists(libPath+"/"+multiarchTriple, paths)
		paths = g.AddPathIfExists(libPath+"/../"+osLibDir, paths)
	}
	return paths
}

// PushPPaths appends <prefix>/<triple>/bin, where cross binutils live.
func (g *Generic) PushPPaths(ppaths []string) []string {
	if g.GCC.IsValid() {
		ppaths = append(ppaths, g.GCC.ParentLibPath+"/../"+g.GCC.Triple+"/bin")
	}
	return ppaths
}

// GetProgramPath finds name in the program paths and then in PATH, also
// trying the target-prefixed spelling. When nothing is found the bare
// name is returned so the runner can report it.
func (g *Generic) GetProgramPath(name string) string {
	candidates := []string{g.Triple.String() + "-" + name}
	if g.GCC.IsValid() && g.GCC.Triple != g.Triple.String() {
		candidates = append(candidates, g.GCC.Triple+"-"+name)
	}
	candidates = append(candidates, name)
	for _, dir := range g.programPaths {
		for _, cand := range candidates {
			if p := filepath.Join(dir, cand); g.D.FS.CanExecute(p) {
				return p
			}
		}
	}
	for _, cand := range candidates {
		for _, dir := range g.D.Path {
			if dir == "" {
				continue
			}
			if p := filepath.Join(dir, cand); g.D.FS.CanExecute(p) {
				return p
			}
		}
	}
	return name
}
