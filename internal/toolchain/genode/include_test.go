package genode

import (
	"reflect"
	"slices"
	"testing"

	"ccdriver/internal/diag"
	"ccdriver/internal/gcc"
	"ccdriver/internal/options"
)

func isystem(paths ...string) []string {
	var out []string
	for _, p := range paths {
		out = append(out, "-internal-isystem", p)
	}
	return out
}

func TestLibStdCxxGenericDetectionWins(t *testing.T) {
	f := newFixture(t,
		"/tool/lib/gcc/x86_64-pc-elf/10.3.0",
		"/tool/include/c++/10.3.0/x86_64-pc-elf",
		// would match the Genode layout too, but must not be used
		"/tool/x86_64-pc-elf/include/c++/10.3.0",
	)
	tc := f.toolchain(t, "x86_64-pc-genode", Config{Scanner: companion(f.fs, "", "")})

	base := "/tool/lib/../include/c++/10.3.0"
	want := isystem(base, base+"/x86_64-pc-elf", base+"/backward")
	if got := tc.AddLibStdCxxIncludePaths(nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("include args =\n%q\nwant\n%q", got, want)
	}
}

func TestLibStdCxxGenodeLayout(t *testing.T) {
	f := newFixture(t,
		"/tool/lib/gcc/x86_64-pc-elf/10.3.0",
		"/tool/x86_64-pc-elf/include/c++/10.3.0/x86_64-pc-elf/64",
	)
	scanner := gcc.ConfiguredScanner{
		FS:            f.fs,
		ParentLibPath: toolLib,
		Version:       "10.3.0",
		Multilib:      gcc.Multilib{GCCSuffix: "/64", IncludeSuffix: "/64"},
	}
	tc := f.toolchain(t, "x86_64-pc-genode", Config{Scanner: scanner})

	base := "/tool/lib/../x86_64-pc-elf/include/c++/10.3.0"
	want := isystem(base, base+"/x86_64-pc-elf/64", base+"/backward")
	if got := tc.AddLibStdCxxIncludePaths(nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("include args =\n%q\nwant\n%q", got, want)
	}
}

func TestLibStdCxxGppVersionedFallback(t *testing.T) {
	f := newFixture(t, "/tool/lib/gcc/riscv64-unknown-elf/10.3.0/include/g++-v10/riscv64-unknown-elf")
	tc := f.toolchain(t, "riscv64-unknown-genode", Config{Scanner: companion(f.fs, "", "")})

	base := "/tool/lib/gcc/riscv64-unknown-elf/10.3.0/include/g++-v10"
	want := isystem(base, base+"/riscv64-unknown-elf", base+"/backward")
	if got := tc.AddLibStdCxxIncludePaths(nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("include args =\n%q\nwant\n%q", got, want)
	}
}

func TestLibStdCxxMissingHeaders(t *testing.T) {
	f := newFixture(t, "/tool/lib/gcc/arm-none-eabi/10.3.0")
	tc := f.toolchain(t, "arm-none-genode", Config{Scanner: companion(f.fs, "", "")})
	if got := tc.AddLibStdCxxIncludePaths([]string{"-keep"}); !reflect.DeepEqual(got, []string{"-keep"}) {
		t.Fatalf("include args = %q", got)
	}
}

func TestCXXStdlibIncludeArgs(t *testing.T) {
	f := newFixture(t,
		"/tool/lib/gcc/x86_64-pc-elf/10.3.0",
		"/tool/x86_64-pc-elf/include/c++/10.3.0/x86_64-pc-elf",
		driverDir+"/../include/c++/v1",
		driverDir+"/../include/c++/v2",
	)
	tc := f.toolchain(t, "x86_64-pc-genode", Config{Scanner: companion(f.fs, "", "")})

	if got := tc.AddClangCXXStdlibIncludeArgs(options.MustParse("-nostdinc++"), nil); len(got) != 0 {
		t.Fatalf("-nostdinc++ must suppress headers, got %q", got)
	}
	if got := tc.AddClangCXXStdlibIncludeArgs(options.MustParse("-nostdlibinc"), nil); len(got) != 0 {
		t.Fatalf("-nostdlibinc must suppress headers, got %q", got)
	}

	got := tc.AddClangCXXStdlibIncludeArgs(options.MustParse(), nil)
	if len(got) != 6 || got[1] != "/tool/lib/../x86_64-pc-elf/include/c++/10.3.0" {
		t.Fatalf("libstdc++ args = %q", got)
	}

	got = tc.AddClangCXXStdlibIncludeArgs(options.MustParse("-stdlib=libc++"), nil)
	if want := isystem(driverDir + "/../include/c++/v2"); !reflect.DeepEqual(got, want) {
		t.Fatalf("libc++ args = %q, want %q", got, want)
	}

	got = tc.AddClangCXXStdlibIncludeArgs(options.MustParse("-stdlib=libfoo"), nil)
	if len(got) != 6 {
		t.Fatalf("invalid stdlib must fall back to libstdc++, got %q", got)
	}
	if !slices.Contains(f.codes(), diag.TcInvalidStdlib) {
		t.Fatalf("expected invalid stdlib diagnostic, got %v", f.codes())
	}
}

func TestSystemIncludeHook(t *testing.T) {
	f := newFixture(t,
		"/tool/lib/gcc/aarch64-none-elf/10.3.0",
		"/tool/aarch64-none-elf/include",
	)
	f.d.ResourceDir = "/opt/llvm/lib/clang/17"
	f.d.SysRoot = "/genode/sysroot"

	classic := f.toolchain(t, "aarch64-unknown-genode", Config{Scanner: companion(f.fs, "", "")})
	if got := classic.AddClangSystemIncludeArgs(options.MustParse(), nil); len(got) != 0 {
		t.Fatalf("classic adds no system includes, got %q", got)
	}

	lld := f.toolchain(t, "aarch64-unknown-genode", Config{Variant: LLD, Scanner: companion(f.fs, "", "")})
	want := []string{
		"-internal-isystem", "/opt/llvm/lib/clang/17/include",
		"-internal-externc-isystem", "/tool/lib/../aarch64-none-elf/include",
		"-internal-externc-isystem", "/genode/sysroot/include",
	}
	if got := lld.AddClangSystemIncludeArgs(options.MustParse(), nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("system includes =\n%q\nwant\n%q", got, want)
	}
	if got := lld.AddClangSystemIncludeArgs(options.MustParse("-nostdinc"), nil); len(got) != 0 {
		t.Fatalf("-nostdinc must suppress everything, got %q", got)
	}
	got := lld.AddClangSystemIncludeArgs(options.MustParse("-nobuiltininc", "-nostdlibinc"), nil)
	if len(got) != 0 {
		t.Fatalf("-nobuiltininc -nostdlibinc leaves nothing, got %q", got)
	}
}
