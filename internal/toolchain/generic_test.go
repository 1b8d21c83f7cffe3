package toolchain

import (
	"reflect"
	"testing"

	"ccdriver/internal/diag"
	"ccdriver/internal/driver"
	"ccdriver/internal/gcc"
	"ccdriver/internal/options"
	"ccdriver/internal/triple"
	"ccdriver/internal/vfs"
)

func newGeneric(t *testing.T, target string, fs *vfs.FS) *Generic {
	t.Helper()
	d := &driver.Driver{Dir: "/opt/llvm/bin", FS: fs, Reporter: diag.NopReporter{}}
	g := NewGeneric(d, triple.MustParse(target))
	return &g
}

func assemble(t *testing.T, g *Generic, argv ...string) []string {
	t.Helper()
	args := options.MustParse(argv...)
	c := driver.NewCompilation(g.D, args)
	as := &GNUAssembler{TC: g}
	ja := &driver.JobAction{Kind: driver.AssembleJob}
	in := []driver.InputInfo{driver.FileInput("x.s", driver.TypeAsm)}
	if err := as.ConstructJob(c, ja, driver.FileInput("x.o", driver.TypeObject), in, args); err != nil {
		t.Fatalf("ConstructJob: %v", err)
	}
	jobs := c.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("jobs = %d", len(jobs))
	}
	if jobs[0].Response != driver.ResponseGCC {
		t.Fatalf("assembler should accept response files")
	}
	return jobs[0].Arguments
}

func TestGNUAssemblerArchFlags(t *testing.T) {
	tests := []struct {
		target string
		argv   []string
		want   []string
	}{
		{"i686-pc-genode", nil, []string{"--32", "-o", "x.o", "x.s"}},
		{"x86_64-pc-genode", nil, []string{"--64", "-o", "x.o", "x.s"}},
		{"x86_64-pc-linux-gnux32", nil, []string{"--x32", "-o", "x.o", "x.s"}},
		{"arm-none-genode", []string{"-mcpu=cortex-a9", "-march=armv7-a", "-mfpu=vfpv3"},
			[]string{"-march=armv7-a", "-mcpu=cortex-a9", "-mfpu=vfpv3", "-o", "x.o", "x.s"}},
		{"aarch64-unknown-genode", nil, []string{"-EL", "-o", "x.o", "x.s"}},
		{"riscv64-unknown-genode", nil, []string{"-mabi", "lp64d", "-march", "rv64gc", "-o", "x.o", "x.s"}},
		{"riscv64-unknown-genode", []string{"-march=rv64imac", "-mabi=lp64"},
			[]string{"-mabi", "lp64", "-march", "rv64imac", "-o", "x.o", "x.s"}},
		{"x86_64-pc-genode", []string{"-I", "inc", "-Xassembler", "--gstabs", "-Wa,-a,-L"},
			[]string{"--64", "-Iinc", "--gstabs", "-a", "-L", "-o", "x.o", "x.s"}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			g := newGeneric(t, tt.target, vfs.Memory())
			if got := assemble(t, g, tt.argv...); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddMultilibPathsWithoutInstallation(t *testing.T) {
	fs := vfs.Memory()
	if err := fs.MkdirAll("/usr/lib", 0o755); err != nil {
		t.Fatal(err)
	}
	g := newGeneric(t, "x86_64-pc-genode", fs)
	if got := g.AddMultilibPaths("", "lib", "x86_64-pc-genode", []string{"/keep"}); !reflect.DeepEqual(got, []string{"/keep"}) {
		t.Fatalf("paths = %v", got)
	}
	if got := g.PushPPaths(nil); len(got) != 0 {
		t.Fatalf("program paths = %v", got)
	}
}

func TestAddMultilibPathsOutsideSysroot(t *testing.T) {
	fs := vfs.Memory()
	for _, dir := range []string{"/cross/lib/gcc/x86_64-pc-elf/9.2.0", "/cross/lib/x86_64-pc-genode"} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	g := newGeneric(t, "x86_64-pc-genode", fs)
	g.GCC = gcc.Installation{Valid: true, ParentLibPath: "/cross/lib", Triple: "x86_64-pc-elf", Version: gcc.ParseVersion("9.2.0")}

	inside := g.AddMultilibPaths("", "lib", "x86_64-pc-genode", nil)
	want := []string{
		"/cross/lib/gcc/x86_64-pc-elf/9.2.0",
		"/cross/lib/x86_64-pc-genode",
		"/cross/lib/../lib",
	}
	if !reflect.DeepEqual(inside, want) {
		t.Fatalf("paths = %v, want %v", inside, want)
	}

	outside := g.AddMultilibPaths("/sysroot", "lib", "x86_64-pc-genode", nil)
	if !reflect.DeepEqual(outside, want[:1]) {
		t.Fatalf("paths outside sysroot = %v", outside)
	}
}

func TestGetProgramPath(t *testing.T) {
	fs := vfs.Memory()
	for _, p := range []string{"/usr/bin/as", "/usr/bin/x86_64-pc-genode-ld", "/opt/llvm/bin/ld.lld"} {
		if err := fs.WriteFile(p, []byte{}, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := fs.WriteFile("/usr/bin/objcopy", []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}
	g := newGeneric(t, "x86_64-pc-genode", fs)
	g.D.Path = []string{"", "/usr/bin"}

	tests := map[string]string{
		"as":      "/usr/bin/as",
		"ld":      "/usr/bin/x86_64-pc-genode-ld",
		"ld.lld":  "/opt/llvm/bin/ld.lld",
		"objcopy": "objcopy",
		"nm":      "nm",
	}
	for name, want := range tests {
		if got := g.GetProgramPath(name); got != want {
			t.Errorf("GetProgramPath(%q) = %q, want %q", name, got, want)
		}
	}
}

type llvmPolicy bool

func (p llvmPolicy) HasNativeLLVMSupport() bool { return bool(p) }
func (llvmPolicy) TripleString() string         { return "x86_64-pc-genode" }

func TestAddLinkerInputs(t *testing.T) {
	args := options.MustParse("-lfoo", "-Xlinker", "--defsym=x=1", "-z", "now")
	bag := diag.NewBag(8)
	d := &driver.Driver{FS: vfs.Memory(), Reporter: diag.BagReporter{Bag: bag}}

	inputs := []driver.InputInfo{driver.FileInput("a.o", driver.TypeObject)}
	for _, a := range args.Inputs() {
		inputs = append(inputs, driver.ArgInput(a))
	}
	inputs = append(inputs, driver.Nothing(), driver.FileInput("m.ll", driver.TypeLLVMIR))

	got := AddLinkerInputs(llvmPolicy(false), d, inputs, args, nil)
	want := []string{"a.o", "-lfoo", "--defsym=x=1", "-z", "now", "m.ll"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("inputs = %q, want %q", got, want)
	}
	if len(args.Unclaimed()) != 0 {
		t.Fatalf("linker inputs must be claimed: %v", args.Unclaimed())
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.DrvNoLinkerLLVMSupport {
		t.Fatalf("diagnostics = %v", bag.Items())
	}

	bag2 := diag.NewBag(8)
	d.Reporter = diag.BagReporter{Bag: bag2}
	AddLinkerInputs(llvmPolicy(true), d, inputs, args, nil)
	if bag2.Len() != 0 {
		t.Fatalf("native LLVM support must not diagnose: %v", bag2.Items())
	}
}

func TestParseCXXStdlib(t *testing.T) {
	if s, err := ParseCXXStdlib("libc++"); err != nil || s != Libcxx {
		t.Fatalf("ParseCXXStdlib(libc++) = %v, %v", s, err)
	}
	if _, err := ParseCXXStdlib("stlport"); err == nil {
		t.Fatalf("expected error")
	}
}
