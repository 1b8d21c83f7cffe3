package options

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseForms(t *testing.T) {
	list := MustParse("-L/opt/lib", "-L", "/usr/lib", "-Tlink.ld", "-Ttext", "0x1000", "-e", "_start",
		"-mcmodel=large", "-Wl,--gc-sections,-Map=out.map", "-z", "max-page-size=0x1000", "-lfoo", "a.o")

	got := list.AddAllArgs(nil, OptL, OptTGroup, OptE)
	want := []string{"-L/opt/lib", "-L/usr/lib", "-T", "link.ld", "-Ttext", "0x1000", "-e", "_start"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AddAllArgs = %q, want %q", got, want)
	}

	if v := list.LastArgValue("", OptMCModel); v != "large" {
		t.Fatalf("mcmodel = %q", v)
	}

	var inputs []string
	for _, a := range list.Inputs() {
		inputs = a.RenderAsInput(inputs)
	}
	wantInputs := []string{"--gc-sections", "-Map=out.map", "-z", "max-page-size=0x1000", "-lfoo", "a.o"}
	if !reflect.DeepEqual(inputs, wantInputs) {
		t.Fatalf("inputs = %q, want %q", inputs, wantInputs)
	}
}

func TestFlagsMatchExactly(t *testing.T) {
	list := MustParse("-static", "-shared", "-s", "-S", "-stdlib=libstdc++", "-nostdinc++")
	ids := []ID{OptStatic, OptShared, OptS, OptUpperS, OptStdlib, OptNoStdIncxx}
	args := list.Args()
	if len(args) != len(ids) {
		t.Fatalf("got %d args, want %d", len(args), len(ids))
	}
	for i, id := range ids {
		if args[i].ID() != id {
			t.Errorf("arg %d (%s) has id %d, want %d", i, args[i], args[i].ID(), id)
		}
	}
}

func TestClaimTracking(t *testing.T) {
	list := MustParse("-mtune=cortex-a53", "-mtune=generic", "-static", "-fno-exceptions", "main.o")
	list.ClaimAllArgs(OptMTune)
	if !list.HasArg(OptStatic) {
		t.Fatalf("expected -static")
	}
	unclaimed := list.Unclaimed()
	if len(unclaimed) != 1 || unclaimed[0].ID() != OptUnknown || unclaimed[0].String() != "-fno-exceptions" {
		t.Fatalf("unexpected unclaimed args: %v", unclaimed)
	}
}

func TestHasFlagDoesNotClaim(t *testing.T) {
	list := MustParse("-shared")
	if !list.HasFlag(OptShared) {
		t.Fatalf("HasFlag(-shared) = false")
	}
	if len(list.Unclaimed()) != 1 {
		t.Fatalf("HasFlag must not claim")
	}
}

func TestMissingValue(t *testing.T) {
	for _, argv := range [][]string{{"-L"}, {"-z"}, {"a.o", "-o"}} {
		if _, err := Parse(argv); !errors.Is(err, ErrMissingValue) {
			t.Errorf("Parse(%q) error = %v, want ErrMissingValue", argv, err)
		}
	}
	var missing *MissingValueError
	if _, err := Parse([]string{"-T"}); !errors.As(err, &missing) || missing.Option != "-T" {
		t.Fatalf("error = %v, want MissingValueError for -T", err)
	}
	if missing.ID != OptT || missing.Help() != "linker script" {
		t.Fatalf("missing = %+v, help %q", missing, missing.Help())
	}
	if (&MissingValueError{Option: "-q"}).Help() != "" {
		t.Fatalf("unknown option must have no help")
	}
}

func TestDoubleDashMakesInputs(t *testing.T) {
	list := MustParse("-c", "--", "-weird.o", "b.o")
	in := list.Inputs()
	if len(in) != 2 || in[0].Value() != "-weird.o" || in[1].Value() != "b.o" {
		t.Fatalf("unexpected inputs: %v", in)
	}
}
