package triple

import "testing"

func TestParseClassifiesArch(t *testing.T) {
	tests := []struct {
		in   string
		arch Arch
		is64 bool
	}{
		{"x86_64-pc-genode", X86_64, true},
		{"amd64-unknown-genode", X86_64, true},
		{"i686-pc-genode", X86, false},
		{"arm-none-genode", ARM, false},
		{"armv7a-none-genode-eabi", ARM, false},
		{"aarch64-unknown-genode", AArch64, true},
		{"arm64-unknown-genode", AArch64, true},
		{"riscv64-unknown-genode", RISCV64, true},
		{"mips-unknown-genode", UnknownArch, false},
		{"armeb-none-genode", UnknownArch, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tr, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if tr.Arch() != tt.arch {
				t.Errorf("Arch() = %v, want %v", tr.Arch(), tt.arch)
			}
			if tr.Is64Bit() != tt.is64 {
				t.Errorf("Is64Bit() = %v, want %v", tr.Is64Bit(), tt.is64)
			}
			if tr.String() != tt.in {
				t.Errorf("String() = %q, want %q", tr.String(), tt.in)
			}
		})
	}
}

func TestParseComponents(t *testing.T) {
	tr := MustParse("armv7a-none-genode-eabihf")
	if tr.ArchName() != "armv7a" || tr.Vendor() != "none" || tr.OS() != "genode" || tr.Environment() != "eabihf" {
		t.Fatalf("unexpected components: %q %q %q %q", tr.ArchName(), tr.Vendor(), tr.OS(), tr.Environment())
	}

	short := MustParse("x86_64")
	if short.Vendor() != "unknown" || short.OS() != "unknown" || short.Environment() != "" {
		t.Fatalf("missing components should default: %q %q %q", short.Vendor(), short.OS(), short.Environment())
	}
	if !short.IsX86() {
		t.Fatalf("x86_64 should be x86")
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "-pc-genode"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}
