package gcc

import (
	"testing"

	"ccdriver/internal/triple"
	"ccdriver/internal/vfs"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		text                string
		major, minor, patch int
		majorStr, minorStr  string
	}{
		{"10.3.0", 10, 3, 0, "10", "3"},
		{"8.2", 8, 2, 0, "8", "2"},
		{"12", 12, -1, -1, "12", ""},
		{"13.2.1_p20230826", 13, 2, 1, "13", "2"},
		{"trunk", -1, -1, -1, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v := ParseVersion(tt.text)
			if v.Text != tt.text {
				t.Fatalf("Text = %q", v.Text)
			}
			if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
				t.Fatalf("version = %d.%d.%d, want %d.%d.%d", v.Major, v.Minor, v.Patch, tt.major, tt.minor, tt.patch)
			}
			if v.MajorStr != tt.majorStr || v.MinorStr != tt.minorStr {
				t.Fatalf("strings = %q.%q, want %q.%q", v.MajorStr, v.MinorStr, tt.majorStr, tt.minorStr)
			}
		})
	}
}

func TestInstallPath(t *testing.T) {
	var missing Installation
	if missing.IsValid() || missing.InstallPath() != "" {
		t.Fatalf("zero installation must be invalid, path %q", missing.InstallPath())
	}

	inst := Installation{Valid: true, ParentLibPath: "/usr/local/genode/tool/lib", Triple: "x86_64-pc-elf", Version: ParseVersion("10.3.0")}
	if got, want := inst.InstallPath(), "/usr/local/genode/tool/lib/gcc/x86_64-pc-elf/10.3.0"; got != want {
		t.Fatalf("InstallPath() = %q, want %q", got, want)
	}
}

func TestConfiguredScanner(t *testing.T) {
	fs := vfs.Memory()
	if err := fs.MkdirAll("/tool/lib/gcc/x86_64-pc-elf/10.3.0", 0o755); err != nil {
		t.Fatal(err)
	}
	target := triple.MustParse("x86_64-pc-genode")

	s := ConfiguredScanner{FS: fs, ParentLibPath: "/tool/lib", Version: "10.3.0", Multilib: Multilib{GCCSuffix: "/64"}}
	inst := s.Scan(target, []string{"x86_64-pc-elf"})
	if !inst.Valid || inst.Triple != "x86_64-pc-elf" || inst.Multilib.GCCSuffix != "/64" {
		t.Fatalf("installation = %+v", inst)
	}

	if s.Scan(target, nil).Valid {
		t.Fatalf("no candidates and no pinned triple must not match")
	}
	if s.Scan(target, []string{"aarch64-none-elf"}).Valid {
		t.Fatalf("absent triple must not match")
	}

	pinned := s
	pinned.Triple = "x86_64-pc-elf"
	if !pinned.Scan(target, nil).Valid {
		t.Fatalf("pinned triple must match")
	}

	wrongVersion := s
	wrongVersion.Version = "9.0.0"
	if wrongVersion.Scan(target, []string{"x86_64-pc-elf"}).Valid {
		t.Fatalf("absent version must not match")
	}

	if (NopScanner{}).Scan(target, []string{"x86_64-pc-elf"}).Valid {
		t.Fatalf("NopScanner must find nothing")
	}
}
