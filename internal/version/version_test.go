package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestSummary(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "1.2.3-rc.1", "abc123", "2026-01-15"
	want := "ccdriver 1.2.3-rc.1 (abc123) built 2026-01-15"
	if got := Summary(false); got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}

	GitCommit, BuildDate = "", ""
	if got := Summary(false); got != "ccdriver 1.2.3-rc.1" {
		t.Fatalf("Summary without optional fields = %q", got)
	}
}

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()

	color.NoColor = false
	Version = "0.1.0-dev"
	got := Colored()
	if !strings.HasSuffix(got, "-dev") || !strings.Contains(got, "\x1b[") {
		t.Fatalf("Colored = %q", got)
	}

	Version = "snapshot"
	if got := Colored(); got != "snapshot" {
		t.Fatalf("non-semver Colored = %q", got)
	}
}
