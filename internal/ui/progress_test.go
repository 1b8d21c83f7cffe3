package ui

import (
	"strings"
	"testing"
	"time"

	"ccdriver/internal/runner"
)

func TestProgressModelTracksJobs(t *testing.T) {
	events := make(chan runner.Event)
	m := NewProgressModel("x86_64-pc-genode", []string{"crt0.o", "image"}, events).(*progressModel)

	m.Update(eventMsg{Job: "crt0.o", Stage: runner.StageAssemble, Status: runner.StatusWorking})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}
	if !strings.Contains(m.View(), "assembling") {
		t.Fatalf("view misses working label:\n%s", m.View())
	}

	m.Update(eventMsg{Job: "crt0.o", Stage: runner.StageAssemble, Status: runner.StatusDone, Elapsed: 3 * time.Millisecond})
	m.Update(eventMsg{Job: "image", Stage: runner.StageLink, Status: runner.StatusError})
	m.Update(eventMsg{Job: "unknown", Status: runner.StatusDone})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
	view := m.View()
	if !strings.Contains(view, "failed: x86_64-pc-genode (image)") {
		t.Fatalf("view misses failure header:\n%s", view)
	}
	if !strings.Contains(view, "3ms") {
		t.Fatalf("view misses elapsed time:\n%s", view)
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatalf("doneMsg must quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("lib/gcc/x86_64-pc-elf/10.3.0/crtbegin.o", 12); got != "lib/gcc/x..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("короткий", 20); got != "короткий" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("lib/libc.lib.so", 8); got != "lib/l..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}
