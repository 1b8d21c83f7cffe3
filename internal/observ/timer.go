// Package observ records how long the phases of one CLI invocation take.
package observ

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Phase is one measured step.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects phases in the order they finish. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	phases []Phase
}

// NewTimer creates an empty Timer.
func NewTimer() *Timer { return &Timer{now: time.Now} }

// Start begins a phase; calling the returned func finishes it. A nil
// Timer hands out no-op funcs so callers need not check.
func (t *Timer) Start(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	begin := t.now()
	return func(note string) {
		dur := t.now().Sub(begin)
		t.mu.Lock()
		t.phases = append(t.phases, Phase{Name: name, Dur: dur, Note: note})
		t.mu.Unlock()
	}
}

// Record adds an externally measured phase.
func (t *Timer) Record(name string, dur time.Duration, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.phases = append(t.phases, Phase{Name: name, Dur: dur, Note: note})
	t.mu.Unlock()
}

// Phases returns a copy of the finished phases.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// Total sums every finished phase.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, p := range t.Phases() {
		total += p.Dur
	}
	return total
}

// WriteSummary prints one aligned line per phase and the total.
func (t *Timer) WriteSummary(w io.Writer) error {
	phases := t.Phases()
	if len(phases) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "timings:"); err != nil {
		return err
	}
	for _, p := range phases {
		line := fmt.Sprintf("  %-12s %8.2f ms", p.Name, toMillis(p.Dur))
		if p.Note != "" {
			line += "  // " + p.Note
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-12s %8.2f ms\n", "total", toMillis(t.Total()))
	return err
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
