package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"ccdriver/internal/driver"
)

type recorder struct {
	mu    sync.Mutex
	argv  [][]string
	fail  string
	order []string
}

func (r *recorder) exec(_ context.Context, argv []string, _ io.Writer) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.argv = append(r.argv, argv)
	r.order = append(r.order, argv[len(argv)-1])
	if r.fail != "" && strings.Contains(strings.Join(argv, " "), r.fail) {
		return "fatal error: bad input\n", errors.New("exit status 1")
	}
	return "", nil
}

type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func commands() []*driver.Command {
	return []*driver.Command{
		{Kind: driver.AssembleJob, Executable: "as", Arguments: []string{"-o", "a.o", "a.s"}, Output: driver.FileInput("a.o", driver.TypeObject)},
		{Kind: driver.AssembleJob, Executable: "as", Arguments: []string{"-o", "b.o", "b.s"}, Output: driver.FileInput("b.o", driver.TypeObject)},
		{Kind: driver.LinkJob, Executable: "ld", Arguments: []string{"a.o", "b.o", "-o", "img"}, Output: driver.FileInput("img", driver.TypeImage)},
	}
}

func TestRunOrdersLinkAfterAssembly(t *testing.T) {
	rec := &recorder{}
	sink := &collectSink{}
	var out bytes.Buffer
	timings, err := Run(context.Background(), commands(), Options{Exec: rec.exec, Progress: sink, PrintCommands: true, Stdout: &out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.order) != 3 || rec.order[2] != "img" {
		t.Fatalf("order = %v", rec.order)
	}
	if !timings.Has(StageAssemble) || !timings.Has(StageLink) {
		t.Fatalf("timings missing stages")
	}
	if !strings.Contains(out.String(), "ld a.o b.o -o img\n") {
		t.Fatalf("printed commands:\n%s", out.String())
	}

	done := 0
	for _, e := range sink.events {
		if e.Status == StatusDone {
			done++
		}
	}
	if len(sink.events) != 9 || done != 3 {
		t.Fatalf("events = %+v", sink.events)
	}
}

func TestRunStopsOnFailure(t *testing.T) {
	rec := &recorder{fail: "b.s"}
	sink := &collectSink{}
	_, err := Run(context.Background(), commands(), Options{Exec: rec.exec, Progress: sink, Jobs: 1})
	if err == nil || !strings.Contains(err.Error(), "as: fatal error: bad input") {
		t.Fatalf("err = %v", err)
	}
	for _, argv := range rec.argv {
		if argv[0] == "ld" {
			t.Fatalf("linker ran after assembler failure")
		}
	}
	var sawError bool
	for _, e := range sink.events {
		if e.Job == "b.o" && e.Status == StatusError && e.Err != nil {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("no error event: %+v", sink.events)
	}
}

func TestResponseFile(t *testing.T) {
	long := strings.Repeat("x", maxCommandBytes)
	cmd := &driver.Command{Executable: "as", Arguments: []string{"-o", "it's.o", long}, Response: driver.ResponseGCC}

	argv, cleanup, err := responseArgv(cmd, t.TempDir())
	if err != nil {
		t.Fatalf("responseArgv: %v", err)
	}
	defer cleanup()
	if len(argv) != 2 || !strings.HasPrefix(argv[1], "@") {
		t.Fatalf("argv = %q", argv)
	}
	data, err := os.ReadFile(argv[1][1:])
	if err != nil {
		t.Fatalf("read response file: %v", err)
	}
	if !strings.HasPrefix(string(data), "-o\n'it'\\''s.o'\n") {
		t.Fatalf("response file starts with %q", string(data[:20]))
	}

	cmd.Response = driver.ResponseNone
	argv, _, err = responseArgv(cmd, t.TempDir())
	if err != nil || len(argv) != 4 {
		t.Fatalf("commands without response support keep argv, got %d args, %v", len(argv), err)
	}
}

func TestExecProcess(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no sh in PATH")
	}
	var out bytes.Buffer
	if _, err := execProcess(context.Background(), []string{sh, "-c", "echo ok"}, &out); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if out.String() != "ok\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	stderr, err := execProcess(context.Background(), []string{sh, "-c", "echo nope >&2; exit 3"}, io.Discard)
	if err == nil || strings.TrimSpace(stderr) != "nope" {
		t.Fatalf("stderr = %q, err = %v", stderr, err)
	}
}
