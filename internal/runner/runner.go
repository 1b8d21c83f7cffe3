// Package runner executes the commands queued by job builders.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ccdriver/internal/driver"
	"ccdriver/internal/trace"
)

// ExecFunc runs one process. Stdout goes to stdout; whatever the process
// wrote to stderr is returned alongside the error.
type ExecFunc func(ctx context.Context, argv []string, stdout io.Writer) (stderr string, err error)

// Options configures Run.
type Options struct {
	// Jobs bounds parallel assembler jobs; <= 0 means GOMAXPROCS.
	Jobs          int
	PrintCommands bool
	Stdout        io.Writer
	Progress      ProgressSink
	// Exec defaults to running the process with os/exec.
	Exec ExecFunc
	// TempDir receives response files; "" means os.TempDir.
	TempDir string
}

// maxCommandBytes is the argv size above which commands that accept
// response files get one.
const maxCommandBytes = 128 << 10

// Run executes cmds: assembler jobs in parallel, then link jobs in order.
// It stops at the first failure.
func Run(ctx context.Context, cmds []*driver.Command, opts Options) (Timings, error) {
	var timings Timings
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Exec == nil {
		opts.Exec = execProcess
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}

	var assemble, link []*driver.Command
	for _, cmd := range cmds {
		emit(opts.Progress, cmd, StatusQueued, nil, 0)
		if cmd.Kind == driver.LinkJob {
			link = append(link, cmd)
		} else {
			assemble = append(assemble, cmd)
		}
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "run", trace.CurrentSpan(ctx))
	defer span.End("")

	if len(assemble) > 0 {
		start := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(opts.Jobs, len(assemble)))
		for _, cmd := range assemble {
			cmd := cmd
			g.Go(func() error {
				return runOne(gctx, cmd, opts, span.ID())
			})
		}
		err := g.Wait()
		timings.Set(StageAssemble, time.Since(start))
		if err != nil {
			return timings, err
		}
	}

	if len(link) > 0 {
		start := time.Now()
		for _, cmd := range link {
			if err := runOne(ctx, cmd, opts, span.ID()); err != nil {
				timings.Set(StageLink, time.Since(start))
				return timings, err
			}
		}
		timings.Set(StageLink, time.Since(start))
	}
	return timings, nil
}

func runOne(ctx context.Context, cmd *driver.Command, opts Options, parent uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeJob, "exec:"+cmd.Kind.String(), parent)
	start := time.Now()
	emit(opts.Progress, cmd, StatusWorking, nil, 0)

	argv, cleanup, err := responseArgv(cmd, opts.TempDir)
	if err != nil {
		emit(opts.Progress, cmd, StatusError, err, time.Since(start))
		span.End("error")
		return err
	}
	defer cleanup()

	if opts.PrintCommands {
		if _, printErr := fmt.Fprintln(opts.Stdout, cmd.String()); printErr != nil {
			return fmt.Errorf("failed to print command: %w", printErr)
		}
	}

	stderr, err := opts.Exec(ctx, argv, opts.Stdout)
	elapsed := time.Since(start)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			err = fmt.Errorf("%s: %s: %w", cmd.Executable, msg, err)
		} else {
			err = fmt.Errorf("%s: %w", cmd.Executable, err)
		}
		emit(opts.Progress, cmd, StatusError, err, elapsed)
		span.End("error")
		return err
	}
	emit(opts.Progress, cmd, StatusDone, nil, elapsed)
	span.End(cmd.Output.Filename())
	return nil
}

// responseArgv moves the arguments into an @file when the command allows
// it and the argv is too long for the host.
func responseArgv(cmd *driver.Command, dir string) ([]string, func(), error) {
	argv := cmd.Argv()
	size := 0
	for _, a := range argv {
		size += len(a) + 1
	}
	if cmd.Response == driver.ResponseNone || size <= maxCommandBytes {
		return argv, func() {}, nil
	}

	f, err := os.CreateTemp(dir, "ccdriver-*.rsp")
	if err != nil {
		return nil, nil, fmt.Errorf("response file: %w", err)
	}
	quoted := make([]string, len(cmd.Arguments))
	for i, a := range cmd.Arguments {
		quoted[i] = driver.Quote(a)
	}
	_, werr := f.WriteString(strings.Join(quoted, "\n") + "\n")
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(f.Name())
		return nil, nil, fmt.Errorf("response file: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	return []string{cmd.Executable, "@" + f.Name()}, cleanup, nil
}

func execProcess(ctx context.Context, argv []string, stdout io.Writer) (string, error) {
	// #nosec G204 -- argv is built by the toolchain job builders
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdout = stdout
	var stderr strings.Builder
	c.Stderr = &stderr
	err := c.Run()
	return stderr.String(), err
}

func emit(sink ProgressSink, cmd *driver.Command, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	stage := StageAssemble
	if cmd.Kind == driver.LinkJob {
		stage = StageLink
	}
	sink.OnEvent(Event{Job: JobName(cmd), Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// JobName labels a command in progress output.
func JobName(cmd *driver.Command) string {
	if name := cmd.Output.Filename(); name != "" {
		return name
	}
	return cmd.Executable
}
