package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ccdriver/internal/trace"
)

// BuildJobs constructs the command for every action and queues them on c
// in action order. Job builders only read toolchain state, so actions are
// built concurrently; jobs <= 0 means GOMAXPROCS.
func BuildJobs(ctx context.Context, c *Compilation, tc ToolChain, actions []*JobAction, jobs int) error {
	if len(actions) == 0 {
		return nil
	}
	tracer := c.Driver.Trace()
	span := trace.Begin(tracer, trace.ScopeDriver, "build_jobs", trace.CurrentSpan(ctx))
	defer span.WithExtra("actions", fmt.Sprint(len(actions))).End(tc.TripleString())

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// каждая горутина пишет в свой слот, порядок восстанавливается ниже
	local := make([]*Compilation, len(actions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(actions)))

	for i, ja := range actions {
		i, ja := i, ja
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			tool, err := tc.SelectTool(ja.Kind)
			if err != nil {
				return fmt.Errorf("%s %s: %w", ja.Kind, ja.Output, err)
			}
			jobSpan := trace.Begin(tracer, trace.ScopeJob, "job:"+ja.Kind.String(), span.ID())
			sub := c.fork()
			if err := tool.ConstructJob(sub, ja, ja.Output, ja.Inputs, c.Args); err != nil {
				jobSpan.End("error")
				return fmt.Errorf("%s: %w", tool.Name(), err)
			}
			jobSpan.End(ja.Output.String())
			local[i] = sub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, sub := range local {
		for _, cmd := range sub.jobs {
			c.AddCommand(cmd)
		}
	}
	return nil
}
