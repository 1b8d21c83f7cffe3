package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ccdriver/internal/driver"
	"ccdriver/internal/plan"
	"ccdriver/internal/trace"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs [flags] -- <compiler args>",
	Short: "Build assembler and linker jobs and print them",
	Long: `Build the assembler and linker jobs clang would run for the given
arguments and print them without executing anything. With --emit the jobs
are stored in a plan file that "ccdriver exec" can run later.`,
	RunE: jobsExecution,
}

func init() {
	jobsCmd.Flags().String("format", "text", "output format (text|json)")
	jobsCmd.Flags().String("emit", "", "write the jobs to a plan file instead of printing them")
	jobsCmd.Flags().IntP("jobs", "j", 0, "parallel job construction (0 = GOMAXPROCS)")
}

type jobPayload struct {
	Creator    string   `json:"creator"`
	Kind       string   `json:"kind"`
	Executable string   `json:"executable"`
	Arguments  []string `json:"arguments"`
	Inputs     []string `json:"inputs,omitempty"`
	Output     string   `json:"output,omitempty"`
}

func jobsExecution(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	emit, err := cmd.Flags().GetString("emit")
	if err != nil {
		return err
	}
	parallel, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}

	return runWithSession(cmd, func(sess *session) error {
		cmds, err := sess.buildCommands(cmd, args, parallel)
		if err != nil {
			return err
		}
		if emit != "" {
			f := plan.New(sess.tc.TripleString(), sess.tc.Variant().String(), cmds)
			if err := plan.WriteFile(emit, f); err != nil {
				return err
			}
			if !sess.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d jobs to %s\n", len(cmds), emit)
			}
			return nil
		}
		if format == "json" {
			return renderJobsJSON(cmd.OutOrStdout(), cmds)
		}
		for _, c := range cmds {
			fmt.Fprintln(cmd.OutOrStdout(), c.String())
		}
		return nil
	})
}

// runWithSession sets up profiling, tracing and a session, runs fn and
// prints the collected diagnostics.
func runWithSession(cmd *cobra.Command, fn func(*session) error) (err error) {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err) }()

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	runErr := fn(sess)
	if sess.flush(cmd) && runErr == nil {
		runErr = errDiagnostics
	}
	if showTimings {
		if err := sess.timer.WriteSummary(cmd.ErrOrStderr()); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// buildCommands plans actions for argv and builds their jobs in order.
// Arguments nothing claimed are reported afterwards.
func (s *session) buildCommands(cmd *cobra.Command, argv []string, parallel int) ([]*driver.Command, error) {
	args, err := s.parseArgs(argv)
	if err != nil {
		return nil, err
	}
	span := trace.Begin(s.driver.Trace(), trace.ScopeDriver, "jobs", 0)
	defer span.End(s.tc.TripleString())
	built := s.timer.Start("jobs")

	c := driver.NewCompilation(s.driver, args)
	actions := driver.PlanActions(s.driver, args)
	if s.bag.HasErrors() {
		return nil, errDiagnostics
	}
	ctx := trace.WithSpan(cmd.Context(), span)
	if err := driver.BuildJobs(ctx, c, s.tc, actions, parallel); err != nil {
		return nil, err
	}
	c.ReportUnusedArgs()
	if s.bag.HasErrors() {
		return nil, errDiagnostics
	}
	jobs := c.Jobs()
	built(fmt.Sprintf("%d jobs", len(jobs)))
	return jobs, nil
}

func renderJobsJSON(out io.Writer, cmds []*driver.Command) error {
	payload := make([]jobPayload, 0, len(cmds))
	for _, c := range cmds {
		payload = append(payload, jobPayload{
			Creator:    c.Creator,
			Kind:       c.Kind.String(),
			Executable: c.Executable,
			Arguments:  c.Arguments,
			Inputs:     c.InputFilenames(),
			Output:     c.Output.Filename(),
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
