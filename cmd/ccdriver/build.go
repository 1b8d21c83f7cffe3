package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ccdriver/internal/driver"
	"ccdriver/internal/plan"
	"ccdriver/internal/runner"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] -- <compiler args>",
	Short: "Build jobs for the given arguments and run them",
	Long: `Build the assembler and linker jobs for the given arguments and run
them: assembler jobs in parallel, then the link.`,
	RunE: buildExecution,
}

var execCmd = &cobra.Command{
	Use:   "exec [flags] <plan>",
	Short: "Run the jobs stored in a plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  execExecution,
}

func init() {
	for _, c := range []*cobra.Command{buildCmd, execCmd} {
		c.Flags().IntP("jobs", "j", 0, "parallel assembler jobs (0 = GOMAXPROCS)")
		c.Flags().Bool("print-commands", false, "print each command before running it")
		c.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	}
	buildCmd.Flags().Bool("cache", false, "reuse jobs built earlier for the same arguments")
	buildCmd.Flags().Bool("clear-cache", false, "drop every cached plan before building")
}

type execFlags struct {
	jobs          int
	printCommands bool
	ui            uiMode
}

func readExecFlags(cmd *cobra.Command) (execFlags, error) {
	var f execFlags
	var err error
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, err
	}
	if f.printCommands, err = cmd.Flags().GetBool("print-commands"); err != nil {
		return f, err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	return f, nil
}

func buildExecution(cmd *cobra.Command, args []string) error {
	flags, err := readExecFlags(cmd)
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(sess *session) error {
		var (
			cache *plan.Cache
			key   plan.Key
		)
		if useCache || clearCache {
			if cache, err = plan.OpenCache("ccdriver"); err != nil {
				return err
			}
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return err
			}
		}
		if useCache {
			if key, err = sess.planKey(args); err != nil {
				return err
			}
			if f, ok, err := cache.Get(key); err != nil {
				return err
			} else if ok {
				return sess.execute(cmd, f.Commands(), flags)
			}
		}

		cmds, err := sess.buildCommands(cmd, args, flags.jobs)
		if err != nil {
			return err
		}
		if useCache {
			f := plan.New(sess.tc.TripleString(), sess.tc.Variant().String(), cmds)
			if err := cache.Put(key, f); err != nil {
				return err
			}
		}
		return sess.execute(cmd, cmds, flags)
	})
}

func execExecution(cmd *cobra.Command, args []string) error {
	flags, err := readExecFlags(cmd)
	if err != nil {
		return err
	}
	return runWithSession(cmd, func(sess *session) error {
		f, err := plan.ReadFile(args[0])
		if err != nil {
			return err
		}
		if f.Target != sess.tc.TripleString() && !sess.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "ccdriver: plan was built for %s\n", f.Target)
		}
		return sess.execute(cmd, f.Commands(), flags)
	})
}

// planKey identifies the jobs argv builds from the current directory
// with this driver and configuration.
func (s *session) planKey(argv []string) (plan.Key, error) {
	wd, err := os.Getwd()
	if err != nil {
		return plan.Key{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	scope := append([]string{s.driver.Dir, s.settings.ConfigPath, s.settings.Linker, fmt.Sprint(s.settings.BuildID)}, argv...)
	return plan.KeyFor(s.tc.TripleString(), s.tc.Variant().String(), wd, scope), nil
}

// execute runs cmds, with the progress UI when enabled.
func (s *session) execute(cmd *cobra.Command, cmds []*driver.Command, flags execFlags) error {
	s.missingPrograms(cmds)

	opts := runner.Options{
		Jobs:          flags.jobs,
		PrintCommands: flags.printCommands,
		Stdout:        cmd.OutOrStdout(),
	}
	var (
		timings runner.Timings
		err     error
	)
	if shouldUseTUI(flags.ui) && !s.quiet {
		timings, err = runWithUI(cmd.Context(), s.tc.TripleString(), cmds, opts)
	} else {
		timings, err = runner.Run(cmd.Context(), cmds, opts)
	}
	recordStageTimings(s.timer, timings)
	return err
}
