// Package main implements the ccdriver CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ccdriver/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ccdriver",
	Short: "Genode clang toolchain driver",
	Long: `ccdriver builds assembler and linker jobs for Genode targets the way
the clang driver does, using a companion GCC cross toolchain for headers,
libraries and binutils.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		useColor, err := resolveColor(mode, os.Stdout)
		if err != nil {
			return err
		}
		color.NoColor = !useColor
		return nil
	},
}

func main() {
	// версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(includesCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "ccdriver: %s %v\n", errorColor.Sprint("error:"), err)
		}
		os.Exit(1)
	}
}

// registerGlobalFlags adds the flags every subcommand reads.
func registerGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("config", "", "path to ccdriver.toml (default: search upwards from the working directory)")
	pf.String("target", "", "target triple (default "+defaultTarget+")")
	pf.String("variant", "", "Genode default set (classic|lld)")
	pf.Bool("build-id", false, "pass --build-id to every link")
	pf.String("linker", "", "override the variant's default linker name")
	pf.String("driver-dir", "", "directory searched first for tools (default: the ccdriver binary's directory)")
	pf.String("resource-dir", "", "compiler resource directory")
	pf.String("sysroot", "", "target sysroot")
	pf.String("companion-root", "", "companion GCC <prefix>/lib directory")
	pf.String("companion-triple", "", "pin the companion GCC triple")
	pf.String("companion-version", "", "companion GCC version directory name")
	pf.String("companion-gcc-suffix", "", "multilib suffix for GCC library directories")
	pf.String("companion-os-suffix", "", "multilib suffix for OS library directories")
	pf.String("companion-include-suffix", "", "multilib suffix for the libstdc++ target include directory")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diag-format", "pretty", "diagnostic layout (pretty|short)")
	pf.Bool("fatal-warnings", false, "fail when any warning is reported")

	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
