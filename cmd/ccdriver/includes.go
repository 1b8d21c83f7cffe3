package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var includesCmd = &cobra.Command{
	Use:   "includes [flags] -- <compiler args>",
	Short: "Show the system and C++ standard library include arguments",
	Long: `Show the include arguments the descriptor adds to a C++ compile job for
the given arguments, one flag and path per line. Only -nostdinc,
-nostdlibinc, -nostdinc++, -nobuiltininc and -stdlib= affect the result.`,
	RunE: includesExecution,
}

func includesExecution(cmd *cobra.Command, args []string) error {
	return runWithSession(cmd, func(sess *session) error {
		list, err := sess.parseArgs(args)
		if err != nil {
			return err
		}
		out := sess.tc.AddClangSystemIncludeArgs(list, nil)
		out = sess.tc.AddClangCXXStdlibIncludeArgs(list, out)
		for i := 0; i+1 < len(out); i += 2 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out[i], out[i+1])
		}
		return nil
	})
}
