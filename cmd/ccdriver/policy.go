package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"ccdriver/internal/toolchain"
	"ccdriver/internal/toolchain/genode"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show the platform defaults of the selected variant",
	Args:  cobra.NoArgs,
	RunE:  policyExecution,
}

func init() {
	policyCmd.Flags().Bool("all", false, "show every variant side by side")
}

func policyExecution(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	return runWithSession(cmd, func(sess *session) error {
		if !all {
			p := sess.tc.Policy()
			p.DefaultLinker = sess.tc.DefaultLinker()
			header := []string{"query", sess.tc.Variant().String()}
			renderPolicyTable(cmd.OutOrStdout(), header, []toolchain.Policy{p})
			return nil
		}
		header := []string{"query"}
		var policies []toolchain.Policy
		for _, v := range genode.Variants() {
			p, err := genode.PolicyFor(v)
			if err != nil {
				return err
			}
			header = append(header, v.String())
			policies = append(policies, p)
		}
		renderPolicyTable(cmd.OutOrStdout(), header, policies)
		return nil
	})
}

// renderPolicyTable prints one row per query and one column per policy.
// Columns are padded by display width.
func renderPolicyTable(out io.Writer, header []string, policies []toolchain.Policy) {
	rows := [][]string{header}
	columns := make([][]toolchain.PolicyRow, len(policies))
	for i, p := range policies {
		columns[i] = p.Rows()
	}
	if len(columns) > 0 {
		for i, r := range columns[0] {
			row := []string{r.Query}
			for _, col := range columns {
				row = append(row, col[i].Value)
			}
			rows = append(rows, row)
		}
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(out, strings.Join(cells, "  "))
	}
}
