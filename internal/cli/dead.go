package cli

import (
	"fmt"

	"github.com/atomicstack/tav/internal/app"
	"github.com/atomicstack/tav/internal/format/table"
	"github.com/spf13/cobra"
)

var deadSessions = app.DeadSessions

func newDeadCommand(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "dead",
		Short: "List saved sessions",
		Long: `List the session scripts in the sessions directory. Sessions that are
currently running are marked "live"; the rest are what the picker offers to
resurrect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := deadSessions(rt.cfg.App)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				status := ""
				if entry.Live {
					status = "live"
				}
				rows = append(rows, []string{entry.Name, status})
			}
			out := cmd.OutOrStdout()
			for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft}) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
