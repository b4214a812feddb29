package cli

import (
	"fmt"

	"github.com/atomicstack/tav/internal/app"
	"github.com/spf13/cobra"
)

var resurrect = app.Resurrect

func newResurrectCommand(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "resurrect <name>",
		Short: "Run a saved session script and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := resurrect(cmd.Context(), rt.cfg.App, args[0])
			if res.Output != "" {
				fmt.Fprint(cmd.OutOrStdout(), res.Output)
			}
			return err
		},
	}
}
