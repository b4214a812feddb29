package cli

import (
	"fmt"

	"github.com/atomicstack/tav/internal/app"
	"github.com/spf13/cobra"
)

var buildFeed = app.BuildFeed

func newFeedCommand(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Print the picker input without starting a picker",
		Long: `Print the lines tav would hand to the picker. Each line is a selector key,
a tab, and the display text. Use --plain to drop colours.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fd, err := buildFeed(rt.cfg.App)
			if err != nil {
				return err
			}
			if fd.Empty() {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), fd.Payload())
			return err
		},
	}
}
