package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/atomicstack/tav/internal/app"
	"github.com/atomicstack/tav/internal/config"
	"github.com/atomicstack/tav/internal/logging"
	"github.com/atomicstack/tav/internal/logging/events"
	"github.com/spf13/cobra"
)

// state is shared by the root command and its subcommands once the
// persistent flags have been resolved.
type state struct {
	args    []string
	environ []string
	flags   *config.Flags
	cfg     config.Config
}

var runApp = app.Run

// configError marks failures that happen before any work starts.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// NewRootCommand builds the tav command tree for args and environ.
func NewRootCommand(args, environ []string) *cobra.Command {
	rt := &state{args: args, environ: environ}
	root := &cobra.Command{
		Use:   "tav",
		Short: "Jump to a tmux window or bring back a saved session",
		Long: `tav lists every live tmux session with its windows, followed by the
saved sessions under the sessions directory that are not running, and hands
the list to fzf (or a builtin picker). Picking a session or window switches
the client to it; picking a saved session runs its script first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := runApp(cmd.Context(), rt.cfg.App)
			if res.Output != "" {
				fmt.Fprint(cmd.OutOrStdout(), res.Output)
			}
			return err
		},
	}
	rt.flags = config.AddFlags(root.PersistentFlags())
	root.AddCommand(newFeedCommand(rt), newResurrectCommand(rt), newDeadCommand(rt))
	// cobra falls back to os.Args when given nil.
	root.SetArgs(append([]string{}, args...))
	return root
}

func (rt *state) setup() error {
	cfg, err := rt.flags.Resolve(rt.args, rt.environ)
	if err != nil {
		return configError{err}
	}
	if err := config.Validate(cfg); err != nil {
		return configError{err}
	}
	if err := logging.Setup(logging.Options{
		File:  cfg.Logging.FilePath,
		Level: cfg.Logging.Level,
		Trace: cfg.Logging.Trace,
	}); err != nil {
		return configError{err}
	}
	rt.cfg = cfg
	traceStartup(cfg)
	return nil
}

// Execute runs tav with the process arguments and exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, NewRootCommand(os.Args[1:], os.Environ()))
	stop()
	code := report(os.Stderr, err)
	logging.Close()
	os.Exit(code)
}

// run executes cmd and turns a panic into an ordinary error, so a crash
// inside a popup still leaves a message and a log record behind.
func run(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debug("panic", "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cmd.ExecuteContext(ctx)
}

// report prints err and returns the exit status for it.
func report(w io.Writer, err error) int {
	events.App.Exit(err)
	if err == nil {
		return 0
	}
	var cfgErr configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(w, "Configuration error: %v\n", err)
		return 2
	}
	logging.Error(err)
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
