package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/allstar/internal/ir"
	"github.com/roach88/allstar/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Journal string
}

// TraceResult holds the trace output.
type TraceResult struct {
	Namespace  string     `json:"namespace,omitempty"`
	Namespaces []string   `json:"namespaces"`
	Events     []ir.Event `json:"events"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [namespace]",
		Short: "Show journaled export list operations",
		Long: `Show the operations recorded in a journal written by apply --journal,
in seq order. With a namespace argument only that namespace's events are shown.

Examples:
  allstar trace --journal ./allstar.db
  allstar trace --journal ./allstar.db pkg/io --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			namespace := ""
			if len(args) == 1 {
				namespace = args[0]
			}
			return runTrace(opts, namespace, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("journal")

	return cmd
}

func runTrace(opts *TraceOptions, namespace string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// store.Open would create a missing file; a trace of nothing is a mistake.
	if _, err := os.Stat(opts.Journal); err != nil {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, "journal not found: "+opts.Journal, nil, nil)
	}

	st, err := store.Open(opts.Journal)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeJournal, "failed to open journal", err, nil)
	}
	defer st.Close()

	ctx := cmd.Context()
	events, err := st.Events(ctx, namespace)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeJournal, "failed to read journal", err, nil)
	}
	namespaces, err := st.Namespaces(ctx)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeJournal, "failed to read journal", err, nil)
	}
	formatter.VerboseLog("Read %d event(s) across %d namespace(s)", len(events), len(namespaces))

	result := TraceResult{
		Namespace:  namespace,
		Namespaces: namespaces,
		Events:     events,
	}
	return formatter.Success(result, formatEvents(events))
}

// formatEvents renders one line per event:
//
//	#3 pkg/io include_all [os sys] (binding 0191...)
func formatEvents(events []ir.Event) string {
	if len(events) == 0 {
		return "No events.\n"
	}

	var b strings.Builder
	for _, ev := range events {
		fmt.Fprintf(&b, "#%d %s %s [%s] (binding %s)\n",
			ev.Seq, ev.Namespace, ev.Op, strings.Join(ev.Names, " "), ev.Binding)
	}
	return b.String()
}
