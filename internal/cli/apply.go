package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/allstar/internal/ir"
	"github.com/roach88/allstar/internal/journal"
	"github.com/roach88/allstar/internal/manifest"
	"github.com/roach88/allstar/internal/registry"
	"github.com/roach88/allstar/internal/star"
	"github.com/roach88/allstar/internal/store"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Journal string

	// Tokens allows overriding the binding token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens journal.TokenGenerator
}

// ApplyResult is the JSON payload of the apply command.
type ApplyResult struct {
	Namespaces []ir.Snapshot `json:"namespaces"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}
	return newApplyCommand(opts)
}

func newApplyCommand(opts *ApplyOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <manifest>",
		Short: "Build the export lists declared in a manifest",
		Long: `Register every namespace in the manifest, build its export list and
print the result.

With --journal, every operation is appended to a SQLite journal that can be
inspected later with the trace command. The journal is an audit trail only;
apply always starts from an empty registry.

Example:
  allstar apply ./exports.yaml
  allstar apply --journal ./allstar.db --format json ./exports.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite journal (optional)")

	return cmd
}

func runApply(opts *ApplyOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	m, err := loadManifest(formatter, path)
	if err != nil {
		var schemaErr *manifest.SchemaError
		if errors.As(err, &schemaErr) {
			return outputValidationErrors(formatter, schemaErr.Errors)
		}
		return err
	}

	starOpts := []star.Option{star.WithLogger(logger)}
	if opts.Tokens != nil {
		starOpts = append(starOpts, star.WithTokens(opts.Tokens))
	}

	if opts.Journal != "" {
		st, err := store.Open(opts.Journal)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeJournal, "failed to open journal", err, nil)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing journal", "error", closeErr)
			}
		}()

		last, err := st.LastSeq(cmd.Context())
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeJournal, "failed to read journal", err, nil)
		}
		formatter.VerboseLog("Journal %s continues at seq %d", opts.Journal, last+1)
		starOpts = append(starOpts, star.WithJournal(st), star.WithClock(journal.NewClockAt(last)))
	}

	snapshots, err := manifest.Apply(registry.New(), m, starOpts...)
	if err != nil {
		return formatter.fail(ExitFailure, ErrCodeApplyFailed, "apply failed", err, nil)
	}

	return formatter.Success(ApplyResult{Namespaces: snapshots}, formatSnapshots(snapshots))
}

// formatSnapshots renders one line per namespace:
//
//	pkg/io: os, sys (frozen)
func formatSnapshots(snapshots []ir.Snapshot) string {
	var b strings.Builder
	for _, snap := range snapshots {
		names := strings.Join(snap.Names, ", ")
		if names == "" {
			names = "(empty)"
		}
		fmt.Fprintf(&b, "%s: %s", snap.Namespace, names)
		if snap.Frozen {
			b.WriteString(" (frozen)")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
