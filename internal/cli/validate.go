package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/allstar/internal/manifest"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool                       `json:"valid"`
	Namespaces int                        `json:"namespaces"`
	Errors     []manifest.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate a manifest without applying it",
		Long: `Validate a manifest against the schema without registering anything.

Checks YAML syntax, unknown fields, the CUE schema and duplicate keys.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, err := loadManifest(formatter, path)
	if err != nil {
		var schemaErr *manifest.SchemaError
		if errors.As(err, &schemaErr) {
			return outputValidationErrors(formatter, schemaErr.Errors)
		}
		return err
	}

	text := fmt.Sprintf("✓ Manifest valid (%d namespace(s))\n", len(m.Namespaces))
	return formatter.Success(ValidationResult{Valid: true, Namespaces: len(m.Namespaces)}, text)
}

// loadManifest loads path, mapping failures to CLI errors. Schema errors are
// returned unwrapped so callers can list them.
func loadManifest(formatter *OutputFormatter, path string) (*manifest.Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, formatter.fail(ExitCommandError, ErrCodeNotFound, "manifest not found: "+path, nil, nil)
	}
	formatter.VerboseLog("Loading manifest %s", path)

	m, err := manifest.Load(path)
	if err != nil {
		var schemaErr *manifest.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, schemaErr
		}
		return nil, formatter.fail(ExitCommandError, ErrCodeInvalidManifest, "invalid manifest", err, nil)
	}
	return m, nil
}

// outputValidationErrors outputs every schema violation.
func outputValidationErrors(formatter *OutputFormatter, errs []manifest.ValidationError) error {
	if formatter.Format == "json" {
		_ = formatter.Success(ValidationResult{Valid: false, Errors: errs}, "")
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %d validation error(s):\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(formatter.Writer, "  - %s\n", e.Error())
		}
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %d validation error(s)", ErrCodeInvalidManifest, len(errs)))
}
