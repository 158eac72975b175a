// Package cli implements the allstar command line.
//
// Commands:
//   - apply: build the export lists declared in a manifest
//   - validate: check a manifest against its schema
//   - trace: show operations recorded in a SQLite journal
//
// Every command supports --format text|json and --verbose. Errors are
// returned as *ExitError carrying the process exit code.
package cli
