// Package testutil provides deterministic helpers shared by allstar tests:
// a constant binding-token generator, a silent logger, temp manifest files
// and the canonical trace document used by golden tests.
package testutil
