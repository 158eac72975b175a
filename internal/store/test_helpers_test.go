package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/allstar/internal/ir"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEvent creates an event with a fixed binding token.
func createTestEvent(seq int64, namespace string, op ir.Op, names ...string) ir.Event {
	if names == nil {
		names = []string{}
	}
	return ir.Event{
		Seq:       seq,
		Binding:   "bind-test",
		Namespace: namespace,
		Op:        op,
		Names:     names,
	}
}
