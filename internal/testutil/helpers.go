package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/allstar/internal/ir"
	"github.com/roach88/allstar/internal/registry"
)

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ExportsOf returns the export list attached to the registered namespace key.
func ExportsOf(t *testing.T, reg *registry.Registry, key string) ir.ExportList {
	t.Helper()
	ns, ok := reg.Lookup(key)
	require.True(t, ok, "namespace %q should be registered", key)
	v, ok := ns.Get(registry.ExportsAttr)
	require.True(t, ok, "export list attribute should be attached")
	list, ok := v.(ir.ExportList)
	require.True(t, ok, "attribute should hold an ir.ExportList, got %T", v)
	return list
}

// TraceDocument converts journal events and snapshots into a map for
// canonical JSON serialization; ir.MarshalCanonical only handles primitives,
// slices and maps.
func TraceDocument(events []ir.Event, snapshots []ir.Snapshot) map[string]any {
	eventList := make([]any, len(events))
	for i, ev := range events {
		eventList[i] = map[string]any{
			"seq":       ev.Seq,
			"binding":   ev.Binding,
			"namespace": ev.Namespace,
			"op":        string(ev.Op),
			"names":     ev.Names,
		}
	}

	snapList := make([]any, len(snapshots))
	for i, snap := range snapshots {
		snapList[i] = map[string]any{
			"namespace": snap.Namespace,
			"names":     snap.Names,
			"frozen":    snap.Frozen,
			"digest":    snap.Digest,
		}
	}

	return map[string]any{
		"events":    eventList,
		"snapshots": snapList,
	}
}
