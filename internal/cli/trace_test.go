package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/allstar/internal/ir"
	"github.com/roach88/allstar/internal/testutil"
)

// journalFixture applies testdata/basic.yaml into a fresh journal.
func journalFixture(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	opts := &ApplyOptions{
		RootOptions: &RootOptions{Format: "text"},
		Tokens:      testutil.NewConstantGenerator("bind-test"),
	}
	_, _, err := runApplyCmd(t, opts, "--journal", dbPath, "testdata/basic.yaml")
	require.NoError(t, err)
	return dbPath
}

func runTraceCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTrace_AllEventsText(t *testing.T) {
	dbPath := journalFixture(t)

	out, err := runTraceCmd(t, "text", "--journal", dbPath)
	require.NoError(t, err)

	want := "#1 M bind [] (binding bind-test)\n" +
		"#2 M include_all [ClassA func_b] (binding bind-test)\n" +
		"#3 pkg/io bind [os] (binding bind-test)\n" +
		"#4 pkg/io include_all [sys] (binding bind-test)\n" +
		"#5 pkg/io freeze [os sys] (binding bind-test)\n"
	assert.Equal(t, want, out)
}

func TestTrace_FilterByNamespaceJSON(t *testing.T) {
	dbPath := journalFixture(t)

	out, err := runTraceCmd(t, "json", "--journal", dbPath, "pkg/io")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "pkg/io", resp.Data.Namespace)
	assert.Equal(t, []string{"M", "pkg/io"}, resp.Data.Namespaces)
	require.Len(t, resp.Data.Events, 3)
	for _, ev := range resp.Data.Events {
		assert.Equal(t, "pkg/io", ev.Namespace)
	}
	assert.Equal(t, ir.OpFreeze, resp.Data.Events[2].Op)
}

func TestTrace_UnknownNamespace(t *testing.T) {
	dbPath := journalFixture(t)

	out, err := runTraceCmd(t, "text", "--journal", dbPath, "nope")
	require.NoError(t, err)
	assert.Equal(t, "No events.\n", out)
}

func TestTrace_JournalNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.db")

	out, err := runTraceCmd(t, "text", "--journal", missing)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, out, "journal not found")
	assert.NoFileExists(t, missing)
}

func TestTrace_RequiresJournalFlag(t *testing.T) {
	_, err := runTraceCmd(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal")
}
