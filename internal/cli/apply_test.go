package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/allstar/internal/ir"
	"github.com/roach88/allstar/internal/store"
	"github.com/roach88/allstar/internal/testutil"
)

func runApplyCmd(t *testing.T, opts *ApplyOptions, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newApplyCommand(opts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestApply_TextGolden(t *testing.T) {
	opts := &ApplyOptions{RootOptions: &RootOptions{Format: "text"}}

	out, _, err := runApplyCmd(t, opts, "testdata/basic.yaml")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "apply_basic", []byte(out))
}

func TestApply_JSON(t *testing.T) {
	opts := &ApplyOptions{RootOptions: &RootOptions{Format: "json"}}

	out, _, err := runApplyCmd(t, opts, "testdata/basic.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ApplyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Namespaces, 2)

	m := resp.Data.Namespaces[0]
	assert.Equal(t, "M", m.Namespace)
	assert.Equal(t, []string{"ClassA", "func_b"}, m.Names)
	assert.False(t, m.Frozen)
	assert.Equal(t, ir.SnapshotDigest("M", m.Names, false), m.Digest)

	pkgIO := resp.Data.Namespaces[1]
	assert.Equal(t, "pkg/io", pkgIO.Namespace)
	assert.Equal(t, []string{"os", "sys"}, pkgIO.Names)
	assert.True(t, pkgIO.Frozen)
}

func TestApply_EmptyNamespaceText(t *testing.T) {
	path := testutil.WriteFile(t, "empty.yaml", "namespaces:\n  - key: pkg/empty\n")
	opts := &ApplyOptions{RootOptions: &RootOptions{Format: "text"}}

	out, _, err := runApplyCmd(t, opts, path)
	require.NoError(t, err)
	assert.Equal(t, "pkg/empty: (empty)\n", out)
}

func TestApply_WritesJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	opts := &ApplyOptions{
		RootOptions: &RootOptions{Format: "text"},
		Tokens:      testutil.NewConstantGenerator("bind-test"),
	}

	_, _, err := runApplyCmd(t, opts, "--journal", dbPath, "testdata/basic.yaml")
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	events, err := st.Events(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, events, 5)

	ops := make([]ir.Op, len(events))
	for i, ev := range events {
		ops[i] = ev.Op
		assert.Equal(t, int64(i+1), ev.Seq)
		assert.Equal(t, "bind-test", ev.Binding)
	}
	assert.Equal(t, []ir.Op{ir.OpBind, ir.OpIncludeAll, ir.OpBind, ir.OpIncludeAll, ir.OpFreeze}, ops)
}

func TestApply_JournalContinuesSeq(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	opts := &ApplyOptions{RootOptions: &RootOptions{Format: "text"}}

	_, _, err := runApplyCmd(t, opts, "--journal", dbPath, "testdata/basic.yaml")
	require.NoError(t, err)
	_, _, err = runApplyCmd(t, &ApplyOptions{RootOptions: opts.RootOptions}, "--journal", dbPath, "testdata/basic.yaml")
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	last, err := st.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), last)
}

func TestApply_NotFound(t *testing.T) {
	opts := &ApplyOptions{RootOptions: &RootOptions{Format: "text"}}

	out, _, err := runApplyCmd(t, opts, "/nonexistent/manifest.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "not found")
}

func TestApply_InvalidManifest(t *testing.T) {
	path := testutil.WriteFile(t, "typo.yaml", "namespaces:\n  - key: M\n    inclde: [x]\n")
	opts := &ApplyOptions{RootOptions: &RootOptions{Format: "text"}}

	_, _, err := runApplyCmd(t, opts, path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeInvalidManifest)
}

func TestApply_JournalOpenFailure(t *testing.T) {
	// A directory cannot be opened as a SQLite database.
	opts := &ApplyOptions{RootOptions: &RootOptions{Format: "text"}}

	out, _, err := runApplyCmd(t, opts, "--journal", t.TempDir(), "testdata/basic.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeJournal)
	assert.Contains(t, out, "Error [E005]")
}

func TestApply_VerboseLogsToStderr(t *testing.T) {
	opts := &ApplyOptions{RootOptions: &RootOptions{Format: "json", Verbose: true}}

	out, errOut, err := runApplyCmd(t, opts, "testdata/basic.yaml")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Loading manifest")
	assert.Contains(t, errOut, "export list bound")

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
}
