package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutable_AppendClear(t *testing.T) {
	m := NewMutable("a")
	m.Append("b", "a")

	assert.Equal(t, []string{"a", "b", "a"}, m.Names())
	assert.Equal(t, 3, m.Len())
	assert.False(t, m.IsFrozen())
	assert.Equal(t, "[a b a]", m.String())

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "[]", m.String())
}

func TestMutable_NamesIsACopy(t *testing.T) {
	m := NewMutable("a")
	names := m.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"a"}, m.Names())
}

func TestNewMutable_CopiesInput(t *testing.T) {
	in := []string{"a", "b"}
	m := NewMutable(in...)
	in[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, m.Names())
}

func TestMutable_Freeze(t *testing.T) {
	m := NewMutable("a", "b")
	f := m.Freeze()
	m.Append("c")

	assert.Equal(t, []string{"a", "b"}, f.Names(), "frozen copy must not see later appends")
	assert.True(t, f.IsFrozen())
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, "(a b)", f.String())
}

func TestFrozen_ZeroValue(t *testing.T) {
	var f Frozen
	assert.Equal(t, 0, f.Len())
	assert.True(t, f.IsFrozen())
	assert.Equal(t, "()", f.String())
}

func TestAsExportList(t *testing.T) {
	m := NewMutable("a")

	list, adopted, err := AsExportList(m)
	require.NoError(t, err)
	assert.False(t, adopted)
	assert.Same(t, m, list)

	list, adopted, err = AsExportList(NewFrozen("a"))
	require.NoError(t, err)
	assert.False(t, adopted)
	assert.True(t, list.IsFrozen())

	list, adopted, err = AsExportList([]string{"os"})
	require.NoError(t, err)
	assert.True(t, adopted)
	assert.Equal(t, []string{"os"}, list.Names())
	assert.False(t, list.IsFrozen())

	_, _, err = AsExportList((*Mutable)(nil))
	assert.Error(t, err)

	_, _, err = AsExportList(map[string]int{})
	assert.ErrorContains(t, err, "unsupported export list type map[string]int")
}

func TestValidateOp(t *testing.T) {
	for _, op := range []Op{OpBind, OpSign, OpInclude, OpIncludeAll, OpEmpty, OpFreeze} {
		assert.NoError(t, ValidateOp(string(op)))
	}
	assert.Error(t, ValidateOp("thaw"))
}
