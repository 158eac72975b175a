package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Basic(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "basic.yaml"))
	require.NoError(t, err)

	require.Len(t, m.Namespaces, 2)
	assert.Equal(t, Namespace{Key: "M", Include: []string{"ClassA", "func_b"}}, m.Namespaces[0])
	assert.Equal(t, Namespace{
		Key:     "pkg/io",
		Preset:  []string{"os"},
		Include: []string{"sys"},
		Freeze:  true,
	}, m.Namespaces[1])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read manifest file")
}

func TestParse_EmptyPresetIsKept(t *testing.T) {
	m, err := Parse([]byte("namespaces:\n  - key: M\n    preset: []\n"))
	require.NoError(t, err)
	assert.NotNil(t, m.Namespaces[0].Preset, "an explicit empty preset attaches an empty list")
	assert.Nil(t, m.Namespaces[0].Include)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		schemaErr bool
		wantErr   string
	}{
		{
			name:    "unknown field",
			doc:     "namespaces:\n  - key: M\n    exports: [a]\n",
			wantErr: "field exports not found",
		},
		{
			name:    "not yaml",
			doc:     "namespaces: [\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:      "empty document",
			doc:       "",
			schemaErr: true,
			wantErr:   "manifest is empty",
		},
		{
			name:      "no namespaces",
			doc:       "namespaces: []\n",
			schemaErr: true,
		},
		{
			name:      "missing key",
			doc:       "namespaces:\n  - include: [a]\n",
			schemaErr: true,
		},
		{
			name:      "key with whitespace",
			doc:       "namespaces:\n  - key: \"a b\"\n",
			schemaErr: true,
		},
		{
			name:      "empty name",
			doc:       "namespaces:\n  - key: M\n    include: [\"\"]\n",
			schemaErr: true,
		},
		{
			name:      "freeze not bool",
			doc:       "namespaces:\n  - key: M\n    freeze: \"yes\"\n",
			schemaErr: false,
			wantErr:   "failed to parse YAML",
		},
		{
			name:      "duplicate key",
			doc:       "namespaces:\n  - key: M\n  - key: M\n",
			schemaErr: true,
			wantErr:   `namespaces.1.key: duplicate key "M" (first declared at namespaces.0)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)

			var schemaErr *SchemaError
			assert.Equal(t, tt.schemaErr, errors.As(err, &schemaErr), "schema error: %v", err)
			if schemaErr != nil {
				assert.NotEmpty(t, schemaErr.Errors)
			}
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSchemaError_Format(t *testing.T) {
	one := &SchemaError{Errors: []ValidationError{{Field: "namespaces.0.key", Message: "bad"}}}
	assert.Equal(t, "invalid manifest: namespaces.0.key: bad", one.Error())

	two := &SchemaError{Errors: []ValidationError{{Message: "first"}, {Field: "f", Message: "second"}}}
	assert.Equal(t, "invalid manifest: 2 errors, first: first", two.Error())
}

func TestLoad_FromTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, os.WriteFile(path, []byte("namespaces:\n  - key: only\n"), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "only", m.Namespaces[0].Key)
}
