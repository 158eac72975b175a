package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Manifest is the root of a manifest document.
type Manifest struct {
	Namespaces []Namespace `yaml:"namespaces"`
}

// Namespace declares one namespace and its export list.
type Namespace struct {
	// Key is the namespace key to register.
	Key string `yaml:"key"`

	// Preset is attached as the namespace's export list before binding, as
	// if other code had defined it already. Nil means no list is attached.
	Preset []string `yaml:"preset,omitempty"`

	// Include lists names appended after binding, in order.
	Include []string `yaml:"include,omitempty"`

	// Freeze freezes the export list after Include is applied.
	Freeze bool `yaml:"freeze,omitempty"`
}

// ValidationError describes one schema violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SchemaError collects every violation found in a manifest.
type SchemaError struct {
	Errors []ValidationError
}

func (e *SchemaError) Error() string {
	if len(e.Errors) == 1 {
		return "invalid manifest: " + e.Errors[0].Error()
	}
	return fmt.Sprintf("invalid manifest: %d errors, first: %s", len(e.Errors), e.Errors[0].Error())
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest document.
//
// Returns a *SchemaError when the document is well-formed YAML but violates
// the schema or declares a namespace key twice.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields (typos)
	if err := decoder.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Errors: []ValidationError{{Message: "manifest is empty"}}}
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if errs := validateSchema(doc); len(errs) > 0 {
		return nil, &SchemaError{Errors: errs}
	}
	if errs := validateKeys(&m); len(errs) > 0 {
		return nil, &SchemaError{Errors: errs}
	}

	return &m, nil
}

// validateSchema unifies doc with #Manifest and reports every violation.
func validateSchema(doc map[string]any) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a build defect.
		panic(fmt.Sprintf("manifest: invalid embedded schema: %v", err))
	}

	value := schema.LookupPath(cue.ParsePath("#Manifest")).Unify(ctx.Encode(doc))
	err := value.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, ValidationError{
			Field:   strings.TrimPrefix(strings.Join(e.Path(), "."), "#Manifest."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}

// validateKeys rejects namespace keys declared more than once.
func validateKeys(m *Manifest) []ValidationError {
	var out []ValidationError
	seen := make(map[string]int, len(m.Namespaces))
	for i, ns := range m.Namespaces {
		if first, dup := seen[ns.Key]; dup {
			out = append(out, ValidationError{
				Field:   fmt.Sprintf("namespaces.%d.key", i),
				Message: fmt.Sprintf("duplicate key %q (first declared at namespaces.%d)", ns.Key, first),
			})
			continue
		}
		seen[ns.Key] = i
	}
	return out
}
