package ir

import (
	"fmt"
	"slices"
	"strings"
)

// ExportList is a sealed interface over the two states of a namespace's
// export list. Only *Mutable and Frozen implement it.
type ExportList interface {
	exportList() // Sealed

	// Names returns a copy of the names in insertion order.
	Names() []string

	// Len returns the number of names.
	Len() int

	// IsFrozen reports whether the list rejects further mutation.
	IsFrozen() bool

	String() string
}

// Mutable is the open state of an export list. It is always used by pointer
// so that every holder of the attribute observes in-place mutation.
type Mutable struct {
	names []string
}

func (*Mutable) exportList() {}

// NewMutable creates a mutable export list holding names in order.
func NewMutable(names ...string) *Mutable {
	return &Mutable{names: slices.Clone(names)}
}

// Append adds names to the end of the list. Duplicates are kept.
func (m *Mutable) Append(names ...string) {
	m.names = append(m.names, names...)
}

// Clear drops every name without replacing the list.
func (m *Mutable) Clear() {
	clear(m.names)
	m.names = m.names[:0]
}

// Freeze returns an immutable copy of the current names.
func (m *Mutable) Freeze() Frozen {
	return Frozen{names: slices.Clone(m.names)}
}

// Names returns a copy of the names in insertion order.
func (m *Mutable) Names() []string {
	return slices.Clone(m.names)
}

// Len returns the number of names.
func (m *Mutable) Len() int {
	return len(m.names)
}

// IsFrozen always returns false.
func (*Mutable) IsFrozen() bool {
	return false
}

// String renders the list like a bracketed sequence: [a b].
func (m *Mutable) String() string {
	return "[" + strings.Join(m.names, " ") + "]"
}

// Frozen is the terminal state of an export list.
// The zero value is an empty frozen list.
type Frozen struct {
	names []string
}

func (Frozen) exportList() {}

// NewFrozen creates a frozen export list holding names in order.
func NewFrozen(names ...string) Frozen {
	return Frozen{names: slices.Clone(names)}
}

// Names returns a copy of the names in insertion order.
func (f Frozen) Names() []string {
	return slices.Clone(f.names)
}

// Len returns the number of names.
func (f Frozen) Len() int {
	return len(f.names)
}

// IsFrozen always returns true.
func (Frozen) IsFrozen() bool {
	return true
}

// String renders the list like a parenthesised sequence: (a b).
func (f Frozen) String() string {
	return "(" + strings.Join(f.names, " ") + ")"
}

// AsExportList converts an attribute value into an ExportList.
//
// Accepted forms:
//   - *Mutable and Frozen are returned as-is
//   - []string is wrapped in a new *Mutable; adopted reports true so the
//     caller knows to write the wrapper back
//
// Any other type returns an error.
func AsExportList(v any) (list ExportList, adopted bool, err error) {
	switch val := v.(type) {
	case *Mutable:
		if val == nil {
			return nil, false, fmt.Errorf("export list is a nil *Mutable")
		}
		return val, false, nil
	case Frozen:
		return val, false, nil
	case []string:
		return NewMutable(val...), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported export list type %T", v)
	}
}
