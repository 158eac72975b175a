// Package journal records committed export list operations.
//
// Every successful bind, sign, include, include_all, empty and freeze is
// appended as an ir.Event stamped with a logical clock seq and the binding
// token of the manager that performed it. The journal is an audit trail:
// nothing in allstar reads it back to rebuild an export list.
//
// Implementations:
//   - Memory: in-process slice, used by tests and the apply command
//   - Discard: drops every event (the default)
//   - store.Store: SQLite-backed, see internal/store
package journal
