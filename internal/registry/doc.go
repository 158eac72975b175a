// Package registry is the explicit namespace registry that export list
// managers bind to.
//
// A Namespace is a keyed bag of named attributes. The registry maps each
// unique key to exactly one Namespace for the lifetime of the registry.
// Neither type is safe for concurrent mutation; callers sharing a registry
// across goroutines must synchronize externally.
package registry
