// Package star manages the export list of a namespace.
//
// A Star binds to one namespace in a registry.Registry and appends names to
// the namespace's export list attribute, so code can declare its public
// surface next to each definition instead of maintaining the list by hand:
//
//	reg := registry.New()
//	reg.MustRegister("shapes")
//
//	exports, err := star.Bind(reg, "shapes")
//	if err != nil {
//		return err
//	}
//	circle := star.MustSign(exports, NewCircle) // registers "NewCircle"
//	_ = exports.Include("Square")
//	_ = exports.IncludeAll("Triangle", reflect.TypeFor[Polygon]())
//	exports.Freeze()
//
// The list lives on the namespace, not in the Star. Every operation reads the
// attribute, mutates it and writes it back, so several managers bound to the
// same namespace observe each other's changes, including Freeze.
//
// # Name resolution
//
// Items passed to Sign, Include and IncludeAll resolve to a name as follows:
//   - string or Literal: used verbatim
//   - a value with a Name() string method: its Name()
//   - reflect.Type: its Name()
//   - a top-level function: its symbol name
//
// Anything else, or an empty name, fails with an INVALID_ENTITY error.
//
// # State
//
// The export list is either ir.Mutable or ir.Frozen. Freeze is the only
// transition and it is one-way; afterwards every mutating operation fails
// with a FROZEN_LIST error.
//
// Star is not safe for concurrent use.
package star
