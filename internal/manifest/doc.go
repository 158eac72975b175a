// Package manifest declares namespaces and their export lists in YAML.
//
// A manifest lists namespaces to register, an optional pre-existing export
// list for each (preset), names to append (include) and whether to freeze
// the result:
//
//	namespaces:
//	  - key: shapes
//	    preset: [Shape]
//	    include: [Circle, Square]
//	    freeze: true
//
// Parse decodes strictly (unknown fields are rejected) and validates the
// document against the embedded CUE schema (schema.cue). Apply registers the
// namespaces in a registry and drives a star.Star for each.
package manifest
