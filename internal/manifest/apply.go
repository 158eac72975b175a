package manifest

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/allstar/internal/ir"
	"github.com/roach88/allstar/internal/registry"
	"github.com/roach88/allstar/internal/star"
)

// Apply registers every namespace of m in reg, in declaration order, and
// returns a snapshot of each resulting export list.
//
// For each namespace: the key is registered, Preset (if any) is attached as
// the existing export list, a star.Star is bound with opts, Include is
// appended via IncludeNames and the list is frozen if requested.
//
// Apply stops at the first failure; namespaces applied before it remain
// registered in reg.
func Apply(reg *registry.Registry, m *Manifest, opts ...star.Option) ([]ir.Snapshot, error) {
	snapshots := make([]ir.Snapshot, 0, len(m.Namespaces))

	for i, decl := range m.Namespaces {
		snap, err := applyNamespace(reg, decl, opts)
		if err != nil {
			return snapshots, fmt.Errorf("namespaces.%d (%s): %w", i, decl.Key, err)
		}
		snapshots = append(snapshots, snap)
	}

	slog.Debug("manifest applied", "namespaces", len(snapshots))
	return snapshots, nil
}

func applyNamespace(reg *registry.Registry, decl Namespace, opts []star.Option) (ir.Snapshot, error) {
	ns, err := reg.Register(decl.Key)
	if err != nil {
		return ir.Snapshot{}, err
	}
	if decl.Preset != nil {
		ns.Set(registry.ExportsAttr, slices.Clone(decl.Preset))
	}

	exports, err := star.Bind(reg, decl.Key, opts...)
	if err != nil {
		return ir.Snapshot{}, err
	}
	if err := exports.IncludeNames(decl.Include...); err != nil {
		return ir.Snapshot{}, err
	}
	if decl.Freeze {
		if err := exports.Freeze(); err != nil {
			return ir.Snapshot{}, err
		}
	}

	return exports.Snapshot()
}
