package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/allstar/internal/ir"
)

// Events returns the events for namespace ordered by seq.
// An empty namespace returns every event.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) Events(ctx context.Context, namespace string) ([]ir.Event, error) {
	query := `
		SELECT seq, binding, namespace, op, names
		FROM events
		ORDER BY seq ASC
	`
	var args []any
	if namespace != "" {
		query = `
			SELECT seq, binding, namespace, op, names
			FROM events
			WHERE namespace = ?
			ORDER BY seq ASC
		`
		args = append(args, namespace)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []ir.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// Namespaces returns every namespace that has events, sorted by key.
func (s *Store) Namespaces(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT namespace
		FROM events
		ORDER BY namespace COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query namespaces: %w", err)
	}
	defer rows.Close()

	namespaces := []string{}
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("scan namespace: %w", err)
		}
		namespaces = append(namespaces, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate namespaces: %w", err)
	}

	return namespaces, nil
}

// LastSeq returns the highest recorded seq, or 0 for an empty store.
// Callers appending to an existing database start their clock here.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM events`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq.Int64, nil
}

func scanEvent(rows *sql.Rows) (ir.Event, error) {
	var (
		ev    ir.Event
		op    string
		names string
	)
	if err := rows.Scan(&ev.Seq, &ev.Binding, &ev.Namespace, &op, &names); err != nil {
		return ir.Event{}, fmt.Errorf("scan event: %w", err)
	}

	ev.Op = ir.Op(op)
	decoded, err := unmarshalNames(names)
	if err != nil {
		return ir.Event{}, fmt.Errorf("event seq %d: %w", ev.Seq, err)
	}
	ev.Names = decoded

	return ev, nil
}
