package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/allstar/internal/ir"
)

// ErrDuplicateSeq is returned when an event's seq is already in the journal.
var ErrDuplicateSeq = errors.New("seq already recorded")

// Record inserts an event.
// The first event recorded for a seq wins; a later one with the same seq is
// not written and Record returns ErrDuplicateSeq. Unknown ops are rejected.
func (s *Store) Record(ctx context.Context, ev ir.Event) error {
	if err := ir.ValidateOp(string(ev.Op)); err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	names, err := marshalNames(ev.Names)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO events (seq, binding, namespace, op, names)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`,
		ev.Seq,
		ev.Binding,
		ev.Namespace,
		string(ev.Op),
		names,
	)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record event: seq %d: %w", ev.Seq, ErrDuplicateSeq)
	}

	return nil
}
