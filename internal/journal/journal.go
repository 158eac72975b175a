package journal

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/roach88/allstar/internal/ir"
)

// Journal receives committed export list events.
type Journal interface {
	// Record appends one event. Implementations must not reorder events.
	Record(ctx context.Context, ev ir.Event) error

	// Events returns the events recorded for a namespace in seq order.
	// An empty namespace returns every event.
	Events(ctx context.Context, namespace string) ([]ir.Event, error)
}

// Discard is a Journal that drops every event.
var Discard Journal = discard{}

type discard struct{}

func (discard) Record(context.Context, ir.Event) error { return nil }

func (discard) Events(context.Context, string) ([]ir.Event, error) {
	return []ir.Event{}, nil
}

// Memory is an in-process Journal.
//
// Thread-safety: Memory is safe for concurrent use via internal mutex.
type Memory struct {
	mu     sync.Mutex
	events []ir.Event
}

// NewMemory creates an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends a copy of ev.
func (m *Memory) Record(_ context.Context, ev ir.Event) error {
	ev.Names = slices.Clone(ev.Names)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

// Events returns copies of the recorded events for namespace in seq order.
// Returns an empty slice (not nil) when nothing matches.
func (m *Memory) Events(_ context.Context, namespace string) ([]ir.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []ir.Event{}
	for _, ev := range m.events {
		if namespace != "" && ev.Namespace != namespace {
			continue
		}
		ev.Names = slices.Clone(ev.Names)
		out = append(out, ev)
	}
	slices.SortStableFunc(out, func(a, b ir.Event) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return out, nil
}

// Len returns the number of recorded events.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}
