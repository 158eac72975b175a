package star

import (
	"context"
	"iter"
	"log/slog"
	"slices"

	"github.com/roach88/allstar/internal/ir"
	"github.com/roach88/allstar/internal/journal"
	"github.com/roach88/allstar/internal/registry"
)

// defaultClock numbers events of every Star that was not given its own clock.
var defaultClock = journal.NewClock()

// Star manages the export list of one namespace.
type Star struct {
	ns      *registry.Namespace
	logger  *slog.Logger
	journal journal.Journal
	clock   *journal.Clock
	binding string
}

// Option configures a Star at bind time.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	journal journal.Journal
	clock   *journal.Clock
	tokens  journal.TokenGenerator
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithJournal records every committed operation to j. Defaults to
// journal.Discard.
//
// Without WithClock, seqs come from a process-wide clock that starts at 1.
// When j already holds events (a reopened store.Store), pass a clock resumed
// from its last seq, journal.NewClockAt(last); otherwise the journal rejects
// the reused seqs and the manager logs a warning per event.
func WithJournal(j journal.Journal) Option {
	return func(o *options) { o.journal = j }
}

// WithClock stamps events with seqs from c. Managers sharing a journal
// should share a clock.
func WithClock(c *journal.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithTokens sets the generator for this manager's binding token.
// Defaults to journal.UUIDv7Generator.
func WithTokens(g journal.TokenGenerator) Option {
	return func(o *options) { o.tokens = g }
}

// Bind resolves the namespace registered under key and returns a manager
// for its export list.
//
// If the namespace has no export list, an empty mutable one is attached.
// An existing list is adopted and later operations append to it; a plain
// []string is wrapped in an ir.Mutable and written back.
//
// Returns a RESOLUTION_FAILED error if key is not registered or the
// attribute holds something other than an export list.
func Bind(reg *registry.Registry, key string, opts ...Option) (*Star, error) {
	o := options{
		logger:  slog.Default(),
		journal: journal.Discard,
		clock:   defaultClock,
		tokens:  journal.UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	ns, ok := reg.Lookup(key)
	if !ok {
		return nil, newResolutionError(key, "namespace not registered", nil)
	}

	s := &Star{
		ns:      ns,
		logger:  o.logger.With("namespace", key),
		journal: o.journal,
		clock:   o.clock,
		binding: o.tokens.Generate(),
	}

	list, err := s.list()
	if err != nil {
		return nil, err
	}

	s.logger.Info("export list bound",
		"binding", s.binding,
		"names", list.Len(),
		"frozen", list.IsFrozen(),
	)
	s.record(ir.OpBind, list.Names())

	return s, nil
}

// Namespace returns the key of the bound namespace.
func (s *Star) Namespace() string {
	return s.ns.Key()
}

// Binding returns the token identifying this manager in the journal.
func (s *Star) Binding() string {
	return s.binding
}

// Sign appends the name of entity to the export list.
// Use the generic Sign function to get the entity back for inline use.
func (s *Star) Sign(entity any) error {
	m, err := s.mutable()
	if err != nil {
		return err
	}

	name, err := s.resolve(Entity(entity))
	if err != nil {
		return err
	}

	m.Append(name)
	s.logger.Debug("entity signed", "name", name)
	s.record(ir.OpSign, []string{name})
	return nil
}

// Sign registers entity with s and returns entity unchanged, so it can wrap a
// definition:
//
//	var Handler = star.MustSign(exports, handler)
func Sign[T any](s *Star, entity T) (T, error) {
	if err := s.Sign(entity); err != nil {
		return entity, err
	}
	return entity, nil
}

// MustSign is like Sign but panics on error.
// Use for package-level registration where a failure is a programming error.
func MustSign[T any](s *Star, entity T) T {
	if err := s.Sign(entity); err != nil {
		panic(err)
	}
	return entity
}

// Include appends one name. item is a name string, a Ref, or an entity; see
// the package documentation for how entities resolve.
func (s *Star) Include(item any) error {
	m, err := s.mutable()
	if err != nil {
		return err
	}

	name, err := s.resolve(RefOf(item))
	if err != nil {
		return err
	}

	m.Append(name)
	s.logger.Debug("name included", "name", name)
	s.record(ir.OpInclude, []string{name})
	return nil
}

// IncludeAll appends the name of every item in order.
//
// The frozen check happens once, before any item is resolved. The batch is
// not atomic: if an item fails to resolve, the names before it stay appended
// and the error for that item is returned.
func (s *Star) IncludeAll(items ...any) error {
	m, err := s.mutable()
	if err != nil {
		return err
	}

	appended := make([]string, 0, len(items))
	defer func() {
		if len(appended) > 0 {
			s.logger.Debug("names included", "names", appended)
			s.record(ir.OpIncludeAll, appended)
		}
	}()

	for _, item := range items {
		name, err := s.resolve(RefOf(item))
		if err != nil {
			return err
		}
		m.Append(name)
		appended = append(appended, name)
	}
	return nil
}

// IncludeNames is IncludeAll for a slice of literal names.
func (s *Star) IncludeNames(names ...string) error {
	items := make([]any, len(names))
	for i, name := range names {
		items[i] = Literal(name)
	}
	return s.IncludeAll(items...)
}

// Empty discards every name. The list is cleared in place, so other holders
// of the same ir.Mutable see it empty too.
func (s *Star) Empty() error {
	m, err := s.mutable()
	if err != nil {
		return err
	}

	discarded := m.Names()
	m.Clear()
	s.logger.Debug("export list emptied", "discarded", len(discarded))
	s.record(ir.OpEmpty, discarded)
	return nil
}

// Freeze replaces the export list with an immutable copy of its names.
// Calling Freeze on a frozen list is a no-op.
//
// The only error is RESOLUTION_FAILED, when the attribute was replaced with
// something that is not an export list.
func (s *Star) Freeze() error {
	list, err := s.list()
	if err != nil {
		return err
	}

	m, ok := list.(*ir.Mutable)
	if !ok {
		return nil
	}

	frozen := m.Freeze()
	s.ns.Set(registry.ExportsAttr, frozen)
	s.logger.Debug("export list frozen", "names", frozen.Len())
	s.record(ir.OpFreeze, frozen.Names())
	return nil
}

// Frozen reports whether the export list has been frozen.
func (s *Star) Frozen() bool {
	list, ok := s.peek()
	return ok && list.IsFrozen()
}

// Names returns a copy of the current export list.
func (s *Star) Names() []string {
	list, ok := s.peek()
	if !ok {
		return []string{}
	}
	names := list.Names()
	if names == nil {
		names = []string{}
	}
	return names
}

// All iterates over the current export list.
func (s *Star) All() iter.Seq[string] {
	return slices.Values(s.Names())
}

// Len returns the number of names in the export list.
func (s *Star) Len() int {
	list, ok := s.peek()
	if !ok {
		return 0
	}
	return list.Len()
}

// Contains reports whether name is in the export list.
func (s *Star) Contains(name string) bool {
	return slices.Contains(s.Names(), name)
}

// String renders the export list; see ir.Mutable.String and ir.Frozen.String.
func (s *Star) String() string {
	list, ok := s.peek()
	if !ok {
		return "<invalid export list>"
	}
	return list.String()
}

// Snapshot copies the export list and computes its digest.
func (s *Star) Snapshot() (ir.Snapshot, error) {
	list, err := s.list()
	if err != nil {
		return ir.Snapshot{}, err
	}
	return ir.NewSnapshot(s.ns.Key(), list)
}

// list reads the export list attribute, attaching or adopting it as needed.
// The attribute may have been deleted or replaced by other code since the
// last call; a missing list is recreated empty and a []string is re-adopted.
func (s *Star) list() (ir.ExportList, error) {
	v, ok := s.ns.Get(registry.ExportsAttr)
	if !ok {
		m := ir.NewMutable()
		s.ns.Set(registry.ExportsAttr, m)
		return m, nil
	}

	list, adopted, err := ir.AsExportList(v)
	if err != nil {
		return nil, newResolutionError(s.ns.Key(), "export list attribute is not an export list", err)
	}
	if adopted {
		s.ns.Set(registry.ExportsAttr, list)
	}
	return list, nil
}

// mutable returns the list for appending, or FROZEN_LIST.
func (s *Star) mutable() (*ir.Mutable, error) {
	list, err := s.list()
	if err != nil {
		return nil, err
	}
	m, ok := list.(*ir.Mutable)
	if !ok {
		return nil, newFrozenError(s.ns.Key())
	}
	return m, nil
}

// peek reads the export list without writing to the namespace.
func (s *Star) peek() (ir.ExportList, bool) {
	v, ok := s.ns.Get(registry.ExportsAttr)
	if !ok {
		return ir.NewMutable(), true
	}
	list, _, err := ir.AsExportList(v)
	if err != nil {
		return nil, false
	}
	return list, true
}

func (s *Star) resolve(ref Ref) (string, error) {
	name, err := ref.Resolve()
	if err != nil {
		return "", newInvalidEntityError(s.ns.Key(), ref.String(), err)
	}
	return name, nil
}

// record appends an event to the journal. Journal failures never fail the
// operation that already committed; they are logged instead.
func (s *Star) record(op ir.Op, names []string) {
	if names == nil {
		names = []string{}
	}
	ev := ir.Event{
		Seq:       s.clock.Next(),
		Binding:   s.binding,
		Namespace: s.ns.Key(),
		Op:        op,
		Names:     names,
	}
	if err := s.journal.Record(context.Background(), ev); err != nil {
		s.logger.Warn("journal record failed", "op", op, "seq", ev.Seq, "error", err)
	}
}
