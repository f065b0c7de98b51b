// Package memory provides an in-process implementation of the entity store
// used by tests, ephemeral runs and the SQLite snapshot backend.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

var errReadOnly = errors.New("memory store: write inside read-only snapshot")

// CommitHook observes the state about to be committed. Returning an error
// aborts the write.
type CommitHook func(Snapshot) error

// Store keeps every entity in maps guarded by one RWMutex. Writes run
// against a clone of the state which replaces the live state on commit, so
// a failed transaction leaves nothing behind.
type Store struct {
	mu    sync.RWMutex
	state state
	hook  CommitHook
}

type Option func(*Store)

// WithCommitHook registers fn to run before each commit while the write
// lock is held.
func WithCommitHook(fn CommitHook) Option {
	return func(s *Store) {
		s.hook = fn
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{state: newState()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type state struct {
	facilitators   map[string]domain.Facilitator
	events         map[string]domain.Event
	ageGroups      map[string]domain.AgeGroup
	participants   map[string]domain.Participant
	materials      map[string]domain.Material
	materialEvents map[string]domain.MaterialEvent
	attendances    map[string]domain.Attendance
	users          map[int64]domain.User
	tokens         map[string]domain.AuthToken
	nextUserID     int64
}

func newState() state {
	return state{
		facilitators:   make(map[string]domain.Facilitator),
		events:         make(map[string]domain.Event),
		ageGroups:      make(map[string]domain.AgeGroup),
		participants:   make(map[string]domain.Participant),
		materials:      make(map[string]domain.Material),
		materialEvents: make(map[string]domain.MaterialEvent),
		attendances:    make(map[string]domain.Attendance),
		users:          make(map[int64]domain.User),
		tokens:         make(map[string]domain.AuthToken),
	}
}

func (st state) clone() state {
	out := newState()
	for k, v := range st.facilitators {
		out.facilitators[k] = cloneFacilitator(v)
	}
	for k, v := range st.events {
		out.events[k] = cloneEvent(v)
	}
	for k, v := range st.ageGroups {
		out.ageGroups[k] = v
	}
	for k, v := range st.participants {
		out.participants[k] = v
	}
	for k, v := range st.materials {
		out.materials[k] = v
	}
	for k, v := range st.materialEvents {
		out.materialEvents[k] = v
	}
	for k, v := range st.attendances {
		out.attendances[k] = v
	}
	for k, v := range st.users {
		out.users[k] = v
	}
	for k, v := range st.tokens {
		out.tokens[k] = v
	}
	out.nextUserID = st.nextUserID
	return out
}

func cloneFacilitator(f domain.Facilitator) domain.Facilitator {
	if f.Contact != nil {
		c := *f.Contact
		f.Contact = &c
	}
	return f
}

func cloneEvent(e domain.Event) domain.Event {
	if e.FacilitatorIDs != nil {
		e.FacilitatorIDs = append([]string(nil), e.FacilitatorIDs...)
	}
	return e
}

type txKey struct{}

type memTx struct {
	state *state
	write bool
}

func txFromContext(ctx context.Context) *memTx {
	tx, _ := ctx.Value(txKey{}).(*memTx)
	return tx
}

// WithTx runs fn as one atomic write. Nested calls join the outer
// transaction. Holding the write lock for the whole of fn serializes
// allocations, which is what GetMaterialForUpdate promises.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := txFromContext(ctx); tx != nil {
		if !tx.write {
			return errReadOnly
		}
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	txCtx := context.WithValue(ctx, txKey{}, &memTx{state: &next, write: true})
	if err := fn(txCtx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.hook != nil {
		if err := s.hook(snapshotFromState(next)); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}

// WithSnapshot runs fn with a consistent read-only view of the store.
func (s *Store) WithSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(context.WithValue(ctx, txKey{}, &memTx{state: &s.state}))
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if tx := txFromContext(ctx); tx != nil {
		return fn(tx.state)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	return s.WithTx(ctx, func(txCtx context.Context) error {
		return fn(txFromContext(txCtx).state)
	})
}

// sortByCreation orders items by creation time, then id.
func sortByCreation[T any](items []T, key func(T) (time.Time, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	})
}

func missingRef(field, id string) error {
	return domain.NewValidationError(field, `invalid pk "`+id+`" - object does not exist`)
}
