package store

import (
	"context"
	"reflect"
	"slices"
	"sync"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/logging"
	"github.com/dmitrijs2005/caseadmin/internal/metrics"
)

// Listener receives each action after it has been reduced.
type Listener func(action Action, state State)

// Store is the single source of truth. It is safe for concurrent use.
//
// Dispatches are serialized, and listeners run in subscription order on the
// dispatching goroutine. A listener must not dispatch synchronously.
type Store struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int

	log     logging.Logger
	metrics *metrics.Metrics
}

// New returns an empty store. log and m may be nil.
func New(log logging.Logger, m *metrics.Metrics) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{
		state:     State{Entities: map[models.Kind]EntityState{}},
		listeners: make(map[int]Listener),
		log:       log,
		metrics:   m,
	}
}

// Dispatch reduces action into the state and notifies listeners.
func (s *Store) Dispatch(action Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, action)
	state := s.state
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	s.metrics.ObserveDispatch(action.Type())
	s.log.Debug(context.Background(), "dispatch", "action", action.Type())

	for _, l := range listeners {
		l(action, state)
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Snapshot returns the current state. Reduce never mutates a published
// Entities map, so the result is safe to read.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Entity returns the slice of state for kind.
func (s *Store) Entity(kind models.Kind) EntityState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Entities[kind]
}

// Items returns the cached list for kind typed as []T.
func Items[T any](s *Store, kind models.Kind) []T {
	items, _ := s.Entity(kind).Items.([]T)
	return items
}

// Selected returns the selected record for kind, if one of type T is set.
func Selected[T any](s *Store, kind models.Kind) (T, bool) {
	rec, ok := s.Entity(kind).Selected.(T)
	return rec, ok
}

// HasItems reports whether kind has a non-empty cached list.
func HasItems(s *Store, kind models.Kind) bool {
	items := s.Entity(kind).Items
	if items == nil {
		return false
	}
	v := reflect.ValueOf(items)
	return v.Kind() == reflect.Slice && v.Len() > 0
}
