// Package session holds the identity of the current actor.
//
// A Store is an explicit value: callers create one with New and pass it to
// whoever needs the identity. There is no package-level session.
package session

import (
	"sync"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// State is the observable view of a Store.
type State struct {
	User            *domain.Identity `json:"user"`
	IsAuthenticated bool             `json:"isAuthenticated"`
}

type observer struct {
	id int
	fn func(State)
}

// Store holds at most one Identity. Mutations are applied and announced to
// observers in call order; the last write wins.
type Store struct {
	// writeMu serialises a mutation together with its notifications.
	writeMu sync.Mutex

	mu        sync.RWMutex
	current   *domain.Identity
	observers []observer
	nextID    int
}

// New returns an empty, unauthenticated Store.
func New() *Store {
	return &Store{}
}

// Login replaces the current identity unconditionally.
func (s *Store) Login(identity domain.Identity) {
	id := identity
	s.set(&id)
}

// Logout clears the current identity. Calling it repeatedly is harmless.
func (s *Store) Logout() {
	s.set(nil)
}

// Current returns a copy of the current identity, if any.
func (s *Store) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Identity{}, false
	}
	return *s.current, true
}

// IsAuthenticated is true iff an identity is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Snapshot returns the current State.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Subscribe registers fn to be called synchronously after every mutation.
// fn may read the Store but must not call Login or Logout.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Store) set(identity *domain.Identity) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = identity
	state := s.stateLocked()
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(state)
	}
}

func (s *Store) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Store) stateLocked() State {
	if s.current == nil {
		return State{}
	}
	id := *s.current
	return State{User: &id, IsAuthenticated: true}
}
