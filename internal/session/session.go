// internal/session/session.go
//
// In-memory store for the question currently issued to each user.
// This replaces cross-request globals: the store is owned by the server
// instance and scoped to its lifetime, and the issued solution can only
// be read back for the same user id it was issued to.
//
// The store also hands out a per-user lock. A round resolution holds the
// lock from state load to persistence so two concurrent guesses for the
// same user cannot both decrement lives from the same stale read.
//
// Characteristics:
//   - Keyed by user id; concurrency-safe via an internal mutex.
//   - State is lost on process restart; the next /game/state fetch simply
//     issues a fresh question.

package session

import (
	"sync"

	"github.com/bananagame/go-server/internal/question"
)

// Store tracks issued questions and per-user round locks.
type Store struct {
	mu     sync.Mutex
	issued map[int64]question.Question
	locks  map[int64]*sync.Mutex
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{
		issued: make(map[int64]question.Question),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// Issue binds q to the user, replacing any previously issued question.
func (s *Store) Issue(userID int64, q question.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[userID] = q
}

// Current returns the question issued to the user, if any.
func (s *Store) Current(userID int64) (question.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.issued[userID]
	return q, ok
}

// Clear drops the user's issued question.
// Called after game over so the next state fetch starts a fresh game.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.issued, userID)
}

// Lock returns the mutex serializing round resolution for the user,
// creating it on first use. Callers hold it across load-resolve-persist.
func (s *Store) Lock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}
