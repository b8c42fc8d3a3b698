package service

import "sync"

// Sessions tracks which users have a dispatch in flight. The per-user
// token doubles as the exclusion mechanism for the monthly history file:
// no write begins without holding it.
type Sessions struct {
	mu   sync.Mutex
	busy map[int64]struct{}
}

func NewSessions() *Sessions {
	return &Sessions{busy: make(map[int64]struct{})}
}

// TryAcquire marks the user busy. It returns false if a dispatch is
// already in flight for that user.
func (s *Sessions) TryAcquire(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.busy[userID]; ok {
		return false
	}
	s.busy[userID] = struct{}{}
	return true
}

func (s *Sessions) Release(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, userID)
}

func (s *Sessions) Busy(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.busy[userID]
	return ok
}
