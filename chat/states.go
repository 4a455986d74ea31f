package chat

import "sync"

// GreetedStates tracks which users have received their first-contact
// greeting. State lives for the process lifetime only; it is not persisted
// and is lost on restart.
type GreetedStates struct {
	mu      sync.Mutex
	greeted map[string]bool
}

// NewGreetedStates creates an empty state store.
func NewGreetedStates() *GreetedStates {
	return &GreetedStates{greeted: make(map[string]bool)}
}

// MarkGreeted transitions the user to greeted and reports whether this
// call performed the transition. The check-and-set is atomic, so two
// concurrent messages from the same new user cannot both observe first
// contact.
func (s *GreetedStates) MarkGreeted(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.greeted[userID] {
		return false
	}
	s.greeted[userID] = true
	return true
}

// Greeted reports whether the user has been greeted.
func (s *GreetedStates) Greeted(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.greeted[userID]
}

// Len returns the number of greeted users.
func (s *GreetedStates) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.greeted)
}
