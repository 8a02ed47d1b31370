package mealplan

import (
	"sync"

	"pantry-planner/internal/week"
)

// CursorStore tracks, per user and day, which candidate daily plan is
// currently applied, so repeated refreshes cycle deterministically through
// the candidate list instead of repeating at random. State is per process
// and transient; losing it only restarts the cycle.
type CursorStore struct {
	mu      sync.Mutex
	cursors map[cursorKey]int
}

type cursorKey struct {
	userID string
	weekID string
	day    string
}

// NewCursorStore creates an empty CursorStore.
func NewCursorStore() *CursorStore {
	return &CursorStore{cursors: make(map[cursorKey]int)}
}

// Advance moves the cursor for the given slot one step forward with
// wraparound and returns the new position. A slot seen for the first time
// starts at 0, so the first refresh lands on candidate 1. Returns
// week.ErrNoCandidates when candidateCount is 0.
func (s *CursorStore) Advance(userID, weekID, day string, candidateCount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cursorKey{userID: userID, weekID: weekID, day: day}
	current := s.cursors[key]
	if current >= candidateCount {
		// Candidate list shrank since the cursor was recorded.
		current = 0
	}
	next, err := week.Rotate(current, candidateCount)
	if err != nil {
		return 0, err
	}
	s.cursors[key] = next
	return next, nil
}

// Reset clears the cursor for a slot, restarting its cycle.
func (s *CursorStore) Reset(userID, weekID, day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cursors, cursorKey{userID: userID, weekID: weekID, day: day})
}
