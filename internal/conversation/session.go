package conversation

import (
	"sync"
	"time"

	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/metrics"
)

// Step is the position in the role → problem → offer → contact walk.
type Step int

const (
	StepStart Step = iota + 1
	StepRoleSelected
	StepProblemSelected
	StepContactSent
)

func (s Step) String() string {
	switch s {
	case StepStart:
		return "start"
	case StepRoleSelected:
		return "role_selected"
	case StepProblemSelected:
		return "problem_selected"
	case StepContactSent:
		return "contact_sent"
	default:
		return "unknown"
	}
}

// Contact is the phone number a user shared.
type Contact struct {
	FirstName string
	Phone     string
	SharedAt  time.Time
}

// Session is per-user dialogue state. An empty Role or Problem means
// nothing was selected.
type Session struct {
	UserID   int64
	Step     Step
	Role     lead.Role
	Problem  lead.Problem
	Contact  *Contact
	LastSeen time.Time
}

func (s Session) clone() Session {
	if s.Contact != nil {
		c := *s.Contact
		s.Contact = &c
	}
	return s
}

type entry struct {
	mu      sync.Mutex
	session Session
	removed bool
}

// Sessions is the in-memory session table. Each user has a private mutex
// so one user's events apply one at a time while other users proceed.
type Sessions struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[int64]*entry
}

// NewSessions creates an empty table. now defaults to time.Now.
func NewSessions(now func() time.Time) *Sessions {
	if now == nil {
		now = time.Now
	}
	return &Sessions{now: now, entries: make(map[int64]*entry)}
}

func (t *Sessions) entry(userID int64) *entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[userID]
	if !ok {
		e = &entry{session: Session{UserID: userID, Step: StepStart, LastSeen: t.now()}}
		t.entries[userID] = e
		metrics.SessionsActive.Set(float64(len(t.entries)))
	}
	return e
}

// With runs fn on the user's session under the user's lock and returns a
// copy of the result. fn may block; only this user waits.
func (t *Sessions) With(userID int64, fn func(*Session)) Session {
	for {
		e := t.entry(userID)
		e.mu.Lock()
		if e.removed {
			// Swept between lookup and lock; take the fresh entry.
			e.mu.Unlock()
			continue
		}
		if fn != nil {
			fn(&e.session)
		}
		e.session.LastSeen = t.now()
		out := e.session.clone()
		e.mu.Unlock()
		return out
	}
}

// GetOrCreate returns a copy of the user's session, creating it at
// StepStart when absent.
func (t *Sessions) GetOrCreate(userID int64) Session {
	return t.With(userID, nil)
}

// Reset moves the user back to StepStart and clears every selection.
func (t *Sessions) Reset(userID int64) Session {
	return t.With(userID, func(s *Session) {
		*s = Session{UserID: userID, Step: StepStart}
	})
}

// Sweep drops sessions idle for longer than idle and reports how many were
// removed. Sessions busy with an event are skipped.
func (t *Sessions) Sweep(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := t.now().Add(-idle)

	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for id, e := range t.entries {
		if !e.mu.TryLock() {
			continue
		}
		if e.session.LastSeen.Before(cutoff) {
			e.removed = true
			delete(t.entries, id)
			removed++
		}
		e.mu.Unlock()
	}
	metrics.SessionsActive.Set(float64(len(t.entries)))
	return removed
}

// Len returns the number of live sessions.
func (t *Sessions) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
