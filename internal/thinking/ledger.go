package thinking

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Thought is one step in a sequential-thinking session.
type Thought struct {
	Number        int       `json:"thoughtNumber"`
	Content       string    `json:"thought"`
	TotalThoughts int       `json:"totalThoughts"`
	NextNeeded    bool      `json:"nextThoughtNeeded"`
	RecordedAt    time.Time `json:"recordedAt"`
}

// Session is an explicit, caller-owned thought ledger. It replaces ambient
// global history: the engine never mutates process-wide state. Appends are
// mutex-guarded and validate thoughtNumber monotonicity, so a misbehaving
// concurrent caller corrupts nothing.
type Session struct {
	id string

	mu       sync.Mutex
	thoughts []Thought
}

func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

func (s *Session) ID() string { return s.id }

// Append records the next thought. The thought number must be exactly one
// past the current history length.
func (s *Session) Append(t Thought) error {
	if t.Content == "" {
		return fmt.Errorf("thought content must not be empty")
	}
	if t.Number < 1 {
		return fmt.Errorf("thought number must be positive, got %d", t.Number)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if want := len(s.thoughts) + 1; t.Number != want {
		return fmt.Errorf("thought number %d breaks monotonicity; expected %d", t.Number, want)
	}
	if t.TotalThoughts < t.Number {
		t.TotalThoughts = t.Number
	}
	t.RecordedAt = time.Now().UTC()
	s.thoughts = append(s.thoughts, t)
	return nil
}

// History returns a copy of the recorded thoughts.
func (s *Session) History() []Thought {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Thought, len(s.thoughts))
	copy(out, s.thoughts)
	return out
}

// Len reports how many thoughts the session holds.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.thoughts)
}

// Registry tracks live sessions for a caller layer. Sessions are in-memory
// only and vanish on restart.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*Session{}}
}

// Acquire returns the session with the given id, creating a fresh session
// when id is empty or unknown.
func (r *Registry) Acquire(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != "" {
		if s, ok := r.sessions[id]; ok {
			return s
		}
	}
	s := NewSession()
	r.sessions[s.id] = s
	return s
}

// Drop forgets a session.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
