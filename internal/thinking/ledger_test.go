package thinking

import (
	"sync"
	"testing"
)

func TestAppendEnforcesMonotonicity(t *testing.T) {
	s := NewSession()
	if err := s.Append(Thought{Number: 1, Content: "first", TotalThoughts: 3, NextNeeded: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Append(Thought{Number: 3, Content: "skipped"}); err == nil {
		t.Fatalf("expected monotonicity violation")
	}
	if err := s.Append(Thought{Number: 2, Content: "second"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 thoughts, got %d", s.Len())
	}
}

func TestAppendRejectsEmptyContent(t *testing.T) {
	s := NewSession()
	if err := s.Append(Thought{Number: 1}); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestConcurrentAppendsNeverCorrupt(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Every goroutine races for the same slot; exactly one wins.
			_ = s.Append(Thought{Number: 1, Content: "racer"})
		}()
	}
	wg.Wait()
	if s.Len() != 1 {
		t.Fatalf("expected exactly one accepted thought, got %d", s.Len())
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewSession()
	_ = s.Append(Thought{Number: 1, Content: "one"})
	h := s.History()
	h[0].Content = "mutated"
	if s.History()[0].Content != "one" {
		t.Fatalf("history must be a defensive copy")
	}
}

func TestRegistryAcquire(t *testing.T) {
	r := NewRegistry()
	a := r.Acquire("")
	if a.ID() == "" {
		t.Fatalf("expected a session id")
	}
	b := r.Acquire(a.ID())
	if a != b {
		t.Fatalf("expected the same session for a known id")
	}
	c := r.Acquire("unknown")
	if c == a {
		t.Fatalf("unknown ids must create fresh sessions")
	}
	r.Drop(a.ID())
	d := r.Acquire(a.ID())
	if d == a {
		t.Fatalf("dropped sessions must not be returned")
	}
}
