package session

import (
	"sync"
	"testing"

	"github.com/bananagame/go-server/internal/question"
)

func TestStore_IssueCurrentClear(t *testing.T) {
	s := NewStore()

	if _, ok := s.Current(1); ok {
		t.Fatal("expected no issued question for fresh user")
	}

	q := question.Question{ImageURL: "https://example.com/a.png", Solution: 7}
	s.Issue(1, q)

	got, ok := s.Current(1)
	if !ok || got != q {
		t.Fatalf("current = %+v ok=%v, want %+v", got, ok, q)
	}

	// Issuing again replaces, and other users stay isolated.
	q2 := question.Question{ImageURL: "https://example.com/b.png", Solution: 3}
	s.Issue(1, q2)
	if got, _ := s.Current(1); got != q2 {
		t.Fatalf("current after reissue = %+v, want %+v", got, q2)
	}
	if _, ok := s.Current(2); ok {
		t.Fatal("user 2 should have no issued question")
	}

	s.Clear(1)
	if _, ok := s.Current(1); ok {
		t.Fatal("expected question cleared")
	}
}

func TestStore_LockIsStablePerUser(t *testing.T) {
	s := NewStore()
	if s.Lock(1) != s.Lock(1) {
		t.Fatal("same user must get the same lock")
	}
	if s.Lock(1) == s.Lock(2) {
		t.Fatal("different users must not share a lock")
	}
}

func TestStore_LockSerializes(t *testing.T) {
	s := NewStore()
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := s.Lock(9)
			l.Lock()
			counter++
			l.Unlock()
		}()
	}
	wg.Wait()
	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}
