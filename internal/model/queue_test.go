package model

import (
	"errors"
	"testing"
)

func TestQueue(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{alice, bob, "carol"} {
		if err := q.AddPlayer(Player{ID: id}); err != nil {
			t.Fatalf("AddPlayer(%s) error = %v", id, err)
		}
	}
	if err := q.AddPlayer(Player{ID: bob}); !errors.Is(err, ErrAlreadyQueued) {
		t.Errorf("duplicate AddPlayer error = %v, want ErrAlreadyQueued", err)
	}

	if !q.Remove(bob) || q.Remove(bob) {
		t.Error("Remove should succeed once")
	}

	p1, p2, ok := q.GetNextPair()
	if !ok || p1.ID != alice || p2.ID != "carol" {
		t.Errorf("GetNextPair() = %s, %s, %v", p1.ID, p2.ID, ok)
	}
	if _, _, ok := q.GetNextPair(); ok || q.Size() != 0 {
		t.Errorf("empty queue returned a pair, size %d", q.Size())
	}
}
