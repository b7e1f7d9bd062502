package store

import (
	"testing"

	"github.com/lukev/hanabisolve/internal/card"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	rec := &GameRecord{ID: "g1", NumPlayers: 2, Deck: card.Deck{{Suit: 0, Rank: 1}}}
	s.PutGameRecord(rec)

	got, err := s.LoadGameRecord("g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.NumPlayers != 2 {
		t.Errorf("got NumPlayers=%d, want 2", got.NumPlayers)
	}

	if err := s.SaveVerdict(Verdict{GameID: "g1", Winnable: true, LastWinnable: 12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := s.Verdict("g1")
	if !ok || !v.Winnable || v.LastWinnable != 12 {
		t.Errorf("unexpected verdict: %+v, ok=%v", v, ok)
	}
}

func TestLoadGameRecordMissing(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.LoadGameRecord("missing")
	if err == nil {
		t.Fatalf("expected ErrNotFound")
	}
	if _, ok := err.(*ErrNotFound); !ok {
		t.Errorf("expected *ErrNotFound, got %T", err)
	}
}
