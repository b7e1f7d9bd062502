package analyzer

import (
	"testing"

	"github.com/lukev/hanabisolve/internal/card"
	"github.com/lukev/hanabisolve/internal/instance"
)

func fullSuit(suit int) []card.Card {
	ranks := []int{1, 1, 1, 2, 2, 3, 3, 4, 4, 5}
	var out []card.Card
	for _, r := range ranks {
		out = append(out, card.Card{Suit: suit, Rank: r})
	}
	return out
}

func hasKind(reasons []Reason, k ReasonKind) bool {
	for _, r := range reasons {
		if r.Kind == k {
			return true
		}
	}
	return false
}

// A deck where every copy of every suit arrives in perfectly sorted
// order (all 1s, then all 2s, ...) never needs to store more than
// num_suits cards at once and never loses pace: Analyze should find no
// certificate of infeasibility.
func TestAnalyzeSortedDeckFindsNoReason(t *testing.T) {
	var deck card.Deck
	ranks := []int{1, 1, 1, 2, 2, 3, 3, 4, 4, 5}
	for _, r := range ranks {
		for suit := 0; suit < 4; suit++ {
			deck = append(deck, card.Card{Suit: suit, Rank: r})
		}
	}
	inst, err := instance.New(deck, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reasons := Analyze(inst, true)
	if len(reasons) != 0 {
		t.Errorf("expected no infeasibility certificate, got %v", reasons)
	}
}

// spec.md section 8: a 2-player deck whose final three cards are all
// suit 0 rank 1 must report TripleBottom1With5s.
func TestAnalyzeTripleBottomOne(t *testing.T) {
	var deck card.Deck
	deck = append(deck, fullSuit(1)...)
	deck = append(deck, fullSuit(2)...)
	deck = append(deck, fullSuit(3)...)
	// suit 0, with its three 1s moved to the very end.
	suit0 := []card.Card{
		{Suit: 0, Rank: 2}, {Suit: 0, Rank: 2},
		{Suit: 0, Rank: 3}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 4},
		{Suit: 0, Rank: 5},
	}
	deck = append(deck, suit0...)
	deck = append(deck, card.Card{Suit: 0, Rank: 1}, card.Card{Suit: 0, Rank: 1}, card.Card{Suit: 0, Rank: 1})

	inst, err := instance.New(deck, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reasons := Analyze(inst, true)
	if !hasKind(reasons, TripleBottom1With5s) {
		t.Errorf("expected TripleBottom1With5s, got %v", reasons)
	}
}

// A 5-player deck with one dark suit whose final card is a non-five of
// that suit must report CritAtBottom: a dark suit has only one copy per
// rank, so the very last card being an unplayed dark non-five is
// unrecoverable.
func TestAnalyzeCritAtBottomDarkSuit(t *testing.T) {
	var deck card.Deck
	deck = append(deck, fullSuit(0)...)
	deck = append(deck, fullSuit(1)...)
	deck = append(deck, fullSuit(2)...)
	deck = append(deck, fullSuit(3)...)
	// dark suit 4: one copy of each rank, the 5 placed before the 4 so
	// the last card is a non-five.
	deck = append(deck,
		card.Card{Suit: 4, Rank: 1}, card.Card{Suit: 4, Rank: 2}, card.Card{Suit: 4, Rank: 3},
		card.Card{Suit: 4, Rank: 5}, card.Card{Suit: 4, Rank: 4},
	)

	inst, err := instance.New(deck, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.NumDarkSuits() != 1 {
		t.Fatalf("test setup: expected 1 dark suit, got %d", inst.NumDarkSuits())
	}
	reasons := Analyze(inst, true)
	if !hasKind(reasons, CritAtBottom) {
		t.Errorf("expected CritAtBottom, got %v", reasons)
	}
}

// Stacking storedCritCount up to num_players*hand_size (every seat's
// hand full of last-copy cards that cannot be played yet because the
// chain ahead of them has not been drawn) must report HandSize.
func TestAnalyzeHandSizeReason(t *testing.T) {
	// 2 players, hand size 5: capacity 10. Build a deck whose first 10
	// cards are all distinct, not-yet-playable ranks (rank 3s, with no
	// 1s or 2s of the same suit drawn before them), each the sole
	// remaining copy of its (suit, rank), so all ten fill hands as
	// critical stored cards simultaneously.
	var deck card.Deck
	for suit := 0; suit < 10; suit++ {
		deck = append(deck, card.Card{Suit: suit, Rank: 3})
	}
	for suit := 0; suit < 10; suit++ {
		deck = append(deck,
			card.Card{Suit: suit, Rank: 1}, card.Card{Suit: suit, Rank: 1}, card.Card{Suit: suit, Rank: 1},
			card.Card{Suit: suit, Rank: 2}, card.Card{Suit: suit, Rank: 2},
			card.Card{Suit: suit, Rank: 4}, card.Card{Suit: suit, Rank: 4},
			card.Card{Suit: suit, Rank: 5},
		)
	}
	inst, err := instance.New(deck, 2, instance.WithHandSize(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reasons := Analyze(inst, false)
	if len(reasons) == 0 {
		t.Fatalf("expected an infeasibility certificate")
	}
	if reasons[0].Kind != HandSize {
		t.Errorf("expected first reason to be HandSize, got %v", reasons[0])
	}
}

// listAllPaceCuts=false must stop at the first certificate found.
func TestAnalyzeStopsAtFirstReasonUnlessListingAll(t *testing.T) {
	var deck card.Deck
	deck = append(deck, fullSuit(1)...)
	deck = append(deck, fullSuit(2)...)
	deck = append(deck, fullSuit(3)...)
	suit0 := []card.Card{
		{Suit: 0, Rank: 2}, {Suit: 0, Rank: 2},
		{Suit: 0, Rank: 3}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 4},
		{Suit: 0, Rank: 5},
	}
	deck = append(deck, suit0...)
	deck = append(deck, card.Card{Suit: 0, Rank: 1}, card.Card{Suit: 0, Rank: 1}, card.Card{Suit: 0, Rank: 1})

	inst, err := instance.New(deck, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reasons := Analyze(inst, false)
	if len(reasons) != 1 {
		t.Errorf("expected exactly one reason when not listing all, got %d: %v", len(reasons), reasons)
	}
}
