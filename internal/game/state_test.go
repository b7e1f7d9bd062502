package game

import (
	"testing"

	"github.com/lukev/hanabisolve/internal/card"
	"github.com/lukev/hanabisolve/internal/instance"
)

func oneSuitDeck() card.Deck {
	return card.Deck{
		{Suit: 0, Rank: 1}, {Suit: 0, Rank: 2}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 5},
	}
}

// Scenario 1 from spec.md section 8: degenerate 1-suit deck, 2 players,
// hand size 5 (so the whole deck is dealt up front): playing the five
// cards in order wins immediately.
func TestScenarioDegenerateOneSuitWin(t *testing.T) {
	inst, err := instance.New(oneSuitDeck(), 2, instance.WithHandSize(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := New(inst)
	for i := 0; i < 5; i++ {
		if err := s.Play(i); err != nil {
			t.Fatalf("play %d: unexpected error: %v", i, err)
		}
	}
	if s.Score() != 5 {
		t.Errorf("expected score 5, got %d", s.Score())
	}
	if !s.IsWon() {
		t.Errorf("expected game won")
	}
}

func standardDeck(numSuits int) card.Deck {
	var d card.Deck
	ranks := []int{1, 1, 1, 2, 2, 3, 3, 4, 4, 5}
	for suit := 0; suit < numSuits; suit++ {
		for _, r := range ranks {
			d = append(d, card.Card{Suit: suit, Rank: r})
		}
	}
	return d
}

func invariantCheck(t *testing.T, s *State) {
	t.Helper()
	sumHands := 0
	for _, h := range s.Hands {
		sumHands += len(h)
	}
	everPlayedOrDiscarded := len(s.Trash)
	for _, v := range s.Stacks {
		everPlayedOrDiscarded += v
	}
	// I1: sum(|hands|) + |trash| + sum(stacks) = progress
	if got, want := sumHands+everPlayedOrDiscarded, s.Progress; got != want {
		t.Errorf("I1 violated: sumHands+discarded+played=%d, progress=%d", got, want)
	}
	// I2
	if s.Clues < 0 || s.Clues > s.Inst.ClueCap() {
		t.Errorf("I2 violated: clues %d out of [0,%d]", s.Clues, s.Inst.ClueCap())
	}
	if s.Strikes < 0 || s.Strikes > s.Inst.NumStrikes {
		t.Errorf("I2 violated: strikes %d out of [0,%d]", s.Strikes, s.Inst.NumStrikes)
	}
	// stacks in [0,5]
	for suit, v := range s.Stacks {
		if v < 0 || v > 5 {
			t.Errorf("stack %d out of range: %d", suit, v)
		}
	}
}

func TestInvariantsHoldAcrossGreedyPlay(t *testing.T) {
	inst, err := instance.New(standardDeck(4), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := New(inst)
	invariantCheck(t, s)
	turns := 0
	for !s.IsOver() && turns < 500 {
		turns++
		hand := s.CurHand()
		played := false
		for _, c := range hand {
			if c.Rank == s.Stacks[c.Suit]+1 {
				if err := s.Play(c.DeckIndex); err != nil {
					t.Fatalf("play: unexpected error: %v", err)
				}
				played = true
				break
			}
		}
		if played {
			invariantCheck(t, s)
			continue
		}
		if s.Clues < s.Inst.ClueCap() {
			if err := s.Discard(hand[0].DeckIndex); err != nil {
				t.Fatalf("discard: unexpected error: %v", err)
			}
		} else {
			if err := s.Clue(); err != nil {
				t.Fatalf("clue: unexpected error: %v", err)
			}
		}
		invariantCheck(t, s)
	}
}

func TestDiscardAtCapIsRuleViolation(t *testing.T) {
	inst, err := instance.New(standardDeck(4), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := New(inst)
	if err := s.Discard(s.CurHand()[0].DeckIndex); err == nil {
		t.Errorf("expected rule violation discarding at full clue cap")
	}
}

func TestPlayCardNotInHandIsRuleViolation(t *testing.T) {
	inst, err := instance.New(standardDeck(4), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := New(inst)
	lastDeckIdx := inst.DeckSize() - 1
	if err := s.Play(lastDeckIdx); err == nil {
		t.Errorf("expected rule violation playing a card not yet drawn")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	inst, err := instance.New(standardDeck(4), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := New(inst)
	clone := s.Clone()
	// Spend a clue first: a discard at the full starting clue count is a
	// rule violation.
	if err := clone.Clue(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := clone.Discard(clone.CurHand()[0].DeckIndex); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Clues != inst.InitialClues() {
		t.Errorf("expected original state to be unaffected by clone mutation")
	}
	if len(s.Trash) != 0 {
		t.Errorf("expected original state's trash to remain empty")
	}
}

func TestBombOutScoresZero(t *testing.T) {
	inst, err := instance.New(standardDeck(4), 4, instance.WithNumStrikes(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := New(inst)
	// find a card in hand that is NOT currently playable to force a strike
	hand := s.CurHand()
	var badIdx = -1
	for _, c := range hand {
		if c.Rank != s.Stacks[c.Suit]+1 {
			badIdx = c.DeckIndex
			break
		}
	}
	if badIdx < 0 {
		t.Fatalf("test setup: no misplayable card found")
	}
	if err := s.Play(badIdx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Score() != 0 {
		t.Errorf("expected bomb-out score 0, got %d", s.Score())
	}
	if !s.IsOver() {
		t.Errorf("expected game over after reaching strike limit")
	}
}

// I3: pace = initial_pace - (discards + misplays)
func TestPaceInvariant(t *testing.T) {
	inst, err := instance.New(standardDeck(4), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := New(inst)
	discardsAndMisplays := 0
	for i := 0; i < 10 && !s.IsOver(); i++ {
		hand := s.CurHand()
		played := false
		for _, c := range hand {
			if c.Rank == s.Stacks[c.Suit]+1 {
				s.Play(c.DeckIndex)
				played = true
				break
			}
		}
		if !played {
			if s.Clues < s.Inst.ClueCap() {
				if err := s.Discard(hand[0].DeckIndex); err != nil {
					t.Fatalf("discard: unexpected error: %v", err)
				}
				discardsAndMisplays++
			} else if err := s.Clue(); err != nil {
				t.Fatalf("clue: unexpected error: %v", err)
			}
		}
		if got, want := s.Pace, inst.InitialPace()-discardsAndMisplays; got != want {
			t.Errorf("I3 violated at step %d: pace=%d, want %d", i, got, want)
		}
	}
}
