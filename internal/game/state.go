// Package game implements the Hanabi rule engine (spec.md component
// C3): a deterministic state machine that advances a dealt Instance
// under a sequence of actions, enforcing every invariant in spec.md
// section 3 and recording an append-only action trace.
package game

import (
	"github.com/lukev/hanabisolve/internal/card"
	"github.com/lukev/hanabisolve/internal/instance"
)

// State is the mutable game state advancing under make_action. It
// owns no reference back into the Instance's deck slice that could
// alias another State's; Clone() always copies.
type State struct {
	Inst *instance.Instance

	Hands   [][]card.Card
	Stacks  []int
	Progress int
	Turn    int
	Clues   int // half-units; see instance.Instance.ClueGainIncrement/ClueSpendIncrement
	Strikes int
	Pace    int

	RemainingExtraTurns int
	Trash               []card.Card
	Over                bool
	Actions             []card.Action

	// InLostState is set by callers (the greedy solver) when no legal
	// move remains worth making; it is never set by the engine itself.
	InLostState bool
}

// New builds a fresh State from an Instance: hands dealt from the
// front of the deck, stacks at zero, full clues, and pace/extra-turn
// bookkeeping per spec.md section 3.
func New(inst *instance.Instance) *State {
	hands := make([][]card.Card, inst.NumPlayers)
	for p := 0; p < inst.NumPlayers; p++ {
		h := inst.Deck.Hand(p, inst.HandSize)
		hands[p] = append([]card.Card(nil), h...)
	}
	return &State{
		Inst:                inst,
		Hands:               hands,
		Stacks:              make([]int, inst.NumSuits()),
		Progress:            inst.NumDealtCards(),
		Turn:                inst.StartingPlayer,
		Clues:               inst.InitialClues(),
		Strikes:             0,
		Pace:                inst.InitialPace(),
		RemainingExtraTurns: inst.NumPlayers + 1,
	}
}

// Clone performs the deep copy spec.md's design notes require of the
// bisection driver: hands, stacks, trash, and actions are all
// independently allocated; the immutable Instance (and its deck) is
// shared, never aliased into mutable state.
func (s *State) Clone() *State {
	cp := *s
	cp.Hands = make([][]card.Card, len(s.Hands))
	for i, h := range s.Hands {
		cp.Hands[i] = append([]card.Card(nil), h...)
	}
	cp.Stacks = append([]int(nil), s.Stacks...)
	cp.Trash = append([]card.Card(nil), s.Trash...)
	cp.Actions = append([]card.Action(nil), s.Actions...)
	return &cp
}

// CurHand returns the hand of the player whose turn it currently is.
func (s *State) CurHand() []card.Card { return s.Hands[s.Turn] }

// Score is sum(stacks), except the bomb-out rule: a game that ended on
// the final allowed strike scores zero regardless of stack progress.
func (s *State) Score() int {
	if s.Strikes == s.Inst.NumStrikes {
		return 0
	}
	total := 0
	for _, v := range s.Stacks {
		total += v
	}
	return total
}

// IsWon reports whether every stack is maxed out.
func (s *State) IsWon() bool {
	return s.Score() == s.Inst.MaxScore()
}

// IsOver reports whether the game has ended: max score reached, the
// strike limit was hit, the extra round ran out, or over was set by an
// EndGame/VoteTerminate action.
func (s *State) IsOver() bool {
	if s.Over {
		return true
	}
	if s.Strikes == s.Inst.NumStrikes {
		return true
	}
	if s.RemainingExtraTurns == 0 {
		return true
	}
	allMaxed := true
	for _, v := range s.Stacks {
		if v != 5 {
			allMaxed = false
			break
		}
	}
	return allMaxed
}

// HoldingPlayers yields every player currently holding a copy of c
// (compared by value, per card.Card.Same).
func (s *State) HoldingPlayers(c card.Card) []int {
	var out []int
	for p, hand := range s.Hands {
		for _, held := range hand {
			if held.Same(c) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// indexInHand finds the position of the card with the given deck
// index in player p's hand, or -1 if absent. Lookups are always by
// deck index, never by value, per spec.md's design notes: duplicate
// copies are otherwise ambiguous.
func (s *State) indexInHand(p, deckIndex int) int {
	for i, c := range s.Hands[p] {
		if c.DeckIndex == deckIndex {
			return i
		}
	}
	return -1
}

// replace removes the card at hand position idxInHand from the acting
// player's hand (preserving relative order) and appends the next draw
// pile card if the deck is non-empty, advancing Progress.
func (s *State) replace(idxInHand int) {
	hand := s.Hands[s.Turn]
	for i := idxInHand; i < len(hand)-1; i++ {
		hand[i] = hand[i+1]
	}
	if s.Progress < s.Inst.DeckSize() {
		hand[len(hand)-1] = s.Inst.Deck[s.Progress]
		s.Progress++
	} else {
		s.Hands[s.Turn] = hand[:len(hand)-1]
	}
}

// advanceTurn moves to the next player and, once the draw pile is
// empty, counts down the extra round (spec.md section 3/4.1).
func (s *State) advanceTurn() {
	s.Turn = (s.Turn + 1) % s.Inst.NumPlayers
	if s.Progress == s.Inst.DeckSize() {
		s.RemainingExtraTurns--
		if s.RemainingExtraTurns <= 0 {
			s.Over = true
		}
	}
}
