// Package greedy implements the cheating heuristic strategy (spec.md
// component C5): a player with full knowledge of every hand picks
// moves by a fixed weighting scheme. It never proves a deck feasible
// or infeasible on its own; internal/sat uses it as a cheap warm-start
// before paying for a CNF encoding.
//
// Grounded directly on original_source/greedy_solver.py's
// GreedyStrategy: the card classification, weight formulas, and move
// priority order (play > clue-at-cap > discard-trash > discard-weakest
// > clue) are ported as-is onto internal/game.State.
package greedy

import (
	"errors"

	"github.com/lukev/hanabisolve/internal/card"
	"github.com/lukev/hanabisolve/internal/game"
)

// ErrLostCritical reports that every card in the current hand is
// critical and clues are exhausted: no legal move keeps the game
// alive, mirroring the Python port's `ValueError("Lost critical card")`.
var ErrLostCritical = errors.New("greedy: no move avoids losing a critical card")

// CardType classifies a card in hand given the current stacks.
type CardType int

const (
	Trash CardType = iota
	Playable
	Critical
	Dispensable
)

func (t CardType) String() string {
	switch t {
	case Trash:
		return "Trash"
	case Playable:
		return "Playable"
	case Critical:
		return "Critical"
	case Dispensable:
		return "Dispensable"
	default:
		return "Unknown"
	}
}

type cardState struct {
	typ    CardType
	card   card.Card
	weight float64
}

// Strategy wraps a *game.State and picks moves greedily.
type Strategy struct {
	State *game.State

	earliestDrawTimes [][]int // [suit][rank-1]
	suitBadness       []int
}

// New builds a Strategy over s. It also precomputes per-suit draw-time
// statistics (earliestDrawTimes, suitBadness); the weight functions
// below do not read them.
func New(s *game.State) *Strategy {
	numSuits := s.Inst.NumSuits()
	deck := s.Inst.Deck
	numDealt := s.Inst.NumPlayers * s.Inst.HandSize

	earliest := make([][]int, numSuits)
	for suit := 0; suit < numSuits; suit++ {
		earliest[suit] = make([]int, 5)
		for rank := 1; rank <= 5; rank++ {
			idx := deckIndexOf(deck, suit, rank)
			val := idx - numDealt + 1
			if val < 0 {
				val = 0
			}
			if rank > 1 && earliest[suit][rank-2] > val {
				val = earliest[suit][rank-2]
			}
			earliest[suit][rank-1] = val
		}
	}

	badness := make([]int, numSuits)
	for suit := 0; suit < numSuits; suit++ {
		total := 0
		for rank := 1; rank <= 4; rank++ {
			total += earliest[suit][rank-1]
		}
		badness[suit] = total
	}

	return &Strategy{State: s, earliestDrawTimes: earliest, suitBadness: badness}
}

func deckIndexOf(deck card.Deck, suit, rank int) int {
	for i, c := range deck {
		if c.Suit == suit && c.Rank == rank {
			return i
		}
	}
	return -1
}

func inTrash(s *game.State, c card.Card) bool {
	for _, t := range s.Trash {
		if t.Same(c) {
			return true
		}
	}
	return false
}

func classify(s *game.State, c card.Card) CardType {
	played := s.Stacks[c.Suit]
	switch {
	case c.Rank <= played:
		return Trash
	case c.Rank == played+1:
		return Playable
	case c.Rank == 5 || inTrash(s, c):
		return Critical
	default:
		return Dispensable
	}
}

// MakeMove classifies every hand, weighs the current player's options,
// and calls exactly one of Play/Discard/Clue on the underlying state.
// It returns ErrLostCritical when the hand is all critical cards and
// no clue remains to spend; it then sets State.InLostState and makes
// no move.
func (g *Strategy) MakeMove() error {
	s := g.State
	hands := make([][]cardState, s.Inst.NumPlayers)
	for p := 0; p < s.Inst.NumPlayers; p++ {
		hand := s.Hands[p]
		states := make([]cardState, len(hand))
		for i, c := range hand {
			states[i] = cardState{typ: classify(s, c), card: c}
		}
		markDuplicatesTrash(states)
		hands[p] = states
	}

	for player, states := range hands {
		for i := range states {
			switch states[i].typ {
			case Playable:
				states[i].weight = g.playableWeight(player, states[i].card)
			case Dispensable:
				states[i].weight = g.dispensableWeight(states[i].card)
			}
		}
	}

	curHand := hands[s.Turn]
	var plays []cardState
	var trashCard *card.Card
	for i := range curHand {
		switch curHand[i].typ {
		case Playable:
			plays = append(plays, curHand[i])
		case Trash:
			if trashCard == nil {
				trashCard = &curHand[i].card
			}
		}
	}

	switch {
	case len(plays) > 0:
		best := plays[0]
		for _, p := range plays[1:] {
			if p.weight > best.weight {
				best = p
			}
		}
		return s.Play(best.card.DeckIndex)

	case s.Clues == s.Inst.ClueCap():
		return s.Clue()

	case trashCard != nil:
		return s.Discard(trashCard.DeckIndex)

	case s.Clues < s.Inst.ClueSpendIncrement():
		// Not enough clue half-units to give a clue (always true at
		// Clues==0; also possible at Clues==1 under ClueStarved, where
		// spending costs two half-units).
		var dispensable []cardState
		for i := range curHand {
			if curHand[i].typ == Dispensable {
				dispensable = append(dispensable, curHand[i])
			}
		}
		if len(dispensable) == 0 {
			s.InLostState = true
			return ErrLostCritical
		}
		worst := dispensable[0]
		for _, d := range dispensable[1:] {
			if d.weight < worst.weight {
				worst = d
			}
		}
		return s.Discard(worst.card.DeckIndex)

	default:
		return s.Clue()
	}
}

// markDuplicatesTrash mirrors the Python port's quirk: when a hand
// holds two or more copies of the same value, exactly one (the first
// found) is downgraded to Trash, freeing it to be discarded safely
// while its sibling stays Critical/Playable/Dispensable.
func markDuplicatesTrash(states []cardState) {
	counts := make(map[[2]int]int)
	for _, st := range states {
		counts[[2]int{st.card.Suit, st.card.Rank}]++
	}
	for key, n := range counts {
		if n < 2 {
			continue
		}
		for i := range states {
			if states[i].card.Suit == key[0] && states[i].card.Rank == key[1] {
				states[i].typ = Trash
				break
			}
		}
	}
}

func (g *Strategy) playableWeight(player int, c card.Card) float64 {
	s := g.State
	copyHolders := otherHolders(s, c, player)
	var connecting []int
	if c.Rank < 5 {
		connecting = s.HoldingPlayers(card.Card{Suit: c.Suit, Rank: c.Rank + 1})
	}
	if len(copyHolders) == 0 {
		mult := 1.0
		if len(connecting) > 0 {
			mult = 3.0
		}
		return mult * float64(c.Rank)
	}
	return 0.5 * float64(c.Rank)
}

func (g *Strategy) dispensableWeight(c card.Card) float64 {
	s := g.State
	nextCopy := 1
	for _, future := range s.Inst.Deck[s.Progress:] {
		if future.Same(c) {
			nextCopy = future.DeckIndex - s.Progress
			break
		}
	}
	return float64(nextCopy) + 2*float64(5-c.Rank)
}

func otherHolders(s *game.State, c card.Card, exclude int) []int {
	var out []int
	for _, p := range s.HoldingPlayers(c) {
		if p != exclude {
			out = append(out, p)
		}
	}
	return out
}
