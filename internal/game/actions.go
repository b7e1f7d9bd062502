package game

import "github.com/lukev/hanabisolve/internal/card"

// MakeAction is the single mutating entry point spec.md 4.1 describes.
// It dispatches to the appropriate rule and appends the action to the
// trace on success; on a rule violation nothing is mutated beyond what
// the sub-operation already performed (the sub-operations validate
// before mutating).
func (s *State) MakeAction(a card.Action) error {
	switch a.Type {
	case card.Play:
		return s.Play(a.Target)
	case card.Discard:
		return s.Discard(a.Target)
	case card.ColorClue, card.RankClue:
		return s.clueWith(a)
	case card.EndGame, card.VoteTerminate:
		s.Actions = append(s.Actions, a)
		s.Over = true
		return nil
	default:
		return violation("MakeAction", "unknown action type %v", a.Type)
	}
}

// Play attempts to play the card at deck index i from the current
// player's hand. If instance.DeckPlays holds and i is the last card of
// the deck, it may be played directly off an otherwise-empty draw
// pile (spec.md 4.1's deck-plays exception); resolved per the Open
// Question in spec.md section 9 by treating "deck plays" as playing a
// card that was never dealt into any hand, so the usual hand-index
// lookup is skipped only in that one case.
func (s *State) Play(i int) error {
	deckPlay := s.Inst.DeckPlays && i == s.Inst.DeckSize()-1 && s.Progress == s.Inst.DeckSize()-1
	idxInHand := -1
	if !deckPlay {
		idxInHand = s.indexInHand(s.Turn, i)
		if idxInHand < 0 {
			return violation("Play", "card %d is not in player %d's hand", i, s.Turn)
		}
	}

	c := s.Inst.Deck[i]
	if c.Rank == s.Stacks[c.Suit]+1 {
		s.Stacks[c.Suit]++
		if c.Rank == 5 && s.Inst.FivesGiveClue && s.Clues < s.Inst.ClueCap() {
			s.Clues += s.Inst.ClueGainIncrement()
			if s.Clues > s.Inst.ClueCap() {
				s.Clues = s.Inst.ClueCap()
			}
		}
	} else {
		s.Strikes++
		s.Pace--
		s.Trash = append(s.Trash, c)
	}
	s.Actions = append(s.Actions, card.NewPlay(i))

	if deckPlay {
		s.Progress++ // the card was conceptually drawn and immediately played
	} else {
		s.replace(idxInHand)
	}
	if !s.Over {
		s.advanceTurn()
	}
	return nil
}

// Discard removes the card at deck index i from the current player's
// hand, restoring one clue and reducing pace.
func (s *State) Discard(i int) error {
	if s.Clues >= s.Inst.ClueCap() {
		return violation("Discard", "cannot discard at clue cap")
	}
	idxInHand := s.indexInHand(s.Turn, i)
	if idxInHand < 0 {
		return violation("Discard", "card %d is not in player %d's hand", i, s.Turn)
	}

	c := s.Inst.Deck[i]
	s.Clues += s.Inst.ClueGainIncrement()
	s.Pace--
	s.Trash = append(s.Trash, c)
	s.Actions = append(s.Actions, card.NewDiscard(i))

	s.replace(idxInHand)
	if !s.Over {
		s.advanceTurn()
	}
	return nil
}

// clueWith records a color or rank clue already carrying target/value,
// consuming one clue unit. The engine never validates clue content
// against the receiving hand; that is a variant-layer concern
// (spec.md 4.1, design notes on variant-dependent clue legality).
func (s *State) clueWith(a card.Action) error {
	if s.Clues < s.Inst.ClueSpendIncrement() {
		return violation("Clue", "cannot clue with %d clues remaining", s.Clues)
	}
	s.Clues -= s.Inst.ClueSpendIncrement()
	s.Actions = append(s.Actions, a)
	if !s.Over {
		s.advanceTurn()
	}
	return nil
}

// Clue is the convenience operation spec.md 4.1 calls for: it spends a
// clue unit without the caller needing to construct clue content. The
// recorded action is a rank clue to the next player naming the rank of
// their first card, mirroring the don't-care clue content the original
// GreedyStrategy and SAT decoder both produce (clue content is never
// inspected by the rule engine).
func (s *State) Clue() error {
	next := (s.Turn + 1) % s.Inst.NumPlayers
	value := 0
	if hand := s.Hands[next]; len(hand) > 0 {
		value = hand[0].Rank
	}
	return s.clueWith(card.NewRankClue(next, value))
}
