// Package analyzer implements the static deck analyzer (spec.md
// component C4): a single forward pass over the deck that detects
// trivial infeasibility from pace and hand-size bookkeeping, without
// paying for a SAT encoding. It is the fast path C8's bisection driver
// and internal/sat's cascade both try before anything heavier.
//
// Grounded on original_source/deck_analyzer.py's `analyze` for the
// pace-sieve core (virtual stacks, cascading auto-play, running
// min-pace tracking); the hand-size/squeeze/bottom-of-deck reasons
// spec.md section 4.2 adds beyond what the Python prototype does are
// new code written to the spec's description, since no example in the
// retrieved corpus implements them.
package analyzer

import (
	"fmt"

	"github.com/lukev/hanabisolve/internal/instance"
	"github.com/lukev/hanabisolve/internal/variant"
)

// ReasonKind names one certificate of infeasibility.
type ReasonKind int

const (
	Pace ReasonKind = iota
	HandSize
	PaceAfterSqueeze
	CritAtBottom
	BottomTopDeck
	TripleBottom1With5s
)

func (k ReasonKind) String() string {
	switch k {
	case Pace:
		return "Pace"
	case HandSize:
		return "HandSize"
	case PaceAfterSqueeze:
		return "PaceAfterSqueeze"
	case CritAtBottom:
		return "CritAtBottom"
	case BottomTopDeck:
		return "BottomTopDeck"
	case TripleBottom1With5s:
		return "TripleBottom1With5s"
	default:
		return "Unknown"
	}
}

// Reason is one certificate of infeasibility: a non-empty slice of
// Reasons proves the instance cannot be won; an empty slice is not a
// certificate of feasibility (spec.md section 4.2).
type Reason struct {
	Kind     ReasonKind
	Position int // draw index the reason was detected at, where applicable
	Suit     int // suit index, for BottomTopDeck/TripleBottom1With5s
}

func (r Reason) String() string {
	switch r.Kind {
	case BottomTopDeck, TripleBottom1With5s:
		return fmt.Sprintf("%s(suit=%d)", r.Kind, r.Suit)
	case Pace, HandSize, PaceAfterSqueeze:
		return fmt.Sprintf("%s(%d)", r.Kind, r.Position)
	default:
		return r.Kind.String()
	}
}

type storedCard struct {
	suit, rank int
	critical   bool
}

// Analyze runs the single-pass sieve over inst's deck. When
// listAllPaceCuts is false (the common case), it stops at the first
// certificate found; when true, it keeps scanning and returns every
// certificate encountered, which is useful for diagnostics.
func Analyze(inst *instance.Instance, listAllPaceCuts bool) []Reason {
	numSuits := inst.NumSuits()
	deck := inst.Deck
	capacity := inst.NumPlayers * inst.HandSize

	totalCopies := make(map[[2]int]int)
	for _, c := range deck {
		totalCopies[[2]int{c.Suit, c.Rank}]++
	}
	seenCopies := make(map[[2]int]int)

	stacks := make([]int, numSuits)
	var stored []storedCard
	storedCritCount := 0
	squeezed := false

	var reasons []Reason

	removeStored := func(suit, rank int) bool {
		for i, sc := range stored {
			if sc.suit == suit && sc.rank == rank {
				if sc.critical {
					storedCritCount--
				}
				stored = append(stored[:i], stored[i+1:]...)
				return true
			}
		}
		return false
	}

	for i, c := range deck {
		key := [2]int{c.Suit, c.Rank}
		seenCopies[key]++

		switch {
		case c.Rank == stacks[c.Suit]+1:
			stacks[c.Suit]++
			for r := c.Rank + 1; r <= 5; r++ {
				if !removeStored(c.Suit, r) {
					break
				}
				stacks[c.Suit]++
			}
		case c.Rank <= stacks[c.Suit]:
			// already-played rank reaches the deck as trash; no-op.
		default:
			crit := seenCopies[key] == totalCopies[key]
			stored = append(stored, storedCard{suit: c.Suit, rank: c.Rank, critical: crit})
			if crit {
				storedCritCount++
			}
		}

		if storedCritCount >= capacity {
			reasons = append(reasons, Reason{Kind: HandSize, Position: i})
			if !listAllPaceCuts {
				return reasons
			}
		} else if storedCritCount == capacity-1 {
			// Only room left for the critical cards already stored: the
			// non-critical ones are conceptually forced out (discarded),
			// so later cascades can no longer credit them. Mirrors
			// deck_analyzer.py's `stored_cards = stored_crits.copy()`.
			kept := stored[:0]
			for _, sc := range stored {
				if sc.critical {
					kept = append(kept, sc)
				}
			}
			stored = kept
			squeezed = true
		}

		maxRemainingPlays := (inst.DeckSize() - i - 1) + inst.NumPlayers - 1
		neededPlays := 5*numSuits - sum(stacks)
		if maxRemainingPlays < neededPlays {
			kind := Pace
			if squeezed {
				kind = PaceAfterSqueeze
			}
			reasons = append(reasons, Reason{Kind: kind, Position: i})
			if !listAllPaceCuts {
				return reasons
			}
		}
	}

	if r, ok := critAtBottom(inst); ok {
		reasons = append(reasons, r)
		if !listAllPaceCuts {
			return reasons
		}
	}
	if r, ok := tripleBottomOne(inst); ok {
		reasons = append(reasons, r)
		if !listAllPaceCuts {
			return reasons
		}
	}
	for suit := 0; suit < numSuits; suit++ {
		if r, ok := bottomTopDeck(inst, suit); ok {
			reasons = append(reasons, r)
			if !listAllPaceCuts {
				return reasons
			}
		}
	}

	return reasons
}

func sum(xs []int) int {
	t := 0
	for _, x := range xs {
		t += x
	}
	return t
}

// critAtBottom reports spec.md 4.2's bottom-of-deck check: the very
// last card is unrecoverable if it is a dark-suit non-five (dark
// suits have only one copy per rank, so losing it to the draw order
// with no chance to play it first is always fatal).
func critAtBottom(inst *instance.Instance) (Reason, bool) {
	last := inst.Deck[len(inst.Deck)-1]
	std, err := variant.NewStandard(inst.NumSuits(), inst.NumDarkSuits())
	if err != nil {
		return Reason{}, false
	}
	if last.Rank != 5 && variant.IsDark(std, last.Suit) {
		return Reason{Kind: CritAtBottom, Suit: last.Suit}, true
	}
	return Reason{}, false
}

// tripleBottomOne detects the boundary case spec.md section 8 names
// explicitly: the deck's final three cards are all the rank-1 of the
// same suit. Rank ones never cascade-play anything (nothing plays
// before them), so three consecutive 1s at the very bottom are
// guaranteed to sit in hand unplayed until the draw pile is nearly
// exhausted, typically costing the pace the game needed.
func tripleBottomOne(inst *instance.Instance) (Reason, bool) {
	n := len(inst.Deck)
	if n < 3 {
		return Reason{}, false
	}
	a, b, c := inst.Deck[n-3], inst.Deck[n-2], inst.Deck[n-1]
	if a.Rank == 1 && b.Rank == 1 && c.Rank == 1 && a.Suit == b.Suit && b.Suit == c.Suit {
		return Reason{Kind: TripleBottom1With5s, Suit: a.Suit}, true
	}
	return Reason{}, false
}

// bottomTopDeck implements spec.md 4.2's bottom/top-deck suit
// distribution check. A necessary condition for some assignment of a
// suit's remaining ranks to players to finish it off within the
// num_players+1 extra-round turns is that there are at least that many
// turns available for however many ranks remain to be played; we
// check that necessary condition as the sieve (a sufficient-assignment
// search is SAT's job, not this fast path's).
func bottomTopDeck(inst *instance.Instance, suit int) (Reason, bool) {
	deck := inst.Deck
	lastIdx := len(deck) - 1
	bottom := deck[lastIdx]
	if bottom.Suit != suit {
		return Reason{}, false
	}

	// is there already an untaken copy of this suit's bottom rank held
	// in a starting hand?
	heldElsewhere := false
	for i := 0; i < inst.NumDealtCards(); i++ {
		if i == lastIdx {
			continue
		}
		if deck[i].Suit == suit && deck[i].Rank == bottom.Rank {
			heldElsewhere = true
			break
		}
	}
	if !heldElsewhere {
		return Reason{}, false
	}

	ranksRemaining := 5 - bottom.Rank + 1
	if ranksRemaining > inst.NumPlayers+1 {
		return Reason{Kind: BottomTopDeck, Suit: suit}, true
	}
	return Reason{}, false
}
