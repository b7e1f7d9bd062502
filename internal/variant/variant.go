// Package variant supplies the pluggable clue-legality and scoring
// hooks spec.md section 9 calls out. The rule engine never inspects
// clue content and the SAT encoder treats clues as opaque unit-cost
// actions; neither consults a Variant (both take suit count and
// maximum score from instance.Instance). The static analyzer uses a
// Standard variant to tell which suits are dark.
package variant

// Variant describes the rules distinguishing one Hanabi variant from
// another. The core only ever consults it for bookkeeping constants;
// clue-content legality is a caller concern (spec.md 4.1's "the engine
// does not verify clue legality against the receiver's hand").
type Variant interface {
	// Name identifies the variant for display/serialization purposes.
	Name() string
	// NumSuits is the number of suits in the variant's deck.
	NumSuits() int
	// DarkSuits returns the indices of suits with only 5 copies
	// (one of each rank) rather than the standard 10.
	DarkSuits() []int
	// Ranks is the set of ranks that exist in the variant, normally
	// 1..5.
	Ranks() []int
	// MaxScore is the maximum achievable score: 5 per suit.
	MaxScore() int
	// ColorCluable reports whether a clue of the given color value
	// legally touches a card of the given suit. Standard variants
	// return suit == value.
	ColorCluable(suit, value int) bool
	// RankCluable reports whether a clue of the given rank value
	// legally touches a card of the given rank. Standard variants
	// return rank == value.
	RankCluable(rank, value int) bool
}

// IsDark reports whether suit is one of v's dark suits.
func IsDark(v Variant, suit int) bool {
	for _, d := range v.DarkSuits() {
		if d == suit {
			return true
		}
	}
	return false
}
