// Package instance models the immutable configuration of a single
// Hanabi deal: the deck, player count, and every constant derived from
// them. An Instance is built once and never mutated afterward; game.State
// is what advances under play.
package instance

import (
	"fmt"

	"github.com/lukev/hanabisolve/internal/card"
)

// StandardHandSize is the default hand size per player count, matching
// original_source/hanabi/constants.py's HAND_SIZES.
var StandardHandSize = map[int]int{2: 5, 3: 5, 4: 4, 5: 4, 6: 3}

// DefaultNumStrikes is the number of strikes that ends the game with a
// bomb-out, per spec.md 3's "num_strikes (default 3)".
const DefaultNumStrikes = 3

// Instance is the immutable description of a dealt Hanabi game:
// the deck, the number of players, and every rule-variant flag that
// changes how the engine scores or advances.
type Instance struct {
	Deck           card.Deck
	NumPlayers     int
	HandSize       int
	NumStrikes     int
	StartingPlayer int

	DeckPlays      bool // last card of the deck may be played directly
	AllOrNothing   bool
	ClueStarved    bool
	FivesGiveClue  bool

	// derived, computed once in New
	numSuits        int
	numDarkSuits    int
	deckSize        int
	numDealtCards   int
	initialPace     int
	maxWinningMoves int
}

// Option configures optional Instance fields at construction time.
type Option func(*Instance)

// WithHandSize overrides the standard per-player-count hand size.
func WithHandSize(n int) Option { return func(i *Instance) { i.HandSize = n } }

// WithNumStrikes overrides the default strike limit.
func WithNumStrikes(n int) Option { return func(i *Instance) { i.NumStrikes = n } }

// WithStartingPlayer sets which player moves first.
func WithStartingPlayer(p int) Option { return func(i *Instance) { i.StartingPlayer = p } }

// WithDeckPlays enables playing the last deck card directly off the
// draw pile once it is otherwise empty (spec.md 4.1's Play exception).
func WithDeckPlays() Option { return func(i *Instance) { i.DeckPlays = true } }

// WithAllOrNothing enables the all-or-nothing house rule flag.
func WithAllOrNothing() Option { return func(i *Instance) { i.AllOrNothing = true } }

// WithClueStarved halves the value of every clue-granting action.
func WithClueStarved() Option { return func(i *Instance) { i.ClueStarved = true } }

// WithFivesGiveClue restores a clue whenever a 5 is played below cap.
func WithFivesGiveClue() Option { return func(i *Instance) { i.FivesGiveClue = true } }

// New builds an Instance from a deck and player count, applying
// options and computing every derived constant per spec.md section 3.
func New(deck card.Deck, numPlayers int, opts ...Option) (*Instance, error) {
	if numPlayers < 2 || numPlayers > 6 {
		return nil, fmt.Errorf("instance: numPlayers must be in [2,6], got %d", numPlayers)
	}
	if len(deck) == 0 {
		return nil, fmt.Errorf("instance: deck must be non-empty")
	}

	inst := &Instance{
		Deck:       deck.Indexed(),
		NumPlayers: numPlayers,
		NumStrikes: DefaultNumStrikes,
	}
	if hs, ok := StandardHandSize[numPlayers]; ok {
		inst.HandSize = hs
	}
	for _, opt := range opts {
		opt(inst)
	}
	if inst.HandSize <= 0 {
		return nil, fmt.Errorf("instance: hand size must be positive, got %d", inst.HandSize)
	}

	maxSuit := 0
	for _, c := range inst.Deck {
		if c.Suit > maxSuit {
			maxSuit = c.Suit
		}
	}
	inst.numSuits = maxSuit + 1
	inst.deckSize = len(inst.Deck)
	inst.numDarkSuits = (10*inst.numSuits - inst.deckSize) / 5
	inst.numDealtCards = inst.NumPlayers * inst.HandSize
	if inst.numDealtCards > inst.deckSize {
		return nil, fmt.Errorf("instance: deck of size %d cannot deal %d players x %d cards", inst.deckSize, inst.NumPlayers, inst.HandSize)
	}

	inst.initialPace = inst.deckSize - 5*inst.numSuits - inst.NumPlayers*(inst.HandSize-1)

	extraMoveDeficit := 0
	if inst.NumPlayers >= 5 {
		extraMoveDeficit = 1
	}
	inst.maxWinningMoves = 15*inst.numSuits - 10*inst.numDarkSuits -
		2*inst.NumPlayers*(inst.HandSize-1) + 8 + (inst.numSuits - 1) - extraMoveDeficit

	return inst, nil
}

// NumSuits is the number of suits represented in the deck.
func (i *Instance) NumSuits() int { return i.numSuits }

// NumDarkSuits is the number of suits dealt as 5-card (one of each
// rank) rather than 10-card suits.
func (i *Instance) NumDarkSuits() int { return i.numDarkSuits }

// DeckSize is the total number of cards in the deck.
func (i *Instance) DeckSize() int { return i.deckSize }

// NumDealtCards is the number of cards initially dealt into hands.
func (i *Instance) NumDealtCards() int { return i.numDealtCards }

// InitialPace is the pace value at the start of the game.
func (i *Instance) InitialPace() int { return i.initialPace }

// MaxWinningMoves is the largest number of turns any winning replay of
// this instance can need; the SAT encoder's move horizon.
func (i *Instance) MaxWinningMoves() int { return i.maxWinningMoves }

// MaxScore is the maximum score achievable: 5 per suit.
func (i *Instance) MaxScore() int { return 5 * i.numSuits }

// ClueGainIncrement is the half-unit amount a discard or (with
// FivesGiveClue) a five-play restores. A real clue is always worth
// `ClueCap()/8` half-units, and clue-starved play only halves the
// *real* amount a discard grants (0.5 instead of 1) — which, once
// scaled into that variant's doubled half-unit cap, works out to the
// same single half-unit as the non-starved case.
func (i *Instance) ClueGainIncrement() int { return 1 }

// ClueSpendIncrement is the half-unit cost of giving a clue. Spending
// is not affected by ClueStarved the way gaining is: a clue always
// costs one real clue, which is `ClueCap()/8` half-units.
func (i *Instance) ClueSpendIncrement() int {
	if i.ClueStarved {
		return 2
	}
	return 1
}

// ClueCap is the maximum clue count, in half-units.
func (i *Instance) ClueCap() int {
	if i.ClueStarved {
		return 16
	}
	return 8
}

// InitialClues is the clue count, in half-units, at game start. Equal
// to ClueCap: the game always begins with a full clue supply.
func (i *Instance) InitialClues() int { return i.ClueCap() }

// DrawPileSize is the number of cards left to draw once hands are dealt.
func (i *Instance) DrawPileSize() int { return i.deckSize - i.numDealtCards }

// IsStandard reports whether the instance matches hanabi-live's
// standard rule bounds (hand size, strike count, 3-6 suits, 0-2 dark
// suits), mirroring HanabiInstance.is_standard in the original source.
func (i *Instance) IsStandard() bool {
	if i.NumPlayers < 2 || i.NumPlayers > 6 {
		return false
	}
	if i.HandSize != StandardHandSize[i.NumPlayers] {
		return false
	}
	if i.NumStrikes != DefaultNumStrikes {
		return false
	}
	if i.numSuits < 3 || i.numSuits > 6 {
		return false
	}
	if i.numDarkSuits < 0 || i.numDarkSuits > 2 {
		return false
	}
	return i.numSuits-i.numDarkSuits >= 4 || i.numSuits == 3
}
