package sat

import "github.com/lukev/hanabisolve/internal/instance"

// Literals is the turn-indexed variable bookkeeping the encoder fills
// in and the decoder reads back, mirroring the field layout of
// original_source/sat.py's Literals class. Every *Gt family is a unary
// "greater-than" chain: Gt[m][k] means the tracked quantity exceeds k
// after turn m's action has been applied. m ranges over [T0-1, M-1];
// m=T0-1 is the boundary turn fixed from the starting GameState rather
// than solved for.
type Literals struct {
	Inst *instance.Instance
	P    int // NumPlayers, for turn-to-player residue arithmetic
	T0   int // first turn the encoding solves for
	M    int // exclusive turn horizon, instance.MaxWinningMoves()

	Play    map[int]int // m -> var: this turn's action is a Play
	UseAny  map[int]int // m -> var: this turn targets a card (Play or Discard)
	Discard map[int]int // m -> var, derived: UseAny ∧ ¬Play
	Clue    map[int]int // m -> var, derived: ¬UseAny
	Strike  map[int]int // m -> var: this turn's play failed

	// DummyTurn[m] holds whether turn m is padding past the real game's
	// end: no real turns remain (RemainingGt[m-1] is not > 0). Dummy
	// turns must clue (UseAny forced false) and are exempt from the
	// normal clue-resource-legality check.
	DummyTurn map[int]int

	// RemainingGt is the unary gt-chain for the real turns remaining
	// before the game is over, mirroring game.State.RemainingExtraTurns
	// exactly: it starts at NumPlayers+1 and decrements by one on every
	// turn once the draw pile is empty, saturating at zero. Domain
	// k ranges over [-1, P].
	RemainingGt map[int]map[int]int

	Use map[int]map[int]int // m -> deck index -> var
	Draw map[int]map[int]int // m -> deck index -> var (undrawn-at-boundary cards only)

	CluesGt    map[int]map[int]int
	PaceGt     map[int]map[int]int
	StrikesGt  map[int]map[int]int
	DrawnGt    map[int]map[int]int
	ProgressGt map[int]map[int]map[int]int // m -> suit -> k -> var

	Win int // the single top-level "a winning turn exists" variable
}

// player returns the player whose turn global turn index m is.
func (l *Literals) player(m int) int {
	return (l.Inst.StartingPlayer + m) % l.P
}

// sameResidueTurns lists the earlier encoded turns belonging to the
// same player as m, most recent first: m-P, m-2P, ..., down to (but not
// below) T0.
func (l *Literals) sameResidueTurns(m int) []int {
	var out []int
	for m0 := m - l.P; m0 >= l.T0; m0 -= l.P {
		out = append(out, m0)
	}
	return out
}
