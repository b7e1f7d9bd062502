package sat

import (
	"testing"

	"github.com/crillab/gophersat/solver"

	"github.com/lukev/hanabisolve/internal/card"
	"github.com/lukev/hanabisolve/internal/game"
	"github.com/lukev/hanabisolve/internal/instance"
)

func solveClauses(t *testing.T, clauses [][]int, nbVars int) []bool {
	t.Helper()
	pb, err := solver.ParseSlice(clauses)
	if err != nil {
		t.Fatalf("ParseSlice: %v", err)
	}
	s := solver.New(pb)
	if s.Solve() != solver.Sat {
		t.Fatalf("expected SAT")
	}
	model := s.Model()
	if len(model) < nbVars {
		padded := make([]bool, nbVars)
		copy(padded, model)
		model = padded
	}
	return model
}

// A single suit, fully sorted into the initial deal, is already won:
// Solve must recognize this without building a CNF at all.
func TestSolveAlreadyWon(t *testing.T) {
	deck := card.Deck{
		{Suit: 0, Rank: 1}, {Suit: 0, Rank: 2}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 5},
	}
	inst, err := instance.New(deck, 2, instance.WithHandSize(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := game.New(inst)
	s.Stacks[0] = 5
	won, result := Solve(s)
	if !won || result == nil || !result.IsWon() {
		t.Errorf("expected an already-won state to solve trivially")
	}
}

// Encode must produce a satisfiable CNF for a deck the greedy solver
// itself can win, and Decode must replay that model into an actual win.
func TestEncodeDecodeRoundTripOnDegenerateDeck(t *testing.T) {
	deck := card.Deck{
		{Suit: 0, Rank: 1}, {Suit: 0, Rank: 2}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 5},
	}
	inst, err := instance.New(deck, 2, instance.WithHandSize(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := game.New(inst)

	clauses, nbVars, lits := Encode(s)
	model := solveClauses(t, clauses, nbVars)

	result := Decode(lits, model, s)
	if !result.IsWon() {
		t.Errorf("expected decoded replay to win, score=%d", result.Score())
	}
}

// Once the real game is over (RemainingExtraTurns exhausted), every
// further turn the encoder considers must still be satisfiable even
// with an empty clue bank: dummy turns are clue-only by construction,
// but they must be exempt from the normal clue-resource check, or a
// depleted bank makes the CNF spuriously UNSAT. Regression for the gap
// where DummyTurn/RemainingGt weren't wired into the clue-legality
// clause at all.
func TestEncodeAllowsDummyTurnCluesWithDepletedBank(t *testing.T) {
	deck := card.Deck{
		{Suit: 0, Rank: 1}, {Suit: 0, Rank: 2}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 5},
		{Suit: 1, Rank: 1}, {Suit: 1, Rank: 2}, {Suit: 1, Rank: 3},
		{Suit: 1, Rank: 4}, {Suit: 1, Rank: 5},
	}
	inst, err := instance.New(deck, 2, instance.WithHandSize(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := game.New(inst)
	// Already won, so the win assertion is trivially satisfiable no
	// matter what the dummy-turn machinery forces on later turns.
	s.Stacks[0] = 5
	s.Stacks[1] = 5
	// No real turns remain: every turn from here on is a dummy turn.
	s.RemainingExtraTurns = 0
	// Too few clues for a normal clue to pass the resource check; only
	// the dummy-turn exemption can make this satisfiable.
	s.Clues = 0

	clauses, nbVars, _ := Encode(s)
	solveClauses(t, clauses, nbVars)
}

// Solve's own cascade (analyzer -> greedy -> SAT) must agree with the
// direct encode/solve/decode path on the same trivially winnable deck.
func TestSolveCascadeFindsWin(t *testing.T) {
	deck := card.Deck{
		{Suit: 0, Rank: 1}, {Suit: 0, Rank: 2}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 5},
		{Suit: 1, Rank: 1}, {Suit: 1, Rank: 2}, {Suit: 1, Rank: 3},
		{Suit: 1, Rank: 4}, {Suit: 1, Rank: 5},
	}
	inst, err := instance.New(deck, 2, instance.WithHandSize(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	won, result := Solve(game.New(inst))
	if !won || result == nil || !result.IsWon() {
		t.Errorf("expected the cascade to find a winning line")
	}
}

// A deck the static analyzer already certifies infeasible must be
// rejected by Solve without it ever reaching the CNF stage.
func TestSolveRejectsAnalyzerCertifiedInfeasibleDeck(t *testing.T) {
	// Two players, hand size 5: ten sole-copy, never-playable cards (all
	// rank 3 on distinct suits so none can ever be played) exhausts hand
	// capacity with critical cards before any suit stack can advance.
	var deck card.Deck
	for suit := 0; suit < 10; suit++ {
		deck = append(deck, card.Card{Suit: suit, Rank: 3})
	}
	inst, err := instance.New(deck, 2, instance.WithHandSize(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	won, result := Solve(game.New(inst))
	if won || result != nil {
		t.Errorf("expected the hand-size certificate to reject this deck outright")
	}
}
