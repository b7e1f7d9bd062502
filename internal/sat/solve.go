package sat

import (
	"github.com/crillab/gophersat/solver"

	"github.com/lukev/hanabisolve/internal/analyzer"
	"github.com/lukev/hanabisolve/internal/game"
	"github.com/lukev/hanabisolve/internal/greedy"
	"github.com/lukev/hanabisolve/internal/instance"
)

// Solve is the top-level feasibility oracle spec.md 4.4-4.6 describe:
// analyzer.Analyze first, for a cheap infeasibility certificate; then
// greedy.Strategy, since a winning heuristic playthrough is itself a
// proof of feasibility; only once both are inconclusive is the CNF
// built and handed to gophersat. Grounded on
// original_source/instance_finder.py's cascade of the same three
// stages in the same order.
func Solve(start *game.State) (bool, *game.State) {
	if start.IsWon() {
		return true, start
	}

	if reasons := analyzer.Analyze(start.Inst, false); len(reasons) > 0 {
		return false, nil
	}

	if g := tryGreedy(start); g != nil {
		return true, g
	}

	clauses, nbVars, lits := Encode(start)
	pb, err := solver.ParseSlice(clauses)
	if err != nil {
		return false, nil
	}
	s := solver.New(pb)
	if s.Solve() != solver.Sat {
		return false, nil
	}
	model := s.Model()
	if len(model) < nbVars {
		padded := make([]bool, nbVars)
		copy(padded, model)
		model = padded
	}
	result := Decode(lits, model, start)
	if !result.IsWon() {
		return false, nil
	}
	return true, result
}

// SolveInstance is the convenience entry point for a fresh deal: deal
// the instance and solve from turn zero.
func SolveInstance(inst *instance.Instance) (bool, *game.State) {
	return Solve(game.New(inst))
}

// tryGreedy runs the cheating heuristic to completion on a clone of
// start and returns the resulting state if it won, nil otherwise.
func tryGreedy(start *game.State) *game.State {
	s := start.Clone()
	strat := greedy.New(s)
	limit := s.Inst.MaxWinningMoves() * 2
	for turns := 0; !s.IsOver() && turns < limit; turns++ {
		if err := strat.MakeMove(); err != nil {
			return nil
		}
	}
	if s.IsWon() {
		return s
	}
	return nil
}
