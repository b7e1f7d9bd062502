// Package bisect implements the bisection driver (spec.md 4.6): given
// a recorded playthrough, find the last turn at which the remaining
// deck was still provably winnable, binary-searching over the SAT
// oracle in internal/sat.
//
// Grounded on original_source/hanabi/live/check_game.py's lo/hi
// doubling-down search, adapted to this module's deep-copied
// game.State as the unit of speculative exploration (spec.md 5's
// "every speculative branch starts from a copy").
package bisect

import (
	"github.com/lukev/hanabisolve/internal/card"
	"github.com/lukev/hanabisolve/internal/game"
	"github.com/lukev/hanabisolve/internal/instance"
	"github.com/lukev/hanabisolve/internal/sat"
)

// Result is the bisection driver's finding for one recorded replay.
type Result struct {
	// LastWinnable is 1-based: 0 means the instance was infeasible
	// before any recorded action, L+1 means the full replay already
	// wins.
	LastWinnable int
	// Certificate is a full winning continuation from LastWinnable,
	// or nil if LastWinnable is 0.
	Certificate *game.State
}

// Check runs spec.md 4.6's bisection search: given the instance the
// game was dealt from, the recorded action sequence, and the score
// the recording actually reached, find the latest prefix of actions
// after which the game was still provably winnable.
func Check(inst *instance.Instance, actions []card.Action, finalScore int) (Result, error) {
	if finalScore == inst.MaxScore() {
		s := game.New(inst)
		for _, a := range actions {
			if err := s.MakeAction(a); err != nil {
				return Result{}, err
			}
		}
		return Result{LastWinnable: len(actions) + 1, Certificate: s}, nil
	}

	lo, hi := 0, len(actions)
	ok, cert := sat.SolveInstance(inst)
	if !ok {
		return Result{LastWinnable: 0}, nil
	}
	if len(actions) == 0 {
		// The replay is empty and the initial deal is already provably
		// winnable: LastWinnable's 0 is reserved for "infeasible before
		// any action", so the deal itself counts as move index 1 by the
		// same +1 convention used by the already-won short circuit above.
		return Result{LastWinnable: 1, Certificate: cert}, nil
	}

	base := game.New(inst)
	best := cert

	for hi-lo > 1 {
		mid := (lo + hi) / 2
		candidate := base.Clone()
		for _, a := range actions[lo:mid] {
			if err := candidate.MakeAction(a); err != nil {
				return Result{}, err
			}
		}
		ok, solved := sat.Solve(candidate)
		if ok {
			best = solved
			lo = mid
			base = candidate
		} else {
			hi = mid
		}
	}

	return Result{LastWinnable: hi, Certificate: best}, nil
}
