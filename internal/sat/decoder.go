package sat

import "github.com/lukev/hanabisolve/internal/game"

// modelTrue reports whether lit holds under model, a []bool indexed
// 0-based per variable (model[v-1]), the shape solver.Model() returns.
func modelTrue(model []bool, lit int) bool {
	v := lit
	neg := false
	if v < 0 {
		v = -v
		neg = true
	}
	if v == 0 || v > len(model) {
		return false
	}
	val := model[v-1]
	if neg {
		return !val
	}
	return val
}

// Decode replays a satisfying model back into a concrete winning
// continuation of start, applying Play/Discard/Clue turn by turn until
// the decoded game reaches its winning stack configuration. Mirrors
// original_source/sat.py's evaluate_model, which walks the same
// per-turn variables back through GameState.play/discard/clue.
func Decode(lits *Literals, model []bool, start *game.State) *game.State {
	s := start.Clone()
	for m := lits.T0; m < lits.M; m++ {
		if s.IsWon() {
			break
		}
		if modelTrue(model, lits.Clue[m]) {
			if err := s.Clue(); err != nil {
				break
			}
			continue
		}
		target := -1
		for i, v := range lits.Use[m] {
			if modelTrue(model, v) {
				target = i
				break
			}
		}
		if target < 0 {
			break
		}
		if modelTrue(model, lits.Play[m]) {
			if err := s.Play(target); err != nil {
				break
			}
		} else {
			if err := s.Discard(target); err != nil {
				break
			}
		}
	}
	return s
}
