package variant

import "fmt"

// Standard is the "No Variant" family spec.md scopes the core to: a
// deck with numSuits suits, some of which may be dark (5 copies
// instead of 10), ranks 1..5, and literal color/rank clue matching.
//
// NewStandard accepts any positive suit count and 0 to numSuits dark
// suits. The tighter bounds of original_source's
// HanabiInstance.is_standard (3 <= num_suits <= 6,
// 0 <= num_dark_suits <= 2) are checked by instance.Instance.IsStandard,
// not here.
type Standard struct {
	numSuits int
	dark     []int
}

// NewStandard builds a Standard variant with numSuits suits, the last
// numDarkSuits of which (by suit index) are dark. This matches the
// deck-distribution convention used throughout the pack: dark suits
// are appended at the end of the suit range.
func NewStandard(numSuits, numDarkSuits int) (*Standard, error) {
	if numSuits < 1 {
		return nil, fmt.Errorf("variant: numSuits must be positive, got %d", numSuits)
	}
	if numDarkSuits < 0 || numDarkSuits > numSuits {
		return nil, fmt.Errorf("variant: numDarkSuits %d out of range for %d suits", numDarkSuits, numSuits)
	}
	dark := make([]int, numDarkSuits)
	for i := 0; i < numDarkSuits; i++ {
		dark[i] = numSuits - numDarkSuits + i
	}
	return &Standard{numSuits: numSuits, dark: dark}, nil
}

func (s *Standard) Name() string      { return "No Variant" }
func (s *Standard) NumSuits() int     { return s.numSuits }
func (s *Standard) DarkSuits() []int  { return s.dark }
func (s *Standard) Ranks() []int      { return []int{1, 2, 3, 4, 5} }
func (s *Standard) MaxScore() int     { return 5 * s.numSuits }
func (s *Standard) ColorCluable(suit, value int) bool { return suit == value }
func (s *Standard) RankCluable(rank, value int) bool  { return rank == value }
