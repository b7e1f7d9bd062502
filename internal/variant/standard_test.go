package variant

import "testing"

func TestNewStandardDarkSuitsAtEnd(t *testing.T) {
	v, err := NewStandard(5, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.MaxScore() != 25 {
		t.Errorf("expected max score 25, got %d", v.MaxScore())
	}
	if !IsDark(v, 4) {
		t.Errorf("expected suit 4 to be dark")
	}
	if IsDark(v, 0) {
		t.Errorf("expected suit 0 to not be dark")
	}
}

func TestNewStandardRejectsBadCounts(t *testing.T) {
	if _, err := NewStandard(3, 4); err == nil {
		t.Errorf("expected error for numDarkSuits > numSuits")
	}
	if _, err := NewStandard(0, 0); err == nil {
		t.Errorf("expected error for zero suits")
	}
}

func TestStandardClueMatching(t *testing.T) {
	v, _ := NewStandard(5, 0)
	if !v.ColorCluable(2, 2) || v.ColorCluable(2, 3) {
		t.Errorf("color clue legality should be literal suit equality")
	}
	if !v.RankCluable(4, 4) || v.RankCluable(4, 5) {
		t.Errorf("rank clue legality should be literal rank equality")
	}
}
