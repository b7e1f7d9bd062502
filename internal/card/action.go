package card

import "fmt"

// ActionType tags the kind of move a player takes on their turn.
type ActionType int

const (
	Play ActionType = iota
	Discard
	ColorClue
	RankClue
	EndGame
	VoteTerminate
)

func (t ActionType) String() string {
	switch t {
	case Play:
		return "Play"
	case Discard:
		return "Discard"
	case ColorClue:
		return "ColorClue"
	case RankClue:
		return "RankClue"
	case EndGame:
		return "EndGame"
	case VoteTerminate:
		return "VoteTerminate"
	default:
		return "Undefined"
	}
}

// Action is the tagged variant spec.md describes: a Type, a Target
// (deck index for plays/discards, receiving or terminating player
// otherwise), and an optional clue/termination Value. Plays and
// discards never carry a value.
type Action struct {
	Type   ActionType
	Target int
	Value  *int
}

// NewPlay builds a Play action targeting deck index i.
func NewPlay(i int) Action { return Action{Type: Play, Target: i} }

// NewDiscard builds a Discard action targeting deck index i.
func NewDiscard(i int) Action { return Action{Type: Discard, Target: i} }

// NewColorClue builds a color-clue action to player target carrying value.
func NewColorClue(target, value int) Action {
	v := value
	return Action{Type: ColorClue, Target: target, Value: &v}
}

// NewRankClue builds a rank-clue action to player target carrying value.
func NewRankClue(target, value int) Action {
	v := value
	return Action{Type: RankClue, Target: target, Value: &v}
}

func (a Action) String() string {
	switch a.Type {
	case Play:
		return fmt.Sprintf("Play card %d", a.Target)
	case Discard:
		return fmt.Sprintf("Discard card %d", a.Target)
	case ColorClue:
		return fmt.Sprintf("Clue color %v to player %d", a.Value, a.Target)
	case RankClue:
		return fmt.Sprintf("Clue rank %v to player %d", a.Value, a.Target)
	case EndGame:
		return fmt.Sprintf("Player %d ends the game (code %v)", a.Target, a.Value)
	case VoteTerminate:
		return fmt.Sprintf("Players vote to terminate the game (code %v)", a.Value)
	default:
		return "Undefined action"
	}
}
