package game

import "fmt"

// RuleViolationError reports a fatal programmer error: the engine was
// asked to make an illegal move (playing a card not in hand, cluing at
// zero clues, discarding at cap). Per spec.md section 4.1/7, these are
// never recoverable game states, and the solver/bisection driver must
// never construct a call that produces one.
type RuleViolationError struct {
	Op      string
	Message string
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("rule violation in %s: %s", e.Op, e.Message)
}

func violation(op, format string, args ...interface{}) *RuleViolationError {
	return &RuleViolationError{Op: op, Message: fmt.Sprintf(format, args...)}
}
