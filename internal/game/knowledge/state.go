package knowledge

import "fmt"

// State is a tri-state belief about whether a player holds a card.
//
// The numeric values are fixed because they appear verbatim in the belief
// vector encoding consumed by external models.
type State int

const (
	DoesNotPossess State = 1
	MightPossess   State = 2
	DoesPossess    State = 3
)

var stateNames = map[State]string{
	DoesNotPossess: "DOES_NOT_POSSESS",
	MightPossess:   "MIGHT_POSSESS",
	DoesPossess:    "DOES_POSSESS",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_%d", int(s))
}

// Certain reports whether the state asserts a definite fact rather than the
// default unknown.
func (s State) Certain() bool {
	return s == DoesPossess || s == DoesNotPossess
}
