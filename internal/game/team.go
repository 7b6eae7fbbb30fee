package game

import "fmt"

// Team identifies a side of the table. Players with even ids form one team
// and odd ids the other; half-suits can additionally end up unowned
// (NEITHER) or permanently discarded after a botched claim (DISCARD).
type Team int

const (
	TeamEven Team = iota
	TeamOdd
	TeamNeither
	TeamDiscard
)

var teamNames = map[Team]string{
	TeamEven:    "EVEN",
	TeamOdd:     "ODD",
	TeamNeither: "NEITHER",
	TeamDiscard: "DISCARD",
}

func (t Team) String() string {
	if name, ok := teamNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TEAM_%d", int(t))
}

// TeamOf returns the team a player id belongs to.
func TeamOf(playerID int) Team {
	return Team(playerID % 2)
}

// Opponent returns the opposing team. Only meaningful for EVEN and ODD.
func (t Team) Opponent() Team {
	return Team(1 - int(t)%2)
}
