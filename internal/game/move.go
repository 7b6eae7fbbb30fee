package game

import (
	"fmt"

	"github.com/literature-engine/literature-server-go/internal/game/card"
)

// Request pairs an interrogator with a respondent before the card is chosen.
// Build one through Player.Asks, which enforces the cross-team rule.
type Request struct {
	interrogator *Player
	respondent   *Player
}

// ToGive completes the request into a Move. The interrogator must not hold
// the card and must hold at least one other card of its half-suit.
func (r *Request) ToGive(c card.Name) (Move, error) {
	if r.interrogator.Holds(c) {
		return Move{}, fmt.Errorf("%w: player %d cannot ask for %s they already hold",
			ErrIllegalMove, r.interrogator.id, c)
	}
	holdsQualifying := false
	for _, other := range c.HalfSuit().Cards() {
		if r.interrogator.Holds(other) {
			holdsQualifying = true
			break
		}
	}
	if !holdsQualifying {
		return Move{}, fmt.Errorf("%w: player %d holds no card of %s",
			ErrIllegalMove, r.interrogator.id, c.HalfSuit())
	}
	return Move{
		Interrogator: r.interrogator.id,
		Respondent:   r.respondent.id,
		Card:         c,
	}, nil
}

// Move is a validated request by one player for a specific card held, or
// not, by an opponent.
type Move struct {
	Interrogator int
	Respondent   int
	Card         card.Name
}

func (m Move) String() string {
	return fmt.Sprintf("player %d requested the %s from player %d", m.Interrogator, m.Card, m.Respondent)
}

// Encode flattens the move into the four-integer form consumed alongside
// belief vectors: interrogator, respondent, 1-based suit, raw rank.
func (m Move) Encode() []int {
	return []int{
		m.Interrogator,
		m.Respondent,
		int(m.Card.Suit) + 1,
		int(m.Card.Rank),
	}
}

// MoveRecord is one ledger entry: a committed move and its outcome.
type MoveRecord struct {
	Move    Move
	Success bool
}

// Claim maps each card of one half-suit to the player asserted to hold it.
type Claim map[card.Name]int

// HalfSuit returns the half-suit the claim refers to. It assumes a
// non-empty claim; validation rejects empty ones before this is used.
func (c Claim) HalfSuit() card.HalfSuit {
	for name := range c {
		return name.HalfSuit()
	}
	return card.HalfSuit{}
}

// validate checks the structural legality of a claim made by claimant:
// exactly six cards, all of one half-suit, all assigned to the claimant's
// own team.
func (c Claim) validate(claimant int) error {
	if len(c) != card.HalfSuitSize {
		return fmt.Errorf("%w: must name exactly %d cards, got %d", ErrInvalidClaim, card.HalfSuitSize, len(c))
	}
	h := c.HalfSuit()
	for name, holder := range c {
		if name.HalfSuit() != h {
			return fmt.Errorf("%w: cards span half-suits %s and %s", ErrInvalidClaim, h, name.HalfSuit())
		}
		if TeamOf(holder) != TeamOf(claimant) {
			return fmt.Errorf("%w: player %d is not on the claimant's team", ErrInvalidClaim, holder)
		}
	}
	return nil
}
