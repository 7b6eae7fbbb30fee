package game

import (
	"fmt"
	"sort"

	"github.com/literature-engine/literature-server-go/internal/game/card"
	"github.com/literature-engine/literature-server-go/internal/game/knowledge"
)

// Player couples a seat at the table with the actual hand it holds and the
// belief store it maintains. The hand is exclusively owned: external readers
// only ever see copies, so belief snapshots can never alias live hand state.
type Player struct {
	id       int
	nPlayers int
	hand     map[card.Name]struct{}
	beliefs  *knowledge.Store
}

func newPlayer(id, nPlayers int, hand []card.Name) (*Player, error) {
	beliefs, err := knowledge.NewStore(id, nPlayers, hand)
	if err != nil {
		return nil, err
	}
	p := &Player{
		id:       id,
		nPlayers: nPlayers,
		hand:     make(map[card.Name]struct{}, len(hand)),
		beliefs:  beliefs,
	}
	for _, c := range hand {
		p.hand[c] = struct{}{}
	}
	return p, nil
}

// ID returns the player's seat id.
func (p *Player) ID() int {
	return p.id
}

// Team returns the team the player belongs to.
func (p *Player) Team() Team {
	return TeamOf(p.id)
}

// Beliefs exposes the player's belief store.
func (p *Player) Beliefs() *knowledge.Store {
	return p.beliefs
}

// Holds reports whether the card is actually in the player's hand.
func (p *Player) Holds(c card.Name) bool {
	_, ok := p.hand[c]
	return ok
}

// Hand returns a sorted snapshot of the player's hand.
func (p *Player) Hand() []card.Name {
	out := make([]card.Name, 0, len(p.hand))
	for c := range p.hand {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// HandSize returns the actual number of cards held.
func (p *Player) HandSize() int {
	return len(p.hand)
}

// UnclaimedCards returns how many held cards belong to half-suits that have
// not been resolved yet.
func (p *Player) UnclaimedCards() int {
	count := 0
	for c := range p.hand {
		if !p.beliefs.Claimed(c.HalfSuit()) {
			count++
		}
	}
	return count
}

// HasNoCards reports whether the player is effectively out of the game:
// every card still held belongs to an already-claimed half-suit.
func (p *Player) HasNoCards() bool {
	return p.UnclaimedCards() == 0
}

// gains adds a card won through a successful request.
func (p *Player) gains(c card.Name) {
	p.hand[c] = struct{}{}
}

// loses removes a surrendered card.
func (p *Player) loses(c card.Name) error {
	if !p.Holds(c) {
		return fmt.Errorf("player %d cannot lose %s: not in hand", p.id, c)
	}
	delete(p.hand, c)
	return nil
}

// Asks starts building a move that requests a card from the respondent.
// Requests across a team are illegal.
func (p *Player) Asks(respondent *Player) (*Request, error) {
	if respondent == nil {
		return nil, fmt.Errorf("%w: nil respondent", ErrUnknownPlayer)
	}
	if p.Team() == respondent.Team() {
		return nil, fmt.Errorf("%w: player %d cannot ask teammate %d", ErrIllegalMove, p.id, respondent.id)
	}
	return &Request{interrogator: p, respondent: respondent}, nil
}

// ValidAsk reports whether requesting the card from the respondent would be
// a reasonable move. With useAllKnowledge set, moves the player's own
// beliefs already prove will fail are excluded; without it they are allowed,
// since a player out of informative moves may still ask to signal holdings
// to teammates.
func (p *Player) ValidAsk(respondent *Player, c card.Name, useAllKnowledge bool) bool {
	if respondent == nil || p.Team() == respondent.Team() {
		return false
	}
	if respondent.HasNoCards() {
		return false
	}
	if useAllKnowledge && p.beliefs.KnowledgeOf(respondent.id, c) == knowledge.DoesNotPossess {
		return false
	}
	return p.canAskFor(c)
}

// canAskFor checks the card-level legality of a request: the player must not
// hold the card, must hold another card of its half-suit, and the half-suit
// must still be live.
func (p *Player) canAskFor(c card.Name) bool {
	if p.Holds(c) {
		return false
	}
	if p.beliefs.Claimed(c.HalfSuit()) {
		return false
	}
	for _, other := range c.HalfSuit().Cards() {
		if other != c && p.Holds(other) {
			return true
		}
	}
	return false
}

// EvaluateClaims returns, for every half-suit whose six cards the player can
// all place within their own team, the full claim assignment. Partial
// placements are omitted.
func (p *Player) EvaluateClaims() map[card.HalfSuit]Claim {
	out := make(map[card.HalfSuit]Claim)
	for _, h := range card.HalfSuits() {
		claim := make(Claim, card.HalfSuitSize)
		for _, c := range h.Cards() {
			for teammate := p.id % 2; teammate < p.nPlayers; teammate += 2 {
				if p.beliefs.KnowledgeOf(teammate, c) == knowledge.DoesPossess {
					claim[c] = teammate
					break
				}
			}
		}
		if len(claim) == card.HalfSuitSize {
			out[h] = claim
		}
	}
	return out
}
