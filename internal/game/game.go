// Package game implements the Literature card game: hands, validated moves
// and claims, turn sequencing, and the broadcast of every public event to
// each player's belief store.
package game

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/literature-engine/literature-server-go/internal/game/card"
)

// DealFunc produces one hand per player. Injected so tests can fix hands.
type DealFunc func(nPlayers int) ([][]card.Name, error)

// PickFunc returns an index in [0, n). It decides the starting player and
// breaks ties when the turn must be reassigned; injected so tests are
// deterministic.
type PickFunc func(n int) int

// RandomDeal returns a DealFunc that shuffles with the given source.
func RandomDeal(rng *rand.Rand) DealFunc {
	return func(nPlayers int) ([][]card.Name, error) {
		return card.Deal(nPlayers, rng)
	}
}

// RandomPicker returns a PickFunc backed by the given source.
func RandomPicker(rng *rand.Rand) PickFunc {
	return rng.IntN
}

// Game orchestrates one match of Literature. It owns the ground-truth
// hands through its players, sequences turns, arbitrates claims, and
// delivers every committed move and claim to all belief stores. It never
// mutates a belief store directly.
//
// A Game is not safe for concurrent use; callers serialize access per game.
type Game struct {
	players []*Player
	turn    int
	// claims[h.Index()] is the resolution status of each half-suit.
	claims []Team
	// actual holds the revealed true assignment of every half-suit a claim
	// has been committed for, keyed by half-suit index.
	actual map[int]Claim
	ledger []MoveRecord
	picker PickFunc
	logger *zap.Logger
}

// New deals hands with deal, seats nPlayers and picks a starting player.
// Literature is played by 4 to 8 players whose count divides the 48-card
// deck.
func New(nPlayers int, deal DealFunc, picker PickFunc, logger *zap.Logger) (*Game, error) {
	if nPlayers < 4 || nPlayers > 8 || card.DeckSize%nPlayers != 0 {
		return nil, fmt.Errorf("invalid player count %d: must be 4, 6 or 8", nPlayers)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hands, err := deal(nPlayers)
	if err != nil {
		return nil, fmt.Errorf("dealing hands: %w", err)
	}
	if len(hands) != nPlayers {
		return nil, fmt.Errorf("deal produced %d hands for %d players", len(hands), nPlayers)
	}

	g := &Game{
		players: make([]*Player, nPlayers),
		claims:  make([]Team, card.NumHalfSuits),
		actual:  make(map[int]Claim),
		picker:  picker,
		logger:  logger,
	}
	for i := range g.claims {
		g.claims[i] = TeamNeither
	}
	for i := 0; i < nPlayers; i++ {
		g.players[i], err = newPlayer(i, nPlayers, hands[i])
		if err != nil {
			return nil, fmt.Errorf("seating player %d: %w", i, err)
		}
	}
	g.turn = picker(nPlayers)
	logger.Info("game started",
		zap.Int("players", nPlayers),
		zap.Int("starting_player", g.turn),
	)
	return g, nil
}

// NumPlayers returns the number of seats.
func (g *Game) NumPlayers() int {
	return len(g.players)
}

// Player returns the player with the given id.
func (g *Game) Player(id int) (*Player, error) {
	if id < 0 || id >= len(g.players) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownPlayer, id)
	}
	return g.players[id], nil
}

// Turn returns the id of the player whose turn it is.
func (g *Game) Turn() int {
	return g.turn
}

// Ledger returns a copy of the committed moves and their outcomes.
func (g *Game) Ledger() []MoveRecord {
	out := make([]MoveRecord, len(g.ledger))
	copy(out, g.ledger)
	return out
}

// ClaimStatus returns the resolution status of a half-suit.
func (g *Game) ClaimStatus(h card.HalfSuit) Team {
	return g.claims[h.Index()]
}

// CommitMove resolves a move against the ground-truth hands. Success is
// decided purely by whether the respondent actually holds the card. On
// success the card changes hands and the interrogator keeps the turn; on
// failure the turn passes to the respondent. Either way every player's
// belief store observes the outcome.
func (g *Game) CommitMove(m Move) (bool, error) {
	if m.Interrogator < 0 || m.Interrogator >= len(g.players) ||
		m.Respondent < 0 || m.Respondent >= len(g.players) {
		return false, fmt.Errorf("%w: move %s", ErrUnknownPlayer, m)
	}
	if m.Interrogator != g.turn {
		return false, fmt.Errorf("%w: it is player %d's turn, not player %d's",
			ErrOutOfTurn, g.turn, m.Interrogator)
	}

	interrogator := g.players[m.Interrogator]
	respondent := g.players[m.Respondent]
	success := respondent.Holds(m.Card)
	g.ledger = append(g.ledger, MoveRecord{Move: m, Success: success})
	g.logger.Info("move committed",
		zap.Int("interrogator", m.Interrogator),
		zap.Int("respondent", m.Respondent),
		zap.String("card", m.Card.String()),
		zap.Bool("success", success),
	)

	if success {
		if err := respondent.loses(m.Card); err != nil {
			return false, err
		}
		interrogator.gains(m.Card)
	} else {
		g.turn = m.Respondent
		g.reassignTurnIfOut()
	}

	for _, p := range g.players {
		if err := p.beliefs.ObserveMove(m.Interrogator, m.Respondent, m.Card, success); err != nil {
			return success, fmt.Errorf("propagating move to player %d: %w", p.id, err)
		}
	}
	return success, nil
}

// CommitClaim validates the claim, reveals the half-suit's true holders to
// every belief store unconditionally, then arbitrates: an exact match wins
// the half-suit for the claimant's team; a miss awards it to the opponents
// when any true holder sits on their side, and discards it permanently when
// the claimant's own team held everything but was named wrong.
func (g *Game) CommitClaim(claimant int, claim Claim) (bool, error) {
	if claimant < 0 || claimant >= len(g.players) {
		return false, fmt.Errorf("%w: id %d", ErrUnknownPlayer, claimant)
	}
	if err := claim.validate(claimant); err != nil {
		return false, err
	}
	h := claim.HalfSuit()
	if _, resolved := g.actual[h.Index()]; resolved {
		return false, fmt.Errorf("%w: %s has already been claimed", ErrInvalidClaim, h)
	}

	// A committed claim forces everyone to show their cards of the
	// half-suit, correct or not.
	actual := g.trueHolders(h)
	g.actual[h.Index()] = actual
	holders := map[card.Name]int(actual)
	for _, p := range g.players {
		if err := p.beliefs.ObserveClaim(holders); err != nil {
			return false, fmt.Errorf("propagating claim to player %d: %w", p.id, err)
		}
	}

	team := TeamOf(claimant)
	matched := 0
	for c, assigned := range claim {
		if g.players[assigned].Holds(c) {
			matched++
		}
	}
	if matched != card.HalfSuitSize {
		crossTeam := false
		for _, holder := range actual {
			if TeamOf(holder) != team {
				crossTeam = true
				break
			}
		}
		if crossTeam {
			g.claims[h.Index()] = team.Opponent()
			g.logger.Info("claim failed, awarded to opponents",
				zap.String("half_suit", h.String()),
				zap.Stringer("team", team.Opponent()),
			)
		} else {
			g.claims[h.Index()] = TeamDiscard
			g.logger.Info("claim failed, half-suit discarded",
				zap.String("half_suit", h.String()),
			)
		}
		return false, nil
	}

	g.claims[h.Index()] = team
	g.logger.Info("claim succeeded",
		zap.String("half_suit", h.String()),
		zap.Stringer("team", team),
	)

	// The turn moves to the claimant, or a teammate if the claimant is out
	// of live cards.
	g.turn = claimant
	g.reassignTurnIfOut()
	return true, nil
}

// trueHolders reads the actual assignment of a half-suit from the hands.
func (g *Game) trueHolders(h card.HalfSuit) Claim {
	holders := make(Claim, card.HalfSuitSize)
	for _, c := range h.Cards() {
		for _, p := range g.players {
			if p.Holds(c) {
				holders[c] = p.id
				break
			}
		}
	}
	return holders
}

// reassignTurnIfOut passes the turn to a teammate with live cards when the
// current holder has none. If the whole team is out the turn stays put and
// the completion check takes over.
func (g *Game) reassignTurnIfOut() {
	holder := g.players[g.turn]
	if !holder.HasNoCards() {
		return
	}
	g.logger.Info("player out of cards", zap.Int("player", g.turn))
	var eligible []int
	for _, p := range g.players {
		if p.Team() == holder.Team() && !p.HasNoCards() {
			eligible = append(eligible, p.id)
		}
	}
	if len(eligible) > 0 {
		g.turn = eligible[g.picker(len(eligible))]
	}
}

// SwitchTurn hands the turn to the opposing team, picking among its players
// with live cards. It reports whether any such player existed.
func (g *Game) SwitchTurn() bool {
	other := TeamOf(g.turn).Opponent()
	var eligible []int
	for _, p := range g.players {
		if p.Team() == other && !p.HasNoCards() {
			eligible = append(eligible, p.id)
		}
	}
	if len(eligible) == 0 {
		return false
	}
	g.turn = eligible[g.picker(len(eligible))]
	return true
}

// Completed reports whether the game is over: every half-suit resolved, or
// one whole team out of live cards.
func (g *Game) Completed() bool {
	allResolved := true
	for _, status := range g.claims {
		if status == TeamNeither {
			allResolved = false
			break
		}
	}
	if allResolved {
		return true
	}
	for _, team := range []Team{TeamEven, TeamOdd} {
		out := true
		for _, p := range g.players {
			if p.Team() == team && !p.HasNoCards() {
				out = false
				break
			}
		}
		if out {
			return true
		}
	}
	return false
}

// Winner returns the team holding strictly more claimed half-suits. A tied
// count yields TeamNeither. Calling Winner before completion is an error.
func (g *Game) Winner() (Team, error) {
	if !g.Completed() {
		return TeamNeither, fmt.Errorf("the game is not completed")
	}
	even, odd := 0, 0
	for _, status := range g.claims {
		switch status {
		case TeamEven:
			even++
		case TeamOdd:
			odd++
		}
	}
	switch {
	case even > odd:
		return TeamEven, nil
	case odd > even:
		return TeamOdd, nil
	default:
		return TeamNeither, nil
	}
}

// Scores returns the number of half-suits each outcome currently holds.
func (g *Game) Scores() map[Team]int {
	scores := make(map[Team]int, 4)
	for _, status := range g.claims {
		scores[status]++
	}
	return scores
}
