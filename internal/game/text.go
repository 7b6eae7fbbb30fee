package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/literature-engine/literature-server-go/internal/game/card"
)

// CommitText parses and commits a command in the text protocol on behalf of
// the current turn holder. Two forms exist:
//
//	"<player_id> <rank><suit>"  — ask player_id for a card, e.g. "1 5C"
//	"CLAIM <player_id> <rank><suit> ..." — six (player, card) pairs
//
// It returns whether the move or claim succeeded.
func (g *Game) CommitText(command string) (bool, error) {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(command)))
	if len(fields) == 0 {
		return false, fmt.Errorf("empty command")
	}
	if fields[0] == "CLAIM" {
		return g.textClaim(fields[1:])
	}
	return g.textMove(fields)
}

func (g *Game) textMove(fields []string) (bool, error) {
	if len(fields) != 2 {
		return false, fmt.Errorf("a move is \"<player_id> <card>\", got %d fields", len(fields))
	}
	respondentID, err := strconv.Atoi(fields[0])
	if err != nil {
		return false, fmt.Errorf("invalid player id %q: %w", fields[0], err)
	}
	c, err := card.Parse(fields[1])
	if err != nil {
		return false, err
	}

	interrogator := g.players[g.turn]
	respondent, err := g.Player(respondentID)
	if err != nil {
		return false, err
	}
	req, err := interrogator.Asks(respondent)
	if err != nil {
		return false, err
	}
	move, err := req.ToGive(c)
	if err != nil {
		return false, err
	}
	return g.CommitMove(move)
}

func (g *Game) textClaim(fields []string) (bool, error) {
	if len(fields)%2 != 0 {
		return false, fmt.Errorf("%w: players and cards must come in pairs", ErrInvalidClaim)
	}
	claim := make(Claim, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		holder, err := strconv.Atoi(fields[i])
		if err != nil {
			return false, fmt.Errorf("invalid player id %q: %w", fields[i], err)
		}
		if holder < 0 || holder >= len(g.players) {
			return false, fmt.Errorf("%w: id %d", ErrUnknownPlayer, holder)
		}
		c, err := card.Parse(fields[i+1])
		if err != nil {
			return false, err
		}
		claim[c] = holder
	}
	return g.CommitClaim(g.turn, claim)
}
