// Package bot drives Literature games automatically: it enumerates legal
// moves, flattens belief states into model inputs, and runs full games or
// model-versus-model matches on top of the core engine.
package bot

import (
	"fmt"

	"github.com/literature-engine/literature-server-go/internal/game"
	"github.com/literature-engine/literature-server-go/internal/game/card"
	"github.com/literature-engine/literature-server-go/internal/game/knowledge"
)

// ValidMoves enumerates every move playerID could legally make. With
// useAllKnowledge set, moves the player's own beliefs prove will fail are
// excluded; when that filter leaves nothing, callers retry without it, since
// a provably failing ask can still signal holdings to teammates.
func ValidMoves(g *game.Game, playerID int, useAllKnowledge bool) ([]game.Move, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return nil, err
	}
	var moves []game.Move
	for id := 0; id < g.NumPlayers(); id++ {
		respondent, err := g.Player(id)
		if err != nil {
			return nil, err
		}
		for _, c := range card.Deck() {
			if !p.ValidAsk(respondent, c, useAllKnowledge) {
				continue
			}
			req, err := p.Asks(respondent)
			if err != nil {
				continue
			}
			m, err := req.ToGive(c)
			if err != nil {
				continue
			}
			moves = append(moves, m)
		}
	}
	return moves, nil
}

// Features flattens the player's full belief state followed by the encoded
// move into one model input.
func Features(p *game.Player, m game.Move) []float64 {
	belief := p.Beliefs().Vector()
	encoded := m.Encode()
	out := make([]float64, 0, len(belief)+len(encoded))
	for _, v := range belief {
		out = append(out, float64(v))
	}
	for _, v := range encoded {
		out = append(out, float64(v))
	}
	return out
}

// FeatureLen returns the length of the vectors Features produces in a game
// of nPlayers.
func FeatureLen(nPlayers int) int {
	return knowledge.VectorLen(nPlayers) + 4
}

// errNoMoves is wrapped into MakeMove's failure when a player on turn has no
// legal ask at all.
var errNoMoves = fmt.Errorf("no legal moves available")
