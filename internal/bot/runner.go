package bot

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/literature-engine/literature-server-go/internal/game"
)

const (
	// MoveLimit aborts games that stopped making progress.
	MoveLimit = 200
	// moveReward scores the immediate outcome of a single ask.
	moveReward = 20
	// gameReward scores every move of a finished game by its winner.
	gameReward = 100
)

// NoExclusion makes MakeClaims act on behalf of every player.
const NoExclusion = -1

// Runner plays one game with model-selected moves and exhaustive claiming.
type Runner struct {
	game   *game.Game
	rng    *rand.Rand
	logger *zap.Logger
}

// NewRunner wraps a game for automated play.
func NewRunner(g *game.Game, rng *rand.Rand, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{game: g, rng: rng, logger: logger}
}

// Game returns the underlying game.
func (r *Runner) Game() *game.Game {
	return r.game
}

// MakeMove commits the highest-scoring legal move for the turn holder,
// adding Gaussian noise to the scores for exploration. It returns the
// feature vector of the chosen move. When every informative move is
// exhausted the knowledge filter is dropped, so signaling asks remain
// possible.
func (r *Runner) MakeMove(model Model) ([]float64, error) {
	playerID := r.game.Turn()
	moves, err := ValidMoves(r.game, playerID, true)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		moves, err = ValidMoves(r.game, playerID, false)
		if err != nil {
			return nil, err
		}
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w for player %d", errNoMoves, playerID)
	}

	p, err := r.game.Player(playerID)
	if err != nil {
		return nil, err
	}
	var best []float64
	var bestMove game.Move
	bestScore := 0.0
	for i, m := range moves {
		features := Features(p, m)
		score := model.Predict(features) + r.rng.NormFloat64()
		if i == 0 || score > bestScore {
			bestScore = score
			bestMove = m
			best = features
		}
	}
	if _, err := r.game.CommitMove(bestMove); err != nil {
		return nil, err
	}
	return best, nil
}

// MakeClaims commits every fully-determined claim on behalf of every player
// except excludePlayer (pass NoExclusion to act for all). Players only claim
// half-suits their beliefs completely place within their own team, so these
// claims always succeed.
func (r *Runner) MakeClaims(excludePlayer int) error {
	for id := 0; id < r.game.NumPlayers(); id++ {
		if id == excludePlayer {
			continue
		}
		p, err := r.game.Player(id)
		if err != nil {
			return err
		}
		for h, claim := range p.EvaluateClaims() {
			if r.game.ClaimStatus(h) != game.TeamNeither {
				continue
			}
			if _, err := r.game.CommitClaim(id, claim); err != nil {
				return fmt.Errorf("claiming %s for player %d: %w", h, id, err)
			}
		}
	}
	return nil
}

// RunFullGame plays the game to completion (or the move limit), training
// the model with a small reward per successful ask and a large end-of-game
// reward for every move the winning team made.
func (r *Runner) RunFullGame(model Model) error {
	// Dealt hands can make claims available before the first move.
	if err := r.MakeClaims(NoExclusion); err != nil {
		return err
	}
	var stored [][]float64
	var teamPerMove []game.Team
	for !r.game.Completed() {
		if len(stored) >= MoveLimit {
			r.logger.Info("terminating stalled game", zap.Int("moves", len(stored)))
			return nil
		}
		teamPerMove = append(teamPerMove, game.TeamOf(r.game.Turn()))
		features, err := r.MakeMove(model)
		if err != nil {
			return err
		}

		reward := float64(moveReward)
		ledger := r.game.Ledger()
		if !ledger[len(ledger)-1].Success {
			reward = -moveReward
		}
		model.PartialFit([][]float64{features}, []float64{reward})

		stored = append(stored, features)
		if err := r.MakeClaims(NoExclusion); err != nil {
			return err
		}
	}

	winner, err := r.game.Winner()
	if err != nil {
		return err
	}
	r.logger.Info("game finished",
		zap.Stringer("winner", winner),
		zap.Int("moves", len(stored)),
	)
	targets := make([]float64, len(stored))
	for i, team := range teamPerMove {
		if team == winner {
			targets[i] = gameReward
		} else {
			targets[i] = -gameReward
		}
	}
	model.PartialFit(stored, targets)
	return nil
}

// Compete plays the game out with one model choosing for each team and
// returns the winner. Games exceeding the move limit are called a tie.
func (r *Runner) Compete(even, odd Model) (game.Team, error) {
	models := map[game.Team]Model{game.TeamEven: even, game.TeamOdd: odd}
	if err := r.MakeClaims(NoExclusion); err != nil {
		return game.TeamNeither, err
	}
	for !r.game.Completed() {
		if len(r.game.Ledger()) >= MoveLimit {
			return game.TeamNeither, nil
		}
		model := models[game.TeamOf(r.game.Turn())]
		if _, err := r.MakeMove(model); err != nil {
			return game.TeamNeither, err
		}
		if err := r.MakeClaims(NoExclusion); err != nil {
			return game.TeamNeither, err
		}
	}
	return r.game.Winner()
}
