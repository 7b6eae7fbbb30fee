package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/literature-engine/literature-server-go/internal/game"
)

// GameRecord is the persisted summary of one finished game.
type GameRecord struct {
	ID         uuid.UUID
	NumPlayers int
	Winner     string
	NumMoves   int
	EvenScore  int
	OddScore   int
	FinishedAt time.Time
}

// GameRepository stores finished games.
type GameRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewGameRepository creates a repository on top of the connection pool.
func NewGameRepository(db *DB, logger *zap.Logger) *GameRepository {
	return &GameRepository{db: db, logger: logger}
}

// EnsureSchema creates the games table when it does not exist yet.
func (r *GameRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS games (
	id          UUID PRIMARY KEY,
	num_players INTEGER NOT NULL,
	winner      TEXT NOT NULL,
	num_moves   INTEGER NOT NULL,
	even_score  INTEGER NOT NULL,
	odd_score   INTEGER NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`
	if _, err := r.db.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating games table: %w", err)
	}
	return nil
}

// Save writes the record of a finished game.
func (r *GameRepository) Save(ctx context.Context, rec GameRecord) error {
	const stmt = `
INSERT INTO games (id, num_players, winner, num_moves, even_score, odd_score, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING`
	_, err := r.db.pool.Exec(ctx, stmt,
		rec.ID, rec.NumPlayers, rec.Winner, rec.NumMoves, rec.EvenScore, rec.OddScore, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("inserting game record: %w", err)
	}
	r.logger.Info("game record saved",
		zap.String("game_id", rec.ID.String()),
		zap.String("winner", rec.Winner),
		zap.Int("moves", rec.NumMoves),
	)
	return nil
}

// RecordOf summarizes a completed game under the given registry id. It
// fails when the game is still in progress.
func RecordOf(id string, g *game.Game) (GameRecord, error) {
	gameID, err := uuid.Parse(id)
	if err != nil {
		return GameRecord{}, fmt.Errorf("parsing game id %q: %w", id, err)
	}
	winner, err := g.Winner()
	if err != nil {
		return GameRecord{}, err
	}
	scores := g.Scores()
	return GameRecord{
		ID:         gameID,
		NumPlayers: g.NumPlayers(),
		Winner:     winner.String(),
		NumMoves:   len(g.Ledger()),
		EvenScore:  scores[game.TeamEven],
		OddScore:   scores[game.TeamOdd],
		FinishedAt: time.Now().UTC(),
	}, nil
}
