package server

// Message is the envelope for every WebSocket frame in both directions.
type Message struct {
	Type     string `json:"type"`
	GameID   string `json:"game_id,omitempty"`
	PlayerID int    `json:"player_id,omitempty"`
	Players  int    `json:"players,omitempty"`
	Command  string `json:"command,omitempty"`
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Client to server message types.
const (
	msgCreate     = "create"
	msgJoin       = "join"
	msgCommand    = "command"
	msgState      = "state"
	msgLegalMoves = "legal_moves"
)

// Server to client message types.
const (
	msgGameCreated = "game_created"
	msgGameState   = "game_state"
	msgMoves       = "moves"
	msgError       = "error"
)

// PlayerView is the public summary of one player.
type PlayerView struct {
	ID        int    `json:"id"`
	Team      string `json:"team"`
	HandCount int    `json:"hand_count"`
}

// ClaimView reports the resolution of one half suit.
type ClaimView struct {
	HalfSuit string `json:"half_suit"`
	Status   string `json:"status"`
}

// MoveView is one entry of the game ledger.
type MoveView struct {
	Interrogator int    `json:"interrogator"`
	Respondent   int    `json:"respondent"`
	Card         string `json:"card"`
	Success      bool   `json:"success"`
}

// StateView is the state of a game as seen by one player. Hand is only
// populated for the requesting player.
type StateView struct {
	GameID    string         `json:"game_id"`
	You       int            `json:"you"`
	Turn      int            `json:"turn"`
	Hand      []string       `json:"hand"`
	Players   []PlayerView   `json:"players"`
	Claims    []ClaimView    `json:"claims"`
	Ledger    []MoveView     `json:"ledger"`
	Completed bool           `json:"completed"`
	Winner    string         `json:"winner,omitempty"`
	Scores    map[string]int `json:"scores"`
}

// LegalMoveView is one ask a player may legally make.
type LegalMoveView struct {
	Respondent int    `json:"respondent"`
	Card       string `json:"card"`
}
