package game

import "errors"

// Sentinel errors for the protocol failure taxonomy. All are surfaced to the
// caller before any game or belief state is mutated; callers distinguish
// them with errors.Is.
var (
	// ErrIllegalMove covers structurally invalid requests: asking for a
	// card the interrogator holds, asking without a qualifying card in the
	// half-suit, or asking a teammate.
	ErrIllegalMove = errors.New("illegal move")

	// ErrOutOfTurn is returned when the mover is not the current turn
	// holder.
	ErrOutOfTurn = errors.New("not this player's turn")

	// ErrInvalidClaim covers malformed claims: wrong cardinality, holders
	// spanning teams, cards spanning half-suits, or a half-suit that was
	// already resolved.
	ErrInvalidClaim = errors.New("invalid claim")

	// ErrUnknownPlayer is returned when a referenced player id is not part
	// of the game.
	ErrUnknownPlayer = errors.New("unknown player")
)
