package model

import "errors"

// Sentinel errors for session-level failures. Rule violations inside the
// chess core are never errors; a move that does not match the legal list is
// reported as ErrIllegalMove at this layer only.
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameExists     = errors.New("game already exists")
	ErrGameFull       = errors.New("game is full")
	ErrNotInGame      = errors.New("player not in game")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrIllegalMove    = errors.New("illegal move")
	ErrNothingToUndo  = errors.New("no move to undo")
	ErrGameOver       = errors.New("game is over")
	ErrAlreadyQueued  = errors.New("player already in queue")
	ErrInvalidOptions = errors.New("invalid game options")
)
