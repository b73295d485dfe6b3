package chess

import "errors"

var (
	// ErrMoveLogEmpty is the panic value of UndoMove on a game with no moves.
	ErrMoveLogEmpty = errors.New("undo on empty move log")

	// ErrInvalidSquare indicates a malformed algebraic square.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")
)
