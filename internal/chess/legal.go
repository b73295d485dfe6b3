package chess

// ValidMoves returns the legal moves of the side to move and updates the
// checkmate and stalemate flags.
//
// Each pseudo-legal move is played, the opponent's pseudo-legal replies are
// generated, and the move is kept only if no reply captures the king. The move
// is always undone. Cost is quadratic in the branching factor.
func (gs *GameState) ValidMoves() []Move {
	enPassant := gs.enPassant
	rights := gs.rights

	candidates := gs.AllPossibleMoves()
	valid := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		gs.MakeMove(m)
		if !IsCheck(gs.AllPossibleMoves()) {
			valid = append(valid, m)
		}
		gs.UndoMove()
	}

	if len(valid) > 0 {
		gs.checkmate = false
		gs.stalemate = false
	} else {
		gs.checkmate = gs.InCheck()
		gs.stalemate = !gs.checkmate
	}

	gs.enPassant = enPassant
	gs.rights = rights
	return valid
}

// InCheck reports whether any opponent pseudo-legal move would capture the
// king of the side to move. The position is left untouched.
func (gs *GameState) InCheck() bool {
	enPassant := gs.enPassant
	gs.whiteToMove = !gs.whiteToMove
	check := IsCheck(gs.AllPossibleMoves())
	gs.whiteToMove = !gs.whiteToMove
	gs.enPassant = enPassant
	return check
}

// IsCheck reports whether any move in moves captures a king.
func IsCheck(moves []Move) bool {
	for _, m := range moves {
		if m.PieceCaptured.Type == King {
			return true
		}
	}
	return false
}
