package chess

// SetOpponentReplies stores the opponent's legal replies from the previous
// turn. Castling generation treats every landing square in this list as
// attacked and any king capture in it as check.
func (gs *GameState) SetOpponentReplies(moves []Move) {
	gs.opponentReplies = moves
}

func (gs *GameState) OpponentReplies() []Move {
	return gs.opponentReplies
}

// RefreshOpponentReplies recomputes the opponent reply list for the side to
// move. It must run once per turn before ValidMoves.
//
// The replies are computed with the en passant target cleared: the target
// belongs to the side to move, and leaving it set would let the opponent
// "capture" en passant on its own skipped square. Side, en passant target and
// terminal flags are restored afterwards.
func (gs *GameState) RefreshOpponentReplies() {
	queenSide, kingSide := gs.rights.sides(gs.SideToMove())
	if !queenSide && !kingSide {
		return
	}
	enPassant := gs.enPassant
	checkmate, stalemate := gs.checkmate, gs.stalemate

	gs.enPassant = NoSquare
	gs.whiteToMove = !gs.whiteToMove
	replies := gs.ValidMoves()
	gs.whiteToMove = !gs.whiteToMove

	gs.enPassant = enPassant
	gs.checkmate, gs.stalemate = checkmate, stalemate
	gs.opponentReplies = replies
}

// castlingMoves produces at most the two canonical castling moves of the side
// to move: king two squares towards the rook.
func (gs *GameState) castlingMoves() []Move {
	side := gs.SideToMove()
	queenSide, kingSide := gs.rights.sides(side)
	if !queenSide && !kingSide {
		return nil
	}
	row := homeRow(side)

	for _, reply := range gs.opponentReplies {
		if reply.PieceCaptured.Type == King {
			return nil
		}
		if reply.End.Row != row {
			continue
		}
		switch reply.End.Col {
		case 2, 3:
			queenSide = false
		case 5, 6:
			kingSide = false
		}
	}

	var moves []Move
	kingFrom := Square{Row: row, Col: 4}
	if queenSide && gs.rowEmpty(row, 1, 3) {
		moves = append(moves, NewCastlingMove(kingFrom, Square{Row: row, Col: 2}, &gs.board))
	}
	if kingSide && gs.rowEmpty(row, 5, 6) {
		moves = append(moves, NewCastlingMove(kingFrom, Square{Row: row, Col: 6}, &gs.board))
	}
	return moves
}

func (gs *GameState) rowEmpty(row, fromCol, toCol int) bool {
	for col := fromCol; col <= toCol; col++ {
		if !gs.board[row][col].IsEmpty() {
			return false
		}
	}
	return true
}
