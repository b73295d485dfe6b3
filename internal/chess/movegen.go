package chess

var (
	rookDirs   = []Square{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}
	bishopDirs = []Square{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	queenDirs  = append(append([]Square{}, rookDirs...), bishopDirs...)
	knightDirs = []Square{
		{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2},
		{Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
	}
	kingDirs = queenDirs
)

// AllPossibleMoves returns the pseudo-legal moves of the side to move. Moves
// that leave the mover's own king capturable are included.
func (gs *GameState) AllPossibleMoves() []Move {
	moves := make([]Move, 0, 48)
	side := gs.SideToMove()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := gs.board[row][col]
			if p.IsEmpty() || p.Color != side {
				continue
			}
			moves = gs.pieceMoves(Square{Row: row, Col: col}, p, moves)
		}
	}
	return append(moves, gs.castlingMoves()...)
}

func (gs *GameState) pieceMoves(from Square, p Piece, moves []Move) []Move {
	switch p.Type {
	case Pawn:
		return gs.pawnMoves(from, p.Color, moves)
	case Knight:
		return gs.stepMoves(from, p.Color, knightDirs, moves)
	case Bishop:
		return gs.slideMoves(from, p.Color, bishopDirs, moves)
	case Rook:
		return gs.slideMoves(from, p.Color, rookDirs, moves)
	case Queen:
		return gs.slideMoves(from, p.Color, queenDirs, moves)
	case King:
		return gs.stepMoves(from, p.Color, kingDirs, moves)
	}
	return moves
}

func (gs *GameState) pawnMoves(from Square, color Color, moves []Move) []Move {
	dir, startRow := -1, 6
	if color == Black {
		dir, startRow = 1, 1
	}

	one := Square{Row: from.Row + dir, Col: from.Col}
	if one.OnBoard() && gs.board.At(one).IsEmpty() {
		moves = append(moves, NewMove(from, one, &gs.board))
		two := Square{Row: from.Row + 2*dir, Col: from.Col}
		if from.Row == startRow && gs.board.At(two).IsEmpty() {
			moves = append(moves, NewMove(from, two, &gs.board))
		}
	}

	for _, dc := range []int{-1, 1} {
		to := Square{Row: from.Row + dir, Col: from.Col + dc}
		if !to.OnBoard() {
			continue
		}
		target := gs.board.At(to)
		switch {
		case !target.IsEmpty() && target.Color != color:
			moves = append(moves, NewMove(from, to, &gs.board))
		case to == gs.enPassant:
			moves = append(moves, NewEnPassantMove(from, to, &gs.board))
		}
	}
	return moves
}

// stepMoves handles the fixed-offset pieces, knight and king.
func (gs *GameState) stepMoves(from Square, color Color, dirs []Square, moves []Move) []Move {
	for _, d := range dirs {
		to := from.offset(d)
		if !to.OnBoard() {
			continue
		}
		if target := gs.board.At(to); target.IsEmpty() || target.Color != color {
			moves = append(moves, NewMove(from, to, &gs.board))
		}
	}
	return moves
}

// slideMoves casts rays until the first occupied square, which is included
// only when it holds an enemy piece.
func (gs *GameState) slideMoves(from Square, color Color, dirs []Square, moves []Move) []Move {
	for _, d := range dirs {
		for to := from.offset(d); to.OnBoard(); to = to.offset(d) {
			target := gs.board.At(to)
			if target.IsEmpty() {
				moves = append(moves, NewMove(from, to, &gs.board))
				continue
			}
			if target.Color != color {
				moves = append(moves, NewMove(from, to, &gs.board))
			}
			break
		}
	}
	return moves
}
