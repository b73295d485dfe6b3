package chess

// CastlingRights holds the four independent castling permissions.
type CastlingRights struct {
	WhiteQueenSide bool `json:"whiteQueenSide"`
	WhiteKingSide  bool `json:"whiteKingSide"`
	BlackQueenSide bool `json:"blackQueenSide"`
	BlackKingSide  bool `json:"blackKingSide"`
}

func (r CastlingRights) any() bool {
	return r.WhiteQueenSide || r.WhiteKingSide || r.BlackQueenSide || r.BlackKingSide
}

func (r CastlingRights) sides(color Color) (queenSide, kingSide bool) {
	if color == White {
		return r.WhiteQueenSide, r.WhiteKingSide
	}
	return r.BlackQueenSide, r.BlackKingSide
}

func allCastlingRights() CastlingRights {
	return CastlingRights{WhiteQueenSide: true, WhiteKingSide: true, BlackQueenSide: true, BlackKingSide: true}
}

// undoRecord is pushed once per ply. It carries everything UndoMove needs
// that cannot be recovered from the board, so the move, rights and en
// passant histories can never drift apart.
type undoRecord struct {
	move      Move
	rights    CastlingRights
	enPassant Square
}

// GameState is the authoritative position together with its history.
type GameState struct {
	board       Board
	whiteToMove bool
	history     []undoRecord
	rights      CastlingRights
	enPassant   Square
	checkmate   bool
	stalemate   bool

	// opponentReplies is the opponent's legal move list from the previous
	// turn. It is read only by castling generation.
	opponentReplies []Move
}

func NewGameState() *GameState {
	return &GameState{
		board:       newInitialBoard(),
		whiteToMove: true,
		rights:      allCastlingRights(),
		enPassant:   NoSquare,
	}
}

// Clone returns an independent copy. Parallel legality workers must each use
// their own clone since make/undo mutate shared state.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.history = append([]undoRecord(nil), gs.history...)
	c.opponentReplies = append([]Move(nil), gs.opponentReplies...)
	return &c
}

func (gs *GameState) Board() Board {
	return gs.board
}

func (gs *GameState) PieceAt(s Square) Piece {
	return gs.board.At(s)
}

func (gs *GameState) WhiteToMove() bool {
	return gs.whiteToMove
}

func (gs *GameState) SideToMove() Color {
	if gs.whiteToMove {
		return White
	}
	return Black
}

func (gs *GameState) CastlingRights() CastlingRights {
	return gs.rights
}

// EnPassantTarget returns the square skipped by the last double pawn step, or NoSquare.
func (gs *GameState) EnPassantTarget() Square {
	return gs.enPassant
}

func (gs *GameState) Checkmate() bool {
	return gs.checkmate
}

func (gs *GameState) Stalemate() bool {
	return gs.stalemate
}

func (gs *GameState) CanUndo() bool {
	return len(gs.history) > 0
}

// Moves returns the move log, oldest first.
func (gs *GameState) Moves() []Move {
	moves := make([]Move, len(gs.history))
	for i, rec := range gs.history {
		moves[i] = rec.move
	}
	return moves
}

// CastlingRightsLog returns one rights snapshot per ply, including the initial state.
func (gs *GameState) CastlingRightsLog() []CastlingRights {
	log := make([]CastlingRights, 0, len(gs.history)+1)
	for _, rec := range gs.history {
		log = append(log, rec.rights)
	}
	return append(log, gs.rights)
}

// EnPassantLog parallels CastlingRightsLog.
func (gs *GameState) EnPassantLog() []Square {
	log := make([]Square, 0, len(gs.history)+1)
	for _, rec := range gs.history {
		log = append(log, rec.enPassant)
	}
	return append(log, gs.enPassant)
}

// MakeMove applies a move already vetted by ValidMoves. No legality is checked.
func (gs *GameState) MakeMove(m Move) {
	gs.history = append(gs.history, undoRecord{move: m, rights: gs.rights, enPassant: gs.enPassant})

	gs.board.set(m.Start, Empty)
	switch {
	case m.IsPawnPromotion():
		gs.board.set(m.End, Piece{Type: Queen, Color: m.PieceMoved.Color})
	case m.IsEnPassant:
		gs.board.set(m.End, m.PieceMoved)
		gs.board.set(Square{Row: m.Start.Row, Col: m.End.Col}, Empty)
	case m.IsCastling:
		gs.board.set(m.End, m.PieceMoved)
		rookFrom, rookTo := castlingRookSquares(m)
		gs.board.set(rookTo, gs.board.At(rookFrom))
		gs.board.set(rookFrom, Empty)
	default:
		gs.board.set(m.End, m.PieceMoved)
	}

	if m.PieceMoved.Type == Pawn && abs(m.Start.Row-m.End.Row) == 2 {
		gs.enPassant = Square{Row: (m.Start.Row + m.End.Row) / 2, Col: m.Start.Col}
	} else {
		gs.enPassant = NoSquare
	}

	gs.updateCastlingRights(m)
	gs.whiteToMove = !gs.whiteToMove
}

// UndoMove reverts the last move exactly. It panics with ErrMoveLogEmpty when
// there is nothing to undo; callers check CanUndo first.
func (gs *GameState) UndoMove() {
	if len(gs.history) == 0 {
		panic(ErrMoveLogEmpty)
	}
	rec := gs.history[len(gs.history)-1]
	gs.history = gs.history[:len(gs.history)-1]
	m := rec.move

	gs.board.set(m.Start, m.PieceMoved)
	switch {
	case m.IsEnPassant:
		gs.board.set(m.End, Empty)
		gs.board.set(Square{Row: m.Start.Row, Col: m.End.Col}, m.PieceCaptured)
	case m.IsCastling:
		gs.board.set(m.End, Empty)
		rookFrom, rookTo := castlingRookSquares(m)
		gs.board.set(rookFrom, gs.board.At(rookTo))
		gs.board.set(rookTo, Empty)
	default:
		gs.board.set(m.End, m.PieceCaptured)
	}

	gs.whiteToMove = !gs.whiteToMove
	gs.rights = rec.rights
	gs.enPassant = rec.enPassant
	gs.checkmate = false
	gs.stalemate = false
}

// castlingRookSquares returns the rook's home and destination for a castling move.
func castlingRookSquares(m Move) (from, to Square) {
	row := m.End.Row
	if m.End.Col == 2 {
		return Square{Row: row, Col: 0}, Square{Row: row, Col: 3}
	}
	return Square{Row: row, Col: 7}, Square{Row: row, Col: 5}
}

func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// updateCastlingRights clears rights lost by m. It never sets a right.
func (gs *GameState) updateCastlingRights(m Move) {
	if !gs.rights.any() {
		return
	}
	mover := m.PieceMoved.Color
	queenRook, kingRook := rookHomes(mover)
	switch {
	case m.PieceMoved.Type == King:
		gs.clearRights(mover, true, true)
	case m.PieceMoved.Type == Rook && m.Start == queenRook:
		gs.clearRights(mover, true, false)
	case m.PieceMoved.Type == Rook && m.Start == kingRook:
		gs.clearRights(mover, false, true)
	}

	enemy := mover.Opposite()
	enemyQueenRook, enemyKingRook := rookHomes(enemy)
	if m.PieceCaptured.Type == Rook {
		switch m.End {
		case enemyQueenRook:
			gs.clearRights(enemy, true, false)
		case enemyKingRook:
			gs.clearRights(enemy, false, true)
		}
	}
}

func rookHomes(c Color) (queenSide, kingSide Square) {
	row := homeRow(c)
	return Square{Row: row, Col: 0}, Square{Row: row, Col: 7}
}

func (gs *GameState) clearRights(c Color, queenSide, kingSide bool) {
	if c == White {
		gs.rights.WhiteQueenSide = gs.rights.WhiteQueenSide && !queenSide
		gs.rights.WhiteKingSide = gs.rights.WhiteKingSide && !kingSide
		return
	}
	gs.rights.BlackQueenSide = gs.rights.BlackQueenSide && !queenSide
	gs.rights.BlackKingSide = gs.rights.BlackKingSide && !kingSide
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
