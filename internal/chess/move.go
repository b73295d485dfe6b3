package chess

// Move describes a single ply. It is built against one board snapshot and
// must not be replayed against a different position.
type Move struct {
	Start         Square
	End           Square
	PieceMoved    Piece
	PieceCaptured Piece
	IsEnPassant   bool
	IsCastling    bool
}

// NewMove reads the moved and captured pieces from board at construction time.
func NewMove(start, end Square, board *Board) Move {
	return Move{
		Start:         start,
		End:           end,
		PieceMoved:    board.At(start),
		PieceCaptured: board.At(end),
	}
}

// NewEnPassantMove builds an en passant capture. The landing square is empty,
// so the captured pawn is synthesised from the mover's colour.
func NewEnPassantMove(start, end Square, board *Board) Move {
	m := NewMove(start, end, board)
	m.IsEnPassant = true
	m.PieceCaptured = Piece{Type: Pawn, Color: m.PieceMoved.Color.Opposite()}
	return m
}

func NewCastlingMove(start, end Square, board *Board) Move {
	m := NewMove(start, end, board)
	m.IsCastling = true
	return m
}

// Notation is the start square followed by the end square, e.g. "e2e4".
func (m Move) Notation() string {
	return m.Start.Notation() + m.End.Notation()
}

func (m Move) String() string {
	return m.Notation()
}

// Equal compares notation only. Flags are ignored, so a pending move from an
// input device equals its en passant or castling counterpart.
func (m Move) Equal(other Move) bool {
	return m.Notation() == other.Notation()
}

// WithFlagsFrom copies the en passant and castling flags of an authoritative
// legal move onto a pending move before it is played.
func (m Move) WithFlagsFrom(legal Move) Move {
	m.IsEnPassant = legal.IsEnPassant
	m.IsCastling = legal.IsCastling
	if m.IsEnPassant {
		m.PieceCaptured = legal.PieceCaptured
	}
	return m
}

func (m Move) IsPawnPromotion() bool {
	if m.PieceMoved.Type != Pawn {
		return false
	}
	return (m.PieceMoved.Color == White && m.End.Row == 0) ||
		(m.PieceMoved.Color == Black && m.End.Row == 7)
}

func (m Move) IsCapture() bool {
	return !m.PieceCaptured.IsEmpty()
}
