package chess

import (
	"encoding/json"
	"fmt"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

// Piece is a coloured piece value. The zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var Empty = Piece{}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

func (p Piece) Is(color Color, kind PieceType) bool {
	return p.Color == color && p.Type == kind
}

// Code returns the two character form used in logs and tests, e.g. "wK", "bP", "--".
func (p Piece) Code() string {
	if p.IsEmpty() {
		return "--"
	}
	c := byte('w')
	if p.Color == Black {
		c = 'b'
	}
	return string([]byte{c, p.Type.letter()})
}

func (p Piece) String() string {
	return p.Code()
}

// MarshalJSON renders empty squares as null so clients can test occupancy directly.
func (p Piece) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte("null"), nil
	}
	type piece Piece
	return json.Marshal(piece(p))
}

// Square is a (row, column) board coordinate. Row 0 is rank 8, column 0 is file a.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoSquare marks an absent optional square, e.g. no en passant target.
var NoSquare = Square{Row: -1, Col: -1}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) offset(d Square) Square {
	return Square{Row: s.Row + d.Row, Col: s.Col + d.Col}
}

func (s Square) Notation() string {
	if !s.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

func (s Square) String() string {
	return s.Notation()
}

// ParseSquare converts algebraic notation such as "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("%q: %w", s, ErrInvalidSquare)
	}
	return Square{Row: 8 - int(s[1]-'0'), Col: int(s[0] - 'a')}, nil
}

// Board is the 8x8 grid indexed [row][col].
type Board [8][8]Piece

func (b *Board) At(s Square) Piece {
	return b[s.Row][s.Col]
}

func (b *Board) set(s Square, p Piece) {
	b[s.Row][s.Col] = p
}

func newInitialBoard() Board {
	var b Board
	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range backRank {
		b[0][col] = Piece{Type: kind, Color: Black}
		b[7][col] = Piece{Type: kind, Color: White}
		b[1][col] = Piece{Type: Pawn, Color: Black}
		b[6][col] = Piece{Type: Pawn, Color: White}
	}
	return b
}
