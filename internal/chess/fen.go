package chess

import (
	"fmt"
	"strings"
	"unicode"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieceTypes = map[rune]PieceType{
	'k': King,
	'q': Queen,
	'r': Rook,
	'b': Bishop,
	'n': Knight,
	'p': Pawn,
}

// NewGameStateFromFEN builds a game state from the placement, side, castling
// and en passant fields. Move clocks are accepted and ignored.
func NewGameStateFromFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("need at least placement and side fields: %w", ErrInvalidFEN)
	}

	gs := &GameState{enPassant: NoSquare}
	if err := parsePlacement(&gs.board, parts[0]); err != nil {
		return nil, err
	}
	if err := checkKings(&gs.board); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		gs.whiteToMove = true
	case "b":
		gs.whiteToMove = false
	default:
		return nil, fmt.Errorf("invalid side to move %q: %w", parts[1], ErrInvalidFEN)
	}

	if len(parts) > 2 {
		rights, err := parseCastling(parts[2])
		if err != nil {
			return nil, err
		}
		gs.rights = consistentRights(&gs.board, rights)
	}

	if len(parts) > 3 && parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("en passant field: %w", ErrInvalidFEN)
		}
		if !gs.enPassantPossible(sq) {
			return nil, fmt.Errorf("en passant square %s does not follow a double step: %w", sq.Notation(), ErrInvalidFEN)
		}
		gs.enPassant = sq
	}
	return gs, nil
}

func parsePlacement(board *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d: %w", len(ranks), ErrInvalidFEN)
	}
	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			kind, ok := fenPieceTypes[unicode.ToLower(c)]
			if !ok {
				return fmt.Errorf("invalid piece character %q: %w", c, ErrInvalidFEN)
			}
			if col > 7 {
				return fmt.Errorf("rank %d overflows: %w", 8-row, ErrInvalidFEN)
			}
			color := White
			if unicode.IsLower(c) {
				color = Black
			}
			board[row][col] = Piece{Type: kind, Color: color}
			col++
		}
		if col != 8 {
			return fmt.Errorf("rank %d has %d files: %w", 8-row, col, ErrInvalidFEN)
		}
	}
	return nil
}

func parseCastling(field string) (CastlingRights, error) {
	var r CastlingRights
	if field == "-" {
		return r, nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			r.WhiteKingSide = true
		case 'Q':
			r.WhiteQueenSide = true
		case 'k':
			r.BlackKingSide = true
		case 'q':
			r.BlackQueenSide = true
		default:
			return r, fmt.Errorf("invalid castling character %q: %w", c, ErrInvalidFEN)
		}
	}
	return r, nil
}

// checkKings requires exactly one king per color.
func checkKings(b *Board) error {
	counts := map[Color]int{}
	for row := range b {
		for _, p := range b[row] {
			if p.Type == King {
				counts[p.Color]++
			}
		}
	}
	for _, c := range []Color{White, Black} {
		if counts[c] != 1 {
			return fmt.Errorf("%d %s kings: %w", counts[c], c, ErrInvalidFEN)
		}
	}
	return nil
}

// enPassantPossible reports whether target is the empty square an enemy pawn
// just skipped: rank 6 with white to move, rank 3 with black to move.
func (gs *GameState) enPassantPossible(target Square) bool {
	row, pawnRow := 2, 3
	if !gs.whiteToMove {
		row, pawnRow = 5, 4
	}
	if target.Row != row || !gs.board.At(target).IsEmpty() {
		return false
	}
	pawn := Square{Row: pawnRow, Col: target.Col}
	return gs.board.At(pawn).Is(gs.SideToMove().Opposite(), Pawn)
}

// consistentRights drops rights whose king or rook is not on its home square.
func consistentRights(b *Board, r CastlingRights) CastlingRights {
	home := func(c Color, col int, kind PieceType) bool {
		return b.At(Square{Row: homeRow(c), Col: col}).Is(c, kind)
	}
	r.WhiteQueenSide = r.WhiteQueenSide && home(White, 4, King) && home(White, 0, Rook)
	r.WhiteKingSide = r.WhiteKingSide && home(White, 4, King) && home(White, 7, Rook)
	r.BlackQueenSide = r.BlackQueenSide && home(Black, 4, King) && home(Black, 0, Rook)
	r.BlackKingSide = r.BlackKingSide && home(Black, 4, King) && home(Black, 7, Rook)
	return r
}

// FEN renders the position. The halfmove clock is always 0 and the fullmove
// number is derived from the plies played in this state.
func (gs *GameState) FEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := gs.board[row][col]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := p.Type.letter()
			if p.Color == Black {
				letter = byte(unicode.ToLower(rune(letter)))
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if !gs.whiteToMove {
		side = "b"
	}

	castling := ""
	if gs.rights.WhiteKingSide {
		castling += "K"
	}
	if gs.rights.WhiteQueenSide {
		castling += "Q"
	}
	if gs.rights.BlackKingSide {
		castling += "k"
	}
	if gs.rights.BlackQueenSide {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}

	return fmt.Sprintf("%s %s %s %s 0 %d", sb.String(), side, castling, gs.enPassant.Notation(), 1+len(gs.history)/2)
}
