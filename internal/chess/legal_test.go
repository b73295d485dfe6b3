package chess

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func notations(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.Notation())
	}
	sort.Strings(out)
	return out
}

func movesFrom(moves []Move, from string) []string {
	var out []string
	for _, m := range moves {
		if m.Start.Notation() == from {
			out = append(out, m.Notation())
		}
	}
	sort.Strings(out)
	return out
}

func TestCheckmate(t *testing.T) {
	gs := mustFEN(t, "k7/1Q6/1K6/8/8/8/8/8 b - - 0 1")

	moves := legalMoves(gs)
	if len(moves) != 0 {
		t.Fatalf("legal moves = %v, want none", notations(moves))
	}
	if !gs.Checkmate() {
		t.Error("Checkmate() = false, want true")
	}
	if gs.Stalemate() {
		t.Error("Stalemate() = true, want false")
	}
	if gs.SideToMove() != Black {
		t.Error("terminal probing must not change the side to move")
	}
}

func TestFoolsMate(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "f2f3", "e7e5", "g2g4", "d8h4")

	if !gs.InCheck() {
		t.Error("InCheck() = false after Qh4")
	}
	if moves := legalMoves(gs); len(moves) != 0 {
		t.Fatalf("legal moves = %v, want none", notations(moves))
	}
	if !gs.Checkmate() || gs.Stalemate() {
		t.Errorf("checkmate=%v stalemate=%v, want true/false", gs.Checkmate(), gs.Stalemate())
	}

	gs.UndoMove()
	if gs.Checkmate() || gs.Stalemate() {
		t.Error("undo must clear the terminal flags")
	}
	if len(legalMoves(gs)) == 0 {
		t.Error("black should have legal moves after undoing the mate")
	}
}

func TestStalemate(t *testing.T) {
	gs := mustFEN(t, "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")

	if moves := legalMoves(gs); len(moves) != 0 {
		t.Fatalf("legal moves = %v, want none", notations(moves))
	}
	if !gs.Stalemate() {
		t.Error("Stalemate() = false, want true")
	}
	if gs.Checkmate() {
		t.Error("Checkmate() = true, want false")
	}
	if gs.InCheck() {
		t.Error("InCheck() = true in a stalemate")
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	gs := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")

	want := []string{"e1d1", "e1d2", "e1f1", "e1f2"}
	if diff := cmp.Diff(want, notations(legalMoves(gs))); diff != "" {
		t.Errorf("legal moves mismatch (-want +got):\n%s", diff)
	}
}

func TestKingCannotStepIntoCheck(t *testing.T) {
	gs := mustFEN(t, "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")

	// Rd2 covers the whole second rank and d1; Kxd2 is the only safe capture.
	want := []string{"e1d2", "e1f1"}
	if diff := cmp.Diff(want, notations(legalMoves(gs))); diff != "" {
		t.Errorf("legal moves mismatch (-want +got):\n%s", diff)
	}
}

func TestIsCheck(t *testing.T) {
	board := newInitialBoard()
	board[4][4] = Piece{Type: King, Color: Black}
	capture := NewMove(Square{Row: 6, Col: 3}, Square{Row: 4, Col: 4}, &board)
	quiet := NewMove(Square{Row: 6, Col: 0}, Square{Row: 5, Col: 0}, &board)

	if IsCheck([]Move{quiet}) {
		t.Error("IsCheck() = true without a king capture")
	}
	if !IsCheck([]Move{quiet, capture}) {
		t.Error("IsCheck() = false with a king capture")
	}
	if IsCheck(nil) {
		t.Error("IsCheck(nil) = true")
	}
}

func TestEnPassant(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4", "a7a6", "e4e5", "h7h6")
	if got := movesFrom(legalMoves(gs), "e5"); len(got) != 1 {
		t.Fatalf("e5 moves before the double step = %v, want only e5e6", got)
	}
	gs.UndoMove()

	play(t, gs, "d7d5")
	if got := gs.EnPassantTarget(); got != sq(t, "d6") {
		t.Fatalf("EnPassantTarget() = %v, want d6", got)
	}
	moves := legalMoves(gs)
	if diff := cmp.Diff([]string{"e5d6", "e5e6"}, movesFrom(moves, "e5")); diff != "" {
		t.Fatalf("e5 moves mismatch (-want +got):\n%s", diff)
	}
	ep, _ := findMove(moves, "e5d6")
	if !ep.IsEnPassant || ep.PieceCaptured != (Piece{Type: Pawn, Color: Black}) {
		t.Fatalf("e5d6 = %+v, want an en passant capture of bP", ep)
	}

	gs.MakeMove(ep)
	if !gs.PieceAt(sq(t, "d5")).IsEmpty() {
		t.Error("captured pawn still on d5")
	}
	if got := gs.PieceAt(sq(t, "d6")); got != (Piece{Type: Pawn, Color: White}) {
		t.Errorf("d6 = %v, want wP", got)
	}

	gs.UndoMove()
	if got := gs.PieceAt(sq(t, "d5")); got != (Piece{Type: Pawn, Color: Black}) {
		t.Errorf("d5 after undo = %v, want bP", got)
	}
	if !gs.PieceAt(sq(t, "d6")).IsEmpty() {
		t.Error("d6 not cleared by undo")
	}
}

func TestEnPassantExpiresAfterOnePly(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "h7h6")

	if got := movesFrom(legalMoves(gs), "e5"); len(got) != 1 {
		t.Errorf("e5 moves = %v, want only e5e6 once the en passant window closed", got)
	}
}

func TestPromotion(t *testing.T) {
	t.Run("white", func(t *testing.T) {
		gs := mustFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
		m, ok := findMove(legalMoves(gs), "a7a8")
		if !ok {
			t.Fatal("a7a8 not legal")
		}
		if !m.IsPawnPromotion() {
			t.Fatal("a7a8 should be a promotion")
		}
		gs.MakeMove(m)
		if got := gs.PieceAt(sq(t, "a8")); got != (Piece{Type: Queen, Color: White}) {
			t.Errorf("a8 = %v, want wQ", got)
		}
		gs.UndoMove()
		if got := gs.PieceAt(sq(t, "a7")); got != (Piece{Type: Pawn, Color: White}) {
			t.Errorf("a7 after undo = %v, want wP", got)
		}
	})

	t.Run("black capture", func(t *testing.T) {
		gs := mustFEN(t, "4k3/8/8/8/8/8/6p1/4K2R b K - 0 1")
		play(t, gs, "g2h1")
		if got := gs.PieceAt(sq(t, "h1")); got != (Piece{Type: Queen, Color: Black}) {
			t.Errorf("h1 = %v, want bQ", got)
		}
		if gs.CastlingRights().WhiteKingSide {
			t.Error("capturing the h1 rook must remove white's king side right")
		}
		gs.UndoMove()
		if got := gs.PieceAt(sq(t, "h1")); got != (Piece{Type: Rook, Color: White}) {
			t.Errorf("h1 after undo = %v, want wR", got)
		}
		if !gs.CastlingRights().WhiteKingSide {
			t.Error("undo must restore white's king side right")
		}
	})
}

func castles(moves []Move) []string {
	var out []string
	for _, m := range moves {
		if m.IsCastling {
			out = append(out, m.Notation())
		}
	}
	sort.Strings(out)
	return out
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"both sides open", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1c1", "e1g1"}},
		{"black both sides open", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", []string{"e8c8", "e8g8"}},
		{"transit square attacked", "r3kr2/8/8/8/8/8/8/R3K2R w KQq - 0 1", []string{"e1c1"}},
		{"destination attacked", "r3k1r1/8/8/8/8/8/8/R3K2R w KQq - 0 1", []string{"e1c1"}},
		{"queen side path attacked on d1", "r2rk3/8/8/8/8/8/8/R3K2R w KQ - 0 1", []string{"e1g1"}},
		{"queen side blocked", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", []string{"e1g1"}},
		{"in check", "4k3/4r3/8/8/8/8/8/R3K2R w KQ - 0 1", nil},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := mustFEN(t, tt.fen)
			if diff := cmp.Diff(tt.want, castles(legalMoves(gs))); diff != "" {
				t.Errorf("castling moves mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCastlingMovesRook(t *testing.T) {
	gs := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, gs, "e1g1")

	if got := gs.PieceAt(sq(t, "g1")); got != (Piece{Type: King, Color: White}) {
		t.Errorf("g1 = %v, want wK", got)
	}
	if got := gs.PieceAt(sq(t, "f1")); got != (Piece{Type: Rook, Color: White}) {
		t.Errorf("f1 = %v, want wR", got)
	}
	if !gs.PieceAt(sq(t, "h1")).IsEmpty() {
		t.Error("h1 should be empty after castling")
	}
	r := gs.CastlingRights()
	if r.WhiteKingSide || r.WhiteQueenSide || !r.BlackKingSide || !r.BlackQueenSide {
		t.Errorf("rights = %+v, want only black rights left", r)
	}

	play(t, gs, "e8c8")
	if got := gs.PieceAt(sq(t, "d8")); got != (Piece{Type: Rook, Color: Black}) {
		t.Errorf("d8 = %v, want bR", got)
	}

	gs.UndoMove()
	gs.UndoMove()
	want := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if diff := cmp.Diff(want.Board(), gs.Board()); diff != "" {
		t.Errorf("board not restored (-want +got):\n%s", diff)
	}
}

func TestCastlingRightsLostByRookMoves(t *testing.T) {
	gs := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, gs, "h1h2", "a8a7", "h2h1", "a7a8")

	r := gs.CastlingRights()
	if r.WhiteKingSide || !r.WhiteQueenSide || !r.BlackKingSide || r.BlackQueenSide {
		t.Errorf("rights = %+v, want white queen side and black king side only", r)
	}
	if diff := cmp.Diff([]string{"e1c1"}, castles(legalMoves(gs))); diff != "" {
		t.Errorf("castling moves mismatch (-want +got):\n%s", diff)
	}
}

func TestCastlingRightsLostByRookCapture(t *testing.T) {
	gs := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, gs, "h1h8")

	r := gs.CastlingRights()
	if r.BlackKingSide {
		t.Error("black king side right should be lost when the h8 rook is captured")
	}
	if r.WhiteKingSide {
		t.Error("white king side right should be lost when the h1 rook leaves home")
	}
	if !r.WhiteQueenSide || !r.BlackQueenSide {
		t.Errorf("rights = %+v, queen side rights should survive", r)
	}
}

func TestRefreshOpponentRepliesHasNoSideEffects(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4")
	before := gs.Clone()

	gs.RefreshOpponentReplies()
	if len(gs.OpponentReplies()) != 30 {
		t.Errorf("len(OpponentReplies()) = %d, want white's 30 replies", len(gs.OpponentReplies()))
	}
	before.opponentReplies = gs.opponentReplies
	if diff := cmp.Diff(before, gs, stateCmpOpts...); diff != "" {
		t.Errorf("refresh changed the position (-before +after):\n%s", diff)
	}
}
