package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

var stateCmpOpts = []cmp.Option{
	cmp.AllowUnexported(GameState{}, undoRecord{}),
	cmpopts.EquateEmpty(),
}

func mustFEN(t *testing.T, fen string) *GameState {
	t.Helper()
	gs, err := NewGameStateFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameStateFromFEN(%q): %v", fen, err)
	}
	return gs
}

// legalMoves runs one driver turn: refresh the opponent replies, then generate.
func legalMoves(gs *GameState) []Move {
	gs.RefreshOpponentReplies()
	return gs.ValidMoves()
}

func findMove(moves []Move, notation string) (Move, bool) {
	for _, m := range moves {
		if m.Notation() == notation {
			return m, true
		}
	}
	return Move{}, false
}

// play applies each notation through the driver protocol, failing the test
// if any move is not legal at that point.
func play(t *testing.T, gs *GameState, notations ...string) {
	t.Helper()
	for _, n := range notations {
		legal, ok := findMove(legalMoves(gs), n)
		if !ok {
			t.Fatalf("%s is not legal in %s", n, gs.FEN())
		}
		board := gs.Board()
		pending := NewMove(legal.Start, legal.End, &board)
		gs.MakeMove(pending.WithFlagsFrom(legal))
	}
}

func TestInitialPosition(t *testing.T) {
	gs := NewGameState()
	if !gs.WhiteToMove() {
		t.Error("white should move first")
	}
	if gs.EnPassantTarget() != NoSquare {
		t.Errorf("EnPassantTarget() = %v, want none", gs.EnPassantTarget())
	}
	if diff := cmp.Diff(allCastlingRights(), gs.CastlingRights()); diff != "" {
		t.Errorf("castling rights mismatch (-want +got):\n%s", diff)
	}
	if got := gs.PieceAt(sq(t, "e8")); got != (Piece{Type: King, Color: Black}) {
		t.Errorf("e8 = %v, want bK", got)
	}
	if got := gs.PieceAt(sq(t, "d1")); got != (Piece{Type: Queen, Color: White}) {
		t.Errorf("d1 = %v, want wQ", got)
	}
	if got := len(legalMoves(gs)); got != 20 {
		t.Errorf("legal moves = %d, want 20", got)
	}
}

func TestMakeUndoRoundTrip(t *testing.T) {
	positions := []struct {
		name string
		fen  string
	}{
		{"initial", InitialFEN},
		{"kiwipete", kiwipeteFEN},
		{"en passant available", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 1"},
		{"promotions", "r3k3/1P6/8/8/8/8/6p1/4K2R w Kq - 0 1"},
		{"castling both sides", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1"},
	}

	for _, tt := range positions {
		t.Run(tt.name, func(t *testing.T) {
			gs := mustFEN(t, tt.fen)
			moves := legalMoves(gs)
			if len(moves) == 0 {
				t.Fatal("position has no legal moves")
			}
			for _, m := range moves {
				before := gs.Clone()
				gs.MakeMove(m)
				gs.UndoMove()
				if diff := cmp.Diff(before, gs, stateCmpOpts...); diff != "" {
					t.Fatalf("%s: state not restored (-before +after):\n%s", m, diff)
				}
			}
		})
	}
}

func TestUndoRestoresAfterSequence(t *testing.T) {
	gs := NewGameState()
	start := gs.Clone()

	play(t, gs, "e2e4", "d7d5", "e4d5", "g8f6", "f1b5", "c7c6", "d5c6", "d8a5", "c6b7", "a5b5", "b7a8", "e8d8", "g1f3", "b5b2", "e1g1")
	if got := gs.PieceAt(sq(t, "a8")); got != (Piece{Type: Queen, Color: White}) {
		t.Fatalf("a8 = %v, want promoted wQ", got)
	}
	if got := gs.PieceAt(sq(t, "f1")); got != (Piece{Type: Rook, Color: White}) {
		t.Fatalf("f1 = %v, want castled wR", got)
	}

	for gs.CanUndo() {
		gs.UndoMove()
	}
	start.opponentReplies = gs.opponentReplies
	if diff := cmp.Diff(start, gs, stateCmpOpts...); diff != "" {
		t.Errorf("state not restored after full undo (-want +got):\n%s", diff)
	}
}

func TestUndoOnEmptyLogPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrMoveLogEmpty) {
			t.Errorf("recover() = %v, want ErrMoveLogEmpty", r)
		}
	}()
	NewGameState().UndoMove()
}

func TestLogsStayInLockstep(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4", "e7e5", "e1e2")

	if got := len(gs.Moves()); got != 3 {
		t.Fatalf("len(Moves()) = %d, want 3", got)
	}
	rights := gs.CastlingRightsLog()
	if len(rights) != 4 {
		t.Fatalf("len(CastlingRightsLog()) = %d, want 4", len(rights))
	}
	if !rights[2].WhiteKingSide || rights[3].WhiteKingSide || rights[3].WhiteQueenSide {
		t.Errorf("rights log = %+v, want white rights lost only on the last entry", rights)
	}

	wantEP := []Square{NoSquare, sq(t, "e3"), sq(t, "e6"), NoSquare}
	if diff := cmp.Diff(wantEP, gs.EnPassantLog()); diff != "" {
		t.Errorf("en passant log mismatch (-want +got):\n%s", diff)
	}

	gs.UndoMove()
	if got := gs.EnPassantTarget(); got != sq(t, "e6") {
		t.Errorf("EnPassantTarget() after undo = %v, want e6", got)
	}
	if !gs.CastlingRights().WhiteKingSide {
		t.Error("undo should restore the white king side right")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4")
	c := gs.Clone()
	play(t, c, "e7e5")

	if len(gs.Moves()) != 1 {
		t.Errorf("original has %d moves after playing on the clone, want 1", len(gs.Moves()))
	}
	if !gs.PieceAt(sq(t, "e5")).IsEmpty() {
		t.Error("clone move leaked into original board")
	}
}
