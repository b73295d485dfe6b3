package model

import "github.com/benbeisheim/chess-backend/internal/chess"

// Resolve captions a finished game.
const (
	ResolveCheckmate = "checkmate"
	ResolveStalemate = "stalemate"
)

// GameView is the read-only snapshot a renderer draws from. Empty squares
// in Board marshal as null.
type GameView struct {
	ID              string               `json:"id"`
	Board           chess.Board          `json:"board"`
	ToMove          chess.Color          `json:"toMove"`
	LegalMoves      []MoveView           `json:"legalMoves"`
	MoveHistory     []string             `json:"moveHistory"`
	CastlingRights  chess.CastlingRights `json:"castling"`
	EnPassantTarget *chess.Square        `json:"enPassant"`
	IsCheck         bool                 `json:"isCheck"`
	Checkmate       bool                 `json:"checkmate"`
	Stalemate       bool                 `json:"stalemate"`
	Resolve         *string              `json:"resolve"`
	Winner          *chess.Color         `json:"winner"`
	Sound           Sound                `json:"sound"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *MoveView `json:"lastMove"`
	FEN      string    `json:"fen"`
}

// view must be called with g.mu held.
func (g *Game) view() GameView {
	v := GameView{
		ID:             g.ID,
		Board:          g.state.Board(),
		ToMove:         g.state.SideToMove(),
		LegalMoves:     newMoveViews(g.validMoves),
		MoveHistory:    make([]string, 0, len(g.state.Moves())),
		CastlingRights: g.state.CastlingRights(),
		IsCheck:        g.state.InCheck(),
		Checkmate:      g.state.Checkmate(),
		Stalemate:      g.state.Stalemate(),
		Sound:          g.sound,
		FEN:            g.state.FEN(),
	}
	for _, m := range g.state.Moves() {
		v.MoveHistory = append(v.MoveHistory, m.Notation())
	}
	if ep := g.state.EnPassantTarget(); ep.OnBoard() {
		v.EnPassantTarget = &ep
	}
	switch {
	case v.Checkmate:
		resolve, winner := ResolveCheckmate, v.ToMove.Opposite()
		v.Resolve, v.Winner = &resolve, &winner
	case v.Stalemate:
		resolve := ResolveStalemate
		v.Resolve = &resolve
	}
	if g.lastMove != nil {
		last := newMoveView(*g.lastMove)
		v.LastMove = &last
	}

	v.Players.White = g.players.White
	v.Players.Black = g.players.Black
	v.Players.White.TimeLeft = g.whiteClock.Tenths()
	v.Players.Black.TimeLeft = g.blackClock.Tenths()
	return v
}
