package model

import "github.com/benbeisheim/chess-backend/internal/chess"

type Player struct {
	ID    string
	Color chess.Color
}

// ClientPlayer is the per-seat data sent to clients. TimeLeft is in tenths of a second.
type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    chess.Color `json:"color"`
	TimeLeft int         `json:"timeLeft"`
	Computer bool        `json:"computer"`
}

// computerID occupies a seat taken by an opponent.Chooser.
const computerID = "computer"
