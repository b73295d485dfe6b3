package model

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/chess"
)

// MoveRequest is a move as clients send it, in algebraic squares.
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r MoveRequest) Squares() (from, to chess.Square, err error) {
	if from, err = chess.ParseSquare(r.From); err != nil {
		return chess.NoSquare, chess.NoSquare, fmt.Errorf("from: %w", err)
	}
	if to, err = chess.ParseSquare(r.To); err != nil {
		return chess.NoSquare, chess.NoSquare, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

// MoveView is a move as clients receive it.
type MoveView struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Notation  string `json:"notation"`
	Capture   bool   `json:"capture"`
	EnPassant bool   `json:"enPassant"`
	Castling  bool   `json:"castling"`
	Promotion bool   `json:"promotion"`
}

func newMoveView(m chess.Move) MoveView {
	return MoveView{
		From:      m.Start.Notation(),
		To:        m.End.Notation(),
		Notation:  m.Notation(),
		Capture:   m.IsCapture(),
		EnPassant: m.IsEnPassant,
		Castling:  m.IsCastling,
		Promotion: m.IsPawnPromotion(),
	}
}

func newMoveViews(moves []chess.Move) []MoveView {
	views := make([]MoveView, 0, len(moves))
	for _, m := range moves {
		views = append(views, newMoveView(m))
	}
	return views
}

// Sound names the effect a client should play for the last move.
type Sound string

const (
	SoundNone      Sound = ""
	SoundMove      Sound = "move"
	SoundCapture   Sound = "capture"
	SoundCastle    Sound = "castle"
	SoundPromotion Sound = "promotion"
	SoundCheck     Sound = "check"
)

func soundFor(m chess.Move, check bool) Sound {
	switch {
	case check:
		return SoundCheck
	case m.IsPawnPromotion():
		return SoundPromotion
	case m.IsCastling:
		return SoundCastle
	case m.IsCapture():
		return SoundCapture
	default:
		return SoundMove
	}
}
