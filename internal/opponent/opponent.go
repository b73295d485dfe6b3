// Package opponent holds computer move choosers. A chooser only picks from
// the legal move list it is handed; it never mutates the game state outside
// MakeMove/UndoMove pairs.
package opponent

import (
	"math/rand/v2"

	"github.com/benbeisheim/chess-backend/internal/chess"
)

// Chooser picks a move from legal, which must be the exact list returned by
// state.ValidMoves. ok is false when no move was chosen.
type Chooser interface {
	ChooseMove(state *chess.GameState, legal []chess.Move) (move chess.Move, ok bool)
}

// Random picks uniformly. It is also the driver's fallback when another
// chooser declines.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) ChooseMove(_ *chess.GameState, legal []chess.Move) (chess.Move, bool) {
	if len(legal) == 0 {
		return chess.Move{}, false
	}
	if r.rng == nil {
		return legal[rand.IntN(len(legal))], true
	}
	return legal[r.rng.IntN(len(legal))], true
}

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// Greedy plays the move that wins the most material on the spot, counting a
// promotion as a queen gained. It declines when nothing wins material, so the
// driver falls back to a random move.
type Greedy struct{}

func (Greedy) ChooseMove(state *chess.GameState, legal []chess.Move) (chess.Move, bool) {
	best, bestGain := chess.Move{}, 0
	for _, m := range legal {
		gain := pieceValues[m.PieceCaptured.Type]
		if m.IsPawnPromotion() {
			gain += pieceValues[chess.Queen] - pieceValues[chess.Pawn]
		}
		if gain > bestGain {
			best, bestGain = m, gain
		}
	}
	if bestGain == 0 {
		return chess.Move{}, false
	}
	return best, true
}
