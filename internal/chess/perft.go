package chess

// Perft counts leaf nodes of the legal move tree to the given depth. Each node
// is expanded the way a driver plays a turn: refresh the opponent replies,
// then generate legal moves.
func Perft(gs *GameState, depth int) int {
	if depth == 0 {
		return 1
	}
	replies := gs.opponentReplies
	gs.RefreshOpponentReplies()
	moves := gs.ValidMoves()
	if depth == 1 {
		gs.opponentReplies = replies
		return len(moves)
	}

	nodes := 0
	for _, m := range moves {
		gs.MakeMove(m)
		nodes += Perft(gs, depth-1)
		gs.UndoMove()
	}
	gs.opponentReplies = replies
	return nodes
}
