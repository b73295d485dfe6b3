package model

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/opponent"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

const DefaultClockTime = 600 * time.Second

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// GameOptions configures a new game. The zero value is a two-player game
// from the initial position.
type GameOptions struct {
	FEN       string
	ClockTime time.Duration
	// Computer seats an opponent on that color. Empty means two humans.
	Computer chess.Color
	Chooser  opponent.Chooser
	// Seed for the random fallback. Zero uses the global source.
	Seed uint64
}

// Game drives one chess.GameState: it matches client moves against the
// cached legal list, refreshes the reply list after every move, and plays
// the computer's side.
type Game struct {
	ID string
	mu sync.Mutex

	state      *chess.GameState
	validMoves []chess.Move
	startFEN   string

	players struct {
		White ClientPlayer
		Black ClientPlayer
	}
	computer chess.Color
	chooser  opponent.Chooser
	fallback opponent.Chooser

	sound    Sound
	lastMove *chess.Move

	connections *GameConnections // Connections just for this game
	sendMu      sync.Mutex
	seq         uint64 // guarded by mu
	lastSent    uint64 // guarded by sendMu
	whiteClock  *Clock
	blackClock  *Clock
}

func NewGame(id string, opts GameOptions) (*Game, error) {
	startFEN := chess.InitialFEN
	if opts.FEN != "" {
		startFEN = opts.FEN
	}
	state, err := chess.NewGameStateFromFEN(startFEN)
	if err != nil {
		return nil, err
	}
	if opts.ClockTime <= 0 {
		opts.ClockTime = DefaultClockTime
	}

	g := &Game{
		ID:          id,
		state:       state,
		startFEN:    startFEN,
		connections: NewGameConnections(),
		whiteClock:  NewClock(opts.ClockTime),
		blackClock:  NewClock(opts.ClockTime),
		fallback:    opponent.NewRandom(opts.Seed),
	}
	if opts.Seed == 0 {
		g.fallback = &opponent.Random{}
	}

	switch opts.Computer {
	case "":
	case chess.White, chess.Black:
		g.computer = opts.Computer
		g.chooser = opts.Chooser
		if g.chooser == nil {
			g.chooser = opponent.Greedy{}
		}
		*g.seat(opts.Computer) = ClientPlayer{ID: computerID, Color: opts.Computer, Computer: true}
	default:
		return nil, fmt.Errorf("computer color %q: %w", opts.Computer, ErrInvalidOptions)
	}

	g.advanceTurn()
	g.playComputer()
	return g, nil
}

func (g *Game) seat(c chess.Color) *ClientPlayer {
	if c == chess.White {
		return &g.players.White
	}
	return &g.players.Black
}

func (g *Game) clock(c chess.Color) *Clock {
	if c == chess.White {
		return g.whiteClock
	}
	return g.blackClock
}

// AddPlayer seats playerID on the first open color. A player already seated
// gets their existing color back.
func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.colorOf(playerID); ok {
		return c, nil
	}
	for _, c := range []chess.Color{chess.White, chess.Black} {
		if s := g.seat(c); s.ID == "" {
			*s = ClientPlayer{ID: playerID, Color: c}
			log.Printf("game %s: %s seated as %s", g.ID, playerID, c)
			g.broadcastLocked()
			return c, nil
		}
	}
	return "", fmt.Errorf("%s: %w", g.ID, ErrGameFull)
}

func (g *Game) colorOf(playerID string) (chess.Color, bool) {
	if playerID == "" || playerID == computerID {
		return "", false
	}
	switch playerID {
	case g.players.White.ID:
		return chess.White, true
	case g.players.Black.ID:
		return chess.Black, true
	}
	return "", false
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) isOver() bool {
	return g.state.Checkmate() || g.state.Stalemate()
}

func (g *Game) GetState() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view()
}

// MakeMove plays a client move for playerID and, against the computer,
// the computer's reply.
func (g *Game) MakeMove(playerID string, req MoveRequest) error {
	from, to, err := req.Squares()
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.colorOf(playerID)
	if !ok {
		return fmt.Errorf("%s: %w", playerID, ErrNotInGame)
	}
	if g.isOver() {
		return ErrGameOver
	}
	if color != g.state.SideToMove() {
		return ErrNotYourTurn
	}

	if err := g.playMove(from, to); err != nil {
		return err
	}
	g.playComputer()
	g.broadcastLocked()
	return nil
}

// playMove builds the pending move from the current board and only plays it
// once it matches an entry of the legal list, taking that entry's flags.
func (g *Game) playMove(from, to chess.Square) error {
	board := g.state.Board()
	pending := chess.NewMove(from, to, &board)
	for _, legal := range g.validMoves {
		if pending.Equal(legal) {
			g.apply(pending.WithFlagsFrom(legal))
			return nil
		}
	}
	return fmt.Errorf("%s: %w", pending.Notation(), ErrIllegalMove)
}

func (g *Game) apply(m chess.Move) {
	mover := g.state.SideToMove()
	g.clock(mover).Stop()

	g.state.MakeMove(m)
	g.advanceTurn()

	g.lastMove = &m
	g.sound = soundFor(m, g.state.InCheck())
	if !g.isOver() {
		g.clock(mover.Opposite()).Start()
	}
	log.Printf("game %s: %s played %s", g.ID, mover, m)
}

// advanceTurn recomputes the reply list and then the legal list for the
// side to move, in that order.
func (g *Game) advanceTurn() {
	g.state.RefreshOpponentReplies()
	g.validMoves = g.state.ValidMoves()
}

func (g *Game) playComputer() {
	if g.computer == "" || g.isOver() || g.state.SideToMove() != g.computer {
		return
	}
	snapshot := g.state.Clone()
	m, ok := g.chooser.ChooseMove(snapshot, g.validMoves)
	if ok {
		chosen := m
		if m, ok = g.legalMove(chosen); !ok {
			log.Printf("game %s: computer chose %s, which is not legal", g.ID, chosen)
		}
	}
	if !ok {
		m, ok = g.fallback.ChooseMove(snapshot, g.validMoves)
	}
	if !ok {
		return
	}
	g.apply(m)
}

// legalMove returns the entry of the legal list equal to m.
func (g *Game) legalMove(m chess.Move) (chess.Move, bool) {
	for _, legal := range g.validMoves {
		if m.Equal(legal) {
			return legal, true
		}
	}
	return m, false
}

// Undo takes back the last ply. Against the computer it takes back the
// computer's reply as well so the human is to move again.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.colorOf(playerID); !ok {
		return fmt.Errorf("%s: %w", playerID, ErrNotInGame)
	}
	if !g.state.CanUndo() {
		return ErrNothingToUndo
	}

	plies := 1
	if g.computer != "" && g.state.SideToMove() != g.computer && len(g.state.Moves()) >= 2 {
		plies = 2
	}
	for i := 0; i < plies; i++ {
		g.state.UndoMove()
	}
	g.advanceTurn()

	g.sound = SoundNone
	g.lastMove = nil
	if moves := g.state.Moves(); len(moves) > 0 {
		last := moves[len(moves)-1]
		g.lastMove = &last
	}
	g.whiteClock.Stop()
	g.blackClock.Stop()
	if g.lastMove != nil {
		g.clock(g.state.SideToMove()).Start()
	}
	log.Printf("game %s: %s took back %d ply", g.ID, playerID, plies)

	g.playComputer()
	g.broadcastLocked()
	return nil
}

// Reset restarts from the game's starting position. Seats are kept.
func (g *Game) Reset(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.colorOf(playerID); !ok {
		return fmt.Errorf("%s: %w", playerID, ErrNotInGame)
	}
	state, err := chess.NewGameStateFromFEN(g.startFEN)
	if err != nil {
		return err
	}
	g.state = state
	g.sound = SoundNone
	g.lastMove = nil
	g.whiteClock.Reset()
	g.blackClock.Reset()
	g.advanceTurn()
	log.Printf("game %s: reset by %s", g.ID, playerID)

	g.playComputer()
	g.broadcastLocked()
	return nil
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, inGame := g.colorOf(playerID)
	isAuthorized := inGame || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return fmt.Errorf("%s: %w", playerID, ErrNotInGame)
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for %s", g.ID, playerID)

	g.mu.Lock()
	g.broadcastLocked()
	g.mu.Unlock()
	return nil
}

// UnregisterConnection removes conn only if it is still the player's
// current connection.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Printf("game %s: unregistered connection for %s", g.ID, playerID)
	}
}

// broadcastLocked snapshots the view under g.mu and sends it asynchronously.
// A snapshot older than one already sent is dropped.
func (g *Game) broadcastLocked() {
	g.seq++
	v, seq := g.view(), g.seq
	go g.broadcast(v, seq)
}

func (g *Game) broadcast(v GameView, seq uint64) {
	g.sendMu.Lock()
	defer g.sendMu.Unlock()
	if seq <= g.lastSent {
		return
	}
	g.lastSent = seq

	msg, err := ws.NewMessage(ws.MessageTypeGameState, v)
	if err != nil {
		log.Printf("game %s: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	var failed []string
	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			failed = append(failed, playerID)
		}
	}
	if len(failed) == 0 {
		return
	}

	g.connections.mu.Lock()
	for _, playerID := range failed {
		if g.connections.connections[playerID] == active[playerID] {
			delete(g.connections.connections, playerID)
		}
	}
	g.connections.mu.Unlock()
}
