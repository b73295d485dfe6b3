// service/game_manager.go
package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/google/uuid"
)

const DefaultMatchInterval = time.Second

type ManagerOptions struct {
	// ClockTime is applied to games that do not set their own.
	ClockTime     time.Duration
	MatchInterval time.Duration
}

// GameManager owns the game registry and the matchmaking queue.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan ws.MatchFoundPayload
	pendingMatches   map[string]ws.MatchFoundPayload // matches for players with no open channel
	opts             ManagerOptions
	mu               sync.RWMutex
}

func NewGameManager(opts ManagerOptions) *GameManager {
	if opts.MatchInterval <= 0 {
		opts.MatchInterval = DefaultMatchInterval
	}
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan ws.MatchFoundPayload),
		pendingMatches:   make(map[string]ws.MatchFoundPayload),
		opts:             opts,
	}
}

// Run pairs queued players every MatchInterval until ctx is done.
func (gm *GameManager) Run(ctx context.Context) {
	ticker := time.NewTicker(gm.opts.MatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.MatchOnce() {
			}
		}
	}
}

// RegisterMatchmakingChannel replaces any earlier channel for playerID,
// closing the old one. A pending match is sent on ch at once and ch is
// closed; delivered reports that case.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundPayload) (delivered bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	if event, ok := gm.pendingMatches[playerID]; ok {
		select {
		case ch <- event:
			delete(gm.pendingMatches, playerID)
			close(ch)
			return true
		default:
		}
	}
	gm.matchingChannels[playerID] = ch
	return false
}

// MatchStatus pops the pending match for playerID, if any.
func (gm *GameManager) MatchStatus(playerID string) (ws.MatchFoundPayload, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	event, ok := gm.pendingMatches[playerID]
	delete(gm.pendingMatches, playerID)
	return event, ok
}

func (gm *GameManager) IsQueued(playerID string) bool {
	return gm.queue.Contains(playerID)
}

// UnregisterMatchmakingChannel forgets the channel without closing it; its
// creator owns it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.matchingChannels, playerID)
}

// MatchOnce seats the two longest-waiting players in a new game and tells
// them about it. It reports whether a pair was matched.
func (gm *GameManager) MatchOnce() bool {
	p1, p2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	game, err := model.NewGame(gameID, model.GameOptions{ClockTime: gm.opts.ClockTime})
	if err != nil {
		log.Printf("matchmaking: create game: %v", err)
		return false
	}
	events := make(map[string]ws.MatchFoundPayload, 2)
	for _, p := range []model.Player{p1, p2} {
		color, err := game.AddPlayer(p.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", p.ID, err)
			return false
		}
		events[p.ID] = ws.MatchFoundPayload{GameID: gameID, Color: string(color)}
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = game

	for playerID, event := range events {
		ch, ok := gm.matchingChannels[playerID]
		if !ok {
			gm.pendingMatches[playerID] = event
			continue
		}
		select {
		case ch <- event:
			delete(gm.matchingChannels, playerID)
			close(ch)
		default:
			log.Printf("matchmaking: channel for %s is full", playerID)
			gm.pendingMatches[playerID] = event
		}
	}
	log.Printf("matchmaking: %s vs %s in game %s", p1.ID, p2.ID, gameID)
	return true
}

func (gm *GameManager) CreateGame(gameID string, opts model.GameOptions) error {
	if opts.ClockTime <= 0 {
		opts.ClockTime = gm.opts.ClockTime
	}
	game, err := model.NewGame(gameID, opts)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%s: %w", gameID, model.ErrGameExists)
	}
	gm.games[gameID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", gameID, model.ErrGameNotFound)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (string, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	color, err := game.AddPlayer(playerID)
	return string(color), err
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Undo(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo(playerID)
}

func (gm *GameManager) Reset(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Reset(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
