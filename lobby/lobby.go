package lobby

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lazharichir/queens/domain"
	"github.com/lazharichir/queens/engine"
	"github.com/lazharichir/queens/store"
)

const roomCodeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// Lobby creates games and resolves room codes. Seating and everything
// after goes through the move pipeline.
type Lobby struct {
	store    store.Store
	pipeline *engine.Pipeline
	log      *zap.Logger

	mu        sync.Mutex
	roomCodes map[string]string // room code -> game ID
	rng       *rand.Rand
}

// NewLobby creates a lobby backed by the given store and pipeline
func NewLobby(st store.Store, pipeline *engine.Pipeline, log *zap.Logger) *Lobby {
	l := &Lobby{
		store:     st,
		pipeline:  pipeline,
		log:       log,
		roomCodes: make(map[string]string),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	l.rehydrateRoomCodes()
	return l
}

// rehydrateRoomCodes reloads persisted room codes, so joins by code
// keep working across a restart on a durable store.
func (l *Lobby) rehydrateRoomCodes() {
	ids, err := l.store.ListGames()
	if err != nil {
		l.log.Warn("failed to list games for room code rehydration", zap.Error(err))
		return
	}
	for _, id := range ids {
		g, err := l.store.Load(id)
		if err != nil {
			l.log.Warn("failed to load game for room code rehydration", zap.String("game_id", id), zap.Error(err))
			continue
		}
		if g.RoomCode != "" {
			l.roomCodes[g.RoomCode] = g.ID
		}
	}
}

// CreateGame stores a fresh game and returns it
func (l *Lobby) CreateGame() (*domain.Game, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	code := l.newRoomCode()
	g := domain.NewGame(uuid.NewString(), code)
	if err := l.store.Create(g); err != nil {
		return nil, err
	}
	l.roomCodes[code] = g.ID

	l.log.Info("game created", zap.String("game_id", g.ID), zap.String("room_code", code))
	return g, nil
}

func (l *Lobby) newRoomCode() string {
	for {
		code := make([]byte, 4)
		for i := range code {
			code[i] = roomCodeLetters[l.rng.Intn(len(roomCodeLetters))]
		}
		if _, taken := l.roomCodes[string(code)]; !taken {
			return string(code)
		}
	}
}

// ResolveRoomCode returns the game ID behind a room code
func (l *Lobby) ResolveRoomCode(code string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	gameID, ok := l.roomCodes[code]
	return gameID, ok
}

// GameSummary is the lobby listing entry for one game
type GameSummary struct {
	ID          string       `json:"id"`
	RoomCode    string       `json:"roomCode"`
	Phase       domain.Phase `json:"phase"`
	PlayerCount int          `json:"playerCount"`
	Players     []string     `json:"players"`
}

// ListGames summarizes every stored game
func (l *Lobby) ListGames() ([]GameSummary, error) {
	ids, err := l.store.ListGames()
	if err != nil {
		return nil, err
	}

	summaries := make([]GameSummary, 0, len(ids))
	for _, id := range ids {
		g, err := l.store.Load(id)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(g.Players))
		for _, p := range g.Players {
			names = append(names, p.Name)
		}
		summaries = append(summaries, GameSummary{
			ID:          g.ID,
			RoomCode:    g.RoomCode,
			Phase:       g.Phase,
			PlayerCount: len(g.Players),
			Players:     names,
		})
	}
	return summaries, nil
}

// RecentMoves returns the tail of a game's audited moves
func (l *Lobby) RecentMoves(gameID string, limit int) ([]domain.Move, error) {
	return l.store.RecentMoves(gameID, limit)
}

// MarkConnected flips a seated player's connection flag through the
// pipeline, so disconnect-ends-game rules apply like any other rule.
func (l *Lobby) MarkConnected(gameID, playerID string, connected bool) {
	kind := domain.MovePlayerConnected
	if !connected {
		kind = domain.MovePlayerDisconnected
	}

	result := l.pipeline.Submit(context.Background(), domain.Move{
		ID:       uuid.NewString(),
		GameID:   gameID,
		PlayerID: playerID,
		Kind:     kind,
	})
	if !result.OK && result.Kind != domain.FailureGameEnded {
		l.log.Warn("failed to update connection flag",
			zap.String("game_id", gameID),
			zap.String("player_id", playerID),
			zap.Bool("connected", connected),
			zap.String("reason", result.Reason),
		)
	}
}
