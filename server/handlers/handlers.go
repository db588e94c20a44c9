package handlers

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/lazharichir/queens/domain"
	"github.com/lazharichir/queens/engine"
	"github.com/lazharichir/queens/lobby"
	"github.com/lazharichir/queens/projection"
	"github.com/lazharichir/queens/server/connection"
	"github.com/lazharichir/queens/server/events"
	"github.com/lazharichir/queens/store"
)

// recentMovesLimit bounds the move tail sent on (re)join
const recentMovesLimit = 20

// CommandRouter parses incoming messages into moves and runs them
// through the pipeline. Clients speak the move envelope directly; the
// only special case is joining, which may carry a room code.
type CommandRouter struct {
	lobby    *lobby.Lobby
	pipeline *engine.Pipeline
	store    store.Store
	connMgr  *connection.Manager
	log      *zap.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(l *lobby.Lobby, pipeline *engine.Pipeline, st store.Store, connMgr *connection.Manager, log *zap.Logger) *CommandRouter {
	return &CommandRouter{
		lobby:    l,
		pipeline: pipeline,
		store:    st,
		connMgr:  connMgr,
		log:      log,
	}
}

// incomingMove is the wire envelope plus join-only extras
type incomingMove struct {
	domain.Move
	RoomCode string `json:"roomCode,omitempty"`
}

// moveResult is the per-move reply sent to the submitter
type moveResult struct {
	MoveID string `json:"moveId"`
	domain.Result
}

// privateState is sent to a player on join and reconnect
type privateState struct {
	Game        projection.GameView `json:"game"`
	RecentMoves []domain.Move       `json:"recentMoves,omitempty"`
}

// HandleCommand processes one incoming client message
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	var in incomingMove
	if err := json.Unmarshal(message, &in); err != nil {
		r.sendError(client, "malformed message")
		return err
	}

	if in.Kind.Internal() {
		r.sendError(client, "reserved move kind")
		return nil
	}

	if in.Kind == domain.MoveJoinGame {
		return r.handleJoin(client, in)
	}

	result := r.pipeline.Submit(context.Background(), in.Move)
	r.sendResult(client, in.Move.ID, result)
	return nil
}

// handleJoin seats the player, or reconnects them if they already
// have a seat in a running game.
func (r *CommandRouter) handleJoin(client *connection.Client, in incomingMove) error {
	mv := in.Move
	if mv.GameID == "" && in.RoomCode != "" {
		gameID, ok := r.lobby.ResolveRoomCode(in.RoomCode)
		if !ok {
			r.sendResult(client, mv.ID, domain.Result{OK: false, Kind: domain.FailureGameNotFound, Reason: "unknown room code"})
			return nil
		}
		mv.GameID = gameID
	}

	g, err := r.store.Load(mv.GameID)
	if err != nil {
		r.sendResult(client, mv.ID, domain.Result{OK: false, Kind: domain.FailureGameNotFound, Reason: "no such game"})
		return nil
	}

	if g.PlayerByID(mv.PlayerID) != nil {
		// Already seated: this is a reconnect.
		r.bind(client, mv.PlayerID, mv.GameID)
		r.lobby.MarkConnected(mv.GameID, mv.PlayerID, true)
		r.sendResult(client, mv.ID, domain.Result{OK: true, Version: g.Version})
		r.sendPrivateState(client, mv.GameID, mv.PlayerID)
		return nil
	}

	result := r.pipeline.Submit(context.Background(), mv)
	if result.OK {
		r.bind(client, mv.PlayerID, mv.GameID)
		r.sendPrivateState(client, mv.GameID, mv.PlayerID)
	}
	r.sendResult(client, mv.ID, result)
	return nil
}

func (r *CommandRouter) bind(client *connection.Client, playerID, gameID string) {
	r.connMgr.BindPlayer(client.ID, playerID)
	r.connMgr.AddGameToClient(client.ID, gameID)
}

func (r *CommandRouter) sendPrivateState(client *connection.Client, gameID, playerID string) {
	g, err := r.store.Load(gameID)
	if err != nil {
		return
	}
	recent, err := r.lobby.RecentMoves(gameID, recentMovesLimit)
	if err != nil {
		recent = nil
	}

	r.push(client, events.NamePrivateState, privateState{
		Game:        projection.ForPlayer(g, playerID),
		RecentMoves: recent,
	})
}

func (r *CommandRouter) sendResult(client *connection.Client, moveID string, result domain.Result) {
	r.push(client, events.NameMoveResult, moveResult{MoveID: moveID, Result: result})
}

func (r *CommandRouter) sendError(client *connection.Client, reason string) {
	r.push(client, events.NameError, map[string]string{"reason": reason})
}

func (r *CommandRouter) push(client *connection.Client, name string, payload any) {
	data, err := events.MarshalEnvelope(name, payload)
	if err != nil {
		r.log.Error("failed to marshal reply", zap.String("name", name), zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}
