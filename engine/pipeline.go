package engine

import (
	"context"
	"sync"

	"github.com/sanity-io/litter"
	"go.uber.org/zap"

	"github.com/lazharichir/queens/domain"
	"github.com/lazharichir/queens/store"
)

// CommitSink receives every committed state together with the private
// draw events of the committing move.
type CommitSink func(g *domain.Game, draws []PrivateDraw)

// Pipeline is the single entry point for moves. Per game it is a
// single writer: submissions are serialized on a per-game lock, and
// the versioned compare-and-swap catches anything that slips past it
// (other nodes, the defense timer).
type Pipeline struct {
	store  store.Store
	engine *Engine
	log    *zap.Logger

	mu        sync.Mutex
	gameLocks map[string]*sync.Mutex
	frozen    map[string]bool

	sinkMu sync.RWMutex
	sinks  []CommitSink
}

// NewPipeline creates a pipeline committing through the given store
func NewPipeline(st store.Store, eng *Engine, log *zap.Logger) *Pipeline {
	return &Pipeline{
		store:     st,
		engine:    eng,
		log:       log,
		gameLocks: make(map[string]*sync.Mutex),
		frozen:    make(map[string]bool),
	}
}

// AddSink registers a commit observer (projection broadcast, defense
// timers). Sinks run synchronously after each commit, in order.
func (p *Pipeline) AddSink(sink CommitSink) {
	p.sinkMu.Lock()
	defer p.sinkMu.Unlock()
	p.sinks = append(p.sinks, sink)
}

// Submit runs a move through the full pipeline: dedupe, load,
// authorize, validate, apply, win check, versioned commit, project.
func (p *Pipeline) Submit(ctx context.Context, mv domain.Move) domain.Result {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.engine.cfg.MoveDeadline)
		defer cancel()
	}

	lock := p.lockFor(mv.GameID)
	lock.Lock()
	defer lock.Unlock()

	if p.isFrozen(mv.GameID) {
		return domain.Result{OK: false, Kind: domain.FailureIllegalMove, Reason: "game is frozen pending operator action"}
	}

	for attempt := 0; attempt < p.engine.cfg.CASRetries; attempt++ {
		if ctx.Err() != nil {
			return domain.Result{OK: false, Kind: domain.FailureTimeout, Reason: "move deadline exceeded"}
		}

		current, err := p.store.Load(mv.GameID)
		if err == store.ErrNotFound {
			return domain.Result{OK: false, Kind: domain.FailureGameNotFound, Reason: "no such game"}
		}
		if err != nil {
			p.log.Error("failed to load game", zap.String("game_id", mv.GameID), zap.Error(err))
			return domain.Result{OK: false, Kind: domain.FailureStaleVersion, Reason: "storage error; safe to retry"}
		}

		// Idempotent replay: the move already committed.
		if current.LastMoveID == mv.ID && mv.ID != "" {
			return domain.Result{OK: true, Version: current.Version}
		}

		// An ended game commits nothing further, connection moves
		// included; only idempotent replays get through above.
		if current.Phase == domain.PhaseEnded {
			return domain.Result{OK: false, Kind: domain.FailureGameEnded, Reason: "the game has ended"}
		}

		if !MayAct(current, mv.PlayerID, mv.Kind) {
			return domain.ResultFromFailure(domain.NotYourTurn("you may not act right now"))
		}

		next := current.Clone()
		draws, fail := p.engine.Apply(next, mv)
		if fail != nil {
			return domain.ResultFromFailure(fail)
		}

		next.Version = current.Version + 1
		next.LastMoveID = mv.ID

		if err := next.CheckInvariants(); err != nil {
			// A violated invariant after apply is a bug, never a bad
			// move. Discard the commit and freeze the game.
			p.freeze(mv.GameID)
			p.log.Error("invariant violation, game frozen",
				zap.String("game_id", mv.GameID),
				zap.String("move_id", mv.ID),
				zap.String("move_kind", string(mv.Kind)),
				zap.Error(err),
				zap.String("state", litter.Sdump(next)),
			)
			return domain.Result{OK: false, Kind: domain.FailureIllegalMove, Reason: "internal rule violation; game frozen"}
		}

		err = p.store.CompareAndSwap(mv.GameID, current.Version, next)
		if err == store.ErrStaleVersion {
			continue
		}
		if err != nil {
			p.log.Error("failed to commit game state", zap.String("game_id", mv.GameID), zap.Error(err))
			return domain.Result{OK: false, Kind: domain.FailureStaleVersion, Reason: "storage error; safe to retry"}
		}

		if err := p.store.AppendMove(mv.GameID, mv, next.Version); err != nil {
			p.log.Warn("failed to audit move", zap.String("game_id", mv.GameID), zap.Error(err))
		}

		p.notify(next, draws)
		return domain.Result{OK: true, Version: next.Version}
	}

	return domain.Result{OK: false, Kind: domain.FailureStaleVersion, Reason: "commit kept losing the version race"}
}

func (p *Pipeline) notify(g *domain.Game, draws []PrivateDraw) {
	p.sinkMu.RLock()
	sinks := p.sinks
	p.sinkMu.RUnlock()

	for _, sink := range sinks {
		sink(g, draws)
	}
}

func (p *Pipeline) lockFor(gameID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	lock, exists := p.gameLocks[gameID]
	if !exists {
		lock = &sync.Mutex{}
		p.gameLocks[gameID] = lock
	}
	return lock
}

func (p *Pipeline) freeze(gameID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frozen[gameID] = true
}

func (p *Pipeline) isFrozen(gameID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frozen[gameID]
}
