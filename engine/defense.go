package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lazharichir/queens/domain"
)

// Submitter is the slice of the pipeline the defense controller needs
type Submitter interface {
	Submit(ctx context.Context, mv domain.Move) domain.Result
}

// DefenseController turns pending-attack deadlines into moves. It is
// not part of any move handler: on expiry it submits a synthetic
// allow move from the target through the normal pipeline, so a real
// defense arriving first simply wins the version race.
type DefenseController struct {
	submit Submitter
	log    *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewDefenseController creates a controller with no armed timers
func NewDefenseController(log *zap.Logger) *DefenseController {
	return &DefenseController{
		log:    log,
		timers: make(map[string]*time.Timer),
	}
}

// Bind wires the controller to the pipeline it submits through.
// Separate from construction because the pipeline also observes the
// controller as a sink.
func (d *DefenseController) Bind(s Submitter) {
	d.submit = s
}

// Observe is the pipeline sink: one timer per game, re-armed whenever
// a commit opens a pending attack and dropped when none is open.
func (d *DefenseController) Observe(g *domain.Game, _ []PrivateDraw) {
	switch {
	case g.PendingKnight != nil:
		d.arm(g.ID, g.PendingKnight.TargetID, domain.MoveAllowKnightAttack, g.PendingKnight.Deadline)
	case g.PendingPotion != nil:
		d.arm(g.ID, g.PendingPotion.TargetID, domain.MoveAllowPotionAttack, g.PendingPotion.Deadline)
	default:
		d.disarm(g.ID)
	}
}

func (d *DefenseController) arm(gameID, targetID string, kind domain.MoveKind, deadline time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if old, exists := d.timers[gameID]; exists {
		old.Stop()
	}
	d.timers[gameID] = time.AfterFunc(time.Until(deadline), func() {
		d.expire(gameID, targetID, kind)
	})
}

func (d *DefenseController) disarm(gameID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if old, exists := d.timers[gameID]; exists {
		old.Stop()
		delete(d.timers, gameID)
	}
}

// expire resolves an unblocked attack by letting it land. If a defense
// committed in the meantime, the synthetic move loses validation or
// the version race and is dropped.
func (d *DefenseController) expire(gameID, targetID string, kind domain.MoveKind) {
	d.mu.Lock()
	delete(d.timers, gameID)
	d.mu.Unlock()

	mv := domain.Move{
		ID:          uuid.NewString(),
		GameID:      gameID,
		PlayerID:    targetID,
		Kind:        kind,
		SubmittedAt: time.Now().UnixMilli(),
	}

	result := d.submit.Submit(context.Background(), mv)
	if !result.OK {
		d.log.Debug("defense window expiry lost the race",
			zap.String("game_id", gameID),
			zap.String("kind", string(kind)),
			zap.String("reason", result.Reason),
		)
		return
	}
	d.log.Info("defense window expired, attack resolved",
		zap.String("game_id", gameID),
		zap.String("target_id", targetID),
		zap.Int64("version", result.Version),
	)
}

// Stop cancels every armed timer
func (d *DefenseController) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, timer := range d.timers {
		timer.Stop()
		delete(d.timers, id)
	}
}
