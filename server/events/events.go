package events

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/lazharichir/queens/domain"
	"github.com/lazharichir/queens/engine"
	"github.com/lazharichir/queens/projection"
	"github.com/lazharichir/queens/server/connection"
)

// Envelope wraps an outgoing message with its name for clients
type Envelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Message names pushed to clients.
const (
	NameGameState    = "GAME_STATE"
	NamePrivateState = "PRIVATE_STATE"
	NameCardsDrawn   = "CARDS_DRAWN"
	NameMoveResult   = "MOVE_RESULT"
	NameError        = "ERROR"
)

// MarshalEnvelope wraps a payload for the wire
func MarshalEnvelope(name string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Name: name, Payload: raw})
}

// Dispatcher pushes committed states to clients: the public projection
// to everyone at the game, drawn cards privately to their owner.
type Dispatcher struct {
	connMgr *connection.Manager
	log     *zap.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, log *zap.Logger) *Dispatcher {
	return &Dispatcher{connMgr: connMgr, log: log}
}

// HandleCommit is registered as a pipeline sink
func (d *Dispatcher) HandleCommit(g *domain.Game, draws []engine.PrivateDraw) {
	if data, ok := d.envelope(NameGameState, projection.Public(g)); ok {
		d.connMgr.SendToGame(g.ID, data)
	}

	for _, ev := range projection.DrawEvents(g, draws) {
		if data, ok := d.envelope(NameCardsDrawn, ev); ok {
			d.connMgr.SendToPlayer(ev.Recipient, data)
		}
	}
}

func (d *Dispatcher) envelope(name string, payload any) ([]byte, bool) {
	data, err := MarshalEnvelope(name, payload)
	if err != nil {
		d.log.Error("failed to marshal event envelope", zap.String("name", name), zap.Error(err))
		return nil, false
	}
	return data, true
}
