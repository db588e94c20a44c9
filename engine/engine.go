package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
)

// RNGFactory builds the PRNG used for dealing and reshuffles in one
// game at one version.
type RNGFactory func(gameID string, version int64) *rand.Rand

// Engine validates and applies moves. It never touches storage; the
// pipeline hands it a private clone of the state and commits the
// result.
type Engine struct {
	cfg Config
	rng RNGFactory
	now func() time.Time
}

// New creates an engine whose deck shuffles mix cryptographic
// randomness into the seed.
func New(cfg Config) *Engine {
	return &Engine{
		cfg: cfg,
		rng: func(gameID string, version int64) *rand.Rand {
			return cards.ProductionRNG(gameID)
		},
		now: time.Now,
	}
}

// NewDeterministic creates an engine whose shuffles derive only from
// {gameID, version}, so replays and tests reproduce exactly.
func NewDeterministic(cfg Config) *Engine {
	return &Engine{cfg: cfg, rng: cards.SeededRNG, now: time.Now}
}

// Config returns the engine's rules configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Apply validates the move against the state and, on success, mutates
// the state with its effects. Callers pass a clone; on failure the
// clone is discarded, so partial writes never leak.
func (e *Engine) Apply(g *domain.Game, mv domain.Move) ([]PrivateDraw, *domain.Failure) {
	rng := e.rng(g.ID, g.Version)

	var draws []PrivateDraw
	var fail *domain.Failure

	switch mv.Kind {
	case domain.MoveJoinGame:
		draws, fail = e.joinGame(g, mv)
	case domain.MoveLeaveGame:
		draws, fail = e.leaveGame(g, mv)
	case domain.MoveStartGame:
		draws, fail = e.startGame(g, mv, rng)
	case domain.MovePlayKing:
		draws, fail = e.playKing(g, mv, rng)
	case domain.MovePlayKnight:
		draws, fail = e.playKnight(g, mv, rng)
	case domain.MovePlayPotion:
		draws, fail = e.playPotion(g, mv, rng)
	case domain.MovePlayDragon:
		draws, fail = e.playDragon(g, mv, rng)
	case domain.MovePlayWand:
		draws, fail = e.playWand(g, mv, rng)
	case domain.MoveAllowKnightAttack:
		draws, fail = e.allowKnightAttack(g, mv, rng)
	case domain.MoveAllowPotionAttack:
		draws, fail = e.allowPotionAttack(g, mv, rng)
	case domain.MovePlayJester:
		draws, fail = e.playJester(g, mv, rng)
	case domain.MoveSelectQueenForJester:
		draws, fail = e.selectQueenForJester(g, mv, rng)
	case domain.MovePlayMathEquation:
		draws, fail = e.playMathEquation(g, mv, rng)
	case domain.MoveDiscardSingle:
		draws, fail = e.discardSingle(g, mv, rng)
	case domain.MoveDiscardPair:
		draws, fail = e.discardPair(g, mv, rng)
	case domain.MoveStageCards:
		draws, fail = e.stageCards(g, mv)
	case domain.MoveClearStaged:
		draws, fail = e.clearStaged(g, mv)
	case domain.MoveRoseQueenBonus:
		draws, fail = e.roseQueenBonus(g, mv, rng)
	case domain.MovePlayerConnected:
		draws, fail = e.setConnected(g, mv, true)
	case domain.MovePlayerDisconnected:
		draws, fail = e.setConnected(g, mv, false)
	default:
		return nil, domain.IllegalMove("unknown move kind %q", mv.Kind)
	}

	if fail != nil {
		return nil, fail
	}

	checkWin(g)
	if g.Phase == domain.PhaseEnded {
		e.clearPendingOnGameEnd(g)
	}

	return draws, nil
}

// clearPendingOnGameEnd drops any open interaction once a winner is
// set. A revealed jester card still lives in its record, so it moves
// to the discard pile to keep the card universe whole.
func (e *Engine) clearPendingOnGameEnd(g *domain.Game) {
	if g.JesterReveal != nil && g.JesterReveal.AwaitingQueenSelection {
		discard(g, g.JesterReveal.RevealedCard)
	}
	g.JesterReveal = nil
	g.PendingKnight = nil
	g.PendingPotion = nil
	g.RoseQueenBonus = nil
}

// act records the last committed action for observers
func (e *Engine) act(g *domain.Game, playerID string, kind domain.MoveKind, format string, args ...any) {
	g.LastAction = &domain.LastAction{
		PlayerID: playerID,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		At:       e.now(),
	}
}

// finishTurn refills the listed players' hands and advances play
func (e *Engine) finishTurn(g *domain.Game, rng *rand.Rand, refill ...string) []PrivateDraw {
	draws := e.refillAll(g, rng, refill...)
	AdvanceTurn(g)
	return draws
}

func (e *Engine) refillAll(g *domain.Game, rng *rand.Rand, playerIDs ...string) []PrivateDraw {
	var draws []PrivateDraw
	for _, id := range playerIDs {
		if d := RefillHand(g, rng, id); d != nil {
			draws = append(draws, *d)
		}
	}
	return draws
}

// wakeQueen moves a sleeping queen to the player. If waking it would
// give the player both the Cat and Dog Queens, the queen goes back to
// sleep instead and false is returned.
func wakeQueen(g *domain.Game, p *domain.Player, queenID string) (cards.Card, bool) {
	queen, idx := g.SleepingQueens.FindByID(queenID)
	if idx < 0 {
		return cards.Card{}, false
	}
	g.SleepingQueens = g.SleepingQueens.RemoveAt(idx)

	if queenConflicts(p, queen) {
		g.SleepingQueens = append(g.SleepingQueens, queen)
		return queen, false
	}

	p.Queens = append(p.Queens, queen)
	return queen, true
}

// queenConflicts checks the Cat/Dog mutual exclusion
func queenConflicts(p *domain.Player, queen cards.Card) bool {
	switch queen.ID {
	case cards.QueenCatID:
		return p.Queens.Contains(cards.QueenDogID)
	case cards.QueenDogID:
		return p.Queens.Contains(cards.QueenCatID)
	}
	return false
}
