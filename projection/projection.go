// Package projection builds the observer-facing views of committed
// game states: a public view that hides hand contents and draw-pile
// order, and per-player private events for drawn cards.
package projection

import (
	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
	"github.com/lazharichir/queens/engine"
)

// PlayerView is a player as observers see them: hand contents are
// reduced to a count except for the viewer's own seat.
type PlayerView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Position  int         `json:"position"`
	HandCount int         `json:"handCount"`
	Hand      cards.Stack `json:"hand,omitempty"`
	Queens    cards.Stack `json:"queens"`
	Score     int         `json:"score"`
	Connected bool        `json:"connected"`
}

// GameView is the broadcast projection of a committed state. Sleeping
// queens keep their identity: the engine exposes which queens are
// asleep, as the physical game does.
type GameView struct {
	ID              string                 `json:"id"`
	RoomCode        string                 `json:"roomCode"`
	Version         int64                  `json:"version"`
	Phase           domain.Phase           `json:"phase"`
	Players         []PlayerView           `json:"players"`
	CurrentPlayerID string                 `json:"currentPlayerId,omitempty"`
	SleepingQueens  cards.Stack            `json:"sleepingQueens"`
	DrawCount       int                    `json:"drawCount"`
	DiscardCount    int                    `json:"discardCount"`
	DiscardTop      *cards.Card            `json:"discardTop,omitempty"`
	StagedCards     map[string]cards.Stack `json:"stagedCards,omitempty"`
	PendingKnight   *domain.PendingAttack  `json:"pendingKnightAttack,omitempty"`
	PendingPotion   *domain.PendingAttack  `json:"pendingPotionAttack,omitempty"`
	JesterReveal    *domain.JesterReveal   `json:"jesterReveal,omitempty"`
	RoseQueenBonus  *domain.RoseQueenBonus `json:"roseQueenBonus,omitempty"`
	LastAction      *domain.LastAction     `json:"lastAction,omitempty"`
	WinnerID        string                 `json:"winnerId,omitempty"`
}

// DrawEvent is the private notification for cards one player drew
// during the just-committed move.
type DrawEvent struct {
	GameID     string      `json:"gameId"`
	Version    int64       `json:"version"`
	Recipient  string      `json:"recipient"`
	DrawnCards cards.Stack `json:"drawnCards"`
}

// Public projects the state for broadcast: no hand contents, no
// draw-pile order.
func Public(g *domain.Game) GameView {
	return project(g, "")
}

// ForPlayer projects the state for one player: the public view plus
// their own hand.
func ForPlayer(g *domain.Game, playerID string) GameView {
	return project(g, playerID)
}

func project(g *domain.Game, viewerID string) GameView {
	view := GameView{
		ID:             g.ID,
		RoomCode:       g.RoomCode,
		Version:        g.Version,
		Phase:          g.Phase,
		SleepingQueens: g.SleepingQueens.Clone(),
		DrawCount:      len(g.DrawPile),
		DiscardCount:   len(g.DiscardPile),
		PendingKnight:  g.PendingKnight,
		PendingPotion:  g.PendingPotion,
		JesterReveal:   g.JesterReveal,
		RoseQueenBonus: g.RoseQueenBonus,
		LastAction:     g.LastAction,
		WinnerID:       g.WinnerID,
	}

	if current := g.CurrentPlayer(); current != nil {
		view.CurrentPlayerID = current.ID
	}
	if len(g.DiscardPile) > 0 {
		top := g.DiscardPile[len(g.DiscardPile)-1]
		view.DiscardTop = &top
	}
	if len(g.StagedCards) > 0 {
		view.StagedCards = make(map[string]cards.Stack, len(g.StagedCards))
		for id, staged := range g.StagedCards {
			view.StagedCards[id] = staged.Clone()
		}
	}

	view.Players = make([]PlayerView, 0, len(g.Players))
	for _, p := range g.Players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Position:  p.Position,
			HandCount: len(p.Hand),
			Queens:    p.Queens.Clone(),
			Score:     p.Score(),
			Connected: p.Connected,
		}
		if p.ID == viewerID {
			pv.Hand = p.Hand.Clone()
		}
		view.Players = append(view.Players, pv)
	}

	return view
}

// DrawEvents converts the engine's private draws into per-player events
func DrawEvents(g *domain.Game, draws []engine.PrivateDraw) []DrawEvent {
	events := make([]DrawEvent, 0, len(draws))
	for _, d := range draws {
		events = append(events, DrawEvent{
			GameID:     g.ID,
			Version:    g.Version,
			Recipient:  d.PlayerID,
			DrawnCards: d.Cards.Clone(),
		})
	}
	return events
}
