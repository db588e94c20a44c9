package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
	"github.com/lazharichir/queens/engine"
)

func projectableGame() *domain.Game {
	g := domain.NewGame("g1", "ABCD")
	g.Phase = domain.PhasePlaying
	g.Version = 7
	g.SleepingQueens = cards.NewQueens()

	g.Players = []domain.Player{
		domain.NewPlayer("p1", "Alice", 0),
		domain.NewPlayer("p2", "Bob", 1),
	}
	g.Players[0].Hand = cards.Stack{
		{ID: "king-1", Kind: cards.KindKing, Name: "Fire King"},
		{ID: "number-3-1", Kind: cards.KindNumber, Value: 3},
	}
	g.Players[1].Hand = cards.Stack{
		{ID: "number-7-1", Kind: cards.KindNumber, Value: 7},
	}

	q, idx := g.SleepingQueens.FindByID("queen-heart")
	g.SleepingQueens = g.SleepingQueens.RemoveAt(idx)
	g.Players[1].Queens = append(g.Players[1].Queens, q)

	g.DrawPile = cards.Stack{
		{ID: "number-9-1", Kind: cards.KindNumber, Value: 9},
		{ID: "number-9-2", Kind: cards.KindNumber, Value: 9},
	}
	g.DiscardPile = cards.Stack{
		{ID: "jester-1", Kind: cards.KindJester},
		{ID: "knight-1", Kind: cards.KindKnight},
	}
	return g
}

func TestPublicViewHidesHands(t *testing.T) {
	g := projectableGame()
	view := Public(g)

	assert.Equal(t, "g1", view.ID)
	assert.Equal(t, int64(7), view.Version)
	assert.Equal(t, "p1", view.CurrentPlayerID)

	require.Len(t, view.Players, 2)
	for _, pv := range view.Players {
		assert.Nil(t, pv.Hand, "public view leaked a hand")
	}
	assert.Equal(t, 2, view.Players[0].HandCount)
	assert.Equal(t, 1, view.Players[1].HandCount)
	assert.Equal(t, 20, view.Players[1].Score)
}

func TestPublicViewHidesPileOrder(t *testing.T) {
	g := projectableGame()
	view := Public(g)

	assert.Equal(t, 2, view.DrawCount)
	assert.Equal(t, 2, view.DiscardCount)
	require.NotNil(t, view.DiscardTop)
	assert.Equal(t, "knight-1", view.DiscardTop.ID)
	// Sleeping queens keep their identity.
	assert.Len(t, view.SleepingQueens, 11)
}

func TestForPlayerIncludesOwnHandOnly(t *testing.T) {
	g := projectableGame()
	view := ForPlayer(g, "p2")

	require.Len(t, view.Players, 2)
	assert.Nil(t, view.Players[0].Hand)
	require.Len(t, view.Players[1].Hand, 1)
	assert.Equal(t, "number-7-1", view.Players[1].Hand[0].ID)
}

func TestViewIsDetachedFromState(t *testing.T) {
	g := projectableGame()
	view := ForPlayer(g, "p2")

	view.SleepingQueens[0].ID = "changed"
	view.Players[1].Hand[0].ID = "changed"

	assert.NotEqual(t, "changed", g.SleepingQueens[0].ID)
	assert.Equal(t, "number-7-1", g.Players[1].Hand[0].ID)
}

func TestPendingRecordsAreVisible(t *testing.T) {
	g := projectableGame()
	g.PendingKnight = &domain.PendingAttack{AttackerID: "p1", TargetID: "p2", TargetQueenID: "queen-heart"}

	view := Public(g)
	require.NotNil(t, view.PendingKnight)
	assert.Equal(t, "queen-heart", view.PendingKnight.TargetQueenID)
}

func TestDrawEvents(t *testing.T) {
	g := projectableGame()
	draws := []engine.PrivateDraw{
		{PlayerID: "p1", Cards: cards.Stack{{ID: "number-9-1", Kind: cards.KindNumber, Value: 9}}},
		{PlayerID: "p2", Cards: cards.Stack{{ID: "number-9-2", Kind: cards.KindNumber, Value: 9}}},
	}

	events := DrawEvents(g, draws)
	require.Len(t, events, 2)
	assert.Equal(t, "p1", events[0].Recipient)
	assert.Equal(t, "g1", events[0].GameID)
	assert.Equal(t, int64(7), events[0].Version)
	require.Len(t, events[1].DrawnCards, 1)
	assert.Equal(t, "number-9-2", events[1].DrawnCards[0].ID)
}
