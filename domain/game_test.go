package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/queens/cards"
)

// fullGame builds a playing-phase game holding the complete card
// universe: two seated players with five cards each, the rest split
// between the piles.
func fullGame() *Game {
	g := NewGame("game-test", "ABCD")
	g.Phase = PhasePlaying
	g.SleepingQueens = cards.NewQueens()

	deck := cards.NewDrawDeck()
	g.Players = []Player{
		NewPlayer("p1", "Alice", 0),
		NewPlayer("p2", "Bob", 1),
	}
	g.Players[0].Hand = deck[:5].Clone()
	g.Players[1].Hand = deck[5:10].Clone()
	g.DrawPile = deck[10:].Clone()

	return g
}

func TestCloneIsDeep(t *testing.T) {
	g := fullGame()
	g.PendingKnight = &PendingAttack{AttackerID: "p1", TargetID: "p2", TargetQueenID: "queen-rose"}
	g.StagedCards["p1"] = g.Players[0].Hand[:2].Clone()

	clone := g.Clone()
	clone.Players[0].Hand[0].ID = "changed"
	clone.SleepingQueens[0].ID = "changed"
	clone.PendingKnight.AttackerID = "changed"
	clone.StagedCards["p1"][0].ID = "changed"

	assert.NotEqual(t, "changed", g.Players[0].Hand[0].ID)
	assert.NotEqual(t, "changed", g.SleepingQueens[0].ID)
	assert.Equal(t, "p1", g.PendingKnight.AttackerID)
	assert.NotEqual(t, "changed", g.StagedCards["p1"][0].ID)
}

func TestPlayerScore(t *testing.T) {
	p := NewPlayer("p1", "Alice", 0)
	p.Queens = cards.Stack{
		{ID: "queen-rose", Kind: cards.KindQueen, Points: 5},
		{ID: "queen-heart", Kind: cards.KindQueen, Points: 20},
	}
	assert.Equal(t, 25, p.Score())
}

func TestOwnerOfQueen(t *testing.T) {
	g := fullGame()
	queen, idx := g.SleepingQueens.FindByID("queen-heart")
	require.GreaterOrEqual(t, idx, 0)
	g.SleepingQueens = g.SleepingQueens.RemoveAt(idx)
	g.Players[1].Queens = append(g.Players[1].Queens, queen)

	owner, found := g.OwnerOfQueen("queen-heart")
	require.NotNil(t, owner)
	assert.Equal(t, "p2", owner.ID)
	assert.Equal(t, 20, found.Points)

	owner, _ = g.OwnerOfQueen("queen-rose")
	assert.Nil(t, owner)
}

func TestCheckInvariants(t *testing.T) {
	t.Run("complete game passes", func(t *testing.T) {
		assert.NoError(t, fullGame().CheckInvariants())
	})

	t.Run("waiting games are exempt", func(t *testing.T) {
		g := NewGame("game-test", "ABCD")
		assert.NoError(t, g.CheckInvariants())
	})

	t.Run("duplicate card", func(t *testing.T) {
		g := fullGame()
		g.DiscardPile = append(g.DiscardPile, g.Players[0].Hand[0])
		assert.Error(t, g.CheckInvariants())
	})

	t.Run("missing card", func(t *testing.T) {
		g := fullGame()
		g.DrawPile = g.DrawPile.RemoveAt(0)
		assert.Error(t, g.CheckInvariants())
	})

	t.Run("oversized hand", func(t *testing.T) {
		g := fullGame()
		g.Players[0].Hand = append(g.Players[0].Hand, g.DrawPile[0])
		g.DrawPile = g.DrawPile.RemoveAt(0)
		assert.Error(t, g.CheckInvariants())
	})

	t.Run("cat and dog together", func(t *testing.T) {
		g := fullGame()
		for _, id := range []string{cards.QueenCatID, cards.QueenDogID} {
			q, idx := g.SleepingQueens.FindByID(id)
			g.SleepingQueens = g.SleepingQueens.RemoveAt(idx)
			g.Players[0].Queens = append(g.Players[0].Queens, q)
		}
		assert.Error(t, g.CheckInvariants())
	})

	t.Run("two pending interactions", func(t *testing.T) {
		g := fullGame()
		g.PendingKnight = &PendingAttack{AttackerID: "p1", TargetID: "p2"}
		g.RoseQueenBonus = &RoseQueenBonus{PlayerID: "p1", Pending: true}
		assert.Error(t, g.CheckInvariants())
	})

	t.Run("staged card not in hand", func(t *testing.T) {
		g := fullGame()
		g.StagedCards["p1"] = cards.Stack{g.Players[1].Hand[0]}
		assert.Error(t, g.CheckInvariants())
	})

	t.Run("ended without winner", func(t *testing.T) {
		g := fullGame()
		g.Phase = PhaseEnded
		assert.Error(t, g.CheckInvariants())
	})

	t.Run("jester reveal holds the revealed card", func(t *testing.T) {
		g := fullGame()
		revealed := g.DrawPile[0]
		g.DrawPile = g.DrawPile.RemoveAt(0)
		g.JesterReveal = &JesterReveal{
			OriginalPlayerID:       "p1",
			RevealedCard:           revealed,
			TargetPlayerID:         "p2",
			AwaitingQueenSelection: true,
		}
		assert.NoError(t, g.CheckInvariants())
	})
}

func TestGameSerializationRoundTrip(t *testing.T) {
	g := fullGame()
	g.Version = 12
	g.LastMoveID = "mv-12"
	g.JesterReveal = &JesterReveal{
		OriginalPlayerID:       "p1",
		RevealedCard:           cards.Card{ID: "number-3-1", Kind: cards.KindNumber, Value: 3},
		TargetPlayerID:         "p2",
		AwaitingQueenSelection: true,
	}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var back Game
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, g.Version, back.Version)
	assert.Equal(t, g.LastMoveID, back.LastMoveID)
	assert.Equal(t, len(g.Players), len(back.Players))
	assert.Equal(t, g.Players[0].Hand, back.Players[0].Hand)
	require.NotNil(t, back.JesterReveal)
	assert.Equal(t, "number-3-1", back.JesterReveal.RevealedCard.ID)
}

func TestMoveKindInternal(t *testing.T) {
	assert.True(t, MovePlayerConnected.Internal())
	assert.True(t, MovePlayerDisconnected.Internal())
	assert.False(t, MovePlayKing.Internal())
	assert.False(t, MoveJoinGame.Internal())
}
