package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
)

func testEngine() *Engine {
	return NewDeterministic(DefaultConfig())
}

func num(value, copyNo int) cards.Card {
	return cards.Card{
		ID:    fmt.Sprintf("number-%d-%d", value, copyNo),
		Kind:  cards.KindNumber,
		Value: value,
	}
}

// newPlayingGame builds a two-player game mid-play with all twelve
// queens asleep. Hands and piles are set per test.
func newPlayingGame() *domain.Game {
	g := domain.NewGame("game-test", "ABCD")
	g.Phase = domain.PhasePlaying
	g.SleepingQueens = cards.NewQueens()
	g.Players = []domain.Player{
		domain.NewPlayer("p1", "Alice", 0),
		domain.NewPlayer("p2", "Bob", 1),
	}
	return g
}

// takeQueen moves a sleeping queen to the player, bypassing the rules
func takeQueen(t *testing.T, g *domain.Game, playerID, queenID string) {
	t.Helper()
	q, idx := g.SleepingQueens.FindByID(queenID)
	require.GreaterOrEqual(t, idx, 0, "queen %s is not sleeping", queenID)
	g.SleepingQueens = g.SleepingQueens.RemoveAt(idx)
	g.PlayerByID(playerID).Queens = append(g.PlayerByID(playerID).Queens, q)
}

func TestStartGame(t *testing.T) {
	eng := testEngine()
	g := domain.NewGame("game-test", "ABCD")
	g.Players = []domain.Player{
		domain.NewPlayer("p1", "Alice", 0),
		domain.NewPlayer("p2", "Bob", 1),
	}

	draws, fail := eng.Apply(g, domain.Move{ID: "m1", PlayerID: "p1", Kind: domain.MoveStartGame})
	require.Nil(t, fail)

	assert.Equal(t, domain.PhasePlaying, g.Phase)
	assert.Len(t, g.SleepingQueens, 12)
	assert.Len(t, g.DrawPile, 57)
	for _, p := range g.Players {
		assert.Len(t, p.Hand, 5)
	}
	assert.Len(t, draws, 2)

	current := g.CurrentPlayer()
	require.NotNil(t, current)
}

func TestStartGameNeedsEnoughPlayers(t *testing.T) {
	eng := testEngine()
	g := domain.NewGame("game-test", "ABCD")
	g.Players = []domain.Player{domain.NewPlayer("p1", "Alice", 0)}

	_, fail := eng.Apply(g, domain.Move{ID: "m1", PlayerID: "p1", Kind: domain.MoveStartGame})
	require.NotNil(t, fail)
	assert.Equal(t, domain.FailureIllegalMove, fail.Kind)
}

func TestPlayKingWakesQueen(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()
	g.Players[0].Hand = cards.Stack{
		{ID: "king-1", Kind: cards.KindKing, Name: "Fire King"},
		num(1, 1), num(2, 1), num(3, 1), num(4, 1),
	}
	g.DrawPile = cards.Stack{num(9, 1), num(9, 2)}

	draws, fail := eng.Apply(g, domain.Move{
		ID:           "m1",
		PlayerID:     "p1",
		Kind:         domain.MovePlayKing,
		Cards:        []string{"king-1"},
		TargetCardID: "queen-daisy",
	})
	require.Nil(t, fail)

	assert.True(t, g.Players[0].Queens.Contains("queen-daisy"))
	assert.Len(t, g.SleepingQueens, 11)
	assert.True(t, g.DiscardPile.Contains("king-1"))
	assert.Len(t, g.Players[0].Hand, 5)
	assert.Equal(t, 1, g.CurrentPlayerIndex)
	require.Len(t, draws, 1)
	assert.Equal(t, "p1", draws[0].PlayerID)
	assert.Len(t, draws[0].Cards, 1)
}

func TestPlayKingRejectsNonKing(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()
	g.Players[0].Hand = cards.Stack{num(1, 1)}

	_, fail := eng.Apply(g, domain.Move{
		ID:           "m1",
		PlayerID:     "p1",
		Kind:         domain.MovePlayKing,
		Cards:        []string{"number-1-1"},
		TargetCardID: "queen-daisy",
	})
	require.NotNil(t, fail)
	assert.Equal(t, domain.FailureIllegalMove, fail.Kind)
	assert.Len(t, g.Players[0].Hand, 1)
}

func TestRoseQueenBonus(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()
	g.Players[0].Hand = cards.Stack{
		{ID: "king-1", Kind: cards.KindKing, Name: "Fire King"},
		num(1, 1), num(2, 1), num(3, 1), num(4, 1),
	}
	g.DrawPile = cards.Stack{num(9, 1), num(9, 2)}

	_, fail := eng.Apply(g, domain.Move{
		ID:           "m1",
		PlayerID:     "p1",
		Kind:         domain.MovePlayKing,
		Cards:        []string{"king-1"},
		TargetCardID: cards.QueenRoseID,
	})
	require.Nil(t, fail)

	// The turn holds until the bonus resolves.
	require.NotNil(t, g.RoseQueenBonus)
	assert.True(t, g.RoseQueenBonus.Pending)
	assert.Equal(t, "p1", g.RoseQueenBonus.PlayerID)
	assert.Equal(t, 0, g.CurrentPlayerIndex)
	assert.Len(t, g.Players[0].Hand, 4)

	_, fail = eng.Apply(g, domain.Move{
		ID:           "m2",
		PlayerID:     "p1",
		Kind:         domain.MoveRoseQueenBonus,
		TargetCardID: "queen-daisy",
	})
	require.Nil(t, fail)

	assert.Nil(t, g.RoseQueenBonus)
	assert.True(t, g.Players[0].Queens.Contains(cards.QueenRoseID))
	assert.True(t, g.Players[0].Queens.Contains("queen-daisy"))
	assert.Len(t, g.Players[0].Hand, 5)
	assert.Equal(t, 1, g.CurrentPlayerIndex)
}

func TestRoseQueenBonusCancelledByDiscard(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()
	g.Players[0].Hand = cards.Stack{
		{ID: "king-1", Kind: cards.KindKing, Name: "Fire King"},
		num(1, 1), num(2, 1), num(3, 1), num(4, 1),
	}
	g.DrawPile = cards.Stack{num(9, 1), num(9, 2)}

	_, fail := eng.Apply(g, domain.Move{
		ID:           "m1",
		PlayerID:     "p1",
		Kind:         domain.MovePlayKing,
		Cards:        []string{"king-1"},
		TargetCardID: cards.QueenRoseID,
	})
	require.Nil(t, fail)
	require.NotNil(t, g.RoseQueenBonus)

	_, fail = eng.Apply(g, domain.Move{
		ID:       "m2",
		PlayerID: "p1",
		Kind:     domain.MoveDiscardSingle,
		Cards:    []string{"number-1-1"},
	})
	require.Nil(t, fail)

	assert.Nil(t, g.RoseQueenBonus)
	assert.Equal(t, 1, g.CurrentPlayerIndex)
	assert.Len(t, g.SleepingQueens, 11)
}

func TestCatDogConflictOnKing(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()
	takeQueen(t, g, "p1", cards.QueenCatID)
	g.Players[0].Hand = cards.Stack{
		{ID: "king-1", Kind: cards.KindKing, Name: "Fire King"},
		num(1, 1), num(2, 1), num(3, 1), num(4, 1),
	}
	g.DrawPile = cards.Stack{num(9, 1)}

	_, fail := eng.Apply(g, domain.Move{
		ID:           "m1",
		PlayerID:     "p1",
		Kind:         domain.MovePlayKing,
		Cards:        []string{"king-1"},
		TargetCardID: cards.QueenDogID,
	})
	require.Nil(t, fail)

	// The king is spent, the Dog Queen went back to sleep.
	assert.False(t, g.Players[0].Queens.Contains(cards.QueenDogID))
	assert.True(t, g.SleepingQueens.Contains(cards.QueenDogID))
	assert.True(t, g.DiscardPile.Contains("king-1"))
	assert.Equal(t, 1, g.CurrentPlayerIndex)
}

func TestWinByQueenCount(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()
	takeQueen(t, g, "p1", cards.QueenRoseID)
	takeQueen(t, g, "p1", "queen-daisy")
	takeQueen(t, g, "p1", "queen-pansy")
	takeQueen(t, g, "p1", "queen-sunflower")
	g.Players[0].Hand = cards.Stack{
		{ID: "king-1", Kind: cards.KindKing, Name: "Fire King"},
		num(1, 1), num(2, 1), num(3, 1), num(4, 1),
	}
	g.DrawPile = cards.Stack{num(9, 1)}

	_, fail := eng.Apply(g, domain.Move{
		ID:           "m1",
		PlayerID:     "p1",
		Kind:         domain.MovePlayKing,
		Cards:        []string{"king-1"},
		TargetCardID: "queen-rainbow",
	})
	require.Nil(t, fail)

	assert.Equal(t, domain.PhaseEnded, g.Phase)
	assert.Equal(t, "p1", g.WinnerID)
}

func TestWinByPoints(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()
	takeQueen(t, g, "p1", "queen-heart")
	takeQueen(t, g, "p1", "queen-moon")
	g.Players[0].Hand = cards.Stack{
		{ID: "king-1", Kind: cards.KindKing, Name: "Fire King"},
		num(1, 1), num(2, 1), num(3, 1), num(4, 1),
	}
	g.DrawPile = cards.Stack{num(9, 1)}

	_, fail := eng.Apply(g, domain.Move{
		ID:           "m1",
		PlayerID:     "p1",
		Kind:         domain.MovePlayKing,
		Cards:        []string{"king-1"},
		TargetCardID: cards.QueenCatID,
	})
	require.Nil(t, fail)

	// 20 + 20 + 15 points crosses the two-player threshold of 50.
	assert.Equal(t, domain.PhaseEnded, g.Phase)
	assert.Equal(t, "p1", g.WinnerID)
	assert.Equal(t, 55, g.Players[0].Score())
}

func TestDisconnectBelowMinimumEndsGame(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()
	takeQueen(t, g, "p1", "queen-heart")

	_, fail := eng.Apply(g, domain.Move{
		ID:       "m1",
		PlayerID: "p2",
		Kind:     domain.MovePlayerDisconnected,
	})
	require.Nil(t, fail)

	assert.Equal(t, domain.PhaseEnded, g.Phase)
	assert.Equal(t, "p1", g.WinnerID)
	assert.False(t, g.PlayerByID("p2").Connected)
}

func TestUnknownMoveKind(t *testing.T) {
	eng := testEngine()
	g := newPlayingGame()

	_, fail := eng.Apply(g, domain.Move{ID: "m1", PlayerID: "p1", Kind: "SHUFFLE_HARDER"})
	require.NotNil(t, fail)
	assert.Equal(t, domain.FailureIllegalMove, fail.Kind)
}
