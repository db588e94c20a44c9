package engine

import (
	"math/rand"

	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
)

// playJester discards a jester and reveals the top card of the draw
// pile. A power card goes straight into the player's hand and they
// play again; a number card counts that many seats clockwise, and the
// counted-to player picks a sleeping queen.
func (e *Engine) playJester(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)
	if len(mv.Cards) != 1 {
		return nil, domain.IllegalMove("playing a jester takes exactly one card")
	}
	jester := g.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if jester == nil || jester.Kind != cards.KindJester {
		return nil, domain.IllegalMove("card %s is not a jester in your hand", mv.Cards[0])
	}

	discard(g, removeFromHand(player, jester.ID)...)
	clearStagedFor(g, player.ID)

	revealed, ok := DrawOne(g, rng)
	if !ok {
		// Deck fully drained: the jester is spent with nothing to show.
		e.act(g, player.ID, mv.Kind, "%s played a jester, but the deck is empty", player.Name)
		return e.finishTurn(g, rng, player.ID), nil
	}

	if revealed.IsPowerCard() {
		player.Hand = append(player.Hand, revealed)
		e.act(g, player.ID, mv.Kind, "%s's jester revealed a power card; they play again", player.Name)
		return []PrivateDraw{{PlayerID: player.ID, Cards: cards.Stack{revealed}}}, nil
	}

	if len(g.SleepingQueens) == 0 {
		// Nobody can pick a queen, so the reveal fizzles.
		discard(g, revealed)
		e.act(g, player.ID, mv.Kind, "%s's jester revealed a %d, but no queens are asleep", player.Name, revealed.Value)
		return e.finishTurn(g, rng, player.ID), nil
	}

	// Count the revealed value clockwise, the jester player being one.
	n := len(g.Players)
	targetIdx := (g.CurrentPlayerIndex + revealed.Value - 1) % n
	target := g.Players[targetIdx]

	g.JesterReveal = &domain.JesterReveal{
		OriginalPlayerID:       player.ID,
		RevealedCard:           revealed,
		TargetPlayerID:         target.ID,
		AwaitingQueenSelection: true,
	}
	e.act(g, player.ID, mv.Kind, "%s's jester revealed a %d; %s picks a sleeping queen", player.Name, revealed.Value, target.Name)
	return nil, nil
}

// selectQueenForJester resolves the jester count: the counted-to
// player wakes the chosen queen. The Rose Queen bonus never applies
// here; only a king grants it.
func (e *Engine) selectQueenForJester(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	reveal := g.JesterReveal
	if reveal == nil || !reveal.AwaitingQueenSelection {
		return nil, domain.IllegalMove("no jester reveal awaiting selection")
	}
	if g.SleepingQueenByID(mv.TargetCardID) == nil {
		return nil, domain.IllegalMove("queen %s is not sleeping", mv.TargetCardID)
	}

	target := g.PlayerByID(reveal.TargetPlayerID)
	g.JesterReveal = nil
	discard(g, reveal.RevealedCard)

	queen, gained := wakeQueen(g, target, mv.TargetCardID)
	if !gained {
		e.act(g, target.ID, mv.Kind, "%s tried to wake the %s, but she went back to sleep", target.Name, queen.Name)
	} else {
		e.act(g, target.ID, mv.Kind, "%s woke the %s", target.Name, queen.Name)
	}

	// The jester player's hand is one short; the turn is still theirs
	// to pass on.
	return e.finishTurn(g, rng, reveal.OriginalPlayerID), nil
}
