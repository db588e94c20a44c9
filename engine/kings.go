package engine

import (
	"math/rand"

	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
)

// startGame deals five cards to every seated player, picks a random
// starting seat, and moves the game into the playing phase.
func (e *Engine) startGame(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	if g.Phase != domain.PhaseWaiting {
		return nil, domain.IllegalMove("game already started")
	}
	if len(g.Players) < e.cfg.MinPlayers {
		return nil, domain.IllegalMove("need at least %d players to start", e.cfg.MinPlayers)
	}

	g.SleepingQueens, g.DrawPile = cards.BuildInitialDeck(rng)
	g.Phase = domain.PhasePlaying
	g.CurrentPlayerIndex = rng.Intn(len(g.Players))

	var draws []PrivateDraw
	for i := range g.Players {
		if d := RefillHand(g, rng, g.Players[i].ID); d != nil {
			draws = append(draws, *d)
		}
	}

	starter := g.CurrentPlayer()
	e.act(g, mv.PlayerID, mv.Kind, "The game started; %s goes first", starter.Name)
	return draws, nil
}

// playKing discards a king and wakes the chosen sleeping queen. Waking
// the Rose Queen grants a one-shot bonus wake before the turn passes.
func (e *Engine) playKing(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)
	if len(mv.Cards) != 1 {
		return nil, domain.IllegalMove("playing a king takes exactly one card")
	}
	king := g.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if king == nil || king.Kind != cards.KindKing {
		return nil, domain.IllegalMove("card %s is not a king in your hand", mv.Cards[0])
	}
	if g.SleepingQueenByID(mv.TargetCardID) == nil {
		return nil, domain.IllegalMove("queen %s is not sleeping", mv.TargetCardID)
	}

	discard(g, removeFromHand(player, king.ID)...)
	clearStagedFor(g, player.ID)

	queen, gained := wakeQueen(g, player, mv.TargetCardID)
	if !gained {
		// Cat/Dog conflict: the queen went back to sleep, the king is
		// spent regardless.
		e.act(g, player.ID, mv.Kind, "%s tried to wake the %s, but she went back to sleep", player.Name, queen.Name)
		return e.finishTurn(g, rng, player.ID), nil
	}

	if queen.ID == cards.QueenRoseID && len(g.SleepingQueens) > 0 {
		g.RoseQueenBonus = &domain.RoseQueenBonus{PlayerID: player.ID, Pending: true}
		e.act(g, player.ID, mv.Kind, "%s woke the %s and may wake another queen", player.Name, queen.Name)
		return nil, nil
	}

	e.act(g, player.ID, mv.Kind, "%s woke the %s", player.Name, queen.Name)
	return e.finishTurn(g, rng, player.ID), nil
}

// roseQueenBonus wakes one more sleeping queen without consuming a
// card, then ends the turn. The bonus never chains.
func (e *Engine) roseQueenBonus(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	if g.RoseQueenBonus == nil || !g.RoseQueenBonus.Pending {
		return nil, domain.IllegalMove("no rose queen bonus pending")
	}
	if g.SleepingQueenByID(mv.TargetCardID) == nil {
		return nil, domain.IllegalMove("queen %s is not sleeping", mv.TargetCardID)
	}

	player := g.PlayerByID(mv.PlayerID)
	g.RoseQueenBonus = nil

	queen, gained := wakeQueen(g, player, mv.TargetCardID)
	if !gained {
		e.act(g, player.ID, mv.Kind, "%s tried to wake the %s, but she went back to sleep", player.Name, queen.Name)
	} else {
		e.act(g, player.ID, mv.Kind, "%s woke the %s as a bonus", player.Name, queen.Name)
	}
	return e.finishTurn(g, rng, player.ID), nil
}
