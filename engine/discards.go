package engine

import (
	"math/rand"

	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
)

// playMathEquation discards three or more number cards forming a valid
// addition equation.
func (e *Engine) playMathEquation(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)

	cardIDs := mv.Cards
	if mv.Equation != nil && len(mv.Equation.CardIDs) > 0 {
		cardIDs = mv.Equation.CardIDs
	}
	if len(cardIDs) < 3 {
		return nil, domain.IllegalMove("an equation takes at least three number cards")
	}

	seen := map[string]bool{}
	values := make([]int, 0, len(cardIDs))
	for _, id := range cardIDs {
		if seen[id] {
			return nil, domain.IllegalMove("card %s is listed twice", id)
		}
		seen[id] = true
		c := g.FindCardInHand(mv.PlayerID, id)
		if c == nil {
			return nil, domain.IllegalMove("card %s is not in your hand", id)
		}
		if !c.IsNumber() {
			return nil, domain.IllegalMove("card %s is not a number card", id)
		}
		values = append(values, c.Value)
	}
	if !ValidEquation(values) {
		return nil, domain.IllegalMove("those numbers do not form an addition equation")
	}

	discard(g, removeFromHand(player, cardIDs...)...)
	clearStagedFor(g, player.ID)

	e.act(g, player.ID, mv.Kind, "%s played a %d-card equation", player.Name, len(cardIDs))
	return e.finishTurn(g, rng, player.ID), nil
}

// discardSingle discards any one card. While a Rose Queen bonus is
// pending for the player, discarding cancels the bonus.
func (e *Engine) discardSingle(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)
	if len(mv.Cards) != 1 {
		return nil, domain.IllegalMove("discard exactly one card")
	}
	c := g.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if c == nil {
		return nil, domain.IllegalMove("card %s is not in your hand", mv.Cards[0])
	}

	if g.RoseQueenBonus != nil && g.RoseQueenBonus.Pending && g.RoseQueenBonus.PlayerID == player.ID {
		g.RoseQueenBonus = nil
	}

	discard(g, removeFromHand(player, c.ID)...)
	clearStagedFor(g, player.ID)

	e.act(g, player.ID, mv.Kind, "%s discarded a card", player.Name)
	return e.finishTurn(g, rng, player.ID), nil
}

// discardPair discards two number cards of equal value
func (e *Engine) discardPair(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)
	if len(mv.Cards) != 2 {
		return nil, domain.IllegalMove("discard exactly two cards")
	}
	first := g.FindCardInHand(mv.PlayerID, mv.Cards[0])
	second := g.FindCardInHand(mv.PlayerID, mv.Cards[1])
	if first == nil || second == nil || first.ID == second.ID {
		return nil, domain.IllegalMove("both cards must be in your hand")
	}
	if !first.IsNumber() || !second.IsNumber() || first.Value != second.Value {
		return nil, domain.IllegalMove("a pair means two number cards of equal value")
	}

	discard(g, removeFromHand(player, first.ID, second.ID)...)
	clearStagedFor(g, player.ID)

	e.act(g, player.ID, mv.Kind, "%s discarded a pair of %ds", player.Name, first.Value)
	return e.finishTurn(g, rng, player.ID), nil
}

// stageCards publishes which cards the player intends to play. The
// cards stay in hand until the actual play commits.
func (e *Engine) stageCards(g *domain.Game, mv domain.Move) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)
	if len(mv.Cards) == 0 {
		return nil, domain.IllegalMove("stage at least one card")
	}

	staged := cards.Stack{}
	for _, id := range mv.Cards {
		c := g.FindCardInHand(mv.PlayerID, id)
		if c == nil {
			return nil, domain.IllegalMove("card %s is not in your hand", id)
		}
		staged = append(staged, *c)
	}

	if g.StagedCards == nil {
		g.StagedCards = map[string]cards.Stack{}
	}
	g.StagedCards[player.ID] = staged
	e.act(g, player.ID, mv.Kind, "%s is considering %d cards", player.Name, len(staged))
	return nil, nil
}

// clearStaged withdraws the player's own staged cards
func (e *Engine) clearStaged(g *domain.Game, mv domain.Move) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)
	if player == nil {
		return nil, domain.IllegalMove("no such player %s", mv.PlayerID)
	}
	clearStagedFor(g, player.ID)
	e.act(g, player.ID, mv.Kind, "%s put their cards back", player.Name)
	return nil, nil
}

// setConnected flips a player's connection flag. Dropping below the
// minimum player count while playing ends the game for the remaining
// leader.
func (e *Engine) setConnected(g *domain.Game, mv domain.Move, connected bool) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)
	if player == nil {
		return nil, domain.IllegalMove("no such player %s", mv.PlayerID)
	}
	player.Connected = connected

	if g.Phase == domain.PhasePlaying && g.ConnectedCount() < e.cfg.MinPlayers {
		g.Phase = domain.PhaseEnded
		g.WinnerID = e.leaderID(g)
		e.act(g, player.ID, mv.Kind, "%s disconnected; the game ended", player.Name)
		return nil, nil
	}

	return nil, nil
}

// leaderID picks the winner when a game ends early: the best score
// among connected players, falling back to everyone if nobody is left.
func (e *Engine) leaderID(g *domain.Game) string {
	best := ""
	bestScore := -1
	for _, p := range g.Players {
		if !p.Connected {
			continue
		}
		if s := p.Score(); s > bestScore {
			best, bestScore = p.ID, s
		}
	}
	if best != "" {
		return best
	}
	for _, p := range g.Players {
		if s := p.Score(); s > bestScore {
			best, bestScore = p.ID, s
		}
	}
	return best
}
