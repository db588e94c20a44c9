package engine

import (
	"math/rand"

	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
)

// PrivateDraw reports cards drawn by one player during a move. The
// projection layer surfaces these only to that player.
type PrivateDraw struct {
	PlayerID string
	Cards    cards.Stack
}

// DrawOne pops the top card of the draw pile. When the pile is empty
// the discard pile is reshuffled into it, except for the top discard
// which stays behind as the face-up marker. Returns false if there is
// nothing left to draw anywhere.
func DrawOne(g *domain.Game, rng *rand.Rand) (cards.Card, bool) {
	if len(g.DrawPile) == 0 {
		if len(g.DiscardPile) <= 1 {
			return cards.Card{}, false
		}
		top := g.DiscardPile[len(g.DiscardPile)-1]
		rest := g.DiscardPile[:len(g.DiscardPile)-1]
		g.DrawPile = cards.Shuffle(rest, rng)
		g.DiscardPile = cards.Stack{top}
	}

	card := g.DrawPile[0]
	g.DrawPile = g.DrawPile[1:]
	return card, true
}

// RefillHand draws until the player holds a full hand or the deck is
// fully drained, and returns the drawn cards for private projection.
func RefillHand(g *domain.Game, rng *rand.Rand, playerID string) *PrivateDraw {
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil
	}

	drawn := cards.Stack{}
	for len(p.Hand) < domain.HandSize {
		card, ok := DrawOne(g, rng)
		if !ok {
			break
		}
		p.Hand = append(p.Hand, card)
		drawn = append(drawn, card)
	}

	if len(drawn) == 0 {
		return nil
	}
	return &PrivateDraw{PlayerID: playerID, Cards: drawn}
}

// discard puts cards onto the top of the discard pile
func discard(g *domain.Game, cs ...cards.Card) {
	g.DiscardPile = append(g.DiscardPile, cs...)
}

// removeFromHand takes the identified cards out of the player's hand.
// The caller has already validated that the player holds them all.
func removeFromHand(p *domain.Player, cardIDs ...string) cards.Stack {
	removed := cards.Stack{}
	for _, id := range cardIDs {
		if c, idx := p.Hand.FindByID(id); idx >= 0 {
			p.Hand = p.Hand.RemoveAt(idx)
			removed = append(removed, c)
		}
	}
	return removed
}

// clearStagedFor drops any staged cards the player no longer holds,
// and the whole staging entry once a play commits.
func clearStagedFor(g *domain.Game, playerID string) {
	delete(g.StagedCards, playerID)
}
