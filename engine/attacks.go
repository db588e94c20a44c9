package engine

import (
	"math/rand"

	"github.com/lazharichir/queens/cards"
	"github.com/lazharichir/queens/domain"
)

// playKnight discards a knight targeting another player's queen. If
// the target holds a dragon a defense window opens; otherwise the
// attack resolves on the spot.
func (e *Engine) playKnight(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	attacker := g.PlayerByID(mv.PlayerID)
	if len(mv.Cards) != 1 {
		return nil, domain.IllegalMove("playing a knight takes exactly one card")
	}
	knight := g.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if knight == nil || knight.Kind != cards.KindKnight {
		return nil, domain.IllegalMove("card %s is not a knight in your hand", mv.Cards[0])
	}

	target, queen, fail := e.attackTarget(g, mv)
	if fail != nil {
		return nil, fail
	}

	discard(g, removeFromHand(attacker, knight.ID)...)
	clearStagedFor(g, attacker.ID)

	if target.HasKind(cards.KindDragon) {
		g.PendingKnight = &domain.PendingAttack{
			AttackerID:    attacker.ID,
			TargetID:      target.ID,
			TargetQueenID: queen.ID,
			Deadline:      e.now().Add(e.cfg.DefenseWindow),
		}
		e.act(g, attacker.ID, mv.Kind, "%s sent a knight after %s's %s", attacker.Name, target.Name, queen.Name)
		return nil, nil
	}

	e.act(g, attacker.ID, mv.Kind, "%s's knight stole the %s from %s", attacker.Name, queen.Name, target.Name)
	return e.resolveKnight(g, rng, attacker.ID, target.ID, queen.ID), nil
}

// playPotion is the sleeping-potion mirror of playKnight; the defense
// card is a wand and a landed potion sends the queen back to sleep.
func (e *Engine) playPotion(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	attacker := g.PlayerByID(mv.PlayerID)
	if len(mv.Cards) != 1 {
		return nil, domain.IllegalMove("playing a potion takes exactly one card")
	}
	potion := g.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if potion == nil || potion.Kind != cards.KindPotion {
		return nil, domain.IllegalMove("card %s is not a potion in your hand", mv.Cards[0])
	}

	target, queen, fail := e.attackTarget(g, mv)
	if fail != nil {
		return nil, fail
	}

	discard(g, removeFromHand(attacker, potion.ID)...)
	clearStagedFor(g, attacker.ID)

	if target.HasKind(cards.KindWand) {
		g.PendingPotion = &domain.PendingAttack{
			AttackerID:    attacker.ID,
			TargetID:      target.ID,
			TargetQueenID: queen.ID,
			Deadline:      e.now().Add(e.cfg.DefenseWindow),
		}
		e.act(g, attacker.ID, mv.Kind, "%s aimed a sleeping potion at %s's %s", attacker.Name, target.Name, queen.Name)
		return nil, nil
	}

	e.act(g, attacker.ID, mv.Kind, "%s's potion put the %s back to sleep", attacker.Name, queen.Name)
	return e.resolvePotion(g, rng, attacker.ID, target.ID, queen.ID), nil
}

// attackTarget validates the target player and queen of an attack move
func (e *Engine) attackTarget(g *domain.Game, mv domain.Move) (*domain.Player, *cards.Card, *domain.Failure) {
	target := g.PlayerByID(mv.TargetPlayerID)
	if target == nil {
		return nil, nil, domain.IllegalMove("no such player %s", mv.TargetPlayerID)
	}
	if target.ID == mv.PlayerID {
		return nil, nil, domain.IllegalMove("cannot attack your own queen")
	}
	owner, queen := g.OwnerOfQueen(mv.TargetCardID)
	if owner == nil || owner.ID != target.ID {
		return nil, nil, domain.IllegalMove("player %s does not own queen %s", mv.TargetPlayerID, mv.TargetCardID)
	}
	return target, queen, nil
}

// playDragon blocks a pending knight attack
func (e *Engine) playDragon(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	if g.PendingKnight == nil {
		return nil, domain.IllegalMove("no knight attack to defend against")
	}
	defender := g.PlayerByID(mv.PlayerID)
	dragonID := mv.TargetCardID
	if len(mv.Cards) == 1 {
		dragonID = mv.Cards[0]
	}
	dragon := g.FindCardInHand(mv.PlayerID, dragonID)
	if dragon == nil || dragon.Kind != cards.KindDragon {
		// Any dragon in hand blocks; a sloppy envelope should not cost
		// the defender their queen.
		found := false
		for _, c := range defender.Hand {
			if c.Kind == cards.KindDragon {
				dragon, found = &c, true
				break
			}
		}
		if !found {
			return nil, domain.IllegalMove("you hold no dragon")
		}
	}

	attack := g.PendingKnight
	g.PendingKnight = nil
	discard(g, removeFromHand(defender, dragon.ID)...)

	attacker := g.PlayerByID(attack.AttackerID)
	e.act(g, defender.ID, mv.Kind, "%s's dragon chased off %s's knight", defender.Name, attacker.Name)
	return e.finishTurn(g, rng, defender.ID, attacker.ID), nil
}

// playWand blocks a pending potion attack
func (e *Engine) playWand(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	if g.PendingPotion == nil {
		return nil, domain.IllegalMove("no potion attack to defend against")
	}
	defender := g.PlayerByID(mv.PlayerID)
	wandID := mv.TargetCardID
	if len(mv.Cards) == 1 {
		wandID = mv.Cards[0]
	}
	wand := g.FindCardInHand(mv.PlayerID, wandID)
	if wand == nil || wand.Kind != cards.KindWand {
		found := false
		for _, c := range defender.Hand {
			if c.Kind == cards.KindWand {
				wand, found = &c, true
				break
			}
		}
		if !found {
			return nil, domain.IllegalMove("you hold no wand")
		}
	}

	attack := g.PendingPotion
	g.PendingPotion = nil
	discard(g, removeFromHand(defender, wand.ID)...)

	attacker := g.PlayerByID(attack.AttackerID)
	e.act(g, defender.ID, mv.Kind, "%s's wand dispelled %s's potion", defender.Name, attacker.Name)
	return e.finishTurn(g, rng, defender.ID, attacker.ID), nil
}

// allowKnightAttack lets the attack land, either because the target
// conceded or because the defense window expired.
func (e *Engine) allowKnightAttack(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	if g.PendingKnight == nil {
		return nil, domain.IllegalMove("no knight attack pending")
	}
	attack := *g.PendingKnight
	attacker := g.PlayerByID(attack.AttackerID)
	target := g.PlayerByID(attack.TargetID)
	_, queen := g.OwnerOfQueen(attack.TargetQueenID)

	e.act(g, target.ID, mv.Kind, "%s's knight stole the %s from %s", attacker.Name, queen.Name, target.Name)
	return e.resolveKnight(g, rng, attack.AttackerID, attack.TargetID, attack.TargetQueenID), nil
}

// allowPotionAttack lets a pending potion land
func (e *Engine) allowPotionAttack(g *domain.Game, mv domain.Move, rng *rand.Rand) ([]PrivateDraw, *domain.Failure) {
	if g.PendingPotion == nil {
		return nil, domain.IllegalMove("no potion attack pending")
	}
	attack := *g.PendingPotion
	attacker := g.PlayerByID(attack.AttackerID)
	_, queen := g.OwnerOfQueen(attack.TargetQueenID)

	e.act(g, attack.TargetID, mv.Kind, "%s's potion put the %s back to sleep", attacker.Name, queen.Name)
	return e.resolvePotion(g, rng, attack.AttackerID, attack.TargetID, attack.TargetQueenID), nil
}

// resolveKnight transfers the queen to the attacker. The Cat/Dog
// exclusion still applies: a conflicting queen goes back to sleep
// instead of joining the attacker.
func (e *Engine) resolveKnight(g *domain.Game, rng *rand.Rand, attackerID, targetID, queenID string) []PrivateDraw {
	g.PendingKnight = nil
	attacker := g.PlayerByID(attackerID)
	target := g.PlayerByID(targetID)

	if queen, idx := target.Queens.FindByID(queenID); idx >= 0 {
		target.Queens = target.Queens.RemoveAt(idx)
		if queenConflicts(attacker, queen) {
			g.SleepingQueens = append(g.SleepingQueens, queen)
		} else {
			attacker.Queens = append(attacker.Queens, queen)
		}
	}

	return e.finishTurn(g, rng, attackerID)
}

// resolvePotion sends the queen back to the sleeping pool
func (e *Engine) resolvePotion(g *domain.Game, rng *rand.Rand, attackerID, targetID, queenID string) []PrivateDraw {
	g.PendingPotion = nil
	target := g.PlayerByID(targetID)

	if queen, idx := target.Queens.FindByID(queenID); idx >= 0 {
		target.Queens = target.Queens.RemoveAt(idx)
		g.SleepingQueens = append(g.SleepingQueens, queen)
	}

	return e.finishTurn(g, rng, attackerID)
}
