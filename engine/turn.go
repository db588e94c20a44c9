package engine

import "github.com/lazharichir/queens/domain"

// MayAct decides whether a player may submit a move of the given kind
// right now. Pending interactions gate everything else out.
func MayAct(g *domain.Game, playerID string, kind domain.MoveKind) bool {
	if kind.Internal() {
		return true
	}

	if kind == domain.MoveJoinGame {
		return g.Phase == domain.PhaseWaiting
	}
	if kind == domain.MoveLeaveGame {
		return g.PlayerByID(playerID) != nil
	}

	if g.Phase == domain.PhaseWaiting {
		return kind == domain.MoveStartGame && g.PlayerByID(playerID) != nil
	}
	if g.Phase == domain.PhaseEnded {
		return false
	}

	if g.PendingKnight != nil {
		if playerID != g.PendingKnight.TargetID {
			return false
		}
		return kind == domain.MovePlayDragon || kind == domain.MoveAllowKnightAttack
	}
	if g.PendingPotion != nil {
		if playerID != g.PendingPotion.TargetID {
			return false
		}
		return kind == domain.MovePlayWand || kind == domain.MoveAllowPotionAttack
	}
	if g.JesterReveal != nil && g.JesterReveal.AwaitingQueenSelection {
		return playerID == g.JesterReveal.TargetPlayerID && kind == domain.MoveSelectQueenForJester
	}
	if g.RoseQueenBonus != nil && g.RoseQueenBonus.Pending {
		if playerID != g.RoseQueenBonus.PlayerID {
			return false
		}
		return kind == domain.MoveRoseQueenBonus || kind == domain.MoveDiscardSingle
	}

	// Staging is an intent signal; clearing your own staged cards is
	// allowed out of turn.
	if kind == domain.MoveClearStaged {
		return g.PlayerByID(playerID) != nil
	}

	current := g.CurrentPlayer()
	return current != nil && current.ID == playerID
}

// AdvanceTurn moves play to the next seat. Disconnected players keep
// their turn; a brief network blip should not forfeit it. The game
// ends separately when too few players remain connected.
func AdvanceTurn(g *domain.Game) {
	n := len(g.Players)
	if n == 0 {
		return
	}
	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % n
}
