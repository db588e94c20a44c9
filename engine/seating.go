package engine

import "github.com/lazharichir/queens/domain"

// joinGame seats a player while the game is waiting for players
func (e *Engine) joinGame(g *domain.Game, mv domain.Move) ([]PrivateDraw, *domain.Failure) {
	if g.Phase != domain.PhaseWaiting {
		return nil, domain.IllegalMove("the game already started")
	}
	if g.PlayerByID(mv.PlayerID) != nil {
		return nil, domain.IllegalMove("player already seated")
	}
	if len(g.Players) >= e.cfg.MaxPlayers {
		return nil, domain.IllegalMove("the game is full (%d players)", e.cfg.MaxPlayers)
	}

	name := mv.PlayerName
	if name == "" {
		name = mv.PlayerID
	}
	player := domain.NewPlayer(mv.PlayerID, name, len(g.Players))
	g.Players = append(g.Players, player)

	e.act(g, player.ID, mv.Kind, "%s joined the game", player.Name)
	return nil, nil
}

// leaveGame unseats a player before the game starts. During play the
// seat stays; leaving is just a disconnect.
func (e *Engine) leaveGame(g *domain.Game, mv domain.Move) ([]PrivateDraw, *domain.Failure) {
	player := g.PlayerByID(mv.PlayerID)
	if player == nil {
		return nil, domain.IllegalMove("no such player %s", mv.PlayerID)
	}

	if g.Phase != domain.PhaseWaiting {
		return e.setConnected(g, mv, false)
	}

	name := player.Name
	for i := range g.Players {
		if g.Players[i].ID == mv.PlayerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			break
		}
	}
	for i := range g.Players {
		g.Players[i].Position = i
	}
	delete(g.StagedCards, mv.PlayerID)

	e.act(g, mv.PlayerID, mv.Kind, "%s left the game", name)
	return nil, nil
}
