package engine

import "github.com/lazharichir/queens/domain"

// checkWin ends the game if any player has reached the queen count or
// point total for the table size. It runs after every applied effect,
// including out-of-turn ones, so a stolen queen can end the game on
// the spot.
func checkWin(g *domain.Game) {
	if g.Phase != domain.PhasePlaying {
		return
	}

	n := len(g.Players)
	needQueens := QueensToWin(n)
	needPoints := PointsToWin(n)

	for _, p := range g.Players {
		if len(p.Queens) >= needQueens || p.Score() >= needPoints {
			g.Phase = domain.PhaseEnded
			g.WinnerID = p.ID
			return
		}
	}
}
