package domain

import "github.com/lazharichir/queens/cards"

// Player represents a seated player in a game
type Player struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Position  int         `json:"position"`
	Hand      cards.Stack `json:"hand"`
	Queens    cards.Stack `json:"queens"`
	Connected bool        `json:"connected"`
}

// NewPlayer creates a new player seated at the given position
func NewPlayer(id, name string, position int) Player {
	return Player{
		ID:        id,
		Name:      name,
		Position:  position,
		Hand:      cards.Stack{},
		Queens:    cards.Stack{},
		Connected: true,
	}
}

// Score is the sum of the player's awake queens' points
func (p Player) Score() int {
	total := 0
	for _, q := range p.Queens {
		total += q.Points
	}
	return total
}

// HasKind checks if the player holds a card of the given kind in hand
func (p Player) HasKind(kind cards.Kind) bool {
	return p.Hand.ContainsKind(kind)
}

// Clone returns a deep copy of the player
func (p Player) Clone() Player {
	out := p
	out.Hand = p.Hand.Clone()
	out.Queens = p.Queens.Clone()
	return out
}
