package cards

import "fmt"

// Kind represents the kind of a card
type Kind string

const (
	KindQueen  Kind = "queen"
	KindNumber Kind = "number"
	KindKing   Kind = "king"
	KindKnight Kind = "knight"
	KindDragon Kind = "dragon"
	KindWand   Kind = "wand"
	KindPotion Kind = "potion"
	KindJester Kind = "jester"
)

// Card represents a single card in the game. Queens carry Points,
// number cards carry Value, kings carry a display Name. The zero
// fields of the other kinds are meaningless and stay zero.
type Card struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Name   string `json:"name,omitempty"`
	Points int    `json:"points,omitempty"`
	Value  int    `json:"value,omitempty"`
}

// String returns the string representation of a card
func (c Card) String() string {
	switch c.Kind {
	case KindQueen:
		return fmt.Sprintf("%s (%d pts)", c.Name, c.Points)
	case KindNumber:
		return fmt.Sprintf("%d", c.Value)
	case KindKing:
		return c.Name
	default:
		return string(c.Kind)
	}
}

// IsQueen checks if the card is a queen
func (c Card) IsQueen() bool {
	return c.Kind == KindQueen
}

// IsNumber checks if the card is a number card
func (c Card) IsNumber() bool {
	return c.Kind == KindNumber
}

// IsPowerCard checks if the card is an action card (king, knight,
// dragon, wand, potion or jester)
func (c Card) IsPowerCard() bool {
	switch c.Kind {
	case KindKing, KindKnight, KindDragon, KindWand, KindPotion, KindJester:
		return true
	}
	return false
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.ID == other.ID
}

// Stack represents multiple cards
type Stack []Card

// FindByID returns the card with the given ID and its index, or -1
// if the stack does not contain it.
func (s Stack) FindByID(id string) (Card, int) {
	for i, c := range s {
		if c.ID == id {
			return c, i
		}
	}
	return Card{}, -1
}

// Contains checks if the stack holds a card with the given ID
func (s Stack) Contains(id string) bool {
	_, i := s.FindByID(id)
	return i >= 0
}

// ContainsKind checks if the stack holds at least one card of the given kind
func (s Stack) ContainsKind(kind Kind) bool {
	for _, c := range s {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// RemoveAt removes the card at index i and returns the remaining stack
func (s Stack) RemoveAt(i int) Stack {
	out := make(Stack, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}

// Clone returns a copy of the stack
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
