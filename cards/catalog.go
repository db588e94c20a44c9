package cards

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Queen card IDs that carry special rules.
const (
	QueenRoseID = "queen-rose"
	QueenCatID  = "queen-cat"
	QueenDogID  = "queen-dog"
)

// queenDef defines one of the twelve queens
type queenDef struct {
	id     string
	name   string
	points int
}

// The twelve queens: three 5s, three 10s, four 15s, two 20s.
var queenDefs = []queenDef{
	{QueenRoseID, "Rose Queen", 5},
	{"queen-daisy", "Daisy Queen", 5},
	{"queen-pansy", "Pansy Queen", 5},
	{"queen-sunflower", "Sunflower Queen", 10},
	{"queen-rainbow", "Rainbow Queen", 10},
	{"queen-star", "Star Queen", 10},
	{QueenCatID, "Cat Queen", 15},
	{QueenDogID, "Dog Queen", 15},
	{"queen-cake", "Cake Queen", 15},
	{"queen-ladybug", "Ladybug Queen", 15},
	{"queen-heart", "Heart Queen", 20},
	{"queen-moon", "Moon Queen", 20},
}

// The eight kings each carry a display name; the other action kinds
// are interchangeable within their kind.
var kingNames = []string{
	"Fire King",
	"Turtle King",
	"Cookie King",
	"Bubble Gum King",
	"Hat King",
	"Puzzle King",
	"Tie-Dye King",
	"Chess King",
}

// NewQueens returns the twelve queen cards in catalog order
func NewQueens() Stack {
	queens := make(Stack, 0, len(queenDefs))
	for _, def := range queenDefs {
		queens = append(queens, Card{
			ID:     def.id,
			Kind:   KindQueen,
			Name:   def.name,
			Points: def.points,
		})
	}
	return queens
}

// NewDrawDeck returns the 67-card draw deck (action and number cards)
// in catalog order, unshuffled.
func NewDrawDeck() Stack {
	deck := make(Stack, 0, 67)

	for i, name := range kingNames {
		deck = append(deck, Card{ID: fmt.Sprintf("king-%d", i+1), Kind: KindKing, Name: name})
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Card{ID: fmt.Sprintf("knight-%d", i+1), Kind: KindKnight})
	}
	for i := 0; i < 3; i++ {
		deck = append(deck, Card{ID: fmt.Sprintf("dragon-%d", i+1), Kind: KindDragon})
	}
	for i := 0; i < 3; i++ {
		deck = append(deck, Card{ID: fmt.Sprintf("wand-%d", i+1), Kind: KindWand})
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Card{ID: fmt.Sprintf("potion-%d", i+1), Kind: KindPotion})
	}
	for i := 0; i < 5; i++ {
		deck = append(deck, Card{ID: fmt.Sprintf("jester-%d", i+1), Kind: KindJester})
	}

	// 40 number cards: values 1-10, four copies of each
	for value := 1; value <= 10; value++ {
		for copyNo := 1; copyNo <= 4; copyNo++ {
			deck = append(deck, Card{
				ID:    fmt.Sprintf("number-%d-%d", value, copyNo),
				Kind:  KindNumber,
				Value: value,
			})
		}
	}

	return deck
}

// CatalogSize is the total number of cards in the game
const CatalogSize = 79

// Catalog returns every card in the game, queens first
func Catalog() Stack {
	all := NewQueens()
	return append(all, NewDrawDeck()...)
}

// SeededRNG returns a PRNG deterministically derived from a game ID and
// a state version, so test decks are reproducible.
func SeededRNG(gameID string, version int64) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(gameID))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(version))
	h.Write(buf[:])
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// ProductionRNG mixes cryptographic randomness into the seed so live
// games are not predictable from the game ID.
func ProductionRNG(gameID string) *rand.Rand {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand failing is unrecoverable for dealing fairness
		panic(fmt.Sprintf("cards: crypto rand unavailable: %v", err))
	}
	return SeededRNG(gameID, int64(binary.BigEndian.Uint64(buf[:])))
}

// Shuffle shuffles a stack of cards with the given RNG using
// Fisher-Yates, returning a new stack.
func Shuffle(deck Stack, rng *rand.Rand) Stack {
	shuffled := deck.Clone()
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// BuildInitialDeck returns the twelve sleeping queens and the shuffled
// 67-card draw pile for a new game.
func BuildInitialDeck(rng *rand.Rand) (sleepingQueens Stack, drawPile Stack) {
	return NewQueens(), Shuffle(NewDrawDeck(), rng)
}
