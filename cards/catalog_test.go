package cards

import (
	"testing"
)

func TestCatalogComposition(t *testing.T) {
	all := Catalog()

	if len(all) != CatalogSize {
		t.Errorf("Expected catalog to have %d cards, got %d", CatalogSize, len(all))
	}

	counts := map[Kind]int{}
	for _, c := range all {
		counts[c.Kind]++
	}

	expected := map[Kind]int{
		KindQueen:  12,
		KindKing:   8,
		KindKnight: 4,
		KindDragon: 3,
		KindWand:   3,
		KindPotion: 4,
		KindJester: 5,
		KindNumber: 40,
	}
	for kind, want := range expected {
		if counts[kind] != want {
			t.Errorf("Expected %d %s cards, got %d", want, kind, counts[kind])
		}
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Catalog() {
		if seen[c.ID] {
			t.Errorf("Duplicate card ID %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestQueenPoints(t *testing.T) {
	queens := NewQueens()

	total := 0
	for _, q := range queens {
		total += q.Points
		if q.Points != 5 && q.Points != 10 && q.Points != 15 && q.Points != 20 {
			t.Errorf("Queen %s has unexpected point value %d", q.ID, q.Points)
		}
	}

	if total != 145 {
		t.Errorf("Expected queen points to total 145, got %d", total)
	}
}

func TestNumberCardValues(t *testing.T) {
	valueCounts := map[int]int{}
	for _, c := range NewDrawDeck() {
		if c.Kind == KindNumber {
			valueCounts[c.Value]++
		}
	}

	for value := 1; value <= 10; value++ {
		if valueCounts[value] != 4 {
			t.Errorf("Expected 4 number cards of value %d, got %d", value, valueCounts[value])
		}
	}
}

func TestShufflePreservesCards(t *testing.T) {
	original := NewDrawDeck()
	shuffled := Shuffle(original, SeededRNG("game-1", 0))

	if len(shuffled) != len(original) {
		t.Errorf("Shuffled deck length %d does not match original deck length %d",
			len(shuffled), len(original))
	}

	for _, c := range original {
		if !shuffled.Contains(c.ID) {
			t.Errorf("Shuffled deck is missing card %s", c.ID)
		}
	}

	// Original must be untouched; Shuffle copies.
	for i, c := range NewDrawDeck() {
		if original[i].ID != c.ID {
			t.Error("Shuffle mutated its input")
			break
		}
	}
}

func TestSeededShuffleIsDeterministic(t *testing.T) {
	a := Shuffle(NewDrawDeck(), SeededRNG("game-1", 7))
	b := Shuffle(NewDrawDeck(), SeededRNG("game-1", 7))

	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("Same seed produced different decks at index %d: %s vs %s", i, a[i].ID, b[i].ID)
			break
		}
	}

	c := Shuffle(NewDrawDeck(), SeededRNG("game-1", 8))
	differences := 0
	for i := range a {
		if a[i].ID != c[i].ID {
			differences++
		}
	}
	if differences == 0 {
		t.Error("Different versions produced identical decks")
	}
}

func TestBuildInitialDeck(t *testing.T) {
	queens, draw := BuildInitialDeck(SeededRNG("game-1", 0))

	if len(queens) != 12 {
		t.Errorf("Expected 12 sleeping queens, got %d", len(queens))
	}
	if len(draw) != 67 {
		t.Errorf("Expected 67 cards in the draw pile, got %d", len(draw))
	}
	for _, c := range draw {
		if c.IsQueen() {
			t.Errorf("Queen %s ended up in the draw pile", c.ID)
		}
	}
}
