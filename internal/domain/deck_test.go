package domain

import (
	"testing"

	"github.com/andrewpolewoy/kokodi/internal/random"
)

func TestDeckComposition(t *testing.T) {
	deck := NewDeck(random.NewSource(1))

	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	counts := map[CardKind]int{}
	for _, card := range deck {
		counts[card.Kind]++
	}

	want := map[CardKind]int{
		CardPoints:     10,
		CardBlock:      5,
		CardSteal:      5,
		CardDoubleDown: 3,
	}
	for kind, n := range want {
		if counts[kind] != n {
			t.Errorf("%s cards = %d, want %d", kind, counts[kind], n)
		}
	}
}

func TestDeckCardValues(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		for _, card := range NewDeck(random.NewSource(seed)) {
			switch card.Kind {
			case CardPoints:
				if card.Value < 1 || card.Value > 5 {
					t.Errorf("seed %d: points card value %d out of [1,5]", seed, card.Value)
				}
			case CardSteal:
				if card.Value < 1 || card.Value > 3 {
					t.Errorf("seed %d: steal card value %d out of [1,3]", seed, card.Value)
				}
			case CardDoubleDown:
				if card.Value != 2 {
					t.Errorf("seed %d: double down value %d, want 2", seed, card.Value)
				}
			}
		}
	}
}

func TestDeckNamesUnique(t *testing.T) {
	deck := NewDeck(random.NewSource(5))

	seen := map[string]bool{}
	for _, card := range deck {
		if seen[card.Name] {
			t.Errorf("duplicate card name %q", card.Name)
		}
		seen[card.Name] = true
	}
}

func TestDeckShuffled(t *testing.T) {
	// Identity "shuffle": Index(n) = n-1 keeps every card in place, exposing
	// the build order for comparison.
	ordered := NewDeck(identitySource{})

	shuffled := NewDeck(random.NewSource(99))
	same := true
	for i := range ordered {
		if ordered[i].Kind != shuffled[i].Kind {
			same = false
			break
		}
	}
	if same {
		t.Error("seeded deck retained the build order; shuffle did not run")
	}
}

type identitySource struct{}

func (identitySource) IntBetween(low, high int) int { return low }
func (identitySource) Index(n int) int              { return n - 1 }
