package domain

import (
	"fmt"

	"github.com/andrewpolewoy/kokodi/internal/random"
)

// Deck composition. 23 cards total; the mix is fixed, only the rolled values
// and the shuffle order vary per game.
const (
	pointsCardCount     = 10
	blockCardCount      = 5
	stealCardCount      = 5
	doubleDownCardCount = 3

	pointsValueMin = 1
	pointsValueMax = 5
	stealValueMin  = 1
	stealValueMax  = 3
)

// DeckSize is the number of cards a fresh deck holds.
const DeckSize = pointsCardCount + blockCardCount + stealCardCount + doubleDownCardCount

// NewDeck builds the fixed-composition deck, rolls card values from src, and
// returns the cards pre-shuffled. Card names are unique within the deck.
func NewDeck(src random.Source) []Card {
	cards := make([]Card, 0, DeckSize)

	for i := 0; i < pointsCardCount; i++ {
		value := src.IntBetween(pointsValueMin, pointsValueMax)
		cards = append(cards, Card{
			Kind:  CardPoints,
			Name:  fmt.Sprintf("Points Card %d-%d", value, i+1),
			Value: value,
		})
	}

	for i := 0; i < blockCardCount; i++ {
		cards = append(cards, Card{
			Kind:  CardBlock,
			Name:  fmt.Sprintf("Block-%d", i+1),
			Value: 1,
		})
	}

	for i := 0; i < stealCardCount; i++ {
		value := src.IntBetween(stealValueMin, stealValueMax)
		cards = append(cards, Card{
			Kind:  CardSteal,
			Name:  fmt.Sprintf("Steal %d-%d", value, i+1),
			Value: value,
		})
	}

	for i := 0; i < doubleDownCardCount; i++ {
		cards = append(cards, Card{
			Kind:  CardDoubleDown,
			Name:  fmt.Sprintf("DoubleDown-%d", i+1),
			Value: 2,
		})
	}

	random.Shuffle(src, cards)
	return cards
}
