package domain

import (
	"fmt"

	"github.com/andrewpolewoy/kokodi/internal/random"
)

// EffectResult describes what a card did when applied. Effect is a
// human-readable description recorded in the turn log; NewPoints is the
// actor's resulting total when points changed.
type EffectResult struct {
	Effect           string
	PointsChanged    bool
	TurnOrderChanged bool
	NewPoints        *int
}

// ApplyCardEffect mutates the in-memory session according to the drawn card
// and returns the outcome. It never persists anything. The only domain error
// it can produce is InvalidCard, for a card kind the engine does not know.
//
// When the result reports TurnOrderChanged, the effect has already moved
// CurrentPlayerIndex and the caller must not advance it again this turn.
func ApplyCardEffect(game *GameSession, card Card, actor Player, src random.Source) (EffectResult, error) {
	switch card.Kind {
	case CardPoints:
		return applyPoints(game, card, actor), nil
	case CardBlock:
		return applyBlock(game), nil
	case CardSteal:
		return applySteal(game, card, actor, src), nil
	case CardDoubleDown:
		return applyDoubleDown(game, actor), nil
	default:
		return EffectResult{}, ErrInvalidCard(card.Name)
	}
}

func applyPoints(game *GameSession, card Card, actor Player) EffectResult {
	newPoints := game.PointsFor(actor.ID) + card.Value
	game.SetPoints(actor.ID, newPoints)

	return EffectResult{
		Effect:        fmt.Sprintf("Added %d points", card.Value),
		PointsChanged: true,
		NewPoints:     &newPoints,
	}
}

func applyBlock(game *GameSession) EffectResult {
	n := len(game.Players)
	skipped := (game.CurrentPlayerIndex + 1) % n
	game.SkippedPlayerIndex = &skipped
	game.CurrentPlayerIndex = (game.CurrentPlayerIndex + 2) % n

	return EffectResult{
		Effect:           "Next player skips turn",
		TurnOrderChanged: true,
	}
}

func applySteal(game *GameSession, card Card, actor Player, src random.Source) EffectResult {
	others := make([]Player, 0, len(game.Players)-1)
	for _, p := range game.Players {
		if p.ID != actor.ID {
			others = append(others, p)
		}
	}
	if len(others) == 0 {
		return EffectResult{Effect: "No players to steal from"}
	}

	target := random.Pick(src, others)
	targetPoints := game.PointsFor(target.ID)
	stolen := min(card.Value, targetPoints)

	game.SetPoints(target.ID, targetPoints-stolen)
	newPoints := game.PointsFor(actor.ID) + stolen
	game.SetPoints(actor.ID, newPoints)

	return EffectResult{
		Effect:        fmt.Sprintf("Stole %d points from %s", stolen, target.Name),
		PointsChanged: true,
		NewPoints:     &newPoints,
	}
}

func applyDoubleDown(game *GameSession, actor Player) EffectResult {
	newPoints := min(game.PointsFor(actor.ID)*2, PointThreshold)
	game.SetPoints(actor.ID, newPoints)

	return EffectResult{
		Effect:        fmt.Sprintf("Doubled points to %d", newPoints),
		PointsChanged: true,
		NewPoints:     &newPoints,
	}
}
