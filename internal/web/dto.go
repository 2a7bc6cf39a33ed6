package web

import (
	"time"

	"github.com/andrewpolewoy/kokodi/internal/domain"
)

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Error   string `json:"error"`
}

type PlayerInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type TurnInfo struct {
	PlayerID         int64  `json:"playerId"`
	PlayerName       string `json:"playerName"`
	CardName         string `json:"cardName"`
	Effect           string `json:"effect"`
	PointsChanged    bool   `json:"pointsChanged"`
	TurnOrderChanged bool   `json:"turnOrderChanged"`
	NewPoints        *int   `json:"newPoints,omitempty"`
}

type GameStateResponse struct {
	ID                 int64       `json:"id"`
	Status             string      `json:"status"`
	Players            []PlayerInfo `json:"players"`
	CurrentPlayerIndex int         `json:"currentPlayerIndex"`
	CardsInDeck        int         `json:"cardsInDeck"`
	LastTurn           *TurnInfo   `json:"lastTurn,omitempty"`
	Winner             *PlayerInfo `json:"winner,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	FinishedAt         *time.Time  `json:"finishedAt,omitempty"`
}

// gameState projects the aggregate into its caller-visible view. The deck
// contents are never exposed, only the remaining count.
func gameState(game *domain.GameSession) GameStateResponse {
	players := make([]PlayerInfo, len(game.Players))
	for i, p := range game.Players {
		players[i] = PlayerInfo{
			ID:     p.ID,
			Name:   p.Name,
			Points: game.PointsFor(p.ID),
		}
	}

	var lastTurn *TurnInfo
	if turn := game.LastTurn(); turn != nil {
		lastTurn = &TurnInfo{
			PlayerID:         turn.PlayerID,
			PlayerName:       turn.PlayerName,
			CardName:         turn.Card.Name,
			Effect:           turn.Effect,
			PointsChanged:    turn.PointsChanged,
			TurnOrderChanged: turn.TurnOrderChanged,
			NewPoints:        turn.NewPoints,
		}
	}

	var winner *PlayerInfo
	if game.WinnerID != nil {
		if p, ok := game.PlayerByID(*game.WinnerID); ok {
			winner = &PlayerInfo{
				ID:     p.ID,
				Name:   p.Name,
				Points: game.PointsFor(p.ID),
			}
		}
	}

	return GameStateResponse{
		ID:                 game.ID,
		Status:             string(game.Status),
		Players:            players,
		CurrentPlayerIndex: game.CurrentPlayerIndex,
		CardsInDeck:        len(game.Deck),
		LastTurn:           lastTurn,
		Winner:             winner,
		CreatedAt:          game.CreatedAt,
		FinishedAt:         game.FinishedAt,
	}
}
