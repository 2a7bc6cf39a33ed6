package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/andrewpolewoy/kokodi/internal/domain"
	"github.com/andrewpolewoy/kokodi/internal/metrics"
	"github.com/andrewpolewoy/kokodi/internal/random"
)

// GameRepository loads and atomically saves session aggregates. Update must
// fail with a Conflict domain error when the aggregate changed since it was
// loaded; the HTTP caller retries.
type GameRepository interface {
	Create(ctx context.Context, game *domain.GameSession) (*domain.GameSession, error)
	Get(ctx context.Context, id int64) (*domain.GameSession, error)
	Update(ctx context.Context, game *domain.GameSession) (*domain.GameSession, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]*domain.GameSession, error)
}

// GameService drives the session lifecycle and resolves turns. Every mutating
// operation follows the same shape: load the aggregate, validate, mutate the
// in-memory copy, save it behind the version check.
type GameService struct {
	games   GameRepository
	users   UserRepository
	src     random.Source
	metrics *metrics.GameMetrics
	log     *slog.Logger
	now     func() time.Time
}

func NewGameService(games GameRepository, users UserRepository, src random.Source, m *metrics.GameMetrics, log *slog.Logger) *GameService {
	return &GameService{
		games:   games,
		users:   users,
		src:     src,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// CreateGame opens a new session with the creator in the first seat.
func (s *GameService) CreateGame(ctx context.Context, creatorID int64) (*domain.GameSession, error) {
	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	game, err := s.games.Create(ctx, &domain.GameSession{
		Status:    domain.StatusWaitForPlayers,
		Players:   []domain.Player{{ID: creator.ID, Name: creator.Name}},
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordGameCreated(ctx)
	s.log.Info("game created", "game_id", game.ID, "creator_id", creatorID)
	return game, nil
}

// JoinGame seats a player in a waiting session.
func (s *GameService) JoinGame(ctx context.Context, gameID, playerID int64) (*domain.GameSession, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	player, err := s.users.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if game.Status != domain.StatusWaitForPlayers {
		return nil, domain.ErrInvalidState(game.ID, game.Status)
	}
	if len(game.Players) >= domain.MaxPlayers {
		return nil, domain.ErrRuleViolation("game is full")
	}
	if game.HasPlayer(playerID) {
		return nil, domain.ErrRuleViolation("player already in game")
	}

	game.Players = append(game.Players, domain.Player{ID: player.ID, Name: player.Name})

	game, err = s.games.Update(ctx, game)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPlayerJoined(ctx)
	s.log.Info("player joined", "game_id", gameID, "player_id", playerID)
	return game, nil
}

// StartGame freezes the seat order, attaches a fresh shuffled deck, and moves
// the session to InProgress. Only the owner (first seat) may start.
func (s *GameService) StartGame(ctx context.Context, gameID, userID int64) (*domain.GameSession, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if owner, ok := game.Owner(); !ok || owner.ID != userID {
		return nil, domain.ErrAccessDenied("only the game owner can start the game")
	}
	if game.Status != domain.StatusWaitForPlayers {
		return nil, domain.ErrInvalidState(game.ID, game.Status)
	}
	if len(game.Players) < domain.MinPlayers {
		return nil, domain.ErrRuleViolation("not enough players to start the game")
	}

	game.Deck = domain.NewDeck(s.src)
	game.Status = domain.StatusInProgress
	game.CurrentPlayerIndex = 0

	game, err = s.games.Update(ctx, game)
	if err != nil {
		return nil, err
	}

	s.log.Info("game started", "game_id", gameID, "players", len(game.Players))
	return game, nil
}

// MakeTurn resolves one full turn for the requesting player: draw, apply the
// card effect, append the turn record, check the win condition, advance the
// turn pointer, and save the aggregate atomically.
func (s *GameService) MakeTurn(ctx context.Context, gameID, playerID int64) (*domain.GameSession, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.HasPlayer(playerID) {
		return nil, domain.ErrAccessDenied("player is not seated in this game")
	}
	if game.Status != domain.StatusInProgress {
		return nil, domain.ErrInvalidState(game.ID, game.Status)
	}
	current, ok := game.CurrentPlayer()
	if !ok {
		return nil, domain.ErrRuleViolation("no current player in game")
	}
	if current.ID != playerID {
		return nil, domain.ErrNotYourTurn(gameID, playerID)
	}

	if len(game.Deck) == 0 {
		s.finishGame(ctx, game)
		return s.games.Update(ctx, game)
	}

	card := game.Deck[0]
	game.Deck = game.Deck[1:]

	result, err := domain.ApplyCardEffect(game, card, current, s.src)
	if err != nil {
		return nil, err
	}

	game.Turns = append(game.Turns, domain.Turn{
		PlayerID:         current.ID,
		PlayerName:       current.Name,
		Card:             card,
		Effect:           result.Effect,
		PointsChanged:    result.PointsChanged,
		TurnOrderChanged: result.TurnOrderChanged,
		NewPoints:        result.NewPoints,
	})

	if s.thresholdReached(game) {
		s.finishGame(ctx, game)
	} else if !result.TurnOrderChanged {
		game.CurrentPlayerIndex = (game.CurrentPlayerIndex + 1) % len(game.Players)
	}

	game, err = s.games.Update(ctx, game)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTurnTaken(ctx)
	s.log.Info("turn resolved", "game_id", gameID, "player_id", playerID,
		"card", card.Name, "effect", result.Effect)
	return game, nil
}

// GetGame returns the session state to a seated player. It never mutates.
func (s *GameService) GetGame(ctx context.Context, gameID, userID int64) (*domain.GameSession, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.HasPlayer(userID) {
		return nil, domain.ErrAccessDenied("player is not seated in this game")
	}
	return game, nil
}

// ListPlayerGames returns every session the player is seated in.
func (s *GameService) ListPlayerGames(ctx context.Context, playerID int64) ([]*domain.GameSession, error) {
	return s.games.ListByPlayer(ctx, playerID)
}

func (s *GameService) thresholdReached(game *domain.GameSession) bool {
	for _, points := range game.Points {
		if points >= domain.PointThreshold {
			return true
		}
	}
	return false
}

// finishGame moves the session to its terminal state. The transition happens
// at most once per session and is irreversible.
func (s *GameService) finishGame(ctx context.Context, game *domain.GameSession) {
	winner, _ := game.Winner()
	now := s.now()

	game.Status = domain.StatusFinished
	game.WinnerID = &winner.ID
	game.FinishedAt = &now

	s.metrics.RecordGameCompleted(ctx, now.Sub(game.CreatedAt))
	s.log.Info("game finished", "game_id", game.ID, "winner_id", winner.ID,
		"duration", now.Sub(game.CreatedAt))
}
