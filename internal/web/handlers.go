package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/andrewpolewoy/kokodi/internal/domain"
)

// GameService is the game operations contract the handlers depend on.
type GameService interface {
	CreateGame(ctx context.Context, creatorID int64) (*domain.GameSession, error)
	JoinGame(ctx context.Context, gameID, playerID int64) (*domain.GameSession, error)
	StartGame(ctx context.Context, gameID, userID int64) (*domain.GameSession, error)
	MakeTurn(ctx context.Context, gameID, playerID int64) (*domain.GameSession, error)
	GetGame(ctx context.Context, gameID, userID int64) (*domain.GameSession, error)
	ListPlayerGames(ctx context.Context, playerID int64) ([]*domain.GameSession, error)
}

// AuthService is the registration/login contract the handlers depend on.
type AuthService interface {
	Register(ctx context.Context, login, password, name string) (string, error)
	Login(ctx context.Context, login, password string) (string, error)
}

type Handlers struct {
	auth   AuthService
	games  GameService
	tokens TokenParser
	log    *slog.Logger
}

func NewHandlers(auth AuthService, games GameService, tokens TokenParser, log *slog.Logger) *Handlers {
	return &Handlers{auth: auth, games: games, tokens: tokens, log: log}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	token, err := h.auth.Register(r.Context(), req.Login, req.Password, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, AuthResponse{Token: token, TokenType: "Bearer"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, AuthResponse{Token: token, TokenType: "Bearer"})
}

func (h *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.games.CreateGame(r.Context(), callerID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gameState(game))
}

func (h *Handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}
	game, err := h.games.JoinGame(r.Context(), gameID, callerID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gameState(game))
}

func (h *Handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}
	game, err := h.games.StartGame(r.Context(), gameID, callerID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gameState(game))
}

func (h *Handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}
	game, err := h.games.MakeTurn(r.Context(), gameID, callerID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gameState(game))
}

func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}
	game, err := h.games.GetGame(r.Context(), gameID, callerID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gameState(game))
}

func (h *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListPlayerGames(r.Context(), callerID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	states := make([]GameStateResponse, len(games))
	for i, game := range games {
		states[i] = gameState(game)
	}
	h.writeJSON(w, http.StatusOK, states)
}

func (h *Handlers) gameID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.badRequest(w, "invalid game id")
		return 0, false
	}
	return id, true
}

// statusForCode maps each domain error code to its HTTP status. Codes outside
// the taxonomy fall through to 500.
func statusForCode(code domain.Code) int {
	switch code {
	case domain.CodeGameNotFound, domain.CodeUserNotFound:
		return http.StatusNotFound
	case domain.CodeRuleViolation, domain.CodeInvalidState,
		domain.CodeNotYourTurn, domain.CodeInvalidCard:
		return http.StatusBadRequest
	case domain.CodeAccessDenied:
		return http.StatusForbidden
	case domain.CodeConflict, domain.CodeUserExists:
		return http.StatusConflict
	case domain.CodeBadCredentials, domain.CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	code := domain.ErrCode(err)
	status := statusForCode(code)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details never reach the caller.
		h.log.Error("request failed", "error", err)
		message = "internal server error"
	}

	h.writeJSON(w, status, ErrorResponse{
		Message: message,
		Status:  status,
		Error:   http.StatusText(status),
	})
}

func (h *Handlers) badRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: message,
		Status:  http.StatusBadRequest,
		Error:   http.StatusText(http.StatusBadRequest),
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("write response", "error", err)
	}
}
