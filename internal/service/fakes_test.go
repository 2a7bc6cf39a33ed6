package service

import (
	"context"
	"fmt"

	"github.com/andrewpolewoy/kokodi/internal/domain"
)

// fakeGameRepo keeps aggregates in memory and mimics the optimistic version
// check of the real repository. Get and Update hand out deep copies so tests
// observe the same load/save boundaries as production code.
type fakeGameRepo struct {
	games     map[int64]*domain.GameSession
	nextID    int64
	failNext  error
	conflicts int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: map[int64]*domain.GameSession{}, nextID: 1}
}

func (r *fakeGameRepo) Create(ctx context.Context, game *domain.GameSession) (*domain.GameSession, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	game.ID = r.nextID
	game.Version = 1
	r.nextID++
	r.games[game.ID] = cloneGame(game)
	return cloneGame(game), nil
}

func (r *fakeGameRepo) Get(ctx context.Context, id int64) (*domain.GameSession, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound(id)
	}
	return cloneGame(game), nil
}

func (r *fakeGameRepo) Update(ctx context.Context, game *domain.GameSession) (*domain.GameSession, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	stored, ok := r.games[game.ID]
	if !ok {
		return nil, domain.ErrGameNotFound(game.ID)
	}
	if stored.Version != game.Version {
		r.conflicts++
		return nil, domain.ErrConflict(fmt.Sprintf("game %d was modified concurrently", game.ID))
	}
	game.Version++
	r.games[game.ID] = cloneGame(game)
	return cloneGame(game), nil
}

func (r *fakeGameRepo) ListByPlayer(ctx context.Context, playerID int64) ([]*domain.GameSession, error) {
	var out []*domain.GameSession
	for id := int64(1); id < r.nextID; id++ {
		game, ok := r.games[id]
		if ok && game.HasPlayer(playerID) {
			out = append(out, cloneGame(game))
		}
	}
	return out, nil
}

// seed stores a prepared aggregate directly, bypassing the lifecycle.
func (r *fakeGameRepo) seed(game *domain.GameSession) *domain.GameSession {
	if game.ID == 0 {
		game.ID = r.nextID
		r.nextID++
	} else if game.ID >= r.nextID {
		r.nextID = game.ID + 1
	}
	if game.Version == 0 {
		game.Version = 1
	}
	r.games[game.ID] = cloneGame(game)
	return game
}

func cloneGame(game *domain.GameSession) *domain.GameSession {
	clone := *game
	clone.Players = append([]domain.Player(nil), game.Players...)
	clone.Deck = append([]domain.Card(nil), game.Deck...)
	clone.Turns = append([]domain.Turn(nil), game.Turns...)
	clone.Points = make(map[int64]int, len(game.Points))
	for k, v := range game.Points {
		clone.Points[k] = v
	}
	if game.SkippedPlayerIndex != nil {
		v := *game.SkippedPlayerIndex
		clone.SkippedPlayerIndex = &v
	}
	if game.WinnerID != nil {
		v := *game.WinnerID
		clone.WinnerID = &v
	}
	if game.FinishedAt != nil {
		v := *game.FinishedAt
		clone.FinishedAt = &v
	}
	return &clone
}

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
	for _, u := range users {
		u := u
		if u.ID == 0 {
			u.ID = r.nextID
		}
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Login == user.Login {
			return nil, domain.ErrUserExists(user.Login)
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = &user
	return &user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound(id)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Login == login {
			return user, nil
		}
	}
	return nil, domain.NewError(domain.CodeUserNotFound, "user not found: "+login)
}
