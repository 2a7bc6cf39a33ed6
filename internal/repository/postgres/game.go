package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andrewpolewoy/kokodi/internal/domain"
)

// GameRepository loads and saves game session aggregates. A save rewrites the
// whole aggregate in one transaction guarded by an optimistic version check,
// so concurrent mutations of the same session cannot interleave.
type GameRepository struct {
	db *DB
}

func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create persists a fresh aggregate and returns it with its id and version.
func (r *GameRepository) Create(ctx context.Context, game *domain.GameSession) (*domain.GameSession, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create game: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO game_sessions (status, current_player_index, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, version`,
		game.Status, game.CurrentPlayerIndex, game.CreatedAt,
	).Scan(&game.ID, &game.Version)
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}

	if err := insertSeats(ctx, tx, game); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create game: %w", err)
	}
	return game, nil
}

// Get loads the full aggregate: session row, seats in order, remaining deck,
// turn log, and points ledger.
func (r *GameRepository) Get(ctx context.Context, id int64) (*domain.GameSession, error) {
	var g domain.GameSession
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, status, current_player_index, skipped_player_index,
		        winner_id, version, created_at, finished_at
		 FROM game_sessions WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.Status, &g.CurrentPlayerIndex, &g.SkippedPlayerIndex,
		&g.WinnerID, &g.Version, &g.CreatedAt, &g.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameNotFound(id)
		}
		return nil, fmt.Errorf("get game: %w", err)
	}

	if g.Players, err = r.getSeats(ctx, id); err != nil {
		return nil, err
	}
	if g.Deck, err = r.getDeck(ctx, id); err != nil {
		return nil, err
	}
	if g.Turns, err = r.getTurns(ctx, id); err != nil {
		return nil, err
	}
	if g.Points, err = r.getPoints(ctx, id); err != nil {
		return nil, err
	}
	return &g, nil
}

// Update saves the mutated aggregate atomically. It fails with a Conflict
// domain error when the stored version no longer matches the loaded one, in
// which case the caller must reload and retry.
func (r *GameRepository) Update(ctx context.Context, game *domain.GameSession) (*domain.GameSession, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update game: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE game_sessions
		 SET status = $2, current_player_index = $3, skipped_player_index = $4,
		     winner_id = $5, finished_at = $6, version = version + 1
		 WHERE id = $1 AND version = $7`,
		game.ID, game.Status, game.CurrentPlayerIndex, game.SkippedPlayerIndex,
		game.WinnerID, game.FinishedAt, game.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrConflict(fmt.Sprintf("game %d was modified concurrently", game.ID))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM game_players WHERE game_id = $1`, game.ID); err != nil {
		return nil, fmt.Errorf("clear seats: %w", err)
	}
	if err := insertSeats(ctx, tx, game); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM game_cards WHERE game_id = $1`, game.ID); err != nil {
		return nil, fmt.Errorf("clear deck: %w", err)
	}
	for pos, card := range game.Deck {
		err := tx.QueryRow(ctx,
			`INSERT INTO game_cards (game_id, position, kind, name, value)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			game.ID, pos, card.Kind, card.Name, card.Value,
		).Scan(&game.Deck[pos].ID)
		if err != nil {
			return nil, fmt.Errorf("insert card: %w", err)
		}
	}

	for i := range game.Turns {
		turn := &game.Turns[i]
		if turn.ID != 0 {
			continue
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO game_turns (game_id, player_id, player_name, card_kind,
			                         card_name, card_value, effect, points_changed,
			                         turn_order_changed, new_points)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id, created_at`,
			game.ID, turn.PlayerID, turn.PlayerName, turn.Card.Kind,
			turn.Card.Name, turn.Card.Value, turn.Effect, turn.PointsChanged,
			turn.TurnOrderChanged, turn.NewPoints,
		).Scan(&turn.ID, &turn.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert turn: %w", err)
		}
	}

	for userID, points := range game.Points {
		_, err := tx.Exec(ctx,
			`INSERT INTO game_points (game_id, user_id, points)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (game_id, user_id) DO UPDATE SET points = EXCLUDED.points`,
			game.ID, userID, points,
		)
		if err != nil {
			return nil, fmt.Errorf("upsert points: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update game: %w", err)
	}

	game.Version++
	return game, nil
}

// ListByPlayer returns every session the player is seated in, oldest first.
func (r *GameRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*domain.GameSession, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT game_id FROM game_players WHERE user_id = $1 ORDER BY game_id`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	games := make([]*domain.GameSession, 0, len(ids))
	for _, id := range ids {
		game, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func insertSeats(ctx context.Context, tx pgx.Tx, game *domain.GameSession) error {
	for seat, player := range game.Players {
		_, err := tx.Exec(ctx,
			`INSERT INTO game_players (game_id, user_id, seat) VALUES ($1, $2, $3)`,
			game.ID, player.ID, seat,
		)
		if err != nil {
			return fmt.Errorf("insert seat: %w", err)
		}
	}
	return nil
}

func (r *GameRepository) getSeats(ctx context.Context, gameID int64) ([]domain.Player, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT u.id, u.name
		 FROM game_players gp
		 JOIN users u ON u.id = gp.user_id
		 WHERE gp.game_id = $1
		 ORDER BY gp.seat`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("get seats: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *GameRepository) getDeck(ctx context.Context, gameID int64) ([]domain.Card, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, kind, name, value
		 FROM game_cards
		 WHERE game_id = $1
		 ORDER BY position`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	defer rows.Close()

	var deck []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.ID, &c.Kind, &c.Name, &c.Value); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		deck = append(deck, c)
	}
	return deck, rows.Err()
}

func (r *GameRepository) getTurns(ctx context.Context, gameID int64) ([]domain.Turn, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, player_id, player_name, card_kind, card_name, card_value,
		        effect, points_changed, turn_order_changed, new_points, created_at
		 FROM game_turns
		 WHERE game_id = $1
		 ORDER BY id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("get turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		err := rows.Scan(&t.ID, &t.PlayerID, &t.PlayerName, &t.Card.Kind,
			&t.Card.Name, &t.Card.Value, &t.Effect, &t.PointsChanged,
			&t.TurnOrderChanged, &t.NewPoints, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (r *GameRepository) getPoints(ctx context.Context, gameID int64) (map[int64]int, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT user_id, points FROM game_points WHERE game_id = $1`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("get points: %w", err)
	}
	defer rows.Close()

	points := make(map[int64]int)
	for rows.Next() {
		var userID int64
		var p int
		if err := rows.Scan(&userID, &p); err != nil {
			return nil, fmt.Errorf("scan points: %w", err)
		}
		points[userID] = p
	}
	return points, rows.Err()
}
