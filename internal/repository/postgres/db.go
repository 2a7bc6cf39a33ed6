// Package postgres persists users and game aggregates with pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

// New connects to the database, verifies the connection, and ensures the
// schema exists.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{Pool: pool}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

// Ping reports database liveness, used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *DB) ensureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	login         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS game_sessions (
	id                   BIGSERIAL PRIMARY KEY,
	status               TEXT NOT NULL,
	current_player_index INT NOT NULL DEFAULT 0,
	skipped_player_index INT,
	winner_id            BIGINT REFERENCES users(id),
	version              BIGINT NOT NULL DEFAULT 1,
	created_at           TIMESTAMPTZ NOT NULL,
	finished_at          TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS game_players (
	game_id BIGINT NOT NULL REFERENCES game_sessions(id) ON DELETE CASCADE,
	user_id BIGINT NOT NULL REFERENCES users(id),
	seat    INT NOT NULL,
	PRIMARY KEY (game_id, user_id),
	UNIQUE (game_id, seat)
);

CREATE TABLE IF NOT EXISTS game_cards (
	id       BIGSERIAL PRIMARY KEY,
	game_id  BIGINT NOT NULL REFERENCES game_sessions(id) ON DELETE CASCADE,
	position INT NOT NULL,
	kind     TEXT NOT NULL,
	name     TEXT NOT NULL,
	value    INT NOT NULL,
	UNIQUE (game_id, position),
	UNIQUE (game_id, name)
);

CREATE TABLE IF NOT EXISTS game_turns (
	id                 BIGSERIAL PRIMARY KEY,
	game_id            BIGINT NOT NULL REFERENCES game_sessions(id) ON DELETE CASCADE,
	player_id          BIGINT NOT NULL REFERENCES users(id),
	player_name        TEXT NOT NULL,
	card_kind          TEXT NOT NULL,
	card_name          TEXT NOT NULL,
	card_value         INT NOT NULL,
	effect             TEXT NOT NULL,
	points_changed     BOOLEAN NOT NULL DEFAULT FALSE,
	turn_order_changed BOOLEAN NOT NULL DEFAULT FALSE,
	new_points         INT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS game_points (
	game_id BIGINT NOT NULL REFERENCES game_sessions(id) ON DELETE CASCADE,
	user_id BIGINT NOT NULL REFERENCES users(id),
	points  INT NOT NULL,
	PRIMARY KEY (game_id, user_id)
);
`
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
