package domain

import "time"

// Turn is one entry of the append-only turn log: who played, which card, and
// what it did. NewPoints is the actor's resulting total when the effect
// changed points, nil otherwise.
type Turn struct {
	ID               int64
	PlayerID         int64
	PlayerName       string
	Card             Card
	Effect           string
	PointsChanged    bool
	TurnOrderChanged bool
	NewPoints        *int
	CreatedAt        time.Time
}
