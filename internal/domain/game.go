package domain

import "time"

type GameStatus string

const (
	StatusWaitForPlayers GameStatus = "WAIT_FOR_PLAYERS"
	StatusInProgress     GameStatus = "IN_PROGRESS"
	StatusFinished       GameStatus = "FINISHED"
)

const (
	// MinPlayers and MaxPlayers bound the seat count of a startable game.
	MinPlayers = 2
	MaxPlayers = 4

	// PointThreshold ends the game with a winner once any player reaches it.
	// DoubleDown also caps at this value.
	PointThreshold = 30
)

// Player is a seated participant, referenced by id. Identity is owned by the
// auth collaborator; the aggregate only carries the id and display name.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GameSession is the aggregate root. Deck and turn log are exclusively owned
// by the session and persist with it as one atomic unit. Version supports
// optimistic concurrency: every save increments it, and a stale save fails.
type GameSession struct {
	ID                 int64
	Status             GameStatus
	Players            []Player
	Deck               []Card
	Turns              []Turn
	Points             map[int64]int
	CurrentPlayerIndex int
	SkippedPlayerIndex *int
	WinnerID           *int64
	Version            int64
	CreatedAt          time.Time
	FinishedAt         *time.Time
}

// HasPlayer reports whether the given user occupies a seat.
func (g *GameSession) HasPlayer(userID int64) bool {
	for _, p := range g.Players {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// Owner returns the player in the first seat, the game's creator.
func (g *GameSession) Owner() (Player, bool) {
	if len(g.Players) == 0 {
		return Player{}, false
	}
	return g.Players[0], true
}

// CurrentPlayer returns the player whose turn it is.
func (g *GameSession) CurrentPlayer() (Player, bool) {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return Player{}, false
	}
	return g.Players[g.CurrentPlayerIndex], true
}

// PlayerByID looks up a seated player.
func (g *GameSession) PlayerByID(userID int64) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == userID {
			return p, true
		}
	}
	return Player{}, false
}

// PointsFor returns the player's points; absent entries count as zero.
func (g *GameSession) PointsFor(userID int64) int {
	return g.Points[userID]
}

// SetPoints records a player's points, allocating the map on first write.
func (g *GameSession) SetPoints(userID int64, points int) {
	if g.Points == nil {
		g.Points = make(map[int64]int)
	}
	g.Points[userID] = points
}

// LastTurn returns the most recent turn record, if any.
func (g *GameSession) LastTurn() *Turn {
	if len(g.Turns) == 0 {
		return nil
	}
	return &g.Turns[len(g.Turns)-1]
}

// Winner resolves the winning seat once the game has finished: the highest
// points total, ties broken by the lowest seat index.
func (g *GameSession) Winner() (Player, bool) {
	if len(g.Players) == 0 {
		return Player{}, false
	}
	best := g.Players[0]
	for _, p := range g.Players[1:] {
		if g.PointsFor(p.ID) > g.PointsFor(best.ID) {
			best = p
		}
	}
	return best, true
}
