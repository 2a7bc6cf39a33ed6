package domain

import (
	"errors"
	"testing"
)

// stubSource returns scripted values so effects are fully deterministic.
type stubSource struct {
	ints    []int
	indexes []int
}

func (s *stubSource) IntBetween(low, high int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func (s *stubSource) Index(n int) int {
	if len(s.indexes) == 0 {
		return 0
	}
	v := s.indexes[0]
	s.indexes = s.indexes[1:]
	return v % n
}

func twoPlayerGame() *GameSession {
	return &GameSession{
		Status: StatusInProgress,
		Players: []Player{
			{ID: 1, Name: "Alice"},
			{ID: 2, Name: "Bob"},
		},
	}
}

func TestPointsEffect(t *testing.T) {
	game := twoPlayerGame()

	result, err := ApplyCardEffect(game, Card{Kind: CardPoints, Name: "Points Card 3-1", Value: 3}, game.Players[0], &stubSource{})
	if err != nil {
		t.Fatalf("ApplyCardEffect: %v", err)
	}

	if !result.PointsChanged {
		t.Error("expected PointsChanged")
	}
	if result.TurnOrderChanged {
		t.Error("unexpected TurnOrderChanged")
	}
	if game.PointsFor(1) != 3 {
		t.Errorf("actor points = %d, want 3", game.PointsFor(1))
	}
	if result.NewPoints == nil || *result.NewPoints != 3 {
		t.Errorf("NewPoints = %v, want 3", result.NewPoints)
	}
}

func TestBlockEffect(t *testing.T) {
	tests := []struct {
		name        string
		seats       int
		current     int
		wantSkipped int
		wantCurrent int
	}{
		{"two seats from zero", 2, 0, 1, 0},
		{"three seats from zero", 3, 0, 1, 2},
		{"three seats wraps", 3, 2, 0, 1},
		{"four seats from one", 4, 1, 2, 3},
		{"four seats wraps", 4, 3, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &GameSession{Status: StatusInProgress, CurrentPlayerIndex: tt.current}
			for i := 0; i < tt.seats; i++ {
				game.Players = append(game.Players, Player{ID: int64(i + 1)})
			}

			result, err := ApplyCardEffect(game, Card{Kind: CardBlock, Name: "Block-1", Value: 1}, game.Players[tt.current], &stubSource{})
			if err != nil {
				t.Fatalf("ApplyCardEffect: %v", err)
			}

			if !result.TurnOrderChanged {
				t.Error("expected TurnOrderChanged")
			}
			if result.PointsChanged {
				t.Error("unexpected PointsChanged")
			}
			if game.SkippedPlayerIndex == nil || *game.SkippedPlayerIndex != tt.wantSkipped {
				t.Errorf("SkippedPlayerIndex = %v, want %d", game.SkippedPlayerIndex, tt.wantSkipped)
			}
			if game.CurrentPlayerIndex != tt.wantCurrent {
				t.Errorf("CurrentPlayerIndex = %d, want %d", game.CurrentPlayerIndex, tt.wantCurrent)
			}
		})
	}
}

func TestStealEffect(t *testing.T) {
	tests := []struct {
		name         string
		cardValue    int
		targetPoints int
		wantStolen   int
	}{
		{"full steal", 2, 10, 2},
		{"capped by target", 3, 1, 1},
		{"target has nothing", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := twoPlayerGame()
			game.SetPoints(2, tt.targetPoints)
			sumBefore := game.PointsFor(1) + game.PointsFor(2)

			result, err := ApplyCardEffect(game, Card{Kind: CardSteal, Name: "Steal", Value: tt.cardValue}, game.Players[0], &stubSource{})
			if err != nil {
				t.Fatalf("ApplyCardEffect: %v", err)
			}

			if !result.PointsChanged {
				t.Error("expected PointsChanged")
			}
			if game.PointsFor(1) != tt.wantStolen {
				t.Errorf("actor points = %d, want %d", game.PointsFor(1), tt.wantStolen)
			}
			if game.PointsFor(2) != tt.targetPoints-tt.wantStolen {
				t.Errorf("target points = %d, want %d", game.PointsFor(2), tt.targetPoints-tt.wantStolen)
			}
			if sum := game.PointsFor(1) + game.PointsFor(2); sum != sumBefore {
				t.Errorf("points not conserved: sum %d, want %d", sum, sumBefore)
			}
		})
	}
}

func TestStealPicksTargetUniformly(t *testing.T) {
	game := &GameSession{
		Status: StatusInProgress,
		Players: []Player{
			{ID: 1, Name: "Alice"},
			{ID: 2, Name: "Bob"},
			{ID: 3, Name: "Carol"},
		},
	}
	game.SetPoints(2, 5)
	game.SetPoints(3, 5)

	// Index 1 of the others [Bob, Carol] selects Carol.
	_, err := ApplyCardEffect(game, Card{Kind: CardSteal, Name: "Steal", Value: 2}, game.Players[0], &stubSource{indexes: []int{1}})
	if err != nil {
		t.Fatalf("ApplyCardEffect: %v", err)
	}

	if game.PointsFor(3) != 3 {
		t.Errorf("Carol points = %d, want 3", game.PointsFor(3))
	}
	if game.PointsFor(2) != 5 {
		t.Errorf("Bob points = %d, want 5 (untouched)", game.PointsFor(2))
	}
	if game.PointsFor(1) != 2 {
		t.Errorf("actor points = %d, want 2", game.PointsFor(1))
	}
}

func TestStealWithNoTargets(t *testing.T) {
	game := &GameSession{
		Status:  StatusInProgress,
		Players: []Player{{ID: 1, Name: "Alice"}},
	}

	result, err := ApplyCardEffect(game, Card{Kind: CardSteal, Name: "Steal", Value: 2}, game.Players[0], &stubSource{})
	if err != nil {
		t.Fatalf("ApplyCardEffect: %v", err)
	}
	if result.PointsChanged || result.TurnOrderChanged {
		t.Errorf("expected a no-op result, got %+v", result)
	}
	if game.PointsFor(1) != 0 {
		t.Errorf("actor points = %d, want 0", game.PointsFor(1))
	}
}

func TestDoubleDownEffect(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{"doubles", 10, 20},
		{"caps at threshold", 16, PointThreshold},
		{"exactly half", 15, PointThreshold},
		{"zero stays zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := twoPlayerGame()
			game.SetPoints(1, tt.points)

			result, err := ApplyCardEffect(game, Card{Kind: CardDoubleDown, Name: "DoubleDown-1", Value: 2}, game.Players[0], &stubSource{})
			if err != nil {
				t.Fatalf("ApplyCardEffect: %v", err)
			}

			if game.PointsFor(1) != tt.want {
				t.Errorf("points = %d, want %d", game.PointsFor(1), tt.want)
			}
			if game.PointsFor(1) > PointThreshold {
				t.Errorf("points %d exceed threshold", game.PointsFor(1))
			}
			if !result.PointsChanged {
				t.Error("expected PointsChanged")
			}
		})
	}
}

func TestUnknownCardKind(t *testing.T) {
	game := twoPlayerGame()

	_, err := ApplyCardEffect(game, Card{Kind: "WILD", Name: "Wild-1"}, game.Players[0], &stubSource{})
	if err == nil {
		t.Fatal("expected error for unknown card kind")
	}
	if !errors.Is(err, NewError(CodeInvalidCard, "")) {
		t.Errorf("expected InvalidCard error, got %v", err)
	}
}
