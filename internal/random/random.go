// Package random provides the injectable randomness capability used for
// card-value rolls, deck shuffling, and steal-target selection. Callers
// receive a Source instead of reaching for a global generator so that turn
// resolution is reproducible in tests.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Source supplies uniform random integers.
type Source interface {
	// IntBetween returns a uniform integer in [low, high], inclusive.
	IntBetween(low, high int) int
	// Index returns a uniform integer in [0, n). n must be positive.
	Index(n int) int
}

// Pick returns a uniformly chosen element of items. items must be non-empty.
func Pick[T any](src Source, items []T) T {
	return items[src.Index(len(items))]
}

// Shuffle permutes items uniformly in place (Fisher-Yates).
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Index(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// seededSource guards its generator with a mutex: one Source is shared by
// every request the game service handles.
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeed generates a high-entropy seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSource returns a pseudo-random Source for the given seed.
func NewSource(seed int64) Source {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) IntBetween(low, high int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return low + s.rng.Intn(high-low+1)
}

func (s *seededSource) Index(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
