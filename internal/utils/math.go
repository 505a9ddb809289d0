package utils

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// RandomSource supplies uniformly distributed integers in an inclusive range
type RandomSource interface {
	IntN(min, max int) int
}

type mathRandSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a RandomSource backed by math/rand with a fixed seed
func NewSeededSource(seed int64) RandomSource {
	return &mathRandSource{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // game mechanics, not security
}

// NewRandomSource returns a RandomSource backed by the global math/rand generator
func NewRandomSource() RandomSource {
	return globalSource{}
}

func (s *mathRandSource) IntN(min, max int) int {
	if min >= max {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(max-min+1) + min
}

type globalSource struct{}

func (globalSource) IntN(min, max int) int {
	return RandomInt(min, max)
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// SafeAddInt64 adds two non-negative values, failing on overflow
func SafeAddInt64(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: negative operand", domain.ErrInvalidAmount)
	}
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("%w: %d + %d", domain.ErrOverflow, a, b)
	}
	return a + b, nil
}

// SafeMulInt64 multiplies two non-negative values, failing on overflow
func SafeMulInt64(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: negative operand", domain.ErrInvalidAmount)
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, fmt.Errorf("%w: %d * %d", domain.ErrOverflow, a, b)
	}
	return a * b, nil
}
