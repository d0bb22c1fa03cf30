package chessenv

import (
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// An Agent picks an action index given the current observation and the
// number of legal moves. Learning agents live outside this module; the
// interface is what the arena needs to drive episodes.
type Agent interface {
	SelectAction(obs *tensor.Dense, legalMoves int) (int, error)
}

// RandomAgent plays uniformly random legal moves from a seeded source, which
// makes rollouts reproducible for a fixed seed.
type RandomAgent struct {
	r *rand.Rand
}

// NewRandomAgent returns a random-policy agent seeded with seed.
func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{r: rand.New(rand.NewSource(seed))}
}

// SelectAction returns a uniformly random index in [0, legalMoves).
func (a *RandomAgent) SelectAction(_ *tensor.Dense, legalMoves int) (int, error) {
	if legalMoves <= 0 {
		return 0, errors.Errorf("no legal moves to select from (%d)", legalMoves)
	}
	return a.r.Intn(legalMoves), nil
}
