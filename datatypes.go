package chessenv

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// NominalActionSpace is the fixed action-space size advertised to RL
// frameworks that want a static categorical output. It is an upper bound
// only: the number of actions actually available at any point is
// Env.ActionCount, and action indices are positions in the current
// legal-move enumeration, not entries in a stable move vocabulary.
const NominalActionSpace = 4672

// Config holds the reward-shaping knobs of the environment.
type Config struct {
	// PenaltyRate is the base tempo penalty applied per half-move.
	PenaltyRate float32 `json:"penalty_rate"`
	// PenaltyGrowth is the per-half-move exponential growth factor of the
	// tempo penalty.
	PenaltyGrowth float32 `json:"penalty_growth"`
	// TerminalBonus is added to (or subtracted from) the cumulative reward
	// when the game ends decisively.
	TerminalBonus float32 `json:"terminal_bonus"`
}

// DefaultConfig returns the standard shaping parameters.
func DefaultConfig() Config {
	return Config{
		PenaltyRate:   0.01,
		PenaltyGrowth: 1.01,
		TerminalBonus: 100,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.PenaltyRate < 0 {
		result = multierror.Append(result, errors.Errorf("penalty rate must be non-negative, got %v", c.PenaltyRate))
	}
	if c.PenaltyGrowth < 1 {
		result = multierror.Append(result, errors.Errorf("penalty growth must be at least 1, got %v", c.PenaltyGrowth))
	}
	if c.TerminalBonus < 0 {
		result = multierror.Append(result, errors.Errorf("terminal bonus must be non-negative, got %v", c.TerminalBonus))
	}
	return result.ErrorOrNil()
}

// StepResult is what the agent sees after one half-move.
type StepResult struct {
	// Observation is the encoded position after the move, shape (8, 8, 12).
	Observation *tensor.Dense
	// Reward is the incremental shaping reward for this half-move; on the
	// terminal step it is the final cumulative reward instead.
	Reward float32
	// Done reports whether the episode has ended.
	Done bool
}
