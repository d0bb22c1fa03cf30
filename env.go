// Package chessenv exposes a chess game as a sequential decision process for
// reinforcement-learning agents: the agent observes an encoded board, picks
// an index into the current legal-move enumeration, and receives a scalar
// shaping reward after every half-move.
//
// The chess rules themselves (move generation, board mutation, game-over
// detection) come from github.com/notnil/chess; this package only defines the
// environment contract around them.
package chessenv

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/chessenv/game"
)

// ErrEpisodeDone is returned by Step once the episode has reached a terminal
// state; call Reset to start a new one.
var ErrEpisodeDone = errors.New("episode has ended, call Reset")

// Env is one environment instance: a board, the side the agent controls, and
// the running episode state (half-move count, cumulative reward, evaluation
// baseline).
//
// An Env is not safe for concurrent use. For parallel self-play give every
// goroutine its own instance (see Arena); instances share nothing.
type Env struct {
	board *game.Board
	eval  *Evaluator

	agent      chess.Color
	prevEval   float32
	cumulative float32
}

// New builds an environment with the given shaping configuration. The board
// starts at the standard position; call Reset before stepping.
func New(conf Config) (*Env, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid environment config")
	}
	return &Env{
		board: game.NewBoard(),
		eval:  NewEvaluator(conf),
	}, nil
}

// Reset starts a new episode with the agent controlling the given side and
// returns the observation of the standard starting position. Reset never
// fails.
func (e *Env) Reset(agent chess.Color) *tensor.Dense {
	e.board.Reset()
	e.agent = agent
	e.prevEval = 0
	e.cumulative = 0
	return game.Encode(e.board.Position())
}

// ResetFEN starts an episode from an arbitrary FEN position instead of the
// standard start. The evaluation baseline is set to the position's own score
// rather than zero, so the first reward reflects only the first move.
// Intended for analysis and tests; training episodes use Reset.
func (e *Env) ResetFEN(agent chess.Color, fen string) (*tensor.Dense, error) {
	b, err := game.NewBoardFEN(fen)
	if err != nil {
		return nil, err
	}
	e.board = b
	e.agent = agent
	e.cumulative = 0
	_, e.prevEval = e.eval.Evaluate(b.Position(), 0, 0)
	return game.Encode(b.Position()), nil
}

// Step resolves action against the current legal-move enumeration, applies
// the move and returns the new observation, the reward and whether the
// episode ended.
//
// The reward is the change in (material + tempo) evaluation caused by the
// half-move. On the terminal step it is the final cumulative reward instead:
// a decisive result adds the terminal bonus for an agent win and subtracts it
// for a loss, while a draw resets the cumulative reward to zero.
//
// An out-of-range action fails with *game.InvalidActionError and leaves the
// position and episode state untouched. Stepping a finished episode fails
// with ErrEpisodeDone.
func (e *Env) Step(action int) (*StepResult, error) {
	if e.board.Terminal() {
		return nil, errors.WithStack(ErrEpisodeDone)
	}
	if err := e.board.Apply(action); err != nil {
		return nil, err
	}

	terminal := e.board.Terminal()
	delta, eval := e.eval.Evaluate(e.board.Position(), e.board.MoveCount(), e.prevEval)
	e.prevEval = eval
	e.cumulative += delta

	reward := delta
	if terminal {
		outcome, err := e.board.Outcome()
		if err != nil {
			return nil, err
		}
		e.cumulative = e.eval.TerminalAdjust(e.cumulative, outcome, e.agent)
		reward = e.cumulative
	}

	return &StepResult{
		Observation: game.Encode(e.board.Position()),
		Reward:      reward,
		Done:        terminal,
	}, nil
}

// LegalMoves returns the engine's move enumeration for the current position.
// Step(i) plays LegalMoves()[i].
func (e *Env) LegalMoves() []*chess.Move {
	return e.board.LegalMoves()
}

// ActionCount returns the number of actions currently available. Unlike
// NominalActionSpace this is the true per-position count.
func (e *Env) ActionCount() int {
	return len(e.board.LegalMoves())
}

// Terminal reports whether the current episode has ended.
func (e *Env) Terminal() bool {
	return e.board.Terminal()
}

// Outcome returns the categorical result of a finished episode. It fails
// with game.ErrNotTerminal while the episode is running.
func (e *Env) Outcome() (chess.Outcome, error) {
	return e.board.Outcome()
}

// Method reports which rule ended the episode.
func (e *Env) Method() chess.Method {
	return e.board.Method()
}

// AgentColor returns the side the agent controls in the current episode.
func (e *Env) AgentColor() chess.Color {
	return e.agent
}

// MoveCount returns the number of half-moves played this episode.
func (e *Env) MoveCount() int {
	return e.board.MoveCount()
}

// CumulativeReward returns the running episode reward, including any
// terminal adjustment.
func (e *Env) CumulativeReward() float32 {
	return e.cumulative
}

// FEN returns the current position, mainly for logging.
func (e *Env) FEN() string {
	return e.board.FEN()
}
