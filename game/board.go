// Package game adapts the chess rules engine into the pieces an RL
// environment needs: a mutable board with an indexed action space, and a
// fixed-shape tensor encoding of positions.
package game

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// ErrNotTerminal is returned by Outcome when the game is still in progress.
var ErrNotTerminal = errors.New("game has not reached a terminal state")

// InvalidActionError reports an action index outside the current legal-move
// enumeration. It is a caller bug and is never recovered from locally.
type InvalidActionError struct {
	Action     int
	LegalMoves int
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %d: position has %d legal moves", e.Action, e.LegalMoves)
}

// IllegalPositionError reports the rules engine rejecting a move it itself
// enumerated. It should never occur through the documented interface.
type IllegalPositionError struct {
	Move string
	Err  error
}

func (e *IllegalPositionError) Error() string {
	return fmt.Sprintf("engine rejected enumerated move %s: %v", e.Move, e.Err)
}

func (e *IllegalPositionError) Unwrap() error { return e.Err }

// Board wraps a chess.Game and exposes it as an indexed-action state machine.
// Actions are indices into the engine's legal-move enumeration for the
// current position only; the same index means a different move once the
// position changes.
//
// notnil/chess generates moves in a fixed order (origin squares ascending,
// targets in bitboard order), so for a given position the enumeration is
// stable across runs. Tests rely on that.
type Board struct {
	g         *chess.Game
	moveCount int
}

// NewBoard returns a board at the standard starting position.
func NewBoard() *Board {
	return &Board{g: newGame()}
}

// NewBoardFEN returns a board starting from an arbitrary FEN position.
func NewBoardFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parse FEN %q", fen)
	}
	return &Board{g: chess.NewGame(opt, chess.UseNotation(chess.UCINotation{}))}, nil
}

func newGame() *chess.Game {
	return chess.NewGame(chess.UseNotation(chess.UCINotation{}))
}

// Reset puts the board back at the standard starting position and zeroes the
// move counter. Boards created with NewBoardFEN also reset to the standard
// start.
func (b *Board) Reset() {
	b.g = newGame()
	b.moveCount = 0
}

// LegalMoves returns the engine's enumeration of legal moves for the current
// position. The slice is the action space: Apply(i) plays LegalMoves()[i].
func (b *Board) LegalMoves() []*chess.Move {
	return b.g.ValidMoves()
}

// Apply resolves action against the current legal-move enumeration and plays
// the resolved move. On success the position mutates in place and the move
// counter increments; on failure neither changes.
func (b *Board) Apply(action int) error {
	moves := b.g.ValidMoves()
	if action < 0 || action >= len(moves) {
		return &InvalidActionError{Action: action, LegalMoves: len(moves)}
	}
	m := moves[action]
	if err := b.g.Move(m); err != nil {
		return &IllegalPositionError{Move: m.String(), Err: err}
	}
	b.moveCount++
	return nil
}

// Terminal reports whether the game has ended by the engine's rules
// (checkmate, stalemate, insufficient material, repetition or move limits).
func (b *Board) Terminal() bool {
	return b.g.Outcome() != chess.NoOutcome
}

// Outcome returns the categorical result. It fails with ErrNotTerminal while
// the game is still in progress.
func (b *Board) Outcome() (chess.Outcome, error) {
	out := b.g.Outcome()
	if out == chess.NoOutcome {
		return chess.NoOutcome, errors.WithStack(ErrNotTerminal)
	}
	return out, nil
}

// Method reports which rule ended the game (chess.NoMethod while running).
func (b *Board) Method() chess.Method {
	return b.g.Method()
}

// Position returns the engine's current position. Callers must treat it as
// read-only; all mutation goes through Apply.
func (b *Board) Position() *chess.Position {
	return b.g.Position()
}

// Turn returns the color to move next.
func (b *Board) Turn() chess.Color {
	return b.g.Position().Turn()
}

// MoveCount returns the number of half-moves applied since the last reset.
func (b *Board) MoveCount() int {
	return b.moveCount
}

// FEN returns the current position in FEN, mainly for logging.
func (b *Board) FEN() string {
	return b.g.Position().String()
}
