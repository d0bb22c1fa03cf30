package chessenv

import (
	"github.com/chewxy/math32"
	"github.com/notnil/chess"
)

// Evaluator scores positions for reward shaping. Scores stay in the
// white-positive convention throughout; only the terminal bonus is
// agent-relative.
type Evaluator struct {
	conf Config
}

// NewEvaluator returns an evaluator using the given shaping parameters.
func NewEvaluator(conf Config) *Evaluator {
	return &Evaluator{conf: conf}
}

func pieceValue(t chess.PieceType) float32 {
	switch t {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 3
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	default:
		// kings are not scored
		return 0
	}
}

// Material returns the material balance of the board, white-positive:
// pawn 1, knight 3, bishop 3, rook 5, queen 9.
func (e *Evaluator) Material(board *chess.Board) float32 {
	var score float32
	for sq := 0; sq < 64; sq++ {
		p := board.Piece(chess.Square(sq))
		if p == chess.NoPiece {
			continue
		}
		v := pieceValue(p.Type())
		if p.Color() == chess.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// Evaluate scores the position after a half-move and returns both the
// incremental reward (the change against prevEval) and the new evaluation
// baseline the caller must carry into the next call.
//
// The evaluation is material minus a signed tempo penalty. The penalty grows
// exponentially with the half-move count and its sign follows the side to
// move next: -penalty when white is to move, +penalty otherwise. The
// incremental reward is therefore dense per-move feedback, not the raw score.
func (e *Evaluator) Evaluate(pos *chess.Position, moveCount int, prevEval float32) (delta, eval float32) {
	material := e.Material(pos.Board())
	penalty := e.conf.PenaltyRate * math32.Pow(e.conf.PenaltyGrowth, float32(moveCount))
	signed := penalty
	if pos.Turn() == chess.White {
		signed = -penalty
	}
	eval = material - signed
	return eval - prevEval, eval
}

// TerminalAdjust folds the game result into the cumulative reward: the
// configured bonus is added when the agent's color won and subtracted when
// it lost. A draw resets the cumulative reward to zero, discarding all
// shaping earned during the episode.
func (e *Evaluator) TerminalAdjust(cumulative float32, outcome chess.Outcome, agent chess.Color) float32 {
	switch outcome {
	case chess.WhiteWon:
		if agent == chess.White {
			return cumulative + e.conf.TerminalBonus
		}
		return cumulative - e.conf.TerminalBonus
	case chess.BlackWon:
		if agent == chess.Black {
			return cumulative + e.conf.TerminalBonus
		}
		return cumulative - e.conf.TerminalBonus
	default:
		return 0
	}
}
