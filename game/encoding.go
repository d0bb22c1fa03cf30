package game

import (
	"github.com/notnil/chess"
	"gorgonia.org/tensor"
)

const (
	RowNum = 8
	ColNum = 8
	// PieceChannels is one plane per piece type and color: white P,N,B,R,Q,K
	// on channels 0-5, black on 6-11.
	PieceChannels = 12
)

// PieceChannel maps a piece to its observation channel, or -1 for NoPiece.
func PieceChannel(p chess.Piece) int {
	var ch int
	switch p.Type() {
	case chess.Pawn:
		ch = 0
	case chess.Knight:
		ch = 1
	case chess.Bishop:
		ch = 2
	case chess.Rook:
		ch = 3
	case chess.Queen:
		ch = 4
	case chess.King:
		ch = 5
	default:
		return -1
	}
	if p.Color() == chess.Black {
		ch += 6
	}
	return ch
}

// Encode converts a position into a binary (8, 8, 12) float32 tensor.
// Index order is rank-major then file then channel, with rank 0 = rank 1 and
// file 0 = file a. That matches the engine's square numbering (A1=0, H8=63,
// square = rank*8 + file), so the flat offset of a square's planes is just
// square*PieceChannels. Exactly one channel is set for an occupied square,
// none for an empty one.
//
// Encode is a pure function of the position: the returned tensor is freshly
// allocated and identical positions encode identically.
func Encode(pos *chess.Position) *tensor.Dense {
	board := pos.Board()
	backing := make([]float32, RowNum*ColNum*PieceChannels)
	for sq := 0; sq < RowNum*ColNum; sq++ {
		p := board.Piece(chess.Square(sq))
		if p == chess.NoPiece {
			continue
		}
		backing[sq*PieceChannels+PieceChannel(p)] = 1
	}
	return tensor.New(
		tensor.WithShape(RowNum, ColNum, PieceChannels),
		tensor.WithBacking(backing),
	)
}
