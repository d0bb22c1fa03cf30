package game

import (
	"math/rand"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestPieceChannel(t *testing.T) {
	require.Equal(t, 0, PieceChannel(chess.WhitePawn))
	require.Equal(t, 1, PieceChannel(chess.WhiteKnight))
	require.Equal(t, 2, PieceChannel(chess.WhiteBishop))
	require.Equal(t, 3, PieceChannel(chess.WhiteRook))
	require.Equal(t, 4, PieceChannel(chess.WhiteQueen))
	require.Equal(t, 5, PieceChannel(chess.WhiteKing))
	require.Equal(t, 6, PieceChannel(chess.BlackPawn))
	require.Equal(t, 11, PieceChannel(chess.BlackKing))
	require.Equal(t, -1, PieceChannel(chess.NoPiece))
}

func TestEncodeStartPosition(t *testing.T) {
	b := NewBoard()
	obs := Encode(b.Position())
	require.Equal(t, tensor.Shape{RowNum, ColNum, PieceChannels}, obs.Shape())

	data := obs.Data().([]float32)

	// white back rank on squares a1..h1: R N B Q K B N R
	backRank := []int{3, 1, 2, 4, 5, 2, 1, 3}
	for file, ch := range backRank {
		require.Equal(t, float32(1), data[file*PieceChannels+ch], "white piece on file %d", file)
	}
	for sq := 8; sq < 16; sq++ {
		require.Equal(t, float32(1), data[sq*PieceChannels], "white pawn on square %d", sq)
	}
	for sq := 16; sq < 48; sq++ {
		for ch := 0; ch < PieceChannels; ch++ {
			require.Zero(t, data[sq*PieceChannels+ch], "square %d should be empty", sq)
		}
	}
	for sq := 48; sq < 56; sq++ {
		require.Equal(t, float32(1), data[sq*PieceChannels+6], "black pawn on square %d", sq)
	}
	for file, ch := range backRank {
		sq := 56 + file
		require.Equal(t, float32(1), data[sq*PieceChannels+ch+6], "black piece on file %d", file)
	}

	var ones int
	for _, v := range data {
		if v == 1 {
			ones++
		}
	}
	require.Equal(t, 32, ones)
}

func TestEncodeDeterministic(t *testing.T) {
	a, b := NewBoard(), NewBoard()
	require.Equal(t, Encode(a.Position()).Data(), Encode(b.Position()).Data())
}

func TestEncodeOneChannelPerOccupiedSquare(t *testing.T) {
	b := NewBoard()
	r := rand.New(rand.NewSource(7))

	for ply := 0; ply < 60 && !b.Terminal(); ply++ {
		require.NoError(t, b.Apply(r.Intn(len(b.LegalMoves()))))

		data := Encode(b.Position()).Data().([]float32)
		occupied := 0
		for sq := 0; sq < RowNum*ColNum; sq++ {
			set := 0
			for ch := 0; ch < PieceChannels; ch++ {
				switch data[sq*PieceChannels+ch] {
				case 1:
					set++
				case 0:
				default:
					t.Fatalf("non-binary entry at square %d channel %d", sq, ch)
				}
			}
			require.LessOrEqual(t, set, 1, "square %d has %d channels set", sq, set)
			occupied += set
		}
		require.Equal(t, len(b.Position().Board().SquareMap()), occupied)
	}
}
