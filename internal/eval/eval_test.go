package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvchess/chesscore/internal/chess"
	"github.com/kvchess/chesscore/internal/position"
)

func TestAccumulatorMatchesFromScratchAfterIncrementalUpdates(t *testing.T) {
	p, err := position.FromFEN(position.StartingFEN)
	require.NoError(t, err)
	aug := position.NewAugmented(p)

	acc := NewAccumulator(aug.PieceAt)
	assert.Equal(t, 0, acc.Score, "the starting position is symmetric")

	from, to := chess.NewSquare(4, 1), chess.NewSquare(4, 3)
	aug.Move(from, to, chess.White, chess.Pawn)
	acc.Move(from, to, chess.White, chess.Pawn)

	want := NewAccumulator(aug.PieceAt)
	assert.Equal(t, want.Score, acc.Score)

	// Capture a piece and promote a pawn; verify Remove/Add/Swap keep the
	// running score in agreement with a from-scratch recomputation.
	victimSq := chess.NewSquare(3, 6)
	aug.Add(victimSq, chess.Black, chess.Pawn)
	acc.Add(victimSq, chess.Black, chess.Pawn)
	aug.Remove(victimSq, chess.Black, chess.Pawn)
	acc.Remove(victimSq, chess.Black, chess.Pawn)

	promoSq := chess.NewSquare(0, 7)
	aug.Add(promoSq, chess.White, chess.Pawn)
	acc.Add(promoSq, chess.White, chess.Pawn)
	aug.Swap(promoSq, chess.White, chess.Pawn, chess.Queen)
	acc.Swap(promoSq, chess.White, chess.Pawn, chess.Queen)

	want = NewAccumulator(aug.PieceAt)
	assert.Equal(t, want.Score, acc.Score)
}

func TestRelativeFlipsSignForBlack(t *testing.T) {
	acc := &Accumulator{Score: 150}
	assert.Equal(t, 150, acc.Relative(chess.White))
	assert.Equal(t, -150, acc.Relative(chess.Black))
}

func TestPieceValuesAreConventional(t *testing.T) {
	assert.Equal(t, PawnValue, PieceValue(chess.Pawn))
	assert.Less(t, PieceValue(chess.Knight), PieceValue(chess.Bishop)+1)
	assert.Less(t, PieceValue(chess.Rook), PieceValue(chess.Queen))
	assert.Greater(t, PieceValue(chess.King), PieceValue(chess.Queen))
}

func TestMirrorIsAnInvolution(t *testing.T) {
	for sq := chess.Square(0); sq < 64; sq++ {
		assert.Equal(t, sq, mirror(mirror(sq)))
	}
}
