package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvchess/chesscore/internal/chess"
)

func TestFromFENStartingPosition(t *testing.T) {
	p, err := FromFEN(StartingFEN)
	require.NoError(t, err)

	assert.Equal(t, chess.White, p.SideToMove)
	assert.Equal(t, chess.AllCastlingRights, p.CastlingRights)
	assert.Equal(t, chess.NoSquare, p.EPSquare)
	assert.Equal(t, 0, p.HalfmoveClock)
	assert.Equal(t, 1, p.FullmoveNumber)

	c, piece, ok := p.PieceAt(chess.NewSquare(4, 0))
	require.True(t, ok)
	assert.Equal(t, chess.White, c)
	assert.Equal(t, chess.King, piece)

	_, _, ok = p.PieceAt(chess.NewSquare(4, 3))
	assert.False(t, ok)
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	} {
		p, err := FromFEN(fen)
		require.NoErrorf(t, err, "fen %q", fen)
		assert.Equal(t, fen, p.ToFEN())
	}
}

func TestFromFENRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, fen := range cases {
		_, err := FromFEN(fen)
		assert.Errorf(t, err, "fen %q should be rejected", fen)
	}
}

func TestFromFENToleratesDuplicateCastlingLetters(t *testing.T) {
	p, err := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KKQkq - 0 1")
	require.NoError(t, err)
	assert.True(t, p.CastlingRights.Has(chess.White, chess.KingSide))
	assert.True(t, p.CastlingRights.Has(chess.White, chess.QueenSide))
	assert.Equal(t, chess.AllCastlingRights, p.CastlingRights)
}
