package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareFileRankRoundTrip(t *testing.T) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			assert.Equal(t, file, sq.File())
			assert.Equal(t, rank, sq.Rank())
		}
	}
	assert.Equal(t, Square(0), NewSquare(0, 0))
	assert.Equal(t, Square(63), NewSquare(7, 7))
}

func TestParseSquareRoundTrip(t *testing.T) {
	for _, alg := range []string{"a1", "e4", "h8", "d5"} {
		sq, err := ParseSquare(alg)
		require.NoError(t, err)
		assert.Equal(t, alg, sq.String())
	}

	_, err := ParseSquare("i9")
	assert.Error(t, err)
	_, err = ParseSquare("e")
	assert.Error(t, err)
}

func TestColorIndexAndFlip(t *testing.T) {
	assert.Equal(t, 1, White.Index())
	assert.Equal(t, 0, Black.Index())
	assert.Equal(t, Black, White.Flip())
	assert.Equal(t, White, Black.Flip())
}

func TestCastlingRightsSetClearToggle(t *testing.T) {
	var r CastlingRights
	r.Set(White, KingSide)
	r.Set(White, KingSide) // idempotent, unlike Toggle
	assert.True(t, r.Has(White, KingSide))
	assert.False(t, r.Has(White, QueenSide))

	cleared := r.Clear(White, KingSide)
	assert.NotZero(t, cleared)
	assert.False(t, r.Has(White, KingSide))

	cleared = r.Clear(White, KingSide)
	assert.Zero(t, cleared, "clearing an already-absent right reports nothing cleared")

	r.Toggle(Black, QueenSide)
	assert.True(t, r.Has(Black, QueenSide))
	r.Toggle(Black, QueenSide)
	assert.False(t, r.Has(Black, QueenSide))
}

func TestMovePackingRoundTrip(t *testing.T) {
	m := NewMove(NewSquare(4, 1), NewSquare(4, 3), DoublePawnPush)
	assert.Equal(t, NewSquare(4, 1), m.From())
	assert.Equal(t, NewSquare(4, 3), m.To())
	assert.Equal(t, DoublePawnPush, m.Type())
	assert.False(t, m.IsZero())

	var zero Move
	assert.True(t, zero.IsZero())
}

func TestMoveTypeCaptureAndPromotionFlags(t *testing.T) {
	assert.True(t, Capture.IsCapture())
	assert.False(t, Capture.IsPromotion())
	assert.True(t, PromoQueenCap.IsCapture())
	assert.True(t, PromoQueenCap.IsPromotion())
	assert.Equal(t, Queen, PromoQueenCap.PromotedPiece())
	assert.Equal(t, Knight, PromoKnight.PromotedPiece())
	assert.False(t, Quiet.IsCapture())
	assert.False(t, EnPassant.IsPromotion())
	assert.True(t, EnPassant.IsCapture())
}

func TestCastlingTableIsSelfConsistent(t *testing.T) {
	for _, c := range []Color{White, Black} {
		for _, side := range []CastlingSide{KingSide, QueenSide} {
			spec := Castling[c.Index()][side]
			assert.Equal(t, spec.KingFrom, spec.KingPath[0])
			assert.Equal(t, spec.KingTo, spec.KingPath[2])
			assert.NotEqual(t, spec.KingFrom, spec.RookFrom)
		}
	}
}
