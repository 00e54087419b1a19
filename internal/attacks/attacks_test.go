package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvchess/chesscore/internal/bitboard"
	"github.com/kvchess/chesscore/internal/chess"
)

func TestKnightAttacksFromCornerHasTwoTargets(t *testing.T) {
	assert.Equal(t, 2, KnightAttacks(chess.NewSquare(0, 0)).PopCount())
}

func TestKingAttacksFromCornerHasThreeTargets(t *testing.T) {
	assert.Equal(t, 3, KingAttacks(chess.NewSquare(0, 0)).PopCount())
}

func TestKnightAttacksFromCenterHasEightTargets(t *testing.T) {
	assert.Equal(t, 8, KnightAttacks(chess.NewSquare(3, 3)).PopCount())
}

func TestPawnAttacksOnFileEdgeHasOneTarget(t *testing.T) {
	assert.Equal(t, 1, PawnAttacks(chess.White, chess.NewSquare(0, 3)).PopCount())
	assert.Equal(t, 2, PawnAttacks(chess.White, chess.NewSquare(3, 3)).PopCount())
}

func TestPawnDoublePushOnlyFromStartingRank(t *testing.T) {
	assert.NotEqual(t, bitboard.Empty, PawnDoublePush(chess.White, chess.NewSquare(3, 1)))
	assert.Equal(t, bitboard.Empty, PawnDoublePush(chess.White, chess.NewSquare(3, 2)))
	assert.NotEqual(t, bitboard.Empty, PawnDoublePush(chess.Black, chess.NewSquare(3, 6)))
	assert.Equal(t, bitboard.Empty, PawnDoublePush(chess.Black, chess.NewSquare(3, 5)))
}

// slowRay independently re-derives the ray-walk algorithm rayAttack in
// magic.go implements, so the precomputed tables (whichever indexing scheme
// backs them on this host) can be checked against a fresh implementation
// rather than against themselves.
func slowRay(sq chess.Square, occ bitboard.Board, dirs [4][2]int) bitboard.Board {
	var result bitboard.Board
	file, rank := sq.File(), sq.Rank()
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for f >= 0 && f < 8 && r >= 0 && r < 8 {
			s := chess.NewSquare(f, r)
			bit := bitboard.FromSquare(int(s))
			result |= bit
			if occ&bit != 0 {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return result
}

func TestRookAttacksMatchSlowRayAcrossOccupancies(t *testing.T) {
	dirs := [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	occupancies := []bitboard.Board{
		bitboard.Empty,
		bitboard.FromSquare(int(chess.NewSquare(3, 3))),
		bitboard.Rank1 | bitboard.Rank8,
		bitboard.FileA | bitboard.FileH,
	}
	for sq := chess.Square(0); sq < 64; sq += 7 {
		for _, occ := range occupancies {
			want := slowRay(sq, occ, dirs)
			got := RookAttacks(sq, occ)
			assert.Equalf(t, want, got, "rook on %d with occupancy %x", sq, uint64(occ))
		}
	}
}

func TestBishopAttacksMatchSlowRayAcrossOccupancies(t *testing.T) {
	dirs := [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	occupancies := []bitboard.Board{
		bitboard.Empty,
		bitboard.FromSquare(int(chess.NewSquare(4, 4))),
		bitboard.Rank1 | bitboard.Rank8,
	}
	for sq := chess.Square(0); sq < 64; sq += 7 {
		for _, occ := range occupancies {
			want := slowRay(sq, occ, dirs)
			got := BishopAttacks(sq, occ)
			assert.Equalf(t, want, got, "bishop on %d with occupancy %x", sq, uint64(occ))
		}
	}
}

func TestQueenAttacksIsUnionOfRookAndBishop(t *testing.T) {
	sq := chess.NewSquare(3, 3)
	occ := bitboard.FromSquare(int(chess.NewSquare(3, 5)))
	assert.Equal(t, RookAttacks(sq, occ)|BishopAttacks(sq, occ), QueenAttacks(sq, occ))
}

func TestAttacksDispatchesByPieceType(t *testing.T) {
	sq := chess.NewSquare(3, 3)
	assert.Equal(t, KnightAttacks(sq), Attacks(chess.Knight, chess.White, sq, bitboard.Empty))
	assert.Equal(t, KingAttacks(sq), Attacks(chess.King, chess.White, sq, bitboard.Empty))
	assert.Equal(t, PawnAttacks(chess.Black, sq), Attacks(chess.Pawn, chess.Black, sq, bitboard.Empty))
	assert.Equal(t, RookAttacks(sq, bitboard.Empty), Attacks(chess.Rook, chess.White, sq, bitboard.Empty))
}
