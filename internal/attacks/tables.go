// Package attacks builds and exposes the precomputed attack tables described
// in SPEC_FULL.md §4.2: per-square jumping-piece tables filled once at
// startup by a slow reference generator, and per-square sliding-piece tables
// indexed either by a BMI2 PEXT of the occupancy or by a magic-bitboard
// multiply-and-shift, whichever the host CPU supports.
package attacks

import (
	"github.com/kvchess/chesscore/internal/bitboard"
	"github.com/kvchess/chesscore/internal/chess"
)

// Jumping-piece tables, filled once by init().
var (
	knightTable    [64]bitboard.Board
	kingTable      [64]bitboard.Board
	pawnAttacks    [2][64]bitboard.Board // [colour][square]
	pawnPushes     [2][64]bitboard.Board
	pawnDblPushes  [2][64]bitboard.Board // only populated for squares on the starting rank
)

func init() {
	initJumpingTables()
	initSlidingTables()
}

// initJumpingTables fills the king/knight/pawn tables by shifting a
// singleton in each legal direction from every origin square and discarding
// any shift that would wrap across a board edge.
func initJumpingTables() {
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

	for sq := 0; sq < 64; sq++ {
		origin := bitboard.FromSquare(sq)

		var knight bitboard.Board
		for _, d := range knightDeltas {
			knight |= bitboard.Shift(origin, d[0], d[1])
		}
		knightTable[sq] = knight

		var king bitboard.Board
		for _, d := range kingDeltas {
			king |= bitboard.Shift(origin, d[0], d[1])
		}
		kingTable[sq] = king

		// White pawn attacks/pushes point north, Black point south.
		whiteAtk := bitboard.Shift(origin, 1, 1) | bitboard.Shift(origin, -1, 1)
		blackAtk := bitboard.Shift(origin, 1, -1) | bitboard.Shift(origin, -1, -1)
		pawnAttacks[chess.White.Index()][sq] = whiteAtk
		pawnAttacks[chess.Black.Index()][sq] = blackAtk

		pawnPushes[chess.White.Index()][sq] = bitboard.Shift(origin, 0, 1)
		pawnPushes[chess.Black.Index()][sq] = bitboard.Shift(origin, 0, -1)

		if origin&bitboard.Rank2 != 0 {
			pawnDblPushes[chess.White.Index()][sq] = bitboard.Shift(origin, 0, 2)
		}
		if origin&bitboard.Rank7 != 0 {
			pawnDblPushes[chess.Black.Index()][sq] = bitboard.Shift(origin, 0, -2)
		}
	}
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq chess.Square) bitboard.Board { return knightTable[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq chess.Square) bitboard.Board { return kingTable[sq] }

// PawnAttacks returns the diagonal capture squares for a pawn of colour c on sq.
func PawnAttacks(c chess.Color, sq chess.Square) bitboard.Board {
	return pawnAttacks[c.Index()][sq]
}

// PawnPush returns the single-push destination square for a pawn of colour c on sq.
func PawnPush(c chess.Color, sq chess.Square) bitboard.Board {
	return pawnPushes[c.Index()][sq]
}

// PawnDoublePush returns the double-push destination for a pawn of colour c
// on sq, or Empty if sq is not on that colour's starting rank.
func PawnDoublePush(c chess.Color, sq chess.Square) bitboard.Board {
	return pawnDblPushes[c.Index()][sq]
}
