package attacks

import (
	"github.com/kvchess/chesscore/internal/bitboard"
	"github.com/kvchess/chesscore/internal/chess"
)

// Attacks returns every square the given piece attacks from sq given the
// total board occupancy occ (pawns additionally need their colour). This is
// the single generic entry point named in SPEC_FULL.md §4.2; the per-piece
// functions (KnightAttacks, RookAttacks, ...) remain available directly for
// callers that already know the piece type and want to skip the dispatch.
func Attacks(piece chess.Piece, c chess.Color, sq chess.Square, occ bitboard.Board) bitboard.Board {
	switch piece {
	case chess.Pawn:
		return PawnAttacks(c, sq)
	case chess.Knight:
		return KnightAttacks(sq)
	case chess.Bishop:
		return BishopAttacks(sq, occ)
	case chess.Rook:
		return RookAttacks(sq, occ)
	case chess.Queen:
		return QueenAttacks(sq, occ)
	case chess.King:
		return KingAttacks(sq)
	default:
		return bitboard.Empty
	}
}
