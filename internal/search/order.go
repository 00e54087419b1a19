package search

import (
	"sort"

	"github.com/kvchess/chesscore/internal/chess"
	"github.com/kvchess/chesscore/internal/eval"
	"github.com/kvchess/chesscore/internal/movegen"
	"github.com/kvchess/chesscore/internal/position"
)

// OrderMoves sorts buf in place per §4.8's comparator: the hash move first,
// then captures by MVV-LVA (victim value descending, attacker value
// ascending as tiebreak), with non-captures tied at the bottom. sort.Slice is
// not stable, so the relative order of tied moves (including the
// non-captures) is not defined; correctness never depends on it.
func OrderMoves(pos *position.Augmented, buf *movegen.Buffer, hashMove chess.Move) {
	moves := buf.Moves[:buf.Len]
	sort.Slice(moves, func(i, j int) bool {
		return less(pos, moves[i], moves[j], hashMove)
	})
}

func less(pos *position.Augmented, a, b chess.FatMove, hashMove chess.Move) bool {
	aHash := !hashMove.IsZero() && a.Move == hashMove
	bHash := !hashMove.IsZero() && b.Move == hashMove
	if aHash != bHash {
		return aHash
	}

	aCap := a.Move.Type().IsCapture()
	bCap := b.Move.Type().IsCapture()
	if aCap != bCap {
		return aCap
	}
	if !aCap {
		return false // non-captures are mutually unordered
	}

	av, bv := victimValue(pos, a.Move), victimValue(pos, b.Move)
	if av != bv {
		return av > bv
	}
	return eval.PieceValue(a.Piece) < eval.PieceValue(b.Piece)
}

// victimValue returns the material value of whatever m captures. En-passant
// always captures a pawn; every other capture's victim is whatever sits on
// the destination square before the move is made.
func victimValue(pos *position.Augmented, m chess.Move) int {
	if m.Type() == chess.EnPassant {
		return eval.PieceValue(chess.Pawn)
	}
	_, piece, ok := pos.PieceAt(m.To())
	if !ok {
		return 0
	}
	return eval.PieceValue(piece)
}

// IsStrictWeakOrder reports whether less forms a strict weak ordering over
// the given moves (reflexive-false, asymmetric, transitive) — the property
// asserted in §8. It is exposed for tests, not used on the search hot path.
func IsStrictWeakOrder(pos *position.Augmented, moves []chess.FatMove, hashMove chess.Move) bool {
	n := len(moves)
	for i := 0; i < n; i++ {
		if less(pos, moves[i], moves[i], hashMove) {
			return false
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if less(pos, moves[i], moves[j], hashMove) && less(pos, moves[j], moves[i], hashMove) {
				return false
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				if less(pos, moves[i], moves[j], hashMove) && less(pos, moves[j], moves[k], hashMove) && !less(pos, moves[i], moves[k], hashMove) {
					return false
				}
			}
		}
	}
	return true
}
