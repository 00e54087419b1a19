// Package movegen generates pseudo-legal moves (§4.3): moves that obey piece
// motion rules and don't land on a friendly piece, but are not filtered for
// leaving the mover's own king in check — that filtering is deferred to
// make/unmake in the search package.
package movegen

import (
	"github.com/kvchess/chesscore/internal/attacks"
	"github.com/kvchess/chesscore/internal/bitboard"
	"github.com/kvchess/chesscore/internal/chess"
	"github.com/kvchess/chesscore/internal/position"
)

// MaxMoves is a safe upper bound on the pseudo-legal moves in any reachable
// position (the legal maximum is 218; pseudo-legal generation can exceed
// that slightly before filtering, so buffers are sized generously per §5's
// "256 per ply" resource policy).
const MaxMoves = 256

// Buffer is a preallocated move list; the search's hot path never grows or
// shrinks a slice, it just resets Len to zero and appends in place.
type Buffer struct {
	Moves [MaxMoves]chess.FatMove
	Len   int
}

func (b *Buffer) Reset() { b.Len = 0 }

func (b *Buffer) add(piece chess.Piece, from, to chess.Square, t chess.MoveType) {
	b.Moves[b.Len] = chess.FatMove{Move: chess.NewMove(from, to, t), Piece: piece}
	b.Len++
}

// LoudMoves appends every capture and promotion available to the side to
// move — the tactical leaves quiescence search needs.
func LoudMoves(pos *position.Augmented, buf *Buffer) {
	genPawns(pos, buf, true)
	genKnights(pos, buf, true)
	genSlider(pos, buf, chess.Bishop, true)
	genSlider(pos, buf, chess.Rook, true)
	genSlider(pos, buf, chess.Queen, true)
	genKing(pos, buf, true)
}

// QuietMoves appends every non-capturing move, including castling and
// non-promoting pushes.
func QuietMoves(pos *position.Augmented, buf *Buffer) {
	genPawns(pos, buf, false)
	genKnights(pos, buf, false)
	genSlider(pos, buf, chess.Bishop, false)
	genSlider(pos, buf, chess.Rook, false)
	genSlider(pos, buf, chess.Queen, false)
	genKing(pos, buf, false)
	genCastles(pos, buf)
}

// AllMoves is the concatenation of LoudMoves and QuietMoves into one buffer.
func AllMoves(pos *position.Augmented, buf *Buffer) {
	LoudMoves(pos, buf)
	QuietMoves(pos, buf)
}

func genKnights(pos *position.Augmented, buf *Buffer, loud bool) {
	c := pos.SideToMove
	own := pos.Occ[c.Index()]
	enemy := pos.Occ[c.Flip().Index()]
	knights := bitboard.NewSingletons(pos.Pieces[c.Index()][chess.Knight])
	for from, ok := knights.Next(); ok; from, ok = knights.Next() {
		sq := chess.Square(from.LSBIndex())
		targets := attacks.KnightAttacks(sq) &^ own
		emitTargets(buf, chess.Knight, sq, targets, enemy, loud)
	}
}

func genSlider(pos *position.Augmented, buf *Buffer, piece chess.Piece, loud bool) {
	c := pos.SideToMove
	own := pos.Occ[c.Index()]
	enemy := pos.Occ[c.Flip().Index()]
	pieces := bitboard.NewSingletons(pos.Pieces[c.Index()][piece])
	for from, ok := pieces.Next(); ok; from, ok = pieces.Next() {
		sq := chess.Square(from.LSBIndex())
		targets := attacks.Attacks(piece, c, sq, pos.Occupied) &^ own
		emitTargets(buf, piece, sq, targets, enemy, loud)
	}
}

func genKing(pos *position.Augmented, buf *Buffer, loud bool) {
	c := pos.SideToMove
	own := pos.Occ[c.Index()]
	enemy := pos.Occ[c.Flip().Index()]
	sq := chess.Square(pos.Pieces[c.Index()][chess.King].LSBIndex())
	targets := attacks.KingAttacks(sq) &^ own
	emitTargets(buf, chess.King, sq, targets, enemy, loud)
}

// emitTargets splits a destination set into capture and quiet destinations
// and appends only the half the caller asked for.
func emitTargets(buf *Buffer, piece chess.Piece, from chess.Square, targets, enemy bitboard.Board, loud bool) {
	if loud {
		it := bitboard.NewSingletons(targets & enemy)
		for to, ok := it.Next(); ok; to, ok = it.Next() {
			buf.add(piece, from, chess.Square(to.LSBIndex()), chess.Capture)
		}
		return
	}
	it := bitboard.NewSingletons(targets &^ enemy)
	for to, ok := it.Next(); ok; to, ok = it.Next() {
		buf.add(piece, from, chess.Square(to.LSBIndex()), chess.Quiet)
	}
}

// genPawns handles the four pawn cases from §4.3: single push, double push,
// diagonal capture (including en passant), and promotion. Promotions of
// either kind (push or capture) always land in the loud buffer, per spec,
// since they are tactically significant even when not captures.
func genPawns(pos *position.Augmented, buf *Buffer, loud bool) {
	c := pos.SideToMove
	enemy := c.Flip()
	own := pos.Occ[c.Index()]
	enemyOcc := pos.Occ[enemy.Index()]
	lastRank := bitboard.Rank8
	startRank := bitboard.Rank2
	if c == chess.Black {
		lastRank = bitboard.Rank1
		startRank = bitboard.Rank7
	}

	pawns := bitboard.NewSingletons(pos.Pieces[c.Index()][chess.Pawn])
	for fromBB, ok := pawns.Next(); ok; fromBB, ok = pawns.Next() {
		from := chess.Square(fromBB.LSBIndex())

		// Pushes.
		pushTo := attacks.PawnPush(c, from)
		pushEmpty := pushTo &^ (own | enemyOcc)
		if pushEmpty != bitboard.Empty {
			to := chess.Square(pushEmpty.LSBIndex())
			if pushEmpty&lastRank != 0 {
				if loud {
					addPromotions(buf, from, to, false)
				}
			} else if !loud {
				buf.add(chess.Pawn, from, to, chess.PawnPush)
			}

			if fromBB&startRank != 0 {
				dbl := attacks.PawnDoublePush(c, from)
				if dbl != bitboard.Empty && dbl&^(own|enemyOcc) != 0 {
					if !loud {
						buf.add(chess.Pawn, from, chess.Square(dbl.LSBIndex()), chess.DoublePawnPush)
					}
				}
			}
		}

		// Captures, including en passant.
		capTargets := attacks.PawnAttacks(c, from)
		captures := bitboard.NewSingletons(capTargets & enemyOcc)
		for toBB, ok := captures.Next(); ok; toBB, ok = captures.Next() {
			to := chess.Square(toBB.LSBIndex())
			if toBB&lastRank != 0 {
				if loud {
					addPromotions(buf, from, to, true)
				}
				continue
			}
			if loud {
				buf.add(chess.Pawn, from, to, chess.Capture)
			}
		}
		if pos.EPSquare != chess.NoSquare {
			epBB := bitboard.FromSquare(int(pos.EPSquare))
			if capTargets&epBB != 0 && loud {
				buf.add(chess.Pawn, from, pos.EPSquare, chess.EnPassant)
			}
		}
	}
}

func addPromotions(buf *Buffer, from, to chess.Square, capture bool) {
	types := [4]chess.MoveType{chess.PromoKnight, chess.PromoBishop, chess.PromoRook, chess.PromoQueen}
	capTypes := [4]chess.MoveType{chess.PromoKnightCap, chess.PromoBishopCap, chess.PromoRookCap, chess.PromoQueenCap}
	for i := range types {
		t := types[i]
		if capture {
			t = capTypes[i]
		}
		buf.add(chess.Pawn, from, to, t)
	}
}

// genCastles appends a pseudo-legal castling move for each side whose right
// is set and whose rook-traversal squares are empty. Whether the king
// actually passes through check is checked at make time (§4.5), not here.
func genCastles(pos *position.Augmented, buf *Buffer) {
	c := pos.SideToMove
	for _, side := range [2]chess.CastlingSide{chess.KingSide, chess.QueenSide} {
		if !pos.CastlingRights.Has(c, side) {
			continue
		}
		spec := chess.Castling[c.Index()][side]
		if pos.Occupied&spec.EmptyMask != 0 {
			continue
		}
		buf.add(chess.King, spec.KingFrom, spec.KingTo, chess.Castle)
	}
}

// IsAttacked implements the superposition trick from §4.3: a super-piece is
// placed on sq and its attack set intersected with the matching opposing
// piece set, short-circuiting on the first hit. ownColour is the colour
// whose occupant (real or hypothetical) on sq might be under attack; the
// check is against ownColour's opponent.
func IsAttacked(pos *position.Augmented, sq chess.Square, ownColour chess.Color) bool {
	enemy := ownColour.Flip().Index()

	if attacks.PawnAttacks(ownColour, sq)&pos.Pieces[enemy][chess.Pawn] != 0 {
		return true
	}
	if attacks.KnightAttacks(sq)&pos.Pieces[enemy][chess.Knight] != 0 {
		return true
	}
	bishopsQueens := pos.Pieces[enemy][chess.Bishop] | pos.Pieces[enemy][chess.Queen]
	if attacks.BishopAttacks(sq, pos.Occupied)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := pos.Pieces[enemy][chess.Rook] | pos.Pieces[enemy][chess.Queen]
	if attacks.RookAttacks(sq, pos.Occupied)&rooksQueens != 0 {
		return true
	}
	if attacks.KingAttacks(sq)&pos.Pieces[enemy][chess.King] != 0 {
		return true
	}
	return false
}
