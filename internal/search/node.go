// Package search implements the search node (make/unmake, §4.5), the
// transposition table (§4.6), move ordering (§4.8), negamax with
// quiescence (§4.8), and iterative deepening (§4.9).
package search

import (
	"github.com/kvchess/chesscore/internal/chess"
	"github.com/kvchess/chesscore/internal/eval"
	"github.com/kvchess/chesscore/internal/movegen"
	"github.com/kvchess/chesscore/internal/position"
	"github.com/kvchess/chesscore/internal/zobrist"
)

// MaxSearchDepth bounds the undo-record stack; §5 calls for preallocated
// search buffers sized to the maximum depth, typically 64.
const MaxSearchDepth = 64

// UndoRecord captures everything make_move mutates that unmake_move must put
// back: the pre-move clocks/rights/ep-square snapshot, plus what (if
// anything) was captured and where.
type UndoRecord struct {
	Move           chess.FatMove
	HalfmoveClock  int
	CastlingRights chess.CastlingRights
	EPSquare       chess.Square

	HadCapture    bool
	CaptureSquare chess.Square
	CapturedColor chess.Color
	CapturedPiece chess.Piece
}

// Node owns the augmented position, its attached incremental components
// (always the Zobrist tracker and the evaluator; more can be appended), and
// a bounded undo-record stack. It is the single control point through which
// every make/unmake operation is fanned out to every attached component.
type Node struct {
	Pos        *position.Augmented
	Zobrist    *zobrist.Tracker
	Eval       *eval.Accumulator
	Components []position.Incremental

	undo    [MaxSearchDepth]UndoRecord
	undoLen int
}

// NewNode builds a search node from a starting Position, computing the
// initial Zobrist hash and evaluator accumulator from scratch.
func NewNode(pos position.Position) *Node {
	aug := position.NewAugmented(pos)
	zt := zobrist.NewTracker(aug.PieceAt, aug.SideToMove, aug.CastlingRights, aug.EPSquare)
	ev := eval.NewAccumulator(aug.PieceAt)
	n := &Node{Pos: aug, Zobrist: zt, Eval: ev}
	n.Components = []position.Incremental{aug, zt, ev}
	return n
}

func (n *Node) addAll(sq chess.Square, c chess.Color, p chess.Piece) {
	for _, comp := range n.Components {
		comp.Add(sq, c, p)
	}
}

func (n *Node) removeAll(sq chess.Square, c chess.Color, p chess.Piece) {
	for _, comp := range n.Components {
		comp.Remove(sq, c, p)
	}
}

func (n *Node) moveAll(from, to chess.Square, c chess.Color, p chess.Piece) {
	for _, comp := range n.Components {
		comp.Move(from, to, c, p)
	}
}

func (n *Node) swapAll(sq chess.Square, c chess.Color, from, to chess.Piece) {
	for _, comp := range n.Components {
		comp.Swap(sq, c, from, to)
	}
}

func (n *Node) setEnPassantAll(sq chess.Square) {
	for _, comp := range n.Components {
		comp.SetEnPassant(sq)
	}
}

func (n *Node) setSideToMoveAll(c chess.Color) {
	for _, comp := range n.Components {
		comp.SetSideToMove(c)
	}
}

// clearCastlingRight fans out toggle_castling_rights only if the right is
// currently set — Toggle is an unconditional XOR, so calling it on an
// already-absent right would incorrectly set it.
func (n *Node) clearCastlingRight(c chess.Color, side chess.CastlingSide) {
	if !n.Pos.CastlingRights.Has(c, side) {
		return
	}
	for _, comp := range n.Components {
		comp.ToggleCastlingRights(c, side)
	}
}

// restoreCastlingRights fans out exactly the bit flips needed to take the
// current rights back to snapshot, matching §4.5's "XOR the difference with
// the snapshot".
func (n *Node) restoreCastlingRights(snapshot chess.CastlingRights) {
	diff := snapshot ^ n.Pos.CastlingRights
	if diff == 0 {
		return
	}
	for _, c := range [2]chess.Color{chess.White, chess.Black} {
		for _, side := range [2]chess.CastlingSide{chess.KingSide, chess.QueenSide} {
			if diff.Has(c, side) {
				for _, comp := range n.Components {
					comp.ToggleCastlingRights(c, side)
				}
			}
		}
	}
}

// rookCorner reports which castling side (if any) has its rook's home
// square at sq for colour c.
func rookCorner(c chess.Color, sq chess.Square) (chess.CastlingSide, bool) {
	for _, side := range [2]chess.CastlingSide{chess.KingSide, chess.QueenSide} {
		if chess.Castling[c.Index()][side].RookFrom == sq {
			return side, true
		}
	}
	return 0, false
}

// MakeMove applies fm to the position, fanning the update out to every
// attached component per §4.4, and returns whether the resulting position is
// legal (the mover's own king is not left in check, and — for castling —
// none of the three king-traversal squares are attacked). On illegal return,
// the caller must still call UnmakeMove to restore state.
func (n *Node) MakeMove(fm chess.FatMove) bool {
	c := n.Pos.SideToMove
	move := fm.Move
	from, to, t := move.From(), move.To(), move.Type()

	rec := &n.undo[n.undoLen]
	n.undoLen++
	*rec = UndoRecord{
		Move:           fm,
		HalfmoveClock:  n.Pos.HalfmoveClock,
		CastlingRights: n.Pos.CastlingRights,
		EPSquare:       n.Pos.EPSquare,
	}

	n.Pos.HalfmoveClock++
	if c == chess.Black {
		n.Pos.FullmoveNumber++
	}

	if n.Pos.EPSquare != chess.NoSquare {
		n.setEnPassantAll(chess.NoSquare)
	}

	if t == chess.Castle {
		spec := castlingSpecFor(c, to)
		n.moveAll(spec.KingFrom, spec.KingTo, c, chess.King)
		n.moveAll(spec.RookFrom, spec.RookTo, c, chess.Rook)
		n.clearCastlingRight(c, chess.KingSide)
		n.clearCastlingRight(c, chess.QueenSide)

		legal := true
		for _, sq := range spec.KingPath {
			if movegen.IsAttacked(n.Pos, sq, c) {
				legal = false
				break
			}
		}
		n.setSideToMoveAll(c.Flip())
		return legal
	}

	if t.IsCapture() {
		captureSq := to
		if t == chess.EnPassant {
			captureSq = epCapturedSquare(c, to)
		}
		capColor, capPiece, ok := n.Pos.PieceAt(captureSq)
		if ok {
			rec.HadCapture = true
			rec.CaptureSquare = captureSq
			rec.CapturedColor = capColor
			rec.CapturedPiece = capPiece
			n.removeAll(captureSq, capColor, capPiece)
			if capPiece == chess.Rook {
				if side, ok := rookCorner(capColor, captureSq); ok {
					n.clearCastlingRight(capColor, side)
				}
			}
		}
	}

	n.moveAll(from, to, c, fm.Piece)

	if fm.Piece == chess.Pawn {
		n.Pos.HalfmoveClock = 0
		if t == chess.DoublePawnPush {
			n.setEnPassantAll(epCapturedSquare(c, to))
		}
		if t.IsPromotion() {
			n.swapAll(to, c, chess.Pawn, t.PromotedPiece())
		}
	}
	if rec.HadCapture {
		n.Pos.HalfmoveClock = 0
	}

	if fm.Piece == chess.Rook {
		if side, ok := rookCorner(c, from); ok {
			n.clearCastlingRight(c, side)
		}
	}
	if fm.Piece == chess.King {
		n.clearCastlingRight(c, chess.KingSide)
		n.clearCastlingRight(c, chess.QueenSide)
	}

	kingSq := chess.Square(n.Pos.Pieces[c.Index()][chess.King].LSBIndex())
	legal := !movegen.IsAttacked(n.Pos, kingSq, c)
	n.setSideToMoveAll(c.Flip())
	return legal
}

// UnmakeMove reverses the most recent MakeMove, whether or not it returned
// legal.
func (n *Node) UnmakeMove() {
	n.undoLen--
	rec := &n.undo[n.undoLen]
	fm := rec.Move
	move := fm.Move
	from, to, t := move.From(), move.To(), move.Type()

	mover := n.Pos.SideToMove.Flip() // side to move before the flip back
	n.setSideToMoveAll(mover)
	if mover == chess.Black {
		n.Pos.FullmoveNumber--
	}

	if t == chess.Castle {
		spec := castlingSpecFor(mover, to)
		n.moveAll(spec.KingTo, spec.KingFrom, mover, chess.King)
		n.moveAll(spec.RookTo, spec.RookFrom, mover, chess.Rook)
	} else {
		if t.IsPromotion() {
			n.swapAll(to, mover, t.PromotedPiece(), chess.Pawn)
		}
		n.moveAll(to, from, mover, fm.Piece)
		if rec.HadCapture {
			n.addAll(rec.CaptureSquare, rec.CapturedColor, rec.CapturedPiece)
		}
	}

	n.restoreCastlingRights(rec.CastlingRights)
	n.Pos.HalfmoveClock = rec.HalfmoveClock
	if n.Pos.EPSquare != rec.EPSquare {
		n.setEnPassantAll(rec.EPSquare)
	}
}

// epCapturedSquare returns the square of the pawn captured en passant (the
// square behind the double-push target), which for a double push is also
// the en-passant target square itself.
func epCapturedSquare(mover chess.Color, to chess.Square) chess.Square {
	if mover == chess.White {
		return chess.NewSquare(to.File(), to.Rank()-1)
	}
	return chess.NewSquare(to.File(), to.Rank()+1)
}

func castlingSpecFor(c chess.Color, kingTo chess.Square) chess.CastlingSpec {
	if chess.Castling[c.Index()][chess.KingSide].KingTo == kingTo {
		return chess.Castling[c.Index()][chess.KingSide]
	}
	return chess.Castling[c.Index()][chess.QueenSide]
}
