// Package position implements the authoritative chess position (§3) and its
// augmented occupancy caches, plus the incremental-update protocol (§4.4)
// that lets make/unmake stay O(1) in the number of affected squares.
package position

import (
	"fmt"

	"github.com/kvchess/chesscore/internal/bitboard"
	"github.com/kvchess/chesscore/internal/chess"
)

// Position is the authoritative game state: twelve piece bitboards, side to
// move, castling rights, an optional en-passant square, and the two move
// clocks.
type Position struct {
	Pieces [2][chess.NumPieces]bitboard.Board

	SideToMove     chess.Color
	CastlingRights chess.CastlingRights
	EPSquare       chess.Square // chess.NoSquare when absent
	HalfmoveClock  int
	FullmoveNumber int
}

// PieceAt scans the twelve bitboards for whatever occupies sq. It is O(12).
// The hot path carries the moving piece alongside the move as a
// chess.FatMove, and calls PieceAt only to find a captured piece (in make
// and in move ordering); FEN export and the from-scratch Zobrist and
// evaluator builds also use it.
func (p *Position) PieceAt(sq chess.Square) (chess.Color, chess.Piece, bool) {
	bit := bitboard.FromSquare(int(sq))
	for _, c := range [2]chess.Color{chess.Black, chess.White} {
		for piece := chess.Pawn; piece <= chess.King; piece++ {
			if p.Pieces[c.Index()][piece]&bit != 0 {
				return c, piece, true
			}
		}
	}
	return chess.Black, chess.Pawn, false
}

// Incremental is implemented by every component that derives something from
// the position — the authoritative Augmented position itself, the Zobrist
// tracker, and the evaluator — so that make/unmake has exactly one control
// point (search.Node) that fans an operation out to all of them. A component
// is free to no-op any method it doesn't care about.
type Incremental interface {
	Add(sq chess.Square, c chess.Color, p chess.Piece)
	Remove(sq chess.Square, c chess.Color, p chess.Piece)
	Move(from, to chess.Square, c chess.Color, p chess.Piece)
	Swap(sq chess.Square, c chess.Color, from, to chess.Piece)
	ToggleCastlingRights(c chess.Color, side chess.CastlingSide)
	SetEnPassant(sq chess.Square) // chess.NoSquare clears it
	SetSideToMove(c chess.Color)
}

// Augmented is the position plus its derived per-side and total occupancy
// caches (§3's AugmentedPosition). It implements Incremental so that it can
// be driven by the same fan-out the search node uses for every other
// attached component.
type Augmented struct {
	Position
	Occ      [2]bitboard.Board // per-side occupancy
	Occupied bitboard.Board    // union of both sides
}

// NewAugmented wraps a Position, computing its occupancy caches.
func NewAugmented(p Position) *Augmented {
	a := &Augmented{Position: p}
	a.recomputeOccupancy()
	return a
}

func (a *Augmented) recomputeOccupancy() {
	a.Occ[chess.Black.Index()] = unionAll(a.Pieces[chess.Black.Index()])
	a.Occ[chess.White.Index()] = unionAll(a.Pieces[chess.White.Index()])
	a.Occupied = a.Occ[chess.Black.Index()] | a.Occ[chess.White.Index()]
}

func unionAll(bbs [chess.NumPieces]bitboard.Board) bitboard.Board {
	var u bitboard.Board
	for _, b := range bbs {
		u |= b
	}
	return u
}

func (a *Augmented) Add(sq chess.Square, c chess.Color, p chess.Piece) {
	bit := bitboard.FromSquare(int(sq))
	a.Pieces[c.Index()][p] |= bit
	a.Occ[c.Index()] |= bit
	a.Occupied |= bit
}

func (a *Augmented) Remove(sq chess.Square, c chess.Color, p chess.Piece) {
	bit := bitboard.FromSquare(int(sq))
	a.Pieces[c.Index()][p] &^= bit
	a.Occ[c.Index()] &^= bit
	a.Occupied &^= bit
}

func (a *Augmented) Move(from, to chess.Square, c chess.Color, p chess.Piece) {
	fromBit := bitboard.FromSquare(int(from))
	toBit := bitboard.FromSquare(int(to))
	delta := fromBit | toBit
	a.Pieces[c.Index()][p] ^= delta
	a.Occ[c.Index()] ^= delta
	a.Occupied ^= delta
}

func (a *Augmented) Swap(sq chess.Square, c chess.Color, from, to chess.Piece) {
	bit := bitboard.FromSquare(int(sq))
	a.Pieces[c.Index()][from] &^= bit
	a.Pieces[c.Index()][to] |= bit
	// Occupancy is unaffected: the square was and remains occupied by c.
}

func (a *Augmented) ToggleCastlingRights(c chess.Color, side chess.CastlingSide) {
	a.CastlingRights.Toggle(c, side)
}

func (a *Augmented) SetEnPassant(sq chess.Square) {
	a.EPSquare = sq
}

func (a *Augmented) SetSideToMove(c chess.Color) {
	a.SideToMove = c
}

// CheckInvariants verifies the quiescent-point invariants from §3: disjoint
// piece bitboards, exactly one king per side, no pawns on the back ranks,
// and a well-formed en-passant square when present. It returns the first
// violated invariant as an error, or nil if every invariant holds. Only
// tests call it; it is not on the hot path.
func (a *Augmented) CheckInvariants() error {
	var all bitboard.Board
	for c := 0; c < 2; c++ {
		var seen bitboard.Board
		for p := chess.Pawn; p <= chess.King; p++ {
			bb := a.Pieces[c][p]
			if bb&seen != 0 {
				return fmt.Errorf("position: overlapping piece bitboards for colour %d", c)
			}
			seen |= bb
		}
		if seen&all != 0 {
			return fmt.Errorf("position: piece bitboards of both colours overlap")
		}
		all |= seen
		if a.Pieces[c][chess.King].PopCount() != 1 {
			return fmt.Errorf("position: colour %d does not have exactly one king", c)
		}
		if a.Pieces[c][chess.Pawn]&(bitboard.Rank1|bitboard.Rank8) != 0 {
			return fmt.Errorf("position: colour %d has a pawn on the back rank", c)
		}
	}
	if a.EPSquare != chess.NoSquare {
		// A pawn double-push by White leaves the ep square on rank 3 with
		// Black to move; a Black double-push leaves it on rank 6 with White
		// to move.
		expectedRank := bitboard.Rank3
		if a.SideToMove == chess.White {
			expectedRank = bitboard.Rank6
		}
		if bitboard.FromSquare(int(a.EPSquare))&expectedRank == 0 {
			return fmt.Errorf("position: en-passant square not on the expected rank")
		}
	}
	return nil
}
