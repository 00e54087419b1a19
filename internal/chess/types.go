// Package chess defines the small, semantically-distinct primitive types
// shared by every other package: squares, colours, pieces, castling rights,
// and the packed move encodings. Each wraps a plain integer and exposes
// named methods instead of operator overloading, per the corresponding
// design note in SPEC_FULL.md.
package chess

import (
	"fmt"

	"github.com/kvchess/chesscore/internal/bitboard"
)

// Square is an index in [0, 64); index = rank*8 + file, so A1=0, H1=7,
// A8=56, H8=63.
type Square int8

// NoSquare is the sentinel for "no square", used for an absent en-passant
// target.
const NoSquare Square = -1

// File returns the square's file, 0 (a) through 7 (h).
func (s Square) File() int { return int(s) & 7 }

// Rank returns the square's rank, 0 (rank 1) through 7 (rank 8).
func (s Square) Rank() int { return int(s) >> 3 }

// NewSquare builds a Square from a zero-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+rune(s.File()), '1'+rune(s.Rank()))
}

// ParseSquare parses algebraic notation ("e4") into a Square.
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return NoSquare, fmt.Errorf("chess: malformed square %q", alg)
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("chess: malformed square %q", alg)
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}

// Color is one of the two sides. White is true so that !c flips the side,
// per the data model's rationale.
type Color bool

const (
	Black Color = false
	White Color = true
)

// Flip returns the opposing colour.
func (c Color) Flip() Color { return !c }

// Index returns 0 for Black, 1 for White — the array index convention used
// throughout (pieces[2][6], castling tables, etc).
func (c Color) Index() int {
	if c {
		return 1
	}
	return 0
}

func (c Color) String() string {
	if c {
		return "w"
	}
	return "b"
}

// Piece enumerates the six piece types. The ordinal order is fixed and used
// as an array index everywhere a [6]T is indexed by piece: Pawn first so
// promotion-piece encodings are contiguous, King last so king-only loops can
// stop early.
type Piece int8

const (
	Pawn Piece = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieces = int(King) + 1
)

func (p Piece) String() string {
	switch p {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// Letter returns the FEN/SAN letter for the piece, upper-cased for White.
func (p Piece) Letter(c Color) string {
	s := p.String()
	if c == White {
		return string(s[0] - 32)
	}
	return s
}

// CastlingSide distinguishes king-side from queen-side castling.
type CastlingSide int

const (
	KingSide CastlingSide = iota
	QueenSide
	NumSides = int(QueenSide) + 1
)

// CastlingRights is a 4-bit set, one bit per (colour, side). Bit layout:
// bit 0 = Black king-side, bit 1 = Black queen-side,
// bit 2 = White king-side, bit 3 = White queen-side.
type CastlingRights uint8

// AllCastlingRights is the initial full-rights value, 0b1111.
const AllCastlingRights CastlingRights = 0b1111

func castlingBit(c Color, side CastlingSide) CastlingRights {
	idx := c.Index()*2 + int(side)
	return CastlingRights(1) << uint(idx)
}

// Has reports whether the given (colour, side) right is present.
func (r CastlingRights) Has(c Color, side CastlingSide) bool {
	return r&castlingBit(c, side) != 0
}

// Toggle XORs the given (colour, side) bit.
func (r *CastlingRights) Toggle(c Color, side CastlingSide) {
	*r ^= castlingBit(c, side)
}

// Set unconditionally sets the given (colour, side) bit — idempotent,
// unlike Toggle, so it is safe against a malformed FEN repeating a letter.
func (r *CastlingRights) Set(c Color, side CastlingSide) {
	*r |= castlingBit(c, side)
}

// Clear clears the given (colour, side) bit if set, returning the mask that
// was actually cleared (zero if the right was already absent) — callers use
// this to know whether a Zobrist update is needed.
func (r *CastlingRights) Clear(c Color, side CastlingSide) CastlingRights {
	bit := castlingBit(c, side)
	cleared := *r & bit
	*r &^= bit
	return cleared
}

// CastlingSpec holds the squares involved in one (colour, side) castling
// move: the king's origin/destination, the rook's origin/destination, the
// squares that must be empty for the rook to pass, and the squares that
// must be unattacked for the king to pass through (origin, transit,
// destination — all three, per the make-time legality check in §4.5).
type CastlingSpec struct {
	KingFrom, KingTo Square
	RookFrom, RookTo Square
	EmptyMask        bitboard.Board // rook-traversal squares that must be empty
	KingPath         [3]Square
}

// Castling is the precomputed per-(colour,side) table described in §3.
var Castling [2][2]CastlingSpec

func init() {
	Castling[White.Index()][KingSide] = CastlingSpec{
		KingFrom: NewSquare(4, 0), KingTo: NewSquare(6, 0),
		RookFrom: NewSquare(7, 0), RookTo: NewSquare(5, 0),
		EmptyMask: sqMask(5, 0) | sqMask(6, 0),
		KingPath:  [3]Square{NewSquare(4, 0), NewSquare(5, 0), NewSquare(6, 0)},
	}
	Castling[White.Index()][QueenSide] = CastlingSpec{
		KingFrom: NewSquare(4, 0), KingTo: NewSquare(2, 0),
		RookFrom: NewSquare(0, 0), RookTo: NewSquare(3, 0),
		EmptyMask: sqMask(1, 0) | sqMask(2, 0) | sqMask(3, 0),
		KingPath:  [3]Square{NewSquare(4, 0), NewSquare(3, 0), NewSquare(2, 0)},
	}
	Castling[Black.Index()][KingSide] = CastlingSpec{
		KingFrom: NewSquare(4, 7), KingTo: NewSquare(6, 7),
		RookFrom: NewSquare(7, 7), RookTo: NewSquare(5, 7),
		EmptyMask: sqMask(5, 7) | sqMask(6, 7),
		KingPath:  [3]Square{NewSquare(4, 7), NewSquare(5, 7), NewSquare(6, 7)},
	}
	Castling[Black.Index()][QueenSide] = CastlingSpec{
		KingFrom: NewSquare(4, 7), KingTo: NewSquare(2, 7),
		RookFrom: NewSquare(0, 7), RookTo: NewSquare(3, 7),
		EmptyMask: sqMask(1, 7) | sqMask(2, 7) | sqMask(3, 7),
		KingPath:  [3]Square{NewSquare(4, 7), NewSquare(3, 7), NewSquare(2, 7)},
	}
}

func sqMask(file, rank int) bitboard.Board {
	return bitboard.FromSquare(int(NewSquare(file, rank)))
}
