// Package bitboard implements the 64-bit set algebra that the rest of the
// engine builds on: construction, shifts, population count, and the two
// lazy iterators (singletons and subsets) that move generation and magic
// number search rely on.
package bitboard

import "math/bits"

// Board is a 64-bit set; bit i set means square i (rank*8+file, a1=0, h8=63)
// is a member.
type Board uint64

// File and rank masks, used to stop shifts from wrapping across an edge.
const (
	FileA Board = 0x0101010101010101
	FileB Board = FileA << 1
	FileG Board = FileA << 6
	FileH Board = FileA << 7

	Rank1 Board = 0xFF
	Rank2 Board = Rank1 << (8 * 1)
	Rank3 Board = Rank1 << (8 * 2)
	Rank4 Board = Rank1 << (8 * 3)
	Rank5 Board = Rank1 << (8 * 4)
	Rank6 Board = Rank1 << (8 * 5)
	Rank7 Board = Rank1 << (8 * 6)
	Rank8 Board = Rank1 << (8 * 7)

	NotFileA Board = ^FileA
	NotFileH Board = ^FileH
	NotAB    Board = ^(FileA | FileB)
	NotGH    Board = ^(FileG | FileH)

	Empty Board = 0
	Full  Board = ^Board(0)
)

// FromSquare returns the singleton set containing sq (0..63).
func FromSquare(sq int) Board {
	return Board(1) << uint(sq)
}

// Union, Intersect, Diff and Not are named wrappers around the bitwise
// operators; the spec calls for these as distinct set-algebra primitives
// even though Go lets callers simply use |, &, &^ and ^ directly.
func Union(a, b Board) Board     { return a | b }
func Intersect(a, b Board) Board { return a & b }
func Diff(a, b Board) Board      { return a &^ b }
func Not(a Board) Board          { return ^a }

// PopCount returns the number of set bits, using the hardware POPCNT
// intrinsic via math/bits on platforms that have one and math/bits' portable
// pure-Go count elsewhere (math/bits picks the right implementation per-arch).
func (b Board) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least-significant set bit as its own singleton set, or
// Empty if b is Empty.
func (b Board) LSB() Board {
	return b & Board(-int64(b))
}

// LSBIndex returns the square index of the least-significant set bit.
// Callers must not invoke this on an empty board. math/bits.TrailingZeros64
// uses the hardware ctz/bsf instruction when available and a De Bruijn
// lookup otherwise.
func (b Board) LSBIndex() int {
	return bits.TrailingZeros64(uint64(b))
}

// ClearLSB returns b with its least-significant set bit cleared.
func (b Board) ClearLSB() Board {
	return b & (b - 1)
}

// ShiftNorth etc. shift the whole set by one square in a compass direction,
// discarding bits that would wrap across a board edge.
func ShiftNorth(b Board) Board     { return b << 8 }
func ShiftSouth(b Board) Board     { return b >> 8 }
func ShiftEast(b Board) Board      { return (b & NotFileH) << 1 }
func ShiftWest(b Board) Board      { return (b & NotFileA) >> 1 }
func ShiftNorthEast(b Board) Board { return (b & NotFileH) << 9 }
func ShiftNorthWest(b Board) Board { return (b & NotFileA) << 7 }
func ShiftSouthEast(b Board) Board { return (b & NotFileH) >> 7 }
func ShiftSouthWest(b Board) Board { return (b & NotFileA) >> 9 }

// Shift moves every bit by (deltaFile, deltaRank), clearing any bit that
// would have wrapped across a file boundary. North/south overflow off the
// top/bottom of the board is handled for free by the uint64 shift (bits
// simply fall off the end), matching the "without wrap protection" half of
// the spec; wrap protection is strictly about files.
func Shift(b Board, deltaFile, deltaRank int) Board {
	shift := deltaRank*8 + deltaFile
	var result Board
	if shift >= 0 {
		result = b << uint(shift)
	} else {
		result = b >> uint(-shift)
	}
	switch {
	case deltaFile > 0:
		for f := 0; f < deltaFile; f++ {
			result &^= FileA << uint(f)
		}
	case deltaFile < 0:
		for f := 0; f < -deltaFile; f++ {
			result &^= FileH >> uint(f)
		}
	}
	return result
}

// Singletons is a lazy iterator over the one-bit subsets of b, yielded in
// least-significant-bit-first order. Each call to Next clears the bit it
// just returned.
type Singletons struct {
	rest Board
}

// NewSingletons constructs an iterator over every set bit of b.
func NewSingletons(b Board) Singletons {
	return Singletons{rest: b}
}

// Next returns the next singleton set and true, or Empty and false once
// every bit has been consumed.
func (s *Singletons) Next() (Board, bool) {
	if s.rest == Empty {
		return Empty, false
	}
	bit := s.rest.LSB()
	s.rest = s.rest.ClearLSB()
	return bit, true
}

// Subsets is a lazy iterator over every subset of a fixed set, in
// Gray-code-like order via the carry-rippler identity
// next = (cur - set) & set, starting at and terminating at the empty set.
type Subsets struct {
	set     Board
	cur     Board
	started bool
	done    bool
}

// NewSubsets constructs an iterator over every subset of set (including the
// empty set and set itself).
func NewSubsets(set Board) Subsets {
	return Subsets{set: set}
}

// Next returns the next subset and true, or Empty and false once every
// subset (2^|set|) has been visited exactly once.
func (s *Subsets) Next() (Board, bool) {
	if s.done {
		return Empty, false
	}
	if !s.started {
		s.started = true
		s.cur = Empty
		return s.cur, true
	}
	s.cur = (s.cur - s.set) & s.set
	if s.cur == Empty {
		s.done = true
		return Empty, false
	}
	return s.cur, true
}
