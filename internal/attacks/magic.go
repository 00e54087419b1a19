package attacks

import (
	"math/bits"

	"github.com/klauspost/cpuid/v2"

	"github.com/kvchess/chesscore/internal/bitboard"
	"github.com/kvchess/chesscore/internal/chess"
)

// usePext is decided once at startup from the host's CPU features. When
// true, sliding-piece lookups index their table with a parallel-bits-extract
// of the occupancy; when false (the common case off amd64/BMI2 hardware)
// they use a magic-number multiply-and-shift. Either indexing scheme
// produces the same attack set for a given (square, occupancy) pair — see
// rayAttack, the slow reference generator both table-building paths verify
// against during init.
var usePext = cpuid.CPU.Supports(cpuid.BMI2)

type sliderTable struct {
	mask    [64]bitboard.Board // blocker-relevant squares (inner ray, edges excluded)
	shift   [64]uint           // magic-mode shift; unused in PEXT mode
	magic   [64]uint64         // magic-mode multiplier; unused in PEXT mode
	attacks [64][]bitboard.Board
}

var (
	rookDirs   = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}

	rookTable   sliderTable
	bishopTable sliderTable
)

func initSlidingTables() {
	initSliderTable(&rookTable, rookDirs, rookMagicSeeds)
	initSliderTable(&bishopTable, bishopDirs, bishopMagicSeeds)
}

// rayAttack walks from sq in each of the four given (deltaFile, deltaRank)
// directions until it falls off the board or hits an occupied square
// (inclusive of that blocking square, since attacks into occupied squares —
// own pieces included — are part of the attack set; filtering to legal
// destinations is the mover's job). This is the "slow reference generator"
// and is only ever called during table construction.
func rayAttack(sq chess.Square, occ bitboard.Board, dirs [4][2]int) bitboard.Board {
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

// relevantMask computes the blocker-relevant squares for sq: the full empty-
// board ray, minus the board edge in each direction a ray could exit through
// (an edge square never affects what lies beyond it, since there is nothing
// beyond it).
func relevantMask(sq chess.Square, dirs [4][2]int) bitboard.Board {
	full := rayAttack(sq, bitboard.Empty, dirs)
	edges := bitboard.Empty
	if sq.Rank() != 0 {
		edges |= bitboard.Rank1
	}
	if sq.Rank() != 7 {
		edges |= bitboard.Rank8
	}
	if sq.File() != 0 {
		edges |= bitboard.FileA
	}
	if sq.File() != 7 {
		edges |= bitboard.FileH
	}
	return full &^ edges
}

func initSliderTable(t *sliderTable, dirs [4][2]int, seeds [8]uint64) {
	for sq := 0; sq < 64; sq++ {
		s := chess.Square(sq)
		mask := relevantMask(s, dirs)
		t.mask[sq] = mask
		bitsN := mask.PopCount()
		size := 1 << uint(bitsN)
		t.shift[sq] = uint(64 - bitsN)

		occupancies := make([]bitboard.Board, size)
		references := make([]bitboard.Board, size)
		it := bitboard.NewSubsets(mask)
		n := 0
		for sub, ok := it.Next(); ok; sub, ok = it.Next() {
			occupancies[n] = sub
			references[n] = rayAttack(s, sub, dirs)
			n++
		}

		if usePext {
			table := make([]bitboard.Board, size)
			for i := 0; i < n; i++ {
				idx := pext(uint64(occupancies[i]), uint64(mask))
				table[idx] = references[i]
			}
			t.attacks[sq] = table
			continue
		}

		t.attacks[sq] = findMagic(t, sq, mask, occupancies, references, n, seeds[s.Rank()])
	}
}

// findMagic performs the randomised magic-number search described in
// SPEC_FULL.md §4.2: candidate multipliers are built by ANDing three random
// 64-bit draws so the result is sparse, and a candidate is accepted only if
// no two distinct blocker subsets map to distinct attack sets at the same
// key (subsets that collide but agree on the attack set — constructive
// collisions — are fine). On rejection every cell written for the candidate
// is cleared before the next attempt.
func findMagic(t *sliderTable, sq int, mask bitboard.Board, occupancies, references []bitboard.Board, n int, seed uint64) []bitboard.Board {
	size := 1 << uint(mask.PopCount())
	table := make([]bitboard.Board, size)
	epoch := make([]int, size)
	rng := newSplitMix(seed)
	shift := t.shift[sq]

	attempt := 0
	for {
		var magic uint64
		for {
			magic = rng.sparse()
			if bits.OnesCount64((uint64(mask)*magic)>>56) >= 6 {
				break
			}
		}
		attempt++
		ok := true
		for i := 0; i < n; i++ {
			idx := (uint64(occupancies[i]) * magic) >> shift
			if epoch[idx] != attempt {
				epoch[idx] = attempt
				table[idx] = references[i]
			} else if table[idx] != references[i] {
				ok = false
				break
			}
		}
		if ok {
			t.magic[sq] = magic
			return table
		}
	}
}

// pext is a portable parallel-bits-extract: it gathers the bits of value
// selected by mask into the low end of the result, in mask-bit order. On
// BMI2 hardware this is exactly what the native PEXT instruction computes;
// here it is expressed in pure Go so the same code path runs correctly
// everywhere, with usePext only choosing which precomputed table a lookup
// consults.
func pext(value, mask uint64) uint64 {
	var result uint64
	var bitPos uint
	for mask != 0 {
		lsb := mask & -mask
		if value&lsb != 0 {
			result |= 1 << bitPos
		}
		mask &= mask - 1
		bitPos++
	}
	return result
}

// splitMix64 is a small, fast PRNG used only to seed magic-number search; it
// need not be cryptographically strong, only fast and well distributed.
type splitMix struct{ state uint64 }

func newSplitMix(seed uint64) *splitMix { return &splitMix{state: seed} }

func (r *splitMix) next() uint64 {
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// sparse draws a random value with roughly an eighth of its bits set, the
// "AND three random draws together" trick that makes good magic candidates
// more likely.
func (r *splitMix) sparse() uint64 {
	return r.next() & r.next() & r.next()
}

// Per-rank seed values for the magic search, one for each of the 8 ranks a
// square can be on — distinct seeds avoid correlated search failures across
// squares that share a rank.
var rookMagicSeeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}
var bishopMagicSeeds = [8]uint64{5577, 4406, 36507, 32017, 69, 24904, 9513, 20}

func rookIndex(sq chess.Square, occ bitboard.Board) int {
	blockers := occ & rookTable.mask[sq]
	if usePext {
		return int(pext(uint64(blockers), uint64(rookTable.mask[sq])))
	}
	return int((uint64(blockers) * rookTable.magic[sq]) >> rookTable.shift[sq])
}

func bishopIndex(sq chess.Square, occ bitboard.Board) int {
	blockers := occ & bishopTable.mask[sq]
	if usePext {
		return int(pext(uint64(blockers), uint64(bishopTable.mask[sq])))
	}
	return int((uint64(blockers) * bishopTable.magic[sq]) >> bishopTable.shift[sq])
}

// RookAttacks returns every square a rook at sq attacks given occ (the total
// board occupancy). Squares occupied by the mover's own pieces are included;
// filtering to legal destinations is the caller's job.
func RookAttacks(sq chess.Square, occ bitboard.Board) bitboard.Board {
	return rookTable.attacks[sq][rookIndex(sq, occ)]
}

// BishopAttacks returns every square a bishop at sq attacks given occ.
func BishopAttacks(sq chess.Square, occ bitboard.Board) bitboard.Board {
	return bishopTable.attacks[sq][bishopIndex(sq, occ)]
}

// QueenAttacks is the union of the rook and bishop attack sets from sq.
func QueenAttacks(sq chess.Square, occ bitboard.Board) bitboard.Board {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}
