package search

import (
	"github.com/kvchess/chesscore/internal/chess"
	"github.com/kvchess/chesscore/internal/zobrist"
)

// BoundType classifies what a stored score actually means relative to the
// window it was searched with (§4.6).
type BoundType uint8

const (
	BoundNone BoundType = iota
	BoundExact
	BoundLower
	BoundUpper
)

// ttSlot is one directly-addressed transposition table entry. depth is
// stored as depth_remaining+1 so the zero value reads as empty.
type ttSlot struct {
	hash  zobrist.Hash
	depth int // depth_remaining + 1; 0 means empty
	score int
	bound BoundType
	best  chess.Move
}

// TranspositionTable is a fixed-size, directly-addressed hash table; it is
// never resized during a search (§5's resource policy).
type TranspositionTable struct {
	slots []ttSlot
}

// NewTranspositionTable allocates a table with room for n entries.
func NewTranspositionTable(n int) *TranspositionTable {
	if n <= 0 {
		n = 1
	}
	return &TranspositionTable{slots: make([]ttSlot, n)}
}

func (tt *TranspositionTable) index(h zobrist.Hash) int {
	return int(uint64(h) % uint64(len(tt.slots)))
}

// Probe looks up h, returning the stored entry and whether one was found.
// depthRemaining is not applied here — callers decide whether the stored
// depth is sufficient to use the bound directly.
func (tt *TranspositionTable) Probe(h zobrist.Hash) (depthRemaining int, score int, bound BoundType, best chess.Move, ok bool) {
	slot := &tt.slots[tt.index(h)]
	if slot.depth == 0 || slot.hash != h {
		return 0, 0, BoundNone, 0, false
	}
	return slot.depth - 1, slot.score, slot.bound, slot.best, true
}

// Store records a search result, applying the replacement policy from §4.6:
// the new entry replaces the old one unless the old one came from a
// strictly deeper search than depthRemaining+1 would represent.
func (tt *TranspositionTable) Store(h zobrist.Hash, depthRemaining, score int, bound BoundType, best chess.Move) {
	slot := &tt.slots[tt.index(h)]
	newDepth := depthRemaining + 1
	if slot.depth != 0 && slot.depth > newDepth+1 {
		return
	}
	slot.hash = h
	slot.depth = newDepth
	slot.score = score
	slot.bound = bound
	slot.best = best
}

// Clear resets every slot to empty. Re-clearing an already-clear table is
// idempotent.
func (tt *TranspositionTable) Clear() {
	for i := range tt.slots {
		tt.slots[i] = ttSlot{}
	}
}
