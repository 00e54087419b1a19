package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvchess/chesscore/internal/chess"
	"github.com/kvchess/chesscore/internal/zobrist"
)

func TestTranspositionTableStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1024)
	h := zobrist.Hash(0xdeadbeef)
	best := chess.NewMove(chess.NewSquare(4, 1), chess.NewSquare(4, 3), chess.DoublePawnPush)

	tt.Store(h, 4, 37, BoundExact, best)
	depth, score, bound, got, ok := tt.Probe(h)
	assert.True(t, ok)
	assert.Equal(t, 4, depth)
	assert.Equal(t, 37, score)
	assert.Equal(t, BoundExact, bound)
	assert.Equal(t, best, got)
}

func TestTranspositionTableProbeMissReportsNotFound(t *testing.T) {
	tt := NewTranspositionTable(1024)
	_, _, _, _, ok := tt.Probe(zobrist.Hash(12345))
	assert.False(t, ok)
}

func TestTranspositionTableReplacementPolicyKeepsDeeperEntry(t *testing.T) {
	tt := NewTranspositionTable(1)
	h := zobrist.Hash(1)

	tt.Store(h, 10, 100, BoundExact, chess.Move(0))
	tt.Store(h, 2, 200, BoundExact, chess.Move(0))

	depth, score, _, _, ok := tt.Probe(h)
	assert.True(t, ok)
	assert.Equal(t, 10, depth, "a much shallower store must not evict a deeper entry")
	assert.Equal(t, 100, score)
}

func TestTranspositionTableReplacementPolicyAcceptsDeeperEntry(t *testing.T) {
	tt := NewTranspositionTable(1)
	h := zobrist.Hash(1)

	tt.Store(h, 2, 200, BoundExact, chess.Move(0))
	tt.Store(h, 10, 100, BoundExact, chess.Move(0))

	depth, score, _, _, ok := tt.Probe(h)
	assert.True(t, ok)
	assert.Equal(t, 10, depth)
	assert.Equal(t, 100, score)
}

func TestTranspositionTableClearIsIdempotent(t *testing.T) {
	tt := NewTranspositionTable(64)
	h := zobrist.Hash(7)
	tt.Store(h, 3, 1, BoundExact, chess.Move(0))

	tt.Clear()
	_, _, _, _, ok := tt.Probe(h)
	assert.False(t, ok)

	tt.Clear()
	_, _, _, _, ok = tt.Probe(h)
	assert.False(t, ok, "re-clearing an already-clear table must stay empty")
}
