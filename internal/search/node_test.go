package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvchess/chesscore/internal/movegen"
	"github.com/kvchess/chesscore/internal/position"
)

// snapshot captures everything MakeMove mutates, so UnmakeMove's result can
// be compared against the pre-move state bit-for-bit — §8's "make/unmake
// inverse" property.
type snapshot struct {
	pos  position.Position
	occ  [2]uint64
	full uint64
	hash uint64
	eval int
}

func snapshotOf(n *Node) snapshot {
	return snapshot{
		pos:  n.Pos.Position,
		occ:  [2]uint64{uint64(n.Pos.Occ[0]), uint64(n.Pos.Occ[1])},
		full: uint64(n.Pos.Occupied),
		hash: uint64(n.Zobrist.Hash),
		eval: n.Eval.Score,
	}
}

func TestMakeUnmakeIsAnInverse(t *testing.T) {
	fens := []string{
		position.StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
		"4k3/P7/8/8/8/8/8/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		p, err := position.FromFEN(fen)
		require.NoError(t, err)
		n := NewNode(p)

		var buf movegen.Buffer
		movegen.AllMoves(n.Pos, &buf)

		for i := 0; i < buf.Len; i++ {
			before := snapshotOf(n)
			fm := buf.Moves[i]

			n.MakeMove(fm)
			n.UnmakeMove()

			after := snapshotOf(n)
			assert.Equalf(t, before, after, "move %s on %q did not invert cleanly", fm, fen)
		}
	}
}

func TestIllegalMoveIsAlsoInvertedOnUnmake(t *testing.T) {
	// The king on e1 is pinned-equivalent here: moving it onto the rook's
	// rank/file is pseudo-legal but leaves the king in check. MakeMove must
	// still leave UnmakeMove able to restore state exactly regardless of the
	// legality verdict it returns.
	p, err := position.FromFEN("4k3/8/8/8/4r3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	n := NewNode(p)
	before := snapshotOf(n)

	var buf movegen.Buffer
	movegen.AllMoves(n.Pos, &buf)

	sawIllegal := false
	for i := 0; i < buf.Len; i++ {
		fm := buf.Moves[i]
		legal := n.MakeMove(fm)
		if !legal {
			sawIllegal = true
		}
		n.UnmakeMove()
		after := snapshotOf(n)
		assert.Equal(t, before, after, "move %s must invert regardless of legality", fm)
	}
	assert.True(t, sawIllegal, "Ke2 staying on the rook's e-file should be generated as illegal")
}
