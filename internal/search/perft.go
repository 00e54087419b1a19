package search

import "github.com/kvchess/chesscore/internal/movegen"

// Perft counts the leaf nodes of the full game tree to depth plies —
// the classic move-generator correctness benchmark from §8's end-to-end
// scenarios. Illegal pseudo-legal moves (those leaving the mover's own king
// in check) are filtered by make/unmake, exactly as a real search would.
func Perft(n *Node, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var buf movegen.Buffer
	movegen.AllMoves(n.Pos, &buf)

	var nodes uint64
	for i := 0; i < buf.Len; i++ {
		if !n.MakeMove(buf.Moves[i]) {
			n.UnmakeMove()
			continue
		}
		nodes += Perft(n, depth-1)
		n.UnmakeMove()
	}
	return nodes
}
