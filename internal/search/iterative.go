package search

import (
	"sync/atomic"
	"time"

	"github.com/kvchess/chesscore/internal/chess"
)

// IterationResult is one completed depth of iterative deepening, plus the
// telemetry the UCI layer reports as an "info" line.
type IterationResult struct {
	Depth    int
	Score    int
	BestMove chess.Move
	Nodes    uint64
	Elapsed  time.Duration
	PV       []chess.Move
}

// IterativeDeepen runs Negamax at depth 1, 2, … until deadline passes, a
// forced mate is found, or maxDepth is reached, per §4.9. Depth 1 always
// runs to completion even if the deadline has already passed, so a legal
// move is always available to return. onIteration, if non-nil, is called
// once per completed depth with the one-line telemetry record the UCI layer
// reports as an "info" line.
func (s *Searcher) IterativeDeepen(deadline time.Time, maxDepth int, onIteration func(IterationResult)) IterationResult {
	var last IterationResult
	start := time.Now()

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 {
			if !time.Now().Before(deadline) {
				atomic.StoreInt32(s.Stop, 1)
			}
			if s.stopped() {
				break
			}
		}

		// Depth 1 searches against a private, never-set flag so it always
		// completes; a stop raised meanwhile is honoured after it.
		stop := s.Stop
		if depth == 1 {
			var never int32
			s.Stop = &never
		}
		score, best, timedOut := s.Negamax(depth, -MaxScore, MaxScore, 0)
		s.Stop = stop
		if timedOut && depth > 1 {
			break
		}

		last = IterationResult{
			Depth:    depth,
			Score:    score,
			BestMove: best,
			Nodes:    s.Nodes,
			Elapsed:  time.Since(start),
			PV:       s.extractPV(depth),
		}
		if onIteration != nil {
			onIteration(last)
		}

		if isMateScore(score) {
			break
		}
		if s.stopped() {
			break
		}
	}

	return last
}

// isMateScore reports whether score represents a forced mate (within the
// search-depth horizon the ±MaxScore sentinel leaves room for).
func isMateScore(score int) bool {
	const matedThreshold = MaxScore - MaxSearchDepth
	return score >= matedThreshold || score <= -matedThreshold
}

// extractPV walks the transposition table from the current position,
// pushing each stored best move, making it, and repeating until a miss or
// until maxLen moves have been collected — then unmaking back to the root
// (§4.6's PV-extraction recipe, chosen over a triangular PV table per the
// corresponding Open Question decision).
func (s *Searcher) extractPV(maxLen int) []chess.Move {
	pv := make([]chess.Move, 0, maxLen)
	made := 0
	for len(pv) < maxLen {
		h := s.Node.Zobrist.Hash
		_, _, bound, best, ok := s.TT.Probe(h)
		if !ok || bound != BoundExact || best.IsZero() {
			break
		}
		fm := chess.FatMove{Move: best, Piece: pieceAt(s.Node, best.From())}
		if !s.Node.MakeMove(fm) {
			s.Node.UnmakeMove()
			break
		}
		made++
		pv = append(pv, best)
	}
	for ; made > 0; made-- {
		s.Node.UnmakeMove()
	}
	return pv
}

func pieceAt(n *Node, sq chess.Square) chess.Piece {
	_, p, _ := n.Pos.PieceAt(sq)
	return p
}
