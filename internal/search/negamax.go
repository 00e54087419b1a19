package search

import (
	"sync/atomic"

	"github.com/kvchess/chesscore/internal/chess"
	"github.com/kvchess/chesscore/internal/movegen"
)

// MaxScore is the sentinel magnitude for "mate"; any score strictly between
// -MaxScore and MaxScore is an ordinary centipawn evaluation.
const MaxScore = 1 << 20

// Searcher runs negamax with quiescence over a single Node, polling a
// cooperative stop flag at every recursion entry (§5's concurrency model:
// one worker thread, cancellation by a flag the search reads, no stronger
// ordering required than "eventually visible").
type Searcher struct {
	Node  *Node
	TT    *TranspositionTable
	Stop  *int32
	Nodes uint64

	buffers [MaxSearchDepth]movegen.Buffer
}

// NewSearcher wires a Node and transposition table together. stop is a
// pointer to an int32 the caller flips to request cancellation; atomic
// loads/stores are all the synchronisation this needs.
func NewSearcher(n *Node, tt *TranspositionTable, stop *int32) *Searcher {
	return &Searcher{Node: n, TT: tt, Stop: stop}
}

func (s *Searcher) stopped() bool {
	return atomic.LoadInt32(s.Stop) != 0
}

// Negamax implements §4.8's normal mode: at depthRemaining 0 it switches to
// quiescence rather than returning a static eval, to avoid the horizon
// effect. It returns (score, best move, timed-out).
func (s *Searcher) Negamax(depthRemaining, alpha, beta, ply int) (int, chess.Move, bool) {
	if s.stopped() {
		return 0, 0, true
	}
	s.Nodes++

	if depthRemaining <= 0 {
		return s.Quiesce(alpha, beta, ply)
	}

	h := s.Node.Zobrist.Hash
	var hashMove chess.Move
	if storedDepth, score, bound, best, ok := s.TT.Probe(h); ok {
		hashMove = best
		if storedDepth >= depthRemaining {
			switch bound {
			case BoundExact:
				return score, best, false
			case BoundLower:
				if score > alpha {
					alpha = score
				}
			case BoundUpper:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score, best, false
			}
		}
	}

	buf := &s.buffers[ply]
	buf.Reset()
	movegen.AllMoves(s.Node.Pos, buf)
	OrderMoves(s.Node.Pos, buf, hashMove)

	origAlpha := alpha
	var bestMove chess.Move
	legalMoves := 0

	for i := 0; i < buf.Len; i++ {
		fm := buf.Moves[i]
		if !s.Node.MakeMove(fm) {
			s.Node.UnmakeMove()
			continue
		}
		legalMoves++

		childScore, _, timedOut := s.Negamax(depthRemaining-1, -beta, -alpha, ply+1)
		s.Node.UnmakeMove()
		if timedOut {
			return 0, 0, true
		}
		score := -childScore

		if score >= beta {
			s.TT.Store(h, depthRemaining, score, BoundLower, fm.Move)
			return score, fm.Move, false
		}
		if score > alpha {
			alpha = score
			bestMove = fm.Move
		}
	}

	if legalMoves == 0 {
		if movegen.IsAttacked(s.Node.Pos, ownKingSquare(s.Node), s.Node.Pos.SideToMove) {
			return -(MaxScore - ply), 0, false
		}
		return 0, 0, false
	}

	bound := BoundUpper
	if alpha > origAlpha {
		bound = BoundExact
	}
	s.TT.Store(h, depthRemaining, alpha, bound, bestMove)
	return alpha, bestMove, false
}

// Quiesce implements §4.8's quiescence mode: a stand-pat cutoff followed by
// a tactics-only search over captures and promotions.
func (s *Searcher) Quiesce(alpha, beta, ply int) (int, chess.Move, bool) {
	if s.stopped() {
		return 0, 0, true
	}
	s.Nodes++

	standPat := s.Node.Eval.Relative(s.Node.Pos.SideToMove)
	if standPat >= beta {
		return standPat, 0, false
	}
	if standPat > alpha {
		alpha = standPat
	}

	buf := &s.buffers[ply]
	buf.Reset()
	movegen.LoudMoves(s.Node.Pos, buf)
	OrderMoves(s.Node.Pos, buf, 0)

	var bestMove chess.Move
	anyLegalLoud := false

	for i := 0; i < buf.Len; i++ {
		fm := buf.Moves[i]
		if !s.Node.MakeMove(fm) {
			s.Node.UnmakeMove()
			continue
		}
		anyLegalLoud = true

		childScore, _, timedOut := s.Quiesce(-beta, -alpha, ply+1)
		s.Node.UnmakeMove()
		if timedOut {
			return 0, 0, true
		}
		score := -childScore

		if score >= beta {
			return score, fm.Move, false
		}
		if score > alpha {
			alpha = score
			bestMove = fm.Move
		}
	}

	if !anyLegalLoud && !s.hasLegalQuietMove(ply) {
		if movegen.IsAttacked(s.Node.Pos, ownKingSquare(s.Node), s.Node.Pos.SideToMove) {
			return -(MaxScore - ply), 0, false
		}
		return 0, 0, false
	}

	return alpha, bestMove, false
}

// hasLegalQuietMove reports whether any quiet move is legal in the current
// position, tried purely for the mate/stalemate check at the foot of
// quiescence (§4.8 step 4). It reuses the ply's buffer slot, which is free
// at this point since the loud-move loop above has already finished with it.
func (s *Searcher) hasLegalQuietMove(ply int) bool {
	buf := &s.buffers[ply]
	buf.Reset()
	movegen.QuietMoves(s.Node.Pos, buf)
	for i := 0; i < buf.Len; i++ {
		legal := s.Node.MakeMove(buf.Moves[i])
		s.Node.UnmakeMove()
		if legal {
			return true
		}
	}
	return false
}

func ownKingSquare(n *Node) chess.Square {
	c := n.Pos.SideToMove
	return chess.Square(n.Pos.Pieces[c.Index()][chess.King].LSBIndex())
}
