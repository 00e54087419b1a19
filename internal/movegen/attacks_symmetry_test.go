package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvchess/chesscore/internal/chess"
)

// TestIsAttackedMatchesPseudoLegalCaptureExistence checks §8's attack-
// symmetry property: for every occupied square sq, is_attacked(P, sq,
// colourOf(sq)) holds iff some pseudo-legal move of the opposing side is a
// capture landing on sq.
func TestIsAttackedMatchesPseudoLegalCaptureExistence(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, fen := range fens {
		aug := mustPos(t, fen)

		for sq := chess.Square(0); sq < 64; sq++ {
			color, _, ok := aug.PieceAt(sq)
			if !ok {
				continue
			}

			opp := *aug
			opp.SideToMove = color.Flip()
			var buf Buffer
			LoudMoves(&opp, &buf)

			wantCapture := false
			for i := 0; i < buf.Len; i++ {
				m := buf.Moves[i].Move
				if m.To() == sq && m.Type().IsCapture() {
					wantCapture = true
					break
				}
			}

			got := IsAttacked(aug, sq, color)
			assert.Equalf(t, wantCapture, got, "square %d (colour %v) on %q", sq, color, fen)
		}
	}
}

// Sanity check that a king never ends up counted as attacking itself through
// the superposition trick's bookkeeping.
func TestIsAttackedIgnoresOwnPieces(t *testing.T) {
	aug := mustPos(t, position0FEN)
	kingSq := chess.Square(aug.Pieces[chess.White.Index()][chess.King].LSBIndex())
	assert.False(t, IsAttacked(aug, kingSq, chess.White), "no enemy piece attacks e1 in the starting position")
}

const position0FEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
