// Package eval implements the incremental material-plus-piece-square-table
// evaluator from SPEC_FULL.md §4.7. The score is maintained as a running sum
// under the same operation protocol every other attached component uses, so
// static evaluation at a search leaf is an O(1) read rather than an O(64)
// board scan.
package eval

import "github.com/kvchess/chesscore/internal/chess"

// Centipawn material values, White's perspective. Black's material is
// subtracted so Score is always from White's point of view; negamax callers
// negate as needed for the side to move.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

var pieceValue = [chess.NumPieces]int{
	chess.Pawn:   PawnValue,
	chess.Knight: KnightValue,
	chess.Bishop: BishopValue,
	chess.Rook:   RookValue,
	chess.Queen:  QueenValue,
	chess.King:   KingValue,
}

// PieceValue returns the flat material value of p, used by move ordering's
// MVV-LVA comparison as well as by the evaluator itself.
func PieceValue(p chess.Piece) int { return pieceValue[p] }

// Piece-square tables, one per piece type, indexed by square as seen from
// White's side of the board (a1=0 .. h8=63, rank-major). Black's value for a
// square is read by mirroring vertically (sq XOR 56), which flips the rank
// and keeps the file.
var pst = [chess.NumPieces][64]int{
	chess.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	chess.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	chess.Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	chess.King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

// mirror maps a White-table index to the equivalent Black-table index by
// flipping the rank while leaving the file unchanged.
func mirror(sq chess.Square) chess.Square { return chess.Square(int(sq) ^ 56) }

func value(c chess.Color, p chess.Piece, sq chess.Square) int {
	tableSq := sq
	if c == chess.Black {
		tableSq = mirror(sq)
	}
	v := pieceValue[p] + pst[p][tableSq]
	if c == chess.Black {
		return -v
	}
	return v
}

// Accumulator maintains the running material-plus-PST score, White minus
// Black, under the shared incremental-update protocol (position.Incremental).
type Accumulator struct {
	Score int
}

// NewAccumulator builds an Accumulator by scanning every occupied square
// once; callers keep it incrementally updated afterwards.
func NewAccumulator(pieceAt func(chess.Square) (chess.Color, chess.Piece, bool)) *Accumulator {
	a := &Accumulator{}
	for sq := chess.Square(0); sq < 64; sq++ {
		if c, p, ok := pieceAt(sq); ok {
			a.Score += value(c, p, sq)
		}
	}
	return a
}

func (a *Accumulator) Add(sq chess.Square, c chess.Color, p chess.Piece) {
	a.Score += value(c, p, sq)
}

func (a *Accumulator) Remove(sq chess.Square, c chess.Color, p chess.Piece) {
	a.Score -= value(c, p, sq)
}

func (a *Accumulator) Move(from, to chess.Square, c chess.Color, p chess.Piece) {
	a.Score -= value(c, p, from)
	a.Score += value(c, p, to)
}

func (a *Accumulator) Swap(sq chess.Square, c chess.Color, from, to chess.Piece) {
	a.Score -= value(c, from, sq)
	a.Score += value(c, to, sq)
}

func (a *Accumulator) ToggleCastlingRights(chess.Color, chess.CastlingSide) {}

func (a *Accumulator) SetEnPassant(chess.Square) {}

func (a *Accumulator) SetSideToMove(chess.Color) {}

// Relative returns the score from c's point of view (positive is good for c).
func (a *Accumulator) Relative(c chess.Color) int {
	if c == chess.White {
		return a.Score
	}
	return -a.Score
}
