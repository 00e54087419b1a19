package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kvchess/chesscore/internal/bitboard"
	"github.com/kvchess/chesscore/internal/chess"
)

// StartingFEN is the standard chess starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceLetters = map[byte]chess.Piece{
	'p': chess.Pawn, 'n': chess.Knight, 'b': chess.Bishop,
	'r': chess.Rook, 'q': chess.Queen, 'k': chess.King,
}

// FromFEN parses Forsyth-Edwards Notation into a Position. It returns an
// error for any malformed field rather than guessing at intent.
func FromFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("position: malformed FEN %q: need at least 4 fields", fen)
	}

	var p Position
	if err := parseBoard(fields[0], &p); err != nil {
		return Position{}, err
	}

	switch fields[1] {
	case "w":
		p.SideToMove = chess.White
	case "b":
		p.SideToMove = chess.Black
	default:
		return Position{}, fmt.Errorf("position: malformed FEN %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, r := range fields[2] {
			switch r {
			case 'K':
				p.CastlingRights.Set(chess.White, chess.KingSide)
			case 'Q':
				p.CastlingRights.Set(chess.White, chess.QueenSide)
			case 'k':
				p.CastlingRights.Set(chess.Black, chess.KingSide)
			case 'q':
				p.CastlingRights.Set(chess.Black, chess.QueenSide)
			default:
				return Position{}, fmt.Errorf("position: malformed FEN %q: bad castling field %q", fen, fields[2])
			}
		}
	}

	if fields[3] == "-" {
		p.EPSquare = chess.NoSquare
	} else {
		sq, err := chess.ParseSquare(fields[3])
		if err != nil {
			return Position{}, fmt.Errorf("position: malformed FEN %q: %w", fen, err)
		}
		p.EPSquare = sq
	}

	p.HalfmoveClock = 0
	p.FullmoveNumber = 1
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return Position{}, fmt.Errorf("position: malformed FEN %q: bad halfmove clock %q", fen, fields[4])
		}
		p.HalfmoveClock = n
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return Position{}, fmt.Errorf("position: malformed FEN %q: bad fullmove number %q", fen, fields[5])
		}
		p.FullmoveNumber = n
	}

	return p, nil
}

func parseBoard(board string, p *Position) error {
	ranks := strings.Split(board, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("position: malformed FEN board %q: need 8 ranks", board)
	}
	for i, rankStr := range ranks {
		rank := 7 - i // FEN ranks run 8 down to 1
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := pieceLetters[lower(ch)]
			if !ok {
				return fmt.Errorf("position: malformed FEN board %q: bad piece letter %q", board, ch)
			}
			if file >= 8 {
				return fmt.Errorf("position: malformed FEN board %q: rank %d overflows", board, rank+1)
			}
			c := chess.Black
			if ch >= 'A' && ch <= 'Z' {
				c = chess.White
			}
			sq := chess.NewSquare(file, rank)
			p.Pieces[c.Index()][piece] |= bitboard.FromSquare(int(sq))
			file++
		}
		if file != 8 {
			return fmt.Errorf("position: malformed FEN board %q: rank %d has %d files, want 8", board, rank+1, file)
		}
	}
	return nil
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}

// ToFEN serialises a Position back into Forsyth-Edwards Notation.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := chess.NewSquare(file, rank)
			c, piece, ok := p.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.Letter(c))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.SideToMove.String())

	sb.WriteByte(' ')
	rights := castlingFENField(p.CastlingRights)
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if p.EPSquare == chess.NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.EPSquare.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}

func castlingFENField(r chess.CastlingRights) string {
	var sb strings.Builder
	if r.Has(chess.White, chess.KingSide) {
		sb.WriteByte('K')
	}
	if r.Has(chess.White, chess.QueenSide) {
		sb.WriteByte('Q')
	}
	if r.Has(chess.Black, chess.KingSide) {
		sb.WriteByte('k')
	}
	if r.Has(chess.Black, chess.QueenSide) {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
