package chess

import "fmt"

// MoveType is the 4-bit type field packed into a Move. The top bit is the
// capture flag, the next bit is the promotion flag; a value of zero means
// "quiet, no clock reset, no special handling" and any non-zero value means
// "irreversible or special" (per §3's Move data model).
type MoveType uint8

const (
	Quiet MoveType = iota
	Castle
	PawnPush
	DoublePawnPush
	PromoKnight
	PromoBishop
	PromoRook
	PromoQueen

	capCaptureBit  MoveType = 0b1000
	capPromoteBit  MoveType = 0b0100
	Capture        MoveType = capCaptureBit
	EnPassant      MoveType = capCaptureBit | 0b0001
	PromoKnightCap MoveType = capCaptureBit | PromoKnight
	PromoBishopCap MoveType = capCaptureBit | PromoBishop
	PromoRookCap   MoveType = capCaptureBit | PromoRook
	PromoQueenCap  MoveType = capCaptureBit | PromoQueen
)

// IsCapture reports whether the move's type has the capture bit set.
func (t MoveType) IsCapture() bool { return t&capCaptureBit != 0 }

// IsPromotion reports whether the move's type has the promotion bit set.
func (t MoveType) IsPromotion() bool { return t&capPromoteBit != 0 }

// PromotedPiece returns the piece a promotion type promotes to. Only valid
// when IsPromotion() is true.
func (t MoveType) PromotedPiece() Piece {
	switch t &^ capCaptureBit {
	case PromoKnight:
		return Knight
	case PromoBishop:
		return Bishop
	case PromoRook:
		return Rook
	case PromoQueen:
		return Queen
	default:
		return Pawn
	}
}

// promoType builds the (possibly-capturing) promotion MoveType for p.
func promoType(p Piece, capture bool) MoveType {
	var base MoveType
	switch p {
	case Knight:
		base = PromoKnight
	case Bishop:
		base = PromoBishop
	case Rook:
		base = PromoRook
	case Queen:
		base = PromoQueen
	}
	if capture {
		base |= capCaptureBit
	}
	return base
}

// Move is a 16-bit packed value: 6 bits from, 6 bits to, 4 bits type.
type Move uint16

const (
	moveFromShift = 0
	moveToShift   = 6
	moveTypeShift = 12
	moveFromMask  = 0x3F << moveFromShift
	moveToMask    = 0x3F << moveToShift
	moveTypeMask  = 0xF << moveTypeShift
)

// NewMove packs a from/to/type triple into a Move.
func NewMove(from, to Square, t MoveType) Move {
	return Move(uint16(from)<<moveFromShift | uint16(to)<<moveToShift | uint16(t)<<moveTypeShift)
}

func (m Move) From() Square   { return Square((m & moveFromMask) >> moveFromShift) }
func (m Move) To() Square     { return Square((m & moveToMask) >> moveToShift) }
func (m Move) Type() MoveType { return MoveType((m & moveTypeMask) >> moveTypeShift) }

// IsZero reports whether this is the null move (used as a "no move" sentinel
// in transposition entries and PV extraction).
func (m Move) IsZero() bool { return m == 0 }

// String renders long algebraic notation: from-square + to-square, with a
// trailing lower-case promotion letter if applicable.
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if m.Type().IsPromotion() {
		s += m.Type().PromotedPiece().String()
	}
	return s
}

// FatMove is a Move plus the piece that is moving. Carrying the piece
// alongside the move avoids a board lookup every time a caller needs to
// know what's moving, which in the hot recursive path is cheaper than
// re-deriving it from the position.
type FatMove struct {
	Move  Move
	Piece Piece
}

func (fm FatMove) String() string {
	return fmt.Sprintf("%s%s", fm.Piece, fm.Move)
}
