package board

import "fmt"

// MoveFlag is a bitmask of the properties a move carries. A move can
// carry more than one flag (a capturing promotion sets both the
// capture and promotion bits).
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagPromotion
	FlagEnPassant
	FlagCastleShort
	FlagCastleLong
	FlagDoublePawnPush
)

// Move is a packed 32-bit encoding of a chess move:
//
//	bits 0-5:   from square
//	bits 6-11:  to square
//	bits 12-14: moving piece type
//	bits 15-17: captured piece type (NoPieceType if none)
//	bits 18-20: promotion piece type (NoPieceType if none)
//	bits 21-26: MoveFlag bitmask
//
// Castling is encoded as the king's own two-square step; the rook's
// travel is implied by the flag and is applied entirely inside
// Position.ApplyMove.
type Move uint32

// NoMove represents the absence of a move.
const NoMove Move = 0

func packMove(from, to Square, piece, captured, promo PieceType, flags MoveFlag) Move {
	return Move(from) |
		Move(to)<<6 |
		Move(piece)<<12 |
		Move(captured)<<15 |
		Move(promo)<<18 |
		Move(flags)<<21
}

// NewMove creates a quiet (non-capture, non-promotion) move.
func NewMove(from, to Square, piece PieceType) Move {
	return packMove(from, to, piece, NoPieceType, NoPieceType, 0)
}

// NewCapture creates a capturing move.
func NewCapture(from, to Square, piece, captured PieceType) Move {
	return packMove(from, to, piece, captured, NoPieceType, FlagCapture)
}

// NewDoublePawnPush creates a two-square pawn advance.
func NewDoublePawnPush(from, to Square, piece PieceType) Move {
	return packMove(from, to, piece, NoPieceType, NoPieceType, FlagDoublePawnPush)
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(from, to Square, piece PieceType) Move {
	return packMove(from, to, piece, Pawn, NoPieceType, FlagCapture|FlagEnPassant)
}

// NewPromotion creates a promotion move, optionally also a capture.
func NewPromotion(from, to Square, piece, captured, promo PieceType) Move {
	flags := FlagPromotion
	if captured != NoPieceType {
		flags |= FlagCapture
	}
	return packMove(from, to, piece, captured, promo, flags)
}

// NewCastle creates a castling move, encoded as the king's own step.
func NewCastle(from, to Square, short bool) Move {
	flag := FlagCastleLong
	if short {
		flag = FlagCastleShort
	}
	return packMove(from, to, King, NoPieceType, NoPieceType, flag)
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> 6) & 0x3F) }

// Piece returns the type of the piece that moved.
func (m Move) Piece() PieceType { return PieceType((m >> 12) & 0x7) }

// CapturedPiece returns the type of piece captured, or NoPieceType.
func (m Move) CapturedPiece() PieceType { return PieceType((m >> 15) & 0x7) }

// PromotionPiece returns the promotion piece type, or NoPieceType.
func (m Move) PromotionPiece() PieceType { return PieceType((m >> 18) & 0x7) }

// Flags returns the move's flag bitmask.
func (m Move) Flags() MoveFlag { return MoveFlag((m >> 21) & 0x3F) }

func (m Move) has(f MoveFlag) bool { return m.Flags()&f != 0 }

// IsCapture returns true if this move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m.has(FlagCapture) }

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool { return m.has(FlagPromotion) }

// IsEnPassant returns true if this move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.has(FlagEnPassant) }

// IsCastleShort returns true if this move is kingside castling.
func (m Move) IsCastleShort() bool { return m.has(FlagCastleShort) }

// IsCastleLong returns true if this move is queenside castling.
func (m Move) IsCastleLong() bool { return m.has(FlagCastleLong) }

// IsCastle returns true if this move is castling of either side.
func (m Move) IsCastle() bool { return m.IsCastleShort() || m.IsCastleLong() }

// IsDoublePawnPush returns true if this move is a two-square pawn advance.
func (m Move) IsDoublePawnPush() bool { return m.has(FlagDoublePawnPush) }

// IsQuiet returns true if the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// String returns the UCI-style form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.PromotionPiece().Char())
	}
	return s
}

// ParseUCIMove parses a UCI-style move string ("e2e4", "e7e8q") against
// the given position, filling in the flags the position implies.
func ParseUCIMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()
	var captured PieceType = NoPieceType
	if cp := pos.PieceAt(to); cp != NoPiece {
		captured = cp.Type()
	}

	if len(s) >= 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, pt, captured, promo), nil
	}

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastle(from, to, to > from), nil
	}
	if pt == Pawn && to == pos.EnPassant && captured == NoPieceType {
		return NewEnPassant(from, to, pt), nil
	}
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		return NewDoublePawnPush(from, to, pt), nil
	}
	if captured != NoPieceType {
		return NewCapture(from, to, pt, captured), nil
	}
	return NewMove(from, to, pt), nil
}

// MoveList is a fixed-capacity list of moves; chess positions never
// have more than a few dozen legal moves, so this avoids allocation.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList { return &MoveList{} }

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Swap exchanges the moves at i and j.
func (ml *MoveList) Swap(i, j int) { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}
