package board

// Move packs a move into 32 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-14 promotion piece type (0 when not a promotion)
//	bits 15-18 capture, double push, en passant and castling flags
//
// Two moves from the same position are equal exactly when their canonical
// strings are equal.
type Move uint32

// MoveFlag marks special move kinds.
type MoveFlag uint32

const (
	FlagCapture MoveFlag = 1 << (15 + iota)
	FlagDoublePush
	FlagEnPassant
	FlagCastling
)

const NoMove Move = 0

// NewMove builds a non-promotion move.
func NewMove(from, to Square, flags MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(flags)
}

// NewPromotion builds a pawn move that promotes to pt.
func NewPromotion(from, to Square, pt PieceType, capture bool) Move {
	m := Move(from) | Move(to)<<6 | Move(pt)<<12
	if capture {
		m |= Move(FlagCapture)
	}
	return m
}

func (m Move) From() Square { return Square(m & 0x3F) }
func (m Move) To() Square   { return Square(m >> 6 & 0x3F) }

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	pt := PieceType(m >> 12 & 0x7)
	if pt == Pawn {
		return NoPieceType
	}
	return pt
}

func (m Move) IsPromotion() bool  { return m>>12&0x7 != 0 }
func (m Move) IsCapture() bool    { return MoveFlag(m)&FlagCapture != 0 }
func (m Move) IsDoublePush() bool { return MoveFlag(m)&FlagDoublePush != 0 }
func (m Move) IsEnPassant() bool  { return MoveFlag(m)&FlagEnPassant != 0 }
func (m Move) IsCastling() bool   { return MoveFlag(m)&FlagCastling != 0 }

// String returns the wire form: from, to and an optional lowercase
// promotion letter ("e2e4", "e7e8q"). NoMove prints "0000".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Letter())
	}
	return s
}

// MoveList is a fixed-capacity list; no legal position has more than 218 moves.
type MoveList struct {
	moves [256]Move
	count int
}

func (ml *MoveList) Add(m Move)        { ml.moves[ml.count] = m; ml.count++ }
func (ml *MoveList) Len() int          { return ml.count }
func (ml *MoveList) Get(i int) Move    { return ml.moves[i] }
func (ml *MoveList) Swap(i, j int)     { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }
func (ml *MoveList) Clear()            { ml.count = 0 }
func (ml *MoveList) Slice() []Move     { return ml.moves[:ml.count] }
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// Undo carries what MakeMove cannot recompute. It must be handed back to
// UndoMove exactly once, in LIFO order.
type Undo struct {
	Captured       Piece
	EnPassant      Square
	CastlingRights CastlingRights
	HalfMoveClock  int
}
