package board

import "strings"

type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opponent of c.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// PieceTypes lists every kind in ascending value order. Loops over "all
// kinds" iterate this list.
var PieceTypes = [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// PromotionTypes lists the kinds a pawn may become, strongest first.
var PromotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

const pieceTypeLetters = "pnbrqk"

// Letter returns the lowercase letter for the kind, or 0 for NoPieceType.
func (pt PieceType) Letter() byte {
	if pt >= NoPieceType {
		return 0
	}
	return pieceTypeLetters[pt]
}

// PieceTypeFromLetter maps a lowercase letter back to its kind.
func PieceTypeFromLetter(c byte) PieceType {
	i := strings.IndexByte(pieceTypeLetters, c)
	if i < 0 {
		return NoPieceType
	}
	return PieceType(i)
}

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece is a colored kind: kind + 6*color. NoPiece is an empty square.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// Pieces lists the twelve colored pieces in encoding order.
var Pieces = [...]Piece{
	WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

const pieceLetters = "PNBRQKpnbrqk"

func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter, uppercase for White. Empty squares print ".".
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return pieceLetters[p : p+1]
}

// PieceFromFEN maps a FEN letter to its piece, or NoPiece.
func PieceFromFEN(c byte) Piece {
	i := strings.IndexByte(pieceLetters, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}
