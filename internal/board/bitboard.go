package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares. Bit i is set when square i belongs to the set.
// A1 is bit 0, H1 bit 7, A8 bit 56 and H8 bit 63.
type Bitboard uint64

const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = Rank1 << 8
	Rank3 Bitboard = Rank1 << 16
	Rank4 Bitboard = Rank1 << 24
	Rank5 Bitboard = Rank1 << 32
	Rank6 Bitboard = Rank1 << 40
	Rank7 Bitboard = Rank1 << 48
	Rank8 Bitboard = Rank1 << 56

	Empty    Bitboard = 0
	Universe Bitboard = ^Empty

	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileB)
	NotFileGH Bitboard = ^(FileG | FileH)

	// Edges is every square on the outer ring of the board.
	Edges Bitboard = FileA | FileH | Rank1 | Rank8
)

// FileMask and RankMask are indexed by file and rank number (0-7).
var (
	FileMask = [8]Bitboard{FileA, FileA << 1, FileA << 2, FileA << 3, FileA << 4, FileA << 5, FileG, FileH}
	RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}
)

// SquareBB returns the set holding only sq.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

func (b Bitboard) Union(o Bitboard) Bitboard      { return b | o }
func (b Bitboard) Intersect(o Bitboard) Bitboard  { return b & o }
func (b Bitboard) Difference(o Bitboard) Bitboard { return b &^ o }
func (b Bitboard) Complement() Bitboard           { return ^b }

// IsSet reports whether sq is in the set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// With returns the set with sq added.
func (b Bitboard) With(sq Square) Bitboard {
	return b | (1 << sq)
}

// Without returns the set with sq removed.
func (b Bitboard) Without(sq Square) Bitboard {
	return b &^ (1 << sq)
}

func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest square in the set, or NoSquare for the empty set.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes the lowest square from the set and returns it.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Shifts move every square one step in a direction. Squares that would
// cross the a/h edge are dropped before shifting, so nothing wraps.

func (b Bitboard) North() Bitboard { return b << 8 }
func (b Bitboard) South() Bitboard { return b >> 8 }
func (b Bitboard) East() Bitboard  { return (b & NotFileH) << 1 }
func (b Bitboard) West() Bitboard  { return (b & NotFileA) >> 1 }

func (b Bitboard) NorthEast() Bitboard { return (b & NotFileH) << 9 }
func (b Bitboard) NorthWest() Bitboard { return (b & NotFileA) << 7 }
func (b Bitboard) SouthEast() Bitboard { return (b & NotFileH) >> 7 }
func (b Bitboard) SouthWest() Bitboard { return (b & NotFileA) >> 9 }

// Forward shifts one rank toward the opponent of c.
func (b Bitboard) Forward(c Color) Bitboard {
	if c == White {
		return b.North()
	}
	return b.South()
}

// ForEach calls f for every square in ascending order.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares lists the set in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String draws the set with rank 8 on top.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
