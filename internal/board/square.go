// Package board holds the bitboard position model, magic slider attacks,
// move application with incremental Zobrist hashing, and legal move generation.
package board

import "fmt"

// Square indexes the board little-endian rank-file: a1=0, h1=7, a8=56, h8=63.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	// NoSquare marks an absent square, such as no en-passant target.
	NoSquare Square = 64
)

// NewSquare builds a square from a 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

func (sq Square) File() int { return int(sq) & 7 }
func (sq Square) Rank() int { return int(sq) >> 3 }

// IsValid reports whether sq names one of the 64 board squares.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the lowercase coordinate ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare reads a lowercase coordinate such as "e4". "-" yields NoSquare.
func ParseSquare(s string) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Mirror flips the square across the middle of the board (a1 <-> a8).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRank is the rank counted from c's own back rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}
