package board

// Leaper and pawn attack tables, built from masked shifts at startup.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		knightAttacks[sq] = (bb&NotFileH)<<17 | (bb&NotFileA)<<15 |
			(bb&NotFileGH)<<10 | (bb&NotFileAB)<<6 |
			(bb&NotFileA)>>17 | (bb&NotFileH)>>15 |
			(bb&NotFileAB)>>10 | (bb&NotFileGH)>>6

		kingAttacks[sq] = bb.North() | bb.South() | bb.East() | bb.West() |
			bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}

	initMagics()
}

func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }
func KingAttacks(sq Square) Bitboard   { return kingAttacks[sq] }

// PawnAttacks returns the squares a c pawn on sq captures on.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// AttackSet is the union of every square attacked by c's pieces, with
// sliders blocked by occupied.
func (p *Position) AttackSet(c Color, occupied Bitboard) Bitboard {
	pawns := p.Pieces[c][Pawn]
	var attacks Bitboard
	if c == White {
		attacks = pawns.NorthEast() | pawns.NorthWest()
	} else {
		attacks = pawns.SouthEast() | pawns.SouthWest()
	}

	for bb := p.Pieces[c][Knight]; bb != 0; {
		attacks |= knightAttacks[bb.PopLSB()]
	}
	for bb := p.Pieces[c][Bishop] | p.Pieces[c][Queen]; bb != 0; {
		attacks |= BishopAttacks(bb.PopLSB(), occupied)
	}
	for bb := p.Pieces[c][Rook] | p.Pieces[c][Queen]; bb != 0; {
		attacks |= RookAttacks(bb.PopLSB(), occupied)
	}
	for bb := p.Pieces[c][King]; bb != 0; {
		attacks |= kingAttacks[bb.PopLSB()]
	}
	return attacks
}

// AttackersTo returns c's pieces that attack sq.
func (p *Position) AttackersTo(sq Square, c Color, occupied Bitboard) Bitboard {
	return pawnAttacks[c.Other()][sq]&p.Pieces[c][Pawn] |
		knightAttacks[sq]&p.Pieces[c][Knight] |
		kingAttacks[sq]&p.Pieces[c][King] |
		BishopAttacks(sq, occupied)&(p.Pieces[c][Bishop]|p.Pieces[c][Queen]) |
		RookAttacks(sq, occupied)&(p.Pieces[c][Rook]|p.Pieces[c][Queen])
}

// IsSquareAttacked reports whether any of by's pieces attack sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.AttackersTo(sq, by, p.AllOccupied) != 0
}

// kingAttacked reports whether c's king stands in the opponent's attack set.
func (p *Position) kingAttacked(c Color) bool {
	return p.AttackSet(c.Other(), p.AllOccupied)&p.Pieces[c][King] != 0
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.kingAttacked(p.SideToMove)
}
