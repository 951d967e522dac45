package board

// Zobrist keys. The hash of a position is the XOR of
//   - one key per (piece, square) for every occupied square,
//   - one key per castle right still held,
//   - an en-passant file key, only while a capture there is really possible,
//   - the white-to-move key when White is on move.
var (
	zobristPiece       [12][64]uint64
	zobristCastling    [4]uint64
	zobristEnPassant   [8]uint64
	zobristWhiteToMove uint64
)

type prng struct {
	state uint64
}

// xorshift64*
func (r *prng) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := &prng{state: 69420}

	for _, pc := range Pieces {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[pc][sq] = rng.next()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rng.next()
	}
	zobristWhiteToMove = rng.next()
}

// castlingKey folds the keys of every right in cr.
func castlingKey(cr CastlingRights) uint64 {
	var key uint64
	for i := range zobristCastling {
		if cr&(1<<i) != 0 {
			key ^= zobristCastling[i]
		}
	}
	return key
}

// ComputeHash rebuilds the hash from the board contents. Play never calls
// it; the incremental hash must always equal it.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for _, pc := range Pieces {
		for bb := p.Pieces[pc.Color()][pc.Type()]; bb != 0; {
			h ^= zobristPiece[pc][bb.PopLSB()]
		}
	}
	h ^= castlingKey(p.CastlingRights)
	if p.EnPassant != NoSquare && p.canCaptureEnPassant(p.EnPassant, p.SideToMove) {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	if p.SideToMove == White {
		h ^= zobristWhiteToMove
	}
	return h
}
