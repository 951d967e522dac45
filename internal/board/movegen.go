package board

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// GenerateLegalMoves returns every legal move for the side to move. The
// position is borrowed and comes back unchanged.
//
// Each pseudo-legal candidate is made, tested against the opponent's full
// attack set, and unmade. Pin and check-evasion aware generation would
// avoid the make/unmake per candidate; the result would be identical.
func (p *Position) GenerateLegalMoves() *MoveList {
	var pseudo MoveList
	p.generatePseudoLegal(&pseudo)

	us := p.SideToMove
	legal := &MoveList{}
	for _, m := range pseudo.Slice() {
		undo := p.MakeMove(m)
		if !p.kingAttacked(us) {
			legal.Add(m)
		}
		p.UndoMove(m, undo)
	}
	return legal
}

// HasLegalMoves reports whether the side to move can move at all.
func (p *Position) HasLegalMoves() bool {
	var pseudo MoveList
	p.generatePseudoLegal(&pseudo)

	us := p.SideToMove
	for _, m := range pseudo.Slice() {
		undo := p.MakeMove(m)
		ok := !p.kingAttacked(us)
		p.UndoMove(m, undo)
		if ok {
			return true
		}
	}
	return false
}

func (p *Position) IsCheckmate() bool { return p.InCheck() && !p.HasLegalMoves() }
func (p *Position) IsStalemate() bool { return !p.InCheck() && !p.HasLegalMoves() }

// ParseMove matches a wire token such as "e7e8q" against the legal moves.
// The position is not modified.
func (p *Position) ParseMove(token string) (Move, error) {
	legal := p.GenerateLegalMoves().Slice()
	i := slices.IndexFunc(legal, func(m Move) bool { return m.String() == token })
	if i < 0 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, token)
	}
	return legal[i], nil
}

func (p *Position) generatePseudoLegal(ml *MoveList) {
	us := p.SideToMove
	own := p.Occupied[us]
	enemies := p.Occupied[us.Other()]

	p.generatePawnMoves(ml)

	for bb := p.Pieces[us][Knight]; bb != 0; {
		from := bb.PopLSB()
		addTargets(ml, from, knightAttacks[from]&^own, enemies)
	}
	for bb := p.Pieces[us][Bishop]; bb != 0; {
		from := bb.PopLSB()
		addTargets(ml, from, BishopAttacks(from, p.AllOccupied)&^own, enemies)
	}
	for bb := p.Pieces[us][Rook]; bb != 0; {
		from := bb.PopLSB()
		addTargets(ml, from, RookAttacks(from, p.AllOccupied)&^own, enemies)
	}
	for bb := p.Pieces[us][Queen]; bb != 0; {
		from := bb.PopLSB()
		addTargets(ml, from, QueenAttacks(from, p.AllOccupied)&^own, enemies)
	}
	for bb := p.Pieces[us][King]; bb != 0; {
		from := bb.PopLSB()
		addTargets(ml, from, kingAttacks[from]&^own, enemies)
	}

	p.generateCastling(ml)
}

// addTargets splits targets into captures and quiet moves.
func addTargets(ml *MoveList, from Square, targets, enemies Bitboard) {
	for bb := targets & enemies; bb != 0; {
		ml.Add(NewMove(from, bb.PopLSB(), FlagCapture))
	}
	for bb := targets &^ enemies; bb != 0; {
		ml.Add(NewMove(from, bb.PopLSB(), 0))
	}
}

func addPromotions(ml *MoveList, from, to Square, capture bool) {
	for _, pt := range PromotionTypes {
		ml.Add(NewPromotion(from, to, pt, capture))
	}
}

// generatePawnMoves works on the whole pawn set at once: every target set
// is a shift of the pawns, and the origin is recovered from the shift.
func (p *Position) generatePawnMoves(ml *MoveList) {
	us := p.SideToMove
	pawns := p.Pieces[us][Pawn]
	empty := ^p.AllOccupied
	enemies := p.Occupied[us.Other()]

	lastRank, thirdRank := Rank8, Rank3
	up, upLeft, upRight := 8, 7, 9
	if us == Black {
		lastRank, thirdRank = Rank1, Rank6
		up, upLeft, upRight = -8, -9, -7
	}
	origin := func(to Square, delta int) Square { return Square(int(to) - delta) }

	single := pawns.Forward(us) & empty
	double := (single & thirdRank).Forward(us) & empty

	for bb := single &^ lastRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(origin(to, up), to, 0))
	}
	for bb := single & lastRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, origin(to, up), to, false)
	}
	for bb := double; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(origin(to, 2*up), to, FlagDoublePush))
	}

	var left, right Bitboard
	if us == White {
		left, right = pawns.NorthWest(), pawns.NorthEast()
	} else {
		left, right = pawns.SouthWest(), pawns.SouthEast()
	}

	for _, side := range [...]struct {
		targets Bitboard
		delta   int
	}{{left, upLeft}, {right, upRight}} {
		for bb := side.targets & enemies &^ lastRank; bb != 0; {
			to := bb.PopLSB()
			ml.Add(NewMove(origin(to, side.delta), to, FlagCapture))
		}
		for bb := side.targets & enemies & lastRank; bb != 0; {
			to := bb.PopLSB()
			addPromotions(ml, origin(to, side.delta), to, true)
		}
		if p.EnPassant != NoSquare && side.targets.IsSet(p.EnPassant) {
			ml.Add(NewMove(origin(p.EnPassant, side.delta), p.EnPassant, FlagCapture|FlagEnPassant))
		}
	}
}

// generateCastling adds castles whose right is held, whose path is empty and
// whose crossed squares are not attacked. The attack set is computed with
// our king lifted off the board.
func (p *Position) generateCastling(ml *MoveList) {
	us := p.SideToMove
	var mine CastlingRights = WhiteKingSide | WhiteQueenSide
	if us == Black {
		mine = BlackKingSide | BlackQueenSide
	}
	if p.CastlingRights&mine == 0 {
		return
	}

	attacked := p.AttackSet(us.Other(), p.AllOccupied&^p.Pieces[us][King])
	for i := range castles {
		c := &castles[i]
		if p.CastlingRights&c.right&mine == 0 {
			continue
		}
		if p.AllOccupied&c.empty != 0 || attacked&c.crossed != 0 {
			continue
		}
		ml.Add(NewMove(c.kingFrom, c.kingTo, FlagCastling))
	}
}
