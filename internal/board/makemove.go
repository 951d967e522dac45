package board

// enPassantVictim returns the square of the pawn taken when a mover pawn
// captures en passant onto to.
func enPassantVictim(to Square, mover Color) Square {
	if mover == White {
		return to - 8
	}
	return to + 8
}

// MakeMove applies m, which must come from GenerateLegalMoves or
// generatePseudoLegal on this position, and returns what UndoMove needs.
func (p *Position) MakeMove(m Move) Undo {
	us := p.SideToMove
	from, to := m.From(), m.To()
	moving := p.PieceAt(from)

	undo := Undo{
		Captured:       NoPiece,
		EnPassant:      p.EnPassant,
		CastlingRights: p.CastlingRights,
		HalfMoveClock:  p.HalfMoveClock,
	}

	p.setEnPassant(NoSquare)
	rights := p.CastlingRights

	if m.IsCapture() {
		victim := to
		if m.IsEnPassant() {
			victim = enPassantVictim(to, us)
		}
		undo.Captured = p.PieceAt(victim)
		p.takePiece(undo.Captured, victim)
		rights &^= revokes[victim]
	}

	if m.IsDoublePush() {
		target := (from + to) / 2
		if p.canCaptureEnPassant(target, us.Other()) {
			p.setEnPassant(target)
		}
	}

	switch {
	case m.IsCastling():
		c := castleFor(to)
		rook := NewPiece(Rook, us)
		p.takePiece(moving, from)
		p.putPiece(moving, to)
		p.takePiece(rook, c.rookFrom)
		p.putPiece(rook, c.rookTo)
	case m.IsPromotion():
		p.takePiece(moving, from)
		p.putPiece(NewPiece(m.Promotion(), us), to)
	default:
		p.takePiece(moving, from)
		p.putPiece(moving, to)
	}
	p.setCastlingRights(rights &^ revokes[from])

	if moving.Type() == Pawn || m.IsCapture() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.flipSide()

	p.assertConsistent("make", m)
	return undo
}

// UndoMove reverses MakeMove(m), leaving every field and the hash exactly as
// they were before it.
func (p *Position) UndoMove(m Move, undo Undo) {
	p.flipSide()
	us := p.SideToMove
	if us == Black {
		p.FullMoveNumber--
	}
	from, to := m.From(), m.To()

	switch {
	case m.IsCastling():
		c := castleFor(to)
		king, rook := NewPiece(King, us), NewPiece(Rook, us)
		p.takePiece(rook, c.rookTo)
		p.putPiece(rook, c.rookFrom)
		p.takePiece(king, to)
		p.putPiece(king, from)
	case m.IsPromotion():
		p.takePiece(NewPiece(m.Promotion(), us), to)
		p.putPiece(NewPiece(Pawn, us), from)
	default:
		moving := p.PieceAt(to)
		p.takePiece(moving, to)
		p.putPiece(moving, from)
	}

	if undo.Captured != NoPiece {
		victim := to
		if m.IsEnPassant() {
			victim = enPassantVictim(to, us)
		}
		p.putPiece(undo.Captured, victim)
	}

	p.setEnPassant(undo.EnPassant)
	p.setCastlingRights(undo.CastlingRights)
	p.HalfMoveClock = undo.HalfMoveClock

	p.assertConsistent("undo", m)
}
