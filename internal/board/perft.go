package board

// Perft counts the leaf nodes of the legal move tree depth plies deep.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		undo := p.MakeMove(m)
		nodes += p.Perft(depth - 1)
		p.UndoMove(m, undo)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by wire form.
func (p *Position) Divide(depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	if depth < 1 {
		return counts
	}
	for _, m := range p.GenerateLegalMoves().Slice() {
		undo := p.MakeMove(m)
		counts[m.String()] = p.Perft(depth - 1)
		p.UndoMove(m, undo)
	}
	return counts
}
