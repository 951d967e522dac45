package engine

import (
	"time"

	"github.com/hailam/chesscore/internal/board"
)

const (
	Infinity  = 32000
	MateScore = 30000
	MaxPly    = 128
)

// IsMateScore reports whether score encodes a forced mate for either side.
func IsMateScore(score int) bool {
	return score > MateScore-MaxPly || score < -MateScore+MaxPly
}

// pvTable is the triangular principal-variation table: row ply holds the
// best line found from that ply.
type pvTable struct {
	length [MaxPly + 1]int
	moves  [MaxPly + 1][MaxPly + 1]board.Move
}

func (pv *pvTable) update(ply int, m board.Move) {
	pv.moves[ply][ply] = m
	next := pv.length[ply+1]
	copy(pv.moves[ply][ply+1:next], pv.moves[ply+1][ply+1:next])
	pv.length[ply] = next
}

func (pv *pvTable) line() []board.Move {
	out := make([]board.Move, pv.length[0])
	copy(out, pv.moves[0][:pv.length[0]])
	return out
}

// Searcher runs fixed-depth negamax searches over a borrowed position. A nil
// table disables caching.
type Searcher struct {
	tt     *TranspositionTable
	pos    *board.Position
	nodes  uint64
	pv     pvTable
	prevPV []board.Move
}

func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt}
}

func (s *Searcher) Nodes() uint64 { return s.nodes }

// reset prepares a new iterative-deepening run on pos.
func (s *Searcher) reset(pos *board.Position) {
	s.pos = pos
	s.nodes = 0
	s.prevPV = s.prevPV[:0]
}

func (s *Searcher) pvMove(ply int) board.Move {
	if ply < len(s.prevPV) {
		return s.prevPV[ply]
	}
	return board.NoMove
}

// searchRoot searches every root move to depth. The deadline, when set, is
// checked between root moves only. complete is false when the deadline cut
// the iteration short; the partial result must then be discarded.
func (s *Searcher) searchRoot(depth int, deadline time.Time) (best board.Move, bestScore int, complete bool) {
	s.nodes++
	s.pv.length[0] = 0

	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if s.pos.InCheck() {
			return board.NoMove, -MateScore, true
		}
		return board.NoMove, 0, true
	}
	orderMoves(s.pos, moves, s.pvMove(0))

	alpha, beta := -Infinity, Infinity
	bestScore = -Infinity
	for i, m := range moves.Slice() {
		if i > 0 && !deadline.IsZero() && time.Now().After(deadline) {
			return best, bestScore, false
		}

		undo := s.pos.MakeMove(m)
		score := -s.negamax(depth-1, 1, -beta, -alpha)
		s.pos.UndoMove(m, undo)

		if score > bestScore {
			bestScore, best = score, m
			if score > alpha {
				alpha = score
				s.pv.update(0, m)
			}
		}
	}

	if s.tt != nil {
		s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(bestScore, 0), TTExact)
	}
	return best, bestScore, true
}

// negamax returns the score of the borrowed position from the side to
// move's point of view, searched depth more plies.
func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	s.nodes++
	s.pv.length[ply] = ply

	if s.tt != nil {
		if e, ok := s.tt.Probe(s.pos.Hash); ok && int(e.Depth) >= depth {
			score := AdjustScoreFromTT(int(e.Score), ply)
			switch e.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score >= beta {
					return score
				}
				alpha = max(alpha, score)
			case TTUpperBound:
				if score <= alpha {
					return score
				}
				beta = min(beta, score)
			}
		}
	}

	// Bounds are judged against the window after the table narrowed it.
	alphaOrig := alpha

	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if s.pos.InCheck() {
			return -MateScore + ply
		}
		return 0
	}
	if depth == 0 || ply >= MaxPly {
		return Evaluate(s.pos)
	}

	orderMoves(s.pos, moves, s.pvMove(ply))

	bestScore := -Infinity
	for _, m := range moves.Slice() {
		undo := s.pos.MakeMove(m)
		score := -s.negamax(depth-1, ply+1, -beta, -alpha)
		s.pos.UndoMove(m, undo)

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				s.pv.update(ply, m)
			}
		}
		if alpha >= beta {
			break
		}
	}

	if s.tt != nil {
		flag := TTUpperBound
		if bestScore >= beta {
			flag = TTLowerBound
		} else if bestScore > alphaOrig {
			flag = TTExact
		}
		s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(bestScore, ply), flag)
	}
	return bestScore
}
