package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/hailam/chesscore/internal/board"
)

// DefaultDepth bounds a search given neither a depth nor a time limit.
const DefaultDepth = 6

// SearchInfo reports one completed iterative-deepening depth.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int
}

// SearchLimits bounds a search. Zero fields are unlimited; if both are zero
// DefaultDepth applies.
type SearchLimits struct {
	Depth    int
	MoveTime time.Duration
}

// SearchResult is the outcome of the deepest completed iteration. Move is
// NoMove only when the root has no legal moves; Score is then the mate
// score or 0.
type SearchResult struct {
	Move    board.Move
	Score   int
	Depth   int
	Nodes   uint64
	PV      []board.Move
	Elapsed time.Duration
}

// Engine runs iterative-deepening searches with a transposition table.
type Engine struct {
	searcher *Searcher
	tt       *TranspositionTable

	// OnInfo, if set, is called after every completed depth.
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a ttSizeMB megabyte transposition table.
func NewEngine(ttSizeMB int) *Engine {
	return NewEngineWithTable(NewTranspositionTableMB(ttSizeMB))
}

// NewEngineWithTable creates an engine around tt. A nil tt searches
// without caching.
func NewEngineWithTable(tt *TranspositionTable) *Engine {
	return &Engine{searcher: NewSearcher(tt), tt: tt}
}

// Go returns the best move found within maxDepth plies and budget. A zero
// budget means no time limit.
func (e *Engine) Go(pos *board.Position, maxDepth int, budget time.Duration) board.Move {
	return e.SearchWithLimits(pos, SearchLimits{Depth: maxDepth, MoveTime: budget}).Move
}

// SearchWithLimits deepens one ply at a time until the depth limit, the
// deadline, or a forced mate. The deadline is only checked between depths
// and between root moves, so one slow root move can overrun it. Depth 1
// always completes. pos is borrowed and returned unchanged.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) SearchResult {
	start := time.Now()

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = MaxPly - 1
		if limits.MoveTime <= 0 {
			maxDepth = DefaultDepth
		}
	}
	maxDepth = min(maxDepth, MaxPly-1)

	var deadline time.Time
	if limits.MoveTime > 0 {
		deadline = start.Add(limits.MoveTime)
	}

	s := e.searcher
	s.reset(pos)

	var res SearchResult
	for depth := 1; depth <= maxDepth; depth++ {
		iterDeadline := deadline
		if depth == 1 {
			iterDeadline = time.Time{}
		} else if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		move, score, complete := s.searchRoot(depth, iterDeadline)
		if !complete {
			log.Debug().Int("depth", depth).Msg("deadline reached mid-iteration")
			break
		}

		res = SearchResult{
			Move:  move,
			Score: score,
			Depth: depth,
			PV:    s.pv.line(),
		}
		s.prevPV = slices.Clone(res.PV)

		elapsed := time.Since(start)
		log.Debug().
			Int("depth", depth).
			Int("score", score).
			Uint64("nodes", s.Nodes()).
			Str("pv", FormatPV(res.PV)).
			Dur("elapsed", elapsed).
			Msg("iteration complete")

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    s.Nodes(),
				Time:     elapsed,
				PV:       res.PV,
				HashFull: e.HashFull(),
			})
		}

		if move == board.NoMove || IsMateScore(score) {
			break
		}
	}

	res.Nodes = s.Nodes()
	res.Elapsed = time.Since(start)
	return res
}

// Clear empties the transposition table, as for a new game.
func (e *Engine) Clear() {
	if e.tt != nil {
		e.tt.Clear()
	}
}

// Resize replaces the transposition table with one of mb megabytes.
func (e *Engine) Resize(mb int) {
	e.tt = NewTranspositionTableMB(mb)
	e.searcher.tt = e.tt
}

// HashFull reports table usage in permille, 0 without a table.
func (e *Engine) HashFull() int {
	if e.tt == nil {
		return 0
	}
	return e.tt.HashFull()
}

func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// FormatPV joins moves in wire form separated by spaces.
func FormatPV(pv []board.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// UCIScore renders a score as "cp N" or "mate N", counting mate in moves.
func UCIScore(score int) string {
	switch {
	case score > MateScore-MaxPly:
		return fmt.Sprintf("mate %d", (MateScore-score+1)/2)
	case score < -MateScore+MaxPly:
		return fmt.Sprintf("mate -%d", (MateScore+score)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
