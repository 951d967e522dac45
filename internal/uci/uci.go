// Package uci is a line-oriented front end speaking the Universal Chess
// Interface protocol over any reader/writer pair.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

// Recorder receives a summary of every finished search.
type Recorder interface {
	RecordSearch(depth int, nodes uint64) error
}

// UCI implements the Universal Chess Interface protocol. Searches run
// synchronously on the calling goroutine, so stop has nothing to interrupt.
type UCI struct {
	engine   *engine.Engine
	position *board.Position
	out      io.Writer
	recorder Recorder

	// Limits for a bare "go".
	defaultDepth int
	moveTime     time.Duration
	hashMB       int
}

// New creates a protocol handler writing replies to out.
func New(eng *engine.Engine, out io.Writer) *UCI {
	return &UCI{
		engine:       eng,
		position:     board.NewPosition(),
		out:          out,
		defaultDepth: engine.DefaultDepth,
	}
}

// SetRecorder installs r to receive search summaries. nil disables recording.
func (u *UCI) SetRecorder(r Recorder) {
	u.recorder = r
}

// SetDefaults sets the limits used by "go" without arguments. A zero
// moveTime means depth only.
func (u *UCI) SetDefaults(depth int, moveTime time.Duration) {
	if depth > 0 {
		u.defaultDepth = depth
	}
	u.moveTime = moveTime
}

// SetHashMB records the table size advertised by "uci".
func (u *UCI) SetHashMB(mb int) {
	u.hashMB = mb
}

// Position returns the current position.
func (u *UCI) Position() *board.Position {
	return u.position
}

// Run reads commands from in until quit or end of input.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if u.Handle(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Handle executes one command line. It reports true for quit.
func (u *UCI) Handle(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	log.Debug().Str("line", line).Msg("received")

	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.handleNewGame()
	case "position":
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "stop", "ponderhit":
	case "setoption":
		u.handleSetOption(args)
	case "quit":
		return true
	// Debug commands
	case "d":
		u.println(u.position.String())
	case "perft":
		u.handlePerft(args)
	default:
		u.printf("info string unknown command %s\n", cmd)
	}
	return false
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *UCI) handleUCI() {
	u.println("id name ChessCore")
	u.println("id author ChessCore Team")
	u.println("")
	u.printf("option name Hash type spin default %d min 1 max 4096\n", max(u.hashMB, 1))
	u.printf("option name Depth type spin default %d min 1 max %d\n", u.defaultDepth, engine.MaxPly-1)
	u.println("uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.position = board.NewPosition()
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// Moves apply up to the first token that is not legal; that token and the
// rest are reported and dropped.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := slices.Index(args, "moves")
	head := args
	var moves []string
	if movesAt >= 0 {
		head, moves = args[:movesAt], args[movesAt+1:]
	}

	if len(head) == 0 {
		u.println("info string position needs startpos or fen")
		return
	}

	var pos *board.Position
	switch head[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(head[1:], " "))
		if err != nil {
			log.Warn().Err(err).Msg("position rejected")
			u.printf("info string %v\n", err)
			return
		}
	default:
		u.printf("info string expected startpos or fen, got %s\n", head[0])
		return
	}

	for i, token := range moves {
		m, err := pos.ParseMove(token)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Str("fen", pos.ToFEN()).Msg("move rejected")
			u.printf("info string %v\n", err)
			break
		}
		pos.MakeMove(m)
	}
	u.position = pos
}

// parseGoOptions reads the depth and movetime arguments of "go". Unknown
// arguments are ignored.
func parseGoOptions(args []string) (engine.SearchLimits, bool) {
	var limits engine.SearchLimits
	given := false
	for i := 0; i+1 < len(args); i++ {
		switch args[i] {
		case "depth":
			if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
				limits.Depth = d
				given = true
			}
			i++
		case "movetime":
			if ms, err := strconv.Atoi(args[i+1]); err == nil && ms > 0 {
				limits.MoveTime = time.Duration(ms) * time.Millisecond
				given = true
			}
			i++
		}
	}
	return limits, given
}

// handleGo searches the current position and replies with bestmove.
func (u *UCI) handleGo(args []string) {
	limits, given := parseGoOptions(args)
	if !given {
		limits = engine.SearchLimits{Depth: u.defaultDepth, MoveTime: u.moveTime}
	}

	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	res := u.engine.SearchWithLimits(u.position, limits)
	u.printf("bestmove %s\n", res.Move)

	log.Info().
		Str("move", res.Move.String()).
		Int("depth", res.Depth).
		Int("score", res.Score).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")

	if u.recorder != nil {
		if err := u.recorder.RecordSearch(res.Depth, res.Nodes); err != nil {
			log.Error().Err(err).Msg("recording search stats")
		}
	}
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		"score " + engine.UCIScore(info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %d", uint64(float64(info.Nodes)/info.Time.Seconds())))
	}
	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}
	if len(info.PV) > 0 {
		parts = append(parts, "pv "+engine.FormatPV(info.PV))
	}
	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value []string
	var field *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			field = &name
		case "value":
			field = &value
		default:
			if field != nil {
				*field = append(*field, arg)
			}
		}
	}

	key := strings.ToLower(strings.Join(name, " "))
	n, err := strconv.Atoi(strings.Join(value, " "))
	switch key {
	case "hash":
		if err != nil || n < 1 {
			u.printf("info string bad Hash value %q\n", strings.Join(value, " "))
			return
		}
		u.hashMB = n
		u.engine.Resize(n)
	case "depth":
		if err != nil || n < 1 || n >= engine.MaxPly {
			u.printf("info string bad Depth value %q\n", strings.Join(value, " "))
			return
		}
		u.defaultDepth = n
	default:
		u.printf("info string unknown option %s\n", strings.Join(name, " "))
	}
}

// handlePerft prints the per-move node counts for the current position.
func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			u.printf("info string bad perft depth %q\n", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	counts := u.position.Divide(depth)
	elapsed := time.Since(start)

	keys := maps.Keys(counts)
	slices.Sort(keys)
	var total uint64
	for _, k := range keys {
		u.printf("%s: %d\n", k, counts[k])
		total += counts[k]
	}
	u.printf("\nNodes searched: %d\n", total)

	log.Debug().Int("depth", depth).Uint64("nodes", total).Dur("elapsed", elapsed).Msg("perft")
}
