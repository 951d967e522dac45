package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

type fakeRecorder struct {
	depths []int
	nodes  []uint64
}

func (r *fakeRecorder) RecordSearch(depth int, nodes uint64) error {
	r.depths = append(r.depths, depth)
	r.nodes = append(r.nodes, nodes)
	return nil
}

func newTestUCI() (*UCI, *bytes.Buffer) {
	var out bytes.Buffer
	return New(engine.NewEngine(1), &out), &out
}

func TestHandshake(t *testing.T) {
	u, out := newTestUCI()
	if err := u.Run(strings.NewReader("uci\nisready\nquit\nisready\n")); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"id name ChessCore", "option name Hash", "uciok\n", "readyok\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "readyok") != 1 {
		t.Error("commands after quit were executed")
	}
}

func TestPositionMoves(t *testing.T) {
	u, _ := newTestUCI()
	u.Handle("position startpos moves e2e4 e7e5 g1f3")
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := u.Position().ToFEN(); got != want {
		t.Errorf("FEN = %s, want %s", got, want)
	}

	u.Handle("position fen 4k3/8/8/8/8/8/4P3/4K3 w - - 0 1 moves e2e4")
	if got := u.Position().ToFEN(); got != "4k3/8/8/8/4P3/8/8/4K3 b - - 0 1" {
		t.Errorf("FEN = %s", got)
	}
}

func TestPositionRejectsIllegalToken(t *testing.T) {
	u, out := newTestUCI()
	u.Handle("position startpos moves e2e4 e2e4 d7d5")

	if !strings.Contains(out.String(), "info string") {
		t.Errorf("rejection not reported: %q", out.String())
	}
	// e2e4 applies, the second e2e4 and everything after is dropped.
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
	if got := u.Position().ToFEN(); got != want {
		t.Errorf("FEN = %s, want %s", got, want)
	}
}

func TestPositionBadFENKeepsPrevious(t *testing.T) {
	u, out := newTestUCI()
	u.Handle("position startpos moves e2e4")
	before := u.Position().ToFEN()
	u.Handle("position fen not/a/fen w - - 0 1")
	if u.Position().ToFEN() != before {
		t.Error("bad FEN replaced the position")
	}
	if !strings.Contains(out.String(), "info string") {
		t.Error("bad FEN not reported")
	}
}

func TestGoDepth(t *testing.T) {
	u, out := newTestUCI()
	rec := &fakeRecorder{}
	u.SetRecorder(rec)

	u.Handle("position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	u.Handle("go depth 2")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	last := lines[len(lines)-1]
	if last != "bestmove a1a8" {
		t.Errorf("last line = %q, want bestmove a1a8", last)
	}
	if !strings.Contains(out.String(), "score mate 1") {
		t.Errorf("no mate score in info lines:\n%s", out.String())
	}
	if len(rec.depths) != 1 || rec.depths[0] < 1 || rec.nodes[0] == 0 {
		t.Errorf("recorder got depths %v nodes %v", rec.depths, rec.nodes)
	}
}

func TestGoWithoutLegalMoves(t *testing.T) {
	u, out := newTestUCI()
	u.Handle("position fen R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	u.Handle("go depth 3")
	if !strings.Contains(out.String(), "bestmove 0000") {
		t.Errorf("output = %q", out.String())
	}
}

func TestGoDefaults(t *testing.T) {
	u, out := newTestUCI()
	u.SetDefaults(2, 0)
	u.Handle("go")
	if strings.Contains(out.String(), "info depth 3") {
		t.Error("searched past the default depth")
	}
	if !strings.Contains(out.String(), "info depth 2") {
		t.Errorf("default depth not reached:\n%s", out.String())
	}
}

func TestParseGoOptions(t *testing.T) {
	tests := []struct {
		args  string
		depth int
		ms    int64
		given bool
	}{
		{"", 0, 0, false},
		{"depth 5", 5, 0, true},
		{"movetime 250", 0, 250, true},
		{"wtime 1000 depth 4 movetime 10", 4, 10, true},
		{"depth x", 0, 0, false},
		{"infinite", 0, 0, false},
	}
	for _, tc := range tests {
		limits, given := parseGoOptions(strings.Fields(tc.args))
		if limits.Depth != tc.depth || limits.MoveTime.Milliseconds() != tc.ms || given != tc.given {
			t.Errorf("parseGoOptions(%q) = %+v %v", tc.args, limits, given)
		}
	}
}

func TestSetOption(t *testing.T) {
	u, out := newTestUCI()
	u.Handle("setoption name Depth value 3")
	if u.defaultDepth != 3 {
		t.Errorf("defaultDepth = %d, want 3", u.defaultDepth)
	}
	u.Handle("setoption name Hash value 2")
	if u.hashMB != 2 {
		t.Errorf("hashMB = %d, want 2", u.hashMB)
	}
	u.Handle("setoption name Depth value zero")
	if u.defaultDepth != 3 || !strings.Contains(out.String(), "bad Depth") {
		t.Error("bad value was not rejected")
	}
}

func TestPerftAndDump(t *testing.T) {
	u, out := newTestUCI()
	u.Handle("perft 2")
	if !strings.Contains(out.String(), "e2e4: 20\n") || !strings.Contains(out.String(), "Nodes searched: 400") {
		t.Errorf("perft output:\n%s", out.String())
	}

	out.Reset()
	u.Handle("d")
	if !strings.Contains(out.String(), board.StartFEN) {
		t.Errorf("board dump lacks FEN:\n%s", out.String())
	}
}
