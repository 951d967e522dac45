package board

import (
	"errors"
	"testing"
)

var walkFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
}

// walk plays every legal move to depth plies and checks that make/undo is
// an exact round trip and that the incremental hash never drifts.
func walk(t *testing.T, p *Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	for _, m := range p.GenerateLegalMoves().Slice() {
		before := *p
		undo := p.MakeMove(m)
		if err := p.checkInvariants(); err != nil {
			t.Fatalf("after %v from %s: %v", m, before.ToFEN(), err)
		}
		if got := p.ComputeHash(); got != p.Hash {
			t.Fatalf("after %v from %s: hash %016x, recomputed %016x", m, before.ToFEN(), p.Hash, got)
		}
		walk(t, p, depth-1)
		p.UndoMove(m, undo)
		if *p != before {
			t.Fatalf("undo %v did not restore %s, got %s", m, before.ToFEN(), p.ToFEN())
		}
	}
}

func TestMakeUndoRoundTrip(t *testing.T) {
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, fen := range walkFENs {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			walk(t, pos, depth)
		})
	}
}

func TestHashAfterCastlingAndEnPassant(t *testing.T) {
	pos := NewPosition()
	line := []string{"e2e4", "g8f6", "e4e5", "d7d5", "e5d6", "e7d6", "g1f3", "f8e7", "f1c4", "e8g8", "e1g1"}
	for _, tok := range line {
		m, err := pos.ParseMove(tok)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", tok, err)
		}
		pos.MakeMove(m)
		if got := pos.ComputeHash(); got != pos.Hash {
			t.Fatalf("after %s: hash %016x, recomputed %016x", tok, pos.Hash, got)
		}
	}

	want, err := ParseFEN(pos.ToFEN())
	if err != nil {
		t.Fatalf("ParseFEN(%s): %v", pos.ToFEN(), err)
	}
	if want.Hash != pos.Hash {
		t.Errorf("played hash %016x, loaded hash %016x", pos.Hash, want.Hash)
	}
	if pos.CastlingRights != NoCastling {
		t.Errorf("CastlingRights = %s, want -", pos.CastlingRights)
	}
}

func TestEnPassantHashLocality(t *testing.T) {
	// No black pawn stands next to e4, so e3 is not a real target.
	with, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	without, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if with.Hash != without.Hash {
		t.Errorf("irrelevant en passant square changed the hash: %016x vs %016x", with.Hash, without.Hash)
	}

	played := NewPosition()
	m, _ := played.ParseMove("e2e4")
	played.MakeMove(m)
	if played.EnPassant != NoSquare {
		t.Errorf("EnPassant = %s after 1.e4, want -", played.EnPassant)
	}
	if played.Hash != without.Hash {
		t.Errorf("1.e4 hash %016x, loaded %016x", played.Hash, without.Hash)
	}
}

func TestEnPassantSetWhenCapturable(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 3")
	if err != nil {
		t.Fatal(err)
	}
	m, err := pos.ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	pos.MakeMove(m)
	if pos.EnPassant != E3 {
		t.Fatalf("EnPassant = %s, want e3", pos.EnPassant)
	}

	cleared, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3")
	if err != nil {
		t.Fatal(err)
	}
	if cleared.Hash == pos.Hash {
		t.Error("a capturable en passant square must change the hash")
	}
	if _, err := pos.ParseMove("d4e3"); err != nil {
		t.Errorf("d4e3 should be legal: %v", err)
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range walkFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%s): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("ToFEN = %s, want %s", got, fen)
		}
	}
}

func TestFENNormalizesCastling(t *testing.T) {
	// White's h1 rook is missing, so K cannot be kept.
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if want := WhiteQueenSide | BlackKingSide | BlackQueenSide; pos.CastlingRights != want {
		t.Errorf("CastlingRights = %s, want %s", pos.CastlingRights, want)
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1",
		"4k3/8/8/8/8/8/8/R3K3 b - - 0 1x",
		"4k2R/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestParseMoveRejectsWithoutMutating(t *testing.T) {
	pos := NewPosition()
	before := *pos
	for _, tok := range []string{"e2e5", "e7e5", "e1g1", "xx", "a7a8q", ""} {
		if _, err := pos.ParseMove(tok); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("ParseMove(%q) error = %v, want ErrIllegalMove", tok, err)
		}
	}
	if *pos != before {
		t.Error("rejected tokens changed the position")
	}
}

func TestValidateDetectsOverlap(t *testing.T) {
	pos := NewPosition()
	pos.Pieces[White][Queen] |= SquareBB(E1)
	if err := pos.Validate(); err == nil {
		t.Error("Validate accepted overlapping piece sets")
	}

	pos = NewPosition()
	pos.Pieces[Black][King] = 0
	pos.Occupied[Black] &^= SquareBB(E8)
	pos.AllOccupied &^= SquareBB(E8)
	if err := pos.Validate(); err == nil {
		t.Error("Validate accepted a missing king")
	}
}

func TestCheckmateAndStalemate(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		checkmate bool
		stalemate bool
	}{
		{"back rank", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", true, false},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, false},
		{"queen stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false, true},
		{"start", StartFEN, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := pos.IsCheckmate(); got != tc.checkmate {
				t.Errorf("IsCheckmate = %v, want %v", got, tc.checkmate)
			}
			if got := pos.IsStalemate(); got != tc.stalemate {
				t.Errorf("IsStalemate = %v, want %v", got, tc.stalemate)
			}
		})
	}
}
