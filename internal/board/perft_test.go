package board

import "testing"

func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if got := pos.Perft(tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// Kiwipete exercises castling through attacked squares, promotions and
// en passant in one position.
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if got := pos.Perft(tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if got := pos.Perft(tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// The black pawn on e4 may not take d3 en passant: it would open the rank
// between the king on a4 and the rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if pos.EnPassant != D3 {
		t.Fatalf("EnPassant = %s, want d3", pos.EnPassant)
	}

	for _, m := range pos.GenerateLegalMoves().Slice() {
		if m.IsEnPassant() {
			t.Errorf("en passant %v should be illegal", m)
		}
	}

	// Ka3 Ka5 Kb3 Kb4 Kb5 e3, then 14 replies to e3 and 16 to each king move.
	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if got := pos.Perft(tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	pos := NewPosition()
	counts := pos.Divide(3)
	if len(counts) != 20 {
		t.Fatalf("divide has %d root moves, want 20", len(counts))
	}
	var total uint64
	for _, n := range counts {
		total += n
	}
	if total != 8902 {
		t.Errorf("divide total = %d, want 8902", total)
	}
	if counts["e2e4"] != 600 {
		t.Errorf("divide[e2e4] = %d, want 600", counts["e2e4"])
	}
}

func BenchmarkPerft3(b *testing.B) {
	pos := NewPosition()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pos.Perft(3)
	}
}
