package board

import "testing"

func TestShiftsDoNotWrap(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want Bitboard
	}{
		{"east of h-file", FileH.East(), Empty},
		{"west of a-file", FileA.West(), Empty},
		{"northeast of h4", SquareBB(H4).NorthEast(), Empty},
		{"northwest of a4", SquareBB(A4).NorthWest(), Empty},
		{"southeast of h4", SquareBB(H4).SouthEast(), Empty},
		{"southwest of a4", SquareBB(A4).SouthWest(), Empty},
		{"north of rank 8", Rank8.North(), Empty},
		{"south of rank 1", Rank1.South(), Empty},
		{"east of d4", SquareBB(D4).East(), SquareBB(E4)},
		{"southwest of d4", SquareBB(D4).SouthWest(), SquareBB(C3)},
		{"black forward", SquareBB(E7).Forward(Black), SquareBB(E6)},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %016x, want %016x", tc.name, uint64(tc.got), uint64(tc.want))
		}
	}
}

func TestPopLSBAscending(t *testing.T) {
	bb := SquareBB(H8) | SquareBB(A1) | SquareBB(E4)
	want := []Square{A1, E4, H8}
	for i, sq := range want {
		if got := bb.PopLSB(); got != sq {
			t.Fatalf("pop %d = %s, want %s", i, got, sq)
		}
	}
	if bb != Empty || bb.LSB() != NoSquare {
		t.Errorf("set not empty after popping: %016x", uint64(bb))
	}
}

func TestSetAlgebra(t *testing.T) {
	a := FileA | Rank1
	b := FileA
	if a.Intersect(b) != FileA {
		t.Error("intersect")
	}
	if a.Difference(b) != Rank1.Without(A1) {
		t.Error("difference")
	}
	if a.Union(FileH).PopCount() != 22 {
		t.Errorf("union popcount = %d, want 22", a.Union(FileH).PopCount())
	}
	if b.Complement()&FileA != Empty {
		t.Error("complement")
	}
	if got := len(Universe.Squares()); got != 64 {
		t.Errorf("universe has %d squares", got)
	}
}

func TestSquareParsing(t *testing.T) {
	for _, s := range []string{"a1", "e4", "h8"} {
		sq, err := ParseSquare(s)
		if err != nil || sq.String() != s {
			t.Errorf("ParseSquare(%s) = %s, %v", s, sq, err)
		}
	}
	for _, s := range []string{"i1", "a9", "e", "E4"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%s) should fail", s)
		}
	}
	if NewSquare(4, 3) != E4 || E4.File() != 4 || E4.Rank() != 3 {
		t.Error("e4 coordinates")
	}
}
