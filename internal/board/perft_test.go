package board

import "testing"

// perft counts the leaf nodes of the legal-move tree at depth, the
// standard way to verify move generation correctness. It clones the
// position at each ply rather than making/unmaking a move in place,
// matching Position's copy-based mutation model.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		child := p.Copy()
		child.ApplyMove(moves.Get(i))
		nodes += perft(child, depth-1)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete exercises castling, en passant, promotion, and
// pinned pieces in combination; it is the standard move-generator
// torture test.
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestMoveLawLegalIsSubsetOfPseudoLegal exercises the move-law testable
// property: every legal move must also appear in the pseudo-legal set.
func TestMoveLawLegalIsSubsetOfPseudoLegal(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range positions {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("failed to parse FEN %q: %v", fen, err)
		}

		legal := pos.GenerateLegalMoves()
		pseudo := pos.GeneratePseudoLegalMoves()

		for i := 0; i < legal.Len(); i++ {
			if !pseudo.Contains(legal.Get(i)) {
				t.Errorf("%s: legal move %s not found in pseudo-legal set", fen, legal.Get(i))
			}
		}

		for i := 0; i < pseudo.Len(); i++ {
			m := pseudo.Get(i)
			wantLegal := pos.IsLegal(m)
			gotLegal := legal.Contains(m)
			if wantLegal != gotLegal {
				t.Errorf("%s: move %s IsLegal=%v but GenerateLegalMoves disagrees (%v)", fen, m, wantLegal, gotLegal)
			}
		}
	}
}
