package board

import "testing"

func TestCheckmate(t *testing.T) {
	// Back-rank mate: White Ra8+Ka1, Black Kh8 boxed in by its own pawns.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected side to move to be in check")
	}
	if !pos.IsCheckmate() {
		t.Error("expected checkmate")
	}
	if pos.IsStalemate() {
		t.Error("checkmate position must not also report stalemate")
	}
	if pos.HasLegalMoves() {
		t.Error("checkmate position must have no legal moves")
	}
}

func TestNotCheckmateKingCanCapture(t *testing.T) {
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if pos.IsCheckmate() {
		t.Error("king can capture the checking rook; this is not checkmate")
	}
}

func TestStalemate(t *testing.T) {
	// Black king cornered, not in check, with no legal move: classic stalemate.
	pos, err := ParseFEN("k7/8/1Q1K4/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if pos.InCheck() {
		t.Fatal("stalemate position must not be in check")
	}
	if !pos.IsStalemate() {
		t.Error("expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate position must not also report checkmate")
	}
	if pos.GenerateLegalMoves().Len() != 0 {
		t.Error("stalemate position must have zero legal moves")
	}
}

func TestCastlingRightsClearOnKingMove(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	ml := pos.GenerateLegalMoves()
	var castle Move
	found := false
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).IsCastleShort() {
			castle = ml.Get(i)
			found = true
		}
	}
	if !found {
		t.Fatal("expected short castling to be available")
	}

	pos.ApplyMove(castle)
	if pos.CastlingRights&WhiteKingSideCastle != 0 {
		t.Error("castling rights must clear after castling")
	}
	if pos.PieceAt(G1) != WhiteKing {
		t.Error("king must land on g1 after short castling")
	}
	if pos.PieceAt(F1) != WhiteRook {
		t.Error("rook must land on f1 after short castling")
	}
}

func TestCastlingBlockedByAttackedSquare(t *testing.T) {
	// The black rook on f2 attacks f1, the square the king passes over.
	pos, err := ParseFEN("4k3/8/8/8/8/8/5r2/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	ml := pos.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).IsCastleShort() {
			t.Error("short castling must be illegal while f1 is attacked")
		}
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos := NewPosition()
	for _, uci := range []string{"c2c4", "a7a5", "c4c5", "b7b5"} {
		m, err := ParseUCIMove(uci, pos)
		if err != nil {
			t.Fatalf("failed to parse move %s: %v", uci, err)
		}
		if !pos.IsLegal(m) {
			t.Fatalf("move %s should be legal", uci)
		}
		pos.ApplyMove(m)
	}

	ml := pos.GenerateLegalMoves()
	var ep Move
	found := false
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From() == C5 && m.To() == B6 {
			ep = m
			found = true
		}
	}
	if !found {
		t.Fatal("expected c5xb6 en passant to be legal")
	}
	if !ep.IsEnPassant() {
		t.Error("c5xb6 must be flagged as an en passant capture")
	}

	pos.ApplyMove(ep)
	if pos.PieceAt(B5) != NoPiece {
		t.Error("the captured pawn on b5 must be removed")
	}
	if pos.PieceAt(B6) != WhitePawn {
		t.Error("the white pawn must land on b6")
	}
}

func TestPromotionGeneratesAllFourPieces(t *testing.T) {
	pos, err := ParseFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	ml := pos.GenerateLegalMoves()
	seen := map[PieceType]bool{}
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From() == A7 && m.To() == A8 {
			seen[m.PromotionPiece()] = true
		}
	}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if !seen[pt] {
			t.Errorf("expected a promotion to %v among legal moves", pt)
		}
	}
}
