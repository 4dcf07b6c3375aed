package search

import (
	"testing"

	"github.com/gordienko/chesscore/internal/board"
	"github.com/gordienko/chesscore/internal/eval"
	"github.com/gordienko/chesscore/internal/tt"
)

func TestFindBestMoveIsDeterministicAtZeroRandomness(t *testing.T) {
	pos := board.NewPosition()
	opts := Options{BaseDepth: 4, QMaxDepth: 4, CheckExtension: true}

	var prev *Result
	for i := 0; i < 3; i++ {
		s := NewSearcher(tt.New(4))
		result := s.FindBestMove(pos, opts)
		if prev != nil {
			if result.Move != prev.Move || result.Score != prev.Score || result.NodesSearched != prev.NodesSearched {
				t.Fatalf("run %d diverged: got {%v %d %d}, want {%v %d %d}",
					i, result.Move, result.Score, result.NodesSearched, prev.Move, prev.Score, prev.NodesSearched)
			}
		}
		prev = result
	}
}

func TestFindBestMoveFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	s := NewSearcher(tt.New(4))
	result := s.FindBestMove(pos, Options{BaseDepth: 3, QMaxDepth: 4})

	if result.Move.From() != board.A1 || result.Move.To() != board.A8 {
		t.Fatalf("expected Ra1-a8#, got %s", result.Move)
	}

	child := pos.Copy()
	child.ApplyMove(result.Move)
	if !child.IsCheckmate() {
		t.Error("the move found must actually deliver checkmate")
	}
}

func TestFindBestMoveReportsCheckmateAndStalemate(t *testing.T) {
	mate, err := board.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	s := NewSearcher(tt.New(4))
	result := s.FindBestMove(mate, Options{BaseDepth: 2})
	if result.Move != board.NoMove {
		t.Error("a checkmated position must report no move")
	}
	if result.Score != eval.ScoreMin {
		t.Errorf("a checkmated position must score ScoreMin, got %d", result.Score)
	}

	stale, err := board.ParseFEN("k7/8/1Q1K4/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	s2 := NewSearcher(tt.New(4))
	result2 := s2.FindBestMove(stale, Options{BaseDepth: 2})
	if result2.Move != board.NoMove {
		t.Error("a stalemated position must report no move")
	}
	if result2.Score != 0 {
		t.Errorf("a stalemated position must score 0, got %d", result2.Score)
	}
}

func TestMateInOneScoresNearScoreMax(t *testing.T) {
	mateInOne, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	s := NewSearcher(tt.New(4))
	r1 := s.FindBestMove(mateInOne, Options{BaseDepth: 5, QMaxDepth: 4})

	if r1.Score <= eval.ScoreMax-eval.MaxPly {
		t.Fatalf("expected a mate score near ScoreMax, got %d", r1.Score)
	}
}

func TestFindBestMoveNeverReturnsIllegalMove(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	s := NewSearcher(tt.New(8))
	result := s.FindBestMove(pos, Options{BaseDepth: 3, QMaxDepth: 3, CheckExtension: true})

	legal := pos.GenerateLegalMoves()
	if !legal.Contains(result.Move) {
		t.Fatalf("returned move %s is not among the position's legal moves", result.Move)
	}
}
