package tt

import (
	"testing"

	"github.com/gordienko/chesscore/internal/board"
	"github.com/gordienko/chesscore/internal/eval"
)

func TestNewSizesToPowerOfTwo(t *testing.T) {
	table := New(1)
	if table.Len() == 0 || table.Len()&(table.Len()-1) != 0 {
		t.Fatalf("table length %d is not a power of two", table.Len())
	}
}

func TestStoreThenProbeExactBound(t *testing.T) {
	table := New(1)
	hash := uint64(0x1234567890ABCDEF)
	move := board.NewMove(board.E2, board.E4, board.Pawn)

	table.Store(hash, 4, 55, Exact, move, 0)

	score, best, usable, found := table.Probe(hash, 4, -1000, 1000, 0)
	if !found {
		t.Fatal("expected a stored entry to be found")
	}
	if !usable {
		t.Error("an exact bound within window must be usable")
	}
	if score != 55 {
		t.Errorf("expected score 55, got %d", score)
	}
	if best != move {
		t.Errorf("expected stored move %s, got %s", move, best)
	}
}

func TestProbeRejectsShallowerDepth(t *testing.T) {
	table := New(1)
	hash := uint64(0xAAAA)
	move := board.NewMove(board.D2, board.D4, board.Pawn)

	table.Store(hash, 2, 10, Exact, move, 0)

	_, best, usable, found := table.Probe(hash, 5, -1000, 1000, 0)
	if !found {
		t.Fatal("a shallower entry is still found")
	}
	if usable {
		t.Error("an entry shallower than the requested depth must not be usable")
	}
	if best != move {
		t.Error("the best move should still be reported even when the score is unusable")
	}
}

func TestProbeBoundWindowRules(t *testing.T) {
	table := New(1)

	lowerHash := uint64(0x1111)
	table.Store(lowerHash, 4, 100, Lower, board.NoMove, 0)
	if _, _, usable, _ := table.Probe(lowerHash, 4, -1000, 150, 0); usable {
		t.Error("a lower bound must not be usable when score < beta")
	}
	if _, _, usable, _ := table.Probe(lowerHash, 4, -1000, 50, 0); !usable {
		t.Error("a lower bound must be usable when score >= beta")
	}

	upperHash := uint64(0x2222)
	table.Store(upperHash, 4, -100, Upper, board.NoMove, 0)
	if _, _, usable, _ := table.Probe(upperHash, 4, -150, 1000, 0); usable {
		t.Error("an upper bound must not be usable when score > alpha")
	}
	if _, _, usable, _ := table.Probe(upperHash, 4, -50, 1000, 0); !usable {
		t.Error("an upper bound must be usable when score <= alpha")
	}
}

func TestMateScoreSurvivesPlyAdjustment(t *testing.T) {
	table := New(1)
	hash := uint64(0x3333)

	// A mate two plies from the root, stored at the ply-2 node where it occurs.
	scoreAtPly := eval.ScoreMax - 2
	table.Store(hash, 10, scoreAtPly, Exact, board.NoMove, 2)

	// Probed again from the same ply, it must come back unchanged.
	score, _, usable, found := table.Probe(hash, 10, -eval.MateScore, eval.MateScore, 2)
	if !found || !usable {
		t.Fatal("expected the stored mate score to be found and usable")
	}
	if score != scoreAtPly {
		t.Errorf("expected mate score %d unchanged at the same ply, got %d", scoreAtPly, score)
	}

	// Probed from the root, the same absolute mate must report as
	// mate-in-zero-plies-from-root, i.e. exactly ScoreMax.
	score2, _, _, _ := table.Probe(hash, 10, -eval.MateScore, eval.MateScore, 0)
	if score2 != eval.ScoreMax {
		t.Errorf("expected mate score adjusted to the root to be %d, got %d", eval.ScoreMax, score2)
	}
}

func TestClearResetsTable(t *testing.T) {
	table := New(1)
	table.Store(0xBEEF, 4, 10, Exact, board.NoMove, 0)
	table.Clear()

	_, _, _, found := table.Probe(0xBEEF, 4, -1000, 1000, 0)
	if found {
		t.Error("a cleared table must report no entries found")
	}
}
