package eval

import (
	"testing"

	"github.com/gordienko/chesscore/internal/board"
)

func TestEvaluateSymmetricStartingPosition(t *testing.T) {
	pos := board.NewPosition()
	white := Evaluate(pos, board.White, 0)
	black := Evaluate(pos, board.Black, 0)
	if white != black {
		t.Errorf("starting position should evaluate equally for both sides, got white=%d black=%d", white, black)
	}
	if white != 0 {
		t.Errorf("starting position material+PST balance should be 0, got %d", white)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	score := Evaluate(pos, board.White, 0)
	if score <= 0 {
		t.Errorf("white with an extra rook should evaluate positive, got %d", score)
	}
	if Evaluate(pos, board.Black, 0) != -score {
		t.Error("evaluating from the opposite perspective must negate the score")
	}
}

func TestEvaluateCheckmateScoredForLoser(t *testing.T) {
	pos, err := board.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	if !pos.IsCheckmate() {
		t.Fatal("position must be checkmate")
	}
	// Black is checkmated and Black is the side to move.
	if got := Evaluate(pos, board.Black, 3); got != ScoreMin+3 {
		t.Errorf("expected ScoreMin+3 for the mated side, got %d", got)
	}
	if got := Evaluate(pos, board.White, 3); got != ScoreMax-3 {
		t.Errorf("expected ScoreMax-3 for the mating side, got %d", got)
	}
}

func TestEvaluateStalemateIsZero(t *testing.T) {
	pos, err := board.ParseFEN("k7/8/1Q1K4/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	if Evaluate(pos, board.White, 0) != 0 {
		t.Error("stalemate must evaluate to 0")
	}
	if Evaluate(pos, board.Black, 0) != 0 {
		t.Error("stalemate must evaluate to 0 for both perspectives")
	}
}

func TestShorterMateScoresStrictlyHigherThanLonger(t *testing.T) {
	loserScore := func(ply int) int { return ScoreMin + ply }
	if loserScore(1) >= loserScore(2) {
		t.Error("being mated sooner must score worse (lower) than being mated later")
	}

	winnerScore := func(ply int) int { return ScoreMax - ply }
	if winnerScore(1) <= winnerScore(2) {
		t.Error("delivering mate sooner must score better (higher) than delivering it later")
	}
}

func TestSetQueenValueOverridesAndIgnoresNonPositive(t *testing.T) {
	original := PieceValue[board.Queen]
	defer func() { PieceValue[board.Queen] = original }()

	SetQueenValue(95)
	if PieceValue[board.Queen] != 95 {
		t.Errorf("expected queen value 95, got %d", PieceValue[board.Queen])
	}

	SetQueenValue(0)
	if PieceValue[board.Queen] != 95 {
		t.Error("SetQueenValue(0) must be ignored, leaving the prior value in place")
	}

	SetQueenValue(-10)
	if PieceValue[board.Queen] != 95 {
		t.Error("SetQueenValue with a negative value must be ignored")
	}
}
