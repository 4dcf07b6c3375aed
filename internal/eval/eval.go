// Package eval scores a position from a named perspective, combining
// material and piece-square tables, with ply-biased terminal scoring
// for checkmate and stalemate.
package eval

import "github.com/gordienko/chesscore/internal/board"

// Score bounds used throughout search and the transposition table.
// MateScore anchors the mate-in-N scale; MaxPly bounds how many plies
// a stored mate score can be adjusted by without colliding with a
// genuine material evaluation.
const (
	MateScore = 29000
	MaxPly    = 128
	ScoreMin  = -MateScore
	ScoreMax  = MateScore
)

// PieceValue holds the material value of each piece type, in pawn-units
// multiplied by ten: P=1, N=3, B=3, R=5, Q=12, K=10. The queen is
// inflated above its classical value of 9 to discourage shallow-search
// queen sacrifices.
var PieceValue = [7]int{10, 30, 30, 50, 120, 100, 0}

// Piece-square tables, one per piece type (pawn..king), in tenths of a
// pawn. Black indexes a table by the square directly; White reads it
// reversed by rank.
var (
	pawnPST = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 5, 5, 5, 5, 5, 5, 5,
		1, 1, 2, 3, 3, 2, 1, 1,
		0, 0, 1, 2, 2, 1, 0, 0,
		0, 0, 0, 2, 2, 0, 0, 0,
		0, 0, -1, 0, 0, -1, 0, 0,
		0, 1, 1, -2, -2, 1, 1, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightPST = [64]int{
		-5, -4, -3, -3, -3, -3, -4, -5,
		-4, -2, 0, 0, 0, 0, -2, -4,
		-3, 0, 1, 1, 1, 1, 0, -3,
		-3, 0, 1, 2, 2, 1, 0, -3,
		-3, 0, 1, 2, 2, 1, 0, -3,
		-3, 0, 1, 1, 1, 1, 0, -3,
		-4, -2, 0, 0, 0, 0, -2, -4,
		-5, -4, -3, -3, -3, -3, -4, -5,
	}
	bishopPST = [64]int{
		-2, -1, -1, -1, -1, -1, -1, -2,
		-1, 0, 0, 0, 0, 0, 0, -1,
		-1, 0, 1, 1, 1, 1, 0, -1,
		-1, 1, 1, 1, 1, 1, 1, -1,
		-1, 0, 1, 1, 1, 1, 0, -1,
		-1, 1, 1, 1, 1, 1, 1, -1,
		-1, 0, 0, 0, 0, 0, 0, -1,
		-2, -1, -1, -1, -1, -1, -1, -2,
	}
	rookPST = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		1, 2, 2, 2, 2, 2, 2, 1,
		-1, 0, 0, 0, 0, 0, 0, -1,
		-1, 0, 0, 0, 0, 0, 0, -1,
		-1, 0, 0, 0, 0, 0, 0, -1,
		-1, 0, 0, 0, 0, 0, 0, -1,
		-1, 0, 0, 0, 0, 0, 0, -1,
		0, 0, 0, 1, 1, 0, 0, 0,
	}
	queenPST = [64]int{
		-2, -1, -1, 0, 0, -1, -1, -2,
		-1, 0, 0, 0, 0, 0, 0, -1,
		-1, 0, 1, 1, 1, 1, 0, -1,
		0, 0, 1, 1, 1, 1, 0, 0,
		0, 0, 1, 1, 1, 1, 0, 0,
		-1, 0, 1, 1, 1, 1, 0, -1,
		-1, 0, 0, 0, 0, 0, 0, -1,
		-2, -1, -1, 0, 0, -1, -1, -2,
	}
	kingMidgamePST = [64]int{
		-3, -4, -4, -5, -5, -4, -4, -3,
		-3, -4, -4, -5, -5, -4, -4, -3,
		-3, -4, -4, -5, -5, -4, -4, -3,
		-3, -4, -4, -5, -5, -4, -4, -3,
		-2, -3, -3, -4, -4, -3, -3, -2,
		-1, -2, -2, -2, -2, -2, -2, -1,
		2, 2, 0, 0, 0, 0, 2, 2,
		2, 3, 1, 0, 0, 1, 3, 2,
	}
)

var pst = [6][64]int{pawnPST, knightPST, bishopPST, rookPST, queenPST, kingMidgamePST}

// SetQueenValue overrides PieceValue[Queen], letting a caller retune
// the queen-sacrifice bias documented on PieceValue without touching
// the rest of the material scale. Values <= 0 are ignored, so the
// compiled-in default always applies unless explicitly overridden.
func SetQueenValue(v int) {
	if v > 0 {
		PieceValue[board.Queen] = v
	}
}

// mirror returns the table index for sq as seen by White: tables are
// written from Black's vantage, so White reads them rank-reversed.
func mirror(sq board.Square) board.Square {
	return sq ^ 56
}

// Material returns the material balance from White's point of view,
// in the PieceValue scale.
func Material(pos *board.Position) int {
	score := 0
	for pt := board.Pawn; pt < board.King; pt++ {
		score += pos.Pieces[board.White][pt].PopCount() * PieceValue[pt]
		score -= pos.Pieces[board.Black][pt].PopCount() * PieceValue[pt]
	}
	return score
}

// pieceSquareScore returns the combined PST balance from White's point
// of view; each occupied square contributes half its table entry.
func pieceSquareScore(pos *board.Position) int {
	score := 0
	for pt := board.Pawn; pt <= board.King; pt++ {
		bb := pos.Pieces[board.White][pt]
		for bb != 0 {
			sq := bb.PopLSB()
			score += pst[pt][mirror(sq)] / 2
		}
		bb = pos.Pieces[board.Black][pt]
		for bb != 0 {
			sq := bb.PopLSB()
			score -= pst[pt][sq] / 2
		}
	}
	return score
}

// Evaluate scores pos from perspective's point of view: positive is
// good for perspective. Terminal positions (checkmate, stalemate) are
// scored first and biased by ply so that shorter mates score higher
// than longer ones; otherwise the score is material plus piece-square
// tables.
func Evaluate(pos *board.Position, perspective board.Color, ply int) int {
	if pos.IsCheckmate() {
		if pos.SideToMove == perspective {
			return ScoreMin + ply
		}
		return ScoreMax - ply
	}
	if pos.IsStalemate() {
		return 0
	}

	score := Material(pos) + pieceSquareScore(pos)
	if perspective == board.Black {
		score = -score
	}
	return score
}
