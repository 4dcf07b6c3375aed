package search

import "github.com/gordienko/chesscore/internal/board"

// Move ordering priorities, highest first: the principal-variation
// move, then queen promotions, then captures by MVV-LVA, then other
// promotions, then killers, then everything else.
const (
	pvMoveScore     = 10000000
	queenPromoScore = 9000000
	goodCaptureBase = 1000000
	killerScore1    = 900000
	killerScore2    = 800000
)

// mvvLva is indexed [victim][attacker]; higher means search sooner.
var mvvLva = [6][6]int{
	/*       P   N   B   R   Q   K  (attacker) */
	/* P */ {15, 14, 14, 13, 12, 11},
	/* N */ {25, 24, 24, 23, 22, 21},
	/* B */ {35, 34, 34, 33, 32, 31},
	/* R */ {45, 44, 44, 43, 42, 41},
	/* Q */ {55, 54, 54, 53, 52, 51},
	/* K */ {0, 0, 0, 0, 0, 0},
}

// orderer carries the per-search move-ordering state: killer moves
// indexed by ply and nothing else. The ordering is PV move, queen
// promotions, MVV-LVA captures, other promotions, killers, rest, with no history
// heuristic.
type orderer struct {
	killers [maxPly][2]board.Move
}

func newOrderer() *orderer {
	return &orderer{}
}

func (o *orderer) clear() {
	for i := range o.killers {
		o.killers[i][0] = board.NoMove
		o.killers[i][1] = board.NoMove
	}
}

// updateKillers records m as a killer at ply, displacing the older one.
func (o *orderer) updateKillers(m board.Move, ply int) {
	if ply >= maxPly || o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// scoreMoves assigns an ordering score to every move in ml.
func (o *orderer) scoreMoves(ml *board.MoveList, ply int, pvMove board.Move) []int {
	scores := make([]int, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		scores[i] = o.scoreMove(ml.Get(i), ply, pvMove)
	}
	return scores
}

func (o *orderer) scoreMove(m board.Move, ply int, pvMove board.Move) int {
	if m == pvMove {
		return pvMoveScore
	}

	if m.IsPromotion() && m.PromotionPiece() == board.Queen {
		return queenPromoScore
	}

	if m.IsCapture() {
		victim := m.CapturedPiece()
		attacker := m.Piece()
		if victim >= board.King || attacker > board.King {
			return goodCaptureBase
		}
		return goodCaptureBase + mvvLva[victim][attacker]*1000
	}

	if m.IsPromotion() {
		return goodCaptureBase - 1000
	}

	if m == o.killers[ply][0] {
		return killerScore1
	}
	if m == o.killers[ply][1] {
		return killerScore2
	}

	return 0
}

// pickMove moves the highest-scoring move at or after index to index,
// enabling lazy selection-sort style ordering without sorting moves
// that end up pruned before they are tried.
func pickMove(ml *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < ml.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		ml.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}
