// Package search implements the move-selection engine: iterative
// deepening over a negamax/alpha-beta core with aspiration windows,
// principal-variation search, check extensions, and quiescence.
package search

import (
	"github.com/gordienko/chesscore/internal/board"
	"github.com/gordienko/chesscore/internal/eval"
	"github.com/gordienko/chesscore/internal/tt"
)

const maxPly = eval.MaxPly

// Options bounds a single search call. All fields are caller-supplied;
// the search never reads a clock and never stops itself early.
type Options struct {
	BaseDepth      int
	QMaxDepth      int
	CheckExtension bool
	// Randomness adds a uniformly distributed, per-move deterministic
	// tie-breaking term to root move scores. Zero disables it entirely,
	// which is what makes the search bit-reproducible.
	Randomness float64
	// AspirationDelta and AspirationMax override the aspiration window's
	// initial half-width and the width past which it gives up and falls
	// back to an infinite bound. Zero selects the built-in defaults (25, 400).
	AspirationDelta int
	AspirationMax   int
}

func (o Options) aspirationDelta() int {
	if o.AspirationDelta > 0 {
		return o.AspirationDelta
	}
	return 25
}

func (o Options) aspirationMax() int {
	if o.AspirationMax > 0 {
		return o.AspirationMax
	}
	return 400
}

// RootMove is one root move's final score, used for analysis output.
type RootMove struct {
	Move  board.Move
	Score int
}

// Result is what FindBestMove returns.
type Result struct {
	Move            board.Move
	Score           int
	Depth           int
	NodesSearched   uint64
	ScoredRootMoves []RootMove
}

// Searcher owns a transposition table and move-ordering state across
// one or more searches. It holds no position state between calls.
type Searcher struct {
	tt    *tt.Table
	ord   *orderer
	nodes uint64
}

// NewSearcher creates a searcher backed by table.
func NewSearcher(table *tt.Table) *Searcher {
	return &Searcher{tt: table, ord: newOrderer()}
}

// FindBestMove runs iterative deepening up to opts.BaseDepth and
// returns the best move found, or a move-less Result if the position
// has no legal moves (checkmate or stalemate).
func (s *Searcher) FindBestMove(pos *board.Position, opts Options) *Result {
	s.tt.NewSearch()
	s.ord.clear()
	s.nodes = 0

	if pos.IsCheckmate() {
		return &Result{Move: board.NoMove, Score: eval.ScoreMin}
	}
	if pos.IsStalemate() {
		return &Result{Move: board.NoMove, Score: 0}
	}

	rootMoves := rootLegalMoves(pos)
	if rootMoves.Len() == 0 {
		if pos.InCheck() {
			return &Result{Move: board.NoMove, Score: eval.ScoreMin}
		}
		return &Result{Move: board.NoMove, Score: 0}
	}

	result := &Result{Move: rootMoves.Get(0)}
	bestScore := 0

	for depth := 1; depth <= opts.BaseDepth; depth++ {
		var move board.Move
		var score int
		var scored []RootMove

		if depth >= 4 {
			move, score, scored = s.aspirationSearch(pos, rootMoves, depth, bestScore, opts)
		} else {
			move, score, scored = s.searchRoot(pos, rootMoves, depth, eval.ScoreMin-1, eval.ScoreMax+1, opts)
		}

		bestScore = score
		result.Move = move
		result.Score = score
		result.Depth = depth
		result.ScoredRootMoves = scored
	}

	result.NodesSearched = s.nodes
	if opts.Randomness > 0 {
		applyTieBreak(result, opts.Randomness)
	}
	return result
}

// aspirationSearch runs one iterative-deepening iteration with a
// window centered on the previous iteration's score, doubling the
// half-width on fail-low/fail-high and falling back to an infinite
// bound once the width exceeds the configured maximum.
func (s *Searcher) aspirationSearch(pos *board.Position, rootMoves *board.MoveList, depth, prevScore int, opts Options) (board.Move, int, []RootMove) {
	max := opts.aspirationMax()
	delta := opts.aspirationDelta()
	alpha := prevScore - delta
	beta := prevScore + delta

	for {
		move, score, scored := s.searchRoot(pos, rootMoves, depth, alpha, beta, opts)

		if score <= alpha {
			delta *= 2
			if delta > max {
				alpha = eval.ScoreMin - 1
			} else {
				alpha = prevScore - delta
			}
			continue
		}
		if score >= beta {
			delta *= 2
			if delta > max {
				beta = eval.ScoreMax + 1
			} else {
				beta = prevScore + delta
			}
			continue
		}
		return move, score, scored
	}
}

// searchRoot performs one negamax pass at the root, using PVS against
// siblings and recording every root move's final score for analysis.
func (s *Searcher) searchRoot(pos *board.Position, rootMoves *board.MoveList, depth, alpha, beta int, opts Options) (board.Move, int, []RootMove) {
	pvMove := s.tt.GetBestMove(pos.Hash)
	scores := s.ord.scoreMoves(rootMoves, 0, pvMove)

	bestScore := eval.ScoreMin - 1
	bestMove := rootMoves.Get(0)
	scored := make([]RootMove, 0, rootMoves.Len())
	startAlpha := alpha

	for i := 0; i < rootMoves.Len(); i++ {
		pickMove(rootMoves, scores, i)
		m := rootMoves.Get(i)

		child := pos.Copy()
		child.ApplyMove(m)

		ext := 0
		if opts.CheckExtension && child.InCheck() {
			ext = 1
		}

		var score int
		if i == 0 {
			score = -s.negamax(child, depth-1+ext, -beta, -alpha, 1, opts)
		} else {
			score = -s.negamax(child, depth-1+ext, -alpha-1, -alpha, 1, opts)
			if score > alpha && score < beta {
				score = -s.negamax(child, depth-1+ext, -beta, -alpha, 1, opts)
			}
		}

		scored = append(scored, RootMove{Move: m, Score: score})

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
			}
		}
		if score >= beta {
			if m.IsQuiet() {
				s.ord.updateKillers(m, 0)
			}
			break
		}
	}

	bound := tt.Upper
	if bestScore >= beta {
		bound = tt.Lower
	} else if bestScore > startAlpha {
		bound = tt.Exact
	}
	s.tt.Store(pos.Hash, depth, bestScore, bound, bestMove, 0)

	return bestMove, bestScore, scored
}

// negamax searches an interior node. depth <= 0 hands off to
// quiescence. The legality filter is fused into the move loop: each
// candidate is applied to a clone and discarded if it leaves the
// mover's king attacked.
func (s *Searcher) negamax(pos *board.Position, depth, alpha, beta, ply int, opts Options) int {
	s.nodes++

	if depth <= 0 {
		return s.quiescence(pos, alpha, beta, ply, 0, opts.QMaxDepth)
	}

	startAlpha := alpha
	var ttMove board.Move
	if score, mv, usable, found := s.tt.Probe(pos.Hash, depth, alpha, beta, ply); found {
		ttMove = mv
		if usable {
			return score
		}
	}

	moves := pos.GeneratePseudoLegalMoves()
	scores := s.ord.scoreMoves(moves, ply, ttMove)

	us := pos.SideToMove
	them := us.Other()

	bestScore := eval.ScoreMin - 1
	bestMove := board.NoMove
	legalCount := 0

	for i := 0; i < moves.Len(); i++ {
		pickMove(moves, scores, i)
		m := moves.Get(i)

		child := pos.Copy()
		child.ApplyMove(m)
		if child.IsSquareAttacked(child.KingSquare[us], them) {
			continue
		}
		legalCount++

		ext := 0
		if opts.CheckExtension && child.InCheck() {
			ext = 1
		}

		var score int
		if legalCount == 1 {
			score = -s.negamax(child, depth-1+ext, -beta, -alpha, ply+1, opts)
		} else {
			score = -s.negamax(child, depth-1+ext, -alpha-1, -alpha, ply+1, opts)
			if score > alpha && score < beta {
				score = -s.negamax(child, depth-1+ext, -beta, -alpha, ply+1, opts)
			}
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
			}
		}

		if score >= beta {
			if m.IsQuiet() {
				s.ord.updateKillers(m, ply)
			}
			s.tt.Store(pos.Hash, depth, score, tt.Lower, bestMove, ply)
			return score
		}
	}

	if legalCount == 0 {
		if pos.InCheck() {
			return eval.ScoreMin + ply
		}
		return 0
	}

	bound := tt.Upper
	if bestScore > startAlpha {
		bound = tt.Exact
	}
	s.tt.Store(pos.Hash, depth, bestScore, bound, bestMove, ply)
	return bestScore
}

// quiescence extends the search through captures and promotions until
// the position is quiet, so the static evaluator is never asked to
// judge a position in the middle of a tactical exchange.
func (s *Searcher) quiescence(pos *board.Position, alpha, beta, ply, qDepth, qMaxDepth int) int {
	s.nodes++

	if pos.IsCheckmate() {
		return eval.ScoreMin + ply
	}
	if pos.IsStalemate() {
		return 0
	}

	standPat := eval.Evaluate(pos, pos.SideToMove, ply)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qDepth >= qMaxDepth {
		return standPat
	}

	moves := pos.GenerateCaptures()
	scores := s.ord.scoreMoves(moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		pickMove(moves, scores, i)
		m := moves.Get(i)
		if m.IsPromotion() && m.PromotionPiece() != board.Queen {
			continue
		}

		child := pos.Copy()
		child.ApplyMove(m)

		score := -s.quiescence(child, -beta, -alpha, ply+1, qDepth+1, qMaxDepth)
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// rootLegalMoves returns the position's legal moves with non-queen
// promotions discarded; only queen promotions are considered at the root.
func rootLegalMoves(pos *board.Position) *board.MoveList {
	all := pos.GenerateLegalMoves()
	filtered := board.NewMoveList()
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		if m.IsPromotion() && m.PromotionPiece() != board.Queen {
			continue
		}
		filtered.Add(m)
	}
	return filtered
}

// applyTieBreak perturbs the final result's score with a deterministic,
// move-dependent jitter scaled by randomness. Because the jitter is a
// pure function of the move's bits rather than global RNG state,
// randomness=0 always yields the unperturbed, bit-reproducible result.
func applyTieBreak(result *Result, randomness float64) {
	best := result.Move
	bestScore := result.Score
	bestPerturbed := float64(bestScore) + jitter(best, randomness)

	for _, rm := range result.ScoredRootMoves {
		perturbed := float64(rm.Score) + jitter(rm.Move, randomness)
		if perturbed > bestPerturbed {
			best = rm.Move
			bestScore = rm.Score
			bestPerturbed = perturbed
		}
	}
	result.Move = best
	result.Score = bestScore
}

// jitter derives a uniformly distributed value in [-randomness,
// randomness] from the move's packed bits via FNV-1a.
func jitter(m board.Move, randomness float64) float64 {
	h := uint32(2166136261)
	v := uint32(m)
	for i := 0; i < 4; i++ {
		h ^= v & 0xFF
		h *= 16777619
		v >>= 8
	}
	frac := float64(h%1000000) / 1000000.0
	return (frac*2 - 1) * randomness
}
