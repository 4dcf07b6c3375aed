package chess

import (
	"math"
	"sort"

	"github.com/gordienko/chesscore/internal/board"
	"github.com/gordienko/chesscore/internal/config"
	"github.com/gordienko/chesscore/internal/eval"
	"github.com/gordienko/chesscore/internal/search"
	"github.com/gordienko/chesscore/internal/tt"
)

// DepthOverride replaces the level-derived search bounds with explicit
// values.
type DepthOverride struct {
	Base       int
	Extended   int
	Check      bool
	Quiescence int
}

// AIOptions configures one AI call.
type AIOptions struct {
	Level      int // 1..5
	Play       bool
	Analysis   bool
	TTSizeMB   int
	Randomness float64
	Depth      *DepthOverride
}

// AIResult is what AI returns.
type AIResult struct {
	Move          *MoveResult
	Board         Configuration
	Analysis      []RootMoveScore
	BestScore     *int
	Depth         *int
	NodesSearched *uint64
}

func (o AIOptions) validate() error {
	if o.Level < 1 || o.Level > 5 {
		return &InvalidLevelError{Value: o.Level, Allowed: "1..5"}
	}
	if o.Randomness < 0 || math.IsNaN(o.Randomness) || math.IsInf(o.Randomness, 0) {
		return &InvalidOptionError{Option: "randomness", Reason: "must be a finite value >= 0"}
	}
	if o.Depth != nil {
		if o.Depth.Base <= 0 {
			return &InvalidOptionError{Option: "depth.base", Reason: "must be > 0"}
		}
		if o.Depth.Extended < 0 || o.Depth.Extended > 3 {
			return &InvalidOptionError{Option: "depth.extended", Reason: "must be in [0,3]"}
		}
		if o.Depth.Quiescence < 0 {
			return &InvalidOptionError{Option: "depth.quiescence", Reason: "must be >= 0"}
		}
	}
	return nil
}

func (o AIOptions) withDefaults(cfg config.Config) AIOptions {
	if o.TTSizeMB <= 0 {
		o.TTSizeMB = cfg.TTSizeMB
	}
	if o.TTSizeMB <= 0 {
		o.TTSizeMB = 16
	}
	return o
}

// searchOptions resolves the level->depth schedule (optionally
// overridden by o.Depth) and the adaptive depth boost into the search
// package's Options.
func searchOptions(pos *board.Position, o AIOptions, cfg config.Config) search.Options {
	table := levelSchedule(cfg)
	var setting levelSetting
	if o.Depth != nil {
		setting = levelSetting{
			BaseDepth:      o.Depth.Base,
			ExtendedDepth:  o.Depth.Extended,
			QMaxDepth:      o.Depth.Quiescence,
			CheckExtension: o.Depth.Check,
		}
	} else {
		setting = table[o.Level]
	}

	base := setting.BaseDepth + adaptiveBoost(pos, setting.ExtendedDepth)

	return search.Options{
		BaseDepth:       base,
		QMaxDepth:       setting.QMaxDepth,
		CheckExtension:  setting.CheckExtension,
		Randomness:      o.Randomness,
		AspirationDelta: cfg.AspirationDelta,
		AspirationMax:   cfg.AspirationMax,
	}
}

// adaptiveBoost implements the adaptive depth rule: up to extended
// extra plies in simplified positions or low-branching-factor roots.
func adaptiveBoost(pos *board.Position, extended int) int {
	if extended <= 0 {
		return 0
	}

	pieceCount := pos.AllOccupied.PopCount()
	boost := 0
	if pieceCount <= 10 {
		boost += 2
	} else if pieceCount <= 18 {
		boost += 1
	}

	branching := pos.GenerateLegalMoves().Len()
	if branching <= 12 {
		boost += 1
	}

	if boost > extended {
		boost = extended
	}
	return boost
}

// AI runs the search engine and optionally applies the chosen move.
func (g *Game) AI(opts AIOptions) (*AIResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(g.cfg)

	if g.pos.IsCheckmate() || g.pos.IsStalemate() {
		return nil, &GameFinishedError{}
	}

	eval.SetQueenValue(g.cfg.QueenValue)
	g.ensureSearcher(opts.TTSizeMB)

	sOpts := searchOptions(g.pos, opts, g.cfg)
	result := g.searcher.FindBestMove(g.pos, sOpts)

	out := &AIResult{Board: g.snapshot()}
	if result.Move != board.NoMove {
		depth := result.Depth
		score := result.Score
		nodes := result.NodesSearched
		out.Depth = &depth
		out.BestScore = &score
		out.NodesSearched = &nodes
		out.Move = &MoveResult{
			From: squareUpper(result.Move.From()),
			To:   squareUpper(result.Move.To()),
		}
		if result.Move.IsPromotion() {
			out.Move.Promotion = string(result.Move.PromotionPiece().Char())
		}
	}

	if opts.Analysis {
		out.Analysis = rankedAnalysis(result.ScoredRootMoves)
	}

	if opts.Play && result.Move != board.NoMove {
		g.pos.ApplyMove(result.Move)
		g.history = append(g.history, HistoryEntry{
			From:          out.Move.From,
			To:            out.Move.To,
			Configuration: g.snapshot(),
		})
		out.Board = g.snapshot()
	}

	return out, nil
}

// AIMove is the single-move convenience form: equivalent to
// AI({Level: level, Play: true}).Move.
func (g *Game) AIMove(level int) (*MoveResult, error) {
	result, err := g.AI(AIOptions{Level: level, Play: true})
	if err != nil {
		return nil, err
	}
	return result.Move, nil
}

func (g *Game) ensureSearcher(ttSizeMB int) {
	if g.table == nil {
		g.table = tt.New(ttSizeMB)
		g.searcher = search.NewSearcher(g.table)
	}
}

func rankedAnalysis(scored []search.RootMove) []RootMoveScore {
	out := make([]RootMoveScore, len(scored))
	for i, rm := range scored {
		out[i] = RootMoveScore{
			From:  squareUpper(rm.Move.From()),
			To:    squareUpper(rm.Move.To()),
			Score: rm.Score,
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// levelSetting and levelTable mirror internal/config's schedule shape
// without exposing that package's TOML tags to callers.
type levelSetting struct {
	BaseDepth      int
	ExtendedDepth  int
	QMaxDepth      int
	CheckExtension bool
}

type levelTable [6]levelSetting

func levelSchedule(cfg config.Config) levelTable {
	var t levelTable
	for i := 1; i <= 5; i++ {
		ls := cfg.Levels[i]
		t[i] = levelSetting{
			BaseDepth:      ls.BaseDepth,
			ExtendedDepth:  ls.ExtendedDepth,
			QMaxDepth:      ls.QMaxDepth,
			CheckExtension: ls.CheckExtension,
		}
	}
	return t
}
