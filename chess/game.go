// Package chess is the public surface of the engine: a Game that owns
// a legal chess position, mutated only through legality-checked moves,
// plus a family of stateless functions over a Config snapshot.
package chess

import (
	"sort"
	"strings"

	"github.com/gordienko/chesscore/internal/board"
	"github.com/gordienko/chesscore/internal/config"
	"github.com/gordienko/chesscore/internal/search"
	"github.com/gordienko/chesscore/internal/tt"
)

// Game owns a position and an append-only history of the moves and
// edits applied to it.
type Game struct {
	pos      *board.Position
	history  []HistoryEntry
	cfg      config.Config
	table    *tt.Table
	searcher *search.Searcher
}

// New creates a Game. A zero-value Config (or nil) gives the standard
// starting position; a non-empty Config.FEN parses that FEN; otherwise
// the structured fields describe the position directly.
func New(cfg *Config) (*Game, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	pos, err := buildPosition(c)
	if err != nil {
		return nil, err
	}
	return &Game{pos: pos, cfg: config.Load()}, nil
}

// squareUpper renders sq in the canonical uppercase algebraic form.
func squareUpper(sq board.Square) string {
	return strings.ToUpper(sq.String())
}

func turnString(pos *board.Position) string {
	if pos.SideToMove == board.White {
		return "w"
	}
	return "b"
}

func (g *Game) snapshot() Configuration {
	pieces := make(map[string]string)
	for sq := board.A1; sq <= board.H8; sq++ {
		p := g.pos.PieceAt(sq)
		if p != board.NoPiece {
			pieces[squareUpper(sq)] = p.String()
		}
	}

	cfg := Configuration{
		Pieces:     pieces,
		Turn:       turnString(g.pos),
		IsFinished: g.pos.IsCheckmate() || g.pos.IsStalemate(),
		Check:      g.pos.InCheck(),
		CheckMate:  g.pos.IsCheckmate(),
		StaleMate:  g.pos.IsStalemate(),
		Castling:   g.pos.CastlingRights.String(),
		EnPassant:  strings.ToUpper(g.pos.EnPassant.String()),
		HalfMove:   g.pos.HalfMoveClock,
		FullMove:   g.pos.FullMoveNumber,
		Moves:      legalMovesMap(g.pos, board.NoSquare),
	}
	return cfg
}

// legalMovesMap groups every legal move by its from-square, restricted
// to only, unless only is board.NoSquare.
func legalMovesMap(pos *board.Position, only board.Square) map[string][]string {
	result := make(map[string][]string)
	ml := pos.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if only != board.NoSquare && m.From() != only {
			continue
		}
		from := squareUpper(m.From())
		result[from] = append(result[from], squareUpper(m.To()))
	}
	for from := range result {
		tos := result[from]
		sort.Strings(tos)
		result[from] = uniqueSorted(tos)
	}
	return result
}

// uniqueSorted removes adjacent duplicates from a sorted slice — the
// four promotion moves to the same destination otherwise repeat it.
func uniqueSorted(sorted []string) []string {
	out := sorted[:0]
	var prev string
	for i, s := range sorted {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}

// Moves returns the legal destinations for every from-square, or for
// just square when it is non-empty.
func (g *Game) Moves(square string) (map[string][]string, error) {
	only := board.NoSquare
	if square != "" {
		sq, err := parseSquare(square)
		if err != nil {
			return nil, err
		}
		only = sq
	}
	return legalMovesMap(g.pos, only), nil
}

// ExportJSON returns the position as the structured shape described
// by the public API: pieces, turn, termination flags, castling,
// en passant, clocks, and the full legal-move map.
func (g *Game) ExportJSON() Configuration {
	return g.snapshot()
}

// ExportFEN returns the position's FEN string.
func (g *Game) ExportFEN() string {
	return g.pos.ToFEN()
}

// GetHistory returns the move/edit log, oldest first unless reversed.
func (g *Game) GetHistory(reversed bool) []HistoryEntry {
	out := make([]HistoryEntry, len(g.history))
	copy(out, g.history)
	if reversed {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Move plays a legal move. promotion, if non-empty, names the
// promotion piece (one of "Q","R","B","N", case-insensitive); if
// empty, a promoting pawn defaults to a queen.
func (g *Game) Move(from, to, promotion string) error {
	if g.pos.IsCheckmate() || g.pos.IsStalemate() {
		return &GameFinishedError{}
	}

	fromSq, err := parseSquare(from)
	if err != nil {
		return err
	}
	toSq, err := parseSquare(to)
	if err != nil {
		return err
	}

	var promo board.PieceType = board.NoPieceType
	if promotion != "" {
		promo, err = parsePromotion(promotion)
		if err != nil {
			return err
		}
	}

	m, err := matchLegalMove(g.pos, fromSq, toSq, promo, promotion != "")
	if err != nil {
		return err
	}

	g.pos.ApplyMove(m)
	g.history = append(g.history, HistoryEntry{
		From:          squareUpper(fromSq),
		To:            squareUpper(toSq),
		Configuration: g.snapshot(),
	})
	return nil
}

// matchLegalMove finds the legal move from->to, applying the
// requested promotion piece (or defaulting to queen for a promoting
// pawn when none was given).
func matchLegalMove(pos *board.Position, from, to board.Square, promo board.PieceType, promoGiven bool) (board.Move, error) {
	ml := pos.GenerateLegalMoves()
	var candidate board.Move
	found := false
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if !m.IsPromotion() {
			return m, nil
		}
		found = true
		if promoGiven && m.PromotionPiece() == promo {
			return m, nil
		}
		if !promoGiven && m.PromotionPiece() == board.Queen {
			candidate = m
		}
	}
	if found && !promoGiven {
		return candidate, nil
	}
	promoStr := ""
	if promoGiven {
		promoStr = string(promo.Char())
	}
	return board.NoMove, &IllegalMoveError{From: squareUpper(from), To: squareUpper(to), Promotion: promoStr}
}

func parsePromotion(s string) (board.PieceType, error) {
	switch strings.ToLower(s) {
	case "q":
		return board.Queen, nil
	case "r":
		return board.Rook, nil
	case "b":
		return board.Bishop, nil
	case "n":
		return board.Knight, nil
	default:
		return board.NoPieceType, &InvalidPieceError{Value: s}
	}
}

// SetPiece places piece on square directly, bypassing move legality.
// It clears history-sensitive derived state (en passant, castling
// rights tied to the edited square) the way a position editor would.
func (g *Game) SetPiece(square, piece string) error {
	sq, err := parseSquare(square)
	if err != nil {
		return err
	}
	p, err := parsePiece(piece)
	if err != nil {
		return err
	}

	g.editPiece(sq, p)
	g.history = append(g.history, HistoryEntry{
		From:          squareUpper(sq),
		To:            squareUpper(sq),
		Configuration: g.snapshot(),
	})
	return nil
}

// RemovePiece clears square directly, bypassing move legality.
func (g *Game) RemovePiece(square string) error {
	sq, err := parseSquare(square)
	if err != nil {
		return err
	}

	g.editPiece(sq, board.NoPiece)
	g.history = append(g.history, HistoryEntry{
		From:          squareUpper(sq),
		To:            squareUpper(sq),
		Configuration: g.snapshot(),
	})
	return nil
}

// editPiece mutates a copy of the position directly, bypassing move
// legality, then swaps it in once the edit has recomputed every
// derived field.
func (g *Game) editPiece(sq board.Square, piece board.Piece) {
	next := g.pos.Copy()
	next.EnPassant = board.NoSquare
	switch sq {
	case board.E1:
		next.CastlingRights &^= board.WhiteKingSideCastle | board.WhiteQueenSideCastle
	case board.H1:
		next.CastlingRights &^= board.WhiteKingSideCastle
	case board.A1:
		next.CastlingRights &^= board.WhiteQueenSideCastle
	case board.E8:
		next.CastlingRights &^= board.BlackKingSideCastle | board.BlackQueenSideCastle
	case board.H8:
		next.CastlingRights &^= board.BlackKingSideCastle
	case board.A8:
		next.CastlingRights &^= board.BlackQueenSideCastle
	}
	next.SetSquare(sq, piece)
	g.pos = next
}
