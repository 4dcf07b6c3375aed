package chess

import (
	"strconv"
	"strings"

	"github.com/gordienko/chesscore/internal/board"
)

// Config describes a position either as a FEN string or as a
// structured set of fields. If FEN is non-empty it takes precedence
// over the structured fields; an empty Config describes the standard
// starting position.
type Config struct {
	FEN string

	Pieces    map[string]string
	Turn      string
	Castling  string
	EnPassant string
	HalfMove  int
	FullMove  int

	// IsFinished, Check, and CheckMate are accepted for parity with
	// exported configurations; they are derived state and are always
	// recomputed from the assembled position.
	IsFinished bool
	Check      bool
	CheckMate  bool
}

// isZero reports whether cfg carries no position information at all,
// in which case buildPosition uses the standard starting position.
func (cfg Config) isZero() bool {
	return cfg.FEN == "" && cfg.Pieces == nil && cfg.Turn == ""
}

func buildPosition(cfg Config) (*board.Position, error) {
	if cfg.isZero() {
		return board.NewPosition(), nil
	}
	if cfg.FEN != "" {
		pos, err := board.ParseFEN(cfg.FEN)
		if err != nil {
			return nil, toInvalidFENError(err)
		}
		return pos, nil
	}
	return buildFromStructured(cfg)
}

// buildFromStructured validates every structured field against the
// public API's own error kinds, then assembles and parses a FEN
// string so it goes through exactly the same construction path as a
// caller-supplied FEN.
func buildFromStructured(cfg Config) (*board.Position, error) {
	grid := [8][8]string{} // grid[rank][file], rank 0 = rank 1
	for sqStr, pieceStr := range cfg.Pieces {
		sq, err := parseSquare(sqStr)
		if err != nil {
			return nil, err
		}
		if _, err := parsePiece(pieceStr); err != nil {
			return nil, err
		}
		grid[sq.Rank()][sq.File()] = pieceStr
	}

	var placement strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			cell := grid[rank][file]
			if cell == "" {
				empty++
				continue
			}
			if empty > 0 {
				placement.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			placement.WriteString(cell)
		}
		if empty > 0 {
			placement.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			placement.WriteByte('/')
		}
	}

	turn := strings.ToLower(cfg.Turn)
	if turn == "" {
		turn = "w"
	}
	if turn != "w" && turn != "b" {
		return nil, &InvalidOptionError{Option: "turn", Reason: "must be \"w\" or \"b\""}
	}

	castling := cfg.Castling
	if castling == "" {
		castling = defaultCastling(grid)
	}

	enPassant := cfg.EnPassant
	if enPassant == "" {
		enPassant = "-"
	} else {
		enPassant = strings.ToLower(enPassant)
	}

	fullMove := cfg.FullMove
	if fullMove <= 0 {
		fullMove = 1
	}

	fen := strings.Join([]string{
		placement.String(),
		turn,
		castling,
		enPassant,
		strconv.Itoa(cfg.HalfMove),
		strconv.Itoa(fullMove),
	}, " ")

	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, toInvalidFENError(err)
	}
	return pos, nil
}

// defaultCastling grants each castling right iff the corresponding
// king and rook stand on their home squares, the most a position's
// placement alone can justify.
func defaultCastling(grid [8][8]string) string {
	rights := ""
	if grid[0][4] == "K" {
		if grid[0][7] == "R" {
			rights += "K"
		}
		if grid[0][0] == "R" {
			rights += "Q"
		}
	}
	if grid[7][4] == "k" {
		if grid[7][7] == "r" {
			rights += "k"
		}
		if grid[7][0] == "r" {
			rights += "q"
		}
	}
	if rights == "" {
		return "-"
	}
	return rights
}

func parseSquare(s string) (board.Square, error) {
	sq, err := board.ParseSquare(strings.ToLower(s))
	if err != nil {
		return board.NoSquare, &InvalidSquareError{Value: s}
	}
	return sq, nil
}

func parsePiece(s string) (board.Piece, error) {
	if len(s) != 1 {
		return board.NoPiece, &InvalidPieceError{Value: s}
	}
	p := board.PieceFromChar(s[0])
	if p == board.NoPiece {
		return board.NoPiece, &InvalidPieceError{Value: s}
	}
	return p, nil
}

func toInvalidFENError(err error) error {
	if fe, ok := err.(*board.FENError); ok {
		return &InvalidFENError{Field: fe.Field, Reason: fe.Reason}
	}
	return &InvalidFENError{Field: "fen", Reason: err.Error()}
}
