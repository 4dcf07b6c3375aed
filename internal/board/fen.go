package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENError reports why a FEN string failed to parse, naming the
// offending field so a caller can show the user exactly what was wrong.
type FENError struct {
	Field  string
	Reason string
}

func (e *FENError) Error() string {
	return fmt.Sprintf("invalid FEN %s: %s", e.Field, e.Reason)
}

func fenErr(field, format string, args ...interface{}) *FENError {
	return &FENError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ParseFEN parses a FEN string and returns a Position, or a *FENError
// naming the first field that failed validation.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fenErr("field count", "expected 6 space-separated fields, got %d", len(parts))
	}

	pos := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fenErr("active color", "must be 'w' or 'b', got %q", parts[1])
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fenErr("en passant square", "%q is not a valid square", parts[3])
		}
		rank := sq.Rank()
		if rank != 2 && rank != 5 {
			return nil, fenErr("en passant square", "%q must be on rank 3 or rank 6", parts[3])
		}
		pos.EnPassant = sq
	}

	hmc, err := strconv.Atoi(parts[4])
	if err != nil || hmc < 0 {
		return nil, fenErr("half-move clock", "%q must be a non-negative integer", parts[4])
	}
	pos.HalfMoveClock = hmc

	fmn, err := strconv.Atoi(parts[5])
	if err != nil || fmn < 1 {
		return nil, fenErr("full-move number", "%q must be an integer >= 1", parts[5])
	}
	pos.FullMoveNumber = fmn

	if pos.Pieces[White][King].PopCount() != 1 {
		return nil, fenErr("piece placement", "white must have exactly one king")
	}
	if pos.Pieces[Black][King].PopCount() != 1 {
		return nil, fenErr("piece placement", "black must have exactly one king")
	}

	pos.updateOccupied()
	pos.rebuildMailbox()
	pos.findKings()
	pos.Hash = pos.ComputeHash()
	pos.UpdateCheckers()

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fenErr("piece placement", "expected 8 ranks separated by '/', got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fenErr("piece placement", "rank %d has more than 8 files", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
			} else {
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return fenErr("piece placement", "unknown piece character %q", c)
				}
				sq := NewSquare(file, rank)
				pos.setPiece(piece, sq)
				file++
			}
		}

		if file != 8 {
			return fenErr("piece placement", "rank %d sums to %d files, expected 8", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.CastlingRights = NoCastling
		return nil
	}

	seen := make(map[byte]bool, 4)
	for i := 0; i < len(castling); i++ {
		c := castling[i]
		if seen[c] {
			return fenErr("castling rights", "duplicate letter %q", c)
		}
		seen[c] = true
		switch c {
		case 'K':
			pos.CastlingRights |= WhiteKingSideCastle
		case 'Q':
			pos.CastlingRights |= WhiteQueenSideCastle
		case 'k':
			pos.CastlingRights |= BlackKingSideCastle
		case 'q':
			pos.CastlingRights |= BlackQueenSideCastle
		default:
			return fenErr("castling rights", "unknown letter %q", c)
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the position. It is the exact
// inverse of ParseFEN: ParseFEN(p.ToFEN()) reproduces an equal position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}

// ComputeHash computes the Zobrist hash for the position from scratch.
// ParseFEN and SetSquare set Hash from it; ApplyMove maintains Hash
// incrementally, and ComputeHash also verifies that those incremental
// updates stay in sync.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= zobristPiece[c][pt][sq]
			}
		}
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	hash ^= castlingHash(p.CastlingRights)

	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassantFile[p.EnPassant.File()]
	}

	return hash
}
