// Package board implements the dual mailbox+bitboard position model:
// square/piece/color primitives, magic-bitboard sliding attacks, the
// Zobrist key table, the FEN codec, move encoding, and the pseudo-legal
// and legal move generators.
package board

import "fmt"

// Square identifies one of the 64 board squares using Little-Endian
// Rank-File Mapping: A1=0, H1=7, A8=56, H8=63. File = sq mod 8 (0=a),
// rank = sq div 8 (0=rank 1).
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// Up returns the square one rank north, or NoSquare if that would
// leave the board. Down is its mirror image. These are the scalar
// counterparts of Bitboard.North/South, used where a caller has a
// single square rather than a bitboard of them (the en passant
// capture-square lookup in ApplyMove).
func (sq Square) Up() Square {
	if sq.Rank() == 7 {
		return NoSquare
	}
	return sq + 8
}

// Down returns the square one rank south, or NoSquare off the board.
func (sq Square) Down() Square {
	if sq.Rank() == 0 {
		return NoSquare
	}
	return sq - 8
}

// UpByColor returns Up for White and Down for Black: the direction a
// pawn of that color advances.
func (sq Square) UpByColor(c Color) Square {
	if c == White {
		return sq.Up()
	}
	return sq.Down()
}

// DownByColor is the opposite of UpByColor: the direction a pawn of
// that color came from, used to find the square an en passant capture
// removes a piece from.
func (sq Square) DownByColor(c Color) Square {
	if c == White {
		return sq.Down()
	}
	return sq.Up()
}
