// Package tt implements the search's transposition table: a
// power-of-two-sized, always-replace hash table keyed by Zobrist hash.
package tt

import (
	"github.com/gordienko/chesscore/internal/board"
	"github.com/gordienko/chesscore/internal/eval"
)

// Bound indicates which kind of score an entry stores.
type Bound uint8

const (
	Exact Bound = iota
	Lower       // fail-high: true score >= Score
	Upper       // fail-low: true score <= Score
)

// Entry is one slot of the transposition table.
type Entry struct {
	Key      uint32 // upper 32 bits of the Zobrist hash, for collision detection
	BestMove board.Move
	Score    int16
	Depth    int8
	Bound    Bound
	Age      uint8
}

// Table is a hash table for storing search results, indexed by the low
// bits of the position's Zobrist hash. Its size is always a power of
// two of entries, computed from a requested size in megabytes.
type Table struct {
	entries []Entry
	mask    uint64
	age     uint8
}

// New creates a table sized to fit within sizeMB megabytes, rounded
// down to a power of two of entries.
func New(sizeMB int) *Table {
	const entrySize = 16
	numEntries := roundDownPow2(uint64(sizeMB) * 1024 * 1024 / entrySize)
	if numEntries == 0 {
		numEntries = 1
	}
	return &Table{
		entries: make([]Entry, numEntries),
		mask:    numEntries - 1,
	}
}

func roundDownPow2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// NewSearch advances the table's age, used by the replacement policy
// to prefer fresh entries over ones left from an earlier search.
func (t *Table) NewSearch() {
	t.age++
}

// Probe looks up hash and reports whether depth and bound type make
// the stored score usable at the given alpha/beta window: EXACT scores
// are always usable, LOWER bounds only when score >= beta, UPPER
// bounds only when score <= alpha. The returned score has already been
// adjusted from the mate-distance-from-root encoding back to the
// current ply.
func (t *Table) Probe(hash uint64, depth, alpha, beta, ply int) (score int, bestMove board.Move, usable, found bool) {
	e := &t.entries[hash&t.mask]
	if e.Depth == 0 || e.Key != uint32(hash>>32) {
		return 0, board.NoMove, false, false
	}

	bestMove = e.BestMove
	found = true
	if int(e.Depth) < depth {
		return 0, bestMove, false, true
	}

	s := adjustFromTT(int(e.Score), ply)
	switch e.Bound {
	case Exact:
		return s, bestMove, true, true
	case Lower:
		return s, bestMove, s >= beta, true
	case Upper:
		return s, bestMove, s <= alpha, true
	}
	return s, bestMove, false, true
}

// GetBestMove returns the stored best move for hash, used for move
// ordering even when the entry's depth is too shallow to trust its
// score.
func (t *Table) GetBestMove(hash uint64) board.Move {
	e := &t.entries[hash&t.mask]
	if e.Depth == 0 || e.Key != uint32(hash>>32) {
		return board.NoMove
	}
	return e.BestMove
}

// Store records a search result. The slot is replaced unconditionally
// when empty, when its key differs from hash, or when the new entry
// has depth/age at least as good as the one stored; otherwise the
// existing entry is kept.
func (t *Table) Store(hash uint64, depth, score int, bound Bound, bestMove board.Move, ply int) {
	e := &t.entries[hash&t.mask]
	key := uint32(hash >> 32)

	if e.Depth != 0 && e.Key == key && e.Age == t.age && int(e.Depth) > depth {
		return
	}

	e.Key = key
	e.BestMove = bestMove
	e.Score = int16(adjustToTT(score, ply))
	e.Depth = int8(depth)
	e.Bound = bound
	e.Age = t.age
}

// Clear empties the table and resets its age.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.age = 0
}

// Len returns the number of slots in the table.
func (t *Table) Len() int { return len(t.entries) }

// adjustToTT converts a mate score expressed as distance-from-root
// into distance-from-this-position, so that the same mate stored from
// different plies compares equal.
func adjustToTT(score, ply int) int {
	if score > eval.MateScore-eval.MaxPly {
		return score + ply
	}
	if score < -eval.MateScore+eval.MaxPly {
		return score - ply
	}
	return score
}

// adjustFromTT is the inverse of adjustToTT, applied on probe.
func adjustFromTT(score, ply int) int {
	if score > eval.MateScore-eval.MaxPly {
		return score - ply
	}
	if score < -eval.MateScore+eval.MaxPly {
		return score + ply
	}
	return score
}
