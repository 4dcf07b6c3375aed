package board

// Zobrist hash keys for position hashing.
// Keys are generated once at process start from a fixed seed so that
// hashes are stable across runs and across processes.
var (
	zobristPiece         [2][6][64]uint64 // [Color][PieceType][Square]
	zobristCastlingRight [4]uint64        // one key per independent castling right (WK, WQ, BK, BQ)
	zobristEnPassantFile [8]uint64        // one key per file
	zobristSideToMove    uint64
)

func init() {
	initZobrist()
}

// prng is a small xorshift64* generator, used only to seed the Zobrist
// tables deterministically; it is never used anywhere else.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for right := 0; right < 4; right++ {
		zobristCastlingRight[right] = rng.next()
	}

	for file := 0; file < 8; file++ {
		zobristEnPassantFile[file] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// castlingHash folds a CastlingRights value into its XOR contribution:
// one key per set bit, not one key per 16-value combination, so that
// clearing a single right changes the hash by exactly that right's key.
func castlingHash(cr CastlingRights) uint64 {
	var h uint64
	if cr&WhiteKingSideCastle != 0 {
		h ^= zobristCastlingRight[0]
	}
	if cr&WhiteQueenSideCastle != 0 {
		h ^= zobristCastlingRight[1]
	}
	if cr&BlackKingSideCastle != 0 {
		h ^= zobristCastlingRight[2]
	}
	if cr&BlackQueenSideCastle != 0 {
		h ^= zobristCastlingRight[3]
	}
	return h
}
