package board

// GenerateLegalMoves generates all legal moves for the position: every
// pseudo-legal move that, after being applied to a throwaway copy of
// the position, does not leave the mover's own king attacked.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures generates all legal capture (and promotion) moves,
// used by quiescence search.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return p.filterLegalMoves(ml)
}

// generateAllMoves generates all pseudo-legal moves.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	occupied := p.AllOccupied
	enemies := p.Occupied[us.Other()]

	p.generatePawnMoves(ml, us, enemies, occupied)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & ^p.Occupied[us]
		p.addSimpleMoves(ml, from, attacks, Knight, us)
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & ^p.Occupied[us]
		p.addSimpleMoves(ml, from, attacks, Bishop, us)
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & ^p.Occupied[us]
		p.addSimpleMoves(ml, from, attacks, Rook, us)
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & ^p.Occupied[us]
		p.addSimpleMoves(ml, from, attacks, Queen, us)
	}

	p.generateKingMoves(ml, us)
	p.generateCastlingMoves(ml, us)
}

// addSimpleMoves emits a quiet or capturing move for each target square
// in targets, depending on whether the destination is occupied.
func (p *Position) addSimpleMoves(ml *MoveList, from Square, targets Bitboard, pt PieceType, us Color) {
	for targets != 0 {
		to := targets.PopLSB()
		if captured := p.PieceAt(to); captured != NoPiece {
			ml.Add(NewCapture(from, to, pt, captured.Type()))
		} else {
			ml.Add(NewMove(from, to, pt))
		}
	}
}

// generatePawnMoves generates all pawn moves, including double pushes,
// promotions to all four pieces, and en passant.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromo := push1 & ^promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewMove(from, to, Pawn))
	}

	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		ml.Add(NewDoublePawnPush(from, to, Pawn))
	}

	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewCapture(from, to, Pawn, p.PieceAt(to).Type()))
	}

	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewCapture(from, to, Pawn, p.PieceAt(to).Type()))
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to, NoPieceType)
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, from, to, p.PieceAt(to).Type())
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, from, to, p.PieceAt(to).Type())
	}

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			ml.Add(NewEnPassant(from, p.EnPassant, Pawn))
		}
	}
}

// addPromotions adds the four promotion moves (queen, rook, bishop,
// knight), capturing if captured != NoPieceType.
func addPromotions(ml *MoveList, from, to Square, captured PieceType) {
	ml.Add(NewPromotion(from, to, Pawn, captured, Queen))
	ml.Add(NewPromotion(from, to, Pawn, captured, Rook))
	ml.Add(NewPromotion(from, to, Pawn, captured, Bishop))
	ml.Add(NewPromotion(from, to, Pawn, captured, Knight))
}

// generateKingMoves generates king moves (non-castling).
func (p *Position) generateKingMoves(ml *MoveList, us Color) {
	from := p.KingSquare[us]
	attacks := KingAttacks(from) & ^p.Occupied[us]
	p.addSimpleMoves(ml, from, attacks, King, us)
}

// generateCastlingMoves generates castling moves, checking that the
// intervening squares are empty and that the king does not start,
// pass through, or land on an attacked square.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 {
			if p.AllOccupied&(SquareBB(F1)|SquareBB(G1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
					ml.Add(NewCastle(E1, G1, true))
				}
			}
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 {
			if p.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
					ml.Add(NewCastle(E1, C1, false))
				}
			}
		}
	} else {
		if p.CastlingRights&BlackKingSideCastle != 0 {
			if p.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
					ml.Add(NewCastle(E8, G8, true))
				}
			}
		}
		if p.CastlingRights&BlackQueenSideCastle != 0 {
			if p.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
					ml.Add(NewCastle(E8, C8, false))
				}
			}
		}
	}
}

// generateCaptures generates capture and promotion moves only, for
// quiescence search.
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	enemies := p.Occupied[us.Other()]
	occupied := p.AllOccupied

	pawns := p.Pieces[us][Pawn]
	var attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewCapture(from, to, Pawn, p.PieceAt(to).Type()))
	}
	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewCapture(from, to, Pawn, p.PieceAt(to).Type()))
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, from, to, p.PieceAt(to).Type())
	}
	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, from, to, p.PieceAt(to).Type())
	}

	empty := ^occupied
	var push1 Bitboard
	if us == White {
		push1 = pawns.North() & empty & Rank8
	} else {
		push1 = pawns.South() & empty & Rank1
	}
	for push1 != 0 {
		to := push1.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to, NoPieceType)
	}

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			ml.Add(NewEnPassant(from, p.EnPassant, Pawn))
		}
	}

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & enemies
		p.addCaptureOnly(ml, from, attacks, Knight)
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & enemies
		p.addCaptureOnly(ml, from, attacks, Bishop)
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & enemies
		p.addCaptureOnly(ml, from, attacks, Rook)
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & enemies
		p.addCaptureOnly(ml, from, attacks, Queen)
	}

	from := p.KingSquare[us]
	attacks := KingAttacks(from) & enemies
	p.addCaptureOnly(ml, from, attacks, King)
}

func (p *Position) addCaptureOnly(ml *MoveList, from Square, targets Bitboard, pt PieceType) {
	for targets != 0 {
		to := targets.PopLSB()
		ml.Add(NewCapture(from, to, pt, p.PieceAt(to).Type()))
	}
}

// filterLegalMoves discards every move that leaves the mover's king in check.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// IsLegal reports whether applying m to a throwaway copy of the
// position leaves the mover's own king safe. The clone is discarded
// regardless of the outcome; the receiver is never mutated.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	clone := p.Copy()
	clone.ApplyMove(m)
	return !clone.IsSquareAttacked(clone.KingSquare[us], us.Other())
}

// ApplyMove mutates the position in place to reflect m having been
// played: updates the mailbox and bitboards, the incremental Zobrist
// hash, castling rights, en passant target, half-move clock, full-move
// number, side to move, and check status, in that order. There is no
// corresponding Unmake — callers that need to try a move and back out
// clone the position first (see IsLegal and the search package).
func (p *Position) ApplyMove(m Move) {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	pt := m.Piece()

	p.Hash ^= zobristSideToMove
	p.Hash ^= castlingHash(p.CastlingRights)
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassantFile[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	captured := NoPiece
	if m.IsEnPassant() {
		capturedSq := to.DownByColor(us)
		captured = p.removePiece(capturedSq)
		p.Hash ^= zobristPiece[them][Pawn][capturedSq]
	} else if m.IsCapture() {
		captured = p.removePiece(to)
		p.Hash ^= zobristPiece[them][captured.Type()][to]
	}

	p.movePiece(from, to)
	p.Hash ^= zobristPiece[us][pt][from]
	p.Hash ^= zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promoPt := m.PromotionPiece()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Mailbox[to] = NewPiece(promoPt, us)
		p.Hash ^= zobristPiece[us][Pawn][to]
		p.Hash ^= zobristPiece[us][promoPt][to]
	}

	if m.IsCastle() {
		var rookFrom, rookTo Square
		if m.IsCastleShort() {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom]
		p.Hash ^= zobristPiece[us][Rook][rookTo]
	}

	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
	p.Hash ^= castlingHash(p.CastlingRights)

	if pt == Pawn && m.IsDoublePawnPush() {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= zobristEnPassantFile[epSquare.File()]
	}

	if pt == Pawn || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check but has no legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
