package common

import "fmt"

// castleMask[sq] keeps the rights that survive a move from or to sq.
var castleMask [64]int

type castleRook struct {
	from, to int
}

// castleRooks is indexed by the king destination of a castling move.
var castleRooks = [64]castleRook{
	SquareG1: {SquareH1, SquareF1},
	SquareC1: {SquareA1, SquareD1},
	SquareG8: {SquareH8, SquareF8},
	SquareC8: {SquareA8, SquareD8},
}

// newPosition builds a position from a square-indexed board. Castling rights
// without king and rook at home and an en passant square without a pawn
// that just double-pushed are dropped. It fails on wrong king counts,
// pawns on the back ranks, or a side to move that can capture the king.
func newPosition(board *[64]coloredPiece, wtm bool, castleRights, ep, rule50 int) (Position, bool) {
	var p = Position{
		WhiteMove:    wtm,
		CastleRights: castleRights,
		EpSquare:     ep,
		Rule50:       rule50,
		LastMove:     MoveEmpty,
	}
	for sq, piece := range board {
		if piece.Type != Empty {
			p.togglePiece(piece.Type, piece.Side, sq)
		}
	}
	if PopCount(p.Kings&p.White) != 1 || PopCount(p.Kings&p.Black) != 1 ||
		p.Pawns&(Rank1Mask|Rank8Mask) != 0 {
		return Position{}, false
	}
	p.CastleRights &= p.possibleCastleRights()
	if p.EpSquare != SquareNone && !p.validEpSquare() {
		p.EpSquare = SquareNone
	}
	p.Key = p.computeKey()
	p.Checkers = p.computeCheckers()
	if !p.isLegal() {
		return Position{}, false
	}
	return p, true
}

func (p *Position) validEpSquare() bool {
	var rank, pusher = Rank6, p.EpSquare - 8
	if !p.WhiteMove {
		rank, pusher = Rank3, p.EpSquare+8
	}
	return Rank(p.EpSquare) == rank &&
		p.Pawns&p.PiecesByColor(!p.WhiteMove)&SquareMask[pusher] != 0
}

func (p *Position) possibleCastleRights() int {
	var result = 0
	var homes = [...]struct {
		flag       int
		king, rook int
		side       bool
	}{
		{WhiteKingSide, SquareE1, SquareH1, true},
		{WhiteQueenSide, SquareE1, SquareA1, true},
		{BlackKingSide, SquareE8, SquareH8, false},
		{BlackQueenSide, SquareE8, SquareA8, false},
	}
	for _, h := range homes {
		var own = p.PiecesByColor(h.side)
		if p.Kings&own&SquareMask[h.king] != 0 && p.Rooks&own&SquareMask[h.rook] != 0 {
			result |= h.flag
		}
	}
	return result
}

// pieceBoard returns the bitboard that holds pieces of the given type.
func (p *Position) pieceBoard(piece int) *uint64 {
	switch piece {
	case Pawn:
		return &p.Pawns
	case Knight:
		return &p.Knights
	case Bishop:
		return &p.Bishops
	case Rook:
		return &p.Rooks
	case Queen:
		return &p.Queens
	case King:
		return &p.Kings
	}
	panic(fmt.Errorf("unknown piece type %d", piece))
}

func (p *Position) colorBoard(side bool) *uint64 {
	if side {
		return &p.White
	}
	return &p.Black
}

func (p *Position) togglePiece(piece int, side bool, sq int) {
	var b = SquareMask[sq]
	*p.colorBoard(side) ^= b
	*p.pieceBoard(piece) ^= b
	p.Key ^= PieceSquareKey(piece, side, sq)
}

func (p *Position) shiftPiece(piece int, side bool, from, to int) {
	var b = SquareMask[from] | SquareMask[to]
	*p.colorBoard(side) ^= b
	*p.pieceBoard(piece) ^= b
	p.Key ^= PieceSquareKey(piece, side, from) ^ PieceSquareKey(piece, side, to)
}

func (p *Position) GetPieceTypeAndSide(sq int) (pieceType int, side bool) {
	var b = SquareMask[sq]
	switch {
	case p.White&b != 0:
		return p.WhatPiece(sq), true
	case p.Black&b != 0:
		return p.WhatPiece(sq), false
	}
	return Empty, false
}

func (p *Position) WhatPiece(sq int) int {
	var b = SquareMask[sq]
	if (p.White|p.Black)&b == 0 {
		return Empty
	}
	for piece := Pawn; piece <= King; piece++ {
		if *p.pieceBoard(piece)&b != 0 {
			return piece
		}
	}
	panic(fmt.Errorf("corrupt position: no piece type on %s", SquareName(sq)))
}

func (p *Position) SideToMove() int {
	return sideIndex(p.WhiteMove)
}

func (p *Position) PieceCount() int {
	return PopCount(p.White | p.Black)
}

func (p *Position) PiecesByColor(side bool) uint64 {
	if side {
		return p.White
	}
	return p.Black
}

// MakeMove writes the position after move into result and reports whether
// the mover's king is safe. result is garbage when it returns false.
func (src *Position) MakeMove(move Move, result *Position) bool {
	var from, to = move.From(), move.To()
	var piece, captured = move.MovingPiece(), move.CapturedPiece()
	var us = src.WhiteMove

	*result = *src
	result.WhiteMove = !us
	result.Key ^= sideKey
	result.CastleRights &= castleMask[from] & castleMask[to]
	result.Key ^= castlingKey[result.CastleRights^src.CastleRights]
	result.Rule50++
	if piece == Pawn || captured != Empty {
		result.Rule50 = 0
	}
	if src.EpSquare != SquareNone {
		result.Key ^= enpassantKey[File(src.EpSquare)]
		result.EpSquare = SquareNone
	}

	if captured != Empty {
		var victim = to
		if piece == Pawn && to == src.EpSquare {
			victim = MakeSquare(File(to), Rank(from))
		}
		result.togglePiece(captured, !us, victim)
	}
	result.shiftPiece(piece, us, from, to)

	switch piece {
	case Pawn:
		if AbsDelta(from, to) == 16 {
			result.EpSquare = (from + to) / 2
			result.Key ^= enpassantKey[File(from)]
		}
		if promotion := move.Promotion(); promotion != Empty {
			result.togglePiece(Pawn, us, to)
			result.togglePiece(promotion, us, to)
		}
	case King:
		if move.IsCastle() {
			var rook = castleRooks[to]
			result.shiftPiece(Rook, us, rook.from, rook.to)
		}
	}

	if !result.isLegal() {
		return false
	}
	result.Checkers = result.computeCheckers()
	result.LastMove = move
	return true
}

func (src *Position) MakeNullMove(result *Position) {
	*result = *src
	result.WhiteMove = !src.WhiteMove
	result.Key ^= sideKey
	result.Rule50++
	if src.EpSquare != SquareNone {
		result.Key ^= enpassantKey[File(src.EpSquare)]
		result.EpSquare = SquareNone
	}
	result.Checkers = 0
	result.LastMove = MoveEmpty
}

func (p *Position) isAttackedBySide(sq int, side bool) bool {
	return p.attackedWithOccupancy(sq, side, p.White|p.Black, 0)
}

// attackedWithOccupancy reports whether pieces of side (minus excluded) attack sq
// when the board occupancy is occ.
func (p *Position) attackedWithOccupancy(sq int, side bool, occ, excluded uint64) bool {
	var enemy = p.PiecesByColor(side) &^ excluded
	return PawnAttacks(sq, !side)&p.Pawns&enemy != 0 ||
		KnightAttacks[sq]&p.Knights&enemy != 0 ||
		KingAttacks[sq]&p.Kings&enemy != 0 ||
		BishopAttacks(sq, occ)&(p.Bishops|p.Queens)&enemy != 0 ||
		RookAttacks(sq, occ)&(p.Rooks|p.Queens)&enemy != 0
}

// pinnedPieces returns own pieces that shield the own king from an enemy slider.
func (p *Position) pinnedPieces(kingSq int, own, enemy uint64) uint64 {
	var occ = p.White | p.Black
	var snipers = ((RookAttacks(kingSq, 0) & (p.Rooks | p.Queens)) |
		(BishopAttacks(kingSq, 0) & (p.Bishops | p.Queens))) & enemy
	var result uint64
	for ; snipers != 0; snipers &= snipers - 1 {
		var blockers = betweenMask[FirstOne(snipers)][kingSq] & occ
		if blockers != 0 && !MoreThanOne(blockers) {
			result |= blockers & own
		}
	}
	return result
}

// attackersTo returns the pieces of both colours attacking sq.
func (p *Position) attackersTo(sq int) uint64 {
	var occ = p.White | p.Black
	var pawns = pawnAttacks[SideBlack][sq]&p.Pawns&p.White |
		pawnAttacks[SideWhite][sq]&p.Pawns&p.Black
	return pawns |
		KnightAttacks[sq]&p.Knights |
		KingAttacks[sq]&p.Kings |
		BishopAttacks(sq, occ)&(p.Bishops|p.Queens) |
		RookAttacks(sq, occ)&(p.Rooks|p.Queens)
}

func (p *Position) computeCheckers() uint64 {
	var own = p.PiecesByColor(p.WhiteMove)
	return p.attackersTo(FirstOne(p.Kings&own)) &^ own
}

// isLegal reports whether the side that just moved left its king safe.
func (p *Position) isLegal() bool {
	var kingSq = FirstOne(p.Kings & p.PiecesByColor(!p.WhiteMove))
	return !p.isAttackedBySide(kingSq, p.WhiteMove)
}

func (p *Position) IsCheck() bool {
	return p.Checkers != 0
}

// MirrorPosition swaps colours and flips the board vertically.
func MirrorPosition(p *Position) Position {
	var board [64]coloredPiece
	for x := p.White | p.Black; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var piece, side = p.GetPieceTypeAndSide(sq)
		board[FlipSquare(sq)] = coloredPiece{piece, !side}
	}
	var rights = (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2)
	var ep = SquareNone
	if p.EpSquare != SquareNone {
		ep = FlipSquare(p.EpSquare)
	}
	var mirror, _ = newPosition(&board, !p.WhiteMove, rights, ep, p.Rule50)
	return mirror
}

func init() {
	initZobrist()
	for sq := range castleMask {
		castleMask[sq] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	for _, home := range []struct{ sq, lost int }{
		{SquareA1, WhiteQueenSide},
		{SquareE1, WhiteKingSide | WhiteQueenSide},
		{SquareH1, WhiteKingSide},
		{SquareA8, BlackQueenSide},
		{SquareE8, BlackKingSide | BlackQueenSide},
		{SquareH8, BlackKingSide},
	} {
		castleMask[home.sq] &^= home.lost
	}
}
