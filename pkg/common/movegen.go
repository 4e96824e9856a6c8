package common

// MoveBufferSize bounds the pseudo-legal moves of any position.
const MoveBufferSize = 256

// pawnGeometry describes pawn movement relative to the side to move.
type pawnGeometry struct {
	push      int
	startRank uint64
	lastRank  uint64 // pawns here promote on their next move
}

var pawnGeometries = [2]pawnGeometry{
	SideWhite: {push: 8, startRank: Rank2Mask, lastRank: Rank7Mask},
	SideBlack: {push: -8, startRank: Rank7Mask, lastRank: Rank2Mask},
}

var promotionOrder = [...]int{Queen, Rook, Bishop, Knight}

type castling struct {
	side    bool
	right   int
	empty   uint64 // squares between king and rook
	transit int    // square the king crosses
	move    Move
}

var castlings = [...]castling{
	{true, WhiteKingSide, 1<<SquareF1 | 1<<SquareG1, SquareF1, makeMove(SquareE1, SquareG1, King, Empty)},
	{true, WhiteQueenSide, 1<<SquareB1 | 1<<SquareC1 | 1<<SquareD1, SquareD1, makeMove(SquareE1, SquareC1, King, Empty)},
	{false, BlackKingSide, 1<<SquareF8 | 1<<SquareG8, SquareF8, makeMove(SquareE8, SquareG8, King, Empty)},
	{false, BlackQueenSide, 1<<SquareB8 | 1<<SquareC8 | 1<<SquareD8, SquareD8, makeMove(SquareE8, SquareC8, King, Empty)},
}

type moveSink struct {
	ml []Move
	n  int
}

func (s *moveSink) add(m Move) {
	s.ml[s.n] = m
	s.n++
}

func (s *moveSink) addPawn(m Move, promoting bool) {
	if !promoting {
		s.add(m)
		return
	}
	for _, promotion := range promotionOrder {
		s.add(m | Move(promotion<<18))
	}
}

func (s *moveSink) moves() []Move {
	return s.ml[:s.n]
}

func pieceAttacks(piece, from int, occ uint64) uint64 {
	switch piece {
	case Knight:
		return KnightAttacks[from]
	case Bishop:
		return BishopAttacks(from, occ)
	case Rook:
		return RookAttacks(from, occ)
	case Queen:
		return QueenAttacks(from, occ)
	case King:
		return KingAttacks[from]
	}
	return 0
}

func (s *moveSink) enPassant(p *Position, own uint64) {
	if p.EpSquare == SquareNone {
		return
	}
	for x := PawnAttacks(p.EpSquare, !p.WhiteMove) & p.Pawns & own; x != 0; x &= x - 1 {
		s.add(makeMove(FirstOne(x), p.EpSquare, Pawn, Pawn))
	}
}

// pawnMoves adds every push, double push and capture. Promotions expand into
// all four pieces.
func (s *moveSink) pawnMoves(p *Position, own, opp uint64) {
	var geo = &pawnGeometries[p.SideToMove()]
	var occ = p.White | p.Black
	for x := p.Pawns & own; x != 0; x &= x - 1 {
		var from = FirstOne(x)
		var promoting = SquareMask[from]&geo.lastRank != 0
		if to := from + geo.push; SquareMask[to]&occ == 0 {
			s.addPawn(makeMove(from, to, Pawn, Empty), promoting)
			if SquareMask[from]&geo.startRank != 0 && SquareMask[to+geo.push]&occ == 0 {
				s.add(makeMove(from, to+geo.push, Pawn, Empty))
			}
		}
		for t := PawnAttacks(from, p.WhiteMove) & opp; t != 0; t &= t - 1 {
			var to = FirstOne(t)
			s.addPawn(makeMove(from, to, Pawn, p.WhatPiece(to)), promoting)
		}
	}
}

// pawnCaptures adds captures and queen promotions, quiet ones included.
func (s *moveSink) pawnCaptures(p *Position, own, opp uint64) {
	var geo = &pawnGeometries[p.SideToMove()]
	var occ = p.White | p.Black
	for x := p.Pawns & own; x != 0; x &= x - 1 {
		var from = FirstOne(x)
		var targets = PawnAttacks(from, p.WhiteMove) & opp
		var promotion = Empty
		if SquareMask[from]&geo.lastRank != 0 {
			promotion = Queen
			if to := from + geo.push; SquareMask[to]&occ == 0 {
				s.add(makePawnMove(from, to, Empty, promotion))
			}
		}
		for ; targets != 0; targets &= targets - 1 {
			var to = FirstOne(targets)
			s.add(makePawnMove(from, to, p.WhatPiece(to), promotion))
		}
	}
}

func (s *moveSink) pieceMoves(p *Position, own, target uint64) {
	var occ = p.White | p.Black
	for piece := Knight; piece <= Queen; piece++ {
		for x := *p.pieceBoard(piece) & own; x != 0; x &= x - 1 {
			var from = FirstOne(x)
			for t := pieceAttacks(piece, from, occ) & target; t != 0; t &= t - 1 {
				var to = FirstOne(t)
				s.add(makeMove(from, to, piece, p.WhatPiece(to)))
			}
		}
	}
}

func (s *moveSink) kingMoves(p *Position, from int, target uint64) {
	for t := KingAttacks[from] & target; t != 0; t &= t - 1 {
		var to = FirstOne(t)
		s.add(makeMove(from, to, King, p.WhatPiece(to)))
	}
}

// castles checks rights, empty squares and that the king neither stands in
// nor crosses an attack. The destination is checked by the legality filter.
func (s *moveSink) castles(p *Position) {
	if p.Checkers != 0 {
		return
	}
	var occ = p.White | p.Black
	for i := range castlings {
		var c = &castlings[i]
		if c.side == p.WhiteMove && p.CastleRights&c.right != 0 &&
			occ&c.empty == 0 && !p.isAttackedBySide(c.transit, !p.WhiteMove) {
			s.add(c.move)
		}
	}
}

func generatePseudoMoves(ml []Move, p *Position) []Move {
	var own, opp = p.PiecesByColor(p.WhiteMove), p.PiecesByColor(!p.WhiteMove)
	var kingSq = FirstOne(p.Kings & own)
	// in check, pieces other than king and pawns may only capture or block
	var target = ^own
	if p.Checkers != 0 {
		target = p.Checkers | betweenMask[FirstOne(p.Checkers)][kingSq]
	}
	var s = moveSink{ml: ml}
	s.enPassant(p, own)
	s.pawnMoves(p, own, opp)
	s.pieceMoves(p, own, target)
	s.kingMoves(p, kingSq, ^own)
	s.castles(p)
	return s.moves()
}

func generatePseudoCaptures(ml []Move, p *Position) []Move {
	var own, opp = p.PiecesByColor(p.WhiteMove), p.PiecesByColor(!p.WhiteMove)
	var s = moveSink{ml: ml}
	s.enPassant(p, own)
	s.pawnCaptures(p, own, opp)
	s.pieceMoves(p, own, opp)
	s.kingMoves(p, FirstOne(p.Kings&own), opp)
	return s.moves()
}

// GenerateMoves writes the legal moves of p into ml.
func GenerateMoves(ml []Move, p *Position) []Move {
	return p.filterLegal(generatePseudoMoves(ml, p))
}

// GenerateCaptures writes the legal captures and queen promotions of p into ml.
func GenerateCaptures(ml []Move, p *Position) []Move {
	return p.filterLegal(generatePseudoCaptures(ml, p))
}

func GenerateLegalMoves(p *Position) []Move {
	var buffer [MoveBufferSize]Move
	return append([]Move(nil), GenerateMoves(buffer[:], p)...)
}

func (p *Position) filterLegal(ml []Move) []Move {
	var own, enemy = p.PiecesByColor(p.WhiteMove), p.PiecesByColor(!p.WhiteMove)
	var kingSq = FirstOne(p.Kings & own)
	var pinned = p.pinnedPieces(kingSq, own, enemy)
	var legal = ml[:0]
	for _, mv := range ml {
		if p.isLegalMove(mv, kingSq, pinned) {
			legal = append(legal, mv)
		}
	}
	return legal
}

func (p *Position) isLegalMove(mv Move, kingSq int, pinned uint64) bool {
	var from, to = mv.From(), mv.To()
	switch {
	case from == kingSq:
		var occ = (p.White | p.Black) ^ SquareMask[from]
		return !p.attackedWithOccupancy(to, !p.WhiteMove, occ, SquareMask[to])
	case mv.MovingPiece() == Pawn && to == p.EpSquare:
		// the captured pawn leaves its own square, so pins do not cover it
		var child Position
		return p.MakeMove(mv, &child)
	case pinned&SquareMask[from] != 0 && lineMask[kingSq][from]&SquareMask[to] == 0:
		return false
	case p.Checkers == 0:
		return true
	case MoreThanOne(p.Checkers):
		return false
	}
	return SquareMask[to]&(p.Checkers|betweenMask[FirstOne(p.Checkers)][kingSq]) != 0
}
