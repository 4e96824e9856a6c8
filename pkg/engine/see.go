package engine

import (
	. "github.com/corvidchess/corvid/pkg/common"
)

// Exchange values in pawns; the king is worth more than everything else together.
var seeValues = [King + 1]int{Pawn: 1, Knight: 4, Bishop: 4, Rook: 6, Queen: 12, King: 120}

func seeGEZero(p *Position, move Move) bool {
	return SeeGE(p, move, 0)
}

// SeeGE reports whether the static exchange on the target square of move
// gains at least threshold pawns for the side to move.
func SeeGE(p *Position, move Move, threshold int) bool {
	return staticExchange(p, move) >= threshold
}

// staticExchange plays out the capture sequence on the target square with
// least valuable attackers first, letting either side stand pat.
func staticExchange(p *Position, move Move) int {
	var from, to = move.From(), move.To()
	var gain [32]int
	var onSquare = move.MovingPiece()

	gain[0] = seeValues[move.CapturedPiece()]
	if promotion := move.Promotion(); promotion != Empty {
		gain[0] += seeValues[promotion] - seeValues[Pawn]
		onSquare = promotion
	}

	var occ = (p.White | p.Black) &^ SquareMask[from]
	if move.MovingPiece() == Pawn && to == p.EpSquare {
		occ &^= SquareMask[MakeSquare(File(to), Rank(from))]
	}
	var diagonal = p.Bishops | p.Queens
	var straight = p.Rooks | p.Queens
	var attackers = exchangeAttackers(p, to, occ) & occ
	var side = !p.WhiteMove

	var depth = 0
	for depth+1 < len(gain) {
		var mine = attackers & p.PiecesByColor(side)
		if mine == 0 {
			break
		}
		var piece, sq = leastValuable(p, mine)
		occ &^= SquareMask[sq]
		// removing a piece may uncover a slider behind it
		attackers |= BishopAttacks(to, occ)&diagonal | RookAttacks(to, occ)&straight
		attackers &= occ
		if piece == King && attackers&p.PiecesByColor(!side) != 0 {
			break
		}
		depth++
		gain[depth] = seeValues[onSquare] - gain[depth-1]
		onSquare = piece
		side = !side
	}
	for ; depth > 0; depth-- {
		gain[depth-1] = -Max(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

func exchangeAttackers(p *Position, sq int, occ uint64) uint64 {
	return PawnAttacks(sq, true)&p.Pawns&p.Black |
		PawnAttacks(sq, false)&p.Pawns&p.White |
		KnightAttacks[sq]&p.Knights |
		KingAttacks[sq]&p.Kings |
		BishopAttacks(sq, occ)&(p.Bishops|p.Queens) |
		RookAttacks(sq, occ)&(p.Rooks|p.Queens)
}

func leastValuable(p *Position, attackers uint64) (piece, sq int) {
	for piece = Pawn; piece <= King; piece++ {
		var candidates = attackers & pieceBitboard(p, piece)
		if candidates != 0 {
			return piece, FirstOne(candidates)
		}
	}
	return Empty, SquareNone
}

func pieceBitboard(p *Position, piece int) uint64 {
	switch piece {
	case Pawn:
		return p.Pawns
	case Knight:
		return p.Knights
	case Bishop:
		return p.Bishops
	case Rook:
		return p.Rooks
	case Queen:
		return p.Queens
	case King:
		return p.Kings
	}
	return 0
}
