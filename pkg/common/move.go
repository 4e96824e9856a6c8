package common

import "strings"

// Move packs from, to, moving piece, captured piece and promotion into 21 bits.
type Move int32

const MoveEmpty = Move(0)

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15))
}

func makePawnMove(from, to, capturedPiece, promotion int) Move {
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (capturedPiece << 15) ^ (promotion << 18))
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) MovingPiece() int {
	return int((m >> 12) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 15) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 18) & 7)
}

func (m Move) IsCapture() bool {
	return m.CapturedPiece() != Empty
}

func (m Move) IsPromotion() bool {
	return m.Promotion() != Empty
}

func (m Move) IsCaptureOrPromotion() bool {
	return m.CapturedPiece() != Empty || m.Promotion() != Empty
}

func (m Move) IsCastle() bool {
	return m.MovingPiece() == King && AbsDelta(m.From(), m.To()) == 2
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// ParseMoveLAN finds the pseudo-legal move of p written in long algebraic notation.
// The move may still leave the own king in check.
func ParseMoveLAN(p *Position, lan string) (Move, bool) {
	if len(lan) < 4 || len(lan) > 5 {
		return MoveEmpty, false
	}
	var buffer [MoveBufferSize]Move
	for _, mv := range generatePseudoMoves(buffer[:], p) {
		if strings.EqualFold(mv.String(), lan) {
			return mv, true
		}
	}
	return MoveEmpty, false
}

// NewMoveFromSquares rebuilds a move of p from its squares and promotion piece.
func NewMoveFromSquares(p *Position, from, to, promotion int) Move {
	var buffer [MoveBufferSize]Move
	for _, mv := range GenerateMoves(buffer[:], p) {
		if mv.From() == from && mv.To() == to && mv.Promotion() == promotion {
			return mv
		}
	}
	return MoveEmpty
}
