package common

import "lukechampine.com/frand"

// Zobrist keys. A fixed seed keeps hash keys stable between runs.
var (
	sideKey      uint64
	enpassantKey [8]uint64
	castlingKey  [16]uint64
	pieceKeys    [2][King + 1][64]uint64
)

var zobristSeed = []byte("corvid zobrist hashing key seed!")

func sideIndex(side bool) int {
	if side {
		return SideWhite
	}
	return SideBlack
}

func PieceSquareKey(piece int, side bool, square int) uint64 {
	return pieceKeys[sideIndex(side)][piece][square]
}

func (p *Position) computeKey() uint64 {
	var key = castlingKey[p.CastleRights]
	if p.WhiteMove {
		key ^= sideKey
	}
	if p.EpSquare != SquareNone {
		key ^= enpassantKey[File(p.EpSquare)]
	}
	for x := p.White | p.Black; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var piece, side = p.GetPieceTypeAndSide(sq)
		key ^= PieceSquareKey(piece, side, sq)
	}
	return key
}

func initZobrist() {
	var rng = frand.NewCustom(zobristSeed, 1024, 12)
	sideKey = rng.Uint64n(^uint64(0))
	for i := range enpassantKey {
		enpassantKey[i] = rng.Uint64n(^uint64(0))
	}
	for side := range pieceKeys {
		for piece := Pawn; piece <= King; piece++ {
			for sq := range pieceKeys[side][piece] {
				pieceKeys[side][piece][sq] = rng.Uint64n(^uint64(0))
			}
		}
	}
	// rights combine by xor so a single lookup covers any change of flags
	var flags [4]uint64
	for i := range flags {
		flags[i] = rng.Uint64n(^uint64(0))
	}
	for rights := range castlingKey {
		for bit := range flags {
			if rights&(1<<bit) != 0 {
				castlingKey[rights] ^= flags[bit]
			}
		}
	}
}
