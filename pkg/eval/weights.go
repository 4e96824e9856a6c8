package eval

import (
	"sync"

	. "github.com/corvidchess/corvid/pkg/common"
)

// Weights is shared read-only by all evaluations once loaded.
// Squares are relative to the owner of the piece.
type Weights struct {
	PieceValues [King + 1]Score
	FriendlyPst [King + 1][KingBucketCount][64]Score
	EnemyPst    [King + 1][KingBucketCount][64]Score
}

func (w *Weights) PieceValue(piece int) Score {
	return w.PieceValues[piece]
}

func (w *Weights) FriendlyPieceSquareValue(piece int, kb KingBuckets, sq int) Score {
	return w.FriendlyPst[piece][kb.Friendly][sq]
}

func (w *Weights) EnemyPieceSquareValue(piece int, kb KingBuckets, sq int) Score {
	return w.EnemyPst[piece][kb.Enemy][sq]
}

func (w *Weights) forEach(f func(s *Score)) {
	for piece := range w.PieceValues {
		f(&w.PieceValues[piece])
	}
	for piece := range w.FriendlyPst {
		for bucket := range w.FriendlyPst[piece] {
			for sq := range w.FriendlyPst[piece][bucket] {
				f(&w.FriendlyPst[piece][bucket][sq])
			}
		}
	}
	for piece := range w.EnemyPst {
		for bucket := range w.EnemyPst[piece] {
			for sq := range w.EnemyPst[piece][bucket] {
				f(&w.EnemyPst[piece][bucket][sq])
			}
		}
	}
}

var (
	defaultOnce    sync.Once
	defaultWeights *Weights
)

// DefaultWeights returns the built-in weights.
func DefaultWeights() *Weights {
	defaultOnce.Do(func() {
		defaultWeights = buildDefaultWeights()
	})
	return defaultWeights
}

func buildDefaultWeights() *Weights {
	var w = &Weights{}
	for piece := Pawn; piece <= King; piece++ {
		w.PieceValues[piece] = S(materialMg[piece], materialEg[piece])
		for bucket := 0; bucket < KingBucketCount; bucket++ {
			var king = bucketCenter[bucket]
			// enemy king as seen from the friendly side
			var enemyKing = FlipSquare(king)
			for sq := 0; sq < 64; sq++ {
				var mg, eg = pstMg[piece][sq], pstEg[piece][sq]
				if piece == Pawn && Rank(king) == Rank1 &&
					FileDistance(sq, king) <= 1 && Rank(sq) <= Rank3 {
					mg += shieldBonus[Rank(sq)]
				}
				w.FriendlyPst[piece][bucket][sq] = S(mg, eg)
				w.EnemyPst[piece][bucket][sq] = S(tropism[piece]*(7-SquareDistance(sq, enemyKing)), 0)
			}
		}
	}
	return w
}

var (
	materialMg  = [King + 1]int{0, 100, 320, 330, 500, 900, 0}
	materialEg  = [King + 1]int{0, 120, 290, 310, 540, 950, 0}
	tropism     = [King + 1]int{0, 0, 2, 1, 1, 3, 0}
	shieldBonus = [8]int{0, 12, 6, 0, 0, 0, 0, 0}
)

// Tables are laid out from a1 to h8.
var pstMg = [King + 1][64]int{
	Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		-5, 10, 10, -20, -20, 10, 10, -5,
		0, 0, -10, 5, 5, 0, 0, 0,
		0, -10, 10, 20, 20, 10, 5, 0,
		10, 10, 15, 25, 25, 15, 10, 10,
		15, 15, 20, 30, 30, 20, 15, 15,
		30, 30, 30, 40, 40, 30, 30, 30,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	Knight: {
		-30, -20, -10, -10, -10, -10, -20, -30,
		-20, -10, 5, 5, 5, 5, -10, -20,
		-20, 5, 15, 15, 15, 15, 5, -20,
		-10, 5, 15, 20, 20, 15, 5, -10,
		-10, 5, 15, 25, 25, 15, 5, -10,
		-20, 5, 10, 15, 15, 10, 5, -20,
		-20, 0, 0, 0, 0, 0, 0, -20,
		-30, -10, -10, -10, -10, -10, -20, -30,
	},
	Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 10, 5, 5, 5, 5, 10, -10,
		-10, 5, 5, 15, 15, 5, 5, -10,
		-10, 5, 5, 15, 15, 5, 5, -10,
		-10, 5, 10, 20, 20, 10, 5, -10,
		-10, 10, 10, 15, 15, 10, 10, -10,
		-10, 10, 5, 5, 5, 5, 10, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	Rook: {
		0, 0, 5, 10, 10, 5, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		10, 15, 15, 20, 20, 15, 15, 10,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 5, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	King: {
		30, 20, 5, -10, -10, 5, 20, 30,
		10, 10, -15, -30, -30, -15, 10, 10,
		-20, -20, -20, -20, -20, -20, -20, -20,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

var pstEg = [King + 1][64]int{
	Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		10, 10, 10, 10, 10, 10, 10, 10,
		20, 20, 20, 20, 20, 20, 20, 20,
		30, 30, 30, 30, 30, 30, 30, 30,
		40, 40, 40, 40, 40, 40, 40, 40,
		60, 60, 60, 60, 60, 60, 60, 60,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	Knight: {
		-20, -10, -5, -5, -5, -5, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 5, -10,
		-5, 5, 5, 10, 10, 5, 5, -5,
		-5, 5, 5, 10, 10, 5, 5, -5,
		-10, 5, 5, 5, 5, 5, 5, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -5, -5, -5, -5, -10, -20,
	},
	Bishop: {
		-10, -5, -5, -5, -5, -5, -5, -10,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-10, -5, -5, -5, -5, -5, -5, -10,
	},
	Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		15, 20, 20, 25, 25, 20, 20, 15,
		10, 10, 10, 10, 10, 10, 10, 10,
	},
	Queen: {},
	King: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 10, 20, 20, 10, 0, -10,
		-10, 0, 10, 30, 30, 10, 0, -10,
		-10, 0, 10, 30, 30, 10, 0, -10,
		-10, 0, 10, 20, 20, 10, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
}
