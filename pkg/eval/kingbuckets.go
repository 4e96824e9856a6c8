package eval

import (
	. "github.com/corvidchess/corvid/pkg/common"
)

// KingBucketCount is the number of piece-square sub-tables per piece.
const KingBucketCount = 8

// Squares are relative to the king's own side, rank 1 being its back rank.
var kingBucket = [64]int8{
	0, 0, 0, 1, 1, 2, 2, 2,
	3, 3, 3, 4, 4, 5, 5, 5,
	6, 6, 6, 6, 6, 6, 6, 6,
	7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7,
}

// A representative king square of every bucket, in the king's own frame.
var bucketCenter = [KingBucketCount]int{
	SquareB1, SquareE1, SquareG1, SquareB2, SquareE2, SquareG2, SquareD3, SquareD5,
}

// KingBuckets selects the piece-square sub-tables for one side:
// Friendly by the side's own king, Enemy by the opposing king.
type KingBuckets struct {
	Friendly int8
	Enemy    int8
}

// NewKingBuckets returns the buckets of side given both kings' squares.
func NewKingBuckets(side, friendlyKing, enemyKing int) KingBuckets {
	return KingBuckets{
		Friendly: kingBucket[RelativeSquare(side, friendlyKing)],
		Enemy:    kingBucket[RelativeSquare(side^1, enemyKing)],
	}
}

// KingBucketsOf returns the buckets of the side to move.
func KingBucketsOf(p *Position) KingBuckets {
	var wk = FirstOne(p.Kings & p.White)
	var bk = FirstOne(p.Kings & p.Black)
	if p.WhiteMove {
		return NewKingBuckets(SideWhite, wk, bk)
	}
	return NewKingBuckets(SideBlack, bk, wk)
}

// Flip returns the buckets as seen by the opponent.
func (kb KingBuckets) Flip() KingBuckets {
	return KingBuckets{Friendly: kb.Enemy, Enemy: kb.Friendly}
}
