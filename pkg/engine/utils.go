package engine

import (
	. "github.com/corvidchess/corvid/pkg/common"
)

const (
	stackSize = 128
	maxHeight = stackSize - 1
)

// Search values. Scores beyond valueWin encode a mate distance in plies.
const (
	valueDraw     = 0
	ValueMate     = 30000
	valueInfinity = ValueMate + 1
	valueWin      = ValueMate - 2*maxHeight
	valueLoss     = -valueWin
)

func winIn(height int) int  { return ValueMate - height }
func lossIn(height int) int { return height - ValueMate }

func isMateValue(v int) bool {
	return v >= valueWin || v <= valueLoss
}

// valueToTT makes mate scores relative to the stored node instead of the root.
func valueToTT(v, height int) int {
	switch {
	case v >= valueWin:
		return v + height
	case v <= valueLoss:
		return v - height
	}
	return v
}

func valueFromTT(v, height int) int {
	switch {
	case v >= valueWin:
		return v - height
	case v <= valueLoss:
		return v + height
	}
	return v
}

// NewUciScore converts a search value into centipawns or moves to mate.
func NewUciScore(v int) UciScore {
	if !isMateValue(v) {
		return UciScore{Centipawns: v}
	}
	if v > 0 {
		return UciScore{Mate: (ValueMate - v + 1) / 2}
	}
	return UciScore{Mate: -(ValueMate + v) / 2}
}

// isLateEndgame reports whether side has at most one minor piece, where
// zugzwang makes null move pruning unsound.
func isLateEndgame(p *Position, side bool) bool {
	var own = p.PiecesByColor(side)
	return (p.Rooks|p.Queens)&own == 0 && !MoreThanOne((p.Knights|p.Bishops)&own)
}
