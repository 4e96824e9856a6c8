package engine

import (
	"sync/atomic"

	. "github.com/corvidchess/corvid/pkg/common"
	"github.com/corvidchess/corvid/pkg/movelist"
)

const historyMax = movelist.HistoryMax

// History is the quiet move history shared by all search threads.
// Cells are accessed atomically; concurrent updates may lose a write.
type History struct {
	table [2][King + 1][64]int32
}

func NewHistory() *History {
	return &History{}
}

func sideIndex(white bool) int {
	if white {
		return SideWhite
	}
	return SideBlack
}

func (h *History) Score(white bool, piece, to int) int {
	return int(atomic.LoadInt32(&h.table[sideIndex(white)][piece][to]))
}

// Update rewards bestMove and penalizes the quiet moves searched before it.
func (h *History) Update(white bool, quietsSearched []Move, bestMove Move, depth int) {
	var bonus = Min(depth*depth, 400)
	var side = sideIndex(white)
	for _, m := range quietsSearched {
		var good = m == bestMove
		updateHistory(&h.table[side][m.MovingPiece()][m.To()], bonus, good)
		if good {
			break
		}
	}
}

// Exponential moving average
func updateHistory(v *int32, bonus int, good bool) {
	var newVal int
	if good {
		newVal = historyMax
	} else {
		newVal = -historyMax
	}
	var old = int(atomic.LoadInt32(v))
	atomic.StoreInt32(v, int32(old+(newVal-old)*bonus/512))
}

func (h *History) Clear() {
	for side := range h.table {
		for piece := range h.table[side] {
			for sq := range h.table[side][piece] {
				atomic.StoreInt32(&h.table[side][piece][sq], 0)
			}
		}
	}
}
