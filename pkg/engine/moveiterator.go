package engine

import (
	. "github.com/corvidchess/corvid/pkg/common"
	"github.com/corvidchess/corvid/pkg/movelist"
)

const (
	killer1Score    = movelist.PromoteBonus - 1
	killer2Score    = movelist.PromoteBonus - 2
	badCaptureScore = -4 * historyMax
)

// moveIterator yields the hash move first, then the rest best first:
// good captures, promotions, killers, quiets and losing captures.
type moveIterator struct {
	ml        *movelist.MoveList
	transMove Move
	killer1   Move
	killer2   Move
	hashDone  bool
	index     int
}

func (mi *moveIterator) Init(p *Position, history movelist.History) {
	var ml = mi.ml
	ml.Init(history, p.WhiteMove)
	var buffer [MoveBufferSize]Move
	for _, m := range GenerateMoves(buffer[:], p) {
		switch {
		case m.IsCapture():
			if seeGEZero(p, m) {
				ml.Add(m)
			} else {
				ml.AddScored(m, badCaptureScore+movelist.CaptureScore(m)-movelist.CaptureBonus)
			}
		case m == mi.killer1 && !m.IsPromotion():
			ml.AddScored(m, killer1Score)
		case m == mi.killer2 && !m.IsPromotion():
			ml.AddScored(m, killer2Score)
		default:
			ml.Add(m)
		}
	}
	mi.hashDone = mi.transMove == MoveEmpty || !ml.Remove(mi.transMove)
	mi.index = 0
}

func (mi *moveIterator) Next() (movelist.GenMove, bool) {
	if !mi.hashDone {
		mi.hashDone = true
		return movelist.GenMove{Move: mi.transMove, Phase: movelist.PhaseHash}, true
	}
	if mi.index >= mi.ml.Count() {
		return movelist.GenMove{}, false
	}
	var m = mi.ml.Sort(mi.index)
	var score = mi.ml.At(mi.index).Score
	mi.index++
	var phase = movelist.PhaseOf(m)
	switch {
	case m.IsCapture() && score < movelist.CaptureBonus:
		phase = movelist.PhaseBadCaptures
	case score == killer1Score || score == killer2Score:
		phase = movelist.PhaseKillers
	}
	return movelist.GenMove{Move: m, Phase: phase}, true
}

// moveIteratorQS yields captures best first, or every evasion when in check.
type moveIteratorQS struct {
	ml    *movelist.MoveList
	index int
}

func (mi *moveIteratorQS) Init(p *Position) {
	mi.ml.Init(nil, p.WhiteMove)
	if p.IsCheck() {
		mi.ml.Generate(p)
	} else {
		mi.ml.GenerateCaptures(p)
	}
	mi.index = 0
}

func (mi *moveIteratorQS) Next() Move {
	if mi.index >= mi.ml.Count() {
		return MoveEmpty
	}
	var m = mi.ml.Sort(mi.index)
	mi.index++
	return m
}
