package engine

import (
	"testing"

	. "github.com/corvidchess/corvid/pkg/common"
)

func TestHistoryBounded(t *testing.T) {
	var h = NewHistory()
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var moves = GenerateLegalMoves(&p)
	var best = moves[len(moves)-1]
	for i := 0; i < 1000; i++ {
		h.Update(true, moves, best, 20)
	}
	for _, m := range moves {
		var score = h.Score(true, m.MovingPiece(), m.To())
		if score > historyMax || score < -historyMax {
			t.Fatal(m, score)
		}
		if m == best && score <= 0 {
			t.Error("best move not rewarded", score)
		}
		if m != best && m.MovingPiece() == Knight && score >= 0 {
			t.Error("searched move not penalized", m, score)
		}
	}
	if h.Score(false, best.MovingPiece(), best.To()) != 0 {
		t.Error("other side updated")
	}
	h.Clear()
	if h.Score(true, best.MovingPiece(), best.To()) != 0 {
		t.Error("not cleared")
	}
}

func TestEvalCache(t *testing.T) {
	var c = newEvalCache(1)
	var key = uint64(0x123456789abcdef0)
	if _, ok := c.get(key); ok {
		t.Fatal("hit in empty cache")
	}
	for _, v := range []int{0, 1, -1, 1500, -30000} {
		c.put(key, v)
		if got, ok := c.get(key); !ok || got != v {
			t.Error(v, got, ok)
		}
	}
	c.clear()
	if _, ok := c.get(key); ok {
		t.Error("hit after clear")
	}
}
