package engine

import (
	"testing"

	. "github.com/corvidchess/corvid/pkg/common"
)

func TestTransTable(t *testing.T) {
	var tt = NewTransTable(1)
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var move = NewMoveFromSquares(&p, SquareE2, SquareE4, Empty)

	if _, _, _, _, ok := tt.Read(p.Key); ok {
		t.Fatal("hit in empty table")
	}
	tt.Update(p.Key, 5, 42, boundExact, move)
	var depth, score, bound, ttMove, ok = tt.Read(p.Key)
	if !ok || depth != 5 || score != 42 || bound != boundExact || ttMove != move {
		t.Error(depth, score, bound, ttMove, ok)
	}
	if _, _, _, _, ok := tt.Read(p.Key ^ (1 << 40)); ok {
		t.Error("hit on other key")
	}
	if tt.Usage() < 0 || tt.Usage() > 1000 {
		t.Error(tt.Usage())
	}

	tt.Clear()
	if _, _, _, _, ok := tt.Read(p.Key); ok {
		t.Error("hit after clear")
	}

	tt.Update(p.Key, 5, 42, boundExact, move)
	tt.Resize(2)
	if tt.Size() != 2 {
		t.Error(tt.Size())
	}
	if _, _, _, _, ok := tt.Read(p.Key); ok {
		t.Error("hit after resize")
	}
}

func TestTransTableUsage(t *testing.T) {
	var tt = NewTransTable(1)
	for i := 0; i < len(tt.entries); i++ {
		tt.Update(uint64(i)|uint64(i+1)<<32, 1, 0, boundLower, MoveEmpty)
	}
	if tt.Usage() != 1000 {
		t.Error(tt.Usage())
	}
	tt.NewSearch()
	if tt.Usage() != 0 {
		t.Error(tt.Usage())
	}
	tt.Clear()
	if tt.Usage() != 0 {
		t.Error(tt.Usage())
	}
}

func TestValueToTT(t *testing.T) {
	for _, v := range []int{0, 100, -250, winIn(5), lossIn(7)} {
		for height := 0; height < 10; height++ {
			if got := valueFromTT(valueToTT(v, height), height); got != v {
				t.Error(v, height, got)
			}
		}
	}
}
