package engine

import (
	"testing"

	. "github.com/corvidchess/corvid/pkg/common"
)

func TestSEE(t *testing.T) {
	var tests = []struct {
		fen  string
		move string
		gain int
	}{
		{"4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", 1},
		{"4k3/8/2p5/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", 0},
		{"4k3/8/2p5/3p4/8/8/3Q4/4K3 w - - 0 1", "d2d5", -11},
		{"4k3/8/8/3r4/8/8/3R4/3RK3 w - - 0 1", "d2d5", 6},
		{"4k3/8/4n3/3p4/8/2N5/8/4K3 w - - 0 1", "c3d5", 1},
	}
	for _, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(err)
		}
		var move, ok = ParseMoveLAN(&p, test.move)
		if !ok {
			t.Fatal(test.fen, test.move)
		}
		if !SeeGE(&p, move, test.gain) || SeeGE(&p, move, test.gain+1) {
			t.Error(test.fen, test.move, test.gain)
		}
	}
}
