package engine

import (
	"math"

	. "github.com/corvidchess/corvid/pkg/common"
)

var reductions [64][64]int

func init() {
	initLmr(&reductions, lmrMult)
}

func lmr(d, m int) int {
	return reductions[Min(d, 63)][Min(m, 63)]
}

func initLmr(reductions *[64][64]int,
	f func(d, m float64) float64) {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			var r = f(float64(d), float64(m))
			reductions[d][m] = int(r)
		}
	}
}

func lmrMult(d, m float64) float64 {
	return lirp(math.Log(d)*math.Log(m), math.Log(5)*math.Log(22), math.Log(63)*math.Log(63), 3, 8)
}

func lirp(x, x1, x2, y1, y2 float64) float64 {
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}
