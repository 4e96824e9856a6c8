package common

import (
	"math/bits"
	"testing"
)

func TestMoreThanOne(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"far one", 1 << 5, false},
		{"farer one", 1 << 60, false},
		{"two ones", 3, true},
		{"two ones apart", 1<<6 | 1<<25, true},
		{"three ones apart", 1<<6 | 1<<25 | 1<<36, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoreThanOne(tt.value); got != tt.want {
				t.Errorf("MoreThanOne(%064b) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestFirstOne(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
	}{
		{"A", FileAMask},
		{"H", FileHMask},
		{"1", Rank1Mask},
		{"8", Rank8Mask},
		{"bishop", 0x0004085000500800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, want := FirstOne(tt.value), bits.TrailingZeros64(tt.value); got != want {
				t.Errorf("FirstOne(%064b) = %d, want %d", tt.value, got, want)
			}
		})
	}
}

func TestLineAndBetween(t *testing.T) {
	tests := []struct {
		s1, s2  int
		between uint64
		line    uint64
	}{
		{SquareA1, SquareH8, 0x0040201008040200, 0x8040201008040201},
		{SquareA1, SquareA8, FileAMask &^ (SquareMask[SquareA1] | SquareMask[SquareA8]), FileAMask},
		{SquareC2, SquareE2, SquareMask[SquareD2], Rank2Mask},
		{SquareA1, SquareB3, 0, 0},
	}
	for _, tt := range tests {
		if got := betweenMask[tt.s1][tt.s2]; got != tt.between {
			t.Errorf("between %v %v = %v", SquareName(tt.s1), SquareName(tt.s2), BitboardString(got))
		}
		if got := lineMask[tt.s1][tt.s2]; got != tt.line {
			t.Errorf("line %v %v = %v", SquareName(tt.s1), SquareName(tt.s2), BitboardString(got))
		}
		if lineMask[tt.s1][tt.s2] != lineMask[tt.s2][tt.s1] {
			t.Errorf("line %v %v not symmetric", SquareName(tt.s1), SquareName(tt.s2))
		}
	}
}
