package common

import (
	"strings"
	"unicode"

	"golang.org/x/exp/constraints"
)

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

func Clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parsePiece(ch rune) coloredPiece {
	var side = unicode.IsUpper(ch)
	var i = strings.IndexRune("pnbrqk", unicode.ToLower(ch))
	if i < 0 {
		return coloredPiece{Empty, false}
	}
	return coloredPiece{i + Pawn, side}
}
