package eval

import "fmt"

// Score packs an opening and an endgame value into one integer,
// so that both halves are summed in a single addition.
type Score int64

func (s Score) Mg() int {
	return int(int32((s + 1<<31) >> 32))
}

func (s Score) Eg() int {
	return int(int32(s))
}

func S(middle, end int) Score {
	return Score(middle)<<32 + Score(end)
}

// Normalize blends the halves by phase, where MaxPhase is the opening.
func (s Score) Normalize(phase int) int {
	return (s.Mg()*phase + s.Eg()*(MaxPhase-phase)) / MaxPhase
}

func (s Score) String() string {
	return fmt.Sprintf("Score(%d, %d)", s.Mg(), s.Eg())
}
