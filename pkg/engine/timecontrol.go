package engine

import (
	"sync"
	"sync/atomic"
	"time"

	. "github.com/corvidchess/corvid/pkg/common"
)

// Clock decides how long a search may run.
type Clock interface {
	Start()
	Elapsed() time.Duration
	Infinite() bool
	// CanSearchDeeper reports whether a new iteration is worth starting.
	CanSearchDeeper() bool
	// CheckTimeBudget reports whether the search must stop now.
	CheckTimeBudget() bool
}

const (
	defaultMovesToGo = 35
	bookExitMoves    = 10
)

// TimeControl is a Clock driven by the go command parameters.
// The infinite flag may be cleared while a search runs.
type TimeControl struct {
	mu           sync.Mutex
	start        time.Time
	softLimit    time.Duration
	hardLimit    time.Duration
	moveOverhead time.Duration
	infinite     atomic.Bool
}

func NewTimeControl() *TimeControl {
	return &TimeControl{
		start:        time.Now(),
		moveOverhead: 25 * time.Millisecond,
	}
}

func (tc *TimeControl) SetMoveOverhead(ms int) {
	tc.mu.Lock()
	tc.moveOverhead = time.Duration(Max(0, ms)) * time.Millisecond
	tc.mu.Unlock()
}

// Go sets a fixed budget of maxTime milliseconds. Zero or less means no limit.
func (tc *TimeControl) Go(maxTime int, infinite bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.start = time.Now()
	tc.softLimit = 0
	tc.hardLimit = 0
	if maxTime > 0 {
		tc.hardLimit = time.Duration(maxTime) * time.Millisecond
		tc.softLimit = tc.hardLimit
	}
	tc.infinite.Store(infinite)
}

// GoClock budgets from the remaining clock time in milliseconds.
// The first moves after leaving the book get extra time.
func (tc *TimeControl) GoClock(maxTime, opponentTime, increment, movesToGo, movesOutOfBook int, infinite bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.start = time.Now()
	var main = time.Duration(maxTime) * time.Millisecond
	var inc = time.Duration(increment) * time.Millisecond
	var soft, hard = calcLimits(main, inc, movesToGo, tc.moveOverhead)
	if movesOutOfBook < bookExitMoves {
		soft += soft * time.Duration(bookExitMoves-movesOutOfBook) / (2 * bookExitMoves)
	}
	if opponentTime > 0 && maxTime > opponentTime {
		soft += time.Duration(maxTime-opponentTime) * time.Millisecond / defaultMovesToGo
	}
	tc.softLimit = limitDuration(soft, time.Millisecond, hard)
	tc.hardLimit = hard
	tc.infinite.Store(infinite)
}

func (tc *TimeControl) Start() {
	tc.mu.Lock()
	tc.start = time.Now()
	tc.mu.Unlock()
}

func (tc *TimeControl) Elapsed() time.Duration {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return time.Since(tc.start)
}

func (tc *TimeControl) Infinite() bool {
	return tc.infinite.Load()
}

func (tc *TimeControl) SetInfinite(infinite bool) {
	tc.infinite.Store(infinite)
}

func (tc *TimeControl) Limits() (soft, hard time.Duration) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.softLimit, tc.hardLimit
}

func (tc *TimeControl) CanSearchDeeper() bool {
	if tc.Infinite() {
		return true
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.softLimit == 0 || time.Since(tc.start) < tc.softLimit
}

func (tc *TimeControl) CheckTimeBudget() bool {
	if tc.Infinite() {
		return false
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.hardLimit != 0 && time.Since(tc.start) >= tc.hardLimit
}

func calcLimits(main, inc time.Duration, moves int, moveOverhead time.Duration) (soft, hard time.Duration) {
	const MinTimeLimit = 1 * time.Millisecond

	main -= moveOverhead
	if main < MinTimeLimit {
		main = MinTimeLimit
	}

	if moves == 0 {
		var ideal = main/defaultMovesToGo + inc/2
		soft = ideal * 7 / 10
		hard = ideal * 21 / 10
	} else {
		moves = Min(moves, defaultMovesToGo)
		soft = (main/time.Duration(moves+1) + inc) * 7 / 10
		hard = (main/time.Duration(moves+1) + inc) * 21 / 10
	}

	hard = limitDuration(hard, MinTimeLimit, main)
	soft = limitDuration(soft, MinTimeLimit, main)

	return
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
