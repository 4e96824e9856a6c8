package engine

import (
	. "github.com/corvidchess/corvid/pkg/common"
)

// Reporter receives search progress and the final move.
type Reporter interface {
	Info(si SearchInfo)
	BestMove(best, ponder Move)
}
