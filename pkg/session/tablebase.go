package session

import (
	"github.com/corvidchess/corvid/pkg/common"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/tablebase"
)

// tbMaxPly bounds the principal variation read from the tablebase.
const tbMaxPly = 12

// probeRootTb asks the tablebase for the move that keeps the result of b.
func (s *Session) probeRootTb(b *common.Board) (common.Move, tablebase.WDL, bool) {
	if !s.options.SyzygyProbeRoot ||
		!s.tablebase.Initialized() ||
		b.PieceCount() > s.tablebase.MaxPieces() {
		return common.MoveEmpty, tablebase.Draw, false
	}
	var tp = tablebase.FromPosition(&b.Position)
	var result, ok = s.tablebase.ProbeRoot(&tp)
	if !ok {
		return common.MoveEmpty, tablebase.Draw, false
	}
	var move = common.NewMoveFromSquares(&b.Position, result.From, result.To, result.PromotionPiece())
	if move == common.MoveEmpty {
		s.log.Warn().
			Int("from", result.From).
			Int("to", result.To).
			Str("fen", b.String()).
			Msg("tablebase move not legal")
		return common.MoveEmpty, tablebase.Draw, false
	}
	return move, result.WDL, true
}

// probePvTb fills pv with tablebase moves from the current position and
// returns its length and the score of the root result.
func (s *Session) probePvTb(pv *[tbMaxPly]common.Move) (pvLen, score int, ok bool) {
	var move, wdl, found = s.probeRootTb(s.board)
	if !found {
		return 0, 0, false
	}
	var child = s.board.Clone(tbMaxPly)
	for found && pvLen < len(pv) {
		pv[pvLen] = move
		pvLen++
		if !child.MakeMove(move) {
			break
		}
		move, _, found = s.probeRootTb(child)
	}
	s.log.Debug().Stringer("wdl", wdl).Int("pv", pvLen).Msg("tablebase hit")
	return pvLen, tbScore(wdl, pvLen), true
}

// tbScore converts a root result into a mate score that is pvLen plies from
// mate. Results that the fifty move rule turns into draws count as draws.
func tbScore(wdl tablebase.WDL, pvLen int) int {
	switch wdl {
	case tablebase.Win:
		return engine.ValueMate - pvLen
	case tablebase.Loss:
		return -engine.ValueMate + pvLen
	}
	return 0
}
