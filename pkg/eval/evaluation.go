package eval

import (
	. "github.com/corvidchess/corvid/pkg/common"
)

const MaxPhase = 64

var phaseWeights = [King + 1]int{0, 0, 3, 3, 5, 10, 0}

// Evaluation is a material and king-bucketed piece-square evaluation.
// The game phase is kept incrementally, so one instance belongs to one board.
type Evaluation struct {
	weights *Weights
	phase   int
}

func NewEvaluation(weights *Weights) *Evaluation {
	return &Evaluation{weights: weights, phase: MaxPhase}
}

func (e *Evaluation) Weights() *Weights {
	return e.weights
}

func (e *Evaluation) Phase() int {
	return e.phase
}

// Init recomputes the phase of p from scratch.
func (e *Evaluation) Init(p *Position) {
	var phase = phaseWeights[Knight]*PopCount(p.Knights) +
		phaseWeights[Bishop]*PopCount(p.Bishops) +
		phaseWeights[Rook]*PopCount(p.Rooks) +
		phaseWeights[Queen]*PopCount(p.Queens) +
		phaseWeights[Pawn]*PopCount(p.Pawns)
	e.phase = Clamp(phase, 0, MaxPhase)
}

// Update adjusts the phase for a move just made. The promotion and the
// capture are clamped one after the other, so a capture-promotion from a full
// board still loses the captured weight.
func (e *Evaluation) Update(move Move) {
	if promotion := move.Promotion(); promotion != Empty {
		e.phase = Clamp(e.phase+phaseWeights[promotion]-phaseWeights[Pawn], 0, MaxPhase)
	}
	if captured := move.CapturedPiece(); captured != Empty {
		e.phase = Clamp(e.phase-phaseWeights[captured], 0, MaxPhase)
	}
}

func (e *Evaluation) SaveState(state *BoardState) {
	state.Phase = uint8(e.phase)
}

func (e *Evaluation) RestoreState(state *BoardState) {
	e.phase = int(state.Phase)
}

// Compute returns the score of p from the side to move's point of view.
func (e *Evaluation) Compute(p *Position) int {
	var result = e.ComputeScore(p).Normalize(e.phase)
	if !p.WhiteMove {
		return -result
	}
	return result
}

// ComputeScore returns the unblended score of p from White's point of view.
func (e *Evaluation) ComputeScore(p *Position) Score {
	var wk = FirstOne(p.Kings & p.White)
	var bk = FirstOne(p.Kings & p.Black)
	return e.sideScore(p, SideWhite, p.White, NewKingBuckets(SideWhite, wk, bk)) -
		e.sideScore(p, SideBlack, p.Black, NewKingBuckets(SideBlack, bk, wk))
}

func (e *Evaluation) sideScore(p *Position, side int, own uint64, kb KingBuckets) Score {
	var w = e.weights
	var s Score
	for x := own; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var piece = p.WhatPiece(sq)
		var relSq = RelativeSquare(side, sq)
		s += w.PieceValue(piece) +
			w.FriendlyPieceSquareValue(piece, kb, relSq) +
			w.EnemyPieceSquareValue(piece, kb, relSq)
	}
	return s
}
