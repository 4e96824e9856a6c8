package movelist

import (
	. "github.com/corvidchess/corvid/pkg/common"
)

// GenPhase names the generation stage that produced a move.
type GenPhase int

const (
	PhaseHash GenPhase = iota
	PhaseCaptures
	PhasePromotions
	PhaseKillers
	PhaseQuiets
	PhaseBadCaptures
)

func (p GenPhase) String() string {
	switch p {
	case PhaseHash:
		return "hash"
	case PhaseCaptures:
		return "captures"
	case PhasePromotions:
		return "promotions"
	case PhaseKillers:
		return "killers"
	case PhaseQuiets:
		return "quiets"
	case PhaseBadCaptures:
		return "bad captures"
	}
	return "unknown"
}

type GenMove struct {
	Move
	Phase GenPhase
}

// PhaseOf classifies a move by the stage a staged generator yields it in.
func PhaseOf(m Move) GenPhase {
	if m.IsCapture() {
		return PhaseCaptures
	}
	if m.IsPromotion() {
		return PhasePromotions
	}
	return PhaseQuiets
}
