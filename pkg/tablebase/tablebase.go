// Package tablebase describes endgame tablebase probing at the root.
package tablebase

import (
	"github.com/corvidchess/corvid/pkg/common"
)

// WDL is a tablebase outcome from the side to move's point of view.
type WDL int

const (
	Loss WDL = iota
	BlessedLoss
	Draw
	CursedWin
	Win
)

func (w WDL) String() string {
	switch w {
	case Loss:
		return "loss"
	case BlessedLoss:
		return "blessed loss"
	case Draw:
		return "draw"
	case CursedWin:
		return "cursed win"
	case Win:
		return "win"
	}
	return "unknown"
}

// Promotion codes reported by a root probe.
const (
	PromoteNone = iota
	PromoteQueen
	PromoteRook
	PromoteBishop
	PromoteKnight
)

// Position is the bitboard form of a position handed to a probe.
// EpSquare is 0 when there is no en passant capture.
type Position struct {
	White, Black                                  uint64
	Kings, Queens, Rooks, Bishops, Knights, Pawns uint64
	Rule50                                        int
	Castling                                      int
	EpSquare                                      int
	WhiteToMove                                   bool
}

// FromPosition converts p for probing.
func FromPosition(p *common.Position) Position {
	var ep = 0
	if p.EpSquare != common.SquareNone {
		ep = p.EpSquare
	}
	return Position{
		White:       p.White,
		Black:       p.Black,
		Kings:       p.Kings,
		Queens:      p.Queens,
		Rooks:       p.Rooks,
		Bishops:     p.Bishops,
		Knights:     p.Knights,
		Pawns:       p.Pawns,
		Rule50:      p.Rule50,
		Castling:    p.CastleRights,
		EpSquare:    ep,
		WhiteToMove: p.WhiteMove,
	}
}

// Result is the outcome of a root probe and the move that keeps it.
type Result struct {
	WDL      WDL
	From     int
	To       int
	Promotes int
}

// PromotionPiece maps the promotion code of r to a piece type.
func (r Result) PromotionPiece() int {
	if r.Promotes <= PromoteNone || r.Promotes > PromoteKnight {
		return common.Empty
	}
	return common.King - r.Promotes
}

// Service probes endgame tablebases.
type Service interface {
	Initialized() bool
	MaxPieces() int
	ProbeRoot(p *Position) (Result, bool)
}

// Loader is implemented by services that read tablebase files from disk.
type Loader interface {
	Load(path string) error
}

// Unavailable is the Service used when no tablebase files are configured.
type Unavailable struct{}

func (Unavailable) Initialized() bool { return false }

func (Unavailable) MaxPieces() int { return 0 }

func (Unavailable) ProbeRoot(*Position) (Result, bool) { return Result{}, false }
