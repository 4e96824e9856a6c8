package tablebase

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/common"
)

func TestPromotionPiece(t *testing.T) {
	var tests = []struct {
		code int
		want int
	}{
		{PromoteNone, common.Empty},
		{PromoteQueen, common.Queen},
		{PromoteRook, common.Rook},
		{PromoteBishop, common.Bishop},
		{PromoteKnight, common.Knight},
		{7, common.Empty},
	}
	for _, test := range tests {
		if got := (Result{Promotes: test.code}).PromotionPiece(); got != test.want {
			t.Error(test.code, got, test.want)
		}
	}
}

func TestFromPosition(t *testing.T) {
	var p, err = common.NewPositionFromFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	if err != nil {
		t.Fatal(err)
	}
	var tp = FromPosition(&p)
	if tp.EpSquare != common.ParseSquare("f6") || !tp.WhiteToMove || tp.Castling != p.CastleRights {
		t.Error(tp)
	}
	if tp.White|tp.Black != p.White|p.Black || tp.Pawns != p.Pawns || tp.Kings != p.Kings {
		t.Error("bitboards differ")
	}

	p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	if FromPosition(&p).EpSquare != 0 {
		t.Error("expected no en passant square")
	}
}

func TestUnavailable(t *testing.T) {
	var s Service = Unavailable{}
	if s.Initialized() || s.MaxPieces() != 0 {
		t.Error("unavailable service reports tables")
	}
	if _, ok := s.ProbeRoot(&Position{}); ok {
		t.Error("probe hit")
	}
}
