package common

import (
	"errors"
	"testing"
)

func TestFENDropsImpossibleRights(t *testing.T) {
	var p, err = NewPositionFromFEN("4k2r/8/8/8/8/8/8/R3K3 w KQkq e3 3 20")
	if err != nil {
		t.Fatal(err)
	}
	if p.CastleRights != WhiteQueenSide|BlackKingSide {
		t.Errorf("castle rights %b", p.CastleRights)
	}
	if p.EpSquare != SquareNone {
		t.Error("en passant square without a pawn", SquareName(p.EpSquare))
	}
	if got, want := p.String(), "4k2r/8/8/8/8/8/8/R3K3 w Qk - 3 2"; got != want {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestFENErrorsWrapSentinel(t *testing.T) {
	var _, err = NewPositionFromFEN("8/8/8/8 w - -")
	if !errors.Is(err, ErrInvalidFEN) {
		t.Error(err)
	}
}

func TestIncrementalKeyMatchesFullKey(t *testing.T) {
	var fens = []string{
		InitialPositionFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, fen := range fens {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		for _, mv := range GenerateLegalMoves(&p) {
			var child Position
			if !p.MakeMove(mv, &child) {
				t.Fatalf("%v: legal move %v rejected", fen, mv)
			}
			if child.Key != child.computeKey() {
				t.Errorf("%v: key drift after %v", fen, mv)
			}
			var reparsed, err = NewPositionFromFEN(child.String())
			if err != nil {
				t.Fatal(err)
			}
			if reparsed.Key != child.Key || reparsed.Checkers != child.Checkers {
				t.Errorf("%v: %v does not round trip", fen, mv)
			}
		}
		var null Position
		if !p.IsCheck() {
			p.MakeNullMove(&null)
			if null.Key != null.computeKey() {
				t.Errorf("%v: key drift after null move", fen)
			}
		}
	}
}

func TestMirrorPosition(t *testing.T) {
	var p, _ = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var mirror = MirrorPosition(&p)
	if mirror.WhiteMove || mirror.CastleRights != p.CastleRights {
		t.Error(mirror.String())
	}
	var back = MirrorPosition(&mirror)
	if back.Key != p.Key {
		t.Error("mirror twice should restore the position")
	}
	var ml [MoveBufferSize]Move
	if len(GenerateMoves(ml[:], &mirror)) != len(GenerateLegalMoves(&p)) {
		t.Error("mirrored move count differs")
	}
}
