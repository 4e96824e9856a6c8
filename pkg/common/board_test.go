package common

import "testing"

type countingTracker struct {
	depth   int
	saves   int
	updates []Move
}

func (t *countingTracker) Update(move Move) {
	t.updates = append(t.updates, move)
}

func (t *countingTracker) SaveState(state *BoardState) {
	state.Phase = uint8(t.depth)
	t.depth++
	t.saves++
}

func (t *countingTracker) RestoreState(state *BoardState) {
	t.depth = int(state.Phase)
}

func mustParseMove(t *testing.T, p *Position, lan string) Move {
	t.Helper()
	var m, ok = ParseMoveLAN(p, lan)
	if !ok {
		t.Fatalf("move %v not found in %v", lan, p)
	}
	return m
}

func TestBoardMakeUnmake(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var b = NewBoard(p)
	var tracker = &countingTracker{}
	b.SetTracker(tracker)

	var lans = []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"}
	for _, lan := range lans {
		if !b.MakeMove(mustParseMove(t, &b.Position, lan)) {
			t.Fatalf("move %v rejected", lan)
		}
	}
	if tracker.saves != len(lans) || len(tracker.updates) != len(lans) {
		t.Fatalf("tracker saw %v saves and %v updates", tracker.saves, len(tracker.updates))
	}
	if got := b.Moves(); len(got) != len(lans) || got[4].String() != "f1b5" {
		t.Errorf("moves %v", got)
	}
	for range lans {
		b.UnmakeMove()
	}
	if b.Position != p {
		t.Errorf("position not restored: %v", b.String())
	}
	if tracker.depth != 0 {
		t.Errorf("tracker depth %v after unwinding", tracker.depth)
	}
}

func TestBoardRejectsIllegalMove(t *testing.T) {
	var b = NewBoard(Position{})
	if err := b.LoadFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1"); err != nil {
		t.Fatal(err)
	}
	var before = b.Position
	var m = mustParseMove(t, &b.Position, "e1e2")
	if b.MakeMove(mustParseMove(t, &b.Position, "e1d2")) {
		t.Fatal("e1d2 should be illegal")
	}
	if b.Position != before || b.Ply() != 0 {
		t.Fatal("board changed by illegal move")
	}
	if !b.MakeMove(m) {
		t.Fatal("e1e2 should be legal")
	}
}

func TestBoardRepetition(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var b = NewBoard(p)
	for _, lan := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		if b.IsRepetition() {
			t.Fatalf("early repetition before %v", lan)
		}
		b.MakeMove(mustParseMove(t, &b.Position, lan))
	}
	if !b.IsRepetition() || !b.IsDraw() {
		t.Error("repetition not detected")
	}
}

func TestStartposE4E5(t *testing.T) {
	var b = NewBoard(Position{})
	if err := b.LoadFEN(InitialPositionFen); err != nil {
		t.Fatal(err)
	}
	for _, lan := range []string{"e2e4", "e7e5"} {
		b.MakeMove(mustParseMove(t, &b.Position, lan))
	}
	var checks = []struct {
		sq    int
		piece int
		white bool
	}{
		{SquareE2, Empty, false},
		{SquareE4, Pawn, true},
		{SquareE7, Empty, false},
		{SquareE5, Pawn, false},
	}
	for _, c := range checks {
		var piece, white = b.PieceAt(c.sq)
		if piece != c.piece || (piece != Empty && white != c.white) {
			t.Errorf("%v: got %v/%v", SquareName(c.sq), piece, white)
		}
	}
	if b.SideToMove() != SideWhite {
		t.Error("white should be to move")
	}
}

func TestFEN(t *testing.T) {
	var valid = []string{
		InitialPositionFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1",
	}
	for _, fen := range valid {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Errorf("%v: %v", fen, err)
			continue
		}
		if got := p.String(); got[:len(got)-2] != fen[:len(fen)-2] {
			t.Errorf("got %v want %v", got, fen)
		}
	}
	var invalid = []string{
		"",
		"garbage",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/R3K2r b - - 0 1",
		"P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range invalid {
		if _, err := NewPositionFromFEN(fen); err == nil {
			t.Errorf("%q should be rejected", fen)
		}
	}
}
