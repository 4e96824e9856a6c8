package common

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

var movegenFENs = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"R6R/3Q4/1Q4Q1/4Q3/2Q4Q/Q4Q2/pp1Q4/kBNN1KB1 w - - 0 1",
	"3k4/3p4/8/K1P4r/8/8/8/8 b - - 0 1",
	"8/8/4k3/8/2p5/8/B2P2K1/8 w - - 0 1",
	"8/8/1k6/2b5/2pP4/8/5K2/8 b - d3 0 1",
	"5k2/8/8/8/8/8/8/4K2R w K - 0 1",
	"r3k2r/1b4bq/8/8/8/8/7B/R3K2R w KQkq - 0 1",
	"2K2r2/4P3/8/8/8/8/8/3k4 w - - 0 1",
	"8/P1k5/K7/8/8/8/8/8 w - - 0 1",
	"K1k5/8/P7/8/8/8/8/8 w - - 0 1",
	"8/k1P5/8/1K6/8/8/8/8 w - - 0 1",
}

func TestMoveCountsAgainstDragontooth(t *testing.T) {
	for _, fen := range movegenFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var buffer [MoveBufferSize]Move
		var ml = GenerateMoves(buffer[:], &p)
		if len(ml) > MaxMoves {
			t.Errorf("%v: %v moves exceed %v", fen, len(ml), MaxMoves)
		}

		var board = dragontoothmg.ParseFen(fen)
		var want []string
		for _, m := range board.GenerateLegalMoves() {
			want = append(want, m.String())
		}
		var got []string
		for _, m := range ml {
			got = append(got, m.String())
		}
		sort.Strings(want)
		sort.Strings(got)
		if len(got) != len(want) {
			t.Errorf("%v: got %v moves, want %v\n%v\n%v", fen, len(got), len(want), got, want)
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("%v: move %v differs from %v", fen, got[i], want[i])
				break
			}
		}
	}
}

func TestMaxMovesPosition(t *testing.T) {
	var p, err = NewPositionFromFEN("R6R/3Q4/1Q4Q1/4Q3/2Q4Q/Q4Q2/pp1Q4/kBNN1KB1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var buffer [MoveBufferSize]Move
	if n := len(GenerateMoves(buffer[:], &p)); n != MaxMoves {
		t.Errorf("got %v moves, want %v", n, MaxMoves)
	}
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) int64 {
	var moves = b.GenerateLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var result int64
	for _, m := range moves {
		var unapply = b.Apply(m)
		result += dragontoothPerft(b, depth-1)
		unapply()
	}
	return result
}

func TestPerftAgainstDragontooth(t *testing.T) {
	for _, fen := range movegenFENs {
		var p, _ = NewPositionFromFEN(fen)
		var board = dragontoothmg.ParseFen(fen)
		var got, want = Perft(&p, 3), dragontoothPerft(&board, 3)
		if got != want {
			t.Errorf("%v: perft 3 got %v want %v", fen, got, want)
		}
	}
}

func TestCapturesAreLegal(t *testing.T) {
	for _, fen := range movegenFENs {
		var p, _ = NewPositionFromFEN(fen)
		var buffer [MoveBufferSize]Move
		var child Position
		for _, m := range GenerateCaptures(buffer[:], &p) {
			if !m.IsCaptureOrPromotion() {
				t.Errorf("%v: quiet move %v among captures", fen, m)
			}
			if !p.MakeMove(m, &child) {
				t.Errorf("%v: illegal capture %v", fen, m)
			}
		}
	}
}

func TestParseMoveLAN(t *testing.T) {
	var p, _ = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var tests = []struct {
		lan string
		ok  bool
	}{
		{"e1g1", true},
		{"e1c1", true},
		{"E5F7", true},
		{"d5e6", true},
		{"e2a6", true},
		{"e1e3", false},
		{"e2e4", false},
		{"a7a8q", false},
		{"zz", false},
		{"", false},
	}
	for _, test := range tests {
		var _, ok = ParseMoveLAN(&p, test.lan)
		if ok != test.ok {
			t.Errorf("ParseMoveLAN(%q) = %v, want %v", test.lan, ok, test.ok)
		}
	}
}
