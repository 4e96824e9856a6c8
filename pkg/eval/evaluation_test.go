package eval

import (
	"math/rand"
	"testing"

	. "github.com/corvidchess/corvid/pkg/common"
)

var testFENs = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"2r3k1/5pp1/p3p2p/1p1pP3/3P1P2/P1R3P1/1P4KP/8 b - - 0 30",
	"8/8/4k3/8/2Q5/8/4K3/8 b - - 0 1",
}

func rawPhase(p *Position) int {
	return phaseWeights[Knight]*PopCount(p.Knights) +
		phaseWeights[Bishop]*PopCount(p.Bishops) +
		phaseWeights[Rook]*PopCount(p.Rooks) +
		phaseWeights[Queen]*PopCount(p.Queens)
}

func TestInitPhase(t *testing.T) {
	var e = NewEvaluation(DefaultWeights())
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	e.Init(&p)
	if e.Phase() != MaxPhase {
		t.Error(e.Phase())
	}
	p, _ = NewPositionFromFEN("8/8/4k3/8/8/8/4K3/8 w - - 0 1")
	e.Init(&p)
	if e.Phase() != 0 {
		t.Error(e.Phase())
	}
}

// nextPhase applies a move to phase one adjustment at a time.
func nextPhase(phase int, move Move) int {
	if promotion := move.Promotion(); promotion != Empty {
		phase = Clamp(phase+phaseWeights[promotion]-phaseWeights[Pawn], 0, MaxPhase)
	}
	if captured := move.CapturedPiece(); captured != Empty {
		phase = Clamp(phase-phaseWeights[captured], 0, MaxPhase)
	}
	return phase
}

// promotionFEN starts one knight short of a full board with pawns ready to
// capture-promote, so queen promotions clamp.
const promotionFEN = "r1bqkbnr/pPpppppp/8/8/8/8/PpPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestPhaseFollowsBoard(t *testing.T) {
	var rnd = rand.New(rand.NewSource(1))
	for _, fen := range append(testFENs, promotionFEN) {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		var e = NewEvaluation(DefaultWeights())
		e.Init(&p)
		var b = NewBoard(p)
		b.SetTracker(e)
		for game := 0; game < 20; game++ {
			var saved []int
			// a clamped ply makes the full recount drift from the incremental phase
			var exact = rawPhase(&b.Position) <= MaxPhase
			for ply := 0; ply < 80; ply++ {
				var moves = GenerateLegalMoves(&b.Position)
				if len(moves) == 0 {
					break
				}
				var move = moves[rnd.Intn(len(moves))]
				var before = e.Phase()
				saved = append(saved, before)
				if !b.MakeMove(move) {
					t.Fatal(fen, "legal move rejected", move)
				}
				if want := nextPhase(before, move); e.Phase() != want {
					t.Fatal(fen, b.Moves(), want, e.Phase())
				}
				exact = exact && rawPhase(&b.Position) <= MaxPhase
				if exact {
					var check = NewEvaluation(DefaultWeights())
					check.Init(&b.Position)
					if check.Phase() != e.Phase() {
						t.Fatal(fen, b.Moves(), check.Phase(), e.Phase())
					}
				}
			}
			for len(saved) > 0 {
				var want = saved[len(saved)-1]
				saved = saved[:len(saved)-1]
				b.UnmakeMove()
				if e.Phase() != want {
					t.Fatal(fen, "phase not restored at ply", len(saved), want, e.Phase())
				}
			}
		}
	}
}

func TestPhaseCapturePromotionLine(t *testing.T) {
	var p, err = NewPositionFromFEN(promotionFEN)
	if err != nil {
		t.Fatal(err)
	}
	var e = NewEvaluation(DefaultWeights())
	e.Init(&p)
	var b = NewBoard(p)
	b.SetTracker(e)
	var line = []struct {
		lan   string
		phase int
	}{
		{"", 61},
		{"b7a8q", 59},
		{"b2a1q", 59},
		{"a8b8", 59},
		{"a1b2", 59},
	}
	for _, step := range line[1:] {
		var move, ok = ParseMoveLAN(&b.Position, step.lan)
		if !ok || !b.MakeMove(move) {
			t.Fatal("illegal", step.lan)
		}
		if e.Phase() != step.phase {
			t.Fatal(step.lan, e.Phase(), step.phase)
		}
	}
	for i := len(line) - 2; i >= 0; i-- {
		b.UnmakeMove()
		if e.Phase() != line[i].phase {
			t.Fatal("unmake to ply", i, e.Phase(), line[i].phase)
		}
	}
}

func TestPhaseClamp(t *testing.T) {
	var p, _ = NewPositionFromFEN("1q1qk3/8/8/8/8/8/8/QQQQKQQQ w - - 0 1")
	var e = NewEvaluation(DefaultWeights())
	e.Init(&p)
	if e.Phase() != MaxPhase {
		t.Error(e.Phase())
	}
	var promotion = makeTestMove(SquareA7, SquareA8, Pawn, Empty, Queen)
	for i := 0; i < 3; i++ {
		e.Update(promotion)
		if e.Phase() != MaxPhase {
			t.Error(e.Phase())
		}
	}

	p, _ = NewPositionFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	e.Init(&p)
	var capture = makeTestMove(SquareB1, SquareA1, Rook, Queen, Empty)
	for i := 0; i < 3; i++ {
		e.Update(capture)
		if e.Phase() != 0 {
			t.Error(e.Phase())
		}
	}

	// the promotion is clamped before the capture is taken off
	p, _ = NewPositionFromFEN(InitialPositionFen)
	e.Init(&p)
	e.Update(makeTestMove(SquareG7, SquareH8, Pawn, Rook, Queen))
	if e.Phase() != MaxPhase-phaseWeights[Rook] {
		t.Error("capture-promotion", e.Phase())
	}
}

func makeTestMove(from, to, piece, captured, promotion int) Move {
	return Move(from ^ (to << 6) ^ (piece << 12) ^ (captured << 15) ^ (promotion << 18))
}

func TestEvaluationStartIsZero(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var e = NewEvaluation(DefaultWeights())
	e.Init(&p)
	if score := e.Compute(&p); score != 0 {
		t.Error(score)
	}
}

func TestEvaluationMirror(t *testing.T) {
	var e = NewEvaluation(DefaultWeights())
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		e.Init(&p)
		var score = e.Compute(&p)
		var mirror = MirrorPosition(&p)
		e.Init(&mirror)
		var mirrorScore = e.Compute(&mirror)
		if score != mirrorScore {
			t.Error(fen, score, mirrorScore)
		}
	}
}

func TestEvaluationMaterial(t *testing.T) {
	var e = NewEvaluation(DefaultWeights())
	var p, _ = NewPositionFromFEN("8/8/4k3/8/2Q5/8/4K3/8 w - - 0 1")
	e.Init(&p)
	if score := e.Compute(&p); score < 500 {
		t.Error("queen up", score)
	}
	p, _ = NewPositionFromFEN("8/8/4k3/8/2Q5/8/4K3/8 b - - 0 1")
	e.Init(&p)
	if score := e.Compute(&p); score > -500 {
		t.Error("queen down", score)
	}
}

func TestScorePacking(t *testing.T) {
	var tests = []struct{ mg, eg int }{
		{0, 0}, {1, -1}, {-1, 1}, {-300, -700}, {32000, -32000},
	}
	for _, test := range tests {
		var s = S(test.mg, test.eg)
		if s.Mg() != test.mg || s.Eg() != test.eg {
			t.Error(test, s)
		}
	}
	var sum = S(10, -20) + S(-30, 5)
	if sum.Mg() != -20 || sum.Eg() != -15 {
		t.Error(sum)
	}
	if v := S(100, 40).Normalize(MaxPhase); v != 100 {
		t.Error(v)
	}
	if v := S(100, 40).Normalize(0); v != 40 {
		t.Error(v)
	}
}
