package engine

import (
	"sync"
	"testing"
	"time"

	. "github.com/corvidchess/corvid/pkg/common"
	"github.com/corvidchess/corvid/pkg/eval"
)

var testFENs = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

type testReporter struct {
	mu     sync.Mutex
	infos  []SearchInfo
	best   Move
	ponder Move
	calls  int
}

func (r *testReporter) Info(si SearchInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, si)
}

func (r *testReporter) BestMove(best, ponder Move) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.best = best
	r.ponder = ponder
	r.calls++
}

func newTestPool(reporter Reporter) *ThreadPool {
	return NewThreadPool(NewTransTable(1), NewHistory(), eval.DefaultWeights, reporter)
}

func searchFEN(t *testing.T, pool *ThreadPool, fen string, depth int) {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	var clock = NewTimeControl()
	clock.Go(0, false)
	pool.Search(clock, NewBoard(p), depth, 0)
	pool.Wait()
}

func TestMateInOne(t *testing.T) {
	var tests = []struct {
		fen  string
		best string
	}{
		{"6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1", "d1d8"},
		{"3r2k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1", "d8d1"},
	}
	for _, test := range tests {
		for _, threads := range []int{1, 3} {
			var reporter = &testReporter{}
			var pool = newTestPool(reporter)
			pool.SetThreads(threads)
			searchFEN(t, pool, test.fen, 4)
			if reporter.calls != 1 {
				t.Fatal(test.fen, "bestmove reported", reporter.calls)
			}
			if reporter.best.String() != test.best {
				t.Error(test.fen, threads, reporter.best)
			}
			var last = reporter.infos[len(reporter.infos)-1]
			if last.Score.Mate != 1 {
				t.Error(test.fen, "mate score", last.Score)
			}
		}
	}
}

func TestSearchReportsLegalMove(t *testing.T) {
	var reporter = &testReporter{}
	var pool = newTestPool(reporter)
	for _, fen := range testFENs {
		searchFEN(t, pool, fen, 3)
		var p, _ = NewPositionFromFEN(fen)
		var legal = false
		for _, m := range GenerateLegalMoves(&p) {
			if m == reporter.best {
				legal = true
			}
		}
		if !legal {
			t.Error(fen, reporter.best)
		}
		if pool.TotalNodes() == 0 {
			t.Error(fen, "no nodes counted")
		}
	}
}

func TestNoLegalMove(t *testing.T) {
	var reporter = &testReporter{}
	var pool = newTestPool(reporter)
	for _, fen := range []string{
		"7k/5Q2/8/8/8/8/8/K7 b - - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/3r2K1 w - - 0 1",
	} {
		searchFEN(t, pool, fen, 5)
		if reporter.best != MoveEmpty {
			t.Error(fen, reporter.best)
		}
	}
}

func TestStopEndsInfiniteSearch(t *testing.T) {
	var reporter = &testReporter{}
	var pool = newTestPool(reporter)
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var clock = NewTimeControl()
	clock.Go(0, true)
	pool.Search(clock, NewBoard(p), 0, 0)
	time.Sleep(50 * time.Millisecond)
	pool.Stop()
	if reporter.calls != 1 || reporter.best == MoveEmpty {
		t.Error(reporter.calls, reporter.best)
	}
	pool.Stop()
	if reporter.calls != 1 {
		t.Error("second stop reported again")
	}
}

func TestNodeLimit(t *testing.T) {
	var reporter = &testReporter{}
	var pool = newTestPool(reporter)
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var clock = NewTimeControl()
	clock.Go(0, false)
	pool.Search(clock, NewBoard(p), 0, 5000)
	pool.Wait()
	if pool.TotalNodes() > 5000+256 {
		t.Error(pool.TotalNodes())
	}
	if reporter.best == MoveEmpty {
		t.Error("no move")
	}
}

func TestUciScore(t *testing.T) {
	var tests = []struct {
		value int
		score UciScore
	}{
		{0, UciScore{}},
		{-35, UciScore{Centipawns: -35}},
		{winIn(1), UciScore{Mate: 1}},
		{winIn(3), UciScore{Mate: 2}},
		{lossIn(2), UciScore{Mate: -1}},
		{lossIn(4), UciScore{Mate: -2}},
	}
	for _, test := range tests {
		if got := NewUciScore(test.value); got != test.score {
			t.Error(test.value, got, test.score)
		}
	}
}
