package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/corvidchess/corvid/pkg/common"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/movelist"
)

const (
	MaxThreads = 256

	defaultEvalCacheMB = 4
)

var errSearchTimeout = errors.New("search timeout")

// ThreadPool runs a lazy SMP search over a fixed number of threads.
// Its methods are called from a single goroutine; the search itself runs
// in the background until Stop or Wait returns.
type ThreadPool struct {
	transTable  *TransTable
	history     *History
	weights     func() *eval.Weights
	reporter    Reporter
	threadCount int
	evalCacheMB int
	threads     []*thread

	clock    Clock
	maxNodes int64
	stopped  atomic.Bool
	nodes    atomic.Int64
	done     chan struct{}
	mainLine mainLine
	mu       sync.Mutex

	totalNodes int64
	totalTime  time.Duration
}

type thread struct {
	pool       *ThreadPool
	board      *Board
	evaluation *eval.Evaluation
	evalCache  *evalCache
	nodes      int64
	selDepth   int
	stack      [stackSize]struct {
		moveList       movelist.MoveList
		quietsSearched [MaxMoves]Move
		pv             pv
		staticEval     int
		lastMove       Move
		killer1        Move
		killer2        Move
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves    []Move
	score    int
	depth    int
	selDepth int
}

func NewThreadPool(transTable *TransTable, history *History,
	weights func() *eval.Weights, reporter Reporter) *ThreadPool {
	return &ThreadPool{
		transTable:  transTable,
		history:     history,
		weights:     weights,
		reporter:    reporter,
		threadCount: 1,
		evalCacheMB: defaultEvalCacheMB,
	}
}

func (p *ThreadPool) Threads() int {
	return p.threadCount
}

func (p *ThreadPool) SetThreads(n int) {
	p.threadCount = Clamp(n, 1, MaxThreads)
}

func (p *ThreadPool) ClearEvalCache() {
	for _, t := range p.threads {
		t.evalCache.clear()
	}
}

func (p *ThreadPool) ResizeEvalCache(megabytes int) {
	p.evalCacheMB = Max(1, megabytes)
	for _, t := range p.threads {
		t.evalCache.resize(p.evalCacheMB)
	}
}

func (p *ThreadPool) ClearHistory() {
	p.history.Clear()
}

// TotalNodes returns the nodes visited by the last finished search.
func (p *ThreadPool) TotalNodes() int64 {
	return p.totalNodes
}

// TotalTime returns the duration of the last finished search.
func (p *ThreadPool) TotalTime() time.Duration {
	return p.totalTime
}

func (p *ThreadPool) prepare() {
	if len(p.threads) > p.threadCount {
		p.threads = p.threads[:p.threadCount]
	}
	for len(p.threads) < p.threadCount {
		p.threads = append(p.threads, &thread{
			pool:      p,
			evalCache: newEvalCache(p.evalCacheMB),
		})
	}
}

// Search starts searching board in the background. A previous search is stopped first.
func (p *ThreadPool) Search(clock Clock, board *Board, maxDepth int, maxNodes int64) {
	p.Stop()
	p.prepare()
	clock.Start()
	p.clock = clock
	p.maxNodes = maxNodes
	if maxDepth <= 0 || maxDepth > maxHeight {
		maxDepth = maxHeight
	}
	p.stopped.Store(false)
	p.nodes.Store(0)
	p.transTable.NewSearch()

	var weights = p.weights()
	for _, t := range p.threads {
		t.board = board.Clone(stackSize + 1)
		t.evaluation = eval.NewEvaluation(weights)
		t.evaluation.Init(&t.board.Position)
		t.board.SetTracker(t.evaluation)
		t.nodes = 0
		t.selDepth = 0
	}

	var done = make(chan struct{})
	p.done = done
	go func() {
		defer close(done)
		p.run(maxDepth)
	}()
}

func (p *ThreadPool) run(maxDepth int) {
	var start = time.Now()
	lazySmp(p, maxDepth)

	var nodes int64
	for _, t := range p.threads {
		nodes += t.nodes
	}
	p.totalNodes = nodes
	p.totalTime = time.Since(start)

	for p.clock.Infinite() && !p.stopped.Load() {
		time.Sleep(time.Millisecond)
	}

	var best, ponder = MoveEmpty, MoveEmpty
	if len(p.mainLine.moves) > 0 {
		best = p.mainLine.moves[0]
	}
	if len(p.mainLine.moves) > 1 {
		ponder = p.mainLine.moves[1]
	}
	if p.reporter != nil {
		p.reporter.BestMove(best, ponder)
	}
}

// Stop asks the threads to finish and waits for them.
func (p *ThreadPool) Stop() {
	p.stopped.Store(true)
	p.Wait()
}

// Wait blocks until the current search has reported its best move.
func (p *ThreadPool) Wait() {
	if p.done != nil {
		<-p.done
	}
}

func (p *ThreadPool) searchInfo() SearchInfo {
	return SearchInfo{
		Score:    NewUciScore(p.mainLine.score),
		Depth:    p.mainLine.depth,
		SelDepth: p.mainLine.selDepth,
		Nodes:    p.nodes.Load(),
		Time:     p.clock.Elapsed().Milliseconds(),
		HashFull: p.transTable.Usage(),
		MainLine: p.mainLine.moves,
	}
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, m Move) {
	var child *pv
	if height+1 < stackSize {
		child = &t.stack[height+1].pv
	}
	t.stack[height].pv.assign(m, child)
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child != nil && child.size > 0 {
		var n = Min(child.size, len(pv.items)-1)
		pv.size += n
		copy(pv.items[1:], child.items[:n])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
