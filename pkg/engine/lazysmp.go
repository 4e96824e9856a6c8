package engine

import (
	"github.com/corvidchess/corvid/pkg/common"
	"golang.org/x/sync/errgroup"
)

// depthTask asks a worker to search the root to depth around a known score.
type depthTask struct {
	depth int
	guess int
}

// lazySmp runs iterative deepening on all threads at once. The coordinator
// hands out depths, skipping a depth ahead when half the threads already
// work on the next one, and keeps the deepest finished line.
func lazySmp(p *ThreadPool, maxDepth int) {
	var rootMoves = p.genRootMoves()
	p.mainLine = mainLine{}
	if len(rootMoves) == 0 {
		return
	}
	p.mainLine.moves = []common.Move{rootMoves[0]}
	if len(rootMoves) == 1 {
		return
	}

	var tasks = make(chan depthTask)
	var results = make(chan mainLine)
	var workers errgroup.Group
	for _, t := range p.threads {
		var t = t
		workers.Go(func() error {
			t.searchTasks(tasks, results)
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	p.coordinate(maxDepth, tasks, results)
}

func (p *ThreadPool) coordinate(maxDepth int, tasks chan<- depthTask, results <-chan mainLine) {
	var started [stackSize]int
	var quorum = (len(p.threads) + 1) / 2
	for {
		var next = depthTask{depth: p.mainLine.depth + 1, guess: p.mainLine.score}
		if next.depth < len(started) && started[next.depth] >= quorum {
			next.depth++
		}
		if tasks != nil && (next.depth > maxDepth || next.depth >= len(started) || p.stopped.Load() ||
			(p.mainLine.depth > 0 && p.isDone())) {
			close(tasks)
			tasks = nil
		}

		// sends on a nil channel block, so only results are read once tasks is closed
		select {
		case line, ok := <-results:
			if !ok {
				return
			}
			if line.depth > p.mainLine.depth {
				p.mainLine = line
				if p.reporter != nil {
					p.reporter.Info(p.searchInfo())
				}
			}
		case tasks <- next:
			started[next.depth]++
		}
	}
}

// isDone reports whether another iteration is pointless: a mate is proven or
// the soft time limit is spent.
func (p *ThreadPool) isDone() bool {
	if p.clock.Infinite() {
		return false
	}
	var line = &p.mainLine
	if line.score >= winIn(line.depth-5) || line.score <= lossIn(line.depth-5) {
		return true
	}
	return !p.clock.CanSearchDeeper()
}

// searchTasks consumes depths until tasks is closed or the search is aborted.
func (t *thread) searchTasks(tasks <-chan depthTask, results chan<- mainLine) {
	defer func() {
		if r := recover(); r != nil && r != errSearchTimeout {
			panic(r)
		}
	}()

	for h := 0; h <= 2; h++ {
		t.stack[h].killer1 = common.MoveEmpty
		t.stack[h].killer2 = common.MoveEmpty
	}
	for task := range tasks {
		var score = aspirationWindow(t, task.depth, task.guess)
		results <- mainLine{
			depth:    task.depth,
			score:    score,
			moves:    t.stack[0].pv.toSlice(),
			selDepth: t.selDepth,
		}
	}
}

// genRootMoves returns the legal root moves, hash move first.
func (p *ThreadPool) genRootMoves() []common.Move {
	var t = p.threads[0]
	var _, _, _, hashMove, _ = p.transTable.Read(t.board.Key)
	var mi = moveIterator{
		ml:        &t.stack[0].moveList,
		transMove: hashMove,
	}
	mi.Init(&t.board.Position, p.history)

	var moves []common.Move
	for gm, ok := mi.Next(); ok; gm, ok = mi.Next() {
		moves = append(moves, gm.Move)
	}
	return moves
}
