package engine

import (
	. "github.com/corvidchess/corvid/pkg/common"
	"github.com/corvidchess/corvid/pkg/movelist"
)

const pawnValue = 100

const aspirationDelta = 25

// aspirationWindow searches a narrow window around the previous score and
// widens the failing side once before falling back to a full window.
func aspirationWindow(t *thread, depth, prevScore int) int {
	if depth < 5 || prevScore <= valueLoss || prevScore >= valueWin {
		return t.alphaBeta(-valueInfinity, valueInfinity, depth, 0)
	}
	var alpha = Max(-valueInfinity, prevScore-aspirationDelta)
	var beta = Min(valueInfinity, prevScore+aspirationDelta)
	for attempt := 0; attempt < 2; attempt++ {
		var score = t.alphaBeta(alpha, beta, depth, 0)
		if alpha < score && score < beta {
			return score
		}
		if score <= alpha {
			alpha = -valueInfinity
		}
		if score >= beta {
			beta = valueInfinity
		}
	}
	return t.alphaBeta(-valueInfinity, valueInfinity, depth, 0)
}

// ttProbe is what the transposition table knows about the current node.
type ttProbe struct {
	hit   bool
	depth int
	value int
	bound int
	move  Move
}

func (t *thread) probeTT(key uint64, height int) ttProbe {
	var depth, value, bound, move, hit = t.pool.transTable.Read(key)
	if !hit {
		return ttProbe{}
	}
	return ttProbe{hit, depth, valueFromTT(value, height), bound, move}
}

// cutoff reports whether the entry alone decides a non-pv node.
func (e *ttProbe) cutoff(depth, alpha, beta int) bool {
	if !e.hit || e.depth < depth {
		return false
	}
	return e.value >= beta && e.bound&boundLower != 0 ||
		e.value <= alpha && e.bound&boundUpper != 0
}

func (t *thread) alphaBeta(alpha, beta, depth, height int) int {
	if depth <= 0 {
		return t.quiescence(alpha, beta, height)
	}
	t.clearPV(height)
	t.updateSelDepth(height)

	var rootNode = height == 0
	var pvNode = beta != alpha+1
	var position = &t.board.Position
	var isCheck = position.IsCheck()
	var frame = &t.stack[height]
	frame.lastMove = position.LastMove

	if !rootNode {
		if height >= maxHeight {
			return t.evaluate()
		}
		if t.board.IsDraw() {
			return valueDraw
		}
		// mate distance pruning
		if alpha >= winIn(height+1) {
			return alpha
		}
		if !isCheck && beta <= lossIn(height+2) {
			return beta
		}
	}

	var entry = t.probeTT(position.Key, height)
	if !pvNode && !rootNode && entry.cutoff(depth, alpha, beta) {
		if entry.value >= beta && entry.move != MoveEmpty && !entry.move.IsCaptureOrPromotion() {
			t.updateKiller(entry.move, height)
		}
		return entry.value
	}

	var staticEval = t.evaluate()
	frame.staticEval = staticEval
	var improving = height < 2 || staticEval > t.stack[height-2].staticEval

	if height+2 <= maxHeight {
		t.stack[height+2].killer1 = MoveEmpty
		t.stack[height+2].killer2 = MoveEmpty
	}

	if !rootNode && !pvNode && !isCheck {
		// reverse futility
		if depth <= 8 && staticEval-pawnValue*depth >= beta {
			return staticEval
		}
		if score, ok := t.nullMoveSearch(&entry, staticEval, beta, depth, height); ok {
			return score
		}
	}

	var history = t.pool.history
	var white = position.WhiteMove
	var mi = moveIterator{
		ml:        &frame.moveList,
		transMove: entry.move,
		killer1:   frame.killer1,
		killer2:   frame.killer2,
	}
	mi.Init(position, history)

	var lmpLimit = 5 + (depth-1)*depth
	if !improving {
		lmpLimit /= 2
	}
	var canPrune = depth <= 8 && !isCheck && !rootNode

	var movesSearched, quietsSeen int
	var quietsSearched = frame.quietsSearched[:0]
	var best, bestMove = -valueInfinity, MoveEmpty
	var oldAlpha = alpha

	for {
		var gm, ok = mi.Next()
		if !ok {
			break
		}
		var move = gm.Move
		var isNoisy = move.IsCaptureOrPromotion()
		var isKiller = gm.Phase == movelist.PhaseKillers
		if !isNoisy {
			quietsSeen++
		}

		if canPrune && movesSearched > 0 && best > valueLoss {
			var quietPrunable = !isNoisy && !isKiller
			if quietPrunable && quietsSeen > lmpLimit {
				continue
			}
			if quietPrunable && staticEval+100+pawnValue*depth <= alpha {
				continue
			}
			if !SeeGE(position, move, -seeMargin(isNoisy, depth, staticEval, alpha)) {
				continue
			}
		}

		if !t.makeMove(move) {
			continue
		}
		movesSearched++
		var givesCheck = t.board.IsCheck()

		var extension = 0
		if givesCheck && depth >= 3 {
			extension = 1
		}
		var reduction = 0
		if depth >= 3 && movesSearched > 1 && !isNoisy {
			var historyScore = history.Score(white, move.MovingPiece(), move.To())
			reduction = quietReduction(depth, movesSearched, historyScore,
				isKiller, isCheck, givesCheck, improving, pvNode, extension)
		}
		if !isNoisy {
			quietsSearched = append(quietsSearched, move)
		}

		var newDepth = depth - 1 + extension
		var score = t.searchChild(alpha, beta, newDepth, reduction, height, pvNode && movesSearched > 1)
		t.unmakeMove()

		if score > best {
			best, bestMove = score, move
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}

	if movesSearched == 0 {
		if isCheck {
			return lossIn(height)
		}
		return valueDraw
	}

	if alpha > oldAlpha && bestMove != MoveEmpty && !bestMove.IsCaptureOrPromotion() {
		history.Update(white, quietsSearched, bestMove, depth)
		t.updateKiller(bestMove, height)
	}

	var bound = 0
	if best > oldAlpha {
		bound |= boundLower
	}
	if best < beta {
		bound |= boundUpper
	}
	// a root fail-low carries no move worth keeping
	if !rootNode || bound != boundUpper {
		t.pool.transTable.Update(position.Key, depth, valueToTT(best, height), bound, bestMove)
	}
	return best
}

// searchChild runs the reduced zero-window search, the pv re-search and the
// full-window search, each only while the previous one beat alpha.
func (t *thread) searchChild(alpha, beta, newDepth, reduction, height int, pvResearch bool) int {
	var score = alpha + 1
	if reduction > 0 {
		score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth-reduction, height+1)
	}
	if score > alpha && pvResearch && newDepth > 0 {
		score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth, height+1)
	}
	if score > alpha {
		score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
	}
	return score
}

func (t *thread) nullMoveSearch(entry *ttProbe, staticEval, beta, depth, height int) (int, bool) {
	var position = &t.board.Position
	if depth < 2 || staticEval < beta || beta >= valueWin ||
		position.LastMove == MoveEmpty ||
		(height > 1 && t.stack[height-1].lastMove == MoveEmpty) ||
		(entry.hit && entry.value < beta && entry.bound&boundUpper != 0) ||
		isLateEndgame(position, position.WhiteMove) {
		return 0, false
	}
	var reduction = 4 + depth/6 + Min(2, (staticEval-beta)/200)
	t.makeNullMove()
	var score = -t.alphaBeta(-beta, -(beta - 1), depth-reduction, height+1)
	t.unmakeMove()
	if score < beta {
		return 0, false
	}
	// unproven mates from a null move are not trusted
	if score >= valueWin {
		score = beta
	}
	return score, true
}

func seeMargin(isNoisy bool, depth, staticEval, alpha int) int {
	if isNoisy {
		return Max(depth, (staticEval+pawnValue-alpha)/pawnValue)
	}
	return depth / 2
}

func quietReduction(depth, moveCount, historyScore int,
	isKiller, isCheck, givesCheck, improving, pvNode bool, extension int) int {
	var r = lmr(depth, moveCount)
	if isKiller {
		r--
	}
	if !isCheck {
		r -= Clamp(historyScore/5000, -2, 2)
		if !improving {
			r++
		}
	}
	if pvNode {
		r -= 2
	}
	if isCheck || givesCheck {
		r--
	}
	r = Max(r, 0) + extension
	return Clamp(r, 0, Max(0, depth-2))
}

func (t *thread) quiescence(alpha, beta, height int) int {
	t.clearPV(height)
	t.updateSelDepth(height)
	var position = &t.board.Position
	if t.board.IsDraw() {
		return valueDraw
	}
	if height >= maxHeight {
		return t.evaluate()
	}

	if entry := t.probeTT(position.Key, height); entry.hit {
		switch {
		case entry.bound == boundExact,
			entry.bound == boundLower && entry.value >= beta,
			entry.bound == boundUpper && entry.value <= alpha:
			return entry.value
		}
	}

	var isCheck = position.IsCheck()
	var best = -valueInfinity
	if !isCheck {
		// stand pat
		best = t.evaluate()
		if best > alpha {
			alpha = best
			if alpha >= beta {
				return alpha
			}
		}
	}

	var mi = moveIteratorQS{ml: &t.stack[height].moveList}
	mi.Init(position)
	var legalMoves = 0
	for move := mi.Next(); move != MoveEmpty; move = mi.Next() {
		if !isCheck && !seeGEZero(position, move) {
			continue
		}
		if !t.makeMove(move) {
			continue
		}
		legalMoves++
		var score = -t.quiescence(-beta, -alpha, height+1)
		t.unmakeMove()
		best = Max(best, score)
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}
	if isCheck && legalMoves == 0 {
		return lossIn(height)
	}
	return best
}

func (t *thread) updateKiller(move Move, height int) {
	var frame = &t.stack[height]
	if frame.killer1 != move {
		frame.killer1, frame.killer2 = move, frame.killer1
	}
}

func (t *thread) updateSelDepth(height int) {
	t.selDepth = Max(t.selDepth, height)
}

func (t *thread) makeMove(move Move) bool {
	if !t.board.MakeMove(move) {
		return false
	}
	t.incNodes()
	return true
}

func (t *thread) makeNullMove() {
	t.board.MakeNullMove()
	t.incNodes()
}

func (t *thread) unmakeMove() {
	t.board.UnmakeMove()
}

// incNodes publishes node counts in batches and aborts the search by panic
// once the pool is stopped or out of budget.
func (t *thread) incNodes() {
	t.nodes++
	if t.nodes%256 != 0 {
		return
	}
	var pool = t.pool
	var total = pool.nodes.Add(256)
	if pool.stopped.Load() ||
		(pool.maxNodes > 0 && total >= pool.maxNodes) ||
		pool.clock.CheckTimeBudget() {
		panic(errSearchTimeout)
	}
}

func (t *thread) evaluate() int {
	var key = t.board.Key
	if eval, ok := t.evalCache.get(key); ok {
		return eval
	}
	var eval = t.evaluation.Compute(&t.board.Position)
	t.evalCache.put(key, eval)
	return eval
}
