// Package movelist holds the scored moves of one search node.
package movelist

import (
	"fmt"

	. "github.com/corvidchess/corvid/pkg/common"
)

const (
	CaptureBonus = 4_000_000
	PromoteBonus = 3_000_000

	// HistoryMax bounds the values a History may return.
	HistoryMax = 1 << 14

	// MaxPieces is one above the largest piece index.
	MaxPieces = King + 1
)

var pieceValues = [MaxPieces]int{Empty: 0, Pawn: 100, Knight: 300, Bishop: 300, Rook: 500, Queen: 900, King: 0}

// History gives the priority of a quiet move of piece to square to.
type History interface {
	Score(white bool, piece, to int) int
}

type ScoredMove struct {
	Move
	Score int
}

// MoveList is a fixed capacity buffer of scored moves.
// Moves are enumerated in insertion order; Sort yields them best first.
type MoveList struct {
	items   [MaxMoves]ScoredMove
	count   int
	white   bool
	history History
}

// Init empties the list and sets the history used to score quiet moves
// of the side given by white.
func (ml *MoveList) Init(history History, white bool) {
	ml.count = 0
	ml.white = white
	ml.history = history
}

func (ml *MoveList) Clear() {
	ml.count = 0
}

func (ml *MoveList) Count() int {
	return ml.count
}

func (ml *MoveList) At(i int) ScoredMove {
	return ml.items[i]
}

// Moves returns the moves in insertion order.
func (ml *MoveList) Moves() []ScoredMove {
	return ml.items[:ml.count]
}

func CaptureScore(m Move) int {
	return CaptureBonus + pieceValues[m.Promotion()] + (m.CapturedPiece() << 3) + (MaxPieces - m.MovingPiece())
}

func PromoteScore(m Move) int {
	return PromoteBonus + pieceValues[m.Promotion()]
}

func (ml *MoveList) score(m Move) int {
	if m.IsCapture() {
		return CaptureScore(m)
	}
	if m.IsPromotion() {
		return PromoteScore(m)
	}
	if ml.history == nil {
		return 0
	}
	return ml.history.Score(ml.white, m.MovingPiece(), m.To())
}

// Add scores m and appends it. Exceeding MaxMoves panics.
func (ml *MoveList) Add(m Move) {
	ml.AddScored(m, ml.score(m))
}

func (ml *MoveList) AddScored(m Move, score int) {
	if ml.count >= len(ml.items) {
		panic(fmt.Errorf("move list overflow adding %v", m))
	}
	ml.items[ml.count] = ScoredMove{Move: m, Score: score}
	ml.count++
}

func (ml *MoveList) AppendMoves(moves []Move) {
	for _, m := range moves {
		ml.Add(m)
	}
}

// Generate appends the legal moves of p.
func (ml *MoveList) Generate(p *Position) {
	var buffer [MoveBufferSize]Move
	ml.AppendMoves(GenerateMoves(buffer[:], p))
}

// GenerateCaptures appends the legal captures and queen promotions of p.
func (ml *MoveList) GenerateCaptures(p *Position) {
	var buffer [MoveBufferSize]Move
	ml.AppendMoves(GenerateCaptures(buffer[:], p))
}

// Sort moves the best entry of [n, count) to n and returns its move.
func (ml *MoveList) Sort(n int) Move {
	var best = n
	for i := n + 1; i < ml.count; i++ {
		if ml.items[i].Score > ml.items[best].Score {
			best = i
		}
	}
	if best != n {
		ml.items[n], ml.items[best] = ml.items[best], ml.items[n]
	}
	return ml.items[n].Move
}

// Remove deletes m by swapping in the last entry.
func (ml *MoveList) Remove(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.items[i].Move == m {
			ml.count--
			ml.items[i] = ml.items[ml.count]
			return true
		}
	}
	return false
}

func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.items[i].Move == m {
			return true
		}
	}
	return false
}
