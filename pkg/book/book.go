// Package book picks opening moves from the ECO classification.
package book

import (
	"sort"
	"sync"

	"github.com/notnil/chess"
	"github.com/notnil/opening"
	"lukechampine.com/frand"
)

// Book suggests continuations of named openings. It only knows games
// that started from the initial position.
type Book struct {
	once sync.Once
	eco  *opening.BookECO
}

func New() *Book {
	return &Book{}
}

func (b *Book) load() *opening.BookECO {
	b.once.Do(func() {
		b.eco = opening.NewBookECO()
	})
	return b.eco
}

type byOpeningLength []*opening.Opening

func (a byOpeningLength) Len() int           { return len(a) }
func (a byOpeningLength) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byOpeningLength) Less(i, j int) bool { return len(a[i].PGN()) > len(a[j].PGN()) }

// Move returns a random book continuation of the game given in long algebraic
// notation, and the title of the opening it belongs to.
func (b *Book) Move(lans []string) (move, title string, ok bool) {
	var game, replayed = replay(lans)
	if !replayed {
		return "", "", false
	}
	var prevMoves = game.Moves()
	var moveIndex = len(prevMoves)
	var openings = b.load().Possible(prevMoves)
	sort.Sort(byOpeningLength(openings))

	var candidates []string
	var titles []string
	for _, op := range openings {
		var moves = op.Game().Moves()
		if len(moves) <= moveIndex || !samePrefix(moves, prevMoves) {
			continue
		}
		var next = moves[moveIndex].String()
		if !contains(candidates, next) {
			candidates = append(candidates, next)
			titles = append(titles, op.Title())
		}
	}
	if len(candidates) == 0 {
		return "", "", false
	}
	var i = frand.Intn(len(candidates))
	return candidates[i], titles[i], true
}

func replay(lans []string) (*chess.Game, bool) {
	var game = chess.NewGame()
	for _, lan := range lans {
		var found *chess.Move
		for _, m := range game.ValidMoves() {
			if m.String() == lan {
				found = m
				break
			}
		}
		if found == nil || game.Move(found) != nil {
			return nil, false
		}
	}
	return game, true
}

func samePrefix(moves, prefix []*chess.Move) bool {
	for i, mv := range prefix {
		if moves[i].String() != mv.String() {
			return false
		}
	}
	return true
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
