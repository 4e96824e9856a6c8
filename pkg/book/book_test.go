package book

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/common"
)

func TestBookMovesAreLegal(t *testing.T) {
	var b = New()
	var tests = [][]string{
		nil,
		{"e2e4"},
		{"e2e4", "e7e5"},
		{"d2d4", "g8f6", "c2c4"},
	}
	for _, lans := range tests {
		var move, title, ok = b.Move(lans)
		if !ok {
			t.Error(lans, "no book move")
			continue
		}
		if title == "" {
			t.Error(lans, "no title")
		}
		var board = common.NewBoard(mustStart(t))
		for _, lan := range append(append([]string{}, lans...), move) {
			var m, found = common.ParseMoveLAN(&board.Position, lan)
			if !found || !board.MakeMove(m) {
				t.Fatal(lans, "illegal book move", lan)
			}
		}
	}
}

func TestBookRejectsUnknownMoves(t *testing.T) {
	var b = New()
	if _, _, ok := b.Move([]string{"e2e5"}); ok {
		t.Error("book accepted an impossible move")
	}
}

func mustStart(t *testing.T) common.Position {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
