package common

// BoardState is the per-ply snapshot pushed by Board.MakeMove.
type BoardState struct {
	Position Position
	Phase    uint8
}

// StateTracker keeps incremental state in lock-step with a Board.
// SaveState is called once per pushed ply and RestoreState once per popped ply.
type StateTracker interface {
	Update(move Move)
	SaveState(state *BoardState)
	RestoreState(state *BoardState)
}

// Board is a Position with a make/unmake stack.
type Board struct {
	Position
	states  []BoardState
	tracker StateTracker
}

func NewBoard(p Position) *Board {
	var b = &Board{
		states: make([]BoardState, 0, 256),
	}
	b.Position = p
	return b
}

func (b *Board) LoadFEN(fen string) error {
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	b.Reset(p)
	return nil
}

// Reset replaces the position and forgets the move history.
func (b *Board) Reset(p Position) {
	b.Position = p
	b.states = b.states[:0]
}

func (b *Board) SetTracker(tracker StateTracker) {
	b.tracker = tracker
}

// Clone copies the position and history without the tracker.
func (b *Board) Clone(extraCapacity int) *Board {
	var states = make([]BoardState, len(b.states), len(b.states)+extraCapacity)
	copy(states, b.states)
	return &Board{
		Position: b.Position,
		states:   states,
	}
}

func (b *Board) Ply() int {
	return len(b.states)
}

// MakeMove applies move and reports false, leaving the board unchanged,
// when it leaves the own king in check.
func (b *Board) MakeMove(move Move) bool {
	var n = len(b.states)
	b.states = append(b.states, BoardState{Position: b.Position})
	var state = &b.states[n]
	if !state.Position.MakeMove(move, &b.Position) {
		b.Position = state.Position
		b.states = b.states[:n]
		return false
	}
	if b.tracker != nil {
		b.tracker.SaveState(state)
		b.tracker.Update(move)
	}
	return true
}

func (b *Board) MakeNullMove() {
	var n = len(b.states)
	b.states = append(b.states, BoardState{Position: b.Position})
	var state = &b.states[n]
	state.Position.MakeNullMove(&b.Position)
	if b.tracker != nil {
		b.tracker.SaveState(state)
	}
}

func (b *Board) UnmakeMove() {
	var n = len(b.states) - 1
	var state = &b.states[n]
	if b.tracker != nil {
		b.tracker.RestoreState(state)
	}
	b.Position = state.Position
	b.states = b.states[:n]
}

func (b *Board) LastMove() Move {
	return b.Position.LastMove
}

// IsRepetition reports whether the current position occurred before
// since the last irreversible move.
func (b *Board) IsRepetition() bool {
	var limit = Max(0, len(b.states)-b.Rule50)
	for i := len(b.states) - 2; i >= limit; i -= 2 {
		if b.states[i].Position.Key == b.Key {
			return true
		}
	}
	return false
}

func (b *Board) IsDraw() bool {
	if b.Rule50 > 100 || (b.Rule50 == 100 && !b.IsCheck()) {
		return true
	}
	return b.IsRepetition() || b.IsInsufficientMaterial()
}

func (b *Board) IsInsufficientMaterial() bool {
	if (b.Pawns | b.Rooks | b.Queens) != 0 {
		return false
	}
	return !MoreThanOne(b.Knights | b.Bishops)
}

// Moves returns the moves applied since the last Reset.
func (b *Board) Moves() []Move {
	var result = make([]Move, 0, len(b.states))
	for i := 1; i < len(b.states); i++ {
		result = append(result, b.states[i].Position.LastMove)
	}
	if len(b.states) > 0 {
		result = append(result, b.Position.LastMove)
	}
	return result
}

// PieceAt returns the piece type on sq and whether it is white.
func (b *Board) PieceAt(sq int) (piece int, white bool) {
	return b.GetPieceTypeAndSide(sq)
}
