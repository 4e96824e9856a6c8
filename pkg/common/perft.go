package common

// PerftDetails breaks the leaf count down the usual way.
type PerftDetails struct {
	Nodes      int64
	Captures   int64
	EnPassants int64
	Castles    int64
	Promotions int64
	Checks     int64
	Checkmates int64
}

// PerftDivide holds the leaf count below one root move.
type PerftDivide struct {
	Move  Move
	Nodes int64
}

func Perft(p *Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	var buffer [MoveBufferSize]Move
	var ml = GenerateMoves(buffer[:], p)
	if depth == 1 {
		return int64(len(ml))
	}
	var result int64
	var child Position
	for _, move := range ml {
		p.MakeMove(move, &child)
		result += Perft(&child, depth-1)
	}
	return result
}

func Divide(p *Position, depth int) []PerftDivide {
	var buffer [MoveBufferSize]Move
	var ml = GenerateMoves(buffer[:], p)
	var result = make([]PerftDivide, 0, len(ml))
	var child Position
	for _, move := range ml {
		p.MakeMove(move, &child)
		result = append(result, PerftDivide{
			Move:  move,
			Nodes: Perft(&child, depth-1),
		})
	}
	return result
}

func PerftWithDetails(p *Position, depth int) PerftDetails {
	var result PerftDetails
	perftDetails(p, depth, &result)
	return result
}

func perftDetails(p *Position, depth int, result *PerftDetails) {
	var buffer [MoveBufferSize]Move
	var child Position
	for _, move := range GenerateMoves(buffer[:], p) {
		p.MakeMove(move, &child)
		if depth > 1 {
			perftDetails(&child, depth-1, result)
			continue
		}
		result.Nodes++
		if move.IsCapture() {
			result.Captures++
			if move.MovingPiece() == Pawn && move.To() == p.EpSquare {
				result.EnPassants++
			}
		}
		if move.IsCastle() {
			result.Castles++
		}
		if move.IsPromotion() {
			result.Promotions++
		}
		if child.IsCheck() {
			result.Checks++
			var replies [MoveBufferSize]Move
			if len(GenerateMoves(replies[:], &child)) == 0 {
				result.Checkmates++
			}
		}
	}
}
