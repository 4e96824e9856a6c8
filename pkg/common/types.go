package common

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

type Position struct {
	Pawns, Knights, Bishops, Rooks, Queens, Kings, White, Black, Checkers uint64
	WhiteMove                                                             bool
	CastleRights, Rule50, EpSquare                                        int
	Key                                                                   uint64
	LastMove                                                              Move
}

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	SideWhite = iota
	SideBlack
)

// MaxMoves bounds the legal moves of any reachable position.
const MaxMoves = 218

type SearchInfo struct {
	Score    UciScore
	Depth    int
	SelDepth int
	Nodes    int64
	Time     int64
	HashFull int
	TbHits   int64
	MainLine []Move
}

type UciScore struct {
	Centipawns int
	Mate       int
}
