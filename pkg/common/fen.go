package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid fen")

type coloredPiece struct {
	Type int
	Side bool
}

const pieceLetters = "pnbrqk"

var castleLetters = [...]struct {
	flag   int
	letter byte
}{
	{WhiteKingSide, 'K'},
	{WhiteQueenSide, 'Q'},
	{BlackKingSide, 'k'},
	{BlackQueenSide, 'q'},
}

// NewPositionFromFEN reads placement, side, castling and en passant fields.
// The halfmove clock is optional; the fullmove number is ignored.
func NewPositionFromFEN(fen string) (Position, error) {
	var fields = strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}
	var board, ok = parsePlacement(fields[0])
	if !ok {
		return Position{}, fmt.Errorf("%w: bad placement %q", ErrInvalidFEN, fields[0])
	}

	var wtm bool
	switch fields[1] {
	case "w":
		wtm = true
	case "b":
	default:
		return Position{}, fmt.Errorf("%w: bad side %q", ErrInvalidFEN, fields[1])
	}

	var castleRights = 0
	for _, item := range castleLetters {
		if strings.IndexByte(fields[2], item.letter) >= 0 {
			castleRights |= item.flag
		}
	}

	var ep = ParseSquare(fields[3])
	if ep == SquareNone && fields[3] != "-" {
		return Position{}, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, fields[3])
	}

	var rule50 = 0
	if len(fields) > 4 {
		rule50, _ = strconv.Atoi(fields[4])
	}

	var p, legal = newPosition(&board, wtm, castleRights, ep, rule50)
	if !legal {
		return Position{}, fmt.Errorf("%w: illegal position %q", ErrInvalidFEN, fen)
	}
	return p, nil
}

func parsePlacement(s string) (board [64]coloredPiece, ok bool) {
	var ranks = strings.Split(s, "/")
	if len(ranks) != 8 {
		return board, false
	}
	for i, row := range ranks {
		var rank = Rank8 - i
		var file = FileA
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
			} else {
				var piece = parsePiece(ch)
				if piece.Type == Empty || file > FileH {
					return board, false
				}
				board[MakeSquare(file, rank)] = piece
				file++
			}
			if file > FileH+1 {
				return board, false
			}
		}
		if file != FileH+1 {
			return board, false
		}
	}
	return board, true
}

func pieceLetter(pieceType int, side bool) byte {
	var ch = pieceLetters[pieceType-Pawn]
	if side {
		ch -= 'a' - 'A'
	}
	return ch
}

// String formats p as FEN. The fullmove number is derived from the halfmove clock.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		var gap = 0
		for file := FileA; file <= FileH; file++ {
			var piece, side = p.GetPieceTypeAndSide(MakeSquare(file, rank))
			if piece == Empty {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteByte(byte('0' + gap))
				gap = 0
			}
			sb.WriteByte(pieceLetter(piece, side))
		}
		if gap > 0 {
			sb.WriteByte(byte('0' + gap))
		}
		if rank != Rank1 {
			sb.WriteByte('/')
		}
	}

	if p.WhiteMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteByte('-')
	}
	for _, item := range castleLetters {
		if p.CastleRights&item.flag != 0 {
			sb.WriteByte(item.letter)
		}
	}

	sb.WriteByte(' ')
	if p.EpSquare == SquareNone {
		sb.WriteByte('-')
	} else {
		sb.WriteString(SquareName(p.EpSquare))
	}
	fmt.Fprintf(&sb, " %d %d", p.Rule50, p.Rule50/2+1)
	return sb.String()
}
