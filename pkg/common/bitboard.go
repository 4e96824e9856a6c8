package common

import (
	"math"
	"math/bits"
	"strings"

	"lukechampine.com/frand"
)

const (
	FileAMask uint64 = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask uint64 = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

var FileMask = [8]uint64{
	FileAMask, FileBMask, FileCMask, FileDMask, FileEMask, FileFMask, FileGMask, FileHMask,
}

var (
	SquareMask    [64]uint64
	KnightAttacks [64]uint64
	KingAttacks   [64]uint64
	pawnAttacks   [2][64]uint64 // by SideWhite, SideBlack
	betweenMask   [64][64]uint64
	lineMask      [64][64]uint64
)

func BitboardString(b uint64) string {
	var names []string
	for x := b; x != 0; x &= x - 1 {
		names = append(names, SquareName(FirstOne(x)))
	}
	return "(" + strings.Join(names, ",") + ")"
}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func MoreThanOne(value uint64) bool {
	return value&(value-1) != 0
}

// PawnAttacks returns the squares a pawn of side standing on from attacks.
func PawnAttacks(from int, side bool) uint64 {
	if side {
		return pawnAttacks[SideWhite][from]
	}
	return pawnAttacks[SideBlack][from]
}

func BishopAttacks(from int, occ uint64) uint64 {
	var m = &bishopMagics[from]
	return m.attacks[m.index(occ)]
}

func RookAttacks(from int, occ uint64) uint64 {
	var m = &rookMagics[from]
	return m.attacks[m.index(occ)]
}

func QueenAttacks(from int, occ uint64) uint64 {
	return BishopAttacks(from, occ) | RookAttacks(from, occ)
}

type direction struct {
	file, rank int
}

var (
	rookDirections   = []direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirections = []direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	knightSteps      = []direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps        = []direction{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
)

func onBoard(file, rank int) bool {
	return file >= FileA && file <= FileH && rank >= Rank1 && rank <= Rank8
}

func stepAttacks(sq int, steps []direction) uint64 {
	var result uint64
	for _, d := range steps {
		var f, r = File(sq) + d.file, Rank(sq) + d.rank
		if onBoard(f, r) {
			result |= SquareMask[MakeSquare(f, r)]
		}
	}
	return result
}

// slidingAttacks walks every direction from sq up to and including the first blocker.
func slidingAttacks(sq int, occ uint64, dirs []direction) uint64 {
	var result uint64
	for _, d := range dirs {
		for f, r := File(sq)+d.file, Rank(sq)+d.rank; onBoard(f, r); f, r = f+d.file, r+d.rank {
			var b = SquareMask[MakeSquare(f, r)]
			result |= b
			if occ&b != 0 {
				break
			}
		}
	}
	return result
}

// Fancy magic bitboards: https://www.chessprogramming.org/Magic_Bitboards
type magic struct {
	mask    uint64
	magic   uint64
	shift   uint
	attacks []uint64
}

func (m *magic) index(occ uint64) uint64 {
	return ((occ & m.mask) * m.magic) >> m.shift
}

var (
	rookMagics   [64]magic
	bishopMagics [64]magic
	rookTable    [0x19000]uint64
	bishopTable  [0x1480]uint64
)

// magicSeed fixes the generated magics, so start-up is reproducible.
var magicSeed = []byte("corvid magic bitboard generator!")

func relevantOccupancy(sq int, dirs []direction) uint64 {
	var edges = ((Rank1Mask | Rank8Mask) &^ (Rank1Mask << (8 * Rank(sq)))) |
		((FileAMask | FileHMask) &^ FileMask[File(sq)])
	return slidingAttacks(sq, 0, dirs) &^ edges
}

func initMagics(magics *[64]magic, table []uint64, dirs []direction, rng *frand.RNG) {
	var occupancies, reference [4096]uint64
	var epoch [4096]int
	var attempt = 0
	var offset = 0
	for sq := range magics {
		var m = &magics[sq]
		m.mask = relevantOccupancy(sq, dirs)
		m.shift = uint(64 - PopCount(m.mask))
		var size = 1 << PopCount(m.mask)
		m.attacks = table[offset : offset+size]
		offset += size

		// enumerate the subsets of the mask
		var n = 0
		for occ := uint64(0); ; {
			occupancies[n] = occ
			reference[n] = slidingAttacks(sq, occ, dirs)
			n++
			occ = (occ - m.mask) & m.mask
			if occ == 0 {
				break
			}
		}

		for found := false; !found; {
			m.magic = rng.Uint64n(math.MaxUint64) & rng.Uint64n(math.MaxUint64) & rng.Uint64n(math.MaxUint64)
			if PopCount((m.mask*m.magic)>>56) < 6 {
				continue
			}
			attempt++
			found = true
			for i := 0; i < n; i++ {
				var idx = m.index(occupancies[i])
				if epoch[idx] < attempt {
					epoch[idx] = attempt
					m.attacks[idx] = reference[i]
				} else if m.attacks[idx] != reference[i] {
					found = false
					break
				}
			}
		}
	}
}

func initLines() {
	var directions = append(append([]direction(nil), rookDirections...), bishopDirections...)
	for s1 := 0; s1 < 64; s1++ {
		for _, d := range directions {
			var ray uint64
			for f, r := File(s1)+d.file, Rank(s1)+d.rank; onBoard(f, r); f, r = f+d.file, r+d.rank {
				var s2 = MakeSquare(f, r)
				betweenMask[s1][s2] = ray
				ray |= SquareMask[s2]
			}
			var full = ray | SquareMask[s1] |
				slidingAttacks(s1, 0, []direction{{-d.file, -d.rank}})
			for x := ray; x != 0; x &= x - 1 {
				lineMask[s1][FirstOne(x)] = full
			}
		}
	}
}

func init() {
	for sq := range SquareMask {
		SquareMask[sq] = uint64(1) << uint(sq)
	}
	for sq := 0; sq < 64; sq++ {
		KnightAttacks[sq] = stepAttacks(sq, knightSteps)
		KingAttacks[sq] = stepAttacks(sq, kingSteps)
		pawnAttacks[SideWhite][sq] = stepAttacks(sq, []direction{{-1, 1}, {1, 1}})
		pawnAttacks[SideBlack][sq] = stepAttacks(sq, []direction{{-1, -1}, {1, -1}})
	}
	var rng = frand.NewCustom(magicSeed, 1024, 8)
	initMagics(&rookMagics, rookTable[:], rookDirections, rng)
	initMagics(&bishopMagics, bishopTable[:], bishopDirections, rng)
	initLines()
}
