package rules

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares; bit i is set when square i is a member.
//
//	      +-----------------------+
//	    8 |00 01 02 03 04 05 06 07|
//	    7 |08 09 10 11 12 13 14 15|
//	    6 |16 17 18 19 20 21 22 23|
//	    5 |24 25 26 27 28 29 30 31|
//	    4 |32 33 34 35 36 37 38 39|
//	    3 |40 41 42 43 44 45 46 47|
//	    2 |48 49 50 51 52 53 54 55|
//	    1 |56 57 58 59 60 61 62 63|
//	      +-----------------------+
//	       A  B  C  D  E  F  G  H
type Bitboard uint64

// Empty is the bitboard with no squares set.
const Empty Bitboard = 0

// FromRanks expands every selected row to all eight files. Bit 0 of ranks
// selects row 0 (rank 8), bit 7 selects row 7 (rank 1).
func FromRanks(ranks uint8) Bitboard {
	var b Bitboard
	for row := 0; row < 8; row++ {
		if ranks&(1<<row) != 0 {
			b |= Bitboard(0xFF) << (row * 8)
		}
	}
	return b
}

// FromQuadrant mirrors a square of the top-left 4x4 quadrant (numbered 0-15,
// row-major) into all four quadrants of the board.
func FromQuadrant(bit int) Bitboard {
	r, c := bit/4, bit%4
	return FromSquares(
		Square(r*8+c),
		Square(r*8+7-c),
		Square((7-r)*8+c),
		Square((7-r)*8+7-c),
	)
}

// FromSquares returns a bitboard with exactly the given squares set.
// Invalid squares are ignored.
func FromSquares(squares ...Square) Bitboard {
	var b Bitboard
	for _, sq := range squares {
		b = b.Set(sq)
	}
	return b
}

// squareBB returns the single-bit mask for sq, or Empty when sq is off the board.
func squareBB(sq Square) Bitboard {
	if !sq.Valid() {
		return Empty
	}
	return Bitboard(1) << uint(sq)
}

func (b Bitboard) Has(sq Square) bool { return b&squareBB(sq) != 0 }
func (b Bitboard) Set(sq Square) Bitboard { return b | squareBB(sq) }
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ squareBB(sq) }

func (b Bitboard) Or(o Bitboard) Bitboard { return b | o }
func (b Bitboard) And(o Bitboard) Bitboard { return b & o }
func (b Bitboard) Xor(o Bitboard) Bitboard { return b ^ o }

// Not returns the complement. The uint64 width keeps it within the board.
func (b Bitboard) Not() Bitboard { return ^b }

// Count returns the number of squares set.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// First returns the lowest set square, or NoSquare if b is empty.
func (b Bitboard) First() Square {
	if b == Empty {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Squares lists the set squares in index order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for m := uint64(b); m != 0; m &= m - 1 {
		out = append(out, Square(bits.TrailingZeros64(m)))
	}
	return out
}

// String draws the bitboard as eight rows, rank 8 first, '*' for set squares.
func (b Bitboard) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			if b.Has(Square(row*8 + file)) {
				sb.WriteByte('*')
			} else {
				sb.WriteByte('_')
			}
		}
	}
	return sb.String()
}
