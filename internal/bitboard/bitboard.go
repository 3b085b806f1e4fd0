// Package bitboard implements the 54-bit packed board representation
// used throughout the engine: 50 playing squares numbered 1..50 packed
// into a 64-bit word with four unused "ghost" bits inserted so that
// every diagonal neighbor is reachable by a constant bit shift.
package bitboard

import "math/bits"

// Bitboard is a set of squares. Only bits produced by SquareBit (and
// combinations thereof) are meaningful; ghost bits are never set by
// any exported constructor.
type Bitboard uint64

// Ghost bit positions: ±5/±6 constant shifts between diagonal
// neighbors only hold because these four bits are never assigned to a
// playing square.
const (
	G1 Bitboard = 1 << 10
	G2 Bitboard = 1 << 21
	G3 Bitboard = 1 << 32
	G4 Bitboard = 1 << 43

	Ghosts = G1 | G2 | G3 | G4

	// All50 is the set of all 50 playing squares.
	All50 Bitboard = (1<<54 - 1) &^ Ghosts
)

// bitOf[n] is the bit position of square n (1..50); bitOf[0] is unused.
var bitOf [51]int

// squareOf[p] is the square number occupying bit position p (0..53),
// or 0 if p is a ghost bit.
var squareOf [54]int

// mirrorBit[p] is the bit position of the 180-degree-rotated square,
// i.e. the bit for square (51-squareOf[p]).
var mirrorBit [54]int

func init() {
	for n := 1; n <= 50; n++ {
		p := (n - 1) + (n-1)/10
		bitOf[n] = p
		squareOf[p] = n
	}
	for p := 0; p < 54; p++ {
		if squareOf[p] == 0 {
			mirrorBit[p] = -1
			continue
		}
		mirrorBit[p] = bitOf[51-squareOf[p]]
	}
}

// SquareBit returns the bitboard with only square n (1..50) set.
func SquareBit(n int) Bitboard {
	return 1 << uint(bitOf[n])
}

// BitToSquare returns the square number (1..50) for a single-bit
// bitboard, or 0 if b is empty or a ghost bit.
func BitToSquare(b Bitboard) int {
	if b == 0 {
		return 0
	}
	return squareOf[bits.TrailingZeros64(uint64(b))]
}

// Set returns b with square n set.
func (b Bitboard) Set(n int) Bitboard { return b | SquareBit(n) }

// Clear returns b with square n cleared.
func (b Bitboard) Clear(n int) Bitboard { return b &^ SquareBit(n) }

// IsSet reports whether square n is occupied in b.
func (b Bitboard) IsSet(n int) bool { return b&SquareBit(n) != 0 }

// PopCount returns the number of occupied squares.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the bitboard containing only the lowest set bit.
func (b Bitboard) LSB() Bitboard { return b & -b }

// MSB returns the bitboard containing only the highest set bit.
func (b Bitboard) MSB() Bitboard {
	if b == 0 {
		return 0
	}
	return 1 << uint(63-bits.LeadingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest set bit.
func (b *Bitboard) PopLSB() Bitboard {
	lsb := b.LSB()
	*b &= *b - 1
	return lsb
}

// Empty reports whether no bits are set.
func (b Bitboard) Empty() bool { return b == 0 }

// Squares returns the square numbers (1..50) set in b, ascending.
func (b Bitboard) Squares() []int {
	sqs := make([]int, 0, b.PopCount())
	for b != 0 {
		bit := b.PopLSB()
		sqs = append(sqs, BitToSquare(bit))
	}
	return sqs
}

// Mirror rotates b 180 degrees (square n -> square 51-n), used to
// reuse white-perspective formulas for black and for side-normalized
// endgame-database lookups.
func Mirror(b Bitboard) Bitboard {
	var out Bitboard
	for t := b; t != 0; {
		bit := t.PopLSB()
		p := bits.TrailingZeros64(uint64(bit))
		out |= 1 << uint(mirrorBit[p])
	}
	return out
}

// Direction identifies one of the four diagonals from a square.
// Row index increases from square 1's row (black's home row) toward
// square 50's row (white's home row); a white man's forward
// directions are SE/SW (decreasing row), a black man's are NE/NW.
type Direction int

const (
	NE Direction = iota
	NW
	SE
	SW
)

// neighborSquare[sq][dir] is the adjacent square number in that
// direction, or 0 if off the board. Built once in init from the
// standard 10x10 row/column grid rather than by replicating the
// ghost-bit shift-and-mask arithmetic by hand: the playing squares
// form a checkerboard where square n sits at grid row/col (ri, ci)
// with ri = (n-1)/5 and the column determined by row parity, and the
// four diagonal neighbors are (ri±1, ci±1) clipped to the board. This
// table-driven approach is easier to audit than raw bit shifts and is
// used by the move generator for every adjacency/ray-cast query.
var neighborSquare [51][4]int

// squareRow/squareCol give each square's 0-indexed grid row/column.
var squareRow [51]int
var squareCol [51]int

// squareAt[row][col] is the square number at that grid cell, or 0.
var squareAt [10][10]int

func init() {
	for n := 1; n <= 50; n++ {
		ri := (n - 1) / 5
		k := (n - 1) % 5
		var ci int
		if ri%2 == 0 {
			ci = 1 + 2*k
		} else {
			ci = 2 * k
		}
		squareRow[n] = ri
		squareCol[n] = ci
		squareAt[ri][ci] = n
	}
	for n := 1; n <= 50; n++ {
		ri, ci := squareRow[n], squareCol[n]
		neighborSquare[n][NE] = squareAtOrZero(ri+1, ci+1)
		neighborSquare[n][NW] = squareAtOrZero(ri+1, ci-1)
		neighborSquare[n][SE] = squareAtOrZero(ri-1, ci+1)
		neighborSquare[n][SW] = squareAtOrZero(ri-1, ci-1)
	}
}

func squareAtOrZero(ri, ci int) int {
	if ri < 0 || ri > 9 || ci < 0 || ci > 9 {
		return 0
	}
	return squareAt[ri][ci]
}

// Neighbor returns the adjacent square number in direction dir from
// square sq, or 0 if there is none (edge of board).
func Neighbor(sq int, dir Direction) int {
	return neighborSquare[sq][dir]
}

// Row returns the 0-indexed grid row of square sq (0 = black's home
// row, 9 = white's home row).
func Row(sq int) int { return squareRow[sq] }
