// Package eval implements the static position evaluator: material,
// the breakthrough-to-promotion term, king material and strategic
// squares, and the thirteen phase-weighted positional features.
// Grounded on original_source/core/eval.c and break.c.
package eval

import "github.com/hailam/damengine/internal/bitboard"

// sq returns the bitboard for square n (1..50), white's own numbering
// ("Sxx" in eval.c/break.c).
func sq(n int) bitboard.Bitboard { return bitboard.SquareBit(n) }

// r returns the bitboard for square n under black's reversed numbering
// ("Rxx" in eval.c/break.c): R_n occupies the same bit as S_(51-n).
func r(n int) bitboard.Bitboard { return bitboard.SquareBit(51 - n) }

func sqs(ns ...int) bitboard.Bitboard {
	var b bitboard.Bitboard
	for _, n := range ns {
		b |= sq(n)
	}
	return b
}

func rs(ns ...int) bitboard.Bitboard {
	var b bitboard.Bitboard
	for _, n := range ns {
		b |= r(n)
	}
	return b
}

func sqRange(lo, hi int) bitboard.Bitboard {
	var b bitboard.Bitboard
	for n := lo; n <= hi; n++ {
		b |= sq(n)
	}
	return b
}

// rowMask returns ROW<row> (row 1..10, counted from black's back rank
// at row 1 the way eval.c numbers squares 1..5 as row 1).
func rowMask(row int) bitboard.Bitboard {
	lo := 5*(row-1) + 1
	return sqRange(lo, lo+4)
}

// robMask returns ROB<row>, the same rows counted from the bottom
// (ROB<row> == ROW<11-row>).
func robMask(row int) bitboard.Bitboard { return rowMask(11 - row) }

var colSquares = [11][]int{
	1:  {6, 16, 26, 36, 46},
	2:  {1, 11, 21, 31, 41},
	3:  {7, 17, 27, 37, 47},
	4:  {2, 12, 22, 32, 42},
	5:  {8, 18, 28, 38, 48},
	6:  {3, 13, 23, 33, 43},
	7:  {9, 19, 29, 39, 49},
	8:  {4, 14, 24, 34, 44},
	9:  {10, 20, 30, 40, 50},
	10: {5, 15, 25, 35, 45},
}

var colMask [11]bitboard.Bitboard

func init() {
	for i := 1; i <= 10; i++ {
		colMask[i] = sqs(colSquares[i]...)
	}
}

// btoi converts a boolean condition to 0/1, standing in for the C
// source's bare bool-in-arithmetic idiom ("please excuse the mixing
// of bools and ints", eval.c).
func btoi(cond bool) int {
	if cond {
		return 1
	}
	return 0
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
