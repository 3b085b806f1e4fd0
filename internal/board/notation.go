package board

import (
	"fmt"

	"github.com/hailam/damengine/internal/bitboard"
)

// Collapsed returns the "collapsed move" descriptor for a resulting
// position: white|black of that position.
func Collapsed(child *Position) bitboard.Bitboard {
	return child.White | child.Black
}

// MoveSquares recovers the from/to squares and whether the move was a
// capture, comparing a parent position to one of its movegen results.
// Grounded on util.c's move_square/move_captbits, including the
// from==to special case for a king capture that returns to its origin
// square: in that case the destination is not recoverable from the
// bitboard delta alone and is instead read from child.MoveInfo, this
// field's documented overload.
func MoveSquares(parent, child *Position) (from, to int, capture bool) {
	mover := parent.Side
	parentOwn := parent.colorBits(mover)
	childOwn := child.colorBits(mover)

	originBit := parentOwn &^ childOwn
	destBit := childOwn &^ parentOwn

	from = bitboard.BitToSquare(originBit)
	capture = child.Occupied().PopCount() < parent.Occupied().PopCount()

	if destBit == 0 {
		// King capture landing back on its origin square: recover the
		// true destination from the overloaded MoveInfo field.
		to = child.MoveInfo
		from = to
	} else {
		to = bitboard.BitToSquare(destBit)
	}
	return from, to, capture
}

// FormatMove renders a move in short notation ("FROMxTO" for a
// capture, "FROM-TO" otherwise), grounded on util.c's sprint_move.
func FormatMove(parent, child *Position) string {
	from, to, capture := MoveSquares(parent, child)
	if capture {
		return fmt.Sprintf("%dx%d", from, to)
	}
	return fmt.Sprintf("%d-%d", from, to)
}

// FormatMoveLong renders a multi-jump capture using its recorded
// turning points ("FROMxP1xP2x...xTO"), falling back to short
// notation when no turning points were recorded. Grounded on util.c's
// sprint_move_long.
func FormatMoveLong(parent, child *Position, turningPoints []int) string {
	if len(turningPoints) == 0 {
		return FormatMove(parent, child)
	}
	from, to, capture := MoveSquares(parent, child)
	if !capture {
		return FormatMove(parent, child)
	}
	s := fmt.Sprintf("%d", from)
	for _, p := range turningPoints {
		s += fmt.Sprintf("x%d", p)
	}
	if turningPoints[len(turningPoints)-1] != to {
		s += fmt.Sprintf("x%d", to)
	}
	return s
}
