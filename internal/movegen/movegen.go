// Package movegen implements the bitboard-based legal move generator:
// the forced-majority capture search (man DFS + flying-king ray
// casting) and the plain non-capture generator. Grounded on
// original_source/core/move.c.
package movegen

import (
	"github.com/hailam/damengine/internal/bitboard"
	"github.com/hailam/damengine/internal/board"
)

// Mode selects which moves Generate considers.
type Mode int

const (
	// CapturesOnly returns captures if any exist, else an empty list.
	CapturesOnly Mode = iota
	// AllMoves returns captures if any exist, else non-captures.
	AllMoves
)

// Move is one generated move: its resulting position and, for a
// capture, the landing square of every jump in order (the last one is
// the destination), for long notation; nil for a non-capture. The
// capture count shared by the whole list is MoveList.NPCapt.
type Move struct {
	Result        *board.Position
	TurningPoints []int
}

// MoveList is the generator's output.
type MoveList struct {
	Moves  []Move
	NPCapt int // 0 if no move in the list is a capture
}

var directions = [4]bitboard.Direction{bitboard.NE, bitboard.NW, bitboard.SE, bitboard.SW}

// Generate produces the legal moves of pos. Cannot fail: an empty
// AllMoves result means the side to move has lost.
func Generate(pos *board.Position, mode Mode) *MoveList {
	list := &MoveList{}
	genCaptures(pos, list)
	if list.NPCapt > 0 {
		return list
	}
	if mode == AllMoves {
		genNonCaptures(pos, list)
	}
	return list
}
