package movegen

import (
	"github.com/hailam/damengine/internal/bitboard"
	"github.com/hailam/damengine/internal/board"
)

// manForwardDirections returns the two diagonal directions a man of
// side s advances along (captures use all four; quiet moves only the
// two forward ones). White advances toward row 0 (SE/SW); black
// advances toward row 9 (NE/NW).
func manForwardDirections(s board.Side) [2]bitboard.Direction {
	if s == board.White {
		return [2]bitboard.Direction{bitboard.SE, bitboard.SW}
	}
	return [2]bitboard.Direction{bitboard.NE, bitboard.NW}
}

// genNonCaptures generates every quiet move: a man step to an empty
// forward diagonal square (promoting on the opposite back rank), or a
// king slide any distance along an empty diagonal until blocked.
// Grounded on move.c's genmoves_noncapt.
func genNonCaptures(pos *board.Position, list *MoveList) {
	mover := pos.Side
	empty := pos.Empty()

	for _, sq := range pos.Men(mover).Squares() {
		for _, dir := range manForwardDirections(mover) {
			to := bitboard.Neighbor(sq, dir)
			if to == 0 || !empty.IsSet(to) {
				continue
			}
			list.Moves = append(list.Moves, Move{Result: buildQuietResult(pos, mover, false, sq, to)})
		}
	}

	for _, sq := range pos.KingsOf(mover).Squares() {
		for _, dir := range directions {
			for to := bitboard.Neighbor(sq, dir); to != 0 && empty.IsSet(to); to = bitboard.Neighbor(to, dir) {
				list.Moves = append(list.Moves, Move{Result: buildQuietResult(pos, mover, true, sq, to)})
			}
		}
	}
}

func buildQuietResult(pos *board.Position, mover board.Side, wasKing bool, from, to int) *board.Position {
	moverOwn := pos.Bits(mover) &^ bitboard.SquareBit(from) | bitboard.SquareBit(to)
	kings := pos.Kings
	moveInfo := 0

	if wasKing {
		kings = kings &^ bitboard.SquareBit(from)
		kings |= bitboard.SquareBit(to)
		// moveInfo stays 0: a king move, non-capture.
	} else {
		lo, hi := promotionRank(mover)
		if to >= lo && to <= hi {
			kings |= bitboard.SquareBit(to)
		}
		moveInfo = to // a man move always resets the 25-move counter.
	}

	child := &board.Position{
		Kings:    kings,
		Side:     mover.Other(),
		Parent:   pos,
		MoveInfo: moveInfo,
	}
	if mover == board.White {
		child.White = moverOwn
		child.Black = pos.Black
	} else {
		child.Black = moverOwn
		child.White = pos.White
	}
	return child
}
