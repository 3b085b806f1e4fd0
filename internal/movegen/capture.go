package movegen

import (
	"github.com/hailam/damengine/internal/bitboard"
	"github.com/hailam/damengine/internal/board"
)

// listAdder enforces the forced-majority-capture rule while captures
// are discovered in no particular length order: shorter sequences
// than the current best are discarded, a longer sequence resets the
// list, and ties are deduplicated by resulting-board comparison (only
// needed from 4 captures on, since shorter sequences admit no
// reordering ambiguity in practice here). Grounded on move.c's
// addlist_capt.
type listAdder struct {
	list *MoveList
}

func (a *listAdder) offer(parent *board.Position, mover board.Side, moverWasKing bool,
	start, land int, captured bitboard.Bitboard, turningPoints []int) {

	n := captured.PopCount()
	switch {
	case n < a.list.NPCapt:
		return
	case n > a.list.NPCapt:
		a.list.Moves = a.list.Moves[:0]
		a.list.NPCapt = n
	}

	result := buildCaptureResult(parent, mover, moverWasKing, start, land, captured)

	if n >= 4 {
		for _, m := range a.list.Moves {
			if sameResult(m.Result, result) {
				return
			}
		}
	}

	a.list.Moves = append(a.list.Moves, Move{Result: result, TurningPoints: append([]int(nil), turningPoints...)})
}

func sameResult(a, b *board.Position) bool {
	return a.White == b.White && a.Black == b.Black && a.Kings == b.Kings
}

// buildCaptureResult assembles the resulting position for a capture
// sequence: captured pieces (and their own king status) are removed;
// a man promotes iff its final landing square is the opposite back
// rank (mid-sequence crossings never promote); a king retains king
// status. Grounded on move.c's addlist_capt resulting-board
// construction.
func buildCaptureResult(parent *board.Position, mover board.Side, moverWasKing bool,
	start, land int, captured bitboard.Bitboard) *board.Position {

	opponent := mover.Other()
	moverOwn := parent.Bits(mover) &^ bitboard.SquareBit(start) | bitboard.SquareBit(land)
	oppOwn := parent.Bits(opponent) &^ captured
	kings := parent.Kings &^ captured

	if moverWasKing {
		kings = kings &^ bitboard.SquareBit(start)
		kings |= bitboard.SquareBit(land)
	} else {
		lo, hi := promotionRank(mover)
		if land >= lo && land <= hi {
			kings |= bitboard.SquareBit(land)
		}
	}

	child := &board.Position{
		Kings:    kings,
		Side:     opponent,
		Parent:   parent,
		MoveInfo: land,
	}
	if mover == board.White {
		child.White = moverOwn
		child.Black = oppOwn
	} else {
		child.Black = moverOwn
		child.White = oppOwn
	}
	return child
}

// promotionRank returns the back rank a man of side s promotes upon
// reaching: white promotes on 1..5, black on 46..50.
func promotionRank(s board.Side) (lo, hi int) {
	if s == board.White {
		return 1, 5
	}
	return 46, 50
}

// genCaptures finds every maximum-length capture sequence available
// to the side to move and populates list via the listAdder.
func genCaptures(pos *board.Position, list *MoveList) {
	adder := &listAdder{list: list}
	mover := pos.Side
	occNoOrigin := func(origin int) bitboard.Bitboard {
		return pos.Occupied() &^ bitboard.SquareBit(origin)
	}

	for _, sq := range pos.Men(mover).Squares() {
		captureFromSquare(pos, adder, mover, false, sq, sq, occNoOrigin(sq), 0, nil)
	}
	for _, sq := range pos.KingsOf(mover).Squares() {
		captureFromSquare(pos, adder, mover, true, sq, sq, occNoOrigin(sq), 0, nil)
	}
}

// captureFromSquare is the recursive DFS extending a capture sequence
// from the current square cur (the moving piece started the whole
// sequence at start). occNoOrigin is the original board's occupancy
// with the start square cleared (the only square the rules treat as
// passable "empty" beyond the board's actual empty squares).
func captureFromSquare(pos *board.Position, adder *listAdder, mover board.Side, isKing bool,
	start, cur int, occNoOrigin bitboard.Bitboard, captured bitboard.Bitboard, turningPoints []int) {

	extended := false
	opp := pos.Bits(mover.Other())

	for _, dir := range directions {
		if isKing {
			victim, landings := kingRay(cur, dir, occNoOrigin, opp, captured)
			if victim == 0 {
				continue
			}
			for _, landing := range landings {
				extended = true
				captureFromSquare(pos, adder, mover, true, start, landing, occNoOrigin,
					captured|bitboard.SquareBit(victim), append(append([]int(nil), turningPoints...), landing))
			}
			continue
		}

		victim := bitboard.Neighbor(cur, dir)
		if victim == 0 || !opp.IsSet(victim) || captured.IsSet(victim) {
			continue
		}
		landing := bitboard.Neighbor(victim, dir)
		if landing == 0 || occNoOrigin.IsSet(landing) {
			continue
		}
		extended = true
		captureFromSquare(pos, adder, mover, false, start, landing, occNoOrigin,
			captured|bitboard.SquareBit(victim), append(append([]int(nil), turningPoints...), landing))
	}

	if !extended && captured != 0 {
		adder.offer(pos, mover, isKing, start, cur, captured, turningPoints)
	}
}

// kingRay casts a ray from sq in direction dir across empty squares
// (per occNoOrigin) until it meets a piece. If that piece is an
// un-captured opponent, it returns the victim square and every empty
// square beyond it along the same ray (each a valid landing distance
// for a flying king); otherwise (a friendly piece, or an opponent
// already captured earlier in this sequence) it returns 0, blocked.
func kingRay(sq int, dir bitboard.Direction, occNoOrigin, opp, captured bitboard.Bitboard) (victim int, landings []int) {
	cur := sq
	for {
		next := bitboard.Neighbor(cur, dir)
		if next == 0 {
			return 0, nil
		}
		if occNoOrigin.IsSet(next) {
			if !opp.IsSet(next) || captured.IsSet(next) {
				return 0, nil
			}
			victim = next
			land := next
			for {
				beyond := bitboard.Neighbor(land, dir)
				if beyond == 0 || occNoOrigin.IsSet(beyond) {
					break
				}
				landings = append(landings, beyond)
				land = beyond
			}
			return victim, landings
		}
		cur = next
	}
}
