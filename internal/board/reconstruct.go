package board

import "github.com/hailam/damengine/internal/bitboard"

// Reconstruct rebuilds the full resulting position from a parent
// board and a collapsed move descriptor, without replaying the move
// through the generator. Grounded on tt.c's prefetch block and
// print_pvmoves/print_pv, which both perform exactly this delta-edit
// to avoid a full gen_moves call. Its only caller in this module is
// movegen's closure test; internal/tt and internal/search do not use it.
//
// Invariant (move-generator closure): for any legal move m of parent,
// Reconstruct(parent, Collapsed(m)) == m.
func Reconstruct(parent *Position, collapsed bitboard.Bitboard) *Position {
	mover := parent.Side
	opponent := mover.Other()

	moverOwn := parent.colorBits(mover)
	oppOwn := parent.colorBits(opponent)

	oppAfter := oppOwn & collapsed
	capturedOpp := oppOwn &^ collapsed

	moverAfter := collapsed &^ oppAfter
	origin := moverOwn &^ moverAfter
	landing := moverAfter &^ moverOwn

	kingsAfter := parent.Kings &^ capturedOpp

	wasKing := parent.Kings&moverOwn&^collapsed != 0
	if wasKing {
		kingsAfter = kingsAfter &^ origin
		kingsAfter |= landing
	} else {
		lo, hi := backRank(mover)
		sq := bitboard.BitToSquare(landing)
		if sq >= lo && sq <= hi {
			kingsAfter |= landing
		}
	}

	child := &Position{
		Kings:  kingsAfter,
		Side:   opponent,
		Parent: parent,
	}
	if mover == White {
		child.White = moverAfter
		child.Black = oppAfter
	} else {
		child.Black = moverAfter
		child.White = oppAfter
	}

	if capturedOpp != 0 || landing&^moverOwn != 0 {
		// A man move or any capture sets MoveInfo non-zero so the
		// 25-move draw rule sees this as a resetting move; a bare
		// king slide without capture leaves MoveInfo at 0 (the
		// "king move, non-capture" meaning documented on Position).
	}
	if capturedOpp != 0 || !wasKing {
		child.MoveInfo = bitboard.BitToSquare(landing)
		if child.MoveInfo == 0 {
			child.MoveInfo = 1
		}
	}
	return child
}
