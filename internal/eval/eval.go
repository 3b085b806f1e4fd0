package eval

import (
	"github.com/hailam/damengine/internal/board"
)

// ValMan is the material value of one man; every other constant in
// this package and in breakthrough.go is expressed as a fraction of
// it, matching break.c/eval.c's VAL_MAN-relative constants. Exported
// for internal/search's time-budget table, which scales by the same
// unit (main.h's VAL_MAN).
const ValMan = 100
const valMan = ValMan

// feature indices, matching eval.c's feat[] table order.
const (
	featKings = iota
	featDevel
	featTempo
	featCentr
	featClass
	featGoldn
	featFlock
	featClock
	featLlock
	featRlock
	featDistr
	featOut22
	featOut24
	numFeatures
)

// featWeight holds eval.c's feat[] shift-count table, one weight per
// game phase (0 = >=32 pieces on the board, down to 3 for <=15).
var featWeight = [numFeatures][4]uint{
	featKings: {14, 14, 14, 14},
	featDevel: {12, 11, 8, 2},
	featTempo: {4, 5, 6, 11},
	featCentr: {10, 11, 12, 12},
	featClass: {9, 9, 10, 10},
	featGoldn: {13, 13, 4, 9},
	featFlock: {13, 13, 13, 13},
	featClock: {17, 17, 17, 17},
	featLlock: {16, 16, 16, 16},
	featRlock: {15, 15, 15, 15},
	featDistr: {11, 11, 12, 4},
	featOut22: {13, 10, 3, 1},
	featOut24: {13, 11, 11, 6},
}

// kingVal is a king's value above valMan, per game phase.
var kingVal = [4]int{4 * valMan / 3, 7 * valMan / 3, 7 * valMan / 3, 7 * valMan / 3}

// GamePhase buckets the piece count on the board into one of four
// phases: 0 for 32+ pieces, 1 for 24-31, 2 for 16-23, 3 for 15 or
// fewer. Grounded on eval.c's game_phase.
func GamePhase(pieceCount int) int {
	phase := 4 - pieceCount/8
	if phase > 3 {
		phase = 3
	}
	if phase < 0 {
		phase = 0
	}
	return phase
}

// Evaluate returns the static score of pos from the point of view of
// the side to move: positive favors pos.Side, negative favors the
// opponent. Grounded on eval.c's eval_board.
func Evaluate(pos *board.Position) int {
	phase := GamePhase(pos.PieceCount())

	// material
	score := valMan * (pos.White.PopCount() - pos.Black.PopCount())

	// breakthroughs
	score += evalBreak(pos)

	// kings: material and strategic lines/squares
	ftval := 0
	if pos.Kings != 0 {
		wk := pos.White & pos.Kings
		bk := pos.Black & pos.Kings
		score += kingVal[phase] * (wk.PopCount() - bk.PopCount())
		if wk != 0 && bk != 0 {
			// both sides have kings; a draw is more likely, and this
			// also discourages mutual breakthroughs when ahead.
			score /= 2
		}
		ftval += 1*(wk & sqs(1, 5, 7, 11, 12, 17, 18, 22, 29, 33, 34, 39, 40, 44, 45, 46, 50)).PopCount() +
			2*(wk & sqs(1, 4, 5, 6, 10, 14, 15, 19, 23, 28, 32, 36, 37, 41, 46, 47, 50)).PopCount()
		ftval -= 1*(bk & rs(1, 5, 7, 11, 12, 17, 18, 22, 29, 33, 34, 39, 40, 44, 45, 46, 50)).PopCount() +
			2*(bk & rs(1, 4, 5, 6, 10, 14, 15, 19, 23, 28, 32, 36, 37, 41, 46, 47, 50)).PopCount()
		score += ftval << featWeight[featKings][phase]
	}

	wm := pos.White &^ pos.Kings
	bm := pos.Black &^ pos.Kings

	// development of the rear
	ftval = 0
	ftval += 1*(wm&sqs(36, 45)).PopCount() -
		1*(wm&sqs(44, 46)).PopCount() -
		2*(wm&sqs(41, 50)).PopCount()
	ftval -= 1*(bm&rs(36, 45)).PopCount() -
		1*(bm&rs(44, 46)).PopCount() -
		2*(bm&rs(41, 50)).PopCount()
	score += ftval << featWeight[featDevel][phase]

	// tempo: degree of advancement
	ftval = 0
	ftval += 1*(wm&(rowMask(9)|rowMask(7)|rowMask(5)|rowMask(3))).PopCount() +
		2*(wm&(rowMask(8)|rowMask(7)|rowMask(4)|rowMask(3))).PopCount() +
		4*(wm&(rowMask(6)|rowMask(5)|rowMask(4)|rowMask(3))).PopCount() +
		8*(wm & rowMask(2)).PopCount()
	ftval -= 1*(bm&(robMask(9)|robMask(7)|robMask(5)|robMask(3))).PopCount() +
		2*(bm&(robMask(8)|robMask(7)|robMask(4)|robMask(3))).PopCount() +
		4*(bm&(robMask(6)|robMask(5)|robMask(4)|robMask(3))).PopCount() +
		8*(bm & robMask(2)).PopCount()
	score += ftval << featWeight[featTempo][phase]
	tempo := ftval

	// occupation of center
	ftval = 0
	ftval += 1*(wm&sqs(27, 28, 34, 37, 38, 39)).PopCount() +
		2*(wm&sqs(28, 29, 32, 33)).PopCount()
	ftval -= 1*(bm&rs(27, 28, 34, 37, 38, 39)).PopCount() +
		2*(bm&rs(28, 29, 32, 33)).PopCount()
	score += ftval << featWeight[featCentr][phase]

	// "classical" configuration
	ftval = 0
	if wm&sqs(29, 32) == sq(32) {
		ftval += 2*btoi(wm&sq(28) != 0) +
			btoi(wm&sqs(27, 28) == sqs(27, 28)) +
			btoi((wm|bm)&sq(28) == 0)
		if tempo > 0 { // pos. tempo diff (white more advanced) reduces classical value
			ftval -= tempo
		}
	}
	if bm&rs(29, 32) == r(32) {
		ftval -= 2*btoi(bm&r(28) != 0) +
			btoi(bm&rs(27, 28) == rs(27, 28)) +
			btoi((bm|wm)&r(28) == 0)
		if tempo < 0 { // neg. tempo diff (black more advanced) reduces classical value
			ftval -= tempo
		}
	}
	score += ftval << featWeight[featClass][phase]

	// "kroonschijf", golden piece
	ftval = 0
	ftval += btoi(wm&sq(48) != 0)
	ftval -= btoi(bm&r(48) != 0)
	score += ftval << featWeight[featGoldn][phase]

	// "hekstelling", fork lock
	ftval = 0
	ftval += btoi((wm&sqs(26, 27, 31, 36))|(bm&sqs(16, 18)) == sqs(26, 27, 31, 36, 16, 18) &&
		(bm & sqs(22, 23, 28)).PopCount() == 1)
	ftval -= btoi((bm&rs(26, 27, 31, 36))|(wm&rs(16, 18)) == rs(26, 27, 31, 36, 16, 18) &&
		(wm & rs(22, 23, 28)).PopCount() == 1)
	score += ftval << featWeight[featFlock][phase]

	// "kettingstelling", chain lock
	ftval = 0
	ftval -= btoi((wm&sqs(27, 28, 29))|(bm&sqs(22, 23, 27, 29)) == sqs(22, 23, 28))
	ftval += btoi((bm&rs(27, 28, 29))|(wm&rs(22, 23, 27, 29)) == rs(22, 23, 28))
	ftval -= btoi((wm&sqs(28, 29, 30))|(bm&sqs(23, 24, 28, 30)) == sqs(23, 24, 29))
	ftval += btoi((bm&rs(28, 29, 30))|(wm&rs(23, 24, 28, 30)) == rs(23, 24, 29))
	score += ftval << featWeight[featClock][phase]

	// "lange vleugel opsluiting", left-wing lock
	ftval = 0
	ftval += btoi((wm&sq(25))|(bm&sq(20)) == sqs(20, 25) && wm&sqs(30, 35) != 0)
	ftval -= btoi((bm&r(25))|(wm&r(20)) == rs(20, 25) && bm&rs(30, 35) != 0)
	score += ftval << featWeight[featLlock][phase]

	// "korte vleugel opsluiting", right-wing lock
	ftval = 0
	ftval += btoi((wm&sqs(6, 22, 26, 28))|(bm&sqs(6, 11, 17, 22)) == sqs(11, 17, 26, 28))
	ftval -= btoi((bm&rs(6, 22, 26, 28))|(wm&rs(6, 11, 17, 22)) == rs(11, 17, 26, 28))
	ftval += btoi((wm&sq(26))|(bm&sqs(16, 21)) == sqs(16, 21, 26) && wm&sqs(27, 32) != 0)
	ftval -= btoi((bm&r(26))|(wm&rs(16, 21)) == rs(16, 21, 26) && bm&rs(27, 32) != 0)
	score += ftval << featWeight[featRlock][phase]

	// distribution of pieces over the wings
	ftval = 0
	ftval -= absInt((wm & (colMask[1] | colMask[2] | colMask[3])).PopCount() -
		(wm & (colMask[8] | colMask[9] | colMask[10])).PopCount())
	ftval += absInt((bm & (colMask[1] | colMask[2] | colMask[3])).PopCount() -
		(bm & (colMask[8] | colMask[9] | colMask[10])).PopCount())
	score += ftval << featWeight[featDistr][phase]

	// poorly defended outpost 22, "kerkhof"
	ftval = 0
	ftval -= btoi(wm&sqs(22, 17) != 0 &&
		wm&sqs(27, 32) != sqs(27, 32) &&
		(wm&sqs(28, 36) != sqs(28, 36) ||
			(bm&sqs(1, 2, 3, 7, 8, 12, 13, 18, 26)).PopCount() >
				(wm&sqs(31, 37, 41, 42, 46, 47, 48)).PopCount()))
	ftval += btoi(bm&rs(22, 17) != 0 &&
		bm&rs(27, 32) != rs(27, 32) &&
		(bm&rs(28, 36) != rs(28, 36) ||
			(wm&rs(1, 2, 3, 7, 8, 12, 13, 18, 26)).PopCount() >
				(bm&rs(31, 37, 41, 42, 46, 47, 48)).PopCount()))
	score += ftval << featWeight[featOut22][phase]

	// poorly defended outpost 24, right wing attack
	ftval = 0
	ftval -= btoi(wm&sq(24) != 0 &&
		((wm&sqs(29, 33, 34)).PopCount() <= 1 ||
			(bm&sqs(3, 4, 5, 9, 10, 13, 14)).PopCount() >
				(wm&sqs(23, 35, 40, 44, 45, 49, 50)).PopCount()))
	ftval += btoi(bm&r(24) != 0 &&
		((bm&rs(29, 33, 34)).PopCount() <= 1 ||
			(wm&rs(3, 4, 5, 9, 10, 13, 14)).PopCount() >
				(bm&rs(23, 35, 40, 44, 45, 49, 50)).PopCount()))
	score += ftval << featWeight[featOut24][phase]

	if pos.Side != board.White {
		score = -score
	}
	return score
}
