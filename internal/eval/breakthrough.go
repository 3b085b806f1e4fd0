package eval

import (
	"github.com/hailam/damengine/internal/board"
)

// Tiered bonuses for an unstoppable or nearly-unstoppable run to
// promotion, in descending order of certainty (XBONUS > MBONUS >
// HBONUS > LBONUS). Grounded on break.c.
const (
	mBonus = 1 << 17
	lBonus = valMan / 9
	hBonus = valMan * 4 / 9
	xBonus = valMan * 5 / 4
)

// evalBreak scores imminent breakthroughs to promotion for the man
// armies of pos, from white's point of view. Grounded on break.c's
// eval_break: the raw shift-and-mask arithmetic translates unchanged
// because bitboard.Bitboard packs squares into the same 54-bit layout
// with the same four ghost bits, so a shift by a fixed amount still
// walks the same diagonal or row step it does in the original.
func evalBreak(pos *board.Position) int {
	wm := pos.White &^ pos.Kings
	bm := pos.Black &^ pos.Kings
	score := 0

	// squares 6..10: empty promotion square to left or right (6 only to right)
	s := (wm & rowMask(2) &^ ((bm & ((bm << 1) | sq(1))) << 5)).PopCount()
	score += s * xBonus

	// squares 41..45: empty promotion square to left or right (45 only to right)
	s = (bm & robMask(2) &^ ((wm & ((wm >> 1) | r(1))) >> 5)).PopCount()
	score -= s * xBonus

	if wm&rowMask(3) != 0 { // squares 11..15
		// row 3 excl. 15, no directly opposed men
		s = (wm & sqs(11, 12, 13, 14) &^ (bm << 11)).PopCount()
		// 15, only held in check by vulnerable 14
		s += btoi((wm&sq(15))|(bm&sqs(4, 5, 10)) == sq(15))
		score += s * mBonus

		// free path, no guards, or a bridge
		if pos.Side == board.White {
			s = (wm & rowMask(3) &^ ((bm << 6) | (bm << 12) | (((wm | bm) << 1) ^ (bm << 11)))).PopCount()
			s += (wm & sqs(11, 12, 13, 14) &^ ((bm << 5) | (bm << 10) | (((wm | bm) >> 1) ^ (bm << 11)))).PopCount()
		} else {
			s = (wm & sqs(11, 12, 13, 14) &^
				((bm << 1) | (bm << 6) | (bm << 11) | (bm << 12)) &^
				((bm << 7) & ((bm >> 1) | (bm << 10)))).PopCount()
			s += (wm & sqs(11, 12, 13, 14) &^
				((bm >> 1) | (bm << 5) | (bm << 11) | (bm << 10)) &^
				((bm << 4) & ((bm << 1) | (bm << 12)))).PopCount()
			s += btoi((wm&sq(15))|(bm&sqs(4, 5, 14)) == sq(15))
		}
		score += s * hBonus
	}

	if bm&robMask(3) != 0 { // squares 36..40
		// row 8 excl. 36, no directly opposed men
		s = (bm & rs(11, 12, 13, 14) &^ (wm >> 11)).PopCount()
		// 36, only held in check by vulnerable 37
		s += btoi((bm&r(15))|(wm&rs(4, 5, 10)) == r(15))
		score -= s * mBonus

		if pos.Side != board.White {
			s = (bm & robMask(3) &^ ((wm >> 6) | (wm >> 12) | (((bm | wm) >> 1) ^ (wm >> 11)))).PopCount()
			s += (bm & rs(11, 12, 13, 14) &^ ((wm >> 5) | (wm >> 10) | (((bm | wm) << 1) ^ (wm >> 11)))).PopCount()
		} else {
			s = (bm & rs(11, 12, 13, 14) &^
				((wm >> 1) | (wm >> 6) | (wm >> 11) | (wm >> 12)) &^
				((wm >> 7) & ((wm << 1) | (wm >> 10)))).PopCount()
			s += (bm & rs(11, 12, 13, 14) &^
				((wm << 1) | (wm >> 5) | (wm >> 11) | (wm >> 10)) &^
				((wm >> 4) & ((wm >> 1) | (wm >> 12)))).PopCount()
			s += btoi((bm&r(15))|(wm&rs(4, 5, 14)) == r(15))
		}
		score -= s * hBonus
	}

	if wm&rowMask(4) != 0 { // squares 16..20
		// row 4 excl. 16, no directly opposed men, or men who may move into opposition
		s = (wm & sqs(17, 18, 19, 20) &^ ((bm << 11) | (bm << 16) | (bm << 17))).PopCount()
		// 16, only held in check by vulnerable 17
		s += btoi((wm&sq(16))|(bm&sqs(1, 6, 7, 11)) == sq(16))
		score += s * mBonus

		if pos.Side == board.White {
			s = btoi((wm&sq(16))|(bm&sqs(1, 6, 7, 11, 17)) == sq(16))
			s += (wm & sqs(17, 18, 19) &^ ((bm << 1) | (bm << 6) | (bm << 11) | (bm << 12) | (bm << 17))).PopCount()
			s += (wm & sqs(17, 18, 19) &^ ((bm >> 1) | (bm << 5) | (bm << 11) | (bm << 10) | (bm << 16))).PopCount()
			s += btoi((wm&sq(20))|(bm&sqs(4, 5, 9, 10, 14, 15)) == sq(20))
		} else {
			s = btoi((wm&sq(16))|(bm&sqs(1, 2, 6, 7, 11, 12, 17)) == sq(16))
			s += btoi((wm&sq(17))|(bm&sqs(1, 2, 6, 7, 11, 16)) == sq(17))
			s += btoi((wm&sq(17))|(bm&sqs(1, 2, 3, 7, 8, 12, 13, 18)) == sq(17))
			s += btoi((wm&sq(18))|(bm&sqs(1, 2, 3, 7, 8, 11, 12, 17)) == sq(18))
			s += btoi((wm&sq(18))|(bm&sqs(2, 3, 4, 8, 9, 13, 14, 19)) == sq(18))
			s += btoi((wm&sq(19))|(bm&sqs(2, 3, 4, 8, 9, 12, 13, 18)) == sq(19))
			s += btoi((wm&sq(19))|(bm&sqs(3, 4, 5, 9, 10, 14, 15, 20)) == sq(19))
			s += btoi((wm&sq(20))|(bm&sqs(3, 4, 5, 9, 10, 14, 15)) == sq(20))
		}
		score += s * lBonus
	}

	if bm&robMask(4) != 0 { // squares 31..35
		// row 7 excl. 35, no directly opposed men, or men who may move into opposition
		s = (bm & rs(17, 18, 19, 20) &^ ((wm >> 11) | (wm >> 16) | (wm >> 17))).PopCount()
		// 35, only held in check by vulnerable 34
		s += btoi((bm&r(16))|(wm&rs(1, 6, 7, 11)) == r(16))
		score -= s * mBonus

		if pos.Side != board.White {
			s = btoi((bm&r(16))|(wm&rs(1, 6, 7, 11, 17)) == r(16))
			s += (bm & rs(17, 18, 19) &^ ((wm >> 1) | (wm >> 6) | (wm >> 11) | (wm >> 12) | (wm >> 17))).PopCount()
			s += (bm & rs(17, 18, 19) &^ ((wm << 1) | (wm >> 5) | (wm >> 11) | (wm >> 10) | (wm >> 16))).PopCount()
			s += btoi((bm&r(20))|(wm&rs(4, 5, 9, 10, 14, 15)) == r(20))
		} else {
			s = btoi((bm&r(16))|(wm&rs(1, 2, 6, 7, 11, 12, 17)) == r(16))
			s += btoi((bm&r(17))|(wm&rs(1, 2, 6, 7, 11, 16)) == r(17))
			s += btoi((bm&r(17))|(wm&rs(1, 2, 3, 7, 8, 12, 13, 18)) == r(17))
			s += btoi((bm&r(18))|(wm&rs(1, 2, 3, 7, 8, 11, 12, 17)) == r(18))
			s += btoi((bm&r(18))|(wm&rs(2, 3, 4, 8, 9, 13, 14, 19)) == r(18))
			s += btoi((bm&r(19))|(wm&rs(2, 3, 4, 8, 9, 12, 13, 18)) == r(19))
			s += btoi((bm&r(19))|(wm&rs(3, 4, 5, 9, 10, 14, 15, 20)) == r(19))
			s += btoi((bm&r(20))|(wm&rs(3, 4, 5, 9, 10, 14, 15)) == r(20))
		}
		score -= s * lBonus
	}

	return score
}
