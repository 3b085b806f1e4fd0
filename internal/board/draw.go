package board

// Draw-rule lookback constants, KNDB Artikel 9, grounded on util.c's
// is_draw.
const (
	loneKingLookback9b = 5  // lone king vs 1-2 pieces incl. a king
	loneKingLookback9c = 16 // lone king vs 3 pieces incl. a king
	quietMoveLimit9d   = 50 // 25 whole moves (50 plies) without a capture or man move
)

// IsDraw reports whether pos should be scored as a draw. ply is the
// current search ply, with 0 meaning "not in search" (a caller outside
// the tree, e.g. reporting a finished game); within a search tree
// (ply > 1) a single repetition suffices (rule 9e), while ply == 1
// (the outermost ply actually searched) still requires two prior
// occurrences, same as ply == 0. Grounded on util.c's is_draw.
//
// The lone-king rules (9b/9c) only apply at ply == 0: no need to run
// them while searching, since the endgame database already finishes a
// winning lone-king sequence before this draw rule would otherwise cut
// it short. pv_search0 always calls into pv_search with ply already
// at 1, so this gate means 9b/9c structurally never fire during
// search, exactly as in the original.
func IsDraw(pos *Position, ply int) bool {
	if ply == 0 {
		if loneKingPersists(pos, 1, 2, loneKingLookback9b) {
			return true
		}
		if loneKingPersists(pos, 3, 3, loneKingLookback9c) {
			return true
		}
	}
	if repetitionDraw(pos, ply) {
		return true
	}
	if quietMoveCount(pos) >= quietMoveLimit9d {
		return true
	}
	return false
}

// loneKingPersists reports whether pos has a lone king on one side
// facing minOpp..maxOpp opposing pieces (including an opposing king),
// and that material balance has held for at least lookback plies
// (no capture occurred in that span; piece count is capture-invariant
// otherwise since promotions don't change it).
func loneKingPersists(pos *Position, minOpp, maxOpp, lookback int) bool {
	white := pos.White.PopCount()
	black := pos.Black.PopCount()

	var loneSide, oppSide Side
	var oppCount int
	switch {
	case white == 1 && pos.KingsOf(White) != 0:
		loneSide, oppSide, oppCount = White, Black, black
	case black == 1 && pos.KingsOf(Black) != 0:
		loneSide, oppSide, oppCount = Black, White, white
	default:
		return false
	}
	_ = loneSide
	if oppCount < minOpp || oppCount > maxOpp {
		return false
	}
	if pos.KingsOf(oppSide) == 0 {
		return false
	}

	total := pos.PieceCount()
	cur := pos.Parent
	for plies := 0; plies < lookback; plies++ {
		if cur == nil {
			return false
		}
		if cur.PieceCount() != total {
			return false
		}
		cur = cur.Parent
	}
	return true
}

// repetitionDraw walks the parent chain looking for a position equal
// to pos (same white/black/kings/side), stopping after the first
// ancestor whose MoveInfo indicates a capture or man move (non-zero)
// -- positions further back cannot recur exactly since material or a
// man's square changed at that point.
func repetitionDraw(pos *Position, ply int) bool {
	required := 2
	if ply > 1 {
		required = 1
	}
	count := 0
	for cur := pos.Parent; cur != nil; cur = cur.Parent {
		if Equal(cur, pos) {
			count++
		}
		if cur.MoveInfo != 0 {
			break
		}
	}
	return count >= required
}

// quietMoveCount counts consecutive plies (starting at pos, walking
// Parent) whose MoveInfo is 0 ("king move, non-capture"), i.e. plies
// since the last capture or man move.
func quietMoveCount(pos *Position) int {
	count := 0
	for cur := pos; cur != nil && cur.MoveInfo == 0; cur = cur.Parent {
		count++
	}
	return count
}
