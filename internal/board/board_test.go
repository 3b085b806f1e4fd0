package board

import (
	"testing"

	"github.com/hailam/damengine/internal/bitboard"
)

func TestFENRoundTrip(t *testing.T) {
	cases := []string{
		"W:W31,32,33,34,35,36,37,38,39,40,41,42,43,44,45,46,47,48,49,50:B1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20",
		"B:WK26:BK1",
		"W:W27,28,38,39:B16,17,18,19",
	}
	for _, fen := range cases {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		roundTripped, err := ParseFEN(pos.ToFEN())
		if err != nil {
			t.Fatalf("ParseFEN(ToFEN(%q)) = %q: %v", fen, pos.ToFEN(), err)
		}
		if !Equal(pos, roundTripped) {
			t.Fatalf("round trip mismatch for %q: got %q", fen, pos.ToFEN())
		}
	}
}

func TestInvertRoundTrip(t *testing.T) {
	pos := NewInitial()
	if got := pos.Invert().Invert(); !Equal(pos, got) {
		t.Fatalf("Invert(Invert(b)) != b: got %+v", got)
	}
}

func TestPlacePieceRejectsOwnPromotionRank(t *testing.T) {
	pos := EmptyBoard()
	if err := pos.PlacePiece(White, false, 3); err == nil {
		t.Fatal("expected an error placing a white man on its own promotion rank (square 3)")
	}
	if err := pos.PlacePiece(Black, false, 48); err == nil {
		t.Fatal("expected an error placing a black man on its own promotion rank (square 48)")
	}
	// a king is exempt from the rank restriction.
	if err := pos.PlacePiece(White, true, 3); err != nil {
		t.Fatalf("expected a king to be placeable on square 3, got %v", err)
	}
}

func TestPlacePieceRejectsDuplicateSquare(t *testing.T) {
	pos := EmptyBoard()
	if err := pos.PlacePiece(White, false, 25); err != nil {
		t.Fatalf("PlacePiece: %v", err)
	}
	if err := pos.PlacePiece(Black, false, 25); err == nil {
		t.Fatal("expected an error placing a second piece on an occupied square")
	}
}

func TestIsDrawByRepetitionRequiresOneRepeatBelowTheRoot(t *testing.T) {
	// a lone white king and two black kings shuffle back and forth
	// without ever capturing: every MoveInfo stays 0 ("king move"), so
	// the position at p0 recurs exactly at p2, with White again to
	// move.
	white := bitboard.SquareBit(26)
	black := bitboard.SquareBit(1) | bitboard.SquareBit(2)
	kings := white | black

	p0 := &Position{White: white, Black: black, Kings: kings, Side: White}
	p1 := &Position{White: white, Black: black, Kings: kings, Side: Black, Parent: p0}
	p2 := &Position{White: white, Black: black, Kings: kings, Side: White, Parent: p1}

	if !IsDraw(p2, 2) {
		t.Fatal("expected a single repeat below the root (ply>1) to be reported a draw")
	}
	if IsDraw(p2, 0) {
		t.Fatal("expected a single repeat at the root (ply<=1) to require a second repeat before being reported a draw")
	}
}

// TestIsDrawLoneKingRuleOnlyAppliesOutsideSearch locks in the fix for
// rules 9b/9c firing on every qualifying interior search node: a lone
// king vs. a lone king persisting for 5+ plies must NOT be reported a
// draw at ply==1 (pv_search0's own entry ply, the lowest ply any
// search call uses), since the endgame database is relied on to
// finish the win instead; the same position must still be reported a
// draw at ply==0, is_draw's "not in search" case.
func TestIsDrawLoneKingRuleOnlyAppliesOutsideSearch(t *testing.T) {
	whiteSquares := []int{46, 47, 48, 49, 50, 45}
	blackSquares := []int{1, 2, 3, 4, 5, 6}

	var cur *Position
	for i := len(whiteSquares) - 1; i >= 0; i-- {
		white := bitboard.SquareBit(whiteSquares[i])
		black := bitboard.SquareBit(blackSquares[i])
		side := White
		if i%2 == 1 {
			side = Black
		}
		cur = &Position{White: white, Black: black, Kings: white | black, Side: side, Parent: cur}
	}
	pos := cur // a lone white king vs. a lone black king, 6 plies of history deep

	if IsDraw(pos, 1) {
		t.Fatal("expected the lone-king rule not to fire during search (ply==1)")
	}
	if !IsDraw(pos, 0) {
		t.Fatal("expected the lone-king rule to still fire outside search (ply==0)")
	}
}
