package eval

import (
	"testing"

	"github.com/hailam/damengine/internal/board"
)

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func TestInitialPositionIsBalanced(t *testing.T) {
	if got := Evaluate(board.NewInitial()); got != 0 {
		t.Fatalf("initial position should evaluate to 0, got %d", got)
	}
}

// TestEvaluatorSymmetry checks the invariant every feature in eval.c
// is built to uphold: evaluating a position and evaluating its
// 180-degree mirrored, color-swapped twin must give opposite scores.
func TestEvaluatorSymmetry(t *testing.T) {
	positions := []*board.Position{
		board.NewInitial(),
		mustFEN(t, "W:W31:B20"),
		mustFEN(t, "W:W28,32,33,48:B17,18,19,23"),
		mustFEN(t, "B:WK25,K30:BK21,K46"),
		mustFEN(t, "W:W24,29,33,34:B3,4,5,9,10,13,14"),
	}
	for _, pos := range positions {
		got := Evaluate(pos)
		inv := Evaluate(pos.Invert())
		if got != -inv {
			t.Fatalf("Evaluate(%s)=%d, Evaluate(invert)=%d, want opposites", pos.String(), got, inv)
		}
	}
}

func TestGamePhase(t *testing.T) {
	cases := []struct {
		pieces int
		want   int
	}{
		{40, 0},
		{32, 0},
		{31, 1},
		{24, 1},
		{23, 2},
		{16, 2},
		{15, 3},
		{2, 3},
	}
	for _, c := range cases {
		if got := GamePhase(c.pieces); got != c.want {
			t.Fatalf("GamePhase(%d) = %d, want %d", c.pieces, got, c.want)
		}
	}
}

func TestKingOutweighsMan(t *testing.T) {
	pos := mustFEN(t, "W:WK1:B2")
	if got := Evaluate(pos); got <= 0 {
		t.Fatalf("a king against a lone man should score positive for white, got %d", got)
	}
}
