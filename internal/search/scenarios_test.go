package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/damengine/internal/board"
	"github.com/hailam/damengine/internal/endgamedb"
	"github.com/hailam/damengine/internal/eval"
	"github.com/hailam/damengine/internal/movegen"
)

// TestConcreteScenarios exercises the module's headline end-to-end
// scenarios in one place: the initial position's move count, a forced
// single capture, a forced maximal multi-capture, evaluator symmetry,
// a known drawn two-king endgame-database lookup, and draw-by-
// repetition detection.
func TestConcreteScenarios(t *testing.T) {
	t.Run("initial position has 9 quiet moves and no captures", func(t *testing.T) {
		list := movegen.Generate(board.NewInitial(), movegen.AllMoves)
		if list.NPCapt != 0 {
			t.Fatalf("expected no captures from the initial position, got NPCapt=%d", list.NPCapt)
		}
		if len(list.Moves) != 9 {
			t.Fatalf("expected 9 opening moves, got %d", len(list.Moves))
		}
	})

	t.Run("W:W28:B23 has exactly one move, landing on 19 unpromoted", func(t *testing.T) {
		pos := mustFEN(t, "W:W28:B23")
		list := movegen.Generate(pos, movegen.AllMoves)
		if len(list.Moves) != 1 {
			t.Fatalf("expected exactly 1 move, got %d", len(list.Moves))
		}
		result := list.Moves[0].Result
		if result.Black.PopCount() != 0 {
			t.Fatal("expected the only move to capture the black man")
		}
		if !result.White.IsSet(19) {
			t.Fatal("expected the white man to land on square 19")
		}
		if result.Kings.IsSet(19) {
			t.Fatal("expected the man on 19 to remain unpromoted")
		}
	})

	t.Run("W:W27,28,38,39:B16,17,18,19 only keeps the 4-capture moves", func(t *testing.T) {
		pos := mustFEN(t, "W:W27,28,38,39:B16,17,18,19")
		list := movegen.Generate(pos, movegen.AllMoves)
		if list.NPCapt != 4 {
			t.Fatalf("expected the forced capture count to be 4, got %d", list.NPCapt)
		}
		for _, m := range list.Moves {
			if m.Result.Black.PopCount() != 0 {
				t.Fatalf("expected every listed move to clear all 4 black men, %d remain", m.Result.Black.PopCount())
			}
		}
	})

	t.Run("evaluator symmetry", func(t *testing.T) {
		if s := eval.Evaluate(board.NewInitial()); s != 0 {
			t.Fatalf("expected the initial position to evaluate to 0, got %d", s)
		}
		pos := mustFEN(t, "W:W31:B20")
		if got, want := eval.Evaluate(pos), -eval.Evaluate(pos.Invert()); got != want {
			t.Fatalf("eval(b) = %d, want -eval(invert(b)) = %d", got, want)
		}
	})

	t.Run("W:WK26:BK1 is a known drawn two-king endgame", func(t *testing.T) {
		dir := t.TempDir()
		// ipos = 50*25 + 0 = 1250: white king on square 26 (0-based 25),
		// black king on square 1 (0-based 0). Code 100 is the draw code
		// (endVal's "c==100" branch), matching endgame_dtw's draw path.
		buf := make([]byte, 2500)
		buf[1250] = 100
		if err := os.WriteFile(filepath.Join(dir, "XvX.bin"), buf, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		r, err := endgamedb.Open(dir)
		if err != nil {
			t.Fatalf("endgamedb.Open: %v", err)
		}
		defer r.Close()

		pos := mustFEN(t, "W:WK26:BK1")
		score, found := r.DTW(pos, 0)
		if !found {
			t.Fatal("expected a DTW hit for a 2-king position")
		}
		// matOfs for a symmetric 1-king-vs-1-king file is 0: the
		// draw-case score carries no material tilt either way.
		if score != 0 {
			t.Fatalf("expected the drawn position's score to be 0, got %d", score)
		}
	})

	t.Run("draw by repetition", func(t *testing.T) {
		white := board.NewInitial().White
		black := board.NewInitial().Black

		p0 := &board.Position{White: white, Black: black, Side: board.White}
		p1 := &board.Position{White: white, Black: black, Side: board.Black, Parent: p0}
		p2 := &board.Position{White: white, Black: black, Side: board.White, Parent: p1}

		if !board.IsDraw(p2, 2) {
			t.Fatal("expected a position repeating an ancestor with the same side to move to be reported a draw")
		}
	})
}
