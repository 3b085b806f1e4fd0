package movegen

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

func TestInitialPositionNineQuietMoves(t *testing.T) {
	pos := board.NewInitial()
	list := Generate(pos, AllMoves)
	if list.NPCapt != 0 {
		t.Fatalf("expected no captures from initial position, got npcapt=%d", list.NPCapt)
	}
	if len(list.Moves) != 9 {
		t.Fatalf("expected 9 quiet moves from initial position, got %d", len(list.Moves))
	}
}

func TestMandatoryCapture(t *testing.T) {
	pos := mustFEN(t, "W:W28:B23")
	list := Generate(pos, AllMoves)
	if list.NPCapt != 1 {
		t.Fatalf("expected a single-piece capture, got npcapt=%d", list.NPCapt)
	}
	if len(list.Moves) != 1 {
		t.Fatalf("expected exactly 1 move, got %d", len(list.Moves))
	}
	result := list.Moves[0].Result
	if !result.White.IsSet(19) {
		t.Fatalf("expected white man to land on 19")
	}
	if result.Kings.IsSet(19) {
		t.Fatalf("square 19 is not white's promotion rank, piece must remain a man")
	}
	if result.Black.IsSet(23) {
		t.Fatalf("captured black man on 23 must be removed")
	}
}

func TestMultiCaptureMaximum(t *testing.T) {
	pos := mustFEN(t, "W:W27,28,38,39:B16,17,18,19")
	list := Generate(pos, AllMoves)
	if list.NPCapt != 4 {
		t.Fatalf("expected a 4-piece capture to be forced, got npcapt=%d", list.NPCapt)
	}
	for _, m := range list.Moves {
		if m.Result.Black.PopCount() != 0 {
			t.Fatalf("expected all 4 black men captured, %d remain", m.Result.Black.PopCount())
		}
	}
}

func TestMoveGeneratorClosure(t *testing.T) {
	pos := board.NewInitial()
	list := Generate(pos, AllMoves)
	for _, m := range list.Moves {
		got := board.Reconstruct(pos, board.Collapsed(m.Result))
		if got.White != m.Result.White || got.Black != m.Result.Black || got.Kings != m.Result.Kings {
			t.Fatalf("reconstruct mismatch: got %+v, want %+v", got, m.Result)
		}
	}
}
