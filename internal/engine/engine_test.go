package engine

import (
	"context"
	"testing"
	"time"

	"github.com/hailam/damengine/internal/board"
)

func TestNewContextDefaultsTTSize(t *testing.T) {
	c := NewContext(Options{})
	if c.TT == nil {
		t.Fatal("expected a transposition table even with a zero-value TTSizeMB")
	}
	if c.EGDB != nil {
		t.Fatal("expected no endgame database without an EndgameDBDir")
	}
	if c.Book != nil {
		t.Fatal("expected no book without a BookPath")
	}
}

func TestNewContextToleratesMissingEndgameDBAndBook(t *testing.T) {
	c := NewContext(Options{
		TTSizeMB:     8,
		EndgameDBDir: t.TempDir() + "/does-not-exist",
		BookPath:     t.TempDir() + "/does-not-exist.bin",
	})
	if c.EGDB != nil {
		t.Fatal("expected a missing endgame database directory to leave EGDB nil")
	}
	if c.Book != nil {
		t.Fatal("expected a missing book file to leave Book nil")
	}
}

func TestContextBestMoveReturnsAMove(t *testing.T) {
	c := NewContext(Options{TTSizeMB: 4})
	pos := board.NewInitial()
	res := c.BestMove(context.Background(), pos, 100*time.Millisecond)
	if res.Best == nil {
		t.Fatal("expected a best move from the initial position")
	}
}

func TestContextCloseWithoutDatabaseIsANoop(t *testing.T) {
	c := NewContext(Options{TTSizeMB: 4})
	if err := c.Close(); err != nil {
		t.Fatalf("Close on a context without an endgame database: %v", err)
	}
}
