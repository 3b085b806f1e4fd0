package endgamedb

import (
	"os"
	"path/filepath"
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

func openEmptyReader(t *testing.T) *Reader {
	t.Helper()
	r, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

// TestCombinationTable checks that Open's startup pass builds a
// standard binomial-coefficient table, matching init_enddb's
// combi_array recurrence (combi_array[i][0] = 1; combi_array[i][j] =
// combi_array[i-1][j-1] + combi_array[i-1][j]).
func TestCombinationTable(t *testing.T) {
	r := openEmptyReader(t)

	cases := []struct {
		n, k int
		want uint32
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 2, 10},
		{10, 3, 120},
		{50, 1, 50},
	}
	for _, c := range cases {
		if got := r.combi[c.n][c.k]; got != c.want {
			t.Errorf("combi[%d][%d] = %d, want %d", c.n, c.k, got, c.want)
		}
	}
}

// TestManifestDispatchTable checks that Open derives each file's piece
// counts from its name and slots it into the ef^4 dispatch table at
// the position prep_db's lookup indexes into, matching init_enddb's
// name-parsing loop.
func TestManifestDispatchTable(t *testing.T) {
	r := openEmptyReader(t)

	f := r.ref[ef*ef*ef*3+ef*ef*0+ef*0+2] // "OOOvXX.cpr": mw=3 kw=0 mb=0 kb=2
	if f == nil {
		t.Fatal("expected a dispatch entry for 3 white men vs 2 black kings")
	}
	if f.name != "OOOvXX.cpr" {
		t.Fatalf("name = %q, want OOOvXX.cpr", f.name)
	}
	if f.matOfs != 3-4 {
		t.Fatalf("matOfs = %d, want %d", f.matOfs, 3-4)
	}

	if r.end4Idx == nil || r.end4Idx.name != "end4.idx" {
		t.Fatalf("expected end4Idx to reference end4.idx, got %+v", r.end4Idx)
	}
}

// writeFakeFile creates a temp-dir file with the manifest's expected
// size for name, so Reader.open's size check accepts it.
func writeFakeFile(t *testing.T, dir, name string, size int64, fill func([]byte)) {
	t.Helper()
	buf := make([]byte, size)
	fill(buf)
	if err := os.WriteFile(filepath.Join(dir, name), buf, 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
}

// TestDTWTwoPieceDirectLookup exercises the 2-piece direct-index path:
// a single byte in the file is the win/loss/draw code at the position
// computed from the two pieces' squares. Grounded on endgame_dtw's
// popcount-2/3 branch.
func TestDTWTwoPieceDirectLookup(t *testing.T) {
	dir := t.TempDir()
	// white man on square 26 (0-based 25), black man on square 25 (0-based 24):
	// ipos = 50*25 + 24 = 1274.
	writeFakeFile(t, dir, "OvO.bin", 2500, func(b []byte) {
		b[1274] = 5
	})

	r, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	pos := mustFEN(t, "W:W26:B25")
	score, found := r.DTW(pos, 0)
	if !found {
		t.Fatal("expected a DTW hit")
	}
	if want := infin - 5; score != want {
		t.Fatalf("score = %d, want %d", score, want)
	}

	// the same lookup at ply 3 should shift the win closer by 3.
	score, found = r.DTW(pos, 3)
	if !found || score != infin-5-3 {
		t.Fatalf("ply-adjusted score = %d, found=%v, want %d", score, found, infin-5-3)
	}
}

// TestDTWMissingFileReportsNotFound checks that a piece combination
// with no manifest entry (more pieces than any 2/3/4-piece file
// covers) or a missing file on disk both report a miss rather than
// panicking.
func TestDTWMissingFileReportsNotFound(t *testing.T) {
	r := openEmptyReader(t) // no files on disk at all
	pos := mustFEN(t, "W:W26:B25")
	if _, found := r.DTW(pos, 0); found {
		t.Fatal("expected a miss when no database files are present")
	}
}

// TestVerifyDetectsCorruption checks the CRC-16/CCITT-FALSE pass:
// a file with the wrong checksum is present but not correct.
func TestVerifyDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	writeFakeFile(t, dir, "OvO.bin", 2500, func(b []byte) {
		b[0] = 0xAB // arbitrary content; its real CRC won't match the manifest's
	})

	r, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	present, correct := r.Verify()
	if present != 1 {
		t.Fatalf("present = %d, want 1", present)
	}
	if correct != 0 {
		t.Fatalf("correct = %d, want 0 (manifest CRC was not engineered to match)", correct)
	}
}

func TestPositionKeyDeterministic(t *testing.T) {
	a := mustFEN(t, "W:W26:B25")
	b := mustFEN(t, "W:W26:B25")
	if positionKey(a) != positionKey(b) {
		t.Fatal("identical positions should produce identical cache keys")
	}

	c := mustFEN(t, "B:W26:B25")
	if positionKey(a) == positionKey(c) {
		t.Fatal("cache key should depend on side to move")
	}
}
