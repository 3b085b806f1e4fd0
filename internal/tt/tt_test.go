package tt

import (
	"testing"

	"github.com/hailam/damengine/internal/bitboard"
	"github.com/hailam/damengine/internal/board"
)

func TestHashDeterminism(t *testing.T) {
	table := New(10)
	pos := board.NewInitial()

	i1, s1 := table.bucket(pos)
	i2, s2 := table.bucket(pos)
	if i1 != i2 || s1 != s2 {
		t.Fatalf("hash not deterministic: (%d,%d) vs (%d,%d)", i1, s1, i2, s2)
	}

	other := board.NewInitial()
	other.Side = board.Black
	_, s3 := table.bucket(other)
	if s3 == s1 {
		t.Fatalf("signature should depend on side to move")
	}
}

func TestStoreThenProbeExact(t *testing.T) {
	table := New(10)
	pos := board.NewInitial()
	best := bitboard.SquareBit(28)

	table.Store(pos, 0, 6, -100, 100, 42, best)

	score, got, found, cutoff, _ := table.Probe(pos, 0, 6, -100, 100)
	if !found || !cutoff {
		t.Fatalf("expected an exact hit, found=%v cutoff=%v", found, cutoff)
	}
	if score != 42 {
		t.Fatalf("score = %d, want 42", score)
	}
	if got != best {
		t.Fatalf("bestMove = %v, want %v", got, best)
	}
}

func TestProbeRespectsStoredDepth(t *testing.T) {
	table := New(10)
	pos := board.NewInitial()

	table.Store(pos, 0, 3, -100, 100, 10, bitboard.SquareBit(28))

	if _, _, found, cutoff, _ := table.Probe(pos, 0, 6, -100, 100); cutoff {
		t.Fatalf("probing deeper than the stored depth should not cut off, found=%v cutoff=%v", found, cutoff)
	}
	if _, _, found, cutoff, _ := table.Probe(pos, 0, 3, -100, 100); !found || !cutoff {
		t.Fatalf("probing at the stored depth should cut off")
	}
}

func TestProbeBoundSemantics(t *testing.T) {
	table := New(10)
	pos := board.NewInitial()

	// score <= alpha: an alpha (fail-low) bound.
	table.Store(pos, 0, 4, 50, 100, 10, bitboard.SquareBit(28))
	if _, _, _, cutoff, _ := table.Probe(pos, 0, 4, 50, 100); !cutoff {
		t.Fatalf("score <= alpha should cut off when probing the same window")
	}
	if _, _, _, cutoff, alphaImprove := table.Probe(pos, 0, 4, -100, 100); cutoff || alphaImprove {
		t.Fatalf("an alpha-bound score above the new alpha should neither cut off nor improve it")
	}
}

func TestProbeMissReportsNotFound(t *testing.T) {
	table := New(10)
	pos := board.NewInitial()
	if _, _, found, _, _ := table.Probe(pos, 0, 1, -100, 100); found {
		t.Fatalf("expected a miss on an empty table")
	}
}

// TestBucketFourSlotEviction exercises the "TT buckets with all 4
// slots occupied, same-signature collisions" boundary case: with a
// bucket already full of 4 unrelated signatures, storing a new
// position shifts every slot down one and evicts the oldest (slot 3).
func TestBucketFourSlotEviction(t *testing.T) {
	table := New(4) // 16 entries = 4 buckets of 4 slots
	pos := board.NewInitial()
	index, sig := table.bucket(pos)

	bucket := table.entries[index : index+4]
	bucket[0] = Entry{Sig: sig ^ 1}
	bucket[1] = Entry{Sig: sig ^ 2}
	bucket[2] = Entry{Sig: sig ^ 3}
	bucket[3] = Entry{Sig: sig ^ 4}

	table.Store(pos, 0, 2, -10, 10, 1, bitboard.SquareBit(6))

	if bucket[0].Sig != sig {
		t.Fatalf("new entry should land in slot 0")
	}
	if bucket[1].Sig != sig^1 || bucket[2].Sig != sig^2 || bucket[3].Sig != sig^3 {
		t.Fatalf("the 3 newest prior entries should shift down one slot, got sigs %d %d %d",
			bucket[1].Sig, bucket[2].Sig, bucket[3].Sig)
	}
	if _, _, found, _, _ := table.Probe(pos, 0, 2, -10, 10); !found {
		t.Fatalf("expected to find the just-stored entry")
	}
}
