// Package tt implements the transposition table: a fixed-size,
// power-of-two array of 4-slot buckets (one cache line each) probed
// with a Jenkins mix64 hash of the board, used by the search to cache
// previously computed bounds and best moves. Grounded on
// original_source/core/tt.h and tt.c.
package tt

import (
	"math/rand"

	"github.com/hailam/damengine/internal/bitboard"
	"github.com/hailam/damengine/internal/board"
)

const (
	infin    = 2000000000
	maxExact = 64
)

// Entry is one transposition-table slot. Grounded on tt.h's ttentry
// (the C bitfield packing collapses away in Go; the fields keep their
// original widths in spirit via Depth's uint8 and BestMove's 54-bit
// bitboard.Bitboard).
type Entry struct {
	Sig        uint32
	Score      int32
	Depth      uint8
	AlphaBound bool
	BetaBound  bool
	BestMove   bitboard.Bitboard
}

// Table is the transposition table.
type Table struct {
	entries  []Entry
	mask     uint32
	hashInit uint64
}

// New allocates a table of 2^exp entries. The mask's two low bits are
// always zero so every bucket holds exactly 4 slots, mirroring
// init_tt's cache-line alignment rationale (here a consequence of
// slot indexing rather than memory alignment, since Go gives no
// control over slice placement). exp must be at least 2.
func New(exp uint32) *Table {
	n := uint32(1) << exp
	t := &Table{
		entries: make([]Entry, n),
		mask:    n - 4,
	}
	t.Wipe()
	return t
}

// Flush reseeds the hash function with a fresh random initializer.
// Every entry becomes unreachable under the new hash without having
// to zero the table. Grounded on tt.c's flush_tt.
func (t *Table) Flush() {
	t.hashInit = rand.Uint64()
}

// Wipe clears every entry and reseeds with a fixed initializer, for
// reproducible timing tests. Grounded on tt.c's wipe_tt.
func (t *Table) Wipe() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.hashInit = 0x0ecf2aaef2c937b6
}

// mix64 is Bob Jenkins' lookup8.c mixing function (public domain),
// transliterated from tt.h's mix64 macro.
func mix64(a, b, c uint64) (uint64, uint64, uint64) {
	a -= b
	a -= c
	a ^= c >> 43
	b -= c
	b -= a
	b ^= a << 9
	c -= a
	c -= b
	c ^= b >> 8
	a -= b
	a -= c
	a ^= c >> 38
	b -= c
	b -= a
	b ^= a << 23
	c -= a
	c -= b
	c ^= b >> 5
	a -= b
	a -= c
	a ^= c >> 35
	b -= c
	b -= a
	b ^= a << 49
	c -= a
	c -= b
	c ^= b >> 11
	a -= b
	a -= c
	a ^= c >> 12
	b -= c
	b -= a
	b ^= a << 18
	c -= a
	c -= b
	c ^= b >> 22
	return a, b, c
}

// bucket scrambles pos into a bucket index and an entry signature.
// Grounded on probe_tt/store_tt's shared hashing preamble.
func (t *Table) bucket(pos *board.Position) (index int, sig uint32) {
	a := uint64(pos.White) + t.hashInit
	b := uint64(pos.Black) + t.hashInit
	c := uint64(pos.Kings) + 0x9e3779b97f4a7c13 // golden ratio, arbitrary
	_, b, c = mix64(a, b, c)
	index = int(uint32(c) & t.mask)
	sig = uint32(b) ^ uint32(pos.Side)
	return index, sig
}

// adjustScoreFromTT converts a stored mate/dtw score into one
// relative to the probing ply.
func adjustScoreFromTT(score, ply int) int {
	switch {
	case score > infin-maxExact:
		return score - ply
	case score < maxExact-infin:
		return score + ply
	default:
		return score
	}
}

// adjustScoreToTT is adjustScoreFromTT's inverse, applied when a
// mate/dtw score is stored.
func adjustScoreToTT(score, ply int) int {
	switch {
	case score > infin-maxExact:
		return score + ply
	case score < maxExact-infin:
		return score - ply
	default:
		return score
	}
}

// Probe looks up pos. found reports whether any of the bucket's 4
// slots carries pos's signature (bestMove is then valid and usable
// for move ordering or PV reconstruction regardless of depth).
// cutoff reports that the stored depth is sufficient and the bound
// settles the search at this node (the caller should return score
// directly). alphaImprove reports a non-conclusive beta-bound result
// that still raises the caller's alpha. Grounded on tt.c's probe_tt;
// the prefetch-on-bestmove branch is not reproduced here since Go has
// no portable manual-prefetch intrinsic: that purely advisory cache
// prefetch is exercised, unprefetched, wherever the caller next probes
// the position reconstructed from bestMove.
func (t *Table) Probe(pos *board.Position, ply, depth int, alpha, beta int) (score int, bestMove bitboard.Bitboard, found, cutoff, alphaImprove bool) {
	index, sig := t.bucket(pos)
	bucket := t.entries[index : index+4]

	slot := -1
	for i := range bucket {
		if bucket[i].Sig == sig {
			slot = i
			break
		}
	}
	if slot < 0 {
		return 0, 0, false, false, false
	}
	e := &bucket[slot]
	bestMove = e.BestMove
	found = true

	if int(e.Depth) < depth {
		return 0, bestMove, found, false, false
	}

	score = adjustScoreFromTT(int(e.Score), ply)
	switch {
	case e.BetaBound:
		if score >= beta {
			return score, bestMove, found, true, false
		}
		if score > alpha {
			return score, bestMove, found, false, true
		}
	case e.AlphaBound:
		if score <= alpha {
			return score, bestMove, found, true, false
		}
	default:
		return score, bestMove, found, true, false
	}
	return 0, bestMove, found, false, false
}

// Store records pos's search result in the bucket's slot 0. If pos's
// signature is already in slot k, that entry is replaced and slots
// 0..k-1 shift down one position; otherwise the bucket's 4th (oldest)
// slot is evicted and the rest shift down -- a plain move-to-front
// scheme that needs no per-entry age or depth comparison. Grounded on
// tt.c's store_tt.
func (t *Table) Store(pos *board.Position, ply, depth, alpha, beta, score int, bestMove bitboard.Bitboard) {
	index, sig := t.bucket(pos)
	bucket := t.entries[index : index+4]

	var oldBest bitboard.Bitboard
	switch {
	case bucket[0].Sig == sig:
		oldBest = bucket[0].BestMove
	case bucket[1].Sig == sig:
		oldBest = bucket[1].BestMove
		bucket[1] = bucket[0]
	case bucket[2].Sig == sig:
		oldBest = bucket[2].BestMove
		bucket[2], bucket[1] = bucket[1], bucket[0]
	case bucket[3].Sig == sig:
		oldBest = bucket[3].BestMove
		bucket[3], bucket[2], bucket[1] = bucket[2], bucket[1], bucket[0]
	default:
		oldBest = bestMove
		bucket[3], bucket[2], bucket[1] = bucket[2], bucket[1], bucket[0]
	}

	e := &bucket[0]
	e.Sig = sig
	e.Depth = uint8(depth)
	e.AlphaBound = score <= alpha
	e.BetaBound = score >= beta
	// an alpha-bound (fail-low) result's best move is near worthless;
	// prefer whatever was already stored for this position.
	if score <= alpha {
		e.BestMove = oldBest
	} else {
		e.BestMove = bestMove
	}
	e.Score = int32(adjustScoreToTT(score, ply))
}
