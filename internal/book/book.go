// Package book implements opening-book lookup: a sorted array of
// known positions, each carrying a human move-strength annotation,
// binary-searched by board contents and weighted-randomly sampled
// among the candidate continuations that are themselves in the book.
// Grounded on original_source/core/book.c.
package book

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/hailam/damengine/internal/bitboard"
	"github.com/hailam/damengine/internal/board"
)

// recordSize is the on-disk width of one book entry: 8+8+8 bytes for
// white/black/kings, 1 byte for the side to move, 1 byte for the
// annotation, padded to a round record size.
const recordSize = 32

// Annotation values, matching book.c's moveinfo codes stored on each
// book position (book.c reuses the bitboard struct's general-purpose
// moveinfo field for this; this package stores the same code in the
// loaded Position's MoveInfo, a third use of that field's documented
// overload).
const (
	AnnotNone     = 0
	AnnotGood     = 1 // "!"
	AnnotPoor     = 2 // "?"
	AnnotVeryGood = 3 // "!!", always chosen when reachable
	AnnotVeryPoor = 4 // "??"
)

// Book is a loaded, sorted opening book.
type Book struct {
	positions []*board.Position // ascending per board.Compare
}

// Load reads a book file: a flat sequence of recordSize-byte entries,
// little-endian, each (white, black, kings, side, annotation,
// padding). Grounded on book.c's init_book (mmap-free here since the
// book is small enough to read wholesale, unlike the endgame
// databases).
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("book: %w", err)
	}
	if len(data)%recordSize != 0 {
		return nil, fmt.Errorf("book: %s size %d is not a multiple of %d", path, len(data), recordSize)
	}
	n := len(data) / recordSize
	if n == 0 {
		return nil, fmt.Errorf("book: %s is an empty book file", path)
	}

	positions := make([]*board.Position, n)
	for i := 0; i < n; i++ {
		rec := data[i*recordSize : (i+1)*recordSize]
		positions[i] = &board.Position{
			White:    bitboard.Bitboard(binary.LittleEndian.Uint64(rec[0:8])),
			Black:    bitboard.Bitboard(binary.LittleEndian.Uint64(rec[8:16])),
			Kings:    bitboard.Bitboard(binary.LittleEndian.Uint64(rec[16:24])),
			Side:     board.Side(rec[24]),
			MoveInfo: int(rec[25]),
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		return board.Compare(positions[i], positions[j]) < 0
	})
	return &Book{positions: positions}, nil
}

// find returns the book's stored copy of pos (carrying its
// annotation), or nil if pos is not in the book.
func (b *Book) find(pos *board.Position) *board.Position {
	i := sort.Search(len(b.positions), func(i int) bool {
		return board.Compare(b.positions[i], pos) >= 0
	})
	if i < len(b.positions) && board.Compare(b.positions[i], pos) == 0 {
		return b.positions[i]
	}
	return nil
}

// annotWeight turns a candidate move's annotation into a selection
// weight among n book-covered candidates. Grounded on book.c's
// annot_weight ("very good" is handled by the caller before this is
// ever consulted).
func annotWeight(annot, n int) int {
	switch annot {
	case AnnotGood:
		return n
	case AnnotPoor, AnnotVeryPoor:
		return 0
	default:
		return 1
	}
}

// Probe looks up parent (the position before any candidate move) in
// the book; if present, it weighs every candidate whose resulting
// position is also in the book and returns its index, or -1 if the
// book has nothing to say here. A "very good" continuation is always
// preferred outright. Grounded on book.c's get_bookmove; unlike the
// original, a zero total weight across candidates (e.g. every
// reachable entry is annotated "poor") returns -1 instead of dividing
// by zero.
func (b *Book) Probe(parent *board.Position, candidates []*board.Position) int {
	if b.find(parent) == nil {
		return -1
	}

	type hit struct {
		idx   int
		entry *board.Position
	}
	var hits []hit
	for i, c := range candidates {
		if e := b.find(c); e != nil {
			hits = append(hits, hit{i, e})
			if e.MoveInfo == AnnotVeryGood {
				return i
			}
		}
	}
	if len(hits) == 0 {
		return -1
	}

	total := 0
	for _, h := range hits {
		total += annotWeight(h.entry.MoveInfo, len(hits))
	}
	if total <= 0 {
		return -1
	}

	x := rand.IntN(total)
	for _, h := range hits {
		x -= annotWeight(h.entry.MoveInfo, len(hits))
		if x < 0 {
			return h.idx
		}
	}
	return -1
}
