// Package engine wires the transposition table, endgame database, and
// opening book into the one process-global context the search package
// needs, and drives a single best-move request end to end. Grounded on
// the "engine context" design note calling for one struct to replace
// scattered global state, and structurally similar to
// hailam-chessplay's engine.go's constructor-builds-everything-once
// shape (without that repo's parallel workers or NNUE, since this
// module's resource model is single-threaded throughout).
package engine

import (
	"context"
	"fmt"
	"log"
	"math/bits"
	"os"
	"time"

	"github.com/hailam/damengine/internal/board"
	"github.com/hailam/damengine/internal/book"
	"github.com/hailam/damengine/internal/endgamedb"
	"github.com/hailam/damengine/internal/search"
	"github.com/hailam/damengine/internal/tt"
)

// ttEntrySize approximates internal/tt.Entry's in-memory footprint,
// used only to turn a megabyte budget into a power-of-two slot count.
// Grounded on transposition.go's own entrySize-guess-then-round-down
// approach rather than an exact unsafe.Sizeof, since the table's
// actual allocation already rounds to a power of two regardless.
const ttEntrySize = 24

// Options configures a Context. Grounded on NewTranspositionTable's
// plain-typed-parameter constructor and the absence of any flag/env/
// file configuration library anywhere in this codebase: CLI glue is
// out of scope here, so a struct literal is the whole of this
// module's configuration surface.
type Options struct {
	// TTSizeMB is the transposition table size in megabytes. Zero
	// defaults to 64.
	TTSizeMB int
	// EndgameDBDir, if non-empty, is opened as an endgame database
	// directory. A missing or invalid directory is logged and leaves
	// the context without a database: probes always miss and search
	// falls back to ordinary alpha-beta.
	EndgameDBDir string
	// BookPath, if non-empty, is loaded as an opening book. A missing
	// or invalid file is logged and leaves the context without a
	// book: book probing always misses.
	BookPath string
}

// Context is the one struct holding the transposition table, endgame
// database, and opening book for the lifetime of a process, created
// once and passed by pointer into the search it drives.
type Context struct {
	TT   *tt.Table
	EGDB *endgamedb.Reader
	Book *book.Book
}

// NewContext builds a Context from opts. Transposition-table
// allocation failure is the one fatal condition here (mirroring
// tt.New's allocation, the engine's equivalent of the original's
// fatal "alloc failed" exit): it is recovered here and turned into a
// diagnostic line followed by os.Exit, rather than propagated as a Go
// panic past this boundary, since nothing above this layer is
// expected to recover from it either.
func NewContext(opts Options) *Context {
	sizeMB := opts.TTSizeMB
	if sizeMB <= 0 {
		sizeMB = 64
	}

	ctx := &Context{TT: allocTable(sizeMB)}

	if opts.EndgameDBDir != "" {
		var r *endgamedb.Reader
		info, err := os.Stat(opts.EndgameDBDir)
		if err == nil && !info.IsDir() {
			err = fmt.Errorf("%s is not a directory", opts.EndgameDBDir)
		}
		if err == nil {
			r, err = endgamedb.Open(opts.EndgameDBDir)
		}
		if err != nil {
			log.Printf("engine: endgame database %q unavailable, continuing without it: %v", opts.EndgameDBDir, err)
		} else {
			ctx.EGDB = r
		}
	}

	if opts.BookPath != "" {
		b, err := book.Load(opts.BookPath)
		if err != nil {
			log.Printf("engine: opening book %q unavailable, continuing without it: %v", opts.BookPath, err)
		} else {
			ctx.Book = b
		}
	}

	return ctx
}

func allocTable(sizeMB int) *tt.Table {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: fatal: transposition table allocation failed: %v", r)
			os.Exit(1)
		}
	}()
	entries := uint64(sizeMB) * 1024 * 1024 / ttEntrySize
	exp := uint32(bits.Len64(entries)) - 1
	if exp < 2 {
		exp = 2
	}
	return tt.New(exp)
}

// Close releases the endgame database's open file handles, if any.
func (c *Context) Close() error {
	if c.EGDB == nil {
		return nil
	}
	return c.EGDB.Close()
}

// NewSearcher returns a Searcher wired to this context's transposition
// table, endgame database, and opening book.
func (c *Context) NewSearcher() *search.Searcher {
	return search.New(c.TT, c.EGDB, c.Book)
}

// BestMove runs a single move request to completion: a thin
// convenience wrapper most callers reach for instead of constructing
// a Searcher and Options by hand, mirroring Engine.Search /
// Engine.SearchWithLimits's split in hailam-chessplay's engine.go.
func (c *Context) BestMove(ctx context.Context, pos *board.Position, moveTime time.Duration) search.Result {
	return c.NewSearcher().Think(ctx, pos, search.Options{MoveTime: moveTime})
}
