// Package endgamedb provides read-only access to Moby Dam's endgame
// databases: exact distance-to-win tables for positions of up to 4
// pieces, and win/draw/loss tables for non-capture positions of 5 or
// 6 pieces. Grounded on original_source/core/end.h and end.c in full.
package endgamedb

import (
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/hailam/damengine/internal/bitboard"
	"github.com/hailam/damengine/internal/board"
)

const (
	// DTWEndPC is the largest piece count with an exact
	// distance-to-win database.
	DTWEndPC = 4
	// MaxEndPC is the largest piece count with a win/draw/loss
	// database.
	MaxEndPC = 6

	ef       = 6 // reference table dimension per piece type
	infin    = 2000000000
	maxExact = 64
	max5Ply  = 148
	maxPly   = 256
)

// piece-type indices, matching core.h's MW/KW/MB/KB egdb ordering:
// the dispatch table is indexed by (white men, white kings, black
// men, black kings) piece counts, in that order.
const (
	mw = iota
	kw
	mb
	kb
)

// file is one opened (or not-yet-opened) endgame database file.
type file struct {
	manifestEntry
	matOfs int32 // small material/positional tie-break nudge returned for draws: mw + 2*kw - mb - 2*kb

	mu      sync.Mutex
	data    []byte
	fd      int
	openErr error // sticky: retrying a file that failed once is pointless
}

// Reader is a handle on a directory of endgame database files. Files
// are opened and mmap'd lazily on first access, each under its own
// mutex; the access counters are updated without synchronization, so
// a Reader is not safe for concurrent probes.
type Reader struct {
	dir        string
	ref        [ef * ef * ef * ef]*file
	files      []*file
	combi      [51][8]uint32
	accesses   [7]uint64 // access counters, index 0 = miss/error
	blockCache *ristretto.Cache[uint64, int]
	end4Idx    *file // "end4.idx", the 4-piece block-offset index file
}

// positionKey derives a cache key for pos's WDL lookup. WDL probes
// during search recur heavily on transposed 5/6-piece positions, so
// memoizing the final value (rather than just the raw decoded bytes)
// avoids re-walking the RLE stream on every repeat.
func positionKey(pos *board.Position) uint64 {
	h := uint64(14695981039346656037)
	for _, word := range [3]uint64{uint64(pos.White), uint64(pos.Black), uint64(pos.Kings)} {
		h ^= word
		h *= 1099511628211
	}
	h ^= uint64(pos.Side)
	h *= 1099511628211
	return h
}

// Open builds a Reader rooted at dir. It does not open any database
// file yet -- files are mapped lazily the first time a lookup needs
// them, mirroring open_endfile's "file not opened before" branch.
// Grounded on init_enddb.
func Open(dir string) (*Reader, error) {
	r := &Reader{dir: dir}

	r.files = make([]*file, len(manifest))
	for i := range manifest {
		f := &file{manifestEntry: manifest[i]}
		r.files[i] = f
		if f.name == "end4.idx" {
			r.end4Idx = f
			continue
		}

		j, cmw, ckw, cmb, ckb := 0, 0, 0, 0, 0
		for j < len(f.name) && f.name[j] != 'v' {
			switch f.name[j] {
			case 'O':
				cmw++
			case 'X':
				ckw++
			}
			j++
		}
		for j < len(f.name) && f.name[j] != '.' {
			switch f.name[j] {
			case 'O':
				cmb++
			case 'X':
				ckb++
			}
			j++
		}
		f.matOfs = int32(cmw + 2*ckw - cmb - 2*ckb)
		r.ref[ef*ef*ef*cmw+ef*ef*ckw+ef*cmb+ckb] = f
	}

	r.combi[0][0] = 1
	for i := 1; i <= 50; i++ {
		r.combi[i][0] = 1
		for j := 1; j < 8; j++ {
			r.combi[i][j] = r.combi[i-1][j-1] + r.combi[i-1][j]
		}
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, int]{
		NumCounters: 1_000_000,
		MaxCost:     200_000, // memoized WDL probe results
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("endgamedb: building block cache: %w", err)
	}
	r.blockCache = cache

	return r, nil
}

// Close releases every mapped file and the decode cache.
func (r *Reader) Close() error {
	r.blockCache.Close()
	var firstErr error
	for _, f := range r.files {
		f.mu.Lock()
		if f.data != nil {
			if err := unix.Munmap(f.data); err != nil && firstErr == nil {
				firstErr = err
			}
			f.data = nil
		}
		if f.fd > 0 {
			if err := unix.Close(f.fd); err != nil && firstErr == nil {
				firstErr = err
			}
			f.fd = 0
		}
		f.mu.Unlock()
	}
	return firstErr
}

// open mmaps f's backing file if it has not been opened (or tried and
// failed) already. Grounded on end.c's open_endfile.
func (r *Reader) open(f *file) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.openErr != nil {
		return f.openErr
	}
	if f.data != nil {
		return nil
	}

	path := filepath.Join(r.dir, f.name)
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		f.openErr = fmt.Errorf("endgamedb: open %s: %w", f.name, err)
		return f.openErr
	}
	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil || stat.Size != f.size {
		unix.Close(fd)
		if err == nil {
			err = fmt.Errorf("wrong size: got %d, want %d", stat.Size, f.size)
		}
		f.openErr = fmt.Errorf("endgamedb: stat %s: %w", f.name, err)
		return f.openErr
	}
	data, err := unix.Mmap(fd, 0, int(f.size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		f.openErr = fmt.Errorf("endgamedb: mmap %s: %w", f.name, err)
		return f.openErr
	}
	unix.Madvise(data, unix.MADV_RANDOM)
	f.fd = fd
	f.data = data
	return nil
}

// compact packs b's squares into a dense 50-bit field with bit n-1
// set for occupied square n, the ghost-free layout the database index
// arithmetic works in. Grounded on prep_db's ghost-elimination shifts,
// built here from bitboard.Bitboard's own square enumeration instead
// of reproducing the four-step carry trick by hand.
func compact(b bitboard.Bitboard) uint64 {
	var out uint64
	for _, sq := range b.Squares() {
		out |= 1 << uint(sq-1)
	}
	return out
}

// pieceLists splits pos into 4 dense 50-bit fields, one per piece
// type, from the point of view of the side to move (mirroring the
// board when Black is to move, so the database always sees a
// White-to-move-equivalent position). Grounded on end.c's prep_db.
func pieceLists(pos *board.Position) (lists [4]uint64) {
	var white, black, kings bitboard.Bitboard
	if pos.Side == board.White {
		white, black, kings = pos.White, pos.Black, pos.Kings
	} else {
		inv := pos.Invert()
		white, black, kings = inv.White, inv.Black, inv.Kings
	}
	lists[mw] = compact(white &^ kings)
	lists[kw] = compact(white & kings)
	lists[mb] = compact(black &^ kings)
	lists[kb] = compact(black & kings)
	return lists
}

// squareIndexes walks a compact 50-bit field and returns each set
// bit's 0-based position in ascending order (bit n-1 for square n, so
// this matches __builtin_ctzll(pos) in the original).
func squareIndexes(field uint64) []int {
	var out []int
	for field != 0 {
		n := bits.TrailingZeros64(field)
		field &= field - 1
		out = append(out, n)
	}
	return out
}

// lookup finds the manifest file covering the piece counts present in
// lists, mapping and opening it if needed. Grounded on prep_db's
// end_ref dispatch and open_endfile call.
func (r *Reader) lookup(lists [4]uint64) (*file, error) {
	f := r.ref[ef*ef*ef*bits.OnesCount64(lists[mw])+
		ef*ef*bits.OnesCount64(lists[kw])+
		ef*bits.OnesCount64(lists[mb])+
		bits.OnesCount64(lists[kb])]
	if f == nil {
		return nil, fmt.Errorf("endgamedb: no database file for this piece combination")
	}
	if err := r.open(f); err != nil {
		r.accesses[0]++
		return nil, err
	}
	return f, nil
}

// DTW finds the exact distance-to-win value of pos from databases
// covering up to DTWEndPC pieces. ply adjusts the returned score to
// be relative to the search root. Grounded on end.c's endgame_dtw.
func (r *Reader) DTW(pos *board.Position, ply int) (int, bool) {
	lists := pieceLists(pos)
	total := bits.OnesCount64(uint64(pos.White | pos.Black))

	var c int8
	var f *file
	var err error

	switch total {
	case 2, 3:
		f, err = r.lookup(lists)
		if err != nil {
			return 0, false
		}
		idx := 0
		for i := 0; i < 4; i++ {
			for _, sq := range squareIndexes(lists[i]) {
				idx = 50*idx + sq
			}
		}
		if idx >= int(f.size) {
			r.accesses[0]++
			return 0, false
		}
		c = int8(f.data[idx])

	case 4:
		idxFile := r.end4Idx
		if err := r.open(idxFile); err != nil {
			r.accesses[0]++
			return 0, false
		}
		f, err = r.lookup(lists)
		if err != nil {
			return 0, false
		}
		ipos := 0
		for i := 0; i < 4; i++ {
			for _, sq := range squareIndexes(lists[i]) {
				ipos = 50*ipos + sq
			}
		}
		li, ofs := ipos/256, ipos%256
		seg := 0
		if li > 0 {
			base := f.idx*73242 + li*3 - 3
			if base < 0 || base+3 > len(idxFile.data) {
				r.accesses[0]++
				return 0, false
			}
			seg = int(idxFile.data[base]) + int(idxFile.data[base+1])*256 + int(idxFile.data[base+2])*65536
		}
		p := seg
		for {
			if p >= len(f.data) {
				r.accesses[0]++
				return 0, false
			}
			code := f.data[p]
			p++
			switch {
			case code >= 255:
				if p+1 >= len(f.data) {
					r.accesses[0]++
					return 0, false
				}
				ofs -= int(f.data[p]) + 1
				p++
				c = int8(endVal[f.data[p]])
				p++
			case code == 191:
				if p >= len(f.data) {
					r.accesses[0]++
					return 0, false
				}
				ofs -= int(f.data[p]) + 1
				p++
				c = 100
			default:
				ofs -= int(endAmt[code])
				c = int8(endVal[code])
			}
			if ofs < 0 {
				break
			}
		}

	default:
		return 0, false
	}

	switch {
	case c == 100:
		return int(f.matOfs), true
	case c > 0:
		r.accesses[f.pcCount]++
		return infin - int(c) - ply, true
	default:
		r.accesses[f.pcCount]++
		return -infin - int(c) + ply, true
	}
}

// indexSingleType computes the combinatorial rank of a piece type's
// square occupation among sq remaining squares, for the WDL index.
// Grounded on end.c's index_singletype.
func (r *Reader) indexSingleType(sq int, field uint64) uint32 {
	var result uint32
	for field != 0 {
		n := bits.OnesCount64(field)
		leading := bits.TrailingZeros64(field)
		result += r.combi[sq][n] - r.combi[sq-leading][n]
		sq -= leading + 1
		field >>= uint(leading + 1)
	}
	return result
}

var pow3 = [5]uint32{1, 3, 9, 27, 81}

// WDL finds the win/draw/loss value of pos from the 5/6-piece
// databases. Valid for non-capture positions only; the caller is
// expected to have checked that no capture is available (see Value).
// Grounded on end.c's endgame_wdl.
func (r *Reader) WDL(pos *board.Position) (int, bool) {
	key := positionKey(pos)
	if cached, ok := r.blockCache.Get(key); ok {
		return cached, true
	}

	lists := pieceLists(pos)
	f, err := r.lookup(lists)
	if err != nil {
		return 0, false
	}

	mbBits := lists[mb]

	// remove white-man index holes at black-man squares
	holes := lists[mb] &^ rowOneMask
	mwBits := lists[mw]
	removed := bits.OnesCount64(holes)
	for holes != 0 {
		lowBit := holes & -holes
		holes &= holes - 1
		mwBits += mwBits & (lowBit - 1)
	}
	mwBits >>= uint(5 + removed)

	// remove black-king index holes at black-man/white-man squares
	holes = lists[mb] | lists[mw]
	kbBits := lists[kb]
	removed = bits.OnesCount64(holes)
	for holes != 0 {
		lowBit := holes & -holes
		holes &= holes - 1
		kbBits += kbBits & (lowBit - 1)
	}
	kbBits >>= uint(removed)

	// remove white-king index holes at black-man/white-man/black-king squares
	holes = lists[mb] | lists[mw] | lists[kb]
	kwBits := lists[kw]
	removed = bits.OnesCount64(holes)
	for holes != 0 {
		lowBit := holes & -holes
		holes &= holes - 1
		kwBits += kwBits & (lowBit - 1)
	}
	kwBits >>= uint(removed)

	nMB, nMW, nKB, nKW := bits.OnesCount64(mbBits), bits.OnesCount64(mwBits), bits.OnesCount64(kbBits), bits.OnesCount64(kwBits)

	p3 := r.combi[50-nMB-nMW-nKB][nKW]
	p2 := p3 * r.combi[50-nMB-nMW][nKB]
	p1 := p2 * r.combi[45][nMW]
	ipos := r.indexSingleType(45, mbBits)*p1 +
		r.indexSingleType(45, mwBits)*p2 +
		r.indexSingleType(50-nMB-nMW, kbBits)*p3 +
		r.indexSingleType(50-nMB-nMW-nKB, kwBits)

	blkOfs := f.idx * int(ipos/1024)
	if blkOfs < 0 || blkOfs+f.idx > len(f.data) {
		r.accesses[0]++
		return 0, false
	}
	hdr := f.data[blkOfs : blkOfs+f.idx]
	seg := int(hdr[0]) + int(hdr[1])*256 + int(hdr[2])*65536
	if f.idx > 3 {
		seg += int(hdr[3]) * 16777216
	}

	i := int(ipos % 1024)
	p := seg
	var cval byte
	for {
		if p >= len(f.data) {
			r.accesses[0]++
			return 0, false
		}
		cval = f.data[p]
		p++
		switch {
		case cval <= 242:
			i -= 5
		case cval <= 246:
			if cval == 246 {
				if p >= len(f.data) {
					r.accesses[0]++
					return 0, false
				}
				i -= int(f.data[p]) * 5
				p++
			} else {
				i -= int(cval-241) * 5
			}
			cval = 0
		case cval <= 250:
			if cval == 250 {
				if p >= len(f.data) {
					r.accesses[0]++
					return 0, false
				}
				i -= int(f.data[p]) * 5
				p++
			} else {
				i -= int(cval-245) * 5
			}
			cval = 121
		case cval <= 254:
			if cval == 254 {
				if p >= len(f.data) {
					r.accesses[0]++
					return 0, false
				}
				i -= int(f.data[p]) * 5
				p++
			} else {
				i -= int(cval-249) * 5
			}
			cval = 242
		default:
			if p+1 >= len(f.data) {
				r.accesses[0]++
				return 0, false
			}
			i -= int(f.data[p]) * 5
			p++
			cval = f.data[p]
			p++
		}
		if i < 0 {
			break
		}
	}
	cval = byte(cval / byte(pow3[4+(i+1)%5]) % 3)

	var val int
	if cval == 1 {
		val = int(f.matOfs)
	} else {
		val = infin - (maxExact+max5Ply)/2
		if f.pcCount == 6 {
			val = infin - (max5Ply+maxPly)/2
		}
		if cval == 2 {
			val = -val
		}
		val += 10*nKW - 10*nKB
		for _, sq := range squareIndexes(lists[mw]) {
			val += (49 - sq) / 5
		}
		for _, sq := range squareIndexes(lists[mb]) {
			val -= sq / 5
		}
	}
	r.accesses[f.pcCount]++
	r.blockCache.Set(key, val, 1)
	return val, true
}

// rowOneMask is the white promotion-rank mask (squares 1-5, 1-based)
// in the index space used throughout this package: a raw 50-bit field
// with bit n-1 set for board square n. Grounded on end.c's ROW1 via
// core.h (this package works in the ghost-stripped, 1-bit-per-square
// layout prep_db produces, not bitboard.Bitboard's ghost-padded one).
const rowOneMask = 0x1f

// Value finds the best available endgame-database estimate for pos:
// an exact DTW score for up to DTWEndPC pieces, or else a WDL lookup
// (recursing through captures to quiescence first) for up to
// MaxEndPC pieces. Grounded on end.c's endgame_value; move generation
// and evaluation of the recursion's leaves is left to the caller's
// search, which is expected to drive this call from pv_search the
// same way endgame_value's own capture recursion does.
func (r *Reader) Value(pos *board.Position, ply int, captures func(*board.Position) []*board.Position) (int, bool) {
	total := bits.OnesCount64(uint64(pos.White | pos.Black))
	if total <= DTWEndPC {
		if v, ok := r.DTW(pos, ply); ok {
			return v, ok
		}
	}
	if total <= DTWEndPC || total > MaxEndPC {
		return 0, false
	}

	next := captures(pos)
	if len(next) == 0 {
		return -infin + ply, true
	}

	hasCapture := false
	for _, child := range next {
		if bits.OnesCount64(uint64(child.White|child.Black)) < total {
			hasCapture = true
			break
		}
	}
	if !hasCapture {
		if v, ok := r.WDL(pos); ok {
			return v, ok
		}
		return 0, false
	}

	best := -infin
	for _, child := range next {
		score, ok := r.Value(child, ply+1, captures)
		if !ok {
			return 0, false
		}
		score = -score
		if score > best {
			best = score
		}
	}
	return best, true
}

// Verify checks every present database file's size and
// CRC-16/CCITT-FALSE checksum against the manifest. It opens and
// reads every file in full, so it is meant for startup diagnostics,
// not the search hot path. Grounded on end.c's check_enddb.
func (r *Reader) Verify() (present, correct int) {
	for _, f := range r.files {
		if _, err := os.Stat(filepath.Join(r.dir, f.name)); err != nil {
			continue
		}
		present++
		if err := r.open(f); err != nil {
			continue
		}
		f.mu.Lock()
		data := f.data
		f.mu.Unlock()

		crc := uint16(0xffff)
		for _, b := range data {
			x := byte(crc>>8) ^ b
			x ^= x >> 4
			crc = (crc << 8) ^ (uint16(x) << 12) ^ (uint16(x) << 5) ^ uint16(x)
		}
		if crc == f.crc {
			correct++
		}
	}
	return present, correct
}

// ErrorCount returns the number of probes that found no value because
// of a missing, too-small, or out-of-range database file -- the
// counter a caller should watch to confirm a probe failure fell back
// to ordinary search rather than crashing. Mirrors end_acc[0] in
// engine_think's own instrumentation.
func (r *Reader) ErrorCount() uint64 { return r.accesses[0] }

// AccessCounts returns the access counters: indices 2..6 are the
// per-piece-count probe hits, matching end_acc[2..6] as printed by
// engine_think's end-of-search statistics line; index 0 is the
// miss/error count ErrorCount reports; index 1 is unused.
func (r *Reader) AccessCounts() [7]uint64 { return r.accesses }
