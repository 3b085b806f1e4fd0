// Package search implements the principal-variation alpha-beta search:
// iterative deepening at the root, quiescence, late-move reductions,
// killer/history move ordering, enhanced transposition cutoffs, and a
// ProbCut-style reduced-depth pre-test. Grounded on
// original_source/main/search.c.
package search

import (
	"context"
	"time"

	"github.com/hailam/damengine/internal/bitboard"
	"github.com/hailam/damengine/internal/board"
	"github.com/hailam/damengine/internal/book"
	"github.com/hailam/damengine/internal/endgamedb"
	"github.com/hailam/damengine/internal/eval"
	"github.com/hailam/damengine/internal/movegen"
	"github.com/hailam/damengine/internal/tt"
)

const (
	infin    = 2_000_000_000
	dtwEndPC = 4
	maxEndPC = 6
	maxExact = 64
	max5Ply  = 148
	maxPly   = 256
)

type killerPair struct {
	k1, k2 bitboard.Bitboard
}

// Searcher holds the mutable state a game's worth of searches share:
// the transposition table, endgame-database reader, opening book, and
// the killer-move/history-of-good-moves tables that persist and fade
// across moves, plus the running statistics of the most recent Think
// call. Grounded on search.c's file-scope globals (killer_list,
// good_hist, node_count and friends), collected into one long-lived
// struct instead, per the "global mutable state -> explicit context"
// design this module follows throughout (see internal/tt.Table and
// internal/endgamedb.Reader for the same treatment).
type Searcher struct {
	TT   *tt.Table
	EGDB *endgamedb.Reader // nil if no endgame databases are loaded
	Book *book.Book        // nil if no opening book is loaded

	killers  [maxPly + 1]killerPair
	goodHist [51][51]uint32

	nodeCount, nonLeafCount               uint64
	ttProbeCount, ttHitCount, ttBestCount  uint64
	etcTestCount, etcHitCount, etcCutCount uint64

	startTime time.Time
	lastPoll  time.Time
	thinkTime time.Duration
	testTime  time.Duration // 0 = no hard ceiling beyond thinkTime
	moveTime  time.Duration // base per-move budget for the current Think call

	maxSearchPly int
	dbThreshold  int
	dbMaxPC      int
	iter0Score   int
	mExplored    int

	// aborted is set the instant a poll notices the time budget is
	// spent or the context is canceled; every recursive frame checks
	// it immediately after a child call returns and unwinds without
	// further work. The original instead let an already-descended
	// subtree finish on a bogus score and only stopped at the next
	// iterative-deepening boundary (main_event.movenow); this port
	// unwinds eagerly, which is both the more idiomatic Go shape for
	// a cancellation signal and strictly cheaper, since it can't waste
	// time finishing a subtree whose score is documented as unusable.
	aborted bool
}

// New creates a Searcher. egdb and bk may be nil, in which case
// endgame-database and opening-book lookups simply always miss.
func New(table *tt.Table, egdb *endgamedb.Reader, bk *book.Book) *Searcher {
	return &Searcher{TT: table, EGDB: egdb, Book: bk}
}

// Stats is a snapshot of one Think call's counters, matching
// engine_think's end-of-search statistics block.
type Stats struct {
	Depth                                  int
	Nodes, NonLeafNodes                    uint64
	TTProbes, TTHits, TTBestMoves          uint64
	ETCTests, ETCHits, ETCCuts            uint64
}

func (s *Searcher) stats(depth int) Stats {
	return Stats{
		Depth:        depth,
		Nodes:        s.nodeCount,
		NonLeafNodes: s.nonLeafCount,
		TTProbes:     s.ttProbeCount,
		TTHits:       s.ttHitCount,
		TTBestMoves:  s.ttBestCount,
		ETCTests:     s.etcTestCount,
		ETCHits:      s.etcHitCount,
		ETCCuts:      s.etcCutCount,
	}
}

// Options configures one Think call.
type Options struct {
	MaxDepth  int           // iterative-deepening ceiling; 0 = maxPly
	MoveTime  time.Duration // base per-move time budget
	TestTime  time.Duration // hard ceiling overriding MoveTime-derived budgets; 0 = none
	TestDepth int           // fixed depth ceiling for testing; 0 = none
}

// Result is the outcome of one Think call.
type Result struct {
	Best  *board.Position // nil if the side to move has no legal move
	Score int
	Stats Stats
}

// Think selects the best move for root. Grounded on search.c's
// engine_think: opening-book probe, single-legal-move shortcut,
// capture-equivalence shortcut, else iterative deepening driven by
// pvSearch0/pvSearch.
func (s *Searcher) Think(ctx context.Context, root *board.Position, opts Options) Result {
	list := movegen.Generate(root, movegen.AllMoves)
	if len(list.Moves) == 0 {
		return Result{}
	}

	s.startTime = time.Now()
	s.lastPoll = s.startTime
	s.fadeHist()
	s.moveTime = opts.MoveTime
	s.testTime = opts.TestTime

	if s.Book != nil {
		candidates := make([]*board.Position, len(list.Moves))
		for i, m := range list.Moves {
			candidates[i] = m.Result
		}
		if idx := s.Book.Probe(root, candidates); idx >= 0 {
			return Result{Best: list.Moves[idx].Result}
		}
	}

	if len(list.Moves) == 1 {
		return Result{Best: list.Moves[0].Result}
	}

	if list.NPCapt > 0 && equivalentCaptures(list.Moves) {
		return Result{Best: list.Moves[0].Result}
	}

	return s.iterate(ctx, list, opts)
}

func (s *Searcher) iterate(ctx context.Context, list *movegen.MoveList, opts Options) Result {
	s.nodeCount, s.nonLeafCount = 0, 0
	s.ttProbeCount, s.ttHitCount, s.ttBestCount = 0, 0, 0
	s.etcTestCount, s.etcHitCount, s.etcCutCount = 0, 0, 0
	s.killers = [maxPly + 1]killerPair{}
	s.aborted = false

	root := list.Moves[0].Result.Parent
	if v, ok := s.egdbValue(root, 0); ok {
		s.iter0Score = v
	} else {
		s.iter0Score = eval.Evaluate(root)
	}
	scores := make([]int, len(list.Moves))
	scores[0] = s.iter0Score

	s.maxSearchPly = maxPly
	s.dbThreshold = infin - s.maxSearchPly
	s.dbMaxPC = 6

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = maxPly
	}

	depth := 1
	for ; depth <= maxDepth; depth++ {
		s.pvSearch0(ctx, depth, list, scores)

		if s.aborted {
			break
		}
		if opts.TestDepth != 0 && depth >= opts.TestDepth {
			break
		}

		best := list.Moves[0].Result
		if best.PieceCount() <= dtwEndPC {
			if _, ok := s.egdbDTW(best, 1); ok {
				break
			}
		}

		if absInt(scores[0]) > infin-maxExact {
			break
		}

		nextBest := -infin
		for m := 1; m < len(scores); m++ {
			if scores[m] > nextBest {
				nextBest = scores[m]
			}
		}
		if nextBest < maxExact-infin {
			break
		}

		if absInt(scores[0]) > s.dbThreshold {
			if absInt(scores[0]) < infin-max5Ply {
				s.maxSearchPly = max5Ply
				s.dbMaxPC = 5
			} else {
				s.maxSearchPly = maxExact
				s.dbMaxPC = 4
			}
			s.dbThreshold = infin - s.maxSearchPly
		}
	}

	return Result{Best: list.Moves[0].Result, Score: scores[0], Stats: s.stats(depth)}
}

// pvSearch0 is the root-level search: the first move gets a full
// window, every later move a zero-width probe that gets pulled to the
// head of the list (with a full-window re-search) if it beats the
// incumbent. Grounded on search.c's pv_search0.
func (s *Searcher) pvSearch0(ctx context.Context, depth int, list *movegen.MoveList, scores []int) {
	s.nodeCount++

	d := depth
	if len(list.Moves) > 1 {
		d--
	}

	s.setBudget(list.Moves[0].Result, 0, scores[0], s.iter0Score)

	s.nonLeafCount++
	alpha, beta := -infin, infin
	best := -s.pvSearch(ctx, list.Moves[0].Result, 1, d, -beta, -alpha)
	if s.aborted {
		return
	}
	scores[0] = best

	for m := 1; m < len(list.Moves); m++ {
		if best > alpha {
			alpha = best
		}
		s.setBudget(list.Moves[m].Result, m, best, s.iter0Score)

		merit := -s.pvSearch(ctx, list.Moves[m].Result, 1, d, -alpha-1, -alpha)
		if s.aborted {
			return
		}
		scores[m] = merit

		if merit > best {
			best = merit

			mv := list.Moves[m]
			copy(list.Moves[1:m+1], list.Moves[0:m])
			list.Moves[0] = mv
			copy(scores[1:m+1], scores[0:m])
			scores[0] = best

			if m < len(list.Moves)-1 {
				s.setBudget(list.Moves[0].Result, -m, best, s.iter0Score)
				merit = -s.pvSearch(ctx, list.Moves[0].Result, 1, d, -beta, -best)
				if s.aborted {
					return
				}
				if merit > best {
					best = merit
				}
				scores[0] = best
			}
		}
	}
}

// pvSearch is the recursive interior search. bb is the position to
// evaluate (the move into it has already been made); ply counts from
// the root, depth counts down to the quiescence horizon. Grounded on
// search.c's pv_search.
func (s *Searcher) pvSearch(ctx context.Context, bb *board.Position, ply, depth, alpha, beta int) int {
	s.nodeCount++
	if s.nodeCount%1024 == 0 {
		now := time.Now()
		elapsed := now.Sub(s.startTime)
		if elapsed >= s.thinkTime || (s.testTime != 0 && elapsed >= s.testTime) {
			s.aborted = true
			return 0
		}
		if now.Sub(s.lastPoll) >= 100*time.Millisecond {
			s.lastPoll = now
			if ctx.Err() != nil {
				s.aborted = true
				return 0
			}
		}
	}

	if bb.White == 0 || bb.Black == 0 {
		return -infin + ply
	}

	if board.IsDraw(bb, ply) {
		if v, ok := s.egdbValue(bb, ply); ok && v > infin-maxPly {
			return v
		}
		return 0
	}

	origAlpha := alpha
	best := alpha
	var bestMove bitboard.Bitboard

	if depth > 0 {
		s.ttProbeCount++
		if score, move, found, cutoff, alphaImprove := s.TT.Probe(bb, ply, depth, alpha, beta); found {
			bestMove = move
			if cutoff {
				s.ttHitCount++
				return score
			}
			if alphaImprove {
				best = score
			}
		}
	}
	if bestMove != 0 {
		s.ttBestCount++
	}
	alpha = best

	pcnt := bb.PieceCount()
	if pcnt <= dtwEndPC {
		if v, ok := s.egdbDTW(bb, ply); ok {
			return v
		}
	}

	mode := movegen.CapturesOnly
	if depth > 0 {
		mode = movegen.AllMoves
	}
	list := movegen.Generate(bb, mode)

	if len(list.Moves) == 0 && depth > 0 {
		return -infin + ply
	}

	if pcnt > dtwEndPC && pcnt <= maxEndPC &&
		(len(list.Moves) == 0 || (list.NPCapt == 0 && pcnt <= s.dbMaxPC)) {
		if v, ok := s.egdbWDL(bb); ok {
			if depth <= 0 || absInt(v) > s.dbThreshold {
				return v
			}
		}
	}

	if len(list.Moves) == 0 || ply >= s.maxSearchPly {
		return eval.Evaluate(bb)
	}

	const cutMargin = eval.ValMan * 9 / 10
	if depth > 2 && alpha+1 == beta && eval.GamePhase(pcnt) != 0 && beta < infin-maxPly-cutMargin {
		probe := s.pvSearch(ctx, bb, ply, depth/2, beta+cutMargin-1, beta+cutMargin)
		if s.aborted {
			return 0
		}
		if probe >= beta+cutMargin {
			return beta
		}
	}

	d := depth
	if len(list.Moves) > 1 {
		d--
		s.orderMoves(list, d, bestMove, ply)

		if d > 4 && alpha+1 == beta {
			s.etcTestCount++
			for _, mv := range list.Moves {
				if score, _, _, cutoff, _ := s.TT.Probe(mv.Result, ply+1, d, -beta, -alpha); cutoff {
					s.etcHitCount++
					score = -score
					if score >= beta {
						s.etcCutCount++
						return score
					}
				}
			}
		}
	}

	s.nonLeafCount++
	best = -s.pvSearch(ctx, list.Moves[0].Result, ply+1, d, -beta, -alpha)
	bestM := 0
	if s.aborted {
		return 0
	}

	for m := 1; m < len(list.Moves); m++ {
		if best >= beta {
			break
		}
		if best > alpha {
			alpha = best
		}

		merit := alpha + 1 // do the full search if not reduced
		if m >= 3 && alpha+1 == beta && d > 2 && pcnt >= 8 {
			reduce := 1
			if m >= 6 {
				reduce = 2
			}
			merit = -s.pvSearch(ctx, list.Moves[m].Result, ply+1, d-reduce, -alpha-1, -alpha)
			if s.aborted {
				return 0
			}
		}
		if merit > alpha {
			merit = -s.pvSearch(ctx, list.Moves[m].Result, ply+1, d, -alpha-1, -alpha)
			if s.aborted {
				return 0
			}
		}

		if merit > best {
			best = merit
			bestM = m
			if best > alpha && best < beta {
				merit = -s.pvSearch(ctx, list.Moves[m].Result, ply+1, d, -beta, -best)
				if s.aborted {
					return 0
				}
				if merit > best {
					best = merit
				}
			}
		}
	}

	bestMove = board.Collapsed(list.Moves[bestM].Result)

	if best >= beta && len(list.Moves) > 1 {
		kp := &s.killers[ply]
		if kp.k1 != bestMove {
			kp.k2 = kp.k1
			kp.k1 = bestMove
		}
	}

	if depth > 1 && best > origAlpha {
		from, to, _ := board.MoveSquares(list.Moves[bestM].Result.Parent, list.Moves[bestM].Result)
		s.goodHist[from][to] += uint32((depth - 1) * (depth - 1))
	}

	if depth > 0 {
		s.TT.Store(bb, ply, depth, origAlpha, beta, best, bestMove)
	}

	return best
}

// orderMoves moves the TT best move and the ply's killers to the
// front of list, then insertion-sorts the remainder by descending
// history score. Grounded on search.c's sort_moves.
func (s *Searcher) orderMoves(list *movegen.MoveList, d int, bestMove bitboard.Bitboard, ply int) {
	if bestMove == 0 && d <= 2 {
		return
	}

	k1, k2 := s.killers[ply].k1, s.killers[ply].k2
	mtt, mk1, mk2 := -1, -1, -1
	for i, mv := range list.Moves {
		c := board.Collapsed(mv.Result)
		switch {
		case c == bestMove:
			mtt = i
		case c == k1:
			mk1 = i
		case c == k2:
			mk2 = i
		}
	}

	m := 0
	if mtt == 0 {
		m = 1
	}
	if mtt > 0 {
		list.Moves[mtt], list.Moves[0] = list.Moves[0], list.Moves[mtt]
		if mk1 == 0 {
			mk1 = mtt
		}
		if mk2 == 0 {
			mk2 = mtt
		}
		m = 1
	}
	if mk1 == m {
		m++
	}
	if mk1 > m {
		list.Moves[mk1], list.Moves[m] = list.Moves[m], list.Moves[mk1]
		if mk2 == m {
			mk2 = mk1
		}
		m++
	}
	if mk2 == m {
		m++
	}
	if mk2 > m {
		list.Moves[mk2], list.Moves[m] = list.Moves[m], list.Moves[mk2]
		m++
	}

	if d > 2 && m < len(list.Moves)-1 {
		rest := list.Moves[m:]
		hist := make([]uint32, len(rest))
		for i, mv := range rest {
			from, to, _ := board.MoveSquares(mv.Result.Parent, mv.Result)
			hist[i] = s.goodHist[from][to]
		}
		for i := 1; i < len(rest); i++ {
			mv, h := rest[i], hist[i]
			j := i
			for j > 0 && h > hist[j-1] {
				rest[j] = rest[j-1]
				hist[j] = hist[j-1]
				j--
			}
			rest[j] = mv
			hist[j] = h
		}
	}
}

// fadeHist divides every past history entry by 8 (>>=3) between
// moves, letting stale good-move statistics decay
// rather than accumulate forever. Grounded on search.c's fade_hist.
func (s *Searcher) fadeHist() {
	for i := 1; i <= 50; i++ {
		for j := 1; j <= 50; j++ {
			s.goodHist[i][j] >>= 3
		}
	}
}

// setBudget adjusts the think-time budget for the root move at index
// m (or -m for a re-search), based on the game phase and whether the
// score is trending down or up relative to the iteration's starting
// score. Grounded on search.c's set_budget.
func (s *Searcher) setBudget(bb *board.Position, m, score, start int) {
	s.mExplored = absInt(m)

	if score < start-eval.ValMan/10 {
		s.thinkTime = 3 * s.moveTime
		return
	}

	think := s.moveTime
	if eval.GamePhase(bb.PieceCount()) == 0 {
		think /= 2
	}

	switch m {
	case 0, 1:
		think *= 2
	case -1, 2:
		think = think * 3 / 2
	}

	if score > start+7*eval.ValMan/5 {
		think = think * 2 / 3
	}
	s.thinkTime = think
}

// egdbValue, egdbDTW, and egdbWDL wrap the corresponding
// endgamedb.Reader probes, reporting a miss when no reader is
// attached rather than requiring every call site to nil-check.
func (s *Searcher) egdbValue(pos *board.Position, ply int) (int, bool) {
	if s.EGDB == nil {
		return 0, false
	}
	return s.EGDB.Value(pos, ply, legalChildren)
}

func (s *Searcher) egdbDTW(pos *board.Position, ply int) (int, bool) {
	if s.EGDB == nil {
		return 0, false
	}
	return s.EGDB.DTW(pos, ply)
}

func (s *Searcher) egdbWDL(pos *board.Position) (int, bool) {
	if s.EGDB == nil {
		return 0, false
	}
	return s.EGDB.WDL(pos)
}

func legalChildren(pos *board.Position) []*board.Position {
	list := movegen.Generate(pos, movegen.AllMoves)
	out := make([]*board.Position, len(list.Moves))
	for i, mv := range list.Moves {
		out[i] = mv.Result
	}
	return out
}

// equivalentCaptures reports whether every capture sequence available
// from the root leads, at the end of its forced recapture chain, to
// the same multiset of resulting positions -- in which case searching
// is pointless, since any of them is equally good. Grounded on
// search.c's equiv_captures/equiv_search.
func equivalentCaptures(moves []movegen.Move) bool {
	if len(moves) <= 1 {
		return false
	}
	var first []*board.Position
	for i, mv := range moves {
		leaves := captureLeaves(mv.Result)
		sortPositions(leaves)
		if i == 0 {
			first = leaves
			continue
		}
		if len(leaves) != len(first) {
			return false
		}
		for j := range leaves {
			if board.Compare(leaves[j], first[j]) != 0 {
				return false
			}
		}
	}
	return true
}

func captureLeaves(pos *board.Position) []*board.Position {
	list := movegen.Generate(pos, movegen.CapturesOnly)
	if list.NPCapt == 0 {
		return []*board.Position{pos}
	}
	var out []*board.Position
	for _, mv := range list.Moves {
		out = append(out, captureLeaves(mv.Result)...)
	}
	return out
}

func sortPositions(p []*board.Position) {
	for i := 1; i < len(p); i++ {
		j := i
		for j > 0 && board.Compare(p[j-1], p[j]) > 0 {
			p[j-1], p[j] = p[j], p[j-1]
			j--
		}
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
