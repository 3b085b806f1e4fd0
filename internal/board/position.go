// Package board implements the draughts board representation: the
// four-word position (white/black/kings/side/moveinfo/parent), the
// PDN FEN dialect parser, square<->notation helpers, 180-degree
// inversion, lexicographic comparison, collapsed-move reconstruction,
// and draw detection (KNDB Artikel 9).
package board

import (
	"fmt"

	"github.com/hailam/damengine/internal/bitboard"
)

// Side is the color to move or owning a piece.
type Side uint8

const (
	White Side = iota
	Black
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "W"
	}
	return "B"
}

// Position is a single board state plus the bookkeeping needed for
// draw detection and collapsed-move reconstruction.
//
// MoveInfo overloads two meanings, preserved exactly per the source
// material: for ordinary positions it is non-zero for "capture, man
// move, or initial position" and zero for "king move, non-capture"
// (used by the 25-move draw rule's walk-back). For a capture move
// whose king lands back on its own source square in the internal
// move-list representation, MoveInfo instead carries the destination
// square number (movegen still recovers the true landing bit from the
// resulting board; MoveInfo in that case exists only so printing can
// recover the destination). Callers must never treat MoveInfo==0 as
// "no move".
type Position struct {
	White    bitboard.Bitboard
	Black    bitboard.Bitboard
	Kings    bitboard.Bitboard
	Side     Side
	MoveInfo int
	Parent   *Position
}

// Men returns the set of squares holding a man (non-king) of side s.
func (p *Position) Men(s Side) bitboard.Bitboard {
	return p.colorBits(s) &^ p.Kings
}

// KingsOf returns the set of squares holding a king of side s.
func (p *Position) KingsOf(s Side) bitboard.Bitboard {
	return p.colorBits(s) & p.Kings
}

// Bits returns the set of squares occupied by side s (men and kings).
func (p *Position) Bits(s Side) bitboard.Bitboard { return p.colorBits(s) }

func (p *Position) colorBits(s Side) bitboard.Bitboard {
	if s == White {
		return p.White
	}
	return p.Black
}

// Occupied returns every occupied square.
func (p *Position) Occupied() bitboard.Bitboard { return p.White | p.Black }

// Empty returns every unoccupied playing square.
func (p *Position) Empty() bitboard.Bitboard {
	return bitboard.All50 &^ p.Occupied()
}

// PieceCount returns the total number of pieces on the board.
func (p *Position) PieceCount() int { return p.Occupied().PopCount() }

// EmptyBoard returns a position with no pieces, white to move.
func EmptyBoard() *Position {
	return &Position{Side: White, MoveInfo: 1}
}

// NewInitial returns the standard starting position: white men on
// 31..50, black men on 1..20, white to move. MoveInfo starts at 1 (a
// non-zero "initial position" marker), grounded on util.c's
// init_board, so the 25-move draw rule's walk-back does not mistake
// the start of the game for a king-move reset.
func NewInitial() *Position {
	pos := EmptyBoard()
	for sq := 1; sq <= 20; sq++ {
		pos.Black = pos.Black.Set(sq)
	}
	for sq := 31; sq <= 50; sq++ {
		pos.White = pos.White.Set(sq)
	}
	return pos
}

// backRank returns the square range (inclusive) that is side s's
// promotion-illegal rank: the rank its men promote on. White men
// promote on row 0 (squares 1..5); black men promote on row 9
// (squares 46..50). A man can never sit on the back rank it is
// advancing *toward*, since reaching it promotes the man
// automatically.
func backRank(s Side) (lo, hi int) {
	if s == White {
		return 1, 5
	}
	return 46, 50
}

// PlacePiece places a piece of the given side/king-ness on sq,
// validating range, emptiness, and the promotion back-rank rule.
// Grounded on util.c's place_piece.
func (p *Position) PlacePiece(s Side, king bool, sq int) error {
	if sq < 1 || sq > 50 {
		return fmt.Errorf("square %d out of range 1..50", sq)
	}
	if p.Occupied().IsSet(sq) {
		return fmt.Errorf("square %d already occupied", sq)
	}
	if !king {
		lo, hi := backRank(s)
		if sq >= lo && sq <= hi {
			return fmt.Errorf("man of side %s cannot be placed on its promotion rank (square %d)", s, sq)
		}
	}
	if s == White {
		p.White = p.White.Set(sq)
	} else {
		p.Black = p.Black.Set(sq)
	}
	if king {
		p.Kings = p.Kings.Set(sq)
	}
	return nil
}

// Invert returns the 180-degree rotated, color-swapped position: what
// was a white man on square n becomes a black man on square 51-n, and
// vice versa. The side to move is left unchanged. Grounded on util.c's
// invert_board. Used both to test the evaluator symmetry invariant and
// to side-normalize endgame-database lookups.
func (p *Position) Invert() *Position {
	return &Position{
		White:    bitboard.Mirror(p.Black),
		Black:    bitboard.Mirror(p.White),
		Kings:    bitboard.Mirror(p.Kings),
		Side:     p.Side,
		MoveInfo: p.MoveInfo,
	}
}

// Compare orders two positions by (White, Black, Kings, Side)
// lexicographically ascending on the unsigned 64-bit values,
// grounded on util.c's bb_compare. Used by the opening-book reader's
// binary search over its sorted on-disk records.
func Compare(a, b *Position) int {
	if c := compareU64(uint64(a.White), uint64(b.White)); c != 0 {
		return c
	}
	if c := compareU64(uint64(a.Black), uint64(b.Black)); c != 0 {
		return c
	}
	if c := compareU64(uint64(a.Kings), uint64(b.Kings)); c != 0 {
		return c
	}
	return compareU64(uint64(a.Side), uint64(b.Side))
}

func compareU64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two positions have identical white/black/
// kings/side (ignoring MoveInfo and Parent), the equality notion used
// by repetition-based draw detection.
func Equal(a, b *Position) bool {
	return a.White == b.White && a.Black == b.Black && a.Kings == b.Kings && a.Side == b.Side
}

// String renders an ASCII diagram of the board, grounded on util.c's
// print_board.
func (p *Position) String() string {
	s := ""
	for row := 9; row >= 0; row-- {
		if row%2 == 0 {
			s += "  "
		}
		for col := 0; col < 10; col++ {
			sq := squareAtRowCol(row, col)
			if sq == 0 {
				continue
			}
			s += fmt.Sprintf("%2d", sq)
			switch {
			case p.Kings.IsSet(sq) && p.White.IsSet(sq):
				s += "W "
			case p.Kings.IsSet(sq) && p.Black.IsSet(sq):
				s += "B "
			case p.White.IsSet(sq):
				s += "w "
			case p.Black.IsSet(sq):
				s += "b "
			default:
				s += "_ "
			}
		}
		s += "\n"
	}
	return s
}

func squareAtRowCol(row, col int) int {
	for sq := 1; sq <= 50; sq++ {
		if bitboard.Row(sq) == row {
			// reconstruct column the same way bitboard.init does
			ri := (sq - 1) / 5
			k := (sq - 1) % 5
			var ci int
			if ri%2 == 0 {
				ci = 1 + 2*k
			} else {
				ci = 2 * k
			}
			if ci == col {
				return sq
			}
		}
	}
	return 0
}
