package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN parses the PDN FEN dialect:
//
//	<side>:<color><[K]square>[,<[K]square>...]:<color><...>
//
// with optional ranges "N-M" inside a piece list, side/color in
// {W, B}, squares 1..50. Men on their own promotion rank are
// rejected; duplicate squares are rejected. An optional trailing
// '.' terminator and surrounding whitespace are tolerated. Grounded
// on util.c's setup_fen, adapted to per-field fmt.Errorf validation
// rather than the source's single combined error return.
func ParseFEN(fen string) (*Position, error) {
	s := strings.TrimSpace(fen)
	s = strings.TrimSuffix(s, ".")
	fields := strings.Split(s, ":")
	if len(fields) < 1 {
		return nil, fmt.Errorf("invalid FEN: empty input")
	}

	sideField := strings.TrimSpace(fields[0])
	side, err := parseSideChar(sideField)
	if err != nil {
		return nil, fmt.Errorf("invalid side to move: %w", err)
	}

	pos := EmptyBoard()
	pos.Side = side

	for _, colorField := range fields[1:] {
		colorField = strings.TrimSpace(colorField)
		if colorField == "" {
			continue
		}
		if err := parseColorField(pos, colorField); err != nil {
			return nil, err
		}
	}

	return pos, nil
}

func parseSideChar(s string) (Side, error) {
	switch s {
	case "W":
		return White, nil
	case "B":
		return Black, nil
	default:
		return White, fmt.Errorf("expected W or B, got %q", s)
	}
}

// parseColorField parses "<color><[K]square>[,<[K]square>...]",
// where each piece token is either a single square or an "N-M" range
// (all placed as the same king-ness), e.g. "W31,32,K5,10-14".
func parseColorField(pos *Position, field string) error {
	if len(field) == 0 {
		return fmt.Errorf("invalid FEN color field: empty")
	}
	side, err := parseSideChar(field[:1])
	if err != nil {
		return fmt.Errorf("invalid color field: %w", err)
	}
	rest := field[1:]
	if rest == "" {
		return nil
	}
	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return fmt.Errorf("invalid FEN: empty piece token in %q", field)
		}
		king := false
		if tok[0] == 'K' {
			king = true
			tok = tok[1:]
		}
		lo, hi, err := parseSquareOrRange(tok)
		if err != nil {
			return fmt.Errorf("invalid piece token %q: %w", tok, err)
		}
		for sq := lo; sq <= hi; sq++ {
			if err := pos.PlacePiece(side, king, sq); err != nil {
				return fmt.Errorf("invalid piece token %q: %w", tok, err)
			}
		}
	}
	return nil
}

// parseSquareOrRange parses "N" or "N-M", rejecting reversed or
// malformed ranges per util.c's setup_fen.
func parseSquareOrRange(tok string) (lo, hi int, err error) {
	if dash := strings.IndexByte(tok, '-'); dash >= 0 {
		loStr, hiStr := tok[:dash], tok[dash+1:]
		lo, err = strconv.Atoi(loStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range start: %w", err)
		}
		hi, err = strconv.Atoi(hiStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range end: %w", err)
		}
		if hi < lo {
			return 0, 0, fmt.Errorf("reversed range %d-%d", lo, hi)
		}
		return lo, hi, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid square: %w", err)
	}
	return n, n, nil
}

// ToFEN formats the position back into the PDN FEN dialect, the
// round-trip inverse of ParseFEN.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	sb.WriteString(p.Side.String())
	sb.WriteByte(':')
	sb.WriteString(colorFieldFEN(p, White))
	sb.WriteByte(':')
	sb.WriteString(colorFieldFEN(p, Black))
	return sb.String()
}

func colorFieldFEN(p *Position, s Side) string {
	var sb strings.Builder
	sb.WriteString(s.String())
	first := true
	for sq := 1; sq <= 50; sq++ {
		if !p.colorBits(s).IsSet(sq) {
			continue
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false
		if p.Kings.IsSet(sq) {
			sb.WriteByte('K')
		}
		sb.WriteString(strconv.Itoa(sq))
	}
	return sb.String()
}
