// File game/parse.go
package game

import (
	"fmt"
	"strings"
)

// ParseBoard reads the driver's board text into a fresh board. Rows are
// whitespace separated tokens, "." is an empty cell and a multi-letter
// token is a stack written bottom to top. Row q starts at p = -(q/2).
func ParseBoard(text string, size int, myUpper bool) (*Board, error) {
	b := NewBoard(size, myUpper)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > size {
		return nil, fmt.Errorf("board has %d rows, expected at most %d", len(lines), size)
	}
	for q, line := range lines {
		p := -(q / 2)
		for _, token := range strings.Fields(line) {
			cell := Cell{P: p, Q: q}
			p++
			if token == "." {
				continue
			}
			if !b.InBoard(cell) {
				return nil, fmt.Errorf("cell (%d,%d) is outside a size-%d board", cell.P, cell.Q, size)
			}
			for i := 0; i < len(token); i++ {
				bug, err := bugFromLetter(token[i])
				if err != nil {
					return nil, fmt.Errorf("cell (%d,%d): %w", cell.P, cell.Q, err)
				}
				b.Push(cell, bug)
			}
		}
	}
	return b, nil
}

func bugFromLetter(c byte) (Bug, error) {
	upper := c >= 'A' && c <= 'Z'
	letter := c
	if !upper {
		letter -= 'a' - 'A'
	}
	kind, ok := KindFromLetter(letter)
	if !ok {
		return Bug{}, fmt.Errorf("unknown piece letter %q", string(c))
	}
	return Bug{Kind: kind, Upper: upper}, nil
}

// String renders the board in the driver's text format.
func (b *Board) String() string {
	var sb strings.Builder
	for q := 0; q < b.size; q++ {
		if q > 0 {
			sb.WriteByte('\n')
		}
		if q%2 == 1 {
			sb.WriteByte(' ')
		}
		first := true
		for p := -(q / 2); p < b.size-q/2; p++ {
			if !first {
				sb.WriteByte(' ')
			}
			first = false
			stack := b.stacks[Cell{P: p, Q: q}]
			if len(stack) == 0 {
				sb.WriteByte('.')
				continue
			}
			for _, bug := range stack {
				sb.WriteByte(bug.Letter())
			}
		}
	}
	return sb.String()
}

// BruteMove is the driver's move tuple: piece letter, origin (nil for a
// placement) and target. It marshals to the five element JSON array the
// driver expects.
type BruteMove struct {
	Piece string
	FromP *int
	FromQ *int
	ToP   int
	ToQ   int
}

// Brute converts the move to the driver tuple.
func (m Move) Brute() BruteMove {
	bm := BruteMove{
		Piece: Bug{Kind: m.Kind, Upper: m.Upper}.String(),
		ToP:   m.To.P,
		ToQ:   m.To.Q,
	}
	if !m.Place {
		p, q := m.From.P, m.From.Q
		bm.FromP, bm.FromQ = &p, &q
	}
	return bm
}

// Tuple returns the move as the raw five element array, null origin for
// placements. Useful for JSON encoding.
func (m BruteMove) Tuple() []any {
	if m.FromP == nil {
		return []any{m.Piece, nil, nil, m.ToP, m.ToQ}
	}
	return []any{m.Piece, *m.FromP, *m.FromQ, m.ToP, m.ToQ}
}

// MoveFromBrute converts a driver tuple back into a move.
func MoveFromBrute(bm BruteMove) (Move, error) {
	if len(bm.Piece) != 1 {
		return Move{}, fmt.Errorf("invalid piece %q", bm.Piece)
	}
	bug, err := bugFromLetter(bm.Piece[0])
	if err != nil {
		return Move{}, err
	}
	m := Move{Kind: bug.Kind, Upper: bug.Upper, To: Cell{P: bm.ToP, Q: bm.ToQ}}
	if bm.FromP == nil || bm.FromQ == nil {
		if bm.FromP != nil || bm.FromQ != nil {
			return Move{}, fmt.Errorf("origin of %q is half set", bm.Piece)
		}
		m.Place = true
		return m, nil
	}
	m.From = Cell{P: *bm.FromP, Q: *bm.FromQ}
	return m, nil
}

func (m Move) String() string {
	bug := Bug{Kind: m.Kind, Upper: m.Upper}
	if m.Place {
		return fmt.Sprintf("%s: reserve -> (%d,%d)", bug, m.To.P, m.To.Q)
	}
	return fmt.Sprintf("%s: (%d,%d) -> (%d,%d)", bug, m.From.P, m.From.Q, m.To.P, m.To.Q)
}
