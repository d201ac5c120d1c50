// File game/board.go
package game

// PieceKind enumerates the five bug kinds.
type PieceKind uint8

const (
	Queen PieceKind = iota
	Spider
	Beetle
	Ant
	Grasshopper

	KindCount = 5
)

var kindLetters = [KindCount]byte{'Q', 'S', 'B', 'A', 'G'}

// Letter returns the canonical (uppercase) letter of the kind.
func (k PieceKind) Letter() byte { return kindLetters[k] }

// KindFromLetter maps a piece letter (either case) back to its kind.
func KindFromLetter(c byte) (PieceKind, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for k, l := range kindLetters {
		if l == c {
			return PieceKind(k), true
		}
	}
	return 0, false
}

func (k PieceKind) String() string { return string(kindLetters[k]) }

// Bug is a single piece marker on the board. Upper is the owning side's
// letter case in the external protocol.
type Bug struct {
	Kind  PieceKind
	Upper bool
}

// Letter returns the cased protocol letter of the bug.
func (b Bug) Letter() byte {
	c := b.Kind.Letter()
	if !b.Upper {
		c += 'a' - 'A'
	}
	return c
}

// String returns the bug as its protocol letter.
func (b Bug) String() string { return string(b.Letter()) }

// Cell is an offset hex coordinate. Row q shifts the valid p range by
// -(q/2)，参见 InBoard。
type Cell struct {
	P, Q int
}

// Direction is one of the 6 hex unit vectors.
type Direction struct {
	DP, DQ int
}

// Directions lists the neighbor offsets in fixed enumeration order. All
// scans that feed the search iterate in this order so results stay
// deterministic.
var Directions = [6]Direction{
	{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, -1},
}

// Add offsets the cell by one step in direction d.
func (c Cell) Add(d Direction) Cell { return Cell{c.P + d.DP, c.Q + d.DQ} }

// RotateLeft turns the direction one hex step counter-clockwise.
func (d Direction) RotateLeft() Direction { return Direction{d.DP + d.DQ, -d.DP} }

// RotateRight turns the direction one hex step clockwise.
func (d Direction) RotateRight() Direction { return Direction{-d.DQ, d.DP + d.DQ} }

func sideIdx(upper bool) int {
	if upper {
		return 0
	}
	return 1
}

// Board is the mutable hive position: a stack of bugs per cell plus the
// incrementally maintained set of occupied cells. It also carries both
// sides' reserves and per-side move counters so apply/undo are exact
// inverses of each other.
type Board struct {
	size    int
	myUpper bool

	stacks map[Cell][]Bug
	hive   map[Cell]struct{}

	// reserves[0] = upper side, reserves[1] = lower side
	reserves [2][KindCount]int
	// moveCount 是各方已走的回合数（驱动方只告知己方回合，对手按同值近似）
	moveCount [2]int

	hash uint64
}

// NewBoard creates an empty board of the given size. myUpper is the acting
// side's letter case in the external protocol.
func NewBoard(size int, myUpper bool) *Board {
	return &Board{
		size:    size,
		myUpper: myUpper,
		stacks:  make(map[Cell][]Bug, size*size),
		hive:    make(map[Cell]struct{}, 32),
	}
}

// Size returns the board dimension.
func (b *Board) Size() int { return b.size }

// MyUpper reports the acting side's letter case.
func (b *Board) MyUpper() bool { return b.myUpper }

// Hash returns the incremental position hash (stack contents only).
func (b *Board) Hash() uint64 { return b.hash }

// Turn returns the given side's move counter.
func (b *Board) Turn(upper bool) int { return b.moveCount[sideIdx(upper)] }

// SetTurn sets the given side's move counter.
func (b *Board) SetTurn(upper bool, n int) { b.moveCount[sideIdx(upper)] = n }

// Reserve returns how many bugs of the kind the side still holds.
func (b *Board) Reserve(upper bool, k PieceKind) int {
	return b.reserves[sideIdx(upper)][k]
}

// SetReserve sets a side's reserve count for one kind.
func (b *Board) SetReserve(upper bool, k PieceKind, n int) {
	b.reserves[sideIdx(upper)][k] = n
}

// InBoard reports whether the cell lies on the physical board:
// 0 <= q < size 且 -(q/2) <= p < size - q/2。
func (b *Board) InBoard(c Cell) bool {
	return 0 <= c.Q && c.Q < b.size && -(c.Q/2) <= c.P && c.P < b.size-c.Q/2
}

// IsEmpty reports whether no bug sits on the cell.
func (b *Board) IsEmpty(c Cell) bool { return len(b.stacks[c]) == 0 }

// StackLen returns the number of bugs stacked on the cell.
func (b *Board) StackLen(c Cell) int { return len(b.stacks[c]) }

// Stack returns the cell's stack, bottom first. The slice is owned by the
// board and must not be mutated.
func (b *Board) Stack(c Cell) []Bug { return b.stacks[c] }

// Top returns the top bug of the cell's stack.
func (b *Board) Top(c Cell) (Bug, bool) {
	s := b.stacks[c]
	if len(s) == 0 {
		return Bug{}, false
	}
	return s[len(s)-1], true
}

// OwnedBy reports whether the cell's top bug belongs to the given side.
func (b *Board) OwnedBy(c Cell, upper bool) bool {
	top, ok := b.Top(c)
	return ok && top.Upper == upper
}

// Push places a bug on top of the cell's stack and adds the cell to the
// hive set.
func (b *Board) Push(c Cell, bug Bug) {
	b.hash ^= zobKey(c, bug, len(b.stacks[c]))
	b.stacks[c] = append(b.stacks[c], bug)
	b.hive[c] = struct{}{}
}

// Pop removes and returns the cell's top bug, dropping the cell from the
// hive set when the stack empties. Popping an empty cell is a contract
// violation upstream and panics.
func (b *Board) Pop(c Cell) Bug {
	s := b.stacks[c]
	if len(s) == 0 {
		panic("game: pop from empty cell")
	}
	bug := s[len(s)-1]
	b.stacks[c] = s[:len(s)-1]
	b.hash ^= zobKey(c, bug, len(s)-1)
	if len(s) == 1 {
		delete(b.hive, c)
	}
	return bug
}

// Clone returns a deep copy of the board. A search running on another
// goroutine gets a clone, never the live board someone else is reading.
func (b *Board) Clone() *Board {
	nb := &Board{
		size:      b.size,
		myUpper:   b.myUpper,
		stacks:    make(map[Cell][]Bug, len(b.stacks)),
		hive:      make(map[Cell]struct{}, len(b.hive)),
		reserves:  b.reserves,
		moveCount: b.moveCount,
		hash:      b.hash,
	}
	for c, s := range b.stacks {
		if len(s) == 0 {
			continue
		}
		nb.stacks[c] = append(make([]Bug, 0, len(s)), s...)
	}
	for c := range b.hive {
		nb.hive[c] = struct{}{}
	}
	return nb
}

// HiveSize returns the number of occupied cells.
func (b *Board) HiveSize() int { return len(b.hive) }

// InHive reports hive-set membership of the cell.
func (b *Board) InHive(c Cell) bool {
	_, ok := b.hive[c]
	return ok
}

// AllCells returns every in-board cell in row-major order.
func (b *Board) AllCells() []Cell {
	out := make([]Cell, 0, b.size*b.size)
	for q := 0; q < b.size; q++ {
		for p := -(q / 2); p < b.size-q/2; p++ {
			out = append(out, Cell{p, q})
		}
	}
	return out
}

// OccupiedCells returns the hive cells in row-major order.
func (b *Board) OccupiedCells() []Cell {
	out := make([]Cell, 0, len(b.hive))
	for q := 0; q < b.size; q++ {
		for p := -(q / 2); p < b.size-q/2; p++ {
			if _, ok := b.hive[Cell{p, q}]; ok {
				out = append(out, Cell{p, q})
			}
		}
	}
	return out
}

// neighborsUnchecked returns the 6 neighbor cells without the in-board test.
func neighborsUnchecked(c Cell) [6]Cell {
	var out [6]Cell
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Neighbors returns the in-board neighbors of c.
func (b *Board) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 6)
	for _, d := range Directions {
		n := c.Add(d)
		if b.InBoard(n) {
			out = append(out, n)
		}
	}
	return out
}

// EmptyNeighbors returns the in-board neighbors of c holding no bug.
func (b *Board) EmptyNeighbors(c Cell) []Cell {
	out := make([]Cell, 0, 6)
	for _, d := range Directions {
		n := c.Add(d)
		if b.InBoard(n) && b.IsEmpty(n) {
			out = append(out, n)
		}
	}
	return out
}

// OccupiedNeighbors returns the in-board neighbors of c holding a bug.
func (b *Board) OccupiedNeighbors(c Cell) []Cell {
	out := make([]Cell, 0, 6)
	for _, d := range Directions {
		n := c.Add(d)
		if b.InBoard(n) && !b.IsEmpty(n) {
			out = append(out, n)
		}
	}
	return out
}

// PieceOnBoard pairs a kind with the cell whose top bug it is.
type PieceOnBoard struct {
	Kind PieceKind
	Cell Cell
}

// Pieces returns the side's top bugs in row-major order.
func (b *Board) Pieces(upper bool) []PieceOnBoard {
	out := make([]PieceOnBoard, 0, 16)
	for _, c := range b.OccupiedCells() {
		top, _ := b.Top(c)
		if top.Upper == upper {
			out = append(out, PieceOnBoard{top.Kind, c})
		}
	}
	return out
}

// PlaceableKinds returns the kinds the side still holds in reserve.
func (b *Board) PlaceableKinds(upper bool) []PieceKind {
	out := make([]PieceKind, 0, KindCount)
	for k := PieceKind(0); k < KindCount; k++ {
		if b.reserves[sideIdx(upper)][k] > 0 {
			out = append(out, k)
		}
	}
	return out
}

// MovablePieces returns the side's top bugs whose removal keeps the hive in
// one piece.
func (b *Board) MovablePieces(upper bool) []PieceOnBoard {
	out := make([]PieceOnBoard, 0, 16)
	for _, p := range b.Pieces(upper) {
		if !b.MoveBreaksHive(p.Cell) {
			out = append(out, p)
		}
	}
	return out
}

// CellsAroundHive returns the empty in-board cells adjacent to at least one
// occupied cell, row-major.
func (b *Board) CellsAroundHive() []Cell {
	out := make([]Cell, 0, 32)
	for _, c := range b.AllCells() {
		if !b.IsEmpty(c) {
			continue
		}
		for _, d := range Directions {
			n := c.Add(d)
			if b.InBoard(n) && !b.IsEmpty(n) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// onlyOwnNeighbors reports whether every occupied neighbor of c has a top
// bug of the given side.
func (b *Board) onlyOwnNeighbors(c Cell, upper bool) bool {
	for _, n := range b.OccupiedNeighbors(c) {
		top, _ := b.Top(n)
		if top.Upper != upper {
			return false
		}
	}
	return true
}

// hasPieceOnBoard reports whether any stack anywhere contains a bug of the
// side (top or buried).
func (b *Board) hasPieceOnBoard(upper bool) bool {
	for c := range b.hive {
		for _, bug := range b.stacks[c] {
			if bug.Upper == upper {
				return true
			}
		}
	}
	return false
}
