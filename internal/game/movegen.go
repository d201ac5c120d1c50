// File game/movegen.go
package game

// Move is a single placement or relocation of one bug.
type Move struct {
	Kind  PieceKind
	Upper bool
	From  Cell // meaningful only when Place is false
	To    Cell
	Place bool
}

// placement constructs a reserve-to-board move.
func placement(k PieceKind, upper bool, to Cell) Move {
	return Move{Kind: k, Upper: upper, To: to, Place: true}
}

// relocation constructs an on-board move.
func relocation(k PieceKind, upper bool, from, to Cell) Move {
	return Move{Kind: k, Upper: upper, From: from, To: to}
}

// PlayMove applies m to the board. Placements take the bug out of the
// reserve; relocations lift it off From first. Panics when the board does
// not match the move, callers only pass moves generated from this position.
func (b *Board) PlayMove(m Move) {
	bug := Bug{Kind: m.Kind, Upper: m.Upper}
	if m.Place {
		s := sideIdx(m.Upper)
		if b.reserves[s][m.Kind] <= 0 {
			panic("game: placing " + bug.String() + " with empty reserve")
		}
		b.reserves[s][m.Kind]--
	} else {
		got := b.Pop(m.From)
		if got != bug {
			panic("game: expected " + bug.String() + " at origin, found " + got.String())
		}
	}
	b.Push(m.To, bug)
	b.moveCount[sideIdx(m.Upper)]++
}

// ReverseMove undoes a move previously applied with PlayMove.
func (b *Board) ReverseMove(m Move) {
	bug := Bug{Kind: m.Kind, Upper: m.Upper}
	got := b.Pop(m.To)
	if got != bug {
		panic("game: expected " + bug.String() + " at target, found " + got.String())
	}
	if m.Place {
		b.reserves[sideIdx(m.Upper)][m.Kind]++
	} else {
		b.Push(m.From, bug)
	}
	b.moveCount[sideIdx(m.Upper)]--
}

// canMoveTo reports whether a lifted bug standing on from can take a single
// step to to. The freedom-to-move rule looks at the two cells flanking the
// step: a sliding bug needs exactly one of them occupied (both in board), a
// crawling bug just needs something to hold on to on either side.
//
// 调用前棋子必须已经被拿起，否则它自己会挡住侧翼判定。
func (b *Board) canMoveTo(from, to Cell, crawl bool) bool {
	if !crawl && b.StackLen(to) > 0 {
		return false
	}
	d := Direction{DP: to.P - from.P, DQ: to.Q - from.Q}
	left := from.Add(d.RotateLeft())
	right := from.Add(d.RotateRight())
	leftIn := b.InBoard(left)
	rightIn := b.InBoard(right)
	if crawl {
		return (leftIn && b.StackLen(left) > 0) || (rightIn && b.StackLen(right) > 0)
	}
	if !leftIn || !rightIn {
		return false
	}
	return (b.StackLen(left) == 0) != (b.StackLen(right) == 0)
}

// validSteps returns the in-board neighbors of cell reachable in one step.
func (b *Board) validSteps(cell Cell, crawl bool) []Cell {
	var steps []Cell
	for _, d := range Directions {
		nc := cell.Add(d)
		if b.InBoard(nc) && b.canMoveTo(cell, nc, crawl) {
			steps = append(steps, nc)
		}
	}
	return steps
}

// liftFor pops the bug at cell after checking its kind, returning a restore
// function. 走子生成器都靠它保证“生成期间原格视为空”。
func (b *Board) liftFor(k PieceKind, cell Cell) func() {
	bug := b.Pop(cell)
	if bug.Kind != k {
		panic("game: " + bug.String() + " at origin is not a " + k.String())
	}
	return func() { b.Push(cell, bug) }
}

// QueenMoves generates the single-step slides of the queen at the cell.
func (b *Board) QueenMoves(queen Cell, upper bool) []Move {
	restore := b.liftFor(Queen, queen)
	defer restore()
	var moves []Move
	for _, to := range b.validSteps(queen, false) {
		moves = append(moves, relocation(Queen, upper, queen, to))
	}
	return moves
}

// AntMoves generates every cell the ant can slide to. The ant walks the
// closure of single slides around the hive, any number of steps.
func (b *Board) AntMoves(ant Cell, upper bool) []Move {
	restore := b.liftFor(Ant, ant)
	defer restore()
	visited := map[Cell]struct{}{ant: {}}
	queue := b.validSteps(ant, false)
	var moves []Move
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		moves = append(moves, relocation(Ant, upper, ant, cur))
		queue = append(queue, b.validSteps(cur, false)...)
	}
	return moves
}

// BeetleMoves generates single crawling steps, including onto occupied cells.
func (b *Board) BeetleMoves(beetle Cell, upper bool) []Move {
	restore := b.liftFor(Beetle, beetle)
	defer restore()
	var moves []Move
	for _, to := range b.validSteps(beetle, true) {
		moves = append(moves, relocation(Beetle, upper, beetle, to))
	}
	return moves
}

// GrasshopperMoves generates straight-line jumps. The jump must clear at
// least one bug and lands on the first empty cell behind the run.
func (b *Board) GrasshopperMoves(grasshopper Cell, upper bool) []Move {
	restore := b.liftFor(Grasshopper, grasshopper)
	defer restore()
	var moves []Move
	for _, d := range Directions {
		cur := grasshopper
		skipped := false
		for {
			cur = cur.Add(d)
			if !b.InBoard(cur) {
				break
			}
			if b.StackLen(cur) == 0 {
				if skipped {
					moves = append(moves, relocation(Grasshopper, upper, grasshopper, cur))
				}
				break
			}
			skipped = true
		}
	}
	return moves
}

// SpiderMoves generates exactly-three-step slides without revisiting cells.
func (b *Board) SpiderMoves(spider Cell, upper bool) []Move {
	restore := b.liftFor(Spider, spider)
	defer restore()
	visited := map[Cell]struct{}{}
	frontier := []Cell{spider}
	for i := 0; i < 3; i++ {
		var next []Cell
		for _, cur := range frontier {
			visited[cur] = struct{}{}
			for _, nc := range b.validSteps(cur, false) {
				if _, ok := visited[nc]; !ok {
					next = append(next, nc)
				}
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	var moves []Move
	seen := map[Cell]struct{}{}
	for _, to := range frontier {
		if _, ok := seen[to]; ok {
			continue
		}
		seen[to] = struct{}{}
		moves = append(moves, relocation(Spider, upper, spider, to))
	}
	return moves
}

// movesFor dispatches to the per-kind generator.
func (b *Board) movesFor(p PieceOnBoard, upper bool) []Move {
	switch p.Kind {
	case Queen:
		return b.QueenMoves(p.Cell, upper)
	case Ant:
		return b.AntMoves(p.Cell, upper)
	case Beetle:
		return b.BeetleMoves(p.Cell, upper)
	case Grasshopper:
		return b.GrasshopperMoves(p.Cell, upper)
	case Spider:
		return b.SpiderMoves(p.Cell, upper)
	}
	panic("game: unknown piece kind")
}

// ValidPlacements returns the cells where the side may introduce a new bug:
// empty cells around the hive whose occupied neighbors are all friendly.
// A side with nothing on the board yet is exempt from the friendly-contact
// rule, and the very first bug of the game may go anywhere.
func (b *Board) ValidPlacements(upper bool) []Cell {
	if b.HiveSize() == 0 {
		return b.AllCells()
	}
	around := b.CellsAroundHive()
	if !b.hasPieceOnBoard(upper) {
		return around
	}
	var cells []Cell
	for _, c := range around {
		if b.onlyOwnNeighbors(c, upper) {
			cells = append(cells, c)
		}
	}
	return cells
}

// ValidMoves returns every legal move for the side. The queen must come out
// by the side's fourth placement, and bugs on the board may only start
// moving once the side has made four moves.
func (b *Board) ValidMoves(upper bool) []Move {
	s := sideIdx(upper)

	if b.reserves[s][Queen] > 0 && b.moveCount[s] == 3 {
		var moves []Move
		for _, cell := range b.ValidPlacements(upper) {
			moves = append(moves, placement(Queen, upper, cell))
		}
		return moves
	}

	var moves []Move
	kinds := b.PlaceableKinds(upper)
	for _, cell := range b.ValidPlacements(upper) {
		for _, k := range kinds {
			moves = append(moves, placement(k, upper, cell))
		}
	}
	if b.moveCount[s] >= 4 {
		for _, p := range b.MovablePieces(upper) {
			moves = append(moves, b.movesFor(p, upper)...)
		}
	}
	return moves
}
