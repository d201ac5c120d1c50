// File game/hive.go
package game

// MoveBreaksHive reports whether lifting the top bug off cell c would split
// the hive into disconnected parts. Bugs sitting on top of a stack never
// break the hive: the bug beneath keeps the cell occupied.
//
// 先走两条快速路径：叠子必然安全；周围已占格在环上连成一段时拿走也安全。
// 只有在环上出现多段时才做一次真正的洪泛填充。
func (b *Board) MoveBreaksHive(c Cell) bool {
	n := b.StackLen(c)
	if n == 0 {
		return false
	}
	if n > 1 {
		return false
	}
	// 邻居环：不做边界过滤，出界格视为空，段计数才正确。
	var occ [6]bool
	cnt := 0
	for i, d := range Directions {
		nc := c.Add(d)
		if b.InBoard(nc) && b.StackLen(nc) > 0 {
			occ[i] = true
			cnt++
		}
	}
	if cnt == 0 {
		// 无邻居的子：整群只有它自己时随便动，否则视为破坏连通。
		return b.HiveSize() > 1
	}
	// 数环上的已占段数，首尾相接要合并。
	runs := 0
	for i := 0; i < 6; i++ {
		if occ[i] && !occ[(i+5)%6] {
			runs++
		}
	}
	if runs <= 1 {
		return false
	}
	// 拿起来洪泛验证，结束前必然放回。
	bug := b.Pop(c)
	defer b.Push(c, bug)

	var start Cell
	for _, d := range Directions {
		nc := c.Add(d)
		if b.InBoard(nc) && b.StackLen(nc) > 0 {
			start = nc
			break
		}
	}
	visited := map[Cell]struct{}{start: {}}
	queue := []Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			nc := cur.Add(d)
			if !b.InBoard(nc) || b.StackLen(nc) == 0 {
				continue
			}
			if _, ok := visited[nc]; ok {
				continue
			}
			visited[nc] = struct{}{}
			queue = append(queue, nc)
		}
	}
	return len(visited) != b.HiveSize()
}
