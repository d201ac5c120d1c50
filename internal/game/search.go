// File game/search.go
package game

import (
	"sort"
	"time"
)

// Node is one move in the search tree. Its score and outcome are always
// from the point of view of the side that owns the move one level up,
// negamax style.
type Node struct {
	move     Move
	score    int
	state    Outcome
	children []*Node
	depth    int
}

// NewNode wraps a candidate move into an unexpanded node.
func NewNode(m Move) *Node { return &Node{move: m} }

// Move returns the wrapped move.
func (n *Node) Move() Move { return n.move }

// Score returns the current negamax score of the node.
func (n *Node) Score() int { return n.score }

// State returns the current outcome of the node.
func (n *Node) State() Outcome { return n.state }

// childBeam is how many children survive a resort at the given node depth.
// 越深越窄，换取迭代加深还能在限时内多走几层。
func childBeam(depth int) int {
	switch {
	case depth <= 4:
		return 10
	case depth <= 6:
		return 5
	default:
		return 2
	}
}

// nextDepth deepens the subtree below n by one ply. The first call
// evaluates the position after n's move, the second materializes the
// children, later calls recurse. targetUpper is the side the scores at this
// level are computed for.
//
// Returns false when the deadline hit mid-computation; the partial results
// of this pass must be discarded by the caller.
func (n *Node) nextDepth(b *Board, ev *Evaluator, deadline time.Time, targetUpper bool) bool {
	if n.state.IsFinal() {
		return true
	}
	if time.Now().After(deadline) {
		return false
	}
	n.depth++

	b.PlayMove(n.move)
	defer b.ReverseMove(n.move)

	if n.depth == 1 {
		n.score, n.state = ev.EvaluatePosition(b, targetUpper)
		return true
	}

	if n.depth == 2 {
		moves := b.ValidMoves(!n.move.Upper)
		n.children = make([]*Node, len(moves))
		for i, m := range moves {
			n.children[i] = NewNode(m)
		}
	} else {
		for _, child := range n.children {
			if !child.nextDepth(b, ev, deadline, !targetUpper) {
				return false
			}
		}
	}

	n.score, n.state = n.evaluateChildren()
	return true
}

// evaluateChildren folds the children back into this node: keep the best
// few, take the strongest reply and negate it. No children means the side
// to move is stuck, which counts as a draw.
func (n *Node) evaluateChildren() (int, Outcome) {
	if len(n.children) == 0 {
		return 0, Draw
	}
	sort.SliceStable(n.children, func(i, j int) bool {
		return n.children[i].score > n.children[j].score
	})
	if limit := childBeam(n.depth); len(n.children) > limit {
		// 必胜的回应无论排多低都不能剪掉
		kept := n.children[:limit:limit]
		for _, c := range n.children[limit:] {
			if c.state == Win {
				kept = append(kept, c)
			}
		}
		n.children = kept
	}
	best := n.children[0]
	return -best.score, best.state.Invert()
}

// SearchResult is the outcome of one time-bounded search.
type SearchResult struct {
	Move      Move
	Score     int
	State     Outcome
	Depth     int
	Evaluated uint64
}

// rootBeam is how many root nodes survive round r of iterative deepening.
func rootBeam(round, total int) int {
	switch {
	case round <= 2:
		return total
	case round <= 5:
		return 5
	default:
		return 2
	}
}

// Minimax runs iterative deepening over the legal moves of the given side
// until the deadline. It always returns a legal move as long as one exists;
// ok is false when the side has no move at all.
//
// 每一轮把所有根节点加深一层，发现必胜立刻返回，必败的根被剪掉。
// 超时那一轮的半成品结果整体丢弃，返回上一轮的最优。
func Minimax(b *Board, upper bool, deadline time.Time, ev *Evaluator) (SearchResult, bool) {
	moves := b.ValidMoves(upper)
	if len(moves) == 0 {
		return SearchResult{}, false
	}

	nodes := make([]*Node, len(moves))
	for i, m := range moves {
		nodes[i] = NewNode(m)
	}

	best := nodes[0]
	round := 0
	for ; ; round++ {
		if time.Now().After(deadline) {
			break
		}

		for _, n := range nodes {
			if !n.nextDepth(b, ev, deadline, upper) {
				return result(best, round, ev), true
			}
		}

		// 必胜着法按生成顺序取第一个，排序前检查。
		for _, n := range nodes {
			if n.state == Win {
				return result(n, round+1, ev), true
			}
		}

		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].score > nodes[j].score
		})

		limit := rootBeam(round, len(nodes))
		kept := nodes[:0]
		for _, n := range nodes {
			if n.state == Loss {
				continue
			}
			kept = append(kept, n)
			if len(kept) == limit {
				break
			}
		}
		if len(kept) == 0 {
			// 所有着法都输，维持上一轮的最优认命。
			break
		}
		nodes = kept
		best = nodes[0]
	}

	return result(best, round, ev), true
}

func result(n *Node, depth int, ev *Evaluator) SearchResult {
	return SearchResult{
		Move:      n.move,
		Score:     n.score,
		State:     n.state,
		Depth:     depth,
		Evaluated: ev.Evaluated(),
	}
}
