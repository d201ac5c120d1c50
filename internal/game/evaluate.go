// File game/evaluate.go
package game

// Outcome is the game state of a position from one side's point of view.
type Outcome int8

const (
	Running Outcome = iota
	Win
	Loss
	Draw
)

// IsFinal reports whether the outcome ends the game.
func (o Outcome) IsFinal() bool { return o > Running }

// Invert flips Win and Loss, other outcomes stay as they are.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	}
	return o
}

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Evaluation criteria, indexes into the score tables below.
//
//   - base points for every bug on the board
//   - non-queen bug blocking a rival bug by being its only neighbor
//   - beetle sitting on a rival bug, extra bonus when that bug is the queen
//   - penalty per occupied neighbor of the queen
//   - terminal score for a fully surrounded queen
//   - penalty when the queen cannot move without splitting the hive
const (
	critBase = iota
	critGenericBlocking
	critBeetleBlocking
	critBeetleQueenBonus
	critQueenNeighbor
	critQueenSurrounded
	critQueenBlocked
)

// 两张表不对称：对方的威胁权重略高于我方的同类优势，搜索会更愿意防守。
var (
	evalTableMy    = [7]int{1, 600, 200, 1000, -400, -1000000, -400}
	evalTableRival = [7]int{-1, -500, -200, -1200, 400, 1000000, 400}
)

// blocksRivalPiece reports whether the bug on cell is the sole neighbor of
// some bug, and that bug belongs to the other side. ownerUpper is the side
// of the bug on cell.
func (b *Board) blocksRivalPiece(cell Cell, ownerUpper bool) bool {
	seen := false
	for _, nc := range b.OccupiedNeighbors(cell) {
		top, _ := b.Top(nc)
		if top.Upper == ownerUpper {
			return false
		}
		if seen {
			return false
		}
		seen = true
	}
	return seen
}

// evaluateCell scores one occupied cell from the perspective of the side
// given by targetUpper. A surrounded queen makes the whole position final.
func (b *Board) evaluateCell(cell Cell, targetUpper bool) (int, Outcome) {
	top, _ := b.Top(cell)
	my := top.Upper == targetUpper

	table := &evalTableRival
	if my {
		table = &evalTableMy
	}

	score := table[critBase]

	if top.Kind != Queen && b.blocksRivalPiece(cell, top.Upper) {
		score = table[critGenericBlocking]
	}

	switch top.Kind {
	case Beetle:
		stack := b.Stack(cell)
		if len(stack) >= 2 {
			under := stack[len(stack)-2]
			if under.Upper != top.Upper {
				score += table[critBeetleBlocking]
				if under.Kind == Queen {
					score += table[critBeetleQueenBonus]
				}
			} else {
				// 压住自家棋子反而丢分。
				score -= table[critGenericBlocking]
			}
		}
	case Queen:
		c := len(b.OccupiedNeighbors(cell))
		if c == 6 {
			if my {
				return table[critQueenSurrounded], Loss
			}
			return table[critQueenSurrounded], Win
		}
		score = table[critQueenNeighbor] * (c - 1)
		if b.MoveBreaksHive(cell) {
			score += table[critQueenBlocked]
		}
	}

	return score, Running
}

// Evaluator computes static scores with optional memoization. With the
// network enabled, running positions take their score from the value head
// instead of the tables; terminal detection stays table-based either way.
type Evaluator struct {
	cache     *EvalCache
	useNN     bool
	evaluated uint64
}

// NewEvaluator returns an evaluator. cache may be nil to disable
// memoization.
func NewEvaluator(cache *EvalCache) *Evaluator {
	return &Evaluator{cache: cache}
}

// EnableNN switches non-terminal scoring to the ONNX value head. The first
// inference error falls back to the tables for the rest of the search.
func (e *Evaluator) EnableNN() { e.useNN = true }

// Evaluated returns how many positions were scored, cache hits included.
func (e *Evaluator) Evaluated() uint64 { return e.evaluated }

// EvaluatePosition scores the whole board from the perspective of the side
// given by targetUpper. A final outcome short-circuits the sum.
func (e *Evaluator) EvaluatePosition(b *Board, targetUpper bool) (int, Outcome) {
	e.evaluated++
	key := evalKey(b, targetUpper)
	if e.useNN {
		// 静态分和网络分不可比，缓存键也得分开。
		key = splitmix64(key)
	}
	if score, state, ok := e.cache.probe(key); ok {
		return score, state
	}
	score := 0
	state := Running
	for _, cell := range b.OccupiedCells() {
		s, st := b.evaluateCell(cell, targetUpper)
		if st.IsFinal() {
			score, state = s, st
			break
		}
		score += s
	}
	if e.useNN && !state.IsFinal() {
		if nn, err := EvaluateNN(b, targetUpper); err == nil {
			score = nn
		} else {
			e.useNN = false
		}
	}
	e.cache.store(key, score, state)
	return score, state
}
