// File game/encode.go
package game

// 网络输入：每种棋子两方各一个平面，再加层高和棋盘掩码。
// 行 q 的列索引是 p + q/2，正好把偏移坐标摆进矩形网格。
const (
	// NNGrid is the spatial size of the network input, one slot per board
	// row and column.
	NNGrid = DefaultBoardSize

	// NNPlanes is the channel count: my five kinds, rival five kinds,
	// stack height and the in-board mask.
	NNPlanes = 2*KindCount + 2

	planeHeight = 2 * KindCount
	planeMask   = 2*KindCount + 1
)

// nnIndex maps a cell to its slot in one input plane.
func nnIndex(c Cell) int {
	return c.Q*NNGrid + c.P + c.Q/2
}

// EncodeBoard fills dst with the NNPlanes x NNGrid x NNGrid tensor of the
// position from the perspective of the side given by targetUpper. dst must
// hold NNPlanes*NNGrid*NNGrid values.
func EncodeBoard(b *Board, targetUpper bool, dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
	area := NNGrid * NNGrid
	for _, c := range b.AllCells() {
		// 棋盘比网格大时，网格外的格子直接跳过
		if c.Q >= NNGrid || c.P+c.Q/2 >= NNGrid {
			continue
		}
		idx := nnIndex(c)
		dst[planeMask*area+idx] = 1
		stack := b.Stack(c)
		if len(stack) == 0 {
			continue
		}
		top := stack[len(stack)-1]
		plane := int(top.Kind)
		if top.Upper != targetUpper {
			plane += KindCount
		}
		dst[plane*area+idx] = 1
		dst[planeHeight*area+idx] = float32(len(stack))
	}
}
