package game

import "testing"

func TestEncodeBoardPlanes(t *testing.T) {
	b := NewBoard(13, true)
	c := Cell{3, 6}
	b.Push(c, Bug{Kind: Queen, Upper: false})
	b.Push(c, Bug{Kind: Beetle, Upper: true})

	dst := make([]float32, NNPlanes*NNGrid*NNGrid)
	EncodeBoard(b, true, dst)

	area := NNGrid * NNGrid
	idx := nnIndex(c)

	// 栈顶是我方甲虫
	if dst[int(Beetle)*area+idx] != 1 {
		t.Fatal("own beetle plane not set")
	}
	// 被压住的对方皇后不在平面里，只有栈顶可见
	if dst[(int(Queen)+KindCount)*area+idx] != 0 {
		t.Fatal("covered queen leaked into a plane")
	}
	if dst[planeHeight*area+idx] != 2 {
		t.Fatalf("height plane = %v, want 2", dst[planeHeight*area+idx])
	}
	if dst[planeMask*area+idx] != 1 {
		t.Fatal("mask plane not set for an in-board cell")
	}

	// 掩码平面应当覆盖整个棋盘
	total := float32(0)
	for i := 0; i < area; i++ {
		total += dst[planeMask*area+i]
	}
	if total != float32(13*13) {
		t.Fatalf("mask covers %v cells, want %d", total, 13*13)
	}
}

// 驱动方可以送来比网格大的棋盘，编码只取网格内的部分。
func TestEncodeBoardOversizedBoard(t *testing.T) {
	b := NewBoard(15, true)
	inside := Cell{3, 6}
	b.Push(inside, Bug{Kind: Queen, Upper: true})
	b.Push(Cell{0, 14}, Bug{Kind: Ant, Upper: true})
	b.Push(Cell{13, 0}, Bug{Kind: Ant, Upper: true})

	dst := make([]float32, NNPlanes*NNGrid*NNGrid)
	EncodeBoard(b, true, dst)

	area := NNGrid * NNGrid
	if dst[int(Queen)*area+nnIndex(inside)] != 1 {
		t.Fatal("in-grid queen missing")
	}
	antTotal := float32(0)
	for i := 0; i < area; i++ {
		antTotal += dst[int(Ant)*area+i]
	}
	if antTotal != 0 {
		t.Fatalf("out-of-grid ants leaked into the tensor: %v", antTotal)
	}
	maskTotal := float32(0)
	for i := 0; i < area; i++ {
		maskTotal += dst[planeMask*area+i]
	}
	if maskTotal != float32(NNGrid*NNGrid) {
		t.Fatalf("mask covers %v cells, want %d", maskTotal, NNGrid*NNGrid)
	}
}

func TestEncodeBoardPerspective(t *testing.T) {
	b := NewBoard(13, true)
	c := Cell{3, 6}
	b.Push(c, Bug{Kind: Ant, Upper: true})

	dst := make([]float32, NNPlanes*NNGrid*NNGrid)
	area := NNGrid * NNGrid
	idx := nnIndex(c)

	EncodeBoard(b, true, dst)
	if dst[int(Ant)*area+idx] != 1 {
		t.Fatal("upper ant missing from own planes for the upper side")
	}

	EncodeBoard(b, false, dst)
	if dst[(int(Ant)+KindCount)*area+idx] != 1 {
		t.Fatal("upper ant missing from rival planes for the lower side")
	}
	if dst[int(Ant)*area+idx] != 0 {
		t.Fatal("stale plane data survived re-encoding")
	}
}
