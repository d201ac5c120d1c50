package game

import (
	"testing"
	"time"
)

func TestDirectionRotations(t *testing.T) {
	for _, d := range Directions {
		// 转六次回到原方向
		l, r := d, d
		for i := 0; i < 6; i++ {
			l = l.RotateLeft()
			r = r.RotateRight()
		}
		if l != d || r != d {
			t.Fatalf("rotating %v six times: left=%v right=%v", d, l, r)
		}
		if d.RotateLeft().RotateRight() != d {
			t.Fatalf("left then right of %v is not identity", d)
		}
	}
}

func TestInBoardBounds(t *testing.T) {
	b := NewBoard(13, true)

	cases := []struct {
		cell Cell
		want bool
	}{
		{Cell{0, 0}, true},
		{Cell{12, 0}, true},
		{Cell{13, 0}, false},
		{Cell{-1, 0}, false},
		{Cell{0, 12}, true},
		{Cell{-6, 12}, true}, // q=12 的行左界是 -6
		{Cell{-7, 12}, false},
		{Cell{6, 12}, true},
		{Cell{7, 12}, false},
		{Cell{0, 13}, false},
		{Cell{0, -1}, false},
	}
	for _, c := range cases {
		if got := b.InBoard(c.cell); got != c.want {
			t.Errorf("InBoard(%v) = %v, want %v", c.cell, got, c.want)
		}
	}
}

func TestNeighborsCentral(t *testing.T) {
	b := NewBoard(13, true)
	got := b.Neighbors(Cell{3, 6})
	if len(got) != 6 {
		t.Fatalf("central cell has %d neighbors, want 6", len(got))
	}
	want := map[Cell]bool{
		{4, 6}: true, {3, 7}: true, {2, 7}: true,
		{2, 6}: true, {3, 5}: true, {4, 5}: true,
	}
	for _, c := range got {
		if !want[c] {
			t.Errorf("unexpected neighbor %v", c)
		}
	}
}

func TestPushPopStack(t *testing.T) {
	b := NewBoard(13, true)
	c := Cell{3, 6}

	q := Bug{Kind: Queen, Upper: true}
	bt := Bug{Kind: Beetle, Upper: false}

	b.Push(c, q)
	b.Push(c, bt)

	if b.StackLen(c) != 2 {
		t.Fatalf("stack length = %d, want 2", b.StackLen(c))
	}
	if top, _ := b.Top(c); top != bt {
		t.Fatalf("top = %v, want beetle", top)
	}
	if !b.InHive(c) {
		t.Fatal("occupied cell not in hive")
	}

	if got := b.Pop(c); got != bt {
		t.Fatalf("popped %v, want beetle", got)
	}
	if got := b.Pop(c); got != q {
		t.Fatalf("popped %v, want queen", got)
	}
	if b.InHive(c) || b.HiveSize() != 0 {
		t.Fatal("hive not empty after popping everything")
	}
}

func TestOwnedBy(t *testing.T) {
	b := NewBoard(13, true)
	c := Cell{3, 6}
	b.Push(c, Bug{Kind: Queen, Upper: false})
	b.Push(c, Bug{Kind: Beetle, Upper: true})

	// 归属只看栈顶
	if !b.OwnedBy(c, true) {
		t.Fatal("cell with upper beetle on top should belong to upper")
	}
	if b.OwnedBy(c, false) {
		t.Fatal("cell should not belong to lower")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewGameBoard(13, true)
	c := Cell{3, 6}
	b.Push(c, Bug{Kind: Queen, Upper: false})
	b.Push(c, Bug{Kind: Beetle, Upper: true})
	b.Push(Cell{4, 6}, Bug{Kind: Ant, Upper: true})
	b.SetTurn(true, 2)
	b.SetTurn(false, 1)

	cl := b.Clone()
	if cl.Hash() != b.Hash() || cl.String() != b.String() {
		t.Fatal("clone differs from original")
	}

	// 改副本不能动正本，连共享底层切片都不行
	cl.PlayMove(placement(Spider, true, Cell{5, 6}))
	cl.Pop(c)
	if b.StackLen(c) != 2 {
		t.Fatalf("original stack length = %d after mutating clone", b.StackLen(c))
	}
	if b.StackLen(Cell{5, 6}) != 0 {
		t.Fatal("placement on clone leaked into original")
	}
	if b.Reserve(true, Spider) != DefaultReserve[Spider] {
		t.Fatal("clone placement changed original reserve")
	}
	if b.Turn(true) != 2 {
		t.Fatalf("original turn = %d after clone moved", b.Turn(true))
	}

	// 反过来也一样
	b.Push(Cell{2, 6}, Bug{Kind: Grasshopper, Upper: false})
	if cl.StackLen(Cell{2, 6}) != 0 {
		t.Fatal("push on original leaked into clone")
	}
}

// 界面把副本交给后台搜索，正本要保持可读且一动不动。
func TestSearchOnCloneLeavesOriginalReadable(t *testing.T) {
	b := NewGameBoard(13, true)
	b.Push(Cell{3, 6}, Bug{Kind: Spider, Upper: true})
	b.Push(Cell{4, 6}, Bug{Kind: Spider, Upper: false})
	b.SetTurn(true, 1)
	b.SetTurn(false, 1)
	want := b.String()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ev := NewEvaluator(NewEvalCache())
		Minimax(b.Clone(), true, time.Now().Add(50*time.Millisecond), ev)
	}()

	for {
		for _, c := range []Cell{{3, 6}, {4, 6}} {
			if _, ok := b.Top(c); !ok {
				t.Fatalf("cell %v lost its piece while the engine searched", c)
			}
		}
		select {
		case <-done:
			if got := b.String(); got != want {
				t.Fatalf("board changed during search:\n%s\nwant:\n%s", got, want)
			}
			return
		default:
		}
	}
}

func TestCellsAroundHive(t *testing.T) {
	b := NewBoard(13, true)
	b.Push(Cell{3, 6}, Bug{Kind: Spider, Upper: true})

	around := b.CellsAroundHive()
	if len(around) != 6 {
		t.Fatalf("cells around single piece = %d, want 6", len(around))
	}
	for _, c := range around {
		if b.StackLen(c) != 0 {
			t.Errorf("cell %v around hive is not empty", c)
		}
	}
}
