package game

import (
	"math/rand"
	"testing"
)

func movesTo(moves []Move) map[Cell]bool {
	set := make(map[Cell]bool, len(moves))
	for _, m := range moves {
		set[m.To] = true
	}
	return set
}

// 两子蜂群 (3,6)(4,6)，走子的虫在 (2,6)。
func twoPieceHive(kind PieceKind) *Board {
	b := NewBoard(13, true)
	b.Push(Cell{2, 6}, Bug{Kind: kind, Upper: true})
	b.Push(Cell{3, 6}, Bug{Kind: Queen, Upper: false})
	b.Push(Cell{4, 6}, Bug{Kind: Ant, Upper: false})
	return b
}

func TestQueenMovesSingleStep(t *testing.T) {
	b := twoPieceHive(Queen)
	got := movesTo(b.QueenMoves(Cell{2, 6}, true))
	want := map[Cell]bool{{2, 7}: true, {3, 5}: true}
	if len(got) != len(want) {
		t.Fatalf("queen moves = %v, want %v", got, want)
	}
	for c := range want {
		if !got[c] {
			t.Errorf("queen move to %v missing", c)
		}
	}
}

func TestAntMovesFullPerimeter(t *testing.T) {
	b := twoPieceHive(Ant)
	got := movesTo(b.AntMoves(Cell{2, 6}, true))
	// 蚂蚁能绕到两子蜂群周围除起点外的全部 7 个格
	want := []Cell{{2, 7}, {3, 7}, {4, 7}, {5, 5}, {5, 6}, {4, 5}, {3, 5}}
	if len(got) != len(want) {
		t.Fatalf("ant reaches %d cells, want %d: %v", len(got), len(want), got)
	}
	for _, c := range want {
		if !got[c] {
			t.Errorf("ant move to %v missing", c)
		}
	}
	if got[Cell{2, 6}] {
		t.Error("ant must not return to its origin")
	}
}

func TestSpiderMovesExactlyThreeSteps(t *testing.T) {
	b := twoPieceHive(Spider)
	got := movesTo(b.SpiderMoves(Cell{2, 6}, true))
	want := map[Cell]bool{{4, 7}: true, {5, 5}: true}
	if len(got) != len(want) {
		t.Fatalf("spider moves = %v, want %v", got, want)
	}
	for c := range want {
		if !got[c] {
			t.Errorf("spider move to %v missing", c)
		}
	}
}

func TestGrasshopperJumpsOverRun(t *testing.T) {
	b := twoPieceHive(Grasshopper)
	got := movesTo(b.GrasshopperMoves(Cell{2, 6}, true))
	// 只有向右越过 (3,6)(4,6) 落在 (5,6) 一跳；第一格为空的方向都不算
	if len(got) != 1 || !got[Cell{5, 6}] {
		t.Fatalf("grasshopper moves = %v, want only (5,6)", got)
	}
}

func TestGrasshopperNeedsAdjacentPiece(t *testing.T) {
	b := NewBoard(13, true)
	b.Push(Cell{2, 6}, Bug{Kind: Grasshopper, Upper: true})
	b.Push(Cell{4, 6}, Bug{Kind: Ant, Upper: false}) // 隔一格，不相邻
	if got := b.GrasshopperMoves(Cell{2, 6}, true); len(got) != 0 {
		t.Fatalf("grasshopper with no adjacent piece moved: %v", got)
	}
}

func TestBeetleSlidesLikeQueen(t *testing.T) {
	b := twoPieceHive(Beetle)
	got := movesTo(b.BeetleMoves(Cell{2, 6}, true))
	// 两侧翼都空时不能直接爬上 (3,6)
	if got[Cell{3, 6}] {
		t.Error("beetle climbed with both flanks empty")
	}
	if !got[Cell{2, 7}] || !got[Cell{3, 5}] {
		t.Errorf("beetle slide moves missing: %v", got)
	}
}

func TestBeetleClimbsWithSupport(t *testing.T) {
	b := twoPieceHive(Beetle)
	b.Push(Cell{2, 7}, Bug{Kind: Ant, Upper: true})
	got := movesTo(b.BeetleMoves(Cell{2, 6}, true))
	if !got[Cell{3, 6}] {
		t.Fatalf("beetle should climb onto (3,6) with a flank occupied: %v", got)
	}
	if !got[Cell{2, 7}] {
		t.Error("beetle should crawl on top of the ant at (2,7)")
	}
}

func TestValidPlacementsFriendlyContact(t *testing.T) {
	b := NewBoard(13, true)
	b.Push(Cell{3, 6}, Bug{Kind: Spider, Upper: true})
	b.Push(Cell{5, 6}, Bug{Kind: Spider, Upper: false})
	b.SetTurn(true, 1)
	b.SetReserve(true, Ant, 3)

	cells := map[Cell]bool{}
	for _, c := range b.ValidPlacements(true) {
		cells[c] = true
	}
	if !cells[Cell{2, 6}] {
		t.Error("cell touching only own pieces rejected")
	}
	if cells[Cell{4, 6}] {
		t.Error("cell touching a rival piece accepted")
	}
}

func TestValidPlacementsFirstPieceExemption(t *testing.T) {
	b := NewBoard(13, true)

	// 空棋盘：随便放
	if got := len(b.ValidPlacements(true)); got != 13*13 {
		t.Fatalf("empty board placements = %d, want %d", got, 13*13)
	}

	// 对方先手之后：自己还没有子，贴着蜂群任何位置都行
	b.Push(Cell{3, 6}, Bug{Kind: Spider, Upper: false})
	got := b.ValidPlacements(true)
	if len(got) != 6 {
		t.Fatalf("second placement cells = %d, want 6", len(got))
	}
}

func TestValidMovesQueenForcedOnFourth(t *testing.T) {
	b := NewBoard(13, true)
	b.Push(Cell{3, 6}, Bug{Kind: Spider, Upper: true})
	b.Push(Cell{4, 6}, Bug{Kind: Ant, Upper: true})
	b.Push(Cell{2, 6}, Bug{Kind: Ant, Upper: true})
	b.SetTurn(true, 3)
	b.SetReserve(true, Queen, 1)
	b.SetReserve(true, Ant, 1)

	moves := b.ValidMoves(true)
	if len(moves) == 0 {
		t.Fatal("no moves generated")
	}
	for _, m := range moves {
		if !m.Place || m.Kind != Queen {
			t.Fatalf("fourth move must place the queen, got %v", m)
		}
	}
}

func TestValidMovesNoMovementBeforeFourPlacements(t *testing.T) {
	b := NewBoard(13, true)
	b.Push(Cell{3, 6}, Bug{Kind: Queen, Upper: true})
	b.Push(Cell{4, 6}, Bug{Kind: Ant, Upper: false})
	b.SetTurn(true, 2)
	b.SetReserve(true, Ant, 1)

	for _, m := range b.ValidMoves(true) {
		if !m.Place {
			t.Fatalf("movement %v generated before the fourth turn", m)
		}
	}
}

func TestPlayReverseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewGameBoard(13, true)
	upper := true

	for ply := 0; ply < 60; ply++ {
		moves := b.ValidMoves(upper)
		if len(moves) == 0 {
			upper = !upper
			continue
		}

		hash := b.Hash()
		text := b.String()
		turn := b.Turn(upper)
		for _, m := range moves {
			b.PlayMove(m)
			b.ReverseMove(m)
		}
		if b.Hash() != hash {
			t.Fatalf("ply %d: hash changed by play+reverse", ply)
		}
		if b.String() != text {
			t.Fatalf("ply %d: board changed by play+reverse", ply)
		}
		if b.Turn(upper) != turn {
			t.Fatalf("ply %d: move counter changed by play+reverse", ply)
		}

		b.PlayMove(moves[rng.Intn(len(moves))])
		upper = !upper
	}
}
