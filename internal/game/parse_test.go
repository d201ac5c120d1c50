package game

import (
	"strings"
	"testing"
)

func TestParseBoardRoundTrip(t *testing.T) {
	b := NewBoard(13, true)
	b.Push(Cell{3, 6}, Bug{Kind: Queen, Upper: true})
	b.Push(Cell{3, 6}, Bug{Kind: Beetle, Upper: false}) // 栈自下而上写成 "Qb"
	b.Push(Cell{4, 6}, Bug{Kind: Ant, Upper: false})
	b.Push(Cell{-3, 7}, Bug{Kind: Grasshopper, Upper: true}) // 行首的负 p 坐标

	text := b.String()
	if !strings.Contains(text, "Qb") {
		t.Fatalf("stack not rendered bottom to top:\n%s", text)
	}

	parsed, err := ParseBoard(text, 13, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.String() != text {
		t.Fatalf("round trip mismatch:\n%s\nvs\n%s", parsed.String(), text)
	}
	if parsed.Hash() != b.Hash() {
		t.Fatal("round trip changed the position hash")
	}
}

func TestParseBoardRejectsGarbage(t *testing.T) {
	if _, err := ParseBoard("X", 13, true); err == nil {
		t.Fatal("unknown piece letter accepted")
	}
}

func TestParseBoardEmpty(t *testing.T) {
	b := NewBoard(13, true)
	parsed, err := ParseBoard(b.String(), 13, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.HiveSize() != 0 {
		t.Fatalf("empty board parsed with %d pieces", parsed.HiveSize())
	}
}

func TestBruteMoveTuple(t *testing.T) {
	place := placement(Spider, true, Cell{3, 6}).Brute()
	tuple := place.Tuple()
	if tuple[0] != "S" || tuple[1] != nil || tuple[2] != nil || tuple[3] != 3 || tuple[4] != 6 {
		t.Fatalf("placement tuple = %v", tuple)
	}

	move := relocation(Ant, false, Cell{1, 2}, Cell{3, 4}).Brute()
	tuple = move.Tuple()
	if tuple[0] != "a" || tuple[1] != 1 || tuple[2] != 2 || tuple[3] != 3 || tuple[4] != 4 {
		t.Fatalf("relocation tuple = %v", tuple)
	}
}

func TestMoveFromBruteRoundTrip(t *testing.T) {
	moves := []Move{
		placement(Queen, true, Cell{0, 0}),
		relocation(Beetle, false, Cell{2, 6}, Cell{3, 6}),
	}
	for _, m := range moves {
		got, err := MoveFromBrute(m.Brute())
		if err != nil {
			t.Fatalf("convert %v: %v", m, err)
		}
		if got != m {
			t.Fatalf("round trip %v -> %v", m, got)
		}
	}
}

func TestMoveFromBruteHalfOrigin(t *testing.T) {
	p := 1
	if _, err := MoveFromBrute(BruteMove{Piece: "Q", FromP: &p, ToP: 2, ToQ: 2}); err == nil {
		t.Fatal("half-set origin accepted")
	}
}
