package physics

import "testing"

func TestGridQueryRectFindsSpanningItems(t *testing.T) {
	g := NewSpatialGrid(800, 600, 50)
	// Spans four cells horizontally.
	g.InsertRect(Rect{X: 10, Y: 10, W: 180, H: 12}, 0)
	g.InsertRect(Rect{X: 400, Y: 300, W: 20, H: 20}, 1)

	seen := map[int]int{}
	g.QueryRect(Rect{X: 160, Y: 0, W: 10, H: 10}, func(i int) bool {
		seen[i]++
		return false
	})
	if seen[0] == 0 {
		t.Fatal("expected item 0 near its right end")
	}
	if seen[1] != 0 {
		t.Fatal("item 1 is far away and should not be visited")
	}
}

func TestGridFirstInRectReturnsLowestIndex(t *testing.T) {
	g := NewSpatialGrid(800, 600, 40)
	rects := []Rect{
		{X: 100, Y: 100, W: 60, H: 12},
		{X: 90, Y: 100, W: 60, H: 12},
		{X: 95, Y: 105, W: 60, H: 12},
	}
	// Insert in reverse so cell order differs from index order.
	for i := len(rects) - 1; i >= 0; i-- {
		g.InsertRect(rects[i], i)
	}

	query := Rect{X: 110, Y: 100, W: 5, H: 5}
	got := g.FirstInRect(query, func(i int) bool { return rects[i].Overlaps(query) })
	if got != 0 {
		t.Fatalf("FirstInRect = %d, want 0", got)
	}

	got = g.FirstInRect(query, func(i int) bool { return i != 0 && rects[i].Overlaps(query) })
	if got != 1 {
		t.Fatalf("FirstInRect skipping 0 = %d, want 1", got)
	}

	if got := g.FirstInRect(Rect{X: 700, Y: 500, W: 5, H: 5}, func(int) bool { return true }); got != -1 {
		t.Fatalf("empty area = %d, want -1", got)
	}
}

func TestGridClearAndOutOfBounds(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(-50, 500, 3) // clamps to an edge cell
	found := false
	g.QueryAround(0, 99, func(i int) bool {
		found = i == 3
		return found
	})
	if !found {
		t.Fatal("clamped item should be found near the edge")
	}

	g.Clear()
	g.QueryAround(0, 99, func(int) bool {
		t.Fatal("grid should be empty after Clear")
		return true
	})
}
