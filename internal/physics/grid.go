package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection in a bounded arena.
// Rectangles are inserted by index into every cell they cover, then a query
// rectangle visits the items of the cells it covers.
//
// An item spanning several cells is visited once per covered cell, so callers
// must tolerate duplicates (e.g. by keeping the lowest qualifying index).
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given arena dimensions.
func NewSpatialGrid(worldW, worldH, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(worldW / cellSize))
	rows := int(math.Ceil(worldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([]gridCell, cols*rows)
	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       cells,
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given point.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// InsertRect adds an item to every cell the rectangle covers.
func (g *SpatialGrid) InsertRect(r Rect, index int) {
	c0, r0 := g.posToCell(r.X, r.Y)
	c1, r1 := g.posToCell(r.X+r.W, r.Y+r.H)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			g.cells[rowOffset+col].items = append(g.cells[rowOffset+col].items, index)
		}
	}
}

// QueryRect calls fn for each item index stored in the cells covered by r.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryRect(r Rect, fn func(index int) bool) {
	c0, r0 := g.posToCell(r.X, r.Y)
	c1, r1 := g.posToCell(r.X+r.W, r.Y+r.H)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, itemIdx := range g.cells[rowOffset+col].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. Cells outside the arena are skipped.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.posToCell(x, y)

	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.rows {
			continue
		}
		rowOffset := r * g.cols

		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cols {
				continue
			}
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// FirstInRect returns the lowest item index in the cells covered by r that
// satisfies match, or -1. Duplicate visits of multi-cell items are harmless.
func (g *SpatialGrid) FirstInRect(r Rect, match func(index int) bool) int {
	best := -1
	g.QueryRect(r, func(i int) bool {
		if best >= 0 && i >= best {
			return false
		}
		if match(i) {
			best = i
		}
		return false
	})
	return best
}

// posToCell converts arena coordinates to grid cell coordinates.
// Clamps to valid range so out-of-arena positions map to edge cells.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
