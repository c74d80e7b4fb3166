package grid

import "iter"

const (
	DefaultCols     = 53
	DefaultRows     = 7
	DefaultCellSize = 10
	DefaultPadding  = 2

	// Levels is the number of activity buckets, and so the palette size.
	Levels = 5
)

// Layout describes the fixed grid geometry in cells and pixels.
type Layout struct {
	Cols     int
	Rows     int
	CellSize int
	Padding  int
}

func DefaultLayout() Layout {
	return Layout{
		Cols:     DefaultCols,
		Rows:     DefaultRows,
		CellSize: DefaultCellSize,
		Padding:  DefaultPadding,
	}
}

// Capacity is the number of days the grid can hold.
func (l Layout) Capacity() int {
	return l.Cols * l.Rows
}

// Pitch is the distance in pixels between the origins of adjacent cells.
func (l Layout) Pitch() int {
	return l.CellSize + l.Padding
}

// Size returns the raster width and height in pixels.
func (l Layout) Size() (width, height int) {
	return l.Cols * l.Pitch(), l.Rows * l.Pitch()
}

type Cell struct {
	Col   int
	Row   int
	Level int
}

// Origin returns the top-left pixel of the cell.
func (c Cell) Origin(l Layout) (x, y int) {
	return c.Col * l.Pitch(), c.Row * l.Pitch()
}

// Cells lazily maps levels onto the grid: day i lands in column i/Rows,
// row i%Rows. Days beyond Capacity are dropped.
func (l Layout) Cells(levels []int) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		n := min(len(levels), l.Capacity())
		for i := 0; i < n; i++ {
			c := Cell{
				Col:   i / l.Rows,
				Row:   i % l.Rows,
				Level: ClampLevel(levels[i]),
			}
			if !yield(c) {
				return
			}
		}
	}
}

// ClampLevel folds anything outside the known buckets to 0.
func ClampLevel(level int) int {
	if level < 0 || level >= Levels {
		return 0
	}
	return level
}
