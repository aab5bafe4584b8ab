// Package mosaic splits a rectangle into panes.
package mosaic

type Pane struct {
	X int
	Y int
	W int
	H int
}

type Grid struct {
	columns int
	rows    int
}

// NewGridCount returns the smallest near-square grid holding count panes.
// Columns grow before rows.
func NewGridCount(count int) Grid {
	columns, rows := 0, 0
	for columns*rows < count {
		columns++
		if columns*rows >= count {
			break
		}
		rows++
	}

	return NewGrid(columns, rows)
}

func NewGrid(columns, rows int) Grid {
	return Grid{
		columns: columns,
		rows:    rows,
	}
}

func (g Grid) Count() int {
	return g.columns * g.rows
}

// Panes returns the cells row by row. The last column and row absorb the
// pixels left over by integer division.
func (g Grid) Panes(w, h int) []Pane {
	if g.Count() == 0 {
		return []Pane{}
	}

	pw, ph := w/g.columns, h/g.rows

	panes := make([]Pane, 0, g.Count())
	for row := range g.rows {
		y := ph * row
		height := ph
		if row == g.rows-1 {
			height = h - y
		}

		for col := range g.columns {
			x := pw * col
			width := pw
			if col == g.columns-1 {
				width = w - x
			}

			panes = append(panes, Pane{X: x, Y: y, W: width, H: height})
		}
	}

	return panes
}
