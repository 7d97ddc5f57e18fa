package tetris

import "slices"

// Board dimensions.
const (
	Width  = 10
	Height = 20
)

// Board is the grid of locked cells, indexed [row][col]. Row 0 is the top.
// It is a value type: assigning a Board copies it.
type Board [Height][Width]Shape

// Cell returns the shape stored at (col, row), or ShapeNone when the
// coordinate is outside the grid.
func (b *Board) Cell(col, row int) Shape {
	if col < 0 || col >= Width || row < 0 || row >= Height {
		return ShapeNone
	}
	return b[row][col]
}

// IsOccupied reports whether (col, row) blocks a piece. Walls and the floor
// count as occupied; the area above the top row never does.
func (b *Board) IsOccupied(col, row int) bool {
	if row < 0 {
		return false
	}
	if col < 0 || col >= Width || row >= Height {
		return true
	}
	return b[row][col] != ShapeNone
}

// Lock writes the piece's cells into the board. Cells above the top row
// are dropped.
func (b *Board) Lock(p Piece) {
	for _, c := range p.Positions() {
		if c.Y < 0 || c.Y >= Height || c.X < 0 || c.X >= Width {
			continue
		}
		b[c.Y][c.X] = p.Shape
	}
}

// rowFull reports whether every column of the row is occupied.
func (b *Board) rowFull(row int) bool {
	for col := range Width {
		if b[row][col] == ShapeNone {
			return false
		}
	}
	return true
}

// FullRows returns the indices of completely occupied rows in ascending order.
func (b *Board) FullRows() []int {
	var rows []int
	for row := range Height {
		if b.rowFull(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// RemoveRows deletes the given rows in a single pass. Surviving rows keep
// their relative order and settle to the bottom; the top is refilled with
// as many empty rows as were removed. Duplicate or out-of-range indices are
// ignored.
func (b *Board) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}

	var result Board
	write := Height - 1
	for row := Height - 1; row >= 0; row-- {
		if slices.Contains(rows, row) {
			continue
		}
		result[write] = b[row]
		write--
	}
	*b = result
}

// Filled returns the number of occupied cells.
func (b Board) Filled() int {
	n := 0
	for row := range Height {
		for col := range Width {
			if b[row][col] != ShapeNone {
				n++
			}
		}
	}
	return n
}
