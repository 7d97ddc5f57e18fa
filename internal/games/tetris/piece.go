// Package tetris implements the Tetris board-and-piece engine: a fixed 10x20
// board, seven tetrominoes with pivot rotation and wall kicks, a
// falling/lock/clear state machine, scoring with level progression, and a
// cosmetic particle layer fed by engine events.
package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Shape identifies a tetromino. The value is also what a locked board cell
// stores, so ShapeNone doubles as "empty".
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeI
	ShapeZ
	ShapeS
	ShapeT
	ShapeL
	ShapeJ
	ShapeO
)

// ShapeCount is the number of playable shapes.
const ShapeCount = 7

// shapeCodes holds the spawn orientation of every shape in the compact
// two-column form: code c is the cell (c%2, c/2). The second code of each
// entry is the rotation pivot.
var shapeCodes = [ShapeCount + 1][4]int{
	ShapeI: {1, 3, 5, 7},
	ShapeZ: {2, 4, 5, 7},
	ShapeS: {3, 5, 4, 6},
	ShapeT: {3, 5, 4, 7},
	ShapeL: {2, 3, 5, 7},
	ShapeJ: {3, 5, 7, 6},
	ShapeO: {2, 3, 4, 5},
}

// shapeCells is shapeCodes decoded into relative coordinates.
var shapeCells = func() [ShapeCount + 1][4]core.Point {
	var cells [ShapeCount + 1][4]core.Point
	for s := ShapeI; s <= ShapeO; s++ {
		for i, c := range shapeCodes[s] {
			cells[s][i] = core.Point{X: c % 2, Y: c / 2}
		}
	}
	return cells
}()

var shapeNames = [ShapeCount + 1]string{
	ShapeNone: "-",
	ShapeI:    "I",
	ShapeZ:    "Z",
	ShapeS:    "S",
	ShapeT:    "T",
	ShapeL:    "L",
	ShapeJ:    "J",
	ShapeO:    "O",
}

var shapeColors = [ShapeCount + 1]core.Color{
	ShapeNone: core.ColorDefault,
	ShapeI:    core.ColorBrightCyan,
	ShapeZ:    core.ColorBrightRed,
	ShapeS:    core.ColorBrightGreen,
	ShapeT:    core.ColorBrightMagenta,
	ShapeL:    core.ColorOrange,
	ShapeJ:    core.ColorBrightBlue,
	ShapeO:    core.ColorBrightYellow,
}

// Valid reports whether s is one of the seven playable shapes.
func (s Shape) Valid() bool {
	return s >= ShapeI && s <= ShapeO
}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	if s > ShapeO {
		return "?"
	}
	return shapeNames[s]
}

// Color returns the fill color used for cells of this shape.
func (s Shape) Color() core.Color {
	if s > ShapeO {
		return core.ColorDefault
	}
	return shapeColors[s]
}

// Piece is the active tetromino: a shape, a rotation state in [0, 3] and the
// board position of its reference origin.
type Piece struct {
	Shape    Shape
	Rotation int
	X, Y     int
}

// SpawnX and SpawnY are the origin every new piece starts from.
const (
	SpawnX = Width/2 - 1
	SpawnY = 0
)

// NewPiece returns a piece of the given shape in spawn position.
func NewPiece(s Shape) Piece {
	return Piece{Shape: s, Rotation: 0, X: SpawnX, Y: SpawnY}
}

// Cells returns the four cells of the piece relative to its origin.
// Rotation is applied one clockwise quarter turn at a time around the
// shape's pivot, starting from the spawn table.
func (p Piece) Cells() [4]core.Point {
	if !p.Shape.Valid() {
		return [4]core.Point{}
	}

	cells := shapeCells[p.Shape]
	if p.Shape == ShapeO {
		return cells
	}

	pivot := cells[1]
	for range p.Rotation & 3 {
		for i, c := range cells {
			dx, dy := c.X-pivot.X, c.Y-pivot.Y
			cells[i] = core.Point{X: pivot.X - dy, Y: pivot.Y + dx}
		}
	}
	return cells
}

// Positions returns the four absolute board cells occupied by the piece.
func (p Piece) Positions() [4]core.Point {
	cells := p.Cells()
	origin := core.Point{X: p.X, Y: p.Y}
	for i := range cells {
		cells[i] = cells[i].Add(origin)
	}
	return cells
}

// Moved returns a copy of the piece shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy of the piece advanced one rotation step clockwise.
func (p Piece) Rotated() Piece {
	p.Rotation = (p.Rotation + 1) % 4
	return p
}

// IsValid reports whether every cell of the piece lies inside the board
// horizontally, above the floor, and on an empty cell. Cells above the top
// row are allowed.
func IsValid(p Piece, b *Board) bool {
	for _, c := range p.Positions() {
		if c.X < 0 || c.X >= Width || c.Y >= Height {
			return false
		}
		if c.Y >= 0 && b[c.Y][c.X] != ShapeNone {
			return false
		}
	}
	return true
}

// TryMove returns the piece shifted by (dx, dy) and true when that position
// is valid. Otherwise it returns the original piece and false.
func TryMove(p Piece, dx, dy int, b *Board) (Piece, bool) {
	moved := p.Moved(dx, dy)
	if !IsValid(moved, b) {
		return p, false
	}
	return moved, true
}

// DropDistance returns how many rows the piece can fall before landing.
func DropDistance(p Piece, b *Board) int {
	rows := 0
	for {
		next, ok := TryMove(p, 0, 1, b)
		if !ok {
			return rows
		}
		p = next
		rows++
	}
}
