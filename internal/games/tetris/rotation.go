package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// WallKicks are the origin nudges tried, in order, when a rotation collides
// in place: left 1, right 1, up 1, left 2, right 2.
var WallKicks = [...]core.Point{
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -2, Y: 0},
	{X: 2, Y: 0},
}

// Rotate turns the piece one step clockwise. When the turned piece does not
// fit in place, each of WallKicks is tried in order and the first valid one
// wins. If nothing fits, the original piece and false are returned.
func Rotate(p Piece, b *Board) (Piece, bool) {
	candidate := p.Rotated()
	if IsValid(candidate, b) {
		return candidate, true
	}

	for _, kick := range WallKicks {
		kicked := candidate.Moved(kick.X, kick.Y)
		if IsValid(kicked, b) {
			return kicked, true
		}
	}

	return p, false
}
