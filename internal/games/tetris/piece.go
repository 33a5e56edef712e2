package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// PieceType identifies one of the seven tetrominoes.
// The zero value Empty doubles as the empty board cell.
type PieceType uint8

const (
	Empty PieceType = iota
	PieceI
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceTypes lists every playable piece in table order.
var PieceTypes = [...]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

// Point is a cell coordinate on the board (X = column, Y = row).
type Point struct {
	X, Y int
}

// Shape is a piece matrix: Shape[row][col] is true where the piece has a block.
type Shape [][]bool

// pieceTable holds the spawn orientation of each piece. Shapes are never
// mutated; callers receive copies.
var pieceTable = map[PieceType]struct {
	name  string
	color core.Color
	shape Shape
}{
	PieceI: {"I", core.ColorCyan, parseShape("####")},
	PieceO: {"O", core.ColorYellow, parseShape("##", "##")},
	PieceT: {"T", core.ColorMagenta, parseShape(".#.", "###")},
	PieceS: {"S", core.ColorGreen, parseShape(".##", "##.")},
	PieceZ: {"Z", core.ColorRed, parseShape("##.", ".##")},
	PieceJ: {"J", core.ColorBlue, parseShape("#..", "###")},
	PieceL: {"L", core.ColorOrange, parseShape("..#", "###")},
}

// parseShape builds a shape from rows where '#' marks a block.
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// Valid reports whether p is one of the seven playable pieces.
func (p PieceType) Valid() bool {
	_, ok := pieceTable[p]
	return ok
}

// Shape returns a fresh copy of the piece's spawn orientation.
func (p PieceType) Shape() Shape {
	entry, ok := pieceTable[p]
	if !ok {
		return nil
	}
	return entry.shape.Clone()
}

// Color returns the display color of the piece.
func (p PieceType) Color() core.Color {
	if entry, ok := pieceTable[p]; ok {
		return entry.color
	}
	return core.ColorDefault
}

// String returns the single-letter piece name.
func (p PieceType) String() string {
	if entry, ok := pieceTable[p]; ok {
		return entry.name
	}
	return "-"
}

// Width returns the number of columns in the shape matrix.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the shape matrix.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = append([]bool(nil), row...)
	}
	return out
}

// Rotate returns the shape turned 90 degrees clockwise.
// A rows x cols matrix becomes cols x rows.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for r := range w {
		out[r] = make([]bool, h)
		for c := range h {
			out[r][c] = s[h-1-c][r]
		}
	}
	return out
}

// Equal reports whether two shapes have the same dimensions and blocks.
func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Cells returns the filled cells of the shape placed at offset (x, y).
func (s Shape) Cells(x, y int) []Point {
	var cells []Point
	for row := range s {
		for col, filled := range s[row] {
			if filled {
				cells = append(cells, Point{X: x + col, Y: y + row})
			}
		}
	}
	return cells
}
