package tetris

// Board is the fixed-size playfield. Each cell is Empty or holds the type of
// the piece that was locked there; the type doubles as the color tag.
// Row 0 is the top of the visible field.
type Board struct {
	width  int
	height int
	cells  [][]PieceType
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.cells = make([][]PieceType, height)
	for y := range b.cells {
		b.cells[y] = make([]PieceType, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// At returns the cell at (x, y), or Empty when out of bounds.
func (b *Board) At(x, y int) PieceType {
	if !b.inside(x, y) {
		return Empty
	}
	return b.cells[y][x]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (b *Board) Set(x, y int, p PieceType) {
	if !b.inside(x, y) {
		return
	}
	b.cells[y][x] = p
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// IsValidPosition reports whether shape placed at offset (x, y) fits:
// every block is within the side walls, not below the floor, and does not
// overlap a filled cell. Blocks above the top row (negative y) are allowed.
func (b *Board) IsValidPosition(x, y int, shape Shape) bool {
	for _, c := range shape.Cells(x, y) {
		if c.X < 0 || c.X >= b.width || c.Y >= b.height {
			return false
		}
		if c.Y >= 0 && b.cells[c.Y][c.X] != Empty {
			return false
		}
	}
	return true
}

// Lock writes the blocks of shape at (x, y) into the board with the given
// type and returns the cells written. Blocks above the top row are dropped.
func (b *Board) Lock(x, y int, shape Shape, p PieceType) []Point {
	var written []Point
	for _, c := range shape.Cells(x, y) {
		if c.Y < 0 || !b.inside(c.X, c.Y) {
			continue
		}
		b.cells[c.Y][c.X] = p
		written = append(written, c)
	}
	return written
}

// RowComplete reports whether every cell in row y is filled.
func (b *Board) RowComplete(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, cell := range b.cells[y] {
		if cell == Empty {
			return false
		}
	}
	return true
}

// CompleteRows returns the indexes of all complete rows, scanning bottom-up.
func (b *Board) CompleteRows() []int {
	var rows []int
	for y := b.height - 1; y >= 0; y-- {
		if b.RowComplete(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// RemoveRows splices the given rows out and prepends the same number of
// empty rows at the top, so the row count never changes.
func (b *Board) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	drop := make(map[int]bool, len(rows))
	for _, y := range rows {
		if y >= 0 && y < b.height {
			drop[y] = true
		}
	}

	kept := make([][]PieceType, 0, b.height)
	for y, row := range b.cells {
		if !drop[y] {
			kept = append(kept, row)
		}
	}

	fresh := make([][]PieceType, 0, b.height)
	for range b.height - len(kept) {
		fresh = append(fresh, make([]PieceType, b.width))
	}
	b.cells = append(fresh, kept...)
}

// Filled returns the number of non-empty cells.
func (b *Board) Filled() int {
	n := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell != Empty {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{width: b.width, height: b.height}
	out.cells = make([][]PieceType, b.height)
	for y, row := range b.cells {
		out.cells[y] = append([]PieceType(nil), row...)
	}
	return out
}

// Equal reports whether two boards have identical dimensions and cells.
func (b *Board) Equal(other *Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}
