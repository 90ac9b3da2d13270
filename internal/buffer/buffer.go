package buffer

import (
	"errors"
	"fmt"

	"github.com/xanthalas/consoleui/internal/cell"
)

var (
	// ErrInvalidDimensions is returned when a width or height is below 1.
	ErrInvalidDimensions = errors.New("buffer width and height must be at least 1")
	// ErrOutOfRange is returned for coordinates outside the grid.
	ErrOutOfRange = errors.New("coordinate outside buffer")
)

// Buffer is a fixed-size grid of cells. Every position always holds a cell.
type Buffer struct {
	width  int
	height int
	rows   [][]cell.Cell
}

// New creates a buffer filled with blank cells.
func New(width, height int) (*Buffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	b := &Buffer{width: width, height: height, rows: makeRows(width, height)}
	b.Fill(cell.Blank())
	return b, nil
}

func makeRows(width, height int) [][]cell.Cell {
	// One backing array keeps a clone to a single allocation.
	backing := make([]cell.Cell, width*height)
	rows := make([][]cell.Cell, height)
	for y := range rows {
		rows[y] = backing[y*width : (y+1)*width : (y+1)*width]
	}
	return rows
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// InBounds reports whether (x, y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) check(x, y int) error {
	if x < 0 || x >= b.width {
		return fmt.Errorf("%w: x=%d not in [0,%d)", ErrOutOfRange, x, b.width)
	}
	if y < 0 || y >= b.height {
		return fmt.Errorf("%w: y=%d not in [0,%d)", ErrOutOfRange, y, b.height)
	}
	return nil
}

// Get returns the cell at (x, y).
func (b *Buffer) Get(x, y int) (cell.Cell, error) {
	if err := b.check(x, y); err != nil {
		return cell.Cell{}, err
	}
	return b.rows[y][x], nil
}

// Set replaces the cell at (x, y).
func (b *Buffer) Set(x, y int, c cell.Cell) error {
	if err := b.check(x, y); err != nil {
		return err
	}
	b.rows[y][x] = c
	return nil
}

// Fill sets every cell to c.
func (b *Buffer) Fill(c cell.Cell) {
	for y := range b.rows {
		row := b.rows[y]
		for x := range row {
			row[x] = c
		}
	}
}

// Update calls fn for every cell in row-major order, letting fn edit it in place.
func (b *Buffer) Update(fn func(x, y int, c *cell.Cell)) {
	for y := range b.rows {
		row := b.rows[y]
		for x := range row {
			fn(x, y, &row[x])
		}
	}
}

// Clone returns an independent copy of src.
func Clone(src *Buffer) *Buffer {
	dst := &Buffer{width: src.width, height: src.height, rows: makeRows(src.width, src.height)}
	for y := range src.rows {
		copy(dst.rows[y], src.rows[y])
	}
	return dst
}
