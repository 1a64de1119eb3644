// Package render turns simulation snapshots into terminal draw
// primitives. It holds no reference to the simulation and consumes no
// randomness: drawing the same snapshot twice produces the same cells.
package render

// Color is a foreground color for a screen cell, mapped to a terminal
// palette by the platform layer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// Cell is one character cell of the screen buffer.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D cell buffer the render adapter draws into. It
// decouples drawing from the terminal: games paint cells, the platform
// rasterizes them with whatever styling library it uses.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a cleared screen buffer.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height}
	s.allocate()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
	s.Clear()
}

// Width returns the buffer width in cells.
func (s *Screen) Width() int { return s.width }

// Height returns the buffer height in cells.
func (s *Screen) Height() int { return s.height }

// Resize reallocates the buffer. Content is cleared; the next draw pass
// repaints everything anyway.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
}

// Clear fills the buffer with spaces in the default color.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' ', Color: ColorDefault}
		}
	}
}

// Set paints a cell. Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// GetCell returns the cell at (x, y), or a blank cell out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' ', Color: ColorDefault}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y), clipped to
// the buffer.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	for i, r := range text {
		s.Set(x+i, y, r, c)
	}
}

// DrawTextCentered draws text centered horizontally at row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawText((s.width-len(text))/2, y, text, c)
}

// DrawBox draws a border box with rounded corners.
func (s *Screen) DrawBox(x, y, w, h int, c Color) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		s.Set(x+i, y, '─', c)
		s.Set(x+i, y+h-1, '─', c)
	}
	for j := 1; j < h-1; j++ {
		s.Set(x, y+j, '│', c)
		s.Set(x+w-1, y+j, '│', c)
	}
	s.Set(x, y, '╭', c)
	s.Set(x+w-1, y, '╮', c)
	s.Set(x, y+h-1, '╰', c)
	s.Set(x+w-1, y+h-1, '╯', c)
}

// FillRect fills a rectangular area, clipped to the buffer.
func (s *Screen) FillRect(x, y, w, h int, r rune, c Color) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			s.Set(i, j, r, c)
		}
	}
}
