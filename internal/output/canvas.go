package output

import "strings"

// Border is the set of runes a box outline is drawn with
type Border struct {
	Corners    [4]rune // top-left, top-right, bottom-left, bottom-right
	Horizontal rune
	Vertical   rune
}

var (
	asciiBorder   = Border{Corners: [4]rune{'+', '+', '+', '+'}, Horizontal: '-', Vertical: '|'}
	roundedBorder = Border{Corners: [4]rune{'╭', '╮', '╰', '╯'}, Horizontal: '─', Vertical: '│'}
)

// Rect is a cell rectangle on a Canvas
type Rect struct {
	X, Y          int
	Width, Height int
}

// Inner returns the rectangle inside a one-cell border
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
}

// Canvas is a fixed grid of runes that boxes and labels are drawn onto
type Canvas struct {
	rows   [][]rune
	width  int
	border Border
}

// NewCanvas creates a blank canvas. Boxes use rounded Unicode corners when
// unicode is set and plain ASCII otherwise.
func NewCanvas(width, height int, unicode bool) *Canvas {
	rows := make([][]rune, height)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(" ", width))
	}

	border := asciiBorder
	if unicode {
		border = roundedBorder
	}
	return &Canvas{rows: rows, width: width, border: border}
}

// put sets one cell; anything off the canvas is clipped
func (c *Canvas) put(x, y int, r rune) {
	if y < 0 || y >= len(c.rows) || x < 0 || x >= c.width {
		return
	}
	c.rows[y][x] = r
}

// Box outlines r. Rectangles smaller than 2x2 are not drawn.
func (c *Canvas) Box(r Rect) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1

	for x := r.X + 1; x < right; x++ {
		c.put(x, r.Y, c.border.Horizontal)
		c.put(x, bottom, c.border.Horizontal)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.put(r.X, y, c.border.Vertical)
		c.put(right, y, c.border.Vertical)
	}
	c.put(r.X, r.Y, c.border.Corners[0])
	c.put(right, r.Y, c.border.Corners[1])
	c.put(r.X, bottom, c.border.Corners[2])
	c.put(right, bottom, c.border.Corners[3])
}

// Label writes text centered on line row of r, cut to r's width
func (c *Canvas) Label(r Rect, row int, text string) {
	if r.Width <= 0 || row < 0 || row >= r.Height {
		return
	}
	runes := []rune(text)
	if len(runes) > r.Width {
		runes = runes[:r.Width]
	}
	x := r.X + (r.Width-len(runes))/2
	for i, ch := range runes {
		c.put(x+i, r.Y+row, ch)
	}
}

// String joins the rows with newlines, without a trailing newline
func (c *Canvas) String() string {
	lines := make([]string, len(c.rows))
	for y, row := range c.rows {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}
