// Package occupancy holds the boolean raster the robot senses against.
//
// The raster is derived from maze wall geometry, so sensing never depends on
// how walls happen to be drawn. Grid implements image.Image: blocked pixels
// read as white and free pixels as black.
package occupancy

import (
	"image"
	"image/color"

	"github.com/beka-birhanu/vinom-slam/maze"
)

// Grid is a width x height raster of blocked/free pixels with its origin at
// (0, 0).
type Grid struct {
	width  int
	height int
	cells  []bool
}

// New returns an empty grid. Non-positive dimensions give an empty raster.
func New(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// FromMaze rasterizes every standing wall of m as a wallWidth thick band
// centred on the cell edge. The raster covers cols*cellSize x rows*cellSize
// pixels; bands on the outer edge are clipped to it.
func FromMaze(m *maze.Maze, cellSize, wallWidth int) *Grid {
	g := New(m.Cols*cellSize, m.Rows*cellSize)
	if wallWidth <= 0 || cellSize <= 0 {
		return g
	}
	half := wallWidth / 2

	for r := range m.Grid {
		for c := range m.Grid[r] {
			cell := &m.Grid[r][c]
			x0, y0 := c*cellSize, r*cellSize
			x1, y1 := x0+cellSize, y0+cellSize

			if cell.Top {
				g.fill(x0, y0-half, x1+1, y0-half+wallWidth)
			}
			if cell.Bottom {
				g.fill(x0, y1-half, x1+1, y1-half+wallWidth)
			}
			if cell.Left {
				g.fill(x0-half, y0, x0-half+wallWidth, y1+1)
			}
			if cell.Right {
				g.fill(x1-half, y0, x1-half+wallWidth, y1+1)
			}
		}
	}

	return g
}

// fill marks the half-open rectangle [x0,x1) x [y0,y1) as blocked, clipped to
// the raster.
func (g *Grid) fill(x0, y0, x1, y1 int) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, g.width), min(y1, g.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.cells[y*g.width+x] = true
		}
	}
}

// Width returns the raster width in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the raster height in pixels.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is a valid raster coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Occupied reports whether (x, y) is blocked. Out of bounds reads as free.
func (g *Grid) Occupied(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.width+x]
}

// Set marks (x, y) blocked or free. Out of bounds writes are ignored.
func (g *Grid) Set(x, y int, blocked bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = blocked
}

// Count returns the number of blocked pixels.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.cells {
		if b {
			n++
		}
	}
	return n
}

// ColorModel implements image.Image.
func (g *Grid) ColorModel() color.Model { return color.GrayModel }

// Bounds implements image.Image.
func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.width, g.height) }

// At implements image.Image.
func (g *Grid) At(x, y int) color.Color {
	if g.Occupied(x, y) {
		return color.White
	}
	return color.Black
}
