/*
Package maze provides tools for creating and carving rectangular mazes.

It defines the `Maze` structure, composed of `Cell` values that hold wall
flags, a visitation flag and an optional cosmetic marker.

Generation is a randomized depth-first search with an explicit backtrack
stack. On a fully closed grid it carves a spanning tree: every cell is
visited and exactly rows*cols-1 wall pairs are cleared.

Utility functions enable neighbour detection, edge enumeration and ASCII
visualization of the maze.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

const (
	// MaxDimension bounds rows and cols accepted by New.
	MaxDimension = 200
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("cell position is out of the maze")
)

// Maze is a rectangular grid of cells. Its shape is fixed by New; only the
// generator mutates walls and visited flags.
type Maze struct {
	Rows int      // Number of rows
	Cols int      // Number of columns
	Grid [][]Cell // Grid[row][col]
}

// Edge is a cleared wall pair between two neighbouring cells.
type Edge struct {
	From CellPosition `json:"from"`
	To   CellPosition `json:"to"`
}

// New initializes a maze of the given dimensions with every wall standing
// and no cell visited.
func New(rows, cols int) (*Maze, error) {
	if min(rows, cols) <= 0 || max(rows, cols) > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
		for c := range grid[r] {
			grid[r][c] = Cell{
				Row:    r,
				Col:    c,
				Top:    true,
				Right:  true,
				Bottom: true,
				Left:   true,
			}
		}
	}

	return &Maze{Rows: rows, Cols: cols, Grid: grid}, nil
}

// InBound reports whether (row, col) lies inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.Rows && col >= 0 && col < m.Cols
}

// Cell returns the cell at pos, or nil if pos is outside the grid.
func (m *Maze) Cell(pos CellPosition) *Cell {
	if !m.InBound(pos.Row, pos.Col) {
		return nil
	}
	return &m.Grid[pos.Row][pos.Col]
}

// unvisitedNeighbors returns the in-bound, not yet visited cardinal
// neighbours of pos in up, right, down, left order.
func (m *Maze) unvisitedNeighbors(pos CellPosition) []CellPosition {
	result := make([]CellPosition, 0, len(Directions))
	for _, d := range Directions {
		n := pos.Step(d)
		if m.InBound(n.Row, n.Col) && !m.Grid[n.Row][n.Col].Visited {
			result = append(result, n)
		}
	}
	return result
}

// removeWalls clears the wall pair shared by two neighbouring cells.
func (m *Maze) removeWalls(from, to CellPosition) {
	d, ok := directionBetween(from, to)
	if !ok {
		return
	}
	m.Grid[from.Row][from.Col].clearWall(d)
	m.Grid[to.Row][to.Col].clearWall(d.Opposite())
}

// Generate carves the maze from start using rng for every random choice.
// The same seed always produces the same maze.
func (m *Maze) Generate(start CellPosition, rng *rand.Rand) error {
	if !m.InBound(start.Row, start.Col) {
		return fmt.Errorf("%w: %+v", ErrOutOfBounds, start)
	}

	m.Grid[start.Row][start.Col].Visited = true
	stack := []CellPosition{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		neighbors := m.unvisitedNeighbors(current)
		if len(neighbors) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := neighbors[rng.Intn(len(neighbors))]
		m.Grid[next.Row][next.Col].Visited = true
		m.removeWalls(current, next)
		stack = append(stack, next)
	}

	return nil
}

// IsOpen reports whether the wall on side d of pos has been cleared and the
// neighbour on that side exists.
func (m *Maze) IsOpen(pos CellPosition, d Direction) bool {
	c := m.Cell(pos)
	if c == nil {
		return false
	}
	n := pos.Step(d)
	if !m.InBound(n.Row, n.Col) {
		return false
	}
	return !c.HasWall(d) && !m.Grid[n.Row][n.Col].HasWall(d.Opposite())
}

// ClearedEdges lists every cleared wall pair once, scanning right and down
// from each cell in row-major order.
func (m *Maze) ClearedEdges() []Edge {
	var edges []Edge
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			pos := CellPosition{Row: r, Col: c}
			for _, d := range []Direction{Right, Down} {
				if m.IsOpen(pos, d) {
					edges = append(edges, Edge{From: pos, To: pos.Step(d)})
				}
			}
		}
	}
	return edges
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for col := 0; col < m.Cols; col++ {
		if m.Grid[0][col].Top {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for row := 0; row < m.Rows; row++ {
		// Cell rows
		if m.Grid[row][0].Left {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for col := 0; col < m.Cols; col++ {
			cell := m.Grid[row][col]
			output.WriteString(" " + cell.Marker.Letter() + " ")
			if cell.Right {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for col := 0; col < m.Cols; col++ {
			if m.Grid[row][col].Bottom {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
