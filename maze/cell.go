package maze

// Marker is a cosmetic tag attached to a cell. It plays no part in
// generation or sensing.
type Marker uint8

const (
	MarkerNone Marker = iota
	MarkerGreen
	MarkerOrange
	MarkerBlue
)

// DefaultMarkers are the tags placed on a freshly generated maze.
var DefaultMarkers = []Marker{MarkerGreen, MarkerOrange, MarkerBlue}

// String returns the lower case marker name.
func (m Marker) String() string {
	switch m {
	case MarkerGreen:
		return "green"
	case MarkerOrange:
		return "orange"
	case MarkerBlue:
		return "blue"
	default:
		return "none"
	}
}

// Letter returns the single character used by the ASCII renderer.
func (m Marker) Letter() string {
	switch m {
	case MarkerGreen:
		return "G"
	case MarkerOrange:
		return "O"
	case MarkerBlue:
		return "B"
	default:
		return " "
	}
}

// RGB returns the display colour of the marker.
func (m Marker) RGB() (r, g, b uint8) {
	switch m {
	case MarkerGreen:
		return 0, 255, 0
	case MarkerOrange:
		return 255, 165, 0
	case MarkerBlue:
		return 0, 0, 255
	default:
		return 0, 0, 0
	}
}

// Cell represents a single cell in a maze grid.
// It includes properties for walls on each side, the visitation flag set by
// the generator and an optional marker.
type Cell struct {
	Row     int    // Row index of the cell
	Col     int    // Column index of the cell
	Top     bool   // Top indicates whether there is a wall on the top side of the cell.
	Right   bool   // Right indicates whether there is a wall on the right side of the cell.
	Bottom  bool   // Bottom indicates whether there is a wall on the bottom side of the cell.
	Left    bool   // Left indicates whether there is a wall on the left side of the cell.
	Visited bool   // Visited is set once the generator has reached the cell.
	Marker  Marker // Marker is cosmetic only.
}

// Pos returns the grid coordinates of the cell.
func (c *Cell) Pos() CellPosition {
	return CellPosition{Row: c.Row, Col: c.Col}
}

// HasWall reports whether the wall on the given side is standing.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case Up:
		return c.Top
	case Right:
		return c.Right
	case Down:
		return c.Bottom
	case Left:
		return c.Left
	default:
		return true
	}
}

func (c *Cell) clearWall(d Direction) {
	switch d {
	case Up:
		c.Top = false
	case Right:
		c.Right = false
	case Down:
		c.Bottom = false
	case Left:
		c.Left = false
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Step returns the position one cell away in direction d.
func (cp CellPosition) Step(d Direction) CellPosition {
	delta := d.Delta()
	return CellPosition{Row: cp.Row + delta.Row, Col: cp.Col + delta.Col}
}

// Direction names one of the four cardinal sides of a cell.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the cardinal directions in neighbour scan order.
var Directions = [4]Direction{Up, Right, Down, Left}

// Delta returns the row/col offset of a neighbour in direction d.
func (d Direction) Delta() CellPosition {
	switch d {
	case Up:
		return CellPosition{Row: -1, Col: 0}
	case Right:
		return CellPosition{Row: 0, Col: 1}
	case Down:
		return CellPosition{Row: 1, Col: 0}
	default:
		return CellPosition{Row: 0, Col: -1}
	}
}

// Opposite returns the side facing d on the neighbouring cell.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "left"
	}
}

// directionBetween derives the side of from that faces to from the sign of
// the row/col delta. The cells must be cardinal neighbours.
func directionBetween(from, to CellPosition) (Direction, bool) {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	switch {
	case dc == 1 && dr == 0:
		return Right, true
	case dc == -1 && dr == 0:
		return Left, true
	case dr == 1 && dc == 0:
		return Down, true
	case dr == -1 && dc == 0:
		return Up, true
	}
	return 0, false
}
