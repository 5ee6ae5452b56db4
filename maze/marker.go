package maze

import "math/rand"

// PlaceMarkers tags distinct cells, chosen without replacement, with the
// given markers. At most rows*cols cells are tagged; extra markers are
// dropped. It returns the tagged positions in marker order.
func (m *Maze) PlaceMarkers(rng *rand.Rand, markers ...Marker) []CellPosition {
	total := m.Rows * m.Cols
	n := min(len(markers), total)

	placed := make([]CellPosition, 0, n)
	for i, idx := range rng.Perm(total)[:n] {
		pos := CellPosition{Row: idx / m.Cols, Col: idx % m.Cols}
		m.Grid[pos.Row][pos.Col].Marker = markers[i]
		placed = append(placed, pos)
	}
	return placed
}
