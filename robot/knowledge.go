package robot

import (
	"sort"

	"github.com/beka-birhanu/vinom-slam/maze"
)

// KnownCell is a grid cell the robot has stood in.
type KnownCell struct {
	Pos       maze.CellPosition `json:"pos"`
	FirstSeen int64             `json:"first_seen"` // Tick of the first visit.
	Visits    int               `json:"visits"`     // Ticks spent in the cell.
}

// KnowledgeMap is the robot's record of visited cells. Cells are stored by
// grid coordinate and neighbours are found by key lookup.
type KnowledgeMap struct {
	cells map[maze.CellPosition]*KnownCell
}

// NewKnowledgeMap returns an empty map.
func NewKnowledgeMap() *KnowledgeMap {
	return &KnowledgeMap{cells: make(map[maze.CellPosition]*KnownCell)}
}

// Observe records that the robot was in pos during tick.
func (k *KnowledgeMap) Observe(pos maze.CellPosition, tick int64) {
	if c, ok := k.cells[pos]; ok {
		c.Visits++
		return
	}
	k.cells[pos] = &KnownCell{Pos: pos, FirstSeen: tick, Visits: 1}
}

// Lookup returns the record for pos.
func (k *KnowledgeMap) Lookup(pos maze.CellPosition) (KnownCell, bool) {
	c, ok := k.cells[pos]
	if !ok {
		return KnownCell{}, false
	}
	return *c, true
}

// Neighbors returns the known cardinal neighbours of pos in up, right,
// down, left order.
func (k *KnowledgeMap) Neighbors(pos maze.CellPosition) []KnownCell {
	var out []KnownCell
	for _, d := range maze.Directions {
		if c, ok := k.cells[pos.Step(d)]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// Len returns the number of known cells.
func (k *KnowledgeMap) Len() int {
	return len(k.cells)
}

// Cells returns every known cell in row-major order.
func (k *KnowledgeMap) Cells() []KnownCell {
	out := make([]KnownCell, 0, len(k.cells))
	for _, c := range k.cells {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Row != out[j].Pos.Row {
			return out[i].Pos.Row < out[j].Pos.Row
		}
		return out[i].Pos.Col < out[j].Pos.Col
	})
	return out
}
