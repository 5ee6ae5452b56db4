package robot

import (
	"testing"

	"github.com/beka-birhanu/vinom-slam/maze"
	"github.com/stretchr/testify/assert"
)

func TestKnowledgeMap(t *testing.T) {
	k := NewKnowledgeMap()
	center := maze.CellPosition{Row: 1, Col: 1}

	k.Observe(center, 0)
	k.Observe(center, 1)
	k.Observe(maze.CellPosition{Row: 0, Col: 1}, 2)
	k.Observe(maze.CellPosition{Row: 1, Col: 0}, 3)
	k.Observe(maze.CellPosition{Row: 2, Col: 2}, 4)

	t.Run("Lookup", func(t *testing.T) {
		c, ok := k.Lookup(center)
		assert.True(t, ok)
		assert.Equal(t, KnownCell{Pos: center, FirstSeen: 0, Visits: 2}, c)

		_, ok = k.Lookup(maze.CellPosition{Row: 5, Col: 5})
		assert.False(t, ok)
	})

	t.Run("Neighbors by key", func(t *testing.T) {
		got := k.Neighbors(center)
		assert.Equal(t, []KnownCell{
			{Pos: maze.CellPosition{Row: 0, Col: 1}, FirstSeen: 2, Visits: 1},
			{Pos: maze.CellPosition{Row: 1, Col: 0}, FirstSeen: 3, Visits: 1},
		}, got)
		assert.Empty(t, k.Neighbors(maze.CellPosition{Row: 9, Col: 9}))
	})

	t.Run("Cells in row-major order", func(t *testing.T) {
		assert.Equal(t, 4, k.Len())
		var order []maze.CellPosition
		for _, c := range k.Cells() {
			order = append(order, c.Pos)
		}
		assert.Equal(t, []maze.CellPosition{
			{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2},
		}, order)
	})

	t.Run("Copies are detached", func(t *testing.T) {
		c, _ := k.Lookup(center)
		c.Visits = 100
		again, _ := k.Lookup(center)
		assert.Equal(t, 2, again.Visits)
	})
}
