package i

import (
	"image"

	"github.com/beka-birhanu/vinom-slam/maze"
	"github.com/beka-birhanu/vinom-slam/occupancy"
	"github.com/beka-birhanu/vinom-slam/sim"
	"github.com/google/uuid"
)

// Simulator is the view of a running simulation used by the HTTP layer and
// the recorder.
type Simulator interface {
	RunID() uuid.UUID
	Config() sim.Config
	Maze() *maze.Maze
	Surface() *occupancy.Grid
	Snapshot() sim.Snapshot
	Enqueue(cmds ...sim.Command)

	// ObstaclesSince returns obstacle log entries from index from onward.
	ObstaclesSince(from int) []image.Point
}
