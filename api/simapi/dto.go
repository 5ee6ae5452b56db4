// Package simapi provides the request and response shapes of the simulation API.
package simapi

import (
	"github.com/beka-birhanu/vinom-slam/maze"
	"github.com/beka-birhanu/vinom-slam/robot"
	"github.com/beka-birhanu/vinom-slam/sim"
	"github.com/google/uuid"
)

// CommandRequest is either a named steering action or a raw typed command.
type CommandRequest struct {
	Action string  `json:"action,omitempty"`
	Type   string  `json:"type,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// CommandsRequest carries a batch of commands. A body holding a single
// command's fields at the top level is accepted as a batch of one.
type CommandsRequest struct {
	Commands []CommandRequest `json:"commands"`
	CommandRequest
}

// StatusResponse summarises the running simulation.
type StatusResponse struct {
	RunID       uuid.UUID          `json:"run_id"`
	RobotID     uuid.UUID          `json:"robot_id"`
	Seed        int64              `json:"seed"`
	Tick        int64              `json:"tick"`
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
	Heading     float64            `json:"heading"`
	State       string             `json:"state"`
	ObstacleLen int                `json:"obstacle_len"`
	Cell        *maze.CellPosition `json:"cell,omitempty"`
}

// CellResponse is one maze cell's walls and marker.
type CellResponse struct {
	Top    bool   `json:"top"`
	Right  bool   `json:"right"`
	Bottom bool   `json:"bottom"`
	Left   bool   `json:"left"`
	Marker string `json:"marker,omitempty"`
}

// MazeResponse is the wall layout of the maze, row-major.
type MazeResponse struct {
	Rows  int              `json:"rows"`
	Cols  int              `json:"cols"`
	Cells [][]CellResponse `json:"cells"`
}

// PointResponse is a logged obstacle pixel.
type PointResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ObstaclesResponse carries the full obstacle log in detection order.
type ObstaclesResponse struct {
	Count     int             `json:"count"`
	Obstacles []PointResponse `json:"obstacles"`
}

// KnowledgeResponse lists the cells the robot has stood in.
type KnowledgeResponse struct {
	Count int               `json:"count"`
	Cells []robot.KnownCell `json:"cells"`
}

func statusFrom(snap sim.Snapshot) StatusResponse {
	return StatusResponse{
		RunID:       snap.ID,
		RobotID:     snap.RobotID,
		Seed:        snap.Seed,
		Tick:        snap.Tick,
		X:           snap.X,
		Y:           snap.Y,
		Heading:     snap.Heading,
		State:       snap.State,
		ObstacleLen: len(snap.Obstacles),
		Cell:        snap.Cell,
	}
}

func mazeFrom(m *maze.Maze) MazeResponse {
	resp := MazeResponse{Rows: m.Rows, Cols: m.Cols, Cells: make([][]CellResponse, m.Rows)}
	for r, row := range m.Grid {
		resp.Cells[r] = make([]CellResponse, len(row))
		for c, cell := range row {
			out := CellResponse{Top: cell.Top, Right: cell.Right, Bottom: cell.Bottom, Left: cell.Left}
			if cell.Marker != maze.MarkerNone {
				out.Marker = cell.Marker.String()
			}
			resp.Cells[r][c] = out
		}
	}
	return resp
}
