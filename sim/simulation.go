// Package sim wires the maze, its occupancy surface and the robot into a
// tick-driven simulation.
package sim

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-slam/maze"
	"github.com/beka-birhanu/vinom-slam/occupancy"
	"github.com/beka-birhanu/vinom-slam/robot"
	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// Simulation owns one maze and one robot. Step is the only mutator of the
// robot; other goroutines talk to it through Enqueue and Snapshot.
type Simulation struct {
	ID        uuid.UUID
	Seed      int64
	StartedAt time.Time

	cfg       Config
	maze      *maze.Maze
	surface   *occupancy.Grid
	robot     *robot.Robot
	knowledge *robot.KnowledgeMap
	hit       robot.HitFunc
	pending   []Command
	tick      int64
	sync.RWMutex
}

// TickReport summarises one Step.
type TickReport struct {
	Tick    int64 `json:"tick"`
	Applied int   `json:"applied"` // Commands applied before sensing.
	Hits    int   `json:"hits"`    // Obstacle log entries appended.
	Turned  bool  `json:"turned"`  // Whether avoidance rotated the robot.
}

// Snapshot is a detached copy of the simulation state.
type Snapshot struct {
	ID        uuid.UUID          `json:"id"`
	RobotID   uuid.UUID          `json:"robot_id"`
	Seed      int64              `json:"seed"`
	StartedAt time.Time          `json:"started_at"`
	Tick      int64              `json:"tick"`
	X         float64            `json:"x"`
	Y         float64            `json:"y"`
	Heading   float64            `json:"heading"`
	State     string             `json:"state"`
	Obstacles []image.Point      `json:"obstacles"`
	Knowledge []robot.KnownCell  `json:"knowledge"`
	Cell      *maze.CellPosition `json:"cell,omitempty"`
}

// New generates the maze from cell (0,0), derives the occupancy surface and
// places the robot. The whole maze is carved before New returns.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m, err := maze.New(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, fmt.Errorf("creating maze: %w", err)
	}
	if err := m.Generate(maze.CellPosition{Row: 0, Col: 0}, rng); err != nil {
		return nil, fmt.Errorf("generating maze: %w", err)
	}
	m.PlaceMarkers(rng, maze.DefaultMarkers...)

	r := robot.New(robot.Config{
		Pos:         r2.Point{X: cfg.StartX, Y: cfg.StartY},
		Heading:     cfg.Heading,
		SensorRange: cfg.SensorRange,
		FOV:         cfg.FOV,
		RayCount:    cfg.RayCount,
	})

	return &Simulation{
		ID:        uuid.New(),
		Seed:      seed,
		StartedAt: time.Now().UTC(),
		cfg:       cfg,
		maze:      m,
		surface:   occupancy.FromMaze(m, cfg.CellSize, cfg.WallWidth),
		robot:     r,
		knowledge: robot.NewKnowledgeMap(),
		hit:       robot.NearWhite(cfg.WallTolerance),
	}, nil
}

// RunID returns the run id without copying any state.
func (s *Simulation) RunID() uuid.UUID { return s.ID }

// Config returns the config the simulation was built with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Maze returns the generated maze. Callers must not mutate it.
func (s *Simulation) Maze() *maze.Maze {
	return s.maze
}

// Surface returns the occupancy surface the robot senses against.
func (s *Simulation) Surface() *occupancy.Grid {
	return s.surface
}

// Enqueue queues commands for the next Step.
func (s *Simulation) Enqueue(cmds ...Command) {
	s.Lock()
	defer s.Unlock()
	s.pending = append(s.pending, cmds...)
}

// Pending returns the number of queued commands.
func (s *Simulation) Pending() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.pending)
}

// Step runs one tick: apply queued commands, record the robot's cell, sense,
// then avoid.
func (s *Simulation) Step() TickReport {
	s.Lock()
	defer s.Unlock()

	report := TickReport{Tick: s.tick, Applied: len(s.pending)}
	for _, cmd := range s.pending {
		s.apply(cmd)
	}
	s.pending = s.pending[:0]

	if cell, ok := s.cellOf(s.robot.Pos); ok {
		s.knowledge.Observe(cell, s.tick)
	}
	report.Hits = s.robot.Sense(s.surface, s.hit)
	report.Turned = s.robot.Avoid(s.cfg.AvoidThreshold)

	s.tick++
	return report
}

func (s *Simulation) apply(cmd Command) {
	switch cmd.Kind {
	case CommandMove:
		s.robot.Move(cmd.Value)
	case CommandRotate:
		s.robot.Rotate(cmd.Value)
	}
}

// cellOf maps a surface position to the maze cell containing it.
func (s *Simulation) cellOf(p r2.Point) (maze.CellPosition, bool) {
	size := float64(s.cfg.CellSize)
	row, col := int(math.Floor(p.Y/size)), int(math.Floor(p.X/size))
	if !s.maze.InBound(row, col) {
		return maze.CellPosition{}, false
	}
	return maze.CellPosition{Row: row, Col: col}, true
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int64 {
	s.RLock()
	defer s.RUnlock()
	return s.tick
}

// ObstaclesSince returns the obstacle log entries from index from onward.
func (s *Simulation) ObstaclesSince(from int) []image.Point {
	s.RLock()
	defer s.RUnlock()
	log := s.robot.Obstacles()
	if from < 0 || from >= len(log) {
		return nil
	}
	return log[from:]
}

// Snapshot copies the current state for external consumers.
func (s *Simulation) Snapshot() Snapshot {
	s.RLock()
	defer s.RUnlock()

	snap := Snapshot{
		ID:        s.ID,
		RobotID:   s.robot.ID,
		Seed:      s.Seed,
		StartedAt: s.StartedAt,
		Tick:      s.tick,
		X:         s.robot.Pos.X,
		Y:         s.robot.Pos.Y,
		Heading:   s.robot.Heading,
		State:     s.robot.ExplorationState,
		Obstacles: s.robot.Obstacles(),
		Knowledge: s.knowledge.Cells(),
	}
	if cell, ok := s.cellOf(s.robot.Pos); ok {
		snap.Cell = &cell
	}
	return snap
}
