package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/vinom-slam/maze"
)

var (
	ErrInvalidConfig = errors.New("invalid simulation config")
)

// Config holds every tunable of a simulation run.
type Config struct {
	Rows      int // Maze rows
	Cols      int // Maze columns
	CellSize  int // Cell edge in surface pixels
	WallWidth int // Wall thickness in surface pixels

	StartX      float64 // Robot start position, surface pixels
	StartY      float64
	Heading     float64 // Robot start heading, radians
	SensorRange float64 // Ray length and line walk stride
	FOV         float64 // Sensor fan width, radians
	RayCount    int     // Rays per sense

	MoveSpeed      float64 // Distance per forward/backward command
	RotateSpeed    float64 // Radians per second for left/right commands
	AvoidThreshold float64 // Obstacle distance that triggers a turn
	WallTolerance  uint8   // Per channel slack of the wall colour test

	Seed int64 // Zero picks a time based seed
}

// DefaultConfig matches an 800x600 surface of 40 pixel cells.
func DefaultConfig() Config {
	return Config{
		Rows:           15,
		Cols:           20,
		CellSize:       40,
		WallWidth:      2,
		StartX:         20,
		StartY:         20,
		Heading:        0,
		SensorRange:    2,
		FOV:            math.Pi / 3,
		RayCount:       10,
		MoveSpeed:      1,
		RotateSpeed:    1,
		AvoidThreshold: 5,
		WallTolerance:  0,
	}
}

// Width returns the occupancy surface width in pixels.
func (c Config) Width() int { return c.Cols * c.CellSize }

// Height returns the occupancy surface height in pixels.
func (c Config) Height() int { return c.Rows * c.CellSize }

// Validate checks the config for values the simulation cannot run with.
func (c Config) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"start x", c.StartX}, {"start y", c.StartY}, {"heading", c.Heading},
		{"sensor range", c.SensorRange}, {"field of view", c.FOV},
		{"move speed", c.MoveSpeed}, {"rotate speed", c.RotateSpeed},
		{"avoid threshold", c.AvoidThreshold},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, f.name)
		}
	}

	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: maze must have at least one row and column", ErrInvalidConfig)
	case c.Rows > maze.MaxDimension || c.Cols > maze.MaxDimension:
		return fmt.Errorf("%w: maze dimensions must not exceed %d", ErrInvalidConfig, maze.MaxDimension)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidConfig)
	case c.WallWidth < 0:
		return fmt.Errorf("%w: wall width must not be negative", ErrInvalidConfig)
	case c.SensorRange < 0:
		return fmt.Errorf("%w: sensor range must not be negative", ErrInvalidConfig)
	case c.FOV <= 0 || c.FOV > 2*math.Pi:
		return fmt.Errorf("%w: field of view must be in (0, 2π]", ErrInvalidConfig)
	case c.RayCount <= 0:
		return fmt.Errorf("%w: ray count must be positive", ErrInvalidConfig)
	case c.AvoidThreshold < 0:
		return fmt.Errorf("%w: avoid threshold must not be negative", ErrInvalidConfig)
	}
	return nil
}
