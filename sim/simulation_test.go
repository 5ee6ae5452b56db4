package sim

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-slam/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, seed int64) *Simulation {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	broken := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no rows", func(c *Config) { c.Rows = 0 }},
		{"no cols", func(c *Config) { c.Cols = -1 }},
		{"no cell size", func(c *Config) { c.CellSize = 0 }},
		{"negative wall", func(c *Config) { c.WallWidth = -1 }},
		{"negative range", func(c *Config) { c.SensorRange = -2 }},
		{"zero fov", func(c *Config) { c.FOV = 0 }},
		{"wide fov", func(c *Config) { c.FOV = 7 }},
		{"no rays", func(c *Config) { c.RayCount = 0 }},
		{"negative threshold", func(c *Config) { c.AvoidThreshold = -1 }},
		{"too many rows", func(c *Config) { c.Rows = maze.MaxDimension + 1 }},
		{"too many cols", func(c *Config) { c.Cols = maze.MaxDimension + 1 }},
		{"NaN range", func(c *Config) { c.SensorRange = math.NaN() }},
		{"infinite range", func(c *Config) { c.SensorRange = math.Inf(1) }},
		{"NaN fov", func(c *Config) { c.FOV = math.NaN() }},
		{"NaN move speed", func(c *Config) { c.MoveSpeed = math.NaN() }},
		{"infinite rotate speed", func(c *Config) { c.RotateSpeed = math.Inf(-1) }},
		{"NaN threshold", func(c *Config) { c.AvoidThreshold = math.NaN() }},
		{"infinite start x", func(c *Config) { c.StartX = math.Inf(1) }},
		{"NaN start y", func(c *Config) { c.StartY = math.NaN() }},
		{"NaN heading", func(c *Config) { c.Heading = math.NaN() }},
	}

	for _, tc := range broken {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("Surface size", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, 800, cfg.Width())
		assert.Equal(t, 600, cfg.Height())
	})
}

func TestSteer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MoveSpeed = 2
	cfg.RotateSpeed = 3
	dt := 500 * time.Millisecond

	cases := []struct {
		action string
		want   Command
	}{
		{"forward", Move(2)},
		{"BACKWARD", Move(-2)},
		{"left", Rotate(-1.5)},
		{"right", Rotate(1.5)},
	}
	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			got, err := cfg.Steer(tc.action, dt)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := cfg.Steer("jump", dt)
		assert.ErrorIs(t, err, ErrUnknownAction)
	})
}

func TestParseCommandKind(t *testing.T) {
	k, err := ParseCommandKind("Move")
	require.NoError(t, err)
	assert.Equal(t, CommandMove, k)

	k, err = ParseCommandKind("rotate")
	require.NoError(t, err)
	assert.Equal(t, CommandRotate, k)

	_, err = ParseCommandKind("teleport")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestNew(t *testing.T) {
	s := seeded(t, 11)
	m := s.Maze()

	assert.Len(t, m.ClearedEdges(), m.Rows*m.Cols-1)
	for r := range m.Grid {
		for c := range m.Grid[r] {
			assert.True(t, m.Grid[r][c].Visited)
		}
	}

	markers := 0
	for r := range m.Grid {
		for c := range m.Grid[r] {
			if m.Grid[r][c].Marker != maze.MarkerNone {
				markers++
			}
		}
	}
	assert.Equal(t, len(maze.DefaultMarkers), markers)

	assert.Equal(t, 800, s.Surface().Width())
	assert.Equal(t, 600, s.Surface().Height())
	assert.Zero(t, s.Tick())

	t.Run("Seed reproduces the maze", func(t *testing.T) {
		other := seeded(t, 11)
		assert.Equal(t, s.Maze().String(), other.Maze().String())
		assert.NotEqual(t, s.ID, other.ID)
	})

	t.Run("Zero seed is replaced", func(t *testing.T) {
		assert.NotZero(t, seeded(t, 0).Seed)
	})
}

func TestStep(t *testing.T) {
	t.Run("Open space senses nothing", func(t *testing.T) {
		s := seeded(t, 5)
		report := s.Step()
		assert.Equal(t, TickReport{Tick: 0}, report)
		assert.Equal(t, int64(1), s.Tick())
	})

	t.Run("Commands apply before sensing", func(t *testing.T) {
		s := seeded(t, 5)
		// The outer left wall of cell (0,0) is always standing.
		s.Enqueue(Rotate(math.Pi), Move(19.6))
		require.Equal(t, 2, s.Pending())

		report := s.Step()
		assert.Equal(t, 2, report.Applied)
		assert.Equal(t, 10, report.Hits)
		assert.True(t, report.Turned)
		assert.Zero(t, s.Pending())

		snap := s.Snapshot()
		assert.InDelta(t, 0.4, snap.X, 1e-9)
		assert.InDelta(t, 20, snap.Y, 1e-9)
		assert.InDelta(t, 3*math.Pi/2, snap.Heading, 1e-9)
		assert.Len(t, snap.Obstacles, 10)
		for _, p := range snap.Obstacles {
			assert.Equal(t, image.Pt(0, 20), p)
		}
	})

	t.Run("Knowledge follows the robot", func(t *testing.T) {
		s := seeded(t, 5)
		s.Step()
		s.Enqueue(Move(40))
		s.Step()

		snap := s.Snapshot()
		require.NotNil(t, snap.Cell)
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 1}, *snap.Cell)
		require.Len(t, snap.Knowledge, 2)
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 0}, snap.Knowledge[0].Pos)
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 1}, snap.Knowledge[1].Pos)
		assert.Equal(t, int64(1), snap.Knowledge[1].FirstSeen)
	})

	t.Run("Leaving the maze is not observed", func(t *testing.T) {
		s := seeded(t, 5)
		s.Enqueue(Move(-100))
		s.Step()

		snap := s.Snapshot()
		assert.Nil(t, snap.Cell)
		assert.Empty(t, snap.Knowledge)
	})

	t.Run("Obstacles since", func(t *testing.T) {
		s := seeded(t, 5)
		s.Enqueue(Rotate(math.Pi), Move(19.6))
		s.Step()
		assert.Len(t, s.ObstaclesSince(0), 10)
		assert.Len(t, s.ObstaclesSince(7), 3)
		assert.Empty(t, s.ObstaclesSince(10))
		assert.Empty(t, s.ObstaclesSince(-1))
	})
}
