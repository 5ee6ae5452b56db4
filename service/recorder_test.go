package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log"
	"math"
	"sync"
	"testing"

	dmn "github.com/beka-birhanu/vinom-slam/domain"
	"github.com/beka-birhanu/vinom-slam/sim"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	logs     map[uuid.UUID][]image.Point
	claimed  bool
	released int
	claimErr error
	sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{logs: make(map[uuid.UUID][]image.Point)}
}

func (m *memStore) Append(_ context.Context, runID uuid.UUID, pts []image.Point) error {
	m.Lock()
	defer m.Unlock()
	m.logs[runID] = append(m.logs[runID], pts...)
	return nil
}

func (m *memStore) Range(_ context.Context, runID uuid.UUID) ([]image.Point, error) {
	m.Lock()
	defer m.Unlock()
	return append([]image.Point(nil), m.logs[runID]...), nil
}

func (m *memStore) Claim(context.Context, uuid.UUID) (func(), error) {
	if m.claimErr != nil {
		return nil, m.claimErr
	}
	m.claimed = true
	return func() { m.released++ }, nil
}

type memRepo struct {
	runs  map[uuid.UUID]dmn.RunRecord
	saves int
}

func (m *memRepo) Save(run *dmn.RunRecord) error {
	if m.runs == nil {
		m.runs = make(map[uuid.UUID]dmn.RunRecord)
	}
	m.runs[run.ID] = *run
	m.saves++
	return nil
}

func (m *memRepo) ByID(id uuid.UUID) (*dmn.RunRecord, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, errors.New("run not found")
	}
	return &run, nil
}

// wallSim returns a simulation whose robot stands inside the left boundary
// wall, so each Step logs a hit for every ray.
func wallSim(t *testing.T) *sim.Simulation {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Seed = 7
	s, err := sim.New(cfg)
	require.NoError(t, err)
	s.Enqueue(sim.Rotate(math.Pi), sim.Move(19.6))
	return s
}

// countingSim counts Snapshot calls, which copy the whole obstacle log.
type countingSim struct {
	*sim.Simulation
	snapshots int
}

func (c *countingSim) Snapshot() sim.Snapshot {
	c.snapshots++
	return c.Simulation.Snapshot()
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()

	t.Run("Flush pushes only new entries", func(t *testing.T) {
		s := wallSim(t)
		store, repo := newMemStore(), &memRepo{}
		rec, err := NewRecorder(&RecorderConfig{Sim: s, Store: store, Repo: repo})
		require.NoError(t, err)
		require.NoError(t, rec.Claim(ctx))

		first := s.Step()
		require.Positive(t, first.Hits)
		require.NoError(t, rec.Flush(ctx))
		assert.Equal(t, first.Hits, rec.Flushed())

		second := s.Step()
		require.NoError(t, rec.Flush(ctx))
		require.NoError(t, rec.Flush(ctx))

		stored, err := store.Range(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.Snapshot().Obstacles, stored)
		assert.Len(t, stored, first.Hits+second.Hits)
		assert.Equal(t, 3, repo.saves)
	})

	t.Run("Store flushes do not snapshot", func(t *testing.T) {
		s := &countingSim{Simulation: wallSim(t)}
		store := newMemStore()
		rec, err := NewRecorder(&RecorderConfig{Sim: s, Store: store})
		require.NoError(t, err)
		require.NoError(t, rec.Claim(ctx))

		s.Step()
		require.NoError(t, rec.Flush(ctx))
		assert.Zero(t, s.snapshots)

		stored, err := store.Range(ctx, s.ID)
		require.NoError(t, err)
		assert.Len(t, stored, rec.Flushed())
	})

	t.Run("Run record mirrors the snapshot", func(t *testing.T) {
		s := wallSim(t)
		repo := &memRepo{}
		rec, err := NewRecorder(&RecorderConfig{Sim: s, Repo: repo})
		require.NoError(t, err)

		s.Step()
		require.NoError(t, rec.Flush(ctx))

		run, err := repo.ByID(s.ID)
		require.NoError(t, err)
		snap := s.Snapshot()
		assert.Equal(t, snap.RobotID, run.RobotID)
		assert.Equal(t, int64(7), run.Seed)
		assert.Equal(t, int64(1), run.Ticks)
		assert.Equal(t, s.Maze().String(), run.Maze)
		assert.Equal(t, 15, run.Rows)
		assert.Equal(t, 20, run.Cols)
		assert.Len(t, run.Obstacles, len(snap.Obstacles))
		assert.Equal(t, snap.StartedAt, run.StartedAt)
	})

	t.Run("Flush without claim fails", func(t *testing.T) {
		rec, err := NewRecorder(&RecorderConfig{Sim: wallSim(t), Store: newMemStore()})
		require.NoError(t, err)
		assert.ErrorIs(t, rec.Flush(ctx), ErrNotClaimed)
	})

	t.Run("Claim error is returned", func(t *testing.T) {
		store := newMemStore()
		store.claimErr = errors.New("lock taken")
		rec, err := NewRecorder(&RecorderConfig{Sim: wallSim(t), Store: store})
		require.NoError(t, err)
		assert.EqualError(t, rec.Claim(ctx), "lock taken")
	})

	t.Run("Release is idempotent", func(t *testing.T) {
		store := newMemStore()
		rec, err := NewRecorder(&RecorderConfig{Sim: wallSim(t), Store: store})
		require.NoError(t, err)
		require.NoError(t, rec.Claim(ctx))
		rec.Release()
		rec.Release()
		assert.True(t, store.claimed)
		assert.Equal(t, 1, store.released)
	})

	t.Run("No backends", func(t *testing.T) {
		rec, err := NewRecorder(&RecorderConfig{Sim: wallSim(t)})
		require.NoError(t, err)
		assert.NoError(t, rec.Claim(ctx))
		assert.NoError(t, rec.Flush(ctx))
		rec.Release()
	})

	t.Run("Simulation is required", func(t *testing.T) {
		_, err := NewRecorder(&RecorderConfig{})
		assert.Error(t, err)
	})

	t.Run("OnTick flushes on schedule", func(t *testing.T) {
		s := wallSim(t)
		repo := &memRepo{}
		var buf bytes.Buffer
		rec, err := NewRecorder(&RecorderConfig{Sim: s, Repo: repo, FlushEvery: 3, Logger: log.New(&buf, "", 0)})
		require.NoError(t, err)

		for tick := int64(0); tick < 7; tick++ {
			rec.OnTick(ctx, sim.TickReport{Tick: tick})
		}
		assert.Equal(t, 2, repo.saves)
	})

	t.Run("OnTick logs flush errors", func(t *testing.T) {
		var buf bytes.Buffer
		rec, err := NewRecorder(&RecorderConfig{Sim: wallSim(t), Store: newMemStore(), FlushEvery: 1, Logger: log.New(&buf, "", 0)})
		require.NoError(t, err)

		rec.OnTick(ctx, sim.TickReport{Tick: 0})
		assert.Contains(t, buf.String(), "[ERROR]")
		assert.Contains(t, buf.String(), ErrNotClaimed.Error())
	})
}
