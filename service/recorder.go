package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-slam/config"
	dmn "github.com/beka-birhanu/vinom-slam/domain"
	"github.com/beka-birhanu/vinom-slam/service/i"
	"github.com/beka-birhanu/vinom-slam/sim"
	"github.com/google/uuid"
)

const (
	defaultFlushEvery = 60
)

var (
	ErrNotClaimed = errors.New("recorder does not hold the run lock")
)

// Recorder mirrors a simulation's obstacle log into an ObstacleStore and its
// summary into a RunRepo. Either backend may be nil.
type Recorder struct {
	sim        i.Simulator
	runID      uuid.UUID
	repo       i.RunRepo
	store      i.ObstacleStore
	logger     *log.Logger
	flushEvery int64

	flushed int // obstacle log entries already pushed to the store
	release func()
	sync.Mutex
}

// RecorderConfig wires a Recorder.
type RecorderConfig struct {
	Sim        i.Simulator
	Repo       i.RunRepo
	Store      i.ObstacleStore
	Logger     *log.Logger
	FlushEvery int64
}

// NewRecorder builds a recorder for one simulation.
func NewRecorder(c *RecorderConfig) (*Recorder, error) {
	if c.Sim == nil {
		return nil, errors.New("simulation is required")
	}
	r := &Recorder{
		sim:        c.Sim,
		runID:      c.Sim.RunID(),
		repo:       c.Repo,
		store:      c.Store,
		logger:     c.Logger,
		flushEvery: c.FlushEvery,
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	if r.flushEvery <= 0 {
		r.flushEvery = defaultFlushEvery
	}
	return r, nil
}

// Claim takes the store's writer lock for this run. Without a store it is a no-op.
func (r *Recorder) Claim(ctx context.Context) error {
	r.Lock()
	defer r.Unlock()
	if r.store == nil || r.release != nil {
		return nil
	}

	release, err := r.store.Claim(ctx, r.runID)
	if err != nil {
		return err
	}
	r.release = release
	r.logger.Printf("%s[INFO]%s claimed obstacle log for run %s", config.LogInfoColor, config.LogColorReset, r.runID)
	return nil
}

// Release drops the writer lock if held.
func (r *Recorder) Release() {
	r.Lock()
	defer r.Unlock()
	if r.release != nil {
		r.release()
		r.release = nil
	}
}

// Flush pushes entries logged since the previous flush and upserts the run record.
func (r *Recorder) Flush(ctx context.Context) error {
	r.Lock()
	defer r.Unlock()

	if r.store != nil {
		if r.release == nil {
			return ErrNotClaimed
		}
		fresh := r.sim.ObstaclesSince(r.flushed)
		if err := r.store.Append(ctx, r.runID, fresh); err != nil {
			return err
		}
		r.flushed += len(fresh)
	}

	if r.repo != nil {
		if err := r.repo.Save(r.record()); err != nil {
			return err
		}
	}
	return nil
}

// OnTick flushes every flushEvery ticks. Errors are logged, not returned, so
// the driver keeps running.
func (r *Recorder) OnTick(ctx context.Context, rep sim.TickReport) {
	if (rep.Tick+1)%r.flushEvery != 0 {
		return
	}
	if err := r.Flush(ctx); err != nil {
		r.logger.Printf("%s[ERROR]%s flush at tick %d: %s", config.LogErrorColor, config.LogColorReset, rep.Tick, err)
	}
}

// Flushed reports how many obstacle log entries reached the store.
func (r *Recorder) Flushed() int {
	r.Lock()
	defer r.Unlock()
	return r.flushed
}

func (r *Recorder) record() *dmn.RunRecord {
	snap := r.sim.Snapshot()
	cfg := r.sim.Config()
	m := r.sim.Maze()

	return &dmn.RunRecord{
		ID:        snap.ID,
		RobotID:   snap.RobotID,
		Seed:      snap.Seed,
		Rows:      cfg.Rows,
		Cols:      cfg.Cols,
		Maze:      m.String(),
		Ticks:     snap.Tick,
		X:         snap.X,
		Y:         snap.Y,
		Heading:   snap.Heading,
		Obstacles: dmn.PointsFrom(snap.Obstacles),
		StartedAt: snap.StartedAt,
		UpdatedAt: time.Now().UTC(),
	}
}
