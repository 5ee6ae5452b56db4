package sim

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNoSimulation = errors.New("driver has no simulation")
)

// CommandSource supplies the commands queued before a tick.
type CommandSource interface {
	Commands(tick int64) []Command
}

// CommandSourceFunc adapts a function to CommandSource.
type CommandSourceFunc func(tick int64) []Command

// Commands implements CommandSource.
func (f CommandSourceFunc) Commands(tick int64) []Command { return f(tick) }

// Autopilot drives forward every tick and leaves turning to avoidance.
type Autopilot struct {
	Speed float64
}

// Commands implements CommandSource.
func (a Autopilot) Commands(int64) []Command {
	return []Command{Move(a.Speed)}
}

// Driver calls Step on a fixed interval until its context ends.
type Driver struct {
	Sim      *Simulation
	Source   CommandSource // Optional
	Interval time.Duration
	MaxTicks int64                             // Zero runs until ctx is done.
	OnTick   func(context.Context, TickReport) // Optional, runs after each Step.
}

// Run blocks until ctx is done or MaxTicks steps have completed. Steps never
// overlap: the next tick waits for OnTick to return.
func (d *Driver) Run(ctx context.Context) error {
	if d.Sim == nil {
		return ErrNoSimulation
	}
	interval := d.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var done int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if d.Source != nil {
			d.Sim.Enqueue(d.Source.Commands(d.Sim.Tick())...)
		}
		report := d.Sim.Step()
		if d.OnTick != nil {
			d.OnTick(ctx, report)
		}

		done++
		if d.MaxTicks > 0 && done >= d.MaxTicks {
			return nil
		}
	}
}
