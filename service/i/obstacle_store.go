package i

import (
	"context"
	"image"

	"github.com/google/uuid"
)

// ObstacleStore keeps a copy of each run's obstacle log outside the process.
type ObstacleStore interface {
	// Append adds points to the end of the run's log.
	Append(ctx context.Context, runID uuid.UUID, pts []image.Point) error

	// Range returns the run's log in insertion order.
	Range(ctx context.Context, runID uuid.UUID) ([]image.Point, error)

	// Claim takes the run's writer lock. The returned func releases it.
	Claim(ctx context.Context, runID uuid.UUID) (release func(), err error)
}
