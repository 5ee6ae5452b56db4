package i

import (
	dmn "github.com/beka-birhanu/vinom-slam/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for run record persistence operations.
type RunRepo interface {
	// Save inserts or updates a run in the repository.
	// If the run already exists, it updates the record. Otherwise, it creates a new one.
	Save(run *dmn.RunRecord) error

	// ByID retrieves a run by its unique ID.
	// Returns an error if the run is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.RunRecord, error)
}
