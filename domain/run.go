// Package domain holds the records persisted across simulation runs.
package domain

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// Point is an integer surface position.
type Point struct {
	X int `bson:"x" json:"x"`
	Y int `bson:"y" json:"y"`
}

// PointsFrom converts image points to stored points.
func PointsFrom(pts []image.Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

// RunRecord represents the BSON version of a simulation run for database storage.
type RunRecord struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	RobotID   uuid.UUID `bson:"robotId" json:"robot_id"`
	Seed      int64     `bson:"seed" json:"seed"`
	Rows      int       `bson:"rows" json:"rows"`
	Cols      int       `bson:"cols" json:"cols"`
	Maze      string    `bson:"maze" json:"maze"`
	Ticks     int64     `bson:"ticks" json:"ticks"`
	X         float64   `bson:"x" json:"x"`
	Y         float64   `bson:"y" json:"y"`
	Heading   float64   `bson:"heading" json:"heading"`
	Obstacles []Point   `bson:"obstacles" json:"obstacles"`
	StartedAt time.Time `bson:"startedAt" json:"started_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
