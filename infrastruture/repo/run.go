package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-slam/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrRunNotFound = errors.New("run not found")
)

// RunRepo handles the persistence of simulation run records.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or updates a run in the repository.
// If the run already exists, it updates the existing record.
// If the run does not exist, it adds a new record.
func (r *RunRepo) Save(run *dmn.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	update := bson.M{
		"$set": bson.M{
			"robotId":   run.RobotID,
			"seed":      run.Seed,
			"rows":      run.Rows,
			"cols":      run.Cols,
			"maze":      run.Maze,
			"ticks":     run.Ticks,
			"x":         run.X,
			"y":         run.Y,
			"heading":   run.Heading,
			"obstacles": run.Obstacles,
			"updatedAt": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"startedAt": run.StartedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a run by its ID.
// Returns ErrRunNotFound if no run has the ID.
func (r *RunRepo) ByID(id uuid.UUID) (*dmn.RunRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var run dmn.RunRecord
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRunNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &run, nil
}
