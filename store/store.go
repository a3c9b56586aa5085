// Package store persists readings, thresholds, control commands and user
// credentials. MongoStore is the production implementation; MemoryStore is a
// drop-in fake for handler tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/TTPzZ/hermit-home/model"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("store: not found")

// ReadingStore covers sensor history and the per-user current-stats
// document.
type ReadingStore interface {
	// InsertReading appends a reading to history.
	InsertReading(ctx context.Context, r *model.Reading) error

	// LatestReadings returns up to limit readings, newest first.
	LatestReadings(ctx context.Context, limit int64) ([]model.Reading, error)

	// LatestReading returns the single most recent reading across all users.
	LatestReading(ctx context.Context) (*model.Reading, error)

	// UpsertCurrentStats replaces (or creates) the current-stats document
	// for stats.UserID. Last writer wins.
	UpsertCurrentStats(ctx context.Context, stats *model.CurrentStats) error

	// CurrentStats returns the current-stats document for a user.
	CurrentStats(ctx context.Context, userID bson.ObjectID) (*model.CurrentStats, error)
}

// ThresholdStore reads and writes per-user alert bounds.
type ThresholdStore interface {
	Threshold(ctx context.Context, userID bson.ObjectID) (*model.Threshold, error)
	UpsertThreshold(ctx context.Context, t *model.Threshold) error
}

// UserStore manages login credentials.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) (bson.ObjectID, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
}

// ControlStore appends actuator commands. The service never reads them
// back; devices poll the collection directly.
type ControlStore interface {
	InsertCommand(ctx context.Context, cmd *model.ControlCommand) error
}

// Store is the full persistence surface the service needs.
type Store interface {
	ReadingStore
	ThresholdStore
	UserStore
	ControlStore
}
