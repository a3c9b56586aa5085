package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/TTPzZ/hermit-home/model"
)

const (
	readingsCollection   = "readings"
	currentCollection    = "current_stats"
	thresholdsCollection = "thresholds"
	usersCollection      = "users"
	controlCollection    = "control_commands"
)

// MongoStore implements Store on top of a Mongo database handle.
type MongoStore struct {
	db *mongo.Database
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore wraps an already-connected database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) InsertReading(ctx context.Context, r *model.Reading) error {
	if r.ID.IsZero() {
		r.ID = bson.NewObjectID()
	}
	_, err := s.db.Collection(readingsCollection).InsertOne(ctx, r)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (s *MongoStore) LatestReadings(ctx context.Context, limit int64) ([]model.Reading, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.db.Collection(readingsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find readings: %w", err)
	}
	defer cursor.Close(ctx)

	readings := []model.Reading{}
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, fmt.Errorf("decode readings: %w", err)
	}
	return readings, nil
}

func (s *MongoStore) LatestReading(ctx context.Context) (*model.Reading, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var r model.Reading
	err := s.db.Collection(readingsCollection).FindOne(ctx, bson.M{}, opts).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find latest reading: %w", err)
	}
	return &r, nil
}

func (s *MongoStore) UpsertCurrentStats(ctx context.Context, stats *model.CurrentStats) error {
	filter := bson.M{"userId": stats.UserID}
	update := bson.M{"$set": stats}
	opts := options.UpdateOne().SetUpsert(true)

	_, err := s.db.Collection(currentCollection).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("upsert current stats: %w", err)
	}
	return nil
}

func (s *MongoStore) CurrentStats(ctx context.Context, userID bson.ObjectID) (*model.CurrentStats, error) {
	var stats model.CurrentStats
	err := s.db.Collection(currentCollection).FindOne(ctx, bson.M{"userId": userID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find current stats: %w", err)
	}
	return &stats, nil
}

func (s *MongoStore) Threshold(ctx context.Context, userID bson.ObjectID) (*model.Threshold, error) {
	var t model.Threshold
	err := s.db.Collection(thresholdsCollection).FindOne(ctx, bson.M{"userId": userID}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find threshold: %w", err)
	}
	return &t, nil
}

func (s *MongoStore) UpsertThreshold(ctx context.Context, t *model.Threshold) error {
	filter := bson.M{"userId": t.UserID}
	update := bson.M{"$set": t}
	opts := options.UpdateOne().SetUpsert(true)

	_, err := s.db.Collection(thresholdsCollection).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("upsert threshold: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *model.User) (bson.ObjectID, error) {
	u.ID = bson.NewObjectID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()

	_, err := s.db.Collection(usersCollection).InsertOne(ctx, u)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert user: %w", err)
	}
	return u.ID, nil
}

func (s *MongoStore) EmailExists(ctx context.Context, email string) (bool, error) {
	filter := bson.D{bson.E{Key: "email", Value: email}}

	var u model.User
	err := s.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&u)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return false, nil
	default:
		return false, fmt.Errorf("email lookup: %w", err)
	}
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) UserByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	var u model.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) InsertCommand(ctx context.Context, cmd *model.ControlCommand) error {
	if cmd.ID.IsZero() {
		cmd.ID = bson.NewObjectID()
	}
	_, err := s.db.Collection(controlCollection).InsertOne(ctx, cmd)
	if err != nil {
		return fmt.Errorf("insert control command: %w", err)
	}
	return nil
}
