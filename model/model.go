package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Reading is a single sensor sample from a device. Measure fields are
// pointers so a value the device never sent stays absent in Mongo and in
// JSON instead of becoming a zero.
type Reading struct {
	ID          bson.ObjectID  `json:"_id" bson:"_id,omitempty"`
	UserID      *bson.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Temperature *float64       `json:"temperature,omitempty" bson:"temperature,omitempty"`
	Humidity    *float64       `json:"humidity,omitempty" bson:"humidity,omitempty"`
	Light       *float64       `json:"light,omitempty" bson:"light,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
}

// CurrentStats is the most recent reading for one user, kept in its own
// collection so the client can fetch it without scanning history.
// Exactly one document per user, maintained by upsert.
type CurrentStats struct {
	UserID      bson.ObjectID `json:"userId" bson:"userId"`
	Temperature *float64      `json:"temperature,omitempty" bson:"temperature,omitempty"`
	Humidity    *float64      `json:"humidity,omitempty" bson:"humidity,omitempty"`
	Light       *float64      `json:"light,omitempty" bson:"light,omitempty"`
	Timestamp   time.Time     `json:"timestamp" bson:"timestamp"`
}

// Threshold holds per-user alert bounds for each sensor dimension.
type Threshold struct {
	UserID         bson.ObjectID `json:"userId" bson:"userId"`
	MinTemperature float64       `json:"minTemperature" bson:"minTemperature"`
	MaxTemperature float64       `json:"maxTemperature" bson:"maxTemperature"`
	MinHumidity    float64       `json:"minHumidity" bson:"minHumidity"`
	MaxHumidity    float64       `json:"maxHumidity" bson:"maxHumidity"`
	MinLight       float64       `json:"minLight" bson:"minLight"`
	MaxLight       float64       `json:"maxLight" bson:"maxLight"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// User is a login credential. Password holds the bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email     string        `json:"email" bson:"email"`
	Password  string        `json:"-" bson:"password"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// ControlCommand is an actuator command appended by the front-end. The
// fields mirror the sensor shape; the device interprets them.
type ControlCommand struct {
	ID          bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Temperature *float64      `json:"temperature,omitempty" bson:"temperature,omitempty"`
	Humidity    *float64      `json:"humidity,omitempty" bson:"humidity,omitempty"`
	Light       *float64      `json:"light,omitempty" bson:"light,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}
