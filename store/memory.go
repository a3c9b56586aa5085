package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/TTPzZ/hermit-home/model"
)

// MemoryStore is an in-memory Store used by handler tests in place of
// Mongo. Readings are held in insertion order, which matches creation-time
// order because the service assigns timestamps itself.
type MemoryStore struct {
	mu         sync.RWMutex
	readings   []model.Reading
	current    map[bson.ObjectID]model.CurrentStats
	thresholds map[bson.ObjectID]model.Threshold
	users      map[bson.ObjectID]model.User
	commands   []model.ControlCommand
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		current:    make(map[bson.ObjectID]model.CurrentStats),
		thresholds: make(map[bson.ObjectID]model.Threshold),
		users:      make(map[bson.ObjectID]model.User),
	}
}

func (m *MemoryStore) InsertReading(_ context.Context, r *model.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID.IsZero() {
		r.ID = bson.NewObjectID()
	}
	m.readings = append(m.readings, *r)
	return nil
}

func (m *MemoryStore) LatestReadings(_ context.Context, limit int64) ([]model.Reading, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := int(limit)
	if n > len(m.readings) {
		n = len(m.readings)
	}

	// Newest first from the tail.
	result := make([]model.Reading, 0, n)
	for i := len(m.readings) - 1; i >= len(m.readings)-n; i-- {
		result = append(result, m.readings[i])
	}
	return result, nil
}

func (m *MemoryStore) LatestReading(_ context.Context) (*model.Reading, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.readings) == 0 {
		return nil, ErrNotFound
	}
	r := m.readings[len(m.readings)-1]
	return &r, nil
}

func (m *MemoryStore) UpsertCurrentStats(_ context.Context, stats *model.CurrentStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current[stats.UserID] = *stats
	return nil
}

func (m *MemoryStore) CurrentStats(_ context.Context, userID bson.ObjectID) (*model.CurrentStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats, ok := m.current[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &stats, nil
}

func (m *MemoryStore) Threshold(_ context.Context, userID bson.ObjectID) (*model.Threshold, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.thresholds[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryStore) UpsertThreshold(_ context.Context, t *model.Threshold) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.thresholds[t.UserID] = *t
	return nil
}

func (m *MemoryStore) CreateUser(_ context.Context, u *model.User) (bson.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = bson.NewObjectID()
	m.users[u.ID] = *u
	return u.ID, nil
}

func (m *MemoryStore) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UserByID(_ context.Context, id bson.ObjectID) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) InsertCommand(_ context.Context, cmd *model.ControlCommand) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cmd.ID.IsZero() {
		cmd.ID = bson.NewObjectID()
	}
	m.commands = append(m.commands, *cmd)
	return nil
}

// Commands returns a copy of the appended control commands. Test helper.
func (m *MemoryStore) Commands() []model.ControlCommand {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.ControlCommand, len(m.commands))
	copy(out, m.commands)
	return out
}
