package store

import (
	"context"

	"cantina-backend/internal/models"
)

// MemoryStore holds the encoded documents in process memory. Round-trips
// through Encode/Decode like the real drivers so tests exercise the same
// serialization path.
type MemoryStore struct {
	seed     SeedFunc
	snapshot []byte
	backup   []byte
}

func NewMemoryStore(seed SeedFunc) *MemoryStore {
	return &MemoryStore{seed: seed}
}

func (m *MemoryStore) Load(ctx context.Context) (*models.AppState, error) {
	if m.snapshot != nil {
		if state, err := Decode(m.snapshot); err == nil {
			return state, nil
		}
	}
	state := m.seed()
	if err := m.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (m *MemoryStore) Save(ctx context.Context, state *models.AppState) error {
	raw, err := Encode(state)
	if err != nil {
		return err
	}
	m.snapshot = raw
	return nil
}

func (m *MemoryStore) SaveBackup(ctx context.Context, state *models.AppState) error {
	raw, err := Encode(state)
	if err != nil {
		return err
	}
	m.backup = raw
	return nil
}

func (m *MemoryStore) LoadBackup(ctx context.Context) (*models.AppState, error) {
	if m.backup == nil {
		return nil, ErrNoBackup
	}
	return Decode(m.backup)
}

// Corrupt overwrites the stored snapshot with unparseable bytes.
func (m *MemoryStore) Corrupt() {
	m.snapshot = []byte("{not json")
}
