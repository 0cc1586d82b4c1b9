package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cantina-backend/internal/models"
)

// Fixed keys of the persisted documents. The live snapshot and the last
// explicit backup are two independent copies of the same shape.
const (
	SnapshotKey = "crm-locales-data"
	BackupKey   = "crm-locales-respaldo"
)

var (
	// ErrMalformedSnapshot: persisted data cannot be parsed as an AppState.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	// ErrNoBackup: no backup copy has been written yet.
	ErrNoBackup = errors.New("no backup found")
)

// SeedFunc builds the default initial snapshot. Load falls back to it when
// nothing is persisted yet or the persisted document is malformed.
type SeedFunc func() *models.AppState

// Store persists the whole AppState as one document, no partial writes.
type Store interface {
	// Load returns the current snapshot, seeding defaults when absent or
	// malformed. The returned state is owned by the caller until saved back.
	Load(ctx context.Context) (*models.AppState, error)
	Save(ctx context.Context, state *models.AppState) error

	// SaveBackup writes a copy of the snapshot under the backup key.
	SaveBackup(ctx context.Context, state *models.AppState) error
	// LoadBackup returns the backup copy, or ErrNoBackup.
	LoadBackup(ctx context.Context) (*models.AppState, error)
}

// Encode serializes a snapshot to its persisted JSON form.
func Encode(state *models.AppState) ([]byte, error) {
	return json.Marshal(state)
}

// Decode parses a persisted document. Any parse failure is reported as
// ErrMalformedSnapshot; no schema validation beyond the shape itself.
func Decode(raw []byte) (*models.AppState, error) {
	var state models.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, ErrMalformedSnapshot
	}
	normalize(&state)
	return &state, nil
}

// normalize fills holes an imported document may have: nil maps/slices and
// missing table slots. Imported data is otherwise taken verbatim.
func normalize(state *models.AppState) {
	if state.TableOrders == nil {
		state.TableOrders = make(map[int]*models.TableOrder, models.TableCount)
	}
	for n := 1; n <= models.TableCount; n++ {
		if state.TableOrders[n] == nil {
			state.TableOrders[n] = &models.TableOrder{}
		}
	}
	if state.Movements == nil {
		state.Movements = []models.Movement{}
	}
	if state.LastBackupAt.IsZero() {
		state.LastBackupAt = time.Now()
	}
}
