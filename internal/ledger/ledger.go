package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cantina-backend/internal/models"
	"cantina-backend/internal/store"
)

// Ledger owns every mutation of the inventory snapshot. Each operation is
// one unit of work: load the snapshot, validate, mutate in place, save the
// whole document once. There is a single writer by construction, so no
// locking is needed beyond that shape.
type Ledger struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

func New(s store.Store) *Ledger {
	return &Ledger{
		store: s,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock overrides the time source. Tests only.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// Snapshot loads the current state for read-only use. Callers must not hand
// the result back to Save; mutations go through ledger operations.
func (l *Ledger) Snapshot(ctx context.Context) (*models.AppState, error) {
	return l.store.Load(ctx)
}

func (l *Ledger) update(ctx context.Context, fn func(*models.AppState) error) error {
	state, err := l.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return l.store.Save(ctx, state)
}

func (l *Ledger) appendMovement(state *models.AppState, m models.Movement) {
	m.ID = l.newID()
	m.Timestamp = l.now()
	state.Movements = append(state.Movements, m)
}
