package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cantina-backend/internal/models"
)

const testLocation = "local-001"

// supply stocks the local warehouse so order tests start from known levels.
func supply(t *testing.T, l *Ledger, products map[string]float64) {
	t.Helper()
	result, err := l.SupplyToLocation(context.Background(), testLocation, products)
	require.NoError(t, err)
	require.Empty(t, result.Rejected)
}

// Scenario: Cafe at 5 units locally; two adds build a single line of 2,
// finalize drops local stock to 3, appends one consumption movement and
// clears the table.
func TestOrderLifecycle(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()
	supply(t, l, map[string]float64{"p009": 5})

	order, err := l.AddItem(ctx, testLocation, 1, "p009")
	require.NoError(t, err)
	assert.True(t, order.Active)

	order, err = l.AddItem(ctx, testLocation, 1, "p009")
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2.0, order.Items[0].Quantity)
	assert.Equal(t, "Cafe", order.Items[0].Name)
	assert.Equal(t, 2*8.5, order.Total)

	movementsBefore := len(loadState(t, st).Movements)

	applied, err := l.Finalize(ctx, testLocation, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	state := loadState(t, st)
	assert.Equal(t, 3.0, state.FindLocation(testLocation).FindProduct("p009").Quantity)

	require.Len(t, state.Movements, movementsBefore+1)
	movement := state.Movements[len(state.Movements)-1]
	assert.Equal(t, models.MovementConsumption, movement.Kind)
	assert.Equal(t, 2.0, movement.Quantity)
	assert.Equal(t, testLocation, movement.Destination)
	assert.Equal(t, 1, movement.TableNumber)

	finalized := state.TableOrders[1]
	assert.Empty(t, finalized.Items)
	assert.Zero(t, finalized.Total)
	assert.False(t, finalized.Active)
}

func TestAddItemRequiresLocalStock(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	// Not supplied to the location at all.
	_, err := l.AddItem(ctx, testLocation, 1, "p009")
	assert.ErrorIs(t, err, ErrOutOfStock)

	// Present but below one unit.
	supply(t, l, map[string]float64{"p015": 0.5})
	_, err = l.AddItem(ctx, testLocation, 1, "p015")
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestAddItemUnknownTable(t *testing.T) {
	l, _ := newTestLedger(t)
	supply(t, l, map[string]float64{"p009": 5})

	_, err := l.AddItem(context.Background(), testLocation, 99, "p009")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestAddItemInactiveLocation(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.AddItem(context.Background(), "local-003", 1, "p009")
	assert.ErrorIs(t, err, ErrLocationInactive)
}

func TestRemoveOneUnit(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	supply(t, l, map[string]float64{"p009": 5, "p010": 5})

	for i := 0; i < 2; i++ {
		_, err := l.AddItem(ctx, testLocation, 2, "p009")
		require.NoError(t, err)
	}
	_, err := l.AddItem(ctx, testLocation, 2, "p010")
	require.NoError(t, err)

	order, err := l.RemoveOneUnit(ctx, testLocation, 2, "p009")
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 1.0, order.FindItem("p009").Quantity)

	// Dropping to zero deletes the line.
	order, err = l.RemoveOneUnit(ctx, testLocation, 2, "p009")
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Nil(t, order.FindItem("p009"))
	assert.True(t, order.Active)

	// Last line gone: back to the empty state.
	order, err = l.RemoveOneUnit(ctx, testLocation, 2, "p010")
	require.NoError(t, err)
	assert.Empty(t, order.Items)
	assert.False(t, order.Active)
	assert.Zero(t, order.Total)
}

func TestRemoveLineDeletesWholeLine(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	supply(t, l, map[string]float64{"p009": 5})

	for i := 0; i < 3; i++ {
		_, err := l.AddItem(ctx, testLocation, 1, "p009")
		require.NoError(t, err)
	}

	order, err := l.RemoveLine(ctx, testLocation, 1, "p009")
	require.NoError(t, err)
	assert.Empty(t, order.Items)
	assert.False(t, order.Active)
}

func TestRemoveMissingLine(t *testing.T) {
	l, _ := newTestLedger(t)
	supply(t, l, map[string]float64{"p009": 5})

	_, err := l.RemoveOneUnit(context.Background(), testLocation, 1, "p009")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// Scenario: one coverable line and one short line. Finalize must commit
// neither: quantities and the movement log stay exactly as before the call.
func TestFinalizeAllOrNothing(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()
	supply(t, l, map[string]float64{"p009": 5, "p015": 1})

	_, err := l.AddItem(ctx, testLocation, 3, "p009")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		// Second add is allowed: add-time checks presence, not line depth.
		_, err = l.AddItem(ctx, testLocation, 3, "p015")
		require.NoError(t, err)
	}

	before := loadState(t, st)
	movementsBefore := len(before.Movements)

	_, err = l.Finalize(ctx, testLocation, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var finalizeErr *FinalizeError
	require.ErrorAs(t, err, &finalizeErr)
	require.Len(t, finalizeErr.Shortages, 1)
	assert.Equal(t, "p015", finalizeErr.Shortages[0].ProductID)
	assert.Equal(t, 2.0, finalizeErr.Shortages[0].Requested)
	assert.Equal(t, 1.0, finalizeErr.Shortages[0].Available)

	state := loadState(t, st)
	location := state.FindLocation(testLocation)
	assert.Equal(t, 5.0, location.FindProduct("p009").Quantity)
	assert.Equal(t, 1.0, location.FindProduct("p015").Quantity)
	assert.Len(t, state.Movements, movementsBefore)

	order := state.TableOrders[3]
	assert.True(t, order.Active)
	assert.Len(t, order.Items, 2)
}

func TestFinalizeEmptyOrder(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.Finalize(context.Background(), testLocation, 1)
	assert.ErrorIs(t, err, ErrOrderEmpty)
}

// Cancellation clears the table without touching stock or the ledger.
func TestCancelRecordsNoMovement(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()
	supply(t, l, map[string]float64{"p009": 5})

	_, err := l.AddItem(ctx, testLocation, 4, "p009")
	require.NoError(t, err)

	movementsBefore := len(loadState(t, st).Movements)

	require.NoError(t, l.Cancel(ctx, testLocation, 4))

	state := loadState(t, st)
	order := state.TableOrders[4]
	assert.Empty(t, order.Items)
	assert.False(t, order.Active)
	assert.Zero(t, order.Total)
	assert.Len(t, state.Movements, movementsBefore)
	assert.Equal(t, 5.0, state.FindLocation(testLocation).FindProduct("p009").Quantity)
}

// Every reachable state keeps quantities non-negative; a finalize that
// would cross zero is refused, an exact drain is allowed.
func TestQuantityNeverNegative(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()
	supply(t, l, map[string]float64{"p015": 2})

	for i := 0; i < 2; i++ {
		_, err := l.AddItem(ctx, testLocation, 1, "p015")
		require.NoError(t, err)
	}

	applied, err := l.Finalize(ctx, testLocation, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	state := loadState(t, st)
	assert.Equal(t, 0.0, state.FindLocation(testLocation).FindProduct("p015").Quantity)

	// Now drained: even a single-unit add is refused.
	_, err = l.AddItem(ctx, testLocation, 1, "p015")
	assert.True(t, errors.Is(err, ErrOutOfStock))

	for _, p := range state.Central {
		assert.GreaterOrEqual(t, p.Quantity, 0.0)
	}
	for _, loc := range state.Locations {
		for _, p := range loc.Warehouse {
			assert.GreaterOrEqual(t, p.Quantity, 0.0)
		}
	}
}
